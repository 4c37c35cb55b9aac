package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/roadcost/pkg/buildinfo"
	"github.com/matzehuels/roadcost/pkg/errors"
	"github.com/matzehuels/roadcost/pkg/estimate"
	"github.com/matzehuels/roadcost/pkg/road"
	"github.com/matzehuels/roadcost/pkg/sheet"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

// estimate handles POST /api/v1/estimate.
func (s *Server) estimate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRequest(w, r)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	s.respond(w, r, req.Rows, req.options(s.cfg))
}

// upload handles POST /api/v1/estimate/upload. The sheet arrives in the
// "file" part; every other EstimateRequest field is a form value, with
// formats comma-separated.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Server.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Code:    errors.ErrCodeInvalidSheet,
				Message: "sheet exceeds " + strconv.FormatInt(s.cfg.Server.MaxUploadMB, 10) + " MB",
			})
			return
		}
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart form"), s.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidSheet, err, "missing sheet file"), s.logger)
		return
	}
	defer file.Close()
	if err := errors.ValidateSheetFilename(header.Filename); err != nil {
		writeError(w, r, err, s.logger)
		return
	}

	req, err := requestFromForm(r)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	rows, err := sheet.Decode(file, header.Filename)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	s.respond(w, r, rows, req.options(s.cfg))
}

// render handles POST /api/v1/render/{format}: the body is an
// EstimateRequest and the response is the raw diagram.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := estimate.ValidateFormat(format); err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	req, err := s.decodeRequest(w, r)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	opts := req.options(s.cfg)
	opts.Formats = []string{format}

	res, err := s.runner.Estimate(r.Context(), req.Rows, opts)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", estimate.ContentTypes[format])
	w.Header().Set(headerCache, cacheStatus(res.CacheInfo.RenderHit))
	w.Header().Set(headerEstimateID, uuid.NewString())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// respond runs the estimate and writes the JSON result.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, rows []road.Row, opts estimate.Options) {
	res, err := s.runner.Estimate(r.Context(), rows, opts)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	id := uuid.NewString()
	w.Header().Set(headerEstimateID, id)
	if len(opts.Formats) > 0 {
		w.Header().Set(headerCache, cacheStatus(res.CacheInfo.RenderHit))
	}
	writeJSON(w, http.StatusOK, EstimateResponse{ID: id, Result: res, Artifacts: res.Artifacts})
}

// decodeRequest reads a JSON EstimateRequest, keeping numbers exact.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (EstimateRequest, error) {
	var req EstimateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadMB<<20))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return req, nil
}

// requestFromForm builds an EstimateRequest from multipart form values.
// Malformed numbers are all reported together.
func requestFromForm(r *http.Request) (EstimateRequest, error) {
	var (
		req  EstimateRequest
		list errors.List
	)
	num := func(name string) *float64 {
		v := strings.TrimSpace(r.FormValue(name))
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			list.Add(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
			return nil
		}
		return &f
	}
	value := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}

	req.ChainageStart = value(num("chainage_start"))
	req.ChainageEnd = value(num("chainage_end"))
	req.RoadWidth = value(num("road_width"))
	req.PatchRepairRate = num("patch_repair_rate")
	req.AltMethodRate = num("alt_method_rate")
	req.PNGScale = value(num("png_scale"))

	if v, ok := r.Form["alt_method_name"]; ok && len(v) > 0 {
		name := v[0]
		req.AltMethodName = &name
	}
	if v := strings.TrimSpace(r.FormValue("patch_layers")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			list.Add(errors.ErrCodeInvalidInput, "patch_layers must be an integer, got %q", v)
		} else {
			req.PatchLayers = &n
		}
	}
	if v := strings.TrimSpace(r.FormValue("formats")); v != "" {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				req.Formats = append(req.Formats, f)
			}
		}
	}
	req.Refresh, _ = strconv.ParseBool(r.FormValue("refresh"))

	return req, list.Err()
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
