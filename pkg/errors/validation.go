package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SheetExtensions lists the spreadsheet file extensions accepted for patch data.
var SheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
	".json": true,
}

// ValidateSheetFilename validates an uploaded patch spreadsheet name.
// It ensures the name is a simple basename with a supported extension.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 256 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Extension must be one of SheetExtensions (case-insensitive)
func ValidateSheetFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidSheet, "sheet filename cannot be empty")
	}

	if len(filename) > 256 {
		return New(ErrCodeInvalidSheet, "sheet filename too long (max 256 characters)")
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSheet, "sheet filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return New(ErrCodeInvalidSheet, "sheet filename cannot contain path components")
	}

	return ValidateSheetExtension(filename)
}

// ValidateSheetExtension checks that name ends in a supported spreadsheet
// extension. Unlike ValidateSheetFilename it accepts full paths.
func ValidateSheetExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return New(ErrCodeInvalidFormat, "sheet %q has no file extension (expected .xlsx, .csv or .json)", name)
	}
	if !SheetExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported sheet format %q (expected .xlsx, .csv or .json)", ext)
	}
	return nil
}
