package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Bounds on generated graphs accepted from users. Generation and the
// quadratic layout pass both run while the server holds its graph lock.
const (
	MaxRandomVertices = 1_000
	MaxRandomEdges    = 50_000
)

// ValidateRandomGraph validates parameters for random graph generation.
func ValidateRandomGraph(vertices, edges, maxWeight int) error {
	if vertices < 0 {
		return New(ErrCodeInvalidInput, "vertex count cannot be negative: %d", vertices)
	}
	if vertices > MaxRandomVertices {
		return New(ErrCodeInvalidInput, "vertex count too large (max %d)", MaxRandomVertices)
	}
	if edges < 0 {
		return New(ErrCodeInvalidInput, "edge count cannot be negative: %d", edges)
	}
	if edges > MaxRandomEdges {
		return New(ErrCodeInvalidInput, "edge count too large (max %d)", MaxRandomEdges)
	}
	if maxWeight < 1 {
		return New(ErrCodeInvalidInput, "max weight must be at least 1: %d", maxWeight)
	}
	return nil
}

// ValidateWeight validates an edge weight.
func ValidateWeight(w int) error {
	if w < 0 {
		return New(ErrCodeInvalidEdge, "edge weight cannot be negative: %d", w)
	}
	return nil
}

// ValidateViewport validates layout dimensions.
func ValidateViewport(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "viewport must be positive, got %gx%g", width, height)
	}
	return nil
}

// ValidatePath validates a user supplied graph file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must have an extension naming the file format
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if filepath.Ext(path) == "" {
		return New(ErrCodeInvalidPath, "path %q has no file extension", path)
	}
	return nil
}

// ValidateSnapshotName validates the name of a stored graph snapshot.
func ValidateSnapshotName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "snapshot name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "snapshot name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot name contains invalid control characters")
		}
	}
	return nil
}
