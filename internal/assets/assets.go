// Package assets provides the embedded OOXML package parts a .docx file
// is assembled from: the content-types manifest, package relationships,
// and the style definitions (Normal, Heading1-3, ListParagraph).
package assets

import (
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed parts/*.xml
var parts embed.FS

// Sentinel errors for asset loading.
var (
	ErrPartNotFound    = errors.New("ooxml part not found")
	ErrInvalidPartName = errors.New("invalid ooxml part name")
)

// Part names accepted by Part.
const (
	PartContentTypes = "content_types"
	PartRels         = "rels"
	PartDocumentRels = "document_rels"
	PartStyles       = "styles"
)

// Part loads an embedded OOXML part by name, without the .xml extension.
// Returns ErrInvalidPartName for names containing path separators, dots,
// or traversal characters; ErrPartNotFound for unknown names.
func Part(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPartName, name)
	}

	content, err := parts.ReadFile("parts/" + name + ".xml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPartNotFound, name)
	}
	return string(content), nil
}
