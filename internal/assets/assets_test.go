package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestPart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contains string
	}{
		{name: PartContentTypes, contains: "wordprocessingml.document.main+xml"},
		{name: PartRels, contains: "officeDocument"},
		{name: PartDocumentRels, contains: "styles.xml"},
		{name: PartStyles, contains: `w:styleId="Heading1"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			content, err := Part(tt.name)
			if err != nil {
				t.Fatalf("Part(%q) error = %v", tt.name, err)
			}
			if !strings.Contains(content, tt.contains) {
				t.Errorf("Part(%q) missing %q", tt.name, tt.contains)
			}
		})
	}
}

func TestPart_StylesComplete(t *testing.T) {
	t.Parallel()

	content, err := Part(PartStyles)
	if err != nil {
		t.Fatalf("Part(styles) error = %v", err)
	}
	for _, style := range []string{"Normal", "Heading1", "Heading2", "Heading3", "ListParagraph"} {
		if !strings.Contains(content, `w:styleId="`+style+`"`) {
			t.Errorf("styles.xml missing style %s", style)
		}
	}
}

func TestPart_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		part    string
		wantErr error
	}{
		{name: "empty", part: "", wantErr: ErrInvalidPartName},
		{name: "traversal", part: "../go", wantErr: ErrInvalidPartName},
		{name: "extension", part: "styles.xml", wantErr: ErrInvalidPartName},
		{name: "unknown", part: "footnotes", wantErr: ErrPartNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Part(tt.part); !errors.Is(err, tt.wantErr) {
				t.Errorf("Part(%q) error = %v, want %v", tt.part, err, tt.wantErr)
			}
		})
	}
}
