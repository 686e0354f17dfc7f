package yamlutil

import (
	"bytes"
	"errors"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: md2doc\ncount: 3\n"), &s); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}
	if s.Name != "md2doc" || s.Count != 3 {
		t.Errorf("got %+v, want {md2doc 3}", s)
	}
}

func TestUnmarshalStrict_UnknownFieldRejected(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: x\nextra: y\n"), &s); err == nil {
		t.Error("UnmarshalStrict() error = nil, want unknown field rejected")
	}
}

func TestUnmarshalStrict_Validation(t *testing.T) {
	t.Parallel()

	var s sample

	if err := UnmarshalStrict(nil, &s); !errors.Is(err, ErrNilData) {
		t.Errorf("nil data error = %v, want %v", err, ErrNilData)
	}
	if err := UnmarshalStrict([]byte("name: x"), nil); !errors.Is(err, ErrNilDestination) {
		t.Errorf("nil destination error = %v, want %v", err, ErrNilDestination)
	}

	big := bytes.Repeat([]byte("a"), MaxInputSize+1)
	if err := UnmarshalStrict(big, &s); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("oversized input error = %v, want %v", err, ErrInputTooLarge)
	}
}

func TestUnmarshalStrict_Malformed(t *testing.T) {
	t.Parallel()

	var s sample
	if err := UnmarshalStrict([]byte("name: [unclosed"), &s); err == nil {
		t.Error("UnmarshalStrict() error = nil, want parse error")
	}
}
