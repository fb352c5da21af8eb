package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/repograph/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestConvertMissingTool(t *testing.T) {
	prev := Converter
	Converter = "repograph-no-such-converter"
	defer func() { Converter = prev }()

	if Available() {
		t.Fatal("Available() = true for a missing converter")
	}
	for name, fn := range map[string]func() ([]byte, error){
		"pdf": func() ([]byte, error) { return ToPDF(context.Background(), []byte(tinySVG)) },
		"png": func() ([]byte, error) { return ToPNG(context.Background(), []byte(tinySVG), 2) },
	} {
		if _, err := fn(); !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("%s: error = %v, want %s", name, err, errors.ErrCodeUnsupported)
		}
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG: % x", png[:min(8, len(png))])
	}
}
