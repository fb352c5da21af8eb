package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/repograph/pkg/errors"
	"github.com/matzehuels/repograph/pkg/graph"
)

// MarshalResult converts a layout result to indented JSON bytes.
func MarshalResult(res Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteResult(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteResult writes a layout result as JSON to w.
func WriteResult(res Result, w io.Writer) error {
	if res.Nodes == nil {
		res.Nodes = []PositionedNode{}
	}
	if res.Edges == nil {
		res.Edges = []graph.Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// WriteResultFile writes a layout result to a JSON file.
func WriteResultFile(res Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteResult(res, f)
}

// ReadResult decodes a JSON layout result from r.
func ReadResult(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return res, nil
}

// ReadResultFile reads a JSON layout result file. A missing file is reported
// as [errors.ErrCodeFileNotFound].
func ReadResultFile(path string) (Result, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Result{}, errors.New(errors.ErrCodeFileNotFound, "layout file not found: %s", path)
	}
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResult(f)
}
