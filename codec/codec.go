// Package codec centralizes the JSON encoding used for palette catalogs and
// pattern reports.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Decode reads all of r and unmarshals it into v using c (Default if nil).
func Decode(c Codec, r io.Reader, v any) error {
	if c == nil {
		c = Default
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return nil
}

// Encode marshals v with c (Default if nil) and writes it to w.
func Encode(c Codec, w io.Writer, v any) error {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	_, err = w.Write(b)
	return err
}
