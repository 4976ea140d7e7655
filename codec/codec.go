// Package codec encodes library manifests.
//
// Encoded data starts with the codec name on its own line, so Decode picks the codec that wrote
// it. Switching Default never makes existing manifests unreadable.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
)

var (
	// ErrNoHeader is returned by Decode when the codec line is missing.
	ErrNoHeader = errors.New("codec: missing codec line")

	// ErrUnknownCodec is returned by Decode for a codec name that is not registered.
	ErrUnknownCodec = errors.New("codec: unknown codec")
)

// Codec marshals values. Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// JSON uses encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

// GoJSON uses github.com/goccy/go-json. The output is plain JSON.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }

// Default writes new manifests.
var Default Codec = GoJSON{}

var registry = map[string]Codec{
	JSON{}.Name():   JSON{},
	GoJSON{}.Name(): GoJSON{},
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, bool) {
	c, ok := registry[name]
	return c, ok
}

// Encode marshals v with c and prefixes the result with the codec line.
// A nil c means Default.
func Encode(c Codec, v any) ([]byte, error) {
	if c == nil {
		c = Default
	}
	payload, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	out := make([]byte, 0, len(c.Name())+1+len(payload))
	out = append(out, c.Name()...)
	out = append(out, '\n')
	return append(out, payload...), nil
}

// Decode unmarshals data written by Encode into v and returns the codec named in it.
func Decode(data []byte, v any) (Codec, error) {
	name, payload, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		return nil, ErrNoHeader
	}
	c, ok := Lookup(string(name))
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCodec, name)
	}
	if err := c.Unmarshal(payload, v); err != nil {
		return c, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return c, nil
}
