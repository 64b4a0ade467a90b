package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

var (
	// ErrDecode indicates the input could not be decoded.
	ErrDecode = errors.New("decode failed")

	// ErrEncode indicates the output could not be encoded.
	ErrEncode = errors.New("encode failed")

	// ErrUnknownFormat indicates an unsupported format name.
	ErrUnknownFormat = errors.New("unknown format")
)

// Format names a document encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (expected auto, json or yaml)", ErrUnknownFormat, s)
}

// Detect picks a format from a file name. YAML is the fallback because it
// also accepts JSON documents.
func Detect(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses every document in data, in order. Mappings are decoded as
// yaml.MapSlice so key order survives projection. JSON input holds exactly
// one document; YAML input may hold several separated by "---", and empty
// documents in the stream are skipped.
func Decode(data []byte, format Format) ([]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrDecode)
	}

	if format == FormatJSON && !json.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid JSON", ErrDecode)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var docs []any
	for _, doc := range file.Docs {
		if doc.Body == nil {
			continue
		}
		if _, ok := doc.Body.(*ast.CommentGroupNode); ok {
			continue
		}

		var v any
		if err := yaml.NodeToValue(doc.Body, &v, yaml.UseOrderedMap()); err != nil {
			return nil, fmt.Errorf("%w: document %d: %v", ErrDecode, len(docs)+1, err)
		}
		docs = append(docs, v)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrDecode)
	}
	return docs, nil
}

// Encoder writes a stream of documents in one format.
type Encoder struct {
	w      io.Writer
	format Format
	indent int
	count  int
}

// NewEncoder returns an encoder writing to w. For JSON an indent of zero
// produces compact output; YAML always indents, by two spaces unless told
// otherwise.
func NewEncoder(w io.Writer, format Format, indent int) *Encoder {
	return &Encoder{w: w, format: format, indent: indent}
}

// Encode writes one document. JSON documents are newline terminated; YAML
// documents after the first are preceded by a "---" separator.
func (e *Encoder) Encode(v any) error {
	var (
		out []byte
		err error
	)

	switch e.format {
	case FormatYAML:
		out, err = e.encodeYAML(v)
	default:
		out, err = e.encodeJSON(v)
	}
	if err != nil {
		return err
	}

	if _, err := e.w.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	e.count++
	return nil
}

func (e *Encoder) encodeYAML(v any) ([]byte, error) {
	indent := e.indent
	if indent <= 0 {
		indent = 2
	}

	out, err := yaml.MarshalWithOptions(v, yaml.Indent(indent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if e.count > 0 {
		out = append([]byte("---\n"), out...)
	}
	return out, nil
}

func (e *Encoder) encodeJSON(v any) ([]byte, error) {
	compact, err := appendJSON(nil, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if e.indent <= 0 {
		return append(compact, '\n'), nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", e.indent)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// appendJSON writes yaml.MapSlice entries in order. Plain maps are written
// with sorted keys, as encoding/json does.
func appendJSON(b []byte, v any) ([]byte, error) {
	switch v := v.(type) {
	case yaml.MapSlice:
		b = append(b, '{')
		for i, item := range v {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			if b, err = appendMember(b, keyString(item.Key), item.Value); err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	case map[string]any:
		b = append(b, '{')
		for i, k := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			if b, err = appendMember(b, k, v[k]); err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	case []any:
		b = append(b, '[')
		for i, elem := range v {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			if b, err = appendJSON(b, elem); err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	}

	return appendScalar(b, v)
}

func appendMember(b []byte, key string, value any) ([]byte, error) {
	b, err := appendScalar(b, key)
	if err != nil {
		return nil, err
	}
	b = append(b, ':')
	return appendJSON(b, value)
}

func appendScalar(b []byte, v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return append(b, bytes.TrimSuffix(buf.Bytes(), []byte("\n"))...), nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
