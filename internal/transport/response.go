package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

var (
	// ErrBodyConsumed is returned when a response body is read a second time.
	ErrBodyConsumed = errors.New("response body already consumed")
	// ErrDecode marks a response body that is not valid JSON.
	ErrDecode = errors.New("malformed JSON body")
)

// Kind tags the shape of a decoded response body.
type Kind int

const (
	// KindEmpty is a zero-length body or the JSON string "".
	KindEmpty Kind = iota
	// KindObject is a JSON object.
	KindObject
	// KindOther is any other JSON value, null and arrays included.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindObject:
		return "object"
	default:
		return "other"
	}
}

// Body is a response payload decoded once and tagged by Kind.
type Body struct {
	Kind  Kind
	raw   []byte
	value gjson.Result
}

// Object decodes the body as a generic JSON object. Numbers stay json.Number
// so large integers survive, and duplicate keys resolve to the last one.
func (b Body) Object() (map[string]any, bool) {
	if b.Kind != KindObject {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(b.raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, false
	}
	return obj, true
}

// StringField returns the named top-level field when the body is an object and
// the field holds a JSON string. Duplicate keys resolve to the last one.
func (b Body) StringField(name string) (string, bool) {
	if b.Kind != KindObject {
		return "", false
	}
	var (
		field gjson.Result
		found bool
	)
	b.value.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			field, found = value, true
		}
		return true
	})
	if !found || field.Type != gjson.String {
		return "", false
	}
	return field.Str, true
}

// DecodeBody classifies raw bytes into a Body.
func DecodeBody(raw []byte) (Body, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Body{Kind: KindEmpty, raw: raw}, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return Body{}, fmt.Errorf("%w (%d bytes)", ErrDecode, len(raw))
	}

	value := gjson.ParseBytes(trimmed)
	body := Body{Kind: KindOther, raw: raw, value: value}
	switch {
	case value.Type == gjson.String && value.Str == "":
		body.Kind = KindEmpty
	case value.IsObject():
		body.Kind = KindObject
	}
	return body, nil
}

// Response is the raw outcome of a request. Its body can be read once.
type Response struct {
	StatusCode int

	body     io.ReadCloser
	consumed bool
}

// ReadBody reads, closes and decodes the body. Later calls return
// ErrBodyConsumed.
func (r *Response) ReadBody() (Body, error) {
	if r.consumed {
		return Body{}, ErrBodyConsumed
	}
	r.consumed = true
	if r.body == nil {
		return Body{Kind: KindEmpty}, nil
	}
	defer r.body.Close()

	raw, err := io.ReadAll(r.body)
	if err != nil {
		return Body{}, fmt.Errorf("read body: %w", err)
	}
	return DecodeBody(raw)
}

// Close releases a body that was never read.
func (r *Response) Close() error {
	if r.consumed || r.body == nil {
		return nil
	}
	r.consumed = true
	return r.body.Close()
}
