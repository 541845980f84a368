package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// PrimaryKind tags the primary result of a response.
type PrimaryKind uint8

const (
	PrimaryNull PrimaryKind = iota
	PrimaryText
	// PrimaryFalse is the sentinel for an empty program that ran clean.
	PrimaryFalse
)

// Primary is null, a text, or the boolean-false sentinel. The zero value is null.
type Primary struct {
	Kind PrimaryKind
	Text string
}

var (
	Null  = Primary{}
	False = Primary{Kind: PrimaryFalse}
)

func Text(s string) Primary { return Primary{Kind: PrimaryText, Text: s} }

func (p Primary) IsNull() bool { return p.Kind == PrimaryNull }

// String renders the primary the way the CLI prints it.
func (p Primary) String() string {
	switch p.Kind {
	case PrimaryText:
		return p.Text
	case PrimaryFalse:
		return "false"
	}
	return "null"
}

func (p Primary) value() any {
	switch p.Kind {
	case PrimaryText:
		return p.Text
	case PrimaryFalse:
		return false
	}
	return nil
}

func (p *Primary) setValue(v any) error {
	switch v := v.(type) {
	case nil:
		*p = Null
	case string:
		*p = Text(v)
	case bool:
		if v {
			return fmt.Errorf("primary result cannot be true")
		}
		*p = False
	default:
		return fmt.Errorf("primary result: unexpected %T", v)
	}
	return nil
}

// MarshalJSON keeps '<' and '>' literal: reports in HTML mode are markup.
func (p Primary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p.value()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (p *Primary) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.setValue(v)
}

var (
	_ msgpack.CustomEncoder = Primary{}
	_ msgpack.CustomDecoder = (*Primary)(nil)
)

func (p Primary) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(p.value())
}

func (p *Primary) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterface()
	if err != nil {
		return err
	}
	return p.setValue(v)
}

// Response is the two-field answer of every operation. Diagnostics is nil
// when the request produced no findings.
type Response struct {
	Result      Primary `json:"result" msgpack:"result"`
	Diagnostics *string `json:"diagnostics" msgpack:"diagnostics"`
}

// Report returns the rendered diagnostics or "".
func (r Response) Report() string {
	if r.Diagnostics == nil {
		return ""
	}
	return *r.Diagnostics
}

// WriteJSON writes r as one JSON object followed by a newline.
func (r Response) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// WriteMsgpack writes r as a msgpack map with the same keys as JSON.
func (r Response) WriteMsgpack(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// DecodeMsgpack reads a response written by WriteMsgpack.
func DecodeMsgpack(data []byte) (Response, error) {
	var r Response
	if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&r); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}
	return r, nil
}
