package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AttributeKind tags the variant held by an AttributeValue.
type AttributeKind int

const (
	AttributeNull AttributeKind = iota
	AttributeString
	AttributeNumber
	AttributeBool
	AttributeList
)

// AttributeValue is a scalar JSON value or a list of them.
type AttributeValue struct {
	kind AttributeKind
	str  string
	num  json.Number
	b    bool
	list []AttributeValue
}

func StringValue(s string) AttributeValue      { return AttributeValue{kind: AttributeString, str: s} }
func NumberValue(n json.Number) AttributeValue { return AttributeValue{kind: AttributeNumber, num: n} }
func BoolValue(b bool) AttributeValue          { return AttributeValue{kind: AttributeBool, b: b} }
func NullValue() AttributeValue                { return AttributeValue{} }
func ListValue(v ...AttributeValue) AttributeValue {
	return AttributeValue{kind: AttributeList, list: v}
}

func (v AttributeValue) Kind() AttributeKind { return v.kind }

// Text renders the value as plain text: strings verbatim, everything else as JSON.
func (v AttributeValue) Text() string {
	if v.kind == AttributeString {
		return v.str
	}
	b, _ := v.MarshalJSON()
	return string(b)
}

// List returns the elements of a list value, or nil for other kinds.
func (v AttributeValue) List() []AttributeValue {
	return v.list
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttributeString:
		return json.Marshal(v.str)
	case AttributeNumber:
		return []byte(v.num.String()), nil
	case AttributeBool:
		return json.Marshal(v.b)
	case AttributeList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	*v = AttributeValueFromJSON(data)
	return nil
}

// AttributeValueFromJSON converts an arbitrary JSON value into the closed variant.
// Objects, at any depth, are kept as their compact JSON text.
func AttributeValueFromJSON(raw json.RawMessage) AttributeValue {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return NullValue()
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return StringValue(string(trimmed))
		}
		return StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return StringValue(string(trimmed))
		}
		return BoolValue(b)
	case 'n':
		return NullValue()
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return StringValue(string(trimmed))
		}
		out := make([]AttributeValue, 0, len(items))
		for _, item := range items {
			out = append(out, AttributeValueFromJSON(item))
		}
		return ListValue(out...)
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return StringValue(string(trimmed))
		}
		return StringValue(buf.String())
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return StringValue(string(trimmed))
		}
		return NumberValue(n)
	}
}

// Attributes is the ordered attribute mapping of a token.
type Attributes = orderedmap.OrderedMap[string, AttributeValue]

// NewAttributes returns an empty attribute mapping.
func NewAttributes() *Attributes {
	return orderedmap.New[string, AttributeValue]()
}

// Metadata is an upstream metadata object with its key order preserved.
type Metadata = orderedmap.OrderedMap[string, json.RawMessage]

// NewMetadata returns an empty metadata object.
func NewMetadata() *Metadata {
	return orderedmap.New[string, json.RawMessage]()
}

// ParseMetadata decodes a JSON object preserving key order. Anything that is not an
// object yields nil.
func ParseMetadata(raw json.RawMessage) *Metadata {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	m := NewMetadata()
	if err := json.Unmarshal(trimmed, m); err != nil {
		return nil
	}
	return m
}

// MetadataString returns the string form of a metadata field: strings verbatim,
// arrays of strings joined, other scalars as JSON text. Missing or null yields "".
func MetadataString(m *Metadata, key string) string {
	if m == nil {
		return ""
	}
	raw, ok := m.Get(key)
	if !ok {
		return ""
	}
	v := AttributeValueFromJSON(raw)
	switch v.Kind() {
	case AttributeNull:
		return ""
	case AttributeList:
		var sb strings.Builder
		for _, item := range v.List() {
			sb.WriteString(item.Text())
		}
		return sb.String()
	default:
		return v.Text()
	}
}
