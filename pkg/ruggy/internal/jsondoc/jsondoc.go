// Package jsondoc implements the document semantics shared by the pure-Go
// storage engines: strict object decoding, array payload encoding, and the
// field-matching rules. Only string-valued fields participate in matching,
// except that equality operators also accept numeric fields by comparing
// their decimal representation against the query value.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// IDField is the reserved document identity field.
const IDField = "_id"

// DecodeObject parses data as a JSON object. Arrays, scalars, null, and
// malformed input are rejected. Numeric literals are preserved as
// json.Number so equality filters compare the original decimal text.
func DecodeObject(data []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// DecodeValue parses data as any JSON value, including null.
func DecodeValue(data []byte) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// EncodeDoc serializes a single document.
func EncodeDoc(doc map[string]any) ([]byte, bool) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, false
	}
	return b, true
}

// EncodeDocs serializes documents as a JSON array payload. A nil slice
// encodes as the empty array, never as null.
func EncodeDocs(docs []map[string]any) (string, bool) {
	if docs == nil {
		docs = []map[string]any{}
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// Match reports whether doc's field is a string equal to value. Numeric,
// boolean, and missing fields never match.
func Match(doc map[string]any, field, value string) bool {
	s, ok := doc[field].(string)
	return ok && s == value
}

// MatchOperator reports whether doc's field matches value under operator.
// String fields support "=", "==", "eq", "like", "LIKE", "contains",
// "starts_with", and "ends_with". Numeric fields support only the equality
// operators. Unknown operators match nothing.
func MatchOperator(doc map[string]any, field, value, operator string) bool {
	switch v := doc[field].(type) {
	case string:
		switch operator {
		case "=", "==", "eq":
			return v == value
		case "like", "LIKE", "contains":
			return strings.Contains(v, value)
		case "starts_with":
			return strings.HasPrefix(v, value)
		case "ends_with":
			return strings.HasSuffix(v, value)
		}
	case json.Number:
		if isEq(operator) {
			return v.String() == value
		}
	case float64:
		if isEq(operator) {
			return strconv.FormatFloat(v, 'f', -1, 64) == value
		}
	case int:
		if isEq(operator) {
			return strconv.Itoa(v) == value
		}
	case int64:
		if isEq(operator) {
			return strconv.FormatInt(v, 10) == value
		}
	}
	return false
}

func isEq(operator string) bool {
	return operator == "=" || operator == "==" || operator == "eq"
}

// ID returns doc's "_id" when present as a string.
func ID(doc map[string]any) (string, bool) {
	s, ok := doc[IDField].(string)
	return s, ok
}
