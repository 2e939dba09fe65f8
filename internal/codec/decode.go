package codec

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// envelopeData returns the value of payload's data key, reporting whether
// payload is an object with that key, even when its value is null.
func envelopeData(payload []byte) (json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if !isObject(payload) || json.Unmarshal(payload, &m) != nil {
		return nil, false
	}
	data, ok := m["data"]
	return data, ok
}

// unwrap peels up to two data envelopes off payload and reports whether what
// remains is accepted by valid. An envelope is never itself the result.
func unwrap(payload []byte, valid func([]byte) bool) (json.RawMessage, bool) {
	raw := json.RawMessage(payload)
	for depth := 0; depth < 2; depth++ {
		data, ok := envelopeData(raw)
		if !ok {
			break
		}
		raw = data
	}
	if !valid(raw) {
		return nil, false
	}
	return raw, true
}

func startsWith(b []byte, c byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == c
}

func isObject(b []byte) bool { return startsWith(b, '{') }
func isArray(b []byte) bool  { return startsWith(b, '[') }

// DecodeOne decodes a single entity, unwrapping up to two data envelopes.
func DecodeOne[T any](payload []byte) (T, error) {
	var v T
	raw, ok := unwrap(payload, isObject)
	if !ok {
		return v, errors.New("decoding response: expected a JSON object")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, errors.Wrap(err, "decoding response")
	}
	return v, nil
}

// DecodeList decodes a collection. A payload without an array at any
// envelope depth decodes to an empty list.
func DecodeList[T any](payload []byte) ([]T, error) {
	raw, ok := unwrap(payload, isArray)
	if !ok {
		return []T{}, nil
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}
