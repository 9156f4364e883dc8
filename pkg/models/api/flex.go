package api

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString accepts any JSON scalar. Numbers keep their literal text, booleans become
// "true"/"false", and null, objects and arrays decode to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err == nil {
			*s = FlexString(v)
		}
	case 't', 'f':
		*s = FlexString(data)
	case 'n', '{', '[':
	default:
		*s = FlexString(data)
	}
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// FlexInt accepts JSON numbers, decimal strings and 0x-prefixed hex strings as emitted by chain
// RPC nodes. Anything else decodes to 0.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		raw = strings.TrimSpace(v)
	}

	if v, ok := parseInt(raw); ok {
		*n = FlexInt(v)
	}
	return nil
}

func parseInt(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		v, err := strconv.ParseInt(raw[2:], 16, 64)
		return v, err == nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// isObject reports whether data holds a JSON object.
func isObject(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
