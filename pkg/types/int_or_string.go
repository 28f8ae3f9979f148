package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IntOrString decodes a JSON number or a numeric string, as sent by HTML
// select and range inputs. null and "" decode to zero.
type IntOrString int

func (i *IntOrString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*i = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*i = 0
			return nil
		}
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*i = IntOrString(n)
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return fmt.Errorf("%q is not a whole number", raw)
	}

	*i = IntOrString(int(f))

	return nil
}
