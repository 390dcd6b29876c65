package display

import (
	"encoding/json"
)

// MarshalJSON pretty-prints for terminal consumption.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
