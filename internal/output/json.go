package output

import "encoding/json"

// ConfigJSON serializes a plan or configuration as a pretty-printed
// key-value document for export alongside the result series.
func ConfigJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
