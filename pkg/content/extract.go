package content

import (
	"encoding/json"
	"strings"

	"github.com/jordanlanch/campaignforge/pkg/domain"
)

// ExtractJSONObject locates the first balanced top-level JSON object in
// free-form model output and returns it verbatim. It scans for candidate
// '{' positions and lets the JSON decoder do the balancing, so braces
// inside string values cannot break the match. A response with no object
// fails deterministically.
func ExtractJSONObject(text string) (string, error) {
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return string(raw), nil
		}
	}

	return "", domain.NewMalformedOutputError("no JSON object found in model output", nil)
}
