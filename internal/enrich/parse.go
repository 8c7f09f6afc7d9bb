package enrich

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	codeFenceRegex  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

	errNoJSON = errors.New("no JSON object in response")
)

// parseCreative extracts CreativeFields from raw model output. Models wrap
// JSON in markdown fences or chat around it; strip fences first, then fall
// back to the first {...} block.
func parseCreative(raw string) (CreativeFields, error) {
	payload := strings.TrimSpace(raw)

	if m := codeFenceRegex.FindStringSubmatch(payload); m != nil {
		payload = strings.TrimSpace(m[1])
	} else if !strings.HasPrefix(payload, "{") {
		if m := jsonObjectRegex.FindString(payload); m != "" {
			payload = m
		}
	}

	if payload == "" || !strings.HasPrefix(payload, "{") {
		return CreativeFields{}, errNoJSON
	}

	var fields CreativeFields
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return CreativeFields{}, err
	}

	return fields, nil
}
