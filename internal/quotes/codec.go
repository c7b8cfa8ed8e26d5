package quotes

import (
	"encoding/json"
	"strings"
)

// Encode serializes the list as a JSON array of strings. A nil list encodes as [].
func Encode(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a stored list. Anything that is not a JSON array of strings is an
// error; blank entries are dropped.
func Decode(value string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, err
	}

	list := make([]string, 0, len(raw))
	for _, q := range raw {
		if strings.TrimSpace(q) == "" {
			continue
		}
		list = append(list, q)
	}
	return list, nil
}
