// Package extractor pulls a single value out of a JSON response body.
package extractor

import (
	"github.com/tidwall/gjson"
)

// Extract evaluates a JSON path against body and returns the value as a
// string. Supports both gjson syntax ("usage.total_tokens") and a leading
// "$." JSONPath prefix; a bare "$" returns the whole document.
func Extract(body []byte, path string) (string, bool) {
	if len(path) > 0 && path[0] == '$' {
		if len(path) > 1 && path[1] == '.' {
			path = path[2:]
		} else if len(path) == 1 {
			path = "@this"
		}
	}

	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return "", false
	}
	return result.String(), true
}
