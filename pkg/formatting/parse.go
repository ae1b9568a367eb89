package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrParseFailed is returned when content is neither JSON nor a fenced
// JSON or YAML block.
var ErrParseFailed = errors.New("failed to parse content")

const fence = "```"

// Parse decodes content into T. Bare JSON is tried first, then the first
// markdown code fence in content: json fences decode as JSON, yaml and yml
// fences as YAML, and unlabeled fences as either.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	lang, body, ok := fenced(content)
	if ok {
		if lang != "yaml" && lang != "yml" {
			if err := json.Unmarshal([]byte(body), &result); err == nil {
				return result, nil
			}
		}
		if lang != "json" {
			var out T
			if err := yaml.Unmarshal([]byte(body), &out); err == nil {
				return out, nil
			}
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

// fenced returns the language label and body of the first closed code fence.
func fenced(content string) (lang, body string, ok bool) {
	_, after, ok := strings.Cut(content, fence)
	if !ok {
		return "", "", false
	}
	header, rest, _ := strings.Cut(after, "\n")
	body, _, ok = strings.Cut(rest, fence)
	if !ok {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(header)), strings.TrimSpace(body), true
}
