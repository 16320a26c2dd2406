package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseFrontMatter splits a document into front matter, body and format
// (yaml for ---, toml for +++, json for a leading object).
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := strings.ReplaceAll(string(content), "\r\n", "\n")

	if strings.HasPrefix(str, "---\n") {
		parts := strings.SplitN(str, "---", 3) // "", FM, Body
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
				return nil, "", "", fmt.Errorf("yaml front matter: %w", err)
			}
			return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "yaml", nil
		}
	}
	if strings.HasPrefix(str, "+++\n") {
		parts := strings.SplitN(str, "+++", 3)
		if len(parts) == 3 {
			var fm map[string]interface{}
			if err := toml.Unmarshal([]byte(parts[1]), &fm); err != nil {
				return nil, "", "", fmt.Errorf("toml front matter: %w", err)
			}
			return sanitizeFrontMatter(fm), strings.TrimSpace(parts[2]), "toml", nil
		}
	}
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		// JSON front matter is a leading object followed by the body.
		dec := json.NewDecoder(strings.NewReader(str))
		var fm map[string]interface{}
		if err := dec.Decode(&fm); err != nil {
			return nil, "", "", fmt.Errorf("json front matter: %w", err)
		}
		body := str[dec.InputOffset():]
		return fm, strings.TrimSpace(body), "json", nil
	}

	return nil, "", "", fmt.Errorf("unknown format")
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	default:
		return v
	}
}

// frontMatterString reads a scalar field, formatting dates as 2 January 2006.
func frontMatterString(fm map[string]interface{}, key string) string {
	switch v := fm[key].(type) {
	case nil:
		return ""
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.Format("2 January 2006")
		}
		return v
	case time.Time:
		return v.Format("2 January 2006")
	case toml.LocalDate:
		return v.AsTime(time.UTC).Format("2 January 2006")
	case toml.LocalDateTime:
		return v.AsTime(time.UTC).Format("2 January 2006")
	default:
		return fmt.Sprint(v)
	}
}
