package directive

import (
	"encoding/json"
)

// Parse extracts every well-formed directive embedded in a block of
// assistant text, in appearance order. Text fragments that look like JSON
// but fail to decode, and objects without a recognizable "type" field, are
// skipped silently; Parse never fails. A text with no directives at all
// yields an empty slice.
func Parse(text string) []Directive {
	var directives []Directive

	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}

		end, ok := scanObject(text, i)
		if !ok {
			continue
		}

		d, ok := decode(text[i : end+1])
		if !ok {
			// Malformed or unrecognized fragment; keep scanning from the
			// next character so a valid object nested in garbage is still
			// found.
			continue
		}

		directives = append(directives, d)
		i = end
	}

	return directives
}

// scanObject returns the index of the brace closing the object that opens at
// start, honoring strings and escape sequences.
func scanObject(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}

func decode(fragment string) (Directive, bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return Directive{}, false
	}

	kind, ok := raw["type"].(string)
	if !ok {
		return Directive{}, false
	}

	switch Kind(kind) {
	case KindPlan:
		return decodePlan(raw), true
	case KindAction:
		return decodeAction(raw)
	case KindOutput:
		return Directive{Kind: KindOutput, Text: stringField(raw, "text")}, true
	default:
		return Directive{}, false
	}
}

func decodePlan(raw map[string]interface{}) Directive {
	d := Directive{
		Kind:     KindPlan,
		Text:     stringField(raw, "text"),
		Services: stringSlice(raw["services"]),
	}

	if items, ok := raw["resources"].([]interface{}); ok {
		for _, item := range items {
			if resource, ok := item.(map[string]interface{}); ok {
				d.Resources = append(d.Resources, resource)
			}
		}
	}

	return d
}

func decodeAction(raw map[string]interface{}) (Directive, bool) {
	function, ok := raw["function"].(string)
	if !ok || function == "" {
		return Directive{}, false
	}

	params := make(map[string]interface{})
	for key, value := range raw {
		if key == "type" || key == "function" {
			continue
		}
		params[key] = value
	}

	return Directive{Kind: KindAction, Function: function, Params: params}, true
}

func stringField(raw map[string]interface{}, key string) string {
	value, _ := raw[key].(string)
	return value
}

func stringSlice(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
