package props

import (
	"strconv"
	"strings"
)

// Kind identifies the inferred type of a property value.
type Kind string

// Value kinds, in inference priority order.
const (
	KindLink     Kind = "link"
	KindCheckbox Kind = "checkbox"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindTags     Kind = "tags"
	KindLinks    Kind = "links"
	KindList     Kind = "list"
	KindText     Kind = "text"
)

// Value is a typed property value. Exactly one payload field is meaningful,
// selected by Kind: Text for text/date/datetime/link, Number for number,
// Bool for checkbox, Items for tags/links/list.
type Value struct {
	Kind   Kind     `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Number float64  `json:"number,omitempty"`
	Bool   bool     `json:"bool,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// String returns a display form of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindCheckbox:
		return strconv.FormatBool(v.Bool)
	case KindTags, KindLinks, KindList:
		return strings.Join(v.Items, ", ")
	default:
		return v.Text
	}
}

// commaSentinel temporarily stands in for an escaped comma (\,) during
// tokenization and inference, so it is never mistaken for a list separator.
const commaSentinel = "\x00ESCAPED_COMMA\x00"

func restoreCommas(s string) string {
	return strings.ReplaceAll(s, commaSentinel, ",")
}

// inferValue classifies one trimmed raw value (sentinel commas still in
// place) using a strict priority cascade; the first matching rule wins.
// The second return is the linked note name when the value is a single
// relation, empty otherwise.
func inferValue(raw string) (Value, string) {
	trimmed := strings.TrimSpace(raw)

	// 1. Relation: @Name links to another note. A literal comma means the
	// value is a candidate multi-link list instead, handled below.
	if strings.HasPrefix(trimmed, "@") && !strings.Contains(trimmed, ",") {
		name := restoreCommas(trimmed[1:])
		return Value{Kind: KindLink, Text: name}, name
	}

	// 2. Boolean.
	if strings.EqualFold(trimmed, "true") {
		return Value{Kind: KindCheckbox, Bool: true}, ""
	}
	if strings.EqualFold(trimmed, "false") {
		return Value{Kind: KindCheckbox, Bool: false}, ""
	}

	// 3. Number, only when no literal comma is present: comma-grouped
	// numerals like 1,234 deliberately fall through to list handling.
	if !strings.Contains(trimmed, ",") {
		if n, err := strconv.ParseFloat(restoreCommas(trimmed), 64); err == nil {
			return Value{Kind: KindNumber, Number: n}, ""
		}
	}

	// 4. Date (shape only, no calendar validation).
	if isDate(trimmed) {
		return Value{Kind: KindDate, Text: trimmed}, ""
	}

	// 5. DateTime.
	if isDateTime(trimmed) {
		return Value{Kind: KindDateTime, Text: trimmed}, ""
	}

	// 6. List family: comma-separated items, trimmed, empties dropped.
	if strings.Contains(trimmed, ",") {
		var items []string
		for _, part := range strings.Split(trimmed, ",") {
			if p := strings.TrimSpace(part); p != "" {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			if allHavePrefix(items, "#") {
				return Value{Kind: KindTags, Items: stripPrefix(items, "#")}, ""
			}
			if allHavePrefix(items, "@") {
				return Value{Kind: KindLinks, Items: stripPrefix(items, "@")}, ""
			}
			return Value{Kind: KindList, Items: items}, ""
		}
	}

	// 7. Inline tag shorthand: #a #b with no commas.
	if strings.HasPrefix(trimmed, "#") && allHavePrefix(strings.Fields(trimmed), "#") {
		return Value{Kind: KindTags, Items: stripPrefix(strings.Fields(trimmed), "#")}, ""
	}

	// 8. Fallback: plain text.
	return Value{Kind: KindText, Text: restoreCommas(trimmed)}, ""
}

// isDate reports whether s has the exact shape YYYY-MM-DD with all-digit
// segments. Out-of-range months and days still qualify.
func isDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return false
	}
	if len(parts[0]) != 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return false
	}
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	return true
}

// isDateTime reports whether s looks like YYYY-MM-DDTHH:MM:SS...
func isDateTime(s string) bool {
	return strings.Contains(s, "T") && len(s) >= 19 && isDate(s[:10])
}

func allHavePrefix(items []string, prefix string) bool {
	for _, it := range items {
		if !strings.HasPrefix(it, prefix) {
			return false
		}
	}
	return true
}

func stripPrefix(items []string, prefix string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = strings.TrimPrefix(it, prefix)
	}
	return out
}
