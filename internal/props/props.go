// Package props extracts typed inline properties from note text.
//
// Properties are written directly in prose with a compact bracket notation:
//
//	[title::My Book]                    one visible property
//	[draft:::true]                      hidden property (stored, not rendered)
//	[author::Cervantes, year::1605]     grouped record sharing one group id
//
// Values are classified into a small set of types (text, number, checkbox,
// date, date-time, note link, list, tags). Parsing is permissive: bracket
// spans that contain no recognisable key::value pair yield no properties and
// no error.
package props

import (
	"strings"
)

// Property is one inline property extracted from note content. It is a
// value-typed snapshot, not a live reference into the source text.
type Property struct {
	// Key is the property name (Unicode letter followed by letters, digits,
	// or underscores). Never empty.
	Key string `json:"key"`
	// Value is the typed value.
	Value Value `json:"value"`
	// RawValue is the literal value text as written, with escaped commas
	// restored. Used for display and round-tripping.
	RawValue string `json:"raw_value"`
	// LineNumber is the 1-indexed line on which the bracket span begins.
	LineNumber int `json:"line_number"`
	// CharStart and CharEnd are the byte offsets of the full [...] span in
	// the source content, inclusive/exclusive.
	CharStart int `json:"char_start"`
	CharEnd   int `json:"char_end"`
	// LinkedNote is the referenced note name when Value is a single link.
	LinkedNote string `json:"linked_note,omitempty"`
	// GroupID is 0 for a standalone property. Properties originating from
	// the same multi-pair bracket span share a positive GroupID, increasing
	// with each grouped span's position in the document.
	GroupID int `json:"group_id,omitempty"`
	// Hidden is true when the pair used the triple-colon separator (:::).
	Hidden bool `json:"hidden,omitempty"`
}

// FullText renders the property as it appears in the file, including the
// hidden separator when applicable.
func (p Property) FullText() string {
	sep := "::"
	if p.Hidden {
		sep = ":::"
	}
	return "[" + p.Key + sep + p.RawValue + "]"
}

// Parse extracts every inline property from content in document order.
// It never fails: unrecognised bracket interiors are skipped silently.
func (e *Engine) Parse(content string) []Property {
	var out []Property
	groupID := 0

	lineStarts := lineStartOffsets(content)

	for _, m := range e.span.FindAllStringSubmatchIndex(content, -1) {
		charStart, charEnd := m[0], m[1]
		inner := content[m[2]:m[3]]
		line := lineNumberAt(lineStarts, charStart)

		parsed := e.parseSpan(inner, line, charStart, charEnd)
		if len(parsed) == 0 {
			continue
		}

		// Multi-pair spans form a grouped record: one fresh group id shared
		// by every property in the span.
		gid := 0
		if len(parsed) > 1 {
			groupID++
			gid = groupID
		}
		for i := range parsed {
			parsed[i].GroupID = gid
		}
		out = append(out, parsed...)
	}

	return out
}

// parseSpan tokenizes one bracket span's interior into properties.
// Group ids are assigned by the caller.
func (e *Engine) parseSpan(inner string, line, charStart, charEnd int) []Property {
	if !e.pair.MatchString(inner) {
		return nil
	}

	// Substitute escaped commas with a sentinel so they cannot be confused
	// with value separators. Restored in RawValue and in final text values.
	escaped := strings.ReplaceAll(inner, `\,`, commaSentinel)

	pairs := e.pair.FindAllStringSubmatchIndex(escaped, -1)
	out := make([]Property, 0, len(pairs))

	for i, pm := range pairs {
		key := escaped[pm[2]:pm[3]]
		hidden := escaped[pm[4]:pm[5]] == ":::"

		valStart := pm[1]
		valEnd := len(escaped)
		if i+1 < len(pairs) {
			// The value stops at the last comma before the next key, so
			// stray text between that comma and the key belongs to neither
			// value. Fall back to the key start when no comma exists.
			next := pairs[i+1][0]
			valEnd = next
			if idx := strings.LastIndex(escaped[valStart:next], ","); idx >= 0 {
				valEnd = valStart + idx
			}
		}

		// The sentinel stays in place here so inference cannot mistake an
		// escaped comma for a list separator.
		rawWithSentinel := strings.TrimSpace(escaped[valStart:valEnd])

		value, linked := inferValue(rawWithSentinel)

		out = append(out, Property{
			Key:        key,
			Value:      value,
			RawValue:   restoreCommas(rawWithSentinel),
			LineNumber: line,
			CharStart:  charStart,
			CharEnd:    charEnd,
			LinkedNote: linked,
			Hidden:     hidden,
		})
	}

	return out
}

// lineStartOffsets returns the byte offset of the start of every line:
// position 0 plus one past every newline.
func lineStartOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// lineNumberAt returns the 1-indexed line containing the byte offset pos:
// the index of the first line start strictly greater than pos.
func lineNumberAt(offsets []int, pos int) int {
	for i, off := range offsets {
		if off > pos {
			return i
		}
	}
	return len(offsets)
}
