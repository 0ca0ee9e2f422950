package props

import "strings"

// ReplaceProperty substitutes the bracket span of a previously parsed
// property with [key::newValue], returning the rewritten content.
//
// Known quirk, kept for compatibility with existing notes: the visible ::
// separator is always emitted, even when the original property was hidden.
func ReplaceProperty(content string, p Property, newValue string) string {
	var b strings.Builder
	b.Grow(len(content) + len(newValue))
	b.WriteString(content[:p.CharStart])
	b.WriteString("[")
	b.WriteString(p.Key)
	b.WriteString("::")
	b.WriteString(newValue)
	b.WriteString("]")
	b.WriteString(content[p.CharEnd:])
	return b.String()
}

// InsertProperty appends " [key::value]" to the end of the given 1-indexed
// line. Lines beyond the end of the document leave the content unchanged.
// The original line terminators (including any trailing \r) are preserved.
func InsertProperty(content string, line int, key, value string) string {
	lines := strings.Split(content, "\n")
	idx := line - 1
	if idx < 0 || idx >= len(lines) {
		return content
	}

	target := lines[idx]
	cr := strings.HasSuffix(target, "\r")
	target = strings.TrimSuffix(target, "\r")
	target += " [" + key + "::" + value + "]"
	if cr {
		target += "\r"
	}
	lines[idx] = target

	return strings.Join(lines, "\n")
}
