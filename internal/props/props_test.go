package props

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func parseAll(t *testing.T, content string) []Property {
	t.Helper()
	return NewEngine().Parse(content)
}

func TestParse_Text(t *testing.T) {
	props := parseAll(t, "Esto es [titulo::Mi Libro] de texto.")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].Key != "titulo" {
		t.Errorf("key = %q, want %q", props[0].Key, "titulo")
	}
	want := Value{Kind: KindText, Text: "Mi Libro"}
	if diff := cmp.Diff(want, props[0].Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Number(t *testing.T) {
	props := parseAll(t, "El precio es [precio::99.99] euros.")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].Value.Kind != KindNumber || props[0].Value.Number != 99.99 {
		t.Errorf("value = %+v, want Number 99.99", props[0].Value)
	}
}

func TestParse_Boolean(t *testing.T) {
	props := parseAll(t, "Estado: [completado::true] y [pendiente::false]")
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	if props[0].Value.Kind != KindCheckbox || !props[0].Value.Bool {
		t.Errorf("first = %+v, want Checkbox true", props[0].Value)
	}
	if props[1].Value.Kind != KindCheckbox || props[1].Value.Bool {
		t.Errorf("second = %+v, want Checkbox false", props[1].Value)
	}
}

func TestParse_BooleanCaseInsensitive(t *testing.T) {
	props := parseAll(t, "[done::TRUE]")
	if len(props) != 1 || props[0].Value.Kind != KindCheckbox || !props[0].Value.Bool {
		t.Fatalf("props = %+v, want one Checkbox true", props)
	}
}

func TestParse_Date(t *testing.T) {
	props := parseAll(t, "Fecha: [fecha::2025-11-29]")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	want := Value{Kind: KindDate, Text: "2025-11-29"}
	if diff := cmp.Diff(want, props[0].Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Link(t *testing.T) {
	props := parseAll(t, "Autor: [autor::@Cervantes]")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].Value.Kind != KindLink || props[0].Value.Text != "Cervantes" {
		t.Errorf("value = %+v, want Link Cervantes", props[0].Value)
	}
	if props[0].LinkedNote != "Cervantes" {
		t.Errorf("linked note = %q, want %q", props[0].LinkedNote, "Cervantes")
	}
}

func TestParse_List(t *testing.T) {
	props := parseAll(t, "Items: [items::uno, dos, tres]")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	want := Value{Kind: KindList, Items: []string{"uno", "dos", "tres"}}
	if diff := cmp.Diff(want, props[0].Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Multiple(t *testing.T) {
	content := `
# Mi Libro

[tipo::libro]
[titulo::Don Quijote]
[autor::@Cervantes]
[año::1605]
[paginas::863]
[leido::true]

Este es un gran libro.
`
	props := parseAll(t, content)
	if len(props) != 6 {
		t.Fatalf("len = %d, want 6", len(props))
	}
	for _, p := range props {
		if p.GroupID != 0 {
			t.Errorf("%s: group id = %d, want 0", p.Key, p.GroupID)
		}
	}
}

func TestParse_LineNumbers(t *testing.T) {
	props := parseAll(t, "Linea 1\n[campo::valor]\nLinea 3")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].LineNumber != 2 {
		t.Errorf("line = %d, want 2", props[0].LineNumber)
	}
}

func TestParse_ByteOffsets(t *testing.T) {
	content := "El [precio::100] es bajo."
	props := parseAll(t, content)
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].CharStart != 3 || props[0].CharEnd != 16 {
		t.Errorf("span = [%d,%d), want [3,16)", props[0].CharStart, props[0].CharEnd)
	}
	if content[props[0].CharStart:props[0].CharEnd] != "[precio::100]" {
		t.Errorf("span slice = %q", content[props[0].CharStart:props[0].CharEnd])
	}
}

func TestParse_OffsetsInvariant(t *testing.T) {
	inputs := []string{
		"[a::1]",
		"texto [b::@X] más [c::uno, dos] fin",
		"multi\nline\n[d::2025-01-01, e::true]\n[f:::oculto]",
		"unicode ñ [año::1605] después",
	}
	for _, content := range inputs {
		for _, p := range parseAll(t, content) {
			if p.CharStart < 0 || p.CharStart >= p.CharEnd || p.CharEnd > len(content) {
				t.Errorf("input %q: invalid span [%d,%d) for key %s", content, p.CharStart, p.CharEnd, p.Key)
			}
			if p.Key == "" {
				t.Errorf("input %q: empty key", content)
			}
		}
	}
}

func TestParse_Grouped(t *testing.T) {
	props := parseAll(t, "Referencia: [autor::Cervantes, libro::Quijote, año::1605]")
	if len(props) != 3 {
		t.Fatalf("len = %d, want 3", len(props))
	}

	if props[0].GroupID == 0 {
		t.Fatal("expected a group id")
	}
	if props[1].GroupID != props[0].GroupID || props[2].GroupID != props[0].GroupID {
		t.Errorf("group ids differ: %d %d %d", props[0].GroupID, props[1].GroupID, props[2].GroupID)
	}

	keys := []string{props[0].Key, props[1].Key, props[2].Key}
	if diff := cmp.Diff([]string{"autor", "libro", "año"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	if props[0].Value.Kind != KindText || props[0].Value.Text != "Cervantes" {
		t.Errorf("autor = %+v", props[0].Value)
	}
	if props[1].Value.Kind != KindText || props[1].Value.Text != "Quijote" {
		t.Errorf("libro = %+v", props[1].Value)
	}
	if props[2].Value.Kind != KindNumber || props[2].Value.Number != 1605.0 {
		t.Errorf("año = %+v", props[2].Value)
	}
}

func TestParse_GroupedWithLinks(t *testing.T) {
	props := parseAll(t, "[tipo::libro, autor::@Cervantes, titulo::Quijote]")
	if len(props) != 3 {
		t.Fatalf("len = %d, want 3", len(props))
	}
	if props[0].GroupID == 0 {
		t.Error("expected a group id")
	}
	if props[1].Value.Kind != KindLink || props[1].LinkedNote != "Cervantes" {
		t.Errorf("second = %+v linked %q, want Link Cervantes", props[1].Value, props[1].LinkedNote)
	}
}

func TestParse_GroupBoundaryExcludesTrailingText(t *testing.T) {
	// Text between the last comma and the next key belongs to neither value.
	props := parseAll(t, "[a::uno, dos sobra, b::tres]")
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	want := Value{Kind: KindList, Items: []string{"uno", "dos sobra"}}
	if diff := cmp.Diff(want, props[0].Value); diff != "" {
		t.Errorf("a mismatch (-want +got):\n%s", diff)
	}
	if props[1].Value.Kind != KindText || props[1].Value.Text != "tres" {
		t.Errorf("b = %+v, want Text tres", props[1].Value)
	}
}

func TestParse_EscapedComma(t *testing.T) {
	props := parseAll(t, `[titulo::Cien años de soledad\, novela]`)
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].GroupID != 0 {
		t.Errorf("group id = %d, want 0", props[0].GroupID)
	}
	wantText := "Cien años de soledad, novela"
	if props[0].Value.Kind != KindText || props[0].Value.Text != wantText {
		t.Errorf("value = %+v, want Text %q", props[0].Value, wantText)
	}
	if props[0].RawValue != wantText {
		t.Errorf("raw = %q, want %q", props[0].RawValue, wantText)
	}
}

func TestParse_IndividualHasNoGroup(t *testing.T) {
	props := parseAll(t, "[autor::Cervantes] escribió [libro::Quijote]")
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	if props[0].GroupID != 0 || props[1].GroupID != 0 {
		t.Errorf("group ids = %d, %d, want 0, 0", props[0].GroupID, props[1].GroupID)
	}
}

func TestParse_MultipleGroupsIncrease(t *testing.T) {
	content := `
[autor::Cervantes, libro::Quijote]
[solo::una]
[autor::Borges, libro::Ficciones]
`
	props := parseAll(t, content)
	if len(props) != 5 {
		t.Fatalf("len = %d, want 5", len(props))
	}
	if props[0].GroupID != 1 || props[1].GroupID != 1 {
		t.Errorf("first group = %d, %d, want 1, 1", props[0].GroupID, props[1].GroupID)
	}
	if props[2].GroupID != 0 {
		t.Errorf("standalone group = %d, want 0", props[2].GroupID)
	}
	if props[3].GroupID != 2 || props[4].GroupID != 2 {
		t.Errorf("second group = %d, %d, want 2, 2", props[3].GroupID, props[4].GroupID)
	}
}

func TestParse_Hidden(t *testing.T) {
	props := parseAll(t, "[secreto:::valor] y [visible::otro]")
	if len(props) != 2 {
		t.Fatalf("len = %d, want 2", len(props))
	}
	if !props[0].Hidden {
		t.Error("triple-colon property should be hidden")
	}
	if props[0].Value.Kind != KindText || props[0].Value.Text != "valor" {
		t.Errorf("hidden value = %+v", props[0].Value)
	}
	if props[1].Hidden {
		t.Error("double-colon property should be visible")
	}
}

func TestParse_NonPropertySpansIgnored(t *testing.T) {
	content := "véase [nota al pie] y un [link](http://example.com) normal"
	if props := parseAll(t, content); len(props) != 0 {
		t.Errorf("props = %+v, want none", props)
	}
}

func TestParse_FirstBracketCloses(t *testing.T) {
	// No nesting: the first ] closes the span, an inner [ is literal text.
	props := parseAll(t, "antes [x::[y] después")
	if len(props) != 1 {
		t.Fatalf("len = %d, want 1", len(props))
	}
	if props[0].Value.Kind != KindText || props[0].Value.Text != "[y" {
		t.Errorf("value = %+v, want Text %q", props[0].Value, "[y")
	}
}

func TestParse_EmptyAndNoBrackets(t *testing.T) {
	if props := parseAll(t, ""); len(props) != 0 {
		t.Errorf("empty input: props = %+v", props)
	}
	if props := parseAll(t, "solo texto sin corchetes"); len(props) != 0 {
		t.Errorf("plain text: props = %+v", props)
	}
}

func TestFullText_RoundTrip(t *testing.T) {
	for _, content := range []string{"[precio::99.99]", "[secreto:::valor]"} {
		props := parseAll(t, content)
		if len(props) != 1 {
			t.Fatalf("%s: len = %d, want 1", content, len(props))
		}
		if got := props[0].FullText(); got != content {
			t.Errorf("FullText = %q, want %q", got, content)
		}
	}
}

func TestParse_FreshOnEveryCall(t *testing.T) {
	e := NewEngine()
	content := "[a::1, b::2]"
	first := e.Parse(content)
	second := e.Parse(content)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeat parse differs (-first +second):\n%s", diff)
	}
	// Group ids restart per call: no counter survives between parses.
	if second[0].GroupID != 1 {
		t.Errorf("group id = %d, want 1", second[0].GroupID)
	}
}

func TestLineNumberAt(t *testing.T) {
	content := "a\nbb\nccc"
	offsets := lineStartOffsets(content)
	if diff := cmp.Diff([]int{0, 2, 5}, offsets); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
	cases := []struct{ pos, want int }{
		{0, 1}, {1, 1}, {2, 2}, {4, 2}, {5, 3}, {7, 3},
	}
	for _, c := range cases {
		if got := lineNumberAt(offsets, c.pos); got != c.want {
			t.Errorf("lineNumberAt(%d) = %d, want %d", c.pos, got, c.want)
		}
	}
}

func TestParse_LargeDocumentOrder(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("relleno [k::v] más relleno\n")
	}
	props := parseAll(t, sb.String())
	if len(props) != 50 {
		t.Fatalf("len = %d, want 50", len(props))
	}
	for i, p := range props {
		if p.LineNumber != i+1 {
			t.Fatalf("prop %d line = %d, want %d", i, p.LineNumber, i+1)
		}
		if i > 0 && p.CharStart <= props[i-1].CharStart {
			t.Fatalf("prop %d out of document order", i)
		}
	}
}
