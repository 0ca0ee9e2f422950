package props

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInferValue_Cascade(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Value
	}{
		{"link", "@Cervantes", Value{Kind: KindLink, Text: "Cervantes"}},
		{"bool true", "true", Value{Kind: KindCheckbox, Bool: true}},
		{"bool false", "FALSE", Value{Kind: KindCheckbox, Bool: false}},
		{"integer", "1605", Value{Kind: KindNumber, Number: 1605}},
		{"float", "99.99", Value{Kind: KindNumber, Number: 99.99}},
		{"negative", "-3.5", Value{Kind: KindNumber, Number: -3.5}},
		{"scientific", "1e3", Value{Kind: KindNumber, Number: 1000}},
		{"date", "2025-11-29", Value{Kind: KindDate, Text: "2025-11-29"}},
		{"date out of range kept", "2025-13-40", Value{Kind: KindDate, Text: "2025-13-40"}},
		{"datetime", "2025-11-29T10:30:00", Value{Kind: KindDateTime, Text: "2025-11-29T10:30:00"}},
		{"datetime with zone", "2025-11-29T10:30:00+02:00", Value{Kind: KindDateTime, Text: "2025-11-29T10:30:00+02:00"}},
		{"list", "uno, dos, tres", Value{Kind: KindList, Items: []string{"uno", "dos", "tres"}}},
		{"list drops empties", "uno,, dos,", Value{Kind: KindList, Items: []string{"uno", "dos"}}},
		{"comma numeral is a list", "1,234", Value{Kind: KindList, Items: []string{"1", "234"}}},
		{"tags comma", "#go, #notas", Value{Kind: KindTags, Items: []string{"go", "notas"}}},
		{"tags inline", "#go #notas", Value{Kind: KindTags, Items: []string{"go", "notas"}}},
		{"links list", "@Uno,@Dos", Value{Kind: KindLinks, Items: []string{"Uno", "Dos"}}},
		{"mixed prefixes stay a list", "#go, @Nota", Value{Kind: KindList, Items: []string{"#go", "@Nota"}}},
		{"text", "Mi Libro", Value{Kind: KindText, Text: "Mi Libro"}},
		{"almost date", "2025-1-29", Value{Kind: KindText, Text: "2025-1-29"}},
		{"short datetime is text", "2025-11-29T10", Value{Kind: KindText, Text: "2025-11-29T10"}},
		{"hash mid text", "ver #go luego", Value{Kind: KindText, Text: "ver #go luego"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := inferValue(tc.raw)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("inferValue(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestInferValue_LinkedNote(t *testing.T) {
	_, linked := inferValue("@Cervantes")
	if linked != "Cervantes" {
		t.Errorf("linked = %q, want %q", linked, "Cervantes")
	}
	_, linked = inferValue("@Uno,@Dos")
	if linked != "" {
		t.Errorf("multi-link linked = %q, want empty", linked)
	}
	_, linked = inferValue("texto normal")
	if linked != "" {
		t.Errorf("text linked = %q, want empty", linked)
	}
}

func TestInferValue_SentinelCommaIsNotASeparator(t *testing.T) {
	// A sentinel-substituted escaped comma must not trigger list handling
	// and must be restored in the final text.
	raw := "Cien años" + commaSentinel + " novela"
	got, _ := inferValue(raw)
	want := Value{Kind: KindText, Text: "Cien años, novela"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIsDate(t *testing.T) {
	valid := []string{"2025-11-29", "0000-00-00", "9999-13-40"}
	for _, s := range valid {
		if !isDate(s) {
			t.Errorf("isDate(%q) = false, want true", s)
		}
	}
	invalid := []string{"2025-1-29", "25-11-29", "2025/11/29", "2025-11-2x", "2025-11-29 ", "202５-11-29"}
	for _, s := range invalid {
		if isDate(s) {
			t.Errorf("isDate(%q) = true, want false", s)
		}
	}
}

func TestValue_String(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Value{Kind: KindText, Text: "hola"}, "hola"},
		{Value{Kind: KindNumber, Number: 99.99}, "99.99"},
		{Value{Kind: KindCheckbox, Bool: true}, "true"},
		{Value{Kind: KindList, Items: []string{"a", "b"}}, "a, b"},
		{Value{Kind: KindDate, Text: "2025-11-29"}, "2025-11-29"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("String(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}
