package diag

import (
	"errors"
	"go/token"
	"strings"
	"testing"
)

func TestCode_Names(t *testing.T) {
	tests := []struct {
		code Code
		name string
		id   string
	}{
		{UnterminatedPlaceholder, "UnterminatedPlaceholder", "WEB1001"},
		{UnknownPlaceholder, "UnknownPlaceholder", "WEB1002"},
		{MalformedEntrySignature, "MalformedEntrySignature", "WEB2001"},
		{DuplicateEntryPoint, "DuplicateEntryPoint", "WEB2002"},
		{EntryMainConflict, "EntryMainConflict", "WEB2003"},
		{ManifestInvalid, "ManifestInvalid", "WEB3001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.code.ID(); got != tt.id {
				t.Errorf("ID() = %q, want %q", got, tt.id)
			}
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{
		Code:    UnknownPlaceholder,
		Pos:     token.Position{Filename: "main.go", Line: 3, Column: 9, Offset: 41},
		Message: `unknown placeholder "missing"`,
	}
	want := `main.go:3:9: unknown placeholder "missing" [WEB1002]`
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDiagnostic_ErrorNoPosition(t *testing.T) {
	d := Diagnostic{Code: ManifestInvalid, Message: "empty manifest"}
	want := "empty manifest [WEB3001]"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestList_Sort(t *testing.T) {
	var l List
	l.Add(DuplicateEntryPoint, token.Position{Filename: "b.go", Offset: 10}, "second entry")
	l.Add(UnknownPlaceholder, token.Position{Filename: "a.go", Offset: 50}, "unknown")
	l.Add(UnterminatedPlaceholder, token.Position{Filename: "a.go", Offset: 5}, "unterminated")
	l.Sort()

	want := []Code{UnterminatedPlaceholder, UnknownPlaceholder, DuplicateEntryPoint}
	for i, d := range l {
		if d.Code != want[i] {
			t.Fatalf("after Sort, position %d has code %v, want %v", i, d.Code, want[i])
		}
	}
}

func TestList_Err(t *testing.T) {
	var l List
	if err := l.Err(); err != nil {
		t.Fatalf("empty list Err() = %v, want nil", err)
	}

	l.Add(UnterminatedPlaceholder, token.Position{Filename: "a.go"}, "unterminated placeholder")
	err := l.Err()
	if err == nil {
		t.Fatal("non-empty list Err() = nil")
	}
	var got List
	if !errors.As(err, &got) {
		t.Fatalf("Err() is %T, want List", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestList_ErrorSummarizesCount(t *testing.T) {
	var l List
	l.Add(UnknownPlaceholder, token.Position{Filename: "a.go", Line: 1, Column: 1}, "first")
	l.Add(UnknownPlaceholder, token.Position{Filename: "a.go", Line: 2, Column: 1}, "second")
	if got := l.Error(); !strings.Contains(got, "and 1 more") {
		t.Errorf("Error() = %q, want it to mention the remaining count", got)
	}
}

func TestFprint(t *testing.T) {
	var l List
	l.Add(UnknownPlaceholder, token.Position{Filename: "a.go", Line: 2, Column: 4}, `unknown placeholder "x"`)

	var b strings.Builder
	Fprint(&b, l, PrintOptions{})
	want := `a.go:2:4: unknown placeholder "x" [WEB1002]` + "\n"
	if b.String() != want {
		t.Errorf("Fprint output = %q, want %q", b.String(), want)
	}
}
