package operators

import (
	"testing"

	"jspress/pkg/errors"
)

func TestDefaultTable(t *testing.T) {
	tests := []struct {
		token string
		want  Descriptor
	}{
		{Primary, Descriptor{19, AssocNone}},
		{Member, Descriptor{18, LTR}},
		{NewCall, Descriptor{18, RTL}},
		{Call, Descriptor{17, LTR}},
		{Postfix("++"), Descriptor{16, AssocNone}},
		{Prefix("typeof"), Descriptor{15, RTL}},
		{"**", Descriptor{14, RTL}},
		{"*", Descriptor{14, LTR}},
		{"-", Descriptor{13, LTR}},
		{"in", Descriptor{11, LTR}},
		{"===", Descriptor{10, LTR}},
		{"||", Descriptor{5, LTR}},
		{Cond, Descriptor{4, RTL}},
		{">>>=", Descriptor{3, RTL}},
		{Group, Descriptor{3, AssocNone}},
		{Yield, Descriptor{2, RTL}},
		{Comma, Descriptor{0, LTR}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := Default().Lookup(tt.token)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.token)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestDefaultTableHasNoDuplicates(t *testing.T) {
	if w := Default().Warnings(); len(w) != 0 {
		t.Fatalf("standard table produced warnings: %v", w)
	}
}

func TestLookupMissing(t *testing.T) {
	if _, ok := Default().Lookup("??"); ok {
		t.Errorf("Lookup(\"??\") found an entry")
	}
}

func TestNewTableDuplicate(t *testing.T) {
	table, warnings := NewTable([]Entry{
		{[]string{"+", "-"}, Descriptor{13, LTR}},
		{[]string{"+"}, Descriptor{1, RTL}},
	})
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if _, ok := warnings[0].(*errors.ConfigError); !ok {
		t.Errorf("warning is %T, want *errors.ConfigError", warnings[0])
	}
	if warnings[0].Severity() != errors.SeverityWarning {
		t.Errorf("severity = %v, want warning", warnings[0].Severity())
	}
	if d, _ := table.Lookup("+"); d != (Descriptor{13, LTR}) {
		t.Errorf("duplicate replaced the first entry: %+v", d)
	}
	if len(table.Warnings()) != 1 {
		t.Errorf("table kept %d warnings, want 1", len(table.Warnings()))
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestAffixKeys(t *testing.T) {
	if got := Prefix("-"); got != "-()" {
		t.Errorf("Prefix(-) = %q", got)
	}
	if got := Postfix("--"); got != "()--" {
		t.Errorf("Postfix(--) = %q", got)
	}
}
