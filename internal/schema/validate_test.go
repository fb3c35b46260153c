package schema

import (
	"encoding/json"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want bool
	}{
		{"nil document", nil, false},
		{"fresh document", NewDocument("ok"), true},
		{"missing sections", &Document{Kind: KindDocument}, false},
		{"wrong kind tag", &Document{Kind: "presentation", Sections: []Section{}}, false},
		{"untagged but shaped", &Document{Sections: []Section{}}, true},
		{"empty table accepted", func() *Document {
			d := NewDocument("ok")
			d.Sections[0].AddTable(&Table{})
			return d
		}(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateDocument(tt.doc); got != tt.want {
				t.Errorf("ValidateDocument() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidatePresentation(t *testing.T) {
	if !ValidatePresentation(NewPresentation("ok")) {
		t.Error("fresh presentation should validate")
	}
	if ValidatePresentation(nil) {
		t.Error("nil presentation should not validate")
	}
	if ValidatePresentation(&Presentation{Kind: KindPresentation}) {
		t.Error("presentation without slides array should not validate")
	}
}

func TestValidateSpreadsheet(t *testing.T) {
	if !ValidateSpreadsheet(NewSpreadsheet("ok")) {
		t.Error("fresh spreadsheet should validate")
	}
	if ValidateSpreadsheet(nil) {
		t.Error("nil spreadsheet should not validate")
	}
	if ValidateSpreadsheet(&Spreadsheet{Kind: KindSpreadsheet}) {
		t.Error("spreadsheet without sheets array should not validate")
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"tagged document", `{"kind":"document","sections":[]}`, KindDocument},
		{"tagged spreadsheet", `{"kind":"spreadsheet","sheets":[]}`, KindSpreadsheet},
		{"untagged with slides", `{"slides":[]}`, KindPresentation},
		{"untagged with sheets", `{"sheets":[]}`, KindSpreadsheet},
		{"not schema shaped", `{"foo":"bar"}`, ""},
		{"scalar", `"hello"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			if err := json.Unmarshal([]byte(tt.payload), &v); err != nil {
				t.Fatalf("bad fixture: %v", err)
			}
			if got := DetectKind(v); got != tt.want {
				t.Errorf("DetectKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplates_ReturnDeepCopies(t *testing.T) {
	first, ok := DocumentTemplate("report")
	if !ok {
		t.Fatal("report template missing")
	}
	first.Sections[0].Elements[0].Heading.Text = "mutated"

	second, ok := DocumentTemplate("report")
	if !ok {
		t.Fatal("report template missing")
	}
	if second.Sections[0].Elements[0].Heading.Text == "mutated" {
		t.Error("template mutation leaked between calls")
	}
}

func TestTemplateNames(t *testing.T) {
	names := TemplateNames(KindDocument)
	if len(names) == 0 {
		t.Fatal("expected document templates")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	if got := TemplateNames("unknown"); len(got) != 0 {
		t.Errorf("unknown kind should list nothing, got %v", got)
	}

	if _, ok := PresentationTemplate("pitch_deck"); !ok {
		t.Error("pitch_deck template missing")
	}
	if _, ok := SpreadsheetTemplate("budget"); !ok {
		t.Error("budget template missing")
	}
	if _, ok := DocumentTemplate("nope"); ok {
		t.Error("unknown template should not resolve")
	}
}
