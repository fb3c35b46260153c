package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "docforge_test.exe"
	}
	return "docforge_test"
}

// buildTestBinary builds the test binary and returns a cleanup function
func buildTestBinary(t *testing.T) (string, func()) {
	t.Helper()
	binName := binaryName()
	buildCmd := exec.Command("go", "build", "-o", binName, "../cmd/docforge")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	return binName, func() { os.Remove(binName) }
}

const documentFixture = `{
  "kind": "document",
  "metadata": {"title": "Integration Report", "author": "QA"},
  "sections": [{
    "elements": [
      {"type": "heading", "heading": {"text": "Overview", "level": 1}},
      {"type": "paragraph", "paragraph": {"text": "Generated during integration testing."}},
      {"type": "list", "list": {"ordered": false, "items": ["first", "second"]}},
      {"type": "table", "table": {"rows": [["name", "qty"], ["apples", "3"]]}}
    ]
  }]
}`

const presentationFixture = `{
  "kind": "presentation",
  "metadata": {"title": "Integration Deck"},
  "slides": [
    {"layout": "title", "title": "Integration Deck", "subtitle": "CLI test"},
    {"layout": "title_content", "title": "Points", "bullets": [{"text": "one"}, {"text": "two"}]}
  ]
}`

const spreadsheetFixture = `{
  "kind": "spreadsheet",
  "metadata": {"title": "Integration Book"},
  "sheets": [{
    "name": "Data",
    "header_row": true,
    "data": [
      [{"value": "item"}, {"value": "count"}],
      [{"value": "apples"}, {"value": 3}]
    ]
  }]
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestBuildCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	dir := t.TempDir()
	docPath := writeFixture(t, dir, "report.json", documentFixture)
	deckPath := writeFixture(t, dir, "deck.json", presentationFixture)
	bookPath := writeFixture(t, dir, "book.json", spreadsheetFixture)
	badPath := writeFixture(t, dir, "bad.json", "{not json")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		outFile string
		magic   string
	}{
		{
			name:    "document to docx",
			args:    []string{"build", docPath, "-o", filepath.Join(dir, "report.docx")},
			outFile: filepath.Join(dir, "report.docx"),
			magic:   "PK",
		},
		{
			name:    "document to pdf",
			args:    []string{"build", docPath, "--format", "pdf", "-o", filepath.Join(dir, "report.pdf")},
			outFile: filepath.Join(dir, "report.pdf"),
			magic:   "%PDF-",
		},
		{
			name:    "presentation to pptx",
			args:    []string{"build", deckPath, "-o", filepath.Join(dir, "deck.pptx")},
			outFile: filepath.Join(dir, "deck.pptx"),
			magic:   "PK",
		},
		{
			name:    "presentation to pdf",
			args:    []string{"build", deckPath, "--format", "pdf", "-o", filepath.Join(dir, "deck.pdf")},
			outFile: filepath.Join(dir, "deck.pdf"),
			magic:   "%PDF-",
		},
		{
			name:    "spreadsheet to xlsx",
			args:    []string{"build", bookPath, "-o", filepath.Join(dir, "book.xlsx")},
			outFile: filepath.Join(dir, "book.xlsx"),
			magic:   "PK",
		},
		{
			name:    "docx with pdf companion",
			args:    []string{"build", docPath, "--pdf", "-o", filepath.Join(dir, "combo.docx")},
			outFile: filepath.Join(dir, "combo.pdf"),
			magic:   "%PDF-",
		},
		{
			name:    "non-existent input",
			args:    []string{"build", filepath.Join(dir, "missing.json")},
			wantErr: true,
		},
		{
			name:    "invalid json input",
			args:    []string{"build", badPath},
			wantErr: true,
		},
		{
			name:    "unsupported format",
			args:    []string{"build", docPath, "--format", "odt"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("./"+binPath, tc.args...)
			output, err := cmd.CombinedOutput()

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none\noutput: %s", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v\noutput: %s", err, output)
			}

			data, err := os.ReadFile(tc.outFile)
			if err != nil {
				t.Fatalf("expected output file %s: %v", tc.outFile, err)
			}
			if !strings.HasPrefix(string(data), tc.magic) {
				t.Errorf("output %s should start with %q", tc.outFile, tc.magic)
			}
		})
	}
}

func TestTemplatesCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	t.Run("list all", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "templates")
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("unexpected error: %v\noutput: %s", err, output)
		}

		for _, want := range []string{"report", "invoice", "pitch_deck", "budget"} {
			if !strings.Contains(string(output), want) {
				t.Errorf("output should contain template %q, got: %s", want, output)
			}
		}
	})

	t.Run("export template", func(t *testing.T) {
		dir := t.TempDir()
		outPath := filepath.Join(dir, "report.json")

		cmd := exec.Command("./"+binPath, "templates", "--export", "report", "-o", outPath)
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("unexpected error: %v\noutput: %s", err, output)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("expected exported template: %v", err)
		}
		if !strings.Contains(string(data), `"kind": "document"`) {
			t.Errorf("exported template should be a document schema, got: %s", data)
		}
	})

	t.Run("export then build", func(t *testing.T) {
		dir := t.TempDir()
		tplPath := filepath.Join(dir, "deck.json")
		outPath := filepath.Join(dir, "deck.pptx")

		cmd := exec.Command("./"+binPath, "templates", "--export", "pitch_deck", "-o", tplPath)
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("export failed: %v\noutput: %s", err, output)
		}

		cmd = exec.Command("./"+binPath, "build", tplPath, "-o", outPath)
		if output, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("build failed: %v\noutput: %s", err, output)
		}

		if _, err := os.Stat(outPath); err != nil {
			t.Errorf("expected built deck: %v", err)
		}
	})
}

func TestProvidersCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "providers")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	// Check that all providers are listed
	providers := []string{"openai", "gemini"}
	for _, p := range providers {
		if !strings.Contains(string(output), p) {
			t.Errorf("output should contain provider %q, got: %s", p, output)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "version")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(string(output), "docforge") {
		t.Errorf("output should contain 'docforge', got: %s", output)
	}
}

func TestConfigCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	t.Run("config show", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "show")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), "default_provider") {
			t.Errorf("output should contain 'default_provider', got: %s", output)
		}
	})

	t.Run("config path", func(t *testing.T) {
		cmd := exec.Command("./"+binPath, "config", "path")
		output, err := cmd.CombinedOutput()

		if err != nil {
			t.Errorf("unexpected error: %v\noutput: %s", err, output)
		}

		if !strings.Contains(string(output), "config.yaml") {
			t.Errorf("output should contain 'config.yaml', got: %s", output)
		}
	})
}

func TestHelpCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "--help")
	output, err := cmd.CombinedOutput()

	if err != nil {
		t.Errorf("unexpected error: %v\noutput: %s", err, output)
	}

	expectedStrings := []string{"docforge", "build", "templates", "providers", "config"}
	for _, s := range expectedStrings {
		if !strings.Contains(string(output), s) {
			t.Errorf("output should contain %q, got: %s", s, output)
		}
	}
}
