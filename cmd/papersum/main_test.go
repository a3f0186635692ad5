package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/pipeline"
)

const paperXML = `<article>
<front><article-meta>
<title-group><article-title>Sleep aboard the station</article-title></title-group>
<abstract><p>Astronauts slept less in orbit than on the ground.</p></abstract>
</article-meta></front>
<body>
<sec><title>Introduction</title><p>Light cycles in orbit repeat every ninety minutes.</p></sec>
<sec><title>Methods</title><p>Crew wore actigraphy watches for two weeks.</p></sec>
</body>
</article>`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SUMMARIZER_PROVIDER", "none")
	t.Setenv("LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		extractCmd.Flags().Set("format", "")
		extractCmd.Flags().Set("link", "")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractCommand_XMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PMC7.xml")
	if err := os.WriteFile(path, []byte(paperXML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "extract", path, "--link", "https://pmc.example/PMC7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rec document.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rec.Title != "Sleep aboard the station" {
		t.Errorf("unexpected title %q", rec.Title)
	}
	if rec.Link != "https://pmc.example/PMC7" {
		t.Errorf("unexpected link %q", rec.Link)
	}
	if rec.Introduction == "" || rec.MaterialsMethods == "" {
		t.Errorf("expected introduction and methods, got %+v", rec)
	}
	if rec.SimplifiedVersion != pipeline.PlaceholderUnavailable {
		t.Errorf("expected placeholder, got %q", rec.SimplifiedVersion)
	}
	if !strings.Contains(out, "\n  \"title\"") {
		t.Errorf("expected indented output, got %s", out)
	}
}

func TestExtractCommand_FormatOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.txt")
	if err := os.WriteFile(path, []byte(paperXML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "extract", path, "--format", "structured-xml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rec document.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Title != "Sleep aboard the station" {
		t.Errorf("expected xml parse, got title %q", rec.Title)
	}
	if rec.Link != path {
		t.Errorf("expected link to default to path, got %q", rec.Link)
	}
}

func TestExtractCommand_Errors(t *testing.T) {
	if _, err := runCLI(t, "extract", filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "paper.xml")
	if err := os.WriteFile(path, []byte(paperXML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "extract", path, "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "papersum dev\n" {
		t.Errorf("unexpected output %q", out)
	}
}
