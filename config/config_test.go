package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"texteditor/palette"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TabSize != 4 || !cfg.ColorizerEnabled || cfg.Palette != "dark" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.TabSize = 8
	cfg.ReadOnly = true
	cfg.Language = "sql"
	cfg.Palette = "light"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
	if got.ColorPalette().Name != palette.Light().Name {
		t.Fatalf("palette = %q", got.ColorPalette().Name)
	}
}

func TestLoadClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"tab_size": 99, "undo_limit": -3, "line_spacing": 0}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.TabSize != 32 || cfg.UndoLimit != 0 || cfg.LineSpacing != 1 {
		t.Fatalf("values not clamped: %+v", cfg)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"tab_size": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestUnknownPaletteFallsBackToDark(t *testing.T) {
	cfg := Default()
	cfg.Palette = "nope"
	if got := cfg.ColorPalette().Name; got != palette.Dark().Name {
		t.Fatalf("got %q", got)
	}
}

func TestApplyEditorConfig(t *testing.T) {
	dir := t.TempDir()
	ec := "root = true\n\n[*.{c,h}]\nindent_style = tab\ntab_width = 8\n\n[*.lua]\nindent_size = 2\n"
	if err := os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(ec), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if !cfg.ApplyEditorConfig(filepath.Join(dir, "main.c")) || cfg.TabSize != 8 {
		t.Fatalf("c file: tab size %d", cfg.TabSize)
	}
	cfg = Default()
	if !cfg.ApplyEditorConfig(filepath.Join(dir, "init.lua")) || cfg.TabSize != 2 {
		t.Fatalf("lua file: tab size %d", cfg.TabSize)
	}
	cfg = Default()
	if cfg.ApplyEditorConfig(filepath.Join(dir, "notes.txt")) || cfg.TabSize != 4 {
		t.Fatalf("unmatched file changed tab size to %d", cfg.TabSize)
	}
}

func TestApplyEditorConfigFormatting(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	outer := "root = true\n[*]\nend_of_line = crlf\ninsert_final_newline = true\n[src/**.py]\nindent_style = space\nindent_size = 4\n"
	inner := "[*.py]\ninsert_final_newline = false\n"
	if err := os.WriteFile(filepath.Join(root, ".editorconfig"), []byte(outer), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".editorconfig"), []byte(inner), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if !cfg.ApplyEditorConfig(filepath.Join(sub, "app.py")) {
		t.Fatalf("indent size should apply")
	}
	if !cfg.ExpandTabs || cfg.TabSize != 4 {
		t.Fatalf("got expand=%v tab=%d, want spaces of 4", cfg.ExpandTabs, cfg.TabSize)
	}
	if cfg.LineEnding != LineEndingCRLF {
		t.Fatalf("got line ending %q, want crlf", cfg.LineEnding)
	}
	if cfg.FinalNewline {
		t.Fatalf("closer .editorconfig should turn the final newline off")
	}

	cfg = Default()
	if cfg.ApplyEditorConfig(filepath.Join(root, "README")) {
		t.Fatalf("no indentation is set for README")
	}
	if cfg.ExpandTabs || cfg.LineEnding != LineEndingCRLF || !cfg.FinalNewline {
		t.Fatalf("unexpected settings for README: %+v", cfg)
	}
}

func TestExpandBraces(t *testing.T) {
	got := expandBraces("*.{c,{h,hpp}}")
	want := []string{"*.c", "*.h", "*.hpp"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLineEndings(t *testing.T) {
	cases := map[string]string{"a\nb": LineEndingLF, "a\r\nb": LineEndingCRLF, "a\rb": LineEndingCR, "ab": ""}
	for in, want := range cases {
		if got := DetectLineEnding([]byte(in)); got != want {
			t.Fatalf("%q: got %q, want %q", in, got, want)
		}
	}
	if got := DecodeText([]byte("a\rb")); got != "a\nb" {
		t.Fatalf("got %q", got)
	}

	cfg := Default()
	cfg.LineEnding = LineEndingCRLF
	cfg.FinalNewline = true
	if got := string(cfg.EncodeText("a\nb")); got != "a\r\nb\r\n" {
		t.Fatalf("got %q", got)
	}
	cfg.LineEnding = ""
	cfg.FinalNewline = false
	if got := string(cfg.EncodeText("a\nb")); got != "a\nb" {
		t.Fatalf("got %q", got)
	}
}

func TestLanguageTabSize(t *testing.T) {
	cfg := Default()
	cfg.TabSize = 3
	cases := map[string]int{"Go": 4, "Lua": 2, "Makefile": 8, "Plain": 3}
	for lang, want := range cases {
		if got := cfg.LanguageTabSize(lang); got != want {
			t.Fatalf("%s: got %d, want %d", lang, got, want)
		}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := Default().SaveFile(path); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Config, 4)
	w, err := Watch(path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	cfg := Default()
	cfg.TabSize = 2
	if err := cfg.SaveFile(path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-reloaded:
		if got.TabSize != 2 {
			t.Fatalf("reloaded tab size %d", got.TabSize)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}
