package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"texteditor/buffer"
	"texteditor/palette"
)

type Config struct {
	TabSize          int     `json:"tab_size"`
	ReadOnly         bool    `json:"read_only"`
	ColorizerEnabled bool    `json:"colorizer_enabled"`
	ShowWhitespace   bool    `json:"show_whitespace"`
	ShowLineNumbers  bool    `json:"show_line_numbers"`
	Language         string  `json:"language"`
	Palette          string  `json:"palette"`
	UndoLimit        int     `json:"undo_limit"`
	LineSpacing      float64 `json:"line_spacing"`

	// ExpandTabs makes the tab key insert spaces.
	ExpandTabs bool `json:"expand_tabs"`
	// LineEnding is used on save: "lf", "crlf" or "cr". Empty keeps the
	// style the file was opened with.
	LineEnding   string `json:"line_ending"`
	FinalNewline bool   `json:"insert_final_newline"`
}

// LanguageTabSize returns the appropriate tab size for a given language.
// Returns the per-language default or the user's configured tab size.
func (c *Config) LanguageTabSize(language string) int {
	switch language {
	case "JavaScript", "TypeScript", "JSON", "HTML", "CSS", "SCSS",
		"YAML", "Vue", "Svelte", "JSX", "TSX", "TOML", "Lua", "GLua":
		return 2
	case "Go", "Python", "Java", "C", "C++", "Rust", "C#", "PHP", "SQL":
		return 4
	case "Makefile":
		return 8
	default:
		return c.TabSize
	}
}

// ColorPalette resolves the configured palette name, falling back to dark.
func (c *Config) ColorPalette() palette.Palette {
	if p, ok := palette.Named(c.Palette); ok {
		return p
	}
	return palette.Dark()
}

// ApplyEditorConfig applies the .editorconfig properties for path:
// indentation style and width, line ending and final newline. It reports
// whether the indentation width came from .editorconfig.
func (c *Config) ApplyEditorConfig(path string) bool {
	ec := FindEditorConfig(path)
	if ec == nil {
		return false
	}
	switch ec.IndentStyle {
	case "space":
		c.ExpandTabs = true
	case "tab":
		c.ExpandTabs = false
	}
	if ec.EndOfLine != "" {
		c.LineEnding = ec.EndOfLine
	}
	if ec.FinalNewline != nil {
		c.FinalNewline = *ec.FinalNewline
	}

	width := ec.IndentSize
	if ec.TabWidth > 0 && (ec.IndentStyle == "tab" || width == 0) {
		width = ec.TabWidth
	}
	if width == 0 {
		return false
	}
	c.TabSize = width
	c.normalize()
	return true
}

func (c *Config) normalize() {
	c.TabSize = max(0, min(c.TabSize, buffer.MaxTabSize))
	c.UndoLimit = max(0, c.UndoLimit)
	if c.LineSpacing <= 0 {
		c.LineSpacing = 1
	}
}

func Default() *Config {
	return &Config{
		TabSize:          4,
		ColorizerEnabled: true,
		ShowLineNumbers:  true,
		Palette:          "dark",
		LineSpacing:      1,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "texteditor", "settings.json")
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads settings from path on top of the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
