package config

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfigSettings is the subset of .editorconfig properties that maps
// onto editor settings. Zero values mean the property was not set.
type EditorConfigSettings struct {
	IndentStyle  string // "tab" or "space"
	IndentSize   int
	TabWidth     int
	EndOfLine    string // "lf", "crlf" or "cr"
	FinalNewline *bool
}

// ecSection is one [glob] block.
type ecSection struct {
	glob  string
	props map[string]string
}

type ecFile struct {
	dir      string
	root     bool
	sections []ecSection
}

func readEditorConfig(name string) (*ecFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ef := &ecFile{dir: filepath.Dir(name)}
	var cur *ecSection
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if line[0] == '[' && line[len(line)-1] == ']' {
			ef.sections = append(ef.sections, ecSection{glob: line[1 : len(line)-1], props: map[string]string{}})
			cur = &ef.sections[len(ef.sections)-1]
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		if cur == nil {
			// preamble
			if key == "root" {
				ef.root = value == "true"
			}
			continue
		}
		cur.props[key] = value
	}
	return ef, sc.Err()
}

// collect copies the properties of every section matching file into props.
// Later sections override earlier ones.
func (ef *ecFile) collect(file string, props map[string]string) {
	rel, err := filepath.Rel(ef.dir, file)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	for _, s := range ef.sections {
		if !globMatch(s.glob, rel) {
			continue
		}
		for k, v := range s.props {
			props[k] = v
		}
	}
}

// globMatch matches rel, a slash separated path relative to the
// .editorconfig directory. Globs without a slash match the base name only.
func globMatch(glob, rel string) bool {
	for _, g := range expandBraces(glob) {
		name := path.Base(rel)
		if strings.Contains(g, "/") {
			g = strings.TrimPrefix(g, "/")
			name = rel
		}
		if prefix, rest, ok := strings.Cut(g, "**"); ok {
			if r, found := strings.CutPrefix(rest, "/"); found {
				rest = r
			} else {
				rest = "*" + rest
			}
			if strings.HasPrefix(name, prefix) {
				if m, _ := path.Match(rest, path.Base(name)); m {
					return true
				}
			}
			continue
		}
		if m, _ := path.Match(g, name); m {
			return true
		}
	}
	return false
}

// expandBraces turns "*.{c,h}" into "*.c" and "*.h". Nested and repeated
// groups expand recursively.
func expandBraces(glob string) []string {
	open := strings.IndexByte(glob, '{')
	if open < 0 {
		return []string{glob}
	}
	depth, from := 0, open+1
	var alts []string
	for i := open; i < len(glob); i++ {
		switch glob[i] {
		case '{':
			depth++
		case ',':
			if depth == 1 {
				alts = append(alts, glob[from:i])
				from = i + 1
			}
		case '}':
			depth--
			if depth > 0 {
				continue
			}
			alts = append(alts, glob[from:i])
			var out []string
			for _, a := range alts {
				out = append(out, expandBraces(glob[:open]+a+glob[i+1:])...)
			}
			return out
		}
	}
	return []string{glob}
}

// FindEditorConfig merges the .editorconfig files from the directory of
// filePath up to the first root file. Closer files win. It returns nil when
// nothing relevant applies.
func FindEditorConfig(filePath string) *EditorConfigSettings {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}

	var files []*ecFile
	for dir := filepath.Dir(abs); ; {
		if ef, err := readEditorConfig(filepath.Join(dir, ".editorconfig")); err == nil {
			files = append(files, ef)
			if ef.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	props := map[string]string{}
	for i := len(files) - 1; i >= 0; i-- {
		files[i].collect(abs, props)
	}
	return settingsFromProps(props)
}

func settingsFromProps(props map[string]string) *EditorConfigSettings {
	var s EditorConfigSettings
	positive := func(key string) int {
		n, err := strconv.Atoi(props[key])
		if err != nil || n <= 0 {
			return 0
		}
		return n
	}

	switch v := props["indent_style"]; v {
	case "tab", "space":
		s.IndentStyle = v
	}
	s.TabWidth = positive("tab_width")
	if props["indent_size"] == "tab" {
		s.IndentSize = s.TabWidth
	} else {
		s.IndentSize = positive("indent_size")
	}
	switch v := props["end_of_line"]; v {
	case "lf", "crlf", "cr":
		s.EndOfLine = v
	}
	if v, err := strconv.ParseBool(props["insert_final_newline"]); err == nil {
		s.FinalNewline = &v
	}

	if s == (EditorConfigSettings{}) {
		return nil
	}
	return &s
}
