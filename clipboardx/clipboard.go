// Package clipboardx provides the clipboard services the editor consumes.
package clipboardx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("clipboard unavailable")

type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System talks to the desktop clipboard, falling back to helper commands
// and OSC 52. The last written text is remembered so that a paste right
// after a copy works even on headless machines.
type System struct {
	// Terminal receives OSC 52 sequences. Nil means os.Stdout when it is a
	// character device.
	Terminal io.Writer

	last string
}

func NewSystem() *System {
	return &System{}
}

func (s *System) Write(text string) error {
	s.last = text
	ok := false

	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	if writeWithCommands(text) {
		ok = true
	}
	if s.writeOSC52(text) {
		ok = true
	}
	if !ok {
		return fmt.Errorf("write %d bytes: %w", len(text), ErrUnavailable)
	}
	return nil
}

func (s *System) Read() (string, error) {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text, nil
	}
	if text, ok := readWithCommands(); ok && text != "" {
		return text, nil
	}
	return s.last, nil
}

func writeWithCommands(text string) bool {
	commands := []struct {
		name string
		args []string
	}{
		{name: "wl-copy", args: []string{}},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy", args: []string{}},
		{name: "clip.exe", args: []string{}},
	}

	ok := false
	for _, cmdCfg := range commands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		cmd := exec.Command(cmdCfg.name, cmdCfg.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithCommands() (string, bool) {
	commands := []struct {
		name string
		args []string
	}{
		{name: "wl-paste", args: []string{"--no-newline"}},
		{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--output"}},
		{name: "pbpaste", args: []string{}},
		{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
	}

	for _, cmdCfg := range commands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		out, err := exec.Command(cmdCfg.name, cmdCfg.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func (s *System) writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	w := s.Terminal
	if w == nil {
		if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
			return false
		}
		w = os.Stdout
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}

// Memory is a process-local clipboard, used by tests and by hosts that
// manage the system clipboard themselves.
type Memory struct {
	text string
}

func (m *Memory) Read() (string, error) { return m.text, nil }

func (m *Memory) Write(text string) error {
	m.text = text
	return nil
}
