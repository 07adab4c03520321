package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"texteditor/clipboardx"
	"texteditor/config"
	"texteditor/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath string
		logPath    string
		readOnly   bool
		language   string
	)
	flag.StringVar(&configPath, "config", config.ConfigPath(), "path to the settings file")
	flag.StringVar(&logPath, "log", "", "write a debug log to this file")
	flag.BoolVar(&readOnly, "readonly", false, "open the file read-only")
	flag.StringVar(&language, "lang", "", "language preset or chroma lexer name")
	flag.Parse()

	log, err := newLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		log.Warn("using default settings", zap.String("path", configPath), zap.Error(err))
		cfg = config.Default()
	}
	if readOnly {
		cfg.ReadOnly = true
	}
	if language != "" {
		cfg.Language = language
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	app := ui.NewApp(screen, cfg, clipboardx.NewSystem(), log)
	if path := flag.Arg(0); path != "" {
		abs, err := filepath.Abs(path)
		if err == nil {
			err = app.Open(abs)
		}
		if err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}
	if err := app.WatchConfig(configPath); err != nil {
		log.Warn("settings will not reload", zap.Error(err))
	}

	if err := app.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return l, nil
}
