package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type options struct {
	file       string
	startPat   string
	endPat     string
	command    string
	pkgExpr    string
	after      string
	configPath string
	outputPath string
	check      bool
}

type cliApp struct {
	stdout io.Writer
	opts   options
}

// errOutOfSync is reported by check mode when a section's current contents
// differ from what a sync would write.
var errOutOfSync = errors.New("section out of sync")

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	if opts.configPath != "" {
		if opts.command != "" || opts.pkgExpr != "" || opts.file != "" {
			return errors.New("--config cannot be combined with per-target flags")
		}
		if opts.outputPath != "" {
			return errors.New("--config cannot be combined with -o")
		}
		targets, err := loadConfig(opts.configPath)
		if err != nil {
			return err
		}
		for _, t := range targets {
			if err := app.syncTarget(ctx, t); err != nil {
				return err
			}
			if !opts.check {
				fmt.Fprintf(app.stdout, "%s: synced\n", t.File)
			}
		}
		return nil
	}
	t := target{
		File:    opts.file,
		Start:   opts.startPat,
		End:     opts.endPat,
		Command: opts.command,
		Package: opts.pkgExpr,
		After:   opts.after,
	}
	if t.Command != "" && t.Package != "" {
		return errors.New("-c cannot be combined with -p")
	}
	if err := t.validate(); err != nil {
		return err
	}
	return app.syncTarget(ctx, t)
}

func (app *cliApp) syncTarget(ctx context.Context, t target) error {
	var raw string
	var err error
	if t.Command != "" {
		raw, err = captureCommand(ctx, t.Command)
	} else {
		raw, err = packageDoc(ctx, t.Package)
	}
	if err != nil {
		return err
	}
	content, err := selectContent(raw, t.After)
	if err != nil {
		return err
	}
	if app.opts.check {
		return checkTarget(t, content)
	}
	if app.opts.outputPath != "" {
		startRe, endRe, err := compileSectionPatterns(t.Start, t.End)
		if err != nil {
			return err
		}
		lines, _, err := readDocumentLines(t.File)
		if err != nil {
			return err
		}
		updated, err := replaceSection(lines, startRe, endRe, content)
		if err != nil {
			return fmt.Errorf("%s: %w (start pattern %q)", t.File, err, t.Start)
		}
		return writeOutput(app.opts.outputPath, app.stdout, []byte(strings.Join(updated, "")))
	}
	return replaceSectionFile(t.File, t.Start, t.End, content)
}

// checkTarget verifies that a sync would be a no-op, without writing.
func checkTarget(t target, content []string) error {
	startRe, endRe, err := compileSectionPatterns(t.Start, t.End)
	if err != nil {
		return err
	}
	lines, _, err := readDocumentLines(t.File)
	if err != nil {
		return err
	}
	updated, err := replaceSection(lines, startRe, endRe, content)
	if err != nil {
		return fmt.Errorf("%s: %w (start pattern %q)", t.File, err, t.Start)
	}
	if strings.Join(updated, "") != strings.Join(lines, "") {
		return fmt.Errorf("%s: %w (run usagesync to update it)", t.File, errOutOfSync)
	}
	return nil
}

func (app *cliApp) readTarget() error {
	opts := app.opts
	if opts.file == "" {
		return errors.New("a target file is required")
	}
	lines, err := readSectionFile(opts.file, opts.startPat, opts.endPat)
	if err != nil {
		return err
	}
	return writeOutput(opts.outputPath, app.stdout, []byte(strings.Join(lines, "")))
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var legacyLongFlagSet = map[string]struct{}{
	"file":    {},
	"start":   {},
	"end":     {},
	"command": {},
	"package": {},
	"after":   {},
	"check":   {},
	"config":  {},
	"output":  {},
}

// normalizeLegacyArgs rewrites single-dash long flags (-file, -check, ...)
// into the double-dash spelling cobra expects, so invocations written in the
// style of the original updater script keep working.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}
