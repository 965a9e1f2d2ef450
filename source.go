package main

import (
	"context"
	"fmt"
	"go/doc"
	"os/exec"
	"strings"

	"golang.org/x/tools/go/packages"
)

// captureCommand runs command through the shell and returns its combined
// stdout and stderr. Help text frequently lands on stderr, so both streams
// are captured together.
func captureCommand(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return "", fmt.Errorf("running %q: %w\n%s", command, err, strings.TrimSpace(string(out)))
		}
		return "", fmt.Errorf("running %q: %w", command, err)
	}
	return string(out), nil
}

// packageDoc loads the Go package matched by expr and returns its package
// doc comment. Command packages conventionally keep their usage text there,
// which lets usagesync splice it into a README without spawning the tool.
func packageDoc(ctx context.Context, expr string) (string, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedSyntax | packages.NeedModule,
	}
	pkgs, err := packages.Load(cfg, expr)
	if err != nil {
		return "", err
	}
	if len(pkgs) == 0 {
		return "", fmt.Errorf("no Go packages matched %q", expr)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return "", fmt.Errorf("%s", pkg.Errors[0])
	}
	docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath)
	if err != nil {
		return "", err
	}
	if docPkg.Doc == "" {
		return "", fmt.Errorf("package %s has no doc comment", pkg.PkgPath)
	}
	return docPkg.Doc, nil
}

// selectContent turns raw captured text into replacement lines: CRLF is
// normalized away, trailing whitespace is stripped per line, and every line
// is re-terminated with \n. When after is non-empty, everything up to and
// including the first line equal to it is dropped.
func selectContent(text, after string) ([]string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if after != "" {
		at := -1
		for i, line := range lines {
			if strings.TrimRight(line, " \t") == after {
				at = i
				break
			}
		}
		if at < 0 {
			return nil, fmt.Errorf("marker line %q not found in captured output", after)
		}
		lines = lines[at+1:]
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(line, " \t") + "\n"
	}
	return out, nil
}
