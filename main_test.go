package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// The fixture mirrors the README layout the default patterns assume: the
// USAGE: header sits inside the fenced block, and the section runs from that
// header to the closing fence.
const readmeFixture = "# mytool\n\n```\nUSAGE:\nstale\n```\n\nfooter\n"

func TestSyncFromCommandOutput(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	err := run([]string{"-f", path, "-c", `printf 'mytool [flags] <input>\n'`}, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "# mytool\n\n```\nUSAGE:\nmytool [flags] <input>\n```\n\nfooter\n"
	if got := readFileString(t, path); got != want {
		t.Fatalf("synced file\ngot:  %q\nwant: %q", got, want)
	}
}

func TestSyncSelectsAfterMarker(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	cmd := `printf 'mytool 1.0\n\nUSAGE:\nmytool run\nmytool stop\n'`
	if err := run([]string{"-f", path, "-c", cmd, "--after", "USAGE:"}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := readFileString(t, path)
	assertContains(t, got, "USAGE:\nmytool run\nmytool stop\n```")
	if strings.Contains(got, "mytool 1.0") {
		t.Fatalf("lines before the marker leaked into the section:\n%s", got)
	}
}

func TestSyncAfterMarkerMissing(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	err := run([]string{"-f", path, "-c", `printf 'no header\n'`, "--after", "USAGE:"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected marker-not-found error, got %v", err)
	}
	if got := readFileString(t, path); got != readmeFixture {
		t.Fatalf("file modified on error: %q", got)
	}
}

func TestSyncStripsTrailingWhitespaceAndCRLF(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	cmd := `printf 'padded   \r\nplain\r\n'`
	if err := run([]string{"-f", path, "-c", cmd}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, readFileString(t, path), "USAGE:\npadded\nplain\n```")
}

func TestCheckModeUpToDate(t *testing.T) {
	path := writeTempDoc(t, "```\nUSAGE:\ncurrent\n```\n")
	err := run([]string{"-f", path, "-c", `printf 'current\n'`, "--check"}, io.Discard)
	if err != nil {
		t.Fatalf("expected clean check, got %v", err)
	}
}

func TestCheckModeStale(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	err := run([]string{"-f", path, "-c", `printf 'fresh\n'`, "--check"}, io.Discard)
	if !errors.Is(err, errOutOfSync) {
		t.Fatalf("expected errOutOfSync, got %v", err)
	}
	if got := readFileString(t, path); got != readmeFixture {
		t.Fatalf("check mode modified the file: %q", got)
	}
}

func TestOutputFlagLeavesSourceUntouched(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	out := filepath.Join(t.TempDir(), "out.md")
	err := run([]string{"-f", path, "-c", `printf 'fresh\n'`, "-o", out}, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, readFileString(t, out), "USAGE:\nfresh\n```")
	if got := readFileString(t, path); got != readmeFixture {
		t.Fatalf("source file modified: %q", got)
	}
}

func TestReadCommandPrintsSection(t *testing.T) {
	path := writeTempDoc(t, "```\nUSAGE:\none\ntwo\n```\n")
	var buf bytes.Buffer
	if err := run([]string{"read", "-f", path}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := buf.String(); got != "one\ntwo\n" {
		t.Fatalf("read output %q", got)
	}
}

func TestReadCommandMissingSectionPrintsNothing(t *testing.T) {
	path := writeTempDoc(t, "no markers here\n")
	var buf bytes.Buffer
	if err := run([]string{"read", "-f", path}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestConfigSyncsAllTargets(t *testing.T) {
	tmp := t.TempDir()
	readme := filepath.Join(tmp, "README.md")
	guide := filepath.Join(tmp, "guide.md")
	if err := os.WriteFile(readme, []byte(readmeFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(guide, []byte("<!-- usage -->\nstale\n<!-- /usage -->\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg := filepath.Join(tmp, "usagesync.yaml")
	cfgText := "targets:\n" +
		"  - file: " + readme + "\n" +
		"    start: '^USAGE'\n" +
		"    end: '^```$'\n" +
		"    command: printf 'from-config\\n'\n" +
		"  - file: " + guide + "\n" +
		"    start: '^<!-- usage -->'\n" +
		"    end: '^<!-- /usage -->'\n" +
		"    command: printf 'guide-usage\\n'\n"
	if err := os.WriteFile(cfg, []byte(cfgText), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var buf bytes.Buffer
	if err := run([]string{"--config", cfg}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, readFileString(t, readme), "USAGE:\nfrom-config\n```")
	assertContains(t, readFileString(t, guide), "<!-- usage -->\nguide-usage\n<!-- /usage -->")
	assertContains(t, buf.String(), "synced")
}

func TestConfigRejectsPerTargetFlags(t *testing.T) {
	err := run([]string{"--config", "whatever.yaml", "-c", "true"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Fatalf("expected config flag conflict, got %v", err)
	}
}

func TestCommandAndPackageAreExclusive(t *testing.T) {
	err := run([]string{"-f", "README.md", "-c", "true", "-p", "."}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "combined") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestSyncFromPackageDoc(t *testing.T) {
	path := writeTempDoc(t, readmeFixture)
	err := run([]string{"-f", path, "-p", "./testdata/example", "--after", "Usage:"}, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	assertContains(t, readFileString(t, path), "exampletool [flags] <input>")
}

func TestLegacyFlagNormalization(t *testing.T) {
	got := normalizeLegacyArgs([]string{"-file", "README.md", "-check", "-c", "true", "--after", "USAGE:"})
	want := []string{"--file", "README.md", "--check", "-c", "true", "--after", "USAGE:"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalized %v, want %v", got, want)
	}
}

func TestHelpFlag(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"--help"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	assertContains(t, out, "usagesync [flags]")
	assertContains(t, out, "--check")
	assertContains(t, out, "read        Print the current contents of a section")
}

func TestCompletionCommand(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"completion", "bash"}, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected completion output")
	}
	assertContains(t, buf.String(), "__start_usagesync")
}

func TestGenDocsCommand(t *testing.T) {
	tmp := t.TempDir()
	if err := run([]string{"gen-docs", tmp}, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	files, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	var foundRoot bool
	for _, f := range files {
		if f.Name() == "usagesync.md" {
			foundRoot = true
			break
		}
	}
	if !foundRoot {
		t.Fatalf("expected usagesync.md in docs output, got %v", files)
	}
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n\n%s", needle, haystack)
	}
}
