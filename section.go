package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrSectionNotFound is reported when no line matches the start pattern.
	ErrSectionNotFound = errors.New("section start marker not found")
	// ErrSectionUnterminated is reported when the start pattern matched but
	// no later line matched the end pattern.
	ErrSectionUnterminated = errors.New("section end marker not found")
)

// sectionBounds records where the delimiter lines of a section sit inside a
// line sequence. start and end are indexes of the delimiter lines themselves;
// the replaceable content is the range strictly between them.
type sectionBounds struct {
	start      int
	end        int
	found      bool
	terminated bool
}

// matchLine tests a delimiter pattern against a line. The terminator is
// stripped first so that $ means end of line even though stored lines keep
// their trailing newline.
func matchLine(re *regexp.Regexp, line string) bool {
	return re.MatchString(strings.TrimSuffix(line, "\n"))
}

// locateSection scans lines top to bottom. The first line matching startRe
// opens the section; the first line after it matching endRe closes it. Later
// matches of either pattern are ignored.
func locateSection(lines []string, startRe, endRe *regexp.Regexp) sectionBounds {
	var b sectionBounds
	for i, line := range lines {
		if !b.found {
			if matchLine(startRe, line) {
				b.found = true
				b.start = i
			}
			continue
		}
		if matchLine(endRe, line) {
			b.terminated = true
			b.end = i
			return b
		}
	}
	return b
}

// readSection returns the lines strictly between the delimiters. A missing
// end delimiter is a tolerated short-read: everything from the start
// delimiter to EOF is returned. A missing start delimiter yields nil.
func readSection(lines []string, startRe, endRe *regexp.Regexp) []string {
	b := locateSection(lines, startRe, endRe)
	switch {
	case !b.found:
		return nil
	case !b.terminated:
		return lines[b.start+1:]
	default:
		return lines[b.start+1 : b.end]
	}
}

// replaceSection returns a new line sequence with content substituted for the
// lines strictly between the delimiters. The delimiter lines and everything
// outside them are carried over unchanged. Unlike readSection, both
// delimiters must be present: without the end delimiter there is no safe
// place for the preserved postfix to begin.
func replaceSection(lines []string, startRe, endRe *regexp.Regexp, content []string) ([]string, error) {
	b := locateSection(lines, startRe, endRe)
	if !b.found {
		return nil, ErrSectionNotFound
	}
	if !b.terminated {
		return nil, ErrSectionUnterminated
	}
	out := make([]string, 0, b.start+1+len(content)+len(lines)-b.end)
	out = append(out, lines[:b.start+1]...)
	out = append(out, content...)
	out = append(out, lines[b.end:]...)
	return out, nil
}

// compileAnchored compiles pat so it only matches from the first byte of a
// line, regardless of whether the caller wrote a leading anchor.
func compileAnchored(pat string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`\A(?:` + pat + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
	}
	return re, nil
}

func compileSectionPatterns(startPat, endPat string) (startRe, endRe *regexp.Regexp, err error) {
	if startRe, err = compileAnchored(startPat); err != nil {
		return nil, nil, err
	}
	if endRe, err = compileAnchored(endPat); err != nil {
		return nil, nil, err
	}
	return startRe, endRe, nil
}

// splitLines splits text into lines that keep their terminators, so joining
// the result reproduces the input byte for byte.
func splitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

func readDocumentLines(path string) ([]string, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return splitLines(string(data)), info.Mode().Perm(), nil
}

// readSectionFile extracts the current contents of the section delimited by
// startPat and endPat in the file at path, without modifying it.
func readSectionFile(path, startPat, endPat string) ([]string, error) {
	startRe, endRe, err := compileSectionPatterns(startPat, endPat)
	if err != nil {
		return nil, err
	}
	lines, _, err := readDocumentLines(path)
	if err != nil {
		return nil, err
	}
	return readSection(lines, startRe, endRe), nil
}

// replaceSectionFile rewrites the file at path with content substituted
// between the delimiters. The file is written in one piece only after the
// replacement succeeded; on any error it is left untouched.
func replaceSectionFile(path, startPat, endPat string, content []string) error {
	startRe, endRe, err := compileSectionPatterns(startPat, endPat)
	if err != nil {
		return err
	}
	lines, mode, err := readDocumentLines(path)
	if err != nil {
		return err
	}
	updated, err := replaceSection(lines, startRe, endRe, content)
	if err != nil {
		return fmt.Errorf("%s: %w (start pattern %q)", path, err, startPat)
	}
	return os.WriteFile(path, []byte(strings.Join(updated, "")), mode)
}
