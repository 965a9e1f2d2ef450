// # usagesync
//
// `usagesync` keeps a marker-delimited block of a text document identical to
// the live output of a companion tool. It was built for the classic README
// problem: the usage example in the docs slowly drifts away from what
// `mytool --help` actually prints. usagesync runs the tool, captures its
// output, and splices the relevant lines between two delimiter lines in the
// document, leaving everything else byte for byte as it was.
//
// Key capabilities:
//
//   - locate a section by two line-anchored regular expressions: the first
//     line matching the start pattern opens it, the next line matching the
//     end pattern closes it. The delimiter lines themselves are preserved.
//   - pull fresh content from a shell command (`-c 'mytool --help'`) or from
//     the doc comment of a Go package (`-p ./cmd/mytool`).
//   - select a slice of the captured output with `--after`, dropping
//     everything up to and including a known header line such as `USAGE:`.
//   - verify instead of write with `--check`, so CI fails when the docs
//     drift.
//   - sync several documents at once from a YAML config (`--config`).
//   - print the current section contents with `usagesync read`.
//   - ship a Cobra-powered CLI with rich `--help`, `--version`, shell
//     completion, and a `gen-docs` helper for publishing the CLI reference.
//
// ## Usage
//
//	usagesync [flags]
//
// Examples:
//
//   - Refresh the usage block in a README from the tool's help output:
//
//     usagesync -f README.md -c 'cargo run -- --help' --after 'USAGE:'
//
//   - Same, but fail instead of rewriting when the README is stale:
//
//     usagesync -f README.md -c 'cargo run -- --help' --after 'USAGE:' --check
//
//   - Splice a Go command's package doc into its README:
//
//     usagesync -f README.md -p ./cmd/mytool
//
//   - Sync every target listed in usagesync.yaml:
//
//     usagesync --config usagesync.yaml
//
// ## Section markers
//
// A section is bounded by two delimiter lines. The patterns are matched from
// the first character of each line (never as a substring search), and the
// defaults assume a fenced block whose first line is the USAGE: header of the
// captured help text:
//
//	```
//	USAGE:
//	...replaced lines...
//	```
//
// `--start` defaults to `^USAGE` and `--end` to a closing code fence. Only
// the first section per pattern pair is recognized; the lines between the
// delimiters are replaced verbatim and never interpreted.
//
// ## Config Files
//
// `--config` takes a YAML file listing independent targets:
//
//	targets:
//	  - file: README.md
//	    start: '^USAGE'
//	    end: '^```$'
//	    command: cargo run -- --help
//	    after: 'USAGE:'
//	  - file: docs/cli.md
//	    start: '^<!-- usage -->'
//	    end: '^<!-- /usage -->'
//	    package: ./cmd/mytool
//
// Each target is synced on its own; the first failure stops the run and the
// failing file is left untouched.
//
// ## Dogfooding
//
// This repository keeps its own README usage block current via:
//
//	go run . -f README.md --start '^Usage:' -c 'go run . --help' --after 'Usage:'
//
// CI runs the same command with `--check` and fails if the README does not
// match, so documentation changes must flow through usagesync itself.
package main
