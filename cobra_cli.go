package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
)

const rootLongDesc = `
usagesync keeps a marker-delimited block of a text document in sync with live output.
It runs a companion command (or reads a Go package doc comment), selects the usage text,
and splices it between two line-anchored delimiter patterns, leaving every other byte of
the document untouched. Typical use is keeping a README's fenced usage block identical
to the tool's actual --help output:

  usagesync -f README.md -c 'mytool --help' --after 'USAGE:'

The defaults match the common README layout: a section opened by a line starting with
USAGE and closed by a closing code fence. Run with --check in CI to fail the build when
the document has drifted instead of rewriting it.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout}
	cmd := &cobra.Command{
		Use:           "usagesync [flags]",
		Short:         "Keep marker-delimited doc sections in sync with live output",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	pflags := cmd.PersistentFlags()
	pflags.StringVarP(&app.opts.file, "file", "f", "", "document containing the section to sync")
	pflags.StringVar(&app.opts.startPat, "start", "^USAGE", "line-anchored pattern opening the section")
	pflags.StringVar(&app.opts.endPat, "end", "^```$", "line-anchored pattern closing the section")
	pflags.StringVarP(&app.opts.outputPath, "output", "o", "", "write the result to a file (or - for stdout) instead of in place")

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.command, "command", "c", "", "shell command whose output supplies the new content")
	flags.StringVarP(&app.opts.pkgExpr, "package", "p", "", "Go package whose doc comment supplies the new content")
	flags.StringVar(&app.opts.after, "after", "", "drop captured output up to and including this line")
	flags.BoolVar(&app.opts.check, "check", false, "verify the section is up to date instead of writing")
	flags.StringVar(&app.opts.configPath, "config", "", "sync every target listed in a YAML config file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx)
	}

	cmd.AddCommand(newReadCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newReadCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the current contents of a section",
		Long: strings.TrimSpace(`
Print the lines currently between the delimiters, without the delimiter lines
themselves. A section that is opened but never closed is read through to end
of file; a file without the section prints nothing.
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.readTarget()
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const longDesc = `Generate shell completion scripts for usagesync.

The output should be evaluated by your shell. For example:

  # bash
  usagesync completion bash > /usr/local/etc/bash_completion.d/usagesync

  # zsh
  usagesync completion zsh > "${fpath[1]}/_usagesync"

  # fish
  usagesync completion fish | source

  # PowerShell
  usagesync completion powershell | Out-String | Invoke-Expression
`
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  usagesync gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		if dir == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, dir)
	}
	return cmd
}
