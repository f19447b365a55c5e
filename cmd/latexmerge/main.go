// Command latexmerge resolves the change-tracking commands of the LaTeX
// "changes" package (\added, \deleted, \replaced, \highlight, \comment) in a
// document, either interactively or by a fixed policy, and writes the merged
// result back out.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/latexmerge/latexmerge/internal/changes"
	"github.com/latexmerge/latexmerge/internal/config"
	"github.com/latexmerge/latexmerge/internal/decision"
	"github.com/latexmerge/latexmerge/internal/document"
	"github.com/latexmerge/latexmerge/internal/logbook"
	"github.com/latexmerge/latexmerge/internal/tui"
)

const version = "1.0.0"

var cli struct {
	Input  string `arg:"" help:"LaTeX document to merge." type:"existingfile"`
	Output string `short:"o" placeholder:"FILE" help:"Write the merged document here instead of in place."`
	Config string `placeholder:"FILE" help:"Config file (default: .latexmerge.yaml beside the input)." type:"existingfile"`
	Log    string `placeholder:"FILE" help:"Append diagnostics to this file (overrides the config)."`

	AcceptAll bool   `help:"Accept every change without prompting." xor:"mode"`
	RejectAll bool   `help:"Reject every change without prompting." xor:"mode"`
	KeepAll   bool   `help:"Keep every change annotation untouched." xor:"mode"`
	Script    string `placeholder:"STEPS" help:"Batch decisions, one letter per change: a, r or k." xor:"mode"`

	NoBackup bool             `help:"Skip the .bak copy when saving in place."`
	Version  kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("latexmerge"),
		kong.Description("Merge tracked changes in LaTeX documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	if err := run(); err != nil {
		if errors.Is(err, changes.ErrAborted) {
			fmt.Fprintln(os.Stderr, "latexmerge: aborted, nothing written")
			os.Exit(1)
		}
		ctx.FatalIfErrorf(err)
	}
}

func run() error {
	cfg, err := config.Find(cli.Config, cli.Input)
	if err != nil {
		return err
	}

	var book *logbook.Logbook
	logPath := cli.Log
	if logPath == "" {
		logPath = cfg.LogFile
	}
	if logPath != "" {
		book, err = logbook.New(logPath)
		if err != nil {
			return err
		}
	}

	text, err := document.Load(cli.Input)
	if err != nil {
		return err
	}
	book.Info("merging %s (%d change command(s) found)", cli.Input, changes.CountOccurrences(text))

	merged, err := merge(text, cfg, book)
	if err != nil {
		book.Error("merge failed: %v", err)
		return err
	}

	target := cli.Output
	backup := false
	if target == "" {
		target = cli.Input
		backup = !cli.NoBackup && cfg.BackupEnabled()
	}
	if err := document.Save(target, merged, backup); err != nil {
		return err
	}
	book.Info("wrote %s", target)
	return nil
}

// merge picks the decision source for this run. Batch flags resolve every
// change without a prompt; otherwise the interactive review screen runs, with
// config policies answering any command that is pre-decided.
func merge(text string, cfg *config.Config, book *logbook.Logbook) (string, error) {
	defaultPolicy, overrides := cfg.Policies()

	var batch changes.Source
	switch {
	case cli.AcceptAll:
		batch = &decision.PolicySource{Default: decision.Accept}
	case cli.RejectAll:
		batch = &decision.PolicySource{Default: decision.Reject}
	case cli.KeepAll:
		batch = &decision.PolicySource{Default: decision.Keep}
	case cli.Script != "":
		script, err := decision.NewScriptSource(cli.Script)
		if err != nil {
			return "", err
		}
		batch = script
	}
	if batch != nil {
		proc := changes.NewProcessor(batch, changes.WithDiagnostics(book))
		return proc.Process(text)
	}

	wrap := func(interactive changes.Source) changes.Source {
		return &decision.PolicySource{
			Default:  defaultPolicy,
			Commands: overrides,
			Fallback: interactive,
		}
	}
	return tui.Run(text, wrap, book)
}
