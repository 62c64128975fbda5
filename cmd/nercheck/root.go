package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/siherrmann/nercheck"
	"github.com/siherrmann/nercheck/core/nlp"
	"github.com/siherrmann/nercheck/helper"
	"github.com/siherrmann/nercheck/model"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type capabilityFactory func(language string, logger *slog.Logger) (nlp.Capability, error)

func defaultCapability(language string, logger *slog.Logger) (nlp.Capability, error) {
	if _, err := nlp.LookupModel(language); err != nil {
		return nil, err
	}
	return nlp.NewHugot(language, logger), nil
}

type rootOptions struct {
	text            string
	language        string
	includeTypes    []string
	excludeTypes    []string
	minFreq         int
	keepDeterminers bool
	store           bool
	debug           bool
}

func newRootCommand(newCapability capabilityFactory) *cobra.Command {
	defaults := model.DefaultCheckConfig()
	opts := rootOptions{
		text:     defaults.Text,
		language: defaults.Language,
		minFreq:  defaults.MinFreq,
	}

	cmd := &cobra.Command{
		Use:   "nercheck",
		Short: "Check that named entity extraction agrees across access paths",
		Long: `nercheck extracts the named entities of a text three ways: through the
document wrapper, through the extraction function on the document's analysis and
through the extraction function on an independently loaded pipeline. It exits
with status 1 unless all three entity sequences are equal.`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts, newCapability)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.text, "text", opts.text, "text to extract entities from")
	flags.StringVar(&opts.language, "language", opts.language, "language code of the NER model")
	flags.StringSliceVar(&opts.includeTypes, "include-types", nil, "keep only entities with these labels")
	flags.StringSliceVar(&opts.excludeTypes, "exclude-types", nil, "drop entities with these labels")
	flags.IntVar(&opts.minFreq, "min-freq", opts.minFreq, "minimum occurrences of an entity text")
	flags.BoolVar(&opts.keepDeterminers, "keep-determiners", false, "keep leading determiners in entity texts")
	flags.BoolVar(&opts.store, "store", false, "record the run in PostgreSQL (NERCHECK_DB_* environment)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

func runCheck(cmd *cobra.Command, opts rootOptions, newCapability capabilityFactory) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := helper.NewLogger(cmd.ErrOrStderr(), level)

	capability, err := newCapability(opts.language, logger)
	if err != nil {
		return helper.NewError("create capability", err)
	}

	checker := nercheck.NewChecker(capability)
	checker.SetLogger(logger)
	defer func() {
		if err := checker.Close(); err != nil {
			logger.Warn("Failed to close checker", slog.String("error", err.Error()))
		}
	}()

	if opts.store {
		dbConfig, err := helper.NewDatabaseConfiguration()
		if err != nil {
			return err
		}
		if err := checker.UseRunStore(dbConfig); err != nil {
			return err
		}
	}

	config := model.CheckConfig{
		Text:            opts.text,
		Language:        opts.language,
		IncludeTypes:    opts.includeTypes,
		ExcludeTypes:    opts.excludeTypes,
		DropDeterminers: !opts.keepDeterminers,
		MinFreq:         opts.minFreq,
	}

	run, err := checker.Check(cmd.Context(), &config)
	if run != nil {
		printRun(cmd.OutOrStdout(), run)
	}
	return err
}

func printRun(out io.Writer, run *model.CheckRun) {
	fmt.Fprintf(out, "Text: %q\n\n", run.Text)

	printSequence(out, "A (document)", run.PathA)
	printSequence(out, "B (document analysis)", run.PathB)
	printSequence(out, "C (loaded pipeline)", run.PathC)

	if run.Passed {
		fmt.Fprintf(out, "%s all %d entities agree\n", color.GreenString("PASS"), len(run.PathA))
		return
	}
	fmt.Fprintf(out, "%s %s\n", color.RedString("FAIL"), run.Mismatch)
}

func printSequence(out io.Writer, name string, seq model.EntitySequence) {
	fmt.Fprintf(out, "Path %s: %d entities\n", name, len(seq))
	for i, e := range seq {
		fmt.Fprintf(out, "  %-3d %-6s %-30s %d-%d\n", i+1, e.Label, e.Text, e.Start, e.End)
	}
	fmt.Fprintln(out)
}
