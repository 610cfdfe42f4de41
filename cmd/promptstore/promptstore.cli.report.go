package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

// reportConfig holds parsed report command configuration
type reportConfig struct {
	sourceSpec string
	outputPath string
}

func runReport(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseReportFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArgs, err)
		return ExitCodeUsageError
	}

	store, err := openStore(cfg.sourceSpec, true)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenSourceFailed, err)
		return ExitCodeInputError
	}
	defer store.Close()

	written, err := store.SavePromptReport(context.Background(), cfg.outputPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSaveReportFailed, err)
		return ExitCodeError
	}

	fmt.Fprintln(stdout, written)
	return ExitCodeSuccess
}

func parseReportFlags(args []string) (*reportConfig, error) {
	fs := flag.NewFlagSet(CmdNameReport, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &reportConfig{}

	fs.StringVar(&cfg.sourceSpec, FlagSource, "", "")
	fs.StringVar(&cfg.sourceSpec, FlagSourceShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.sourceSpec == "" {
		return nil, errors.New(ErrMsgMissingSource)
	}
	if cfg.outputPath == "" {
		return nil, errors.New(ErrMsgMissingReport)
	}

	return cfg, nil
}
