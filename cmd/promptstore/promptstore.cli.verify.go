package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-promptstore"
)

// verifyConfig holds parsed verify command configuration
type verifyConfig struct {
	sourceSpec string
	reportPath string
	strict     bool
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVerifyFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArgs, err)
		return ExitCodeUsageError
	}

	store, err := openStore(cfg.sourceSpec, false)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenSourceFailed, err)
		return ExitCodeInputError
	}
	defer store.Close()

	err = store.LoadFromPromptReport(context.Background(), cfg.reportPath, cfg.strict)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgVerifyFailed, err)
		if promptstore.IsDrift(err) {
			return ExitCodeValidationError
		}
		return ExitCodeError
	}

	fmt.Fprintf(stdout, VerifyTextSuccess+FmtNewline, store.Len())
	return ExitCodeSuccess
}

func parseVerifyFlags(args []string) (*verifyConfig, error) {
	fs := flag.NewFlagSet(CmdNameVerify, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &verifyConfig{}

	fs.StringVar(&cfg.sourceSpec, FlagSource, "", "")
	fs.StringVar(&cfg.sourceSpec, FlagSourceShort, "", "")
	fs.StringVar(&cfg.reportPath, FlagReport, "", "")
	fs.StringVar(&cfg.reportPath, FlagReportShort, "", "")
	fs.BoolVar(&cfg.strict, FlagStrict, true, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.sourceSpec == "" {
		return nil, errors.New(ErrMsgMissingSource)
	}
	if cfg.reportPath == "" {
		return nil, errors.New(ErrMsgMissingReport)
	}

	return cfg, nil
}
