package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

// getConfig holds parsed get command configuration
type getConfig struct {
	sourceSpec string
	name       string
	outputPath string
}

func runGet(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseGetFlags(args)
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

	text, err := store.GetPrompt(context.Background(), cfg.name)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgGetPromptFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(text+FmtNewline), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseGetFlags(args []string) (*getConfig, error) {
	fs := flag.NewFlagSet(CmdNameGet, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &getConfig{}

	fs.StringVar(&cfg.sourceSpec, FlagSource, "", "")
	fs.StringVar(&cfg.sourceSpec, FlagSourceShort, "", "")
	fs.StringVar(&cfg.name, FlagName, "", "")
	fs.StringVar(&cfg.name, FlagNameShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validation
	if cfg.sourceSpec == "" {
		return nil, errors.New(ErrMsgMissingSource)
	}
	if cfg.name == "" {
		return nil, errors.New(ErrMsgMissingName)
	}

	return cfg, nil
}
