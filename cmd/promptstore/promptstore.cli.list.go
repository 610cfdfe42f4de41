package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// listConfig holds parsed list command configuration
type listConfig struct {
	sourceSpec string
	format     string
}

// listOutput represents JSON output for list
type listOutput struct {
	Source  string   `json:"source"`
	Count   int      `json:"count"`
	Prompts []string `json:"prompts"`
}

func runList(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseListFlags(args)
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

	names := store.Names()

	if cfg.format == OutputFormatJSON {
		output := listOutput{
			Source:  cfg.sourceSpec,
			Count:   len(names),
			Prompts: names,
		}
		jsonBytes, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgJSONMarshalFailed, err)
			return ExitCodeError
		}
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}

	if len(names) > 0 {
		fmt.Fprintln(stdout, strings.Join(names, FmtNewline))
	}
	return ExitCodeSuccess
}

func parseListFlags(args []string) (*listConfig, error) {
	fs := flag.NewFlagSet(CmdNameList, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &listConfig{}

	fs.StringVar(&cfg.sourceSpec, FlagSource, "", "")
	fs.StringVar(&cfg.sourceSpec, FlagSourceShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.sourceSpec == "" {
		return nil, errors.New(ErrMsgMissingSource)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
