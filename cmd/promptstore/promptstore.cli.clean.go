package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-promptstore"
)

// cleanConfig holds parsed clean command configuration
type cleanConfig struct {
	configPath string
	inputPath  string
	outputPath string
}

func runClean(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCleanFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArgs, err)
		return ExitCodeUsageError
	}

	pipelineConfig := promptstore.DefaultPreprocessorConfig()
	if cfg.configPath != "" {
		pipelineConfig, err = promptstore.LoadPreprocessorConfig(cfg.configPath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
			return ExitCodeInputError
		}
	}

	preprocessor, err := promptstore.NewPreprocessor(pipelineConfig)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgBuildPipeFailed, err)
		return ExitCodeError
	}

	input, err := readInput(cfg.inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadInputFailed, err)
		return ExitCodeInputError
	}

	result := preprocessor.Process(string(input))
	if !result.OK {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgTextRejected, result.Step)
		return ExitCodeValidationError
	}

	if err := writeOutput(cfg.outputPath, []byte(result.Text+FmtNewline), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseCleanFlags(args []string) (*cleanConfig, error) {
	fs := flag.NewFlagSet(CmdNameClean, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &cleanConfig{}

	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.inputPath, FlagInput, FlagDefaultInput, "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, FlagDefaultInput, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
