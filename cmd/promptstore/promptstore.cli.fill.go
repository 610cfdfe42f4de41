package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-promptstore"
)

// fillConfig holds parsed fill command configuration
type fillConfig struct {
	inputPath  string
	dataJSON   string
	valueList  string
	outputPath string
}

func runFill(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFillFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArgs, err)
		return ExitCodeUsageError
	}

	input, err := readInput(cfg.inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadInputFailed, err)
		return ExitCodeInputError
	}

	var result string
	if cfg.valueList != "" {
		values := strings.Split(cfg.valueList, ValueListSeparator)
		result = promptstore.FillPositional(string(input), values)
	} else {
		values, err := parseNamedValues(cfg.dataJSON)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
			return ExitCodeInputError
		}
		result = promptstore.FillNamed(string(input), values)
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

// parseNamedValues decodes a JSON object into the string map the filler
// expects, stringifying non-string values with %v.
func parseNamedValues(jsonStr string) (map[string]string, error) {
	if jsonStr == "" {
		return map[string]string{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			values[key] = v
		default:
			values[key] = fmt.Sprintf("%v", v)
		}
	}
	return values, nil
}

func parseFillFlags(args []string) (*fillConfig, error) {
	fs := flag.NewFlagSet(CmdNameFill, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &fillConfig{}

	fs.StringVar(&cfg.inputPath, FlagInput, FlagDefaultInput, "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, FlagDefaultInput, "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagDataShort, "", "")
	fs.StringVar(&cfg.valueList, FlagValues, "", "")
	fs.StringVar(&cfg.valueList, FlagValuesShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}
