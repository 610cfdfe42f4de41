package main

// Command names
const (
	CmdNameGet     = "get"
	CmdNameList    = "list"
	CmdNameReport  = "report"
	CmdNameVerify  = "verify"
	CmdNameClean   = "clean"
	CmdNameFill    = "fill"
	CmdNameRender  = "render"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagSource   = "source"
	FlagName     = "name"
	FlagOutput   = "output"
	FlagReport   = "report"
	FlagStrict   = "strict"
	FlagConfig   = "config"
	FlagInput    = "input"
	FlagData     = "data"
	FlagValues   = "values"
	FlagFormat   = "format"
	FlagDataFile = "data-file"
)

// Flag names - short form
const (
	FlagSourceShort   = "s"
	FlagNameShort     = "n"
	FlagOutputShort   = "o"
	FlagReportShort   = "r"
	FlagConfigShort   = "c"
	FlagInputShort    = "i"
	FlagDataShort     = "d"
	FlagValuesShort   = "v"
	FlagFormatShort   = "F"
	FlagDataFileShort = "f"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultInput  = "-" // stdin
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Source spec syntax
const (
	SourceSpecSeparator = ":"
)

// Value list syntax for positional fills
const (
	ValueListSeparator = ","
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgInvalidArgs       = "invalid arguments"
	ErrMsgMissingSource     = "prompt source required"
	ErrMsgMissingName       = "prompt name required"
	ErrMsgMissingReport     = "report path required"
	ErrMsgInvalidSourceSpec = "source must be driver:locator"
	ErrMsgOpenSourceFailed  = "failed to open prompt source"
	ErrMsgLoadStoreFailed   = "failed to load prompt store"
	ErrMsgGetPromptFailed   = "failed to resolve prompt"
	ErrMsgSaveReportFailed  = "failed to save prompt report"
	ErrMsgVerifyFailed      = "report verification failed"
	ErrMsgLoadConfigFailed  = "failed to load preprocessor config"
	ErrMsgBuildPipeFailed   = "failed to build preprocessing pipeline"
	ErrMsgTextRejected      = "text rejected by step"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgReadInputFailed   = "failed to read input"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgRenderFailed      = "template rendering failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgJSONMarshalFailed = "failed to marshal JSON"
)

// Help text templates
const (
	HelpMainUsage = `go-promptstore - Prompt management CLI

Usage:
    promptstore <command> [options]

Commands:
    get         Print a prompt from a source
    list        List prompts in a source
    report      Write a prompt digest report
    verify      Verify a source against a report
    clean       Run text through a preprocessing pipeline
    fill        Substitute {{placeholder}} markers
    render      Render text through the template engine
    version     Show version information
    help        Show help for a command

Use "promptstore help <command>" for more information about a command.`

	HelpGetUsage = `Print a prompt from a source

Usage:
    promptstore get [options]

Options:
    -s, --source <driver:locator>  Prompt source (e.g. folder:./prompts, json:prompts.json)
    -n, --name <name>              Qualified prompt name (e.g. review/tone)
    -o, --output <file>            Output file (default: stdout)

Examples:
    promptstore get -s folder:./prompts -n greeting
    promptstore get -s json:prompts.json -n review/tone -o prompt.txt`

	HelpListUsage = `List prompts in a source

Usage:
    promptstore list [options]

Options:
    -s, --source <driver:locator>  Prompt source
    -F, --format <format>          Output format: text, json (default: text)

Examples:
    promptstore list -s folder:./prompts
    promptstore list -s json:prompts.json -F json`

	HelpReportUsage = `Write a prompt digest report

Usage:
    promptstore report [options]

Options:
    -s, --source <driver:locator>  Prompt source
    -o, --output <path>            Report path (".json" appended if missing)

Examples:
    promptstore report -s folder:./prompts -o prompts_report`

	HelpVerifyUsage = `Verify a source against a report

Usage:
    promptstore verify [options]

Options:
    -s, --source <driver:locator>  Prompt source
    -r, --report <path>            Report file to verify against
    --strict                       Fail on digest drift (default: true)

Examples:
    promptstore verify -s folder:./prompts -r prompts_report.json
    promptstore verify -s folder:./prompts -r prompts_report.json --strict=false`

	HelpCleanUsage = `Run text through a preprocessing pipeline

Usage:
    promptstore clean [options]

Options:
    -c, --config <file>   Pipeline config (JSON or YAML; default profile if omitted)
    -i, --input <file>    Input file (use "-" for stdin)
    -o, --output <file>   Output file (default: stdout)

Examples:
    promptstore clean -i raw.txt
    cat raw.txt | promptstore clean -c pipeline.yaml`

	HelpFillUsage = `Substitute {{placeholder}} markers

Usage:
    promptstore fill [options]

Options:
    -i, --input <file>    Input file (use "-" for stdin)
    -d, --data <json>     Named values as a JSON object
    -v, --values <list>   Positional values, comma separated
    -o, --output <file>   Output file (default: stdout)

Examples:
    promptstore fill -i prompt.txt -d '{"name": "Alice"}'
    promptstore fill -i prompt.txt -v Monday,August`

	HelpRenderUsage = `Render text through the template engine

Usage:
    promptstore render [options]

Options:
    -i, --input <file>      Input file (use "-" for stdin)
    -d, --data <json>       JSON data string
    -f, --data-file <file>  JSON data file
    -o, --output <file>     Output file (default: stdout)

Examples:
    promptstore render -i template.txt -d '{"name": "Alice"}'
    cat template.txt | promptstore render -f data.json`

	HelpVersionUsage = `Show version information

Usage:
    promptstore version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    promptstore help [command]`
)

// Version output format templates
const (
	VersionTextTemplate = "go-promptstore version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Verify output templates
const (
	VerifyTextSuccess = "report verified: %d prompt(s) match"
	VerifyTextDrift   = "digest drift detected"
)

// CLI metadata
const (
	CLIName        = "promptstore"
	CLIDescription = "Prompt management CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
