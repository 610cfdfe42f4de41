package main

import (
	"io"
	"os"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		return runHelp(nil, stdout)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case CmdNameGet:
		return runGet(cmdArgs, stdout, stderr)
	case CmdNameList:
		return runList(cmdArgs, stdout, stderr)
	case CmdNameReport:
		return runReport(cmdArgs, stdout, stderr)
	case CmdNameVerify:
		return runVerify(cmdArgs, stdout, stderr)
	case CmdNameClean:
		return runClean(cmdArgs, stdin, stdout, stderr)
	case CmdNameFill:
		return runFill(cmdArgs, stdin, stdout, stderr)
	case CmdNameRender:
		return runRender(cmdArgs, stdin, stdout, stderr)
	case CmdNameVersion:
		return runVersion(cmdArgs, stdout, stderr)
	case CmdNameHelp:
		return runHelp(cmdArgs, stdout)
	default:
		// Unknown command - show error and help
		return runHelp([]string{cmd}, stdout)
	}
}
