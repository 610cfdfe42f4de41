package main

import (
	"fmt"
	"io"
)

func runHelp(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeSuccess
	}

	cmd := args[0]
	switch cmd {
	case CmdNameGet:
		fmt.Fprintln(stdout, HelpGetUsage)
	case CmdNameList:
		fmt.Fprintln(stdout, HelpListUsage)
	case CmdNameReport:
		fmt.Fprintln(stdout, HelpReportUsage)
	case CmdNameVerify:
		fmt.Fprintln(stdout, HelpVerifyUsage)
	case CmdNameClean:
		fmt.Fprintln(stdout, HelpCleanUsage)
	case CmdNameFill:
		fmt.Fprintln(stdout, HelpFillUsage)
	case CmdNameRender:
		fmt.Fprintln(stdout, HelpRenderUsage)
	case CmdNameVersion:
		fmt.Fprintln(stdout, HelpVersionUsage)
	case CmdNameHelp:
		fmt.Fprintln(stdout, HelpHelpUsage)
	default:
		fmt.Fprintf(stdout, FmtErrorWithDetail, ErrMsgUnknownCommand, cmd)
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeUsageError
	}

	return ExitCodeSuccess
}
