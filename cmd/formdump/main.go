// Package main provides formdump, a debugging tool parsing a captured multipart/form-data
// body and printing the resulting form as JSON. Contents of uploaded files aren't stored,
// only accounted.
//
// Usage:
//
//	formdump --boundary XYZ body.bin
//	formdump --content-type 'multipart/form-data; boundary=XYZ' --chunked - < body.bin
//
// Exit codes:
//   - 0: the body was parsed completely
//   - 1: the body was rejected by the parser
//   - 2: bad usage
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	exitRejected = 1
	exitUsage    = 2
)

func main() {
	app := &cli.App{
		Name:           "formdump",
		Usage:          "Parse a multipart/form-data body and print the form",
		ArgsUsage:      "<file | ->",
		Flags:          dumpFlags(),
		Action:         dumpAction,
		ExitErrHandler: exitErrHandler,
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(exitRejected)
	}
}

// exitErrHandler preserves exit codes passed via cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		if msg := exitCoder.Error(); msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}

		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitUsage)
}
