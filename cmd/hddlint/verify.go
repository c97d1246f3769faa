package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/hddlint"
	"github.com/dekarrin/hddlint/internal/diag"
)

func runVerify(args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: hddlint verify DOMAIN_FILE [PROBLEM_FILE]")
		return ExitUsageError
	}

	domain, err := readFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		return ExitInternalError
	}

	var problem string
	if len(args) == 2 {
		problem, err = readFile(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
			return ExitInternalError
		}
	}

	warnings, err := hddlint.Verify(domain, problem)
	if err != nil {
		printParsingError(err)
		return ExitParsingError
	}

	if len(warnings) == 0 {
		fmt.Println("No warnings found.")
		return ExitSuccess
	}

	for _, w := range warnings {
		fmt.Println(diag.WrappedMessage(w))
	}
	return ExitSuccess
}

func printParsingError(err error) {
	if pe, ok := err.(diag.ParsingError); ok {
		fmt.Fprintf(os.Stderr, "%s error: %s\n", pe.Kind, pe.WrappedMessage())
		return
	}
	fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
}
