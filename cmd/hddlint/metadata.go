package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/hddlint"
	"github.com/dekarrin/rosed"
)

func runMetadata(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: hddlint metadata DOMAIN_FILE")
		return ExitUsageError
	}

	domain, err := readFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		return ExitInternalError
	}

	md, err := hddlint.GetMetadata(domain)
	if err != nil {
		printParsingError(err)
		return ExitParsingError
	}

	fmt.Println(renderMetadata(md))
	return ExitSuccess
}

func renderMetadata(md hddlint.MetaData) string {
	data := [][]string{
		{"domain", md.DomainName},
		{"recursion type", md.RecursionType},
		{"nullable tasks", strings.Join(md.Nullables, ", ")},
		{"actions", fmt.Sprintf("%d", md.NumActions)},
		{"compound tasks", fmt.Sprintf("%d", md.NumTasks)},
		{"methods", fmt.Sprintf("%d", md.NumMethods)},
	}
	if len(md.RecursionPath) > 0 {
		data = append(data, []string{"recursion path", strings.Join(md.RecursionPath, " -> ")})
	}

	tableOpts := rosed.Options{NoTrailingLineSeparators: true}
	return rosed.Edit("").InsertTableOpts(0, data, 80, tableOpts).String()
}
