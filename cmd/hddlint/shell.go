package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/hddlint/internal/config"
	"github.com/dekarrin/hddlint/internal/input"
)

// runShell starts an interactive loop that repeatedly prompts for a domain
// (and optional problem) path, re-runs verify/metadata on it, and keeps a
// readline history so iterating on a domain file under edit is fast.
func runShell(cfg config.Config) int {
	var cmdReader input.CommandReader
	if reader, err := input.NewInteractiveReader(); err == nil {
		cmdReader = reader
	} else {
		cmdReader = input.NewDirectReader(os.Stdin)
	}
	defer cmdReader.Close()

	fmt.Println("hddlint interactive shell. Commands:")
	fmt.Println(`  verify DOMAIN_FILE [PROBLEM_FILE]`)
	fmt.Println(`  metadata DOMAIN_FILE`)
	fmt.Println(`  quit`)

	for {
		line, err := cmdReader.ReadCommand()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ExitSuccess
			}
			fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
			return ExitInternalError
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return ExitSuccess
		case "verify":
			if code := runVerify(fields[1:]); code != ExitSuccess {
				fmt.Fprintln(os.Stderr, "(command failed, shell continues)")
			}
		case "metadata":
			if code := runMetadata(fields[1:]); code != ExitSuccess {
				fmt.Fprintln(os.Stderr, "(command failed, shell continues)")
			}
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n", fields[0])
		}
	}
}

