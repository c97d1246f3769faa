/*
Hddlint statically analyzes HDDL domain and problem files: it verifies a
domain's type hierarchy, predicate/task declarations, and subtask networks,
then reports any warnings (unsatisfiable preconditions, tasks with no
primitive refinement) found along the way. It can also report a domain's
metadata summary: its recursion classification, nullable tasks, and
declaration counts.

Usage:

	hddlint verify [flags] DOMAIN_FILE [PROBLEM_FILE]
	hddlint metadata [flags] DOMAIN_FILE
	hddlint shell [flags]
	hddlint serve [flags]

The flags are:

	-v, --version
		Give the current version of hddlint and then exit.

	-c, --config FILE
		Use the given config file instead of the default ".hddlint.toml" in
		the current working directory.

	-l, --listen ADDRESS
		(serve only) Listen on the given address instead of the configured
		default.

Once a file has been analyzed, hddlint prints any warnings found to stdout
and exits 0. A ParsingError during lexing, parsing, or semantic analysis is
printed to stderr and causes a non-zero exit.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dekarrin/hddlint/internal/config"
	"github.com/dekarrin/hddlint/internal/hddlerr"
	"github.com/dekarrin/hddlint/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitParsingError indicates an unsuccessful execution due to a
	// lexical, syntactic, or semantic error in the analyzed input.
	ExitParsingError

	// ExitUsageError indicates an unsuccessful execution due to invalid
	// command-line usage.
	ExitUsageError

	// ExitInternalError indicates an unsuccessful execution due to a
	// problem setting up or running the command itself.
	ExitInternalError
)

var (
	returnCode  = ExitSuccess
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of hddlint and then exit")
	flagConfig  = pflag.StringP("config", "c", ".hddlint.toml", "The project config file to use")
	flagListen  = pflag.StringP("listen", "l", "", "(serve only) Listen on the given address")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Expected a subcommand: verify, metadata, shell, or serve\nDo -h for help.")
		returnCode = ExitUsageError
		return
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not read config: %s\n", err.Error())
		returnCode = ExitInternalError
		return
	}

	cmd, cmdArgs := args[0], args[1:]
	switch cmd {
	case "verify":
		returnCode = runVerify(cmdArgs)
	case "metadata":
		returnCode = runMetadata(cmdArgs)
	case "shell":
		returnCode = runShell(cfg)
	case "serve":
		listen := cfg.ServerAddress
		if pflag.Lookup("listen").Changed {
			listen = *flagListen
		}
		returnCode = runServe(context.Background(), cfg, listen)
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand %q\nDo -h for help.\n", cmd)
		returnCode = ExitUsageError
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", hddlerr.WrapOperatorf(err, "could not read %s: %s", path, err.Error())
	}
	return string(data), nil
}
