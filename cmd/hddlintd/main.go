/*
Hddlintd starts an hddlint analysis server and begins listening for HTTP
requests.

Usage:

	hddlintd [flags]
	hddlintd [flags] -l [[ADDRESS]:PORT]

Once started, hddlintd will listen for HTTP requests and respond to them
using the hddlint REST API (see server/api for the routes served). By
default, it will listen on localhost:8080. This can be changed with the
--listen/-l flag or the HDDLINTD_LISTEN_ADDRESS environment variable.

The flags are:

	-v, --version
		Give the current version of hddlintd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment
		variable HDDLINTD_LISTEN_ADDRESS, and if that is not given, will
		default to localhost:8080.

	--cache PATH
		Use the sqlite result cache at the given path. If not given, will
		default to the value of environment variable HDDLINTD_CACHE_PATH.
		If no path is given by either means, the server runs without a
		result cache.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dekarrin/hddlint/internal/version"
	"github.com/dekarrin/hddlint/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "HDDLINTD_LISTEN_ADDRESS"
	EnvCache  = "HDDLINTD_CACHE_PATH"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of hddlintd and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagCache   = pflag.String("cache", "", "Use the sqlite result cache at the given path.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (hddlint v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		listenAddr = "localhost:8080"
	}
	if !strings.Contains(listenAddr, ":") {
		fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
		os.Exit(1)
	}
	if bindParts := strings.SplitN(listenAddr, ":", 2); bindParts[1] != "" {
		if _, err := strconv.Atoi(bindParts[1]); err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	cachePath := os.Getenv(EnvCache)
	if pflag.Lookup("cache").Changed {
		cachePath = *flagCache
	}

	srv, err := server.New(cachePath)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()
	log.Printf("DEBUG Server initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("INFO  Starting hddlintd %s on %s...", version.ServerCurrent, listenAddr)
	if err := srv.ServeForever(ctx, listenAddr); err != nil {
		log.Fatalf("FATAL server error: %s", err.Error())
	}
}
