// Command console is the PokeNihongo admin console. It lists, browses and
// edits the learning content served by the PokeNihongo API, and can run as
// an HTTP gateway for browser front ends.
//
// Configuration comes from config.yaml (or --config / CONFIG_PATH) and the
// environment; see internal/config.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
