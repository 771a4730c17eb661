// Package main implements the SceneBridge server binary.
// file: cmd/server/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Version information (populated at build time).
var (
	version = "dev"
)

func main() {
	var (
		configPath      = flag.String("config", "", "Path to the YAML configuration file (defaults apply when empty)")
		debug           = flag.Bool("debug", false, "Enable debug-level logging")
		shutdownTimeout = flag.Duration("shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
		showVersion     = flag.Bool("version", false, "Print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("scenebridge %s\n", version)
		return
	}

	if err := runServer(*configPath, *shutdownTimeout, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
