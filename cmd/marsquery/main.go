package main

import (
	"os"

	"github.com/yukikurage/mars-colony-api/internal/cli"
	"github.com/yukikurage/mars-colony-api/internal/logging"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		// Report output goes to stdout; keep stderr for problems.
		level = "warn"
	}

	cmd := &cli.Command{
		In:  os.Stdin,
		Out: os.Stdout,
		Log: logging.New(os.Stderr, level, "release"),
	}
	os.Exit(cmd.Run(os.Args[1:]))
}
