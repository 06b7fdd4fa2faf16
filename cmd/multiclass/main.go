// Command multiclass renders multiclass density maps from JSON
// configuration files.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"seehuhn.de/go/multiclass"
)

var verbose = flag.Bool("v", false, "log the phases of every render pass")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&renderCmd{}, "")
	subcommands.Register(&tilesCmd{}, "")
	subcommands.Register(&checkCmd{}, "")
	subcommands.ImportantFlag("v")

	flag.Parse()
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		multiclass.SetLogger(slog.New(h))
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}

// readConfig loads and validates the configuration file at fname.
func readConfig(fname string) (*multiclass.Config, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return multiclass.ReadConfig(fd)
}
