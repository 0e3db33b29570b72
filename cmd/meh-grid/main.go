package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gruppe-adler/meh-grid/internal/estimate"
	"github.com/gruppe-adler/meh-grid/internal/info"
	"github.com/gruppe-adler/meh-grid/internal/normalize"
	"github.com/gruppe-adler/meh-grid/internal/preview"
	log "github.com/sirupsen/logrus"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"estimate", "Fit a linear model on feature grids and write the estimate grid.", estimate.Run},
		{"info", "Print size, georeferencing and invalid cells of a grid.", info.Run},
		{"normalize", "Rewrite a grid as Float32 GeoTIFF with a fixed no-data value.", normalize.Run},
		{"preview", "Build preview images of a grid.", preview.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for i := 0; i < len(subCommands); i++ {
		name := subCommands[i].name

		fmt.Printf("%12s    %s\n", name, subCommands[i].description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func findCommand(name string) (command, bool) {
	for _, c := range subCommands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]

	cmd, ok := findCommand(name)
	if !ok {
		fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", name)
		printUsage()
		os.Exit(1)
	}

	set := flag.NewFlagSet(name, flag.ExitOnError)
	cmd.run(set)
}
