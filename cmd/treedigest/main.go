package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Pick *PickCmd `arg:"subcommand:pick" help:"Browse the tree interactively and generate a digest"`
	Out  *OutCmd  `arg:"subcommand:out" help:"Generate a digest without the interactive picker"`
}

// Runner dispatches to the appropriate subcommand
type Runner struct {
	Args Args
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) *Runner {
	return &Runner{Args: args}
}

// Run dispatches to the appropriate subcommand
func (r *Runner) Run() error {
	switch {
	case r.Args.Pick != nil:
		pickRunner, err := NewPickRunner(*r.Args.Pick)
		if err != nil {
			return err
		}
		return pickRunner.Run()
	case r.Args.Out != nil:
		outRunner, err := NewOutRunner(*r.Args.Out)
		if err != nil {
			return err
		}
		return outRunner.Run()
	default:
		return fmt.Errorf("no subcommand specified, use 'pick' or 'out'")
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	parser := arg.MustParse(&args)

	if args.Pick == nil && args.Out == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	runner := NewRunner(args)
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
