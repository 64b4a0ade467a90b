package main

import (
	"io"
	"os"

	"github.com/jacoelho/subobject/internal/config"
	"github.com/jacoelho/subobject/internal/runner"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, exitResult := config.Parse(args)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	r, exitResult := runner.New(cfg, stdin, stdout, stderr)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	return r.Run()
}
