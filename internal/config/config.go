package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/subobject/internal/codec"
	"github.com/jacoelho/subobject/internal/exit"
)

// StdinName selects standard input in the file list.
const StdinName = "-"

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrNoSelector       = errors.New("a selector is required (--select or --select-file)")
	ErrTwoSelectors     = errors.New("--select and --select-file are mutually exclusive")
	ErrNegativeIndent   = errors.New("indent cannot be negative")
	ErrAutoOutputFormat = errors.New("output format must be json or yaml")
)

// Config represents the complete configuration for one subobject run.
type Config struct {
	// Selection
	Selector     string
	SelectorFile string
	Root         string // JSONPath applied before projection

	// Documents
	Files        []string // StdinName reads standard input
	InputFormat  codec.Format
	OutputFormat codec.Format
	Indent       int

	// Diagnostics
	Color bool
	Debug bool
}

// SelectorSource returns the selector expression, reading SelectorFile when
// set. Surrounding whitespace in the file is dropped.
func (c *Config) SelectorSource() (string, error) {
	if c.SelectorFile == "" {
		return c.Selector, nil
	}

	data, err := os.ReadFile(c.SelectorFile)
	if err != nil {
		return "", fmt.Errorf("failed to read selector file %s: %w", c.SelectorFile, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// InputFormatFor returns the format used to decode the named file.
func (c *Config) InputFormatFor(name string) codec.Format {
	if c.InputFormat != codec.FormatAuto {
		return c.InputFormat
	}
	if name == StdinName {
		return codec.FormatYAML
	}
	return codec.Detect(name)
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	switch {
	case c.Selector == "" && c.SelectorFile == "":
		return ErrNoSelector
	case c.Selector != "" && c.SelectorFile != "":
		return ErrTwoSelectors
	case c.Indent < 0:
		return ErrNegativeIndent
	case c.OutputFormat == codec.FormatAuto:
		return ErrAutoOutputFormat
	}

	for _, file := range c.Files {
		if file == StdinName {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	if c.SelectorFile != "" {
		if _, err := os.Stat(c.SelectorFile); err != nil {
			return fmt.Errorf("selector file %s not found: %w", c.SelectorFile, err)
		}
	}

	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s\n", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		selector     = fs.String("select", "", "Selector expression")
		selectorFile = fs.String("select-file", "", "Path to a file containing the selector expression")
		root         = fs.String("root", "", "JSONPath expression applied before projection")
		input        = fs.String("input", string(codec.FormatAuto), "Input format: auto, json or yaml")
		output       = fs.String("output", string(codec.FormatJSON), "Output format: json or yaml")
		indent       = fs.Int("indent", 0, "Indentation width (0 for compact JSON)")
		color        = fs.Bool("color", false, "Highlight selector syntax errors with ANSI colors")
		debug        = fs.Bool("debug", false, "Enable debug logging on stderr")
	)

	fs.StringVar(selector, "s", "", "Selector expression (shorthand)")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s\n", err, Usage())
	}

	inputFormat, err := codec.ParseFormat(*input)
	if err != nil {
		return nil, exit.Usagef("Error: --input: %v\n\n%s\n", err, Usage())
	}

	outputFormat, err := codec.ParseFormat(*output)
	if err != nil {
		return nil, exit.Usagef("Error: --output: %v\n\n%s\n", err, Usage())
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{StdinName}
	}

	config := &Config{
		Selector:     *selector,
		SelectorFile: *selectorFile,
		Root:         *root,
		Files:        files,
		InputFormat:  inputFormat,
		OutputFormat: outputFormat,
		Indent:       *indent,
		Color:        *color,
		Debug:        *debug,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s\n", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `subobject - project JSON and YAML documents with a selector

Usage: subobject [options] [file ...]

Reads standard input when no file (or "-") is given.

Options:
  -s, --select EXPR       Selector expression, e.g. 'id,owner(name,email)'
  --select-file FILE      Path to a file containing the selector expression
  --root JSONPATH         JSONPath expression applied before projection
  --input FORMAT          Input format: auto, json or yaml (default: auto)
  --output FORMAT         Output format: json or yaml (default: json)
  --indent N              Indentation width (default: 0, compact JSON)
  --color                 Highlight selector syntax errors with ANSI colors
  --debug                 Enable debug logging on stderr
  -h, --help              Show this help message

Selector syntax:
  key                     keep key as is
  key(a,b)                keep key, projecting its value with a and b
  "odd key"               quote keys containing spaces or , ( ) ' " \

Examples:
  subobject -s 'id,name' user.json
  subobject -s 'items(sku,price(amount))' --output yaml order.yaml
  curl -s api/users | subobject --root '$.data' -s 'id,email'`
}
