package runner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jacoelho/subobject"
	"github.com/jacoelho/subobject/internal/codec"
	"github.com/jacoelho/subobject/internal/config"
	"github.com/jacoelho/subobject/internal/exit"
	"github.com/jacoelho/subobject/internal/logging"
	"github.com/jacoelho/subobject/internal/query"
)

// Runner projects every configured document with one selector tree.
type Runner struct {
	cfg       *config.Config
	selectors []subobject.Selector
	logger    *zap.Logger
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// New parses the configured selector. Syntax errors are reported with the
// usage exit code and, when colors are enabled, the offending span
// highlighted.
func New(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*Runner, *exit.Result) {
	logger := logging.New(stderr, cfg.Debug)

	source, err := cfg.SelectorSource()
	if err != nil {
		return nil, exit.Failuref("Error: %v\n", err)
	}

	selectors, err := subobject.Parse(source)
	if err != nil {
		var perr *subobject.ParsingError
		if errors.As(err, &perr) {
			return nil, exit.Usage(perr.Format(cfg.Color) + "\n")
		}
		return nil, exit.Usagef("Error: invalid selector: %v\n", err)
	}

	logger.Debug("parsed selector",
		zap.Stringer("selector", selectorList(selectors)),
		zap.Int("fields", len(selectors)),
	)

	return &Runner{
		cfg:       cfg,
		selectors: selectors,
		logger:    logger,
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
	}, nil
}

// Run processes the configured files in order and stops at the first
// failure. It returns the process exit code.
func (r *Runner) Run() int {
	defer func() { _ = r.logger.Sync() }()

	enc := codec.NewEncoder(r.stdout, r.cfg.OutputFormat, r.cfg.Indent)
	for _, name := range r.cfg.Files {
		if err := r.process(enc, name); err != nil {
			exit.Failuref("Error: %s: %v\n", displayName(name), err).Print(r.stdout, r.stderr)
			return exit.CodeFailure
		}
	}
	return exit.CodeOK
}

func (r *Runner) process(enc *codec.Encoder, name string) error {
	data, err := r.read(name)
	if err != nil {
		return err
	}

	format := r.cfg.InputFormatFor(name)
	docs, err := codec.Decode(data, format)
	if err != nil {
		return err
	}
	r.logger.Debug("decoded input",
		zap.String("source", displayName(name)),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
		zap.Int("documents", len(docs)),
	)

	for i, doc := range docs {
		if r.cfg.Root != "" {
			doc, err = query.Root(doc, r.cfg.Root)
			if err != nil {
				return fmt.Errorf("document %d: %w", i+1, err)
			}
			r.logger.Debug("selected root", zap.String("path", r.cfg.Root), zap.Int("document", i+1))
		}

		out := subobject.Build(r.selectors, doc)
		r.logger.Debug("projected document",
			zap.String("source", displayName(name)),
			zap.Int("document", i+1),
		)

		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) read(name string) ([]byte, error) {
	if name == config.StdinName {
		data, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == config.StdinName {
		return "<stdin>"
	}
	return name
}

type selectorList []subobject.Selector

func (s selectorList) String() string {
	return subobject.Format(s)
}
