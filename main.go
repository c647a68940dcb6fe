//go:build !js

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stackasm/pkg/asm"
	"stackasm/pkg/isafile"
	"stackasm/pkg/listing"
	"stackasm/pkg/operand"
	"stackasm/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	isaPath   string
	outPath   string
	annotate  bool
	strict    bool
	dotLabels bool
	verbose   bool
	inputs    []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("stackasm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.isaPath, "isa", "", "Lua instruction table script (default: built-in stack machine)")
	fs.StringVar(&cfg.outPath, "out", "", "write the listing to this file instead of stdout (single input only)")
	fs.BoolVar(&cfg.annotate, "annotate", false, "prefix each instruction with its program offset")
	fs.BoolVar(&cfg.strict, "strict", false, "reject instructions with surplus operands")
	fs.BoolVar(&cfg.dotLabels, "dot-labels", false, "treat every line starting with '.' as a label")
	fs.BoolVar(&cfg.verbose, "v", false, "trace every assembled line")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.inputs = fs.Args()

	if len(cfg.inputs) == 0 {
		fs.Usage()
		return cfg, errors.New("nothing to do: provide one or more assembly files")
	}
	if cfg.outPath != "" && len(cfg.inputs) > 1 {
		return cfg, errors.New("-out only works with a single input file")
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	log := utils.NewLogger(stderr, cfg.verbose)

	table, err := isafile.Load(cfg.isaPath)
	if err != nil {
		log.WithError(err).Error("loading instruction table")
		return 1
	}

	opts := []asm.Option{asm.WithLogger(log)}
	if cfg.strict {
		opts = append(opts, asm.WithStrictArity())
	}
	if cfg.dotLabels {
		opts = append(opts, asm.WithDotLabels())
	}
	assembler := asm.New[operand.Operand](table, operand.Converter{}, opts...)

	listings, err := assembleAll(assembler, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "assembly failed: %v\n", err)
		return 1
	}

	if cfg.outPath != "" {
		if err := os.WriteFile(cfg.outPath, []byte(listings[0]), 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write listing %q: %v\n", cfg.outPath, err)
			return 1
		}
		log.WithField("out", cfg.outPath).Info("listing written")
		return 0
	}

	for i, text := range listings {
		if len(listings) > 1 {
			fmt.Fprintf(stdout, "== %s\n", cfg.inputs[i])
		}
		fmt.Fprint(stdout, text)
	}
	return 0
}

// assembleAll assembles every input concurrently and returns the listings
// in input order. When several inputs fail, the error of the earliest one
// on the command line is returned.
func assembleAll(a *asm.Assembler[operand.Operand, string], cfg config, log logrus.FieldLogger) ([]string, error) {
	listings := make([]string, len(cfg.inputs))
	errs := make([]error, len(cfg.inputs))
	var g errgroup.Group
	for i, path := range cfg.inputs {
		i, path := i, path
		g.Go(func() error {
			listings[i], errs[i] = assembleFile(a, path, cfg.annotate, log)
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return listings, nil
}

func assembleFile(a *asm.Assembler[operand.Operand, string], path string, annotate bool, log logrus.FieldLogger) (string, error) {
	fullPath, _, err := utils.GetPathInfo(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}
	src, err := os.ReadFile(fullPath)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}

	c, err := a.Parse(string(src))
	if err != nil {
		return "", errors.Wrapf(err, "%s:%d", path, asm.LineOf(err))
	}

	log.WithFields(logrus.Fields{
		"file":   path,
		"words":  len(c.Program),
		"labels": len(c.Labels),
	}).Debug("assembled")
	if annotate {
		return listing.Annotate(listing.Build(c)), nil
	}
	return c.String(), nil
}
