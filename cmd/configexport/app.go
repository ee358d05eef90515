// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/pdiddy/configexport/internal/display"
	"github.com/pdiddy/configexport/internal/parser"
	"github.com/pdiddy/configexport/internal/prompt"
	"github.com/pdiddy/configexport/internal/serializer"
	"github.com/pdiddy/configexport/pkg/types"
)

// app wires the parser, serializer, prompts, and display for one command
// invocation. Commands build it from process globals; tests build it over
// an in-memory filesystem.
type app struct {
	fs  afero.Fs
	in  io.Reader
	out io.Writer
	log *zap.Logger
	cfg types.AppConfig
}

// viewOptions selects how parsed data is shown.
type viewOptions struct {
	quiet bool
	table bool
}

// convertOptions holds flags for the convert command.
type convertOptions struct {
	viewOptions
	mkdir bool
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

// convert resolves the input and output paths (prompting for any not given
// in args), parses the input, shows the result, and writes the export.
func (a *app) convert(args []string, opts convertOptions) error {
	fmt.Fprintln(a.out, "Configuration File Parser")
	fmt.Fprintln(a.out, strings.Repeat("=", 25))

	p := prompt.New(a.in, a.out, a.fs)

	input, err := a.inputPath(p, args)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(a.out, "Program terminated: No valid input file provided.")
		}
		return err
	}

	output, err := a.outputPath(p, args, opts.mkdir)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(a.out, "Program terminated: No valid output location provided.")
		}
		return err
	}

	doc, err := a.parse(input)
	if err != nil {
		failColor.Fprintln(a.out, "Failed to read configuration file")
		return err
	}

	if !opts.quiet {
		fmt.Fprintln(a.out, "\nConfiguration File Parser Results:")
		a.render(doc, opts.viewOptions)
	}

	start := time.Now()
	if err := serializer.New(a.fs, a.cfg.Export).WriteFile(doc, output); err != nil {
		a.log.Error("export failed", zap.String("path", output), zap.Error(err))
		failColor.Fprintf(a.out, "\nError saving configuration to %s file\n", strings.ToUpper(string(a.format())))
		return err
	}
	a.log.Info("exported configuration",
		zap.String("path", output),
		zap.String("format", string(a.format())),
		zap.Duration("elapsed", time.Since(start)))

	okColor.Fprintf(a.out, "\nConfiguration successfully saved to: %s\n", output)
	return nil
}

// show parses input and prints it, or prints the encoded export when
// asEnvelope is set.
func (a *app) show(input string, opts viewOptions, asEnvelope bool) error {
	input = prompt.CleanPath(input)
	if err := prompt.ValidateInputPath(a.fs, input); err != nil {
		return err
	}
	doc, err := a.parse(input)
	if err != nil {
		return err
	}

	if asEnvelope {
		data, err := serializer.New(a.fs, a.cfg.Export).Encode(doc)
		if err != nil {
			return err
		}
		_, err = a.out.Write(data)
		return err
	}

	a.render(doc, opts)
	fmt.Fprintf(a.out, "\n%s\n", display.Summary(doc))
	return nil
}

func (a *app) inputPath(p *prompt.Prompter, args []string) (string, error) {
	if len(args) > 0 {
		path := prompt.CleanPath(args[0])
		if err := prompt.ValidateInputPath(a.fs, path); err != nil {
			return "", err
		}
		return path, nil
	}
	return p.InputPath()
}

func (a *app) outputPath(p *prompt.Prompter, args []string, mkdir bool) (string, error) {
	if len(args) < 2 {
		return p.OutputPath()
	}
	path := prompt.CleanPath(args[1])
	if mkdir {
		if err := prompt.EnsureOutputDir(a.fs, path); err != nil {
			return "", err
		}
	}
	if err := prompt.ValidateOutputPath(a.fs, path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *app) parse(input string) (*types.ConfigDocument, error) {
	start := time.Now()
	doc, err := parser.New(a.fs, parser.OptionsFromConfig(a.cfg.Parse)).Parse(input)
	if err != nil {
		a.log.Error("parse failed", zap.String("path", input), zap.Error(err))
		return nil, err
	}
	a.log.Info("parsed configuration",
		zap.String("path", input),
		zap.Int("sections", doc.Len()),
		zap.Bool("strict", a.cfg.Parse.Strict),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

func (a *app) render(doc *types.ConfigDocument, opts viewOptions) {
	if opts.table {
		display.Table(a.out, doc)
		return
	}
	display.List(a.out, doc)
}

func (a *app) format() types.OutputFormat {
	if a.cfg.Export.Format == "" {
		return types.FormatJSON
	}
	return a.cfg.Export.Format
}
