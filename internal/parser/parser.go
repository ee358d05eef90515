// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser turns INI-style configuration text into a ConfigDocument.
//
// Grammar: [Section] headers followed by "key = value" or "key: value"
// lines. Lines starting with ';' or '#' are comments. Keys that appear
// before the first header are ignored. Keys under an explicit [DEFAULT]
// header are copied into every named section that does not define them.
//
// Values are kept verbatim after trimming: no inline comment stripping, no
// quote or backtick removal, no multi-line """ values, no interpolation.
// Key names are kept as written; the forms the grammar library would
// rewrite ("-", "quoted" or `backticked` names) are rejected with a
// ParseError naming the line.
package parser

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"

	"github.com/pdiddy/configexport/pkg/types"
)

// Options controls duplicate handling.
type Options struct {
	// Strict rejects a section or key that is defined more than once.
	// Otherwise sections are merged and the last value of a key wins.
	Strict bool
}

// OptionsFromConfig converts the parse settings of the application config.
func OptionsFromConfig(cfg types.ParseConfig) Options {
	return Options{Strict: cfg.Strict}
}

// Parser reads configuration files from a filesystem. It holds no state
// between calls; every Parse returns a freshly built document.
type Parser struct {
	fs   afero.Fs
	opts Options
}

// New creates a Parser over fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, opts Options) *Parser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Parser{fs: fs, opts: opts}
}

// Parse reads the file at path and parses it. A missing, unreadable, or
// directory path yields *types.IOError; malformed text yields
// *types.ParseError. On error the returned document is nil.
func (p *Parser) Parse(path string) (*types.ConfigDocument, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return nil, &types.IOError{Op: "stat", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &types.IOError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, &types.IOError{Op: "read", Path: path, Err: err}
	}

	doc, err := ParseBytes(data, p.opts)
	if err != nil {
		var pe *types.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// ParseBytes parses INI text held in memory.
func ParseBytes(data []byte, opts Options) (*types.ConfigDocument, error) {
	text, raw, err := prepare(data)
	if err != nil {
		return nil, err
	}

	lo := loadOptions()
	if opts.Strict {
		// Keep every occurrence so that redefinitions can be reported.
		lo.AllowNonUniqueSections = true
		lo.AllowShadows = true
		lo.AllowDuplicateShadowValues = true
	}
	f, err := ini.LoadSources(lo, text)
	if err != nil {
		return nil, &types.ParseError{Err: err}
	}
	return build(f, raw, opts.Strict)
}

// loadOptions are the grammar settings shared by both modes.
func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
		IgnoreContinuation:      true,
		KeyValueDelimiters:      delimiters,
	}
}

// build copies the loaded file into a ConfigDocument. Each named section
// gets its own keys first, then any [DEFAULT] keys it does not define.
func build(f *ini.File, raw rawValues, strict bool) (*types.ConfigDocument, error) {
	defaults := f.Section(ini.DefaultSection)
	if strict {
		for _, key := range defaults.Keys() {
			if err := checkShadows(ini.DefaultSection, key); err != nil {
				return nil, err
			}
		}
	}

	b := types.NewDocumentBuilder()
	for _, sec := range f.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			continue
		}
		if strict && b.HasSection(name) {
			return nil, &types.ParseError{Err: fmt.Errorf("section %q defined more than once", name)}
		}
		b.AddSection(name)
		own := make(map[string]bool)
		for _, key := range sec.Keys() {
			own[key.Name()] = true
			if strict {
				if err := checkShadows(name, key); err != nil {
					return nil, err
				}
			}
			b.Set(name, key.Name(), raw.resolve(key.Value()))
		}
		for _, key := range defaults.Keys() {
			if !own[key.Name()] {
				b.Set(name, key.Name(), raw.resolve(key.Value()))
			}
		}
	}
	return b.Build(), nil
}

// checkShadows reports a key that was assigned more than once in section.
func checkShadows(section string, key *ini.Key) error {
	if len(key.ValueWithShadows()) > 1 {
		return &types.ParseError{Err: fmt.Errorf("key %q in section %q defined more than once", key.Name(), section)}
	}
	return nil
}
