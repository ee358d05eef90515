// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt validates input and output paths and asks the user for
// them interactively. The validation predicates are usable on their own for
// non-interactive callers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/pdiddy/configexport/pkg/types"
)

// ErrAborted is returned when the user declines to retry or input ends.
var ErrAborted = errors.New("aborted by user")

const (
	inputQuestion  = "Please enter the full path to your config file (e.g., /home/you/config.ini): "
	outputQuestion = "Please enter the full path for the output JSON file (e.g., /home/you/output.json): "
	retryQuestion  = "Would you like to try again? (yes/no): "
	createQuestion = "Would you like to create this directory? (yes/no): "

	probePrefix = ".configexport-probe-"
	dirPerm     = 0o755
)

// CleanPath trims whitespace and any quotes pasted around a path.
func CleanPath(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), `"'`)
}

// ValidateInputPath reports whether path names an existing regular file.
func ValidateInputPath(fs afero.Fs, path string) error {
	if path == "" {
		return &types.IOError{Op: "open", Path: path, Err: errors.New("no path given")}
	}
	info, err := fs.Stat(path)
	if err != nil {
		return &types.IOError{Op: "open", Path: path, Err: err}
	}
	if info.IsDir() {
		return &types.IOError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	return nil
}

// ValidateOutputPath reports whether a file can be written at path: the
// parent directory must exist and accept new files, and path itself must
// not be a directory. A missing parent directory yields an error that
// matches fs.ErrNotExist.
func ValidateOutputPath(fs afero.Fs, path string) error {
	if path == "" {
		return &types.IOError{Op: "write", Path: path, Err: errors.New("no path given")}
	}
	if info, err := fs.Stat(path); err == nil && info.IsDir() {
		return &types.IOError{Op: "write", Path: path, Err: errors.New("is a directory")}
	}

	dir := filepath.Dir(path)
	info, err := fs.Stat(dir)
	if err != nil {
		return &types.IOError{Op: "stat", Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &types.IOError{Op: "stat", Path: dir, Err: errors.New("not a directory")}
	}

	probe, err := afero.TempFile(fs, dir, probePrefix)
	if err != nil {
		return &types.IOError{Op: "write", Path: dir, Err: fmt.Errorf("no write permission: %w", err)}
	}
	name := probe.Name()
	probe.Close()
	if err := fs.Remove(name); err != nil {
		return &types.IOError{Op: "write", Path: dir, Err: err}
	}
	return nil
}

// EnsureOutputDir creates the parent directory of path if it is missing.
func EnsureOutputDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, dirPerm); err != nil {
		return &types.IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// IsMissingDir reports whether err from ValidateOutputPath means the parent
// directory does not exist.
func IsMissingDir(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// Prompter asks for paths on in and writes questions and errors to out.
type Prompter struct {
	in   *bufio.Scanner
	out  io.Writer
	fs   afero.Fs
	fail *color.Color
	note *color.Color
}

// New creates a Prompter. A nil fs means the OS filesystem.
func New(in io.Reader, out io.Writer, fs afero.Fs) *Prompter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Prompter{
		in:   bufio.NewScanner(in),
		out:  out,
		fs:   fs,
		fail: color.New(color.FgRed),
		note: color.New(color.FgYellow),
	}
}

// InputPath asks until the user names an existing file. A missing file is
// reported as not found; any other failure, such as a directory, is reported
// as is. Declining to retry returns ErrAborted.
func (p *Prompter) InputPath() (string, error) {
	for {
		raw, err := p.ask(inputQuestion)
		if err != nil {
			return "", err
		}
		path := CleanPath(raw)
		err = ValidateInputPath(p.fs, path)
		if err == nil {
			return path, nil
		}
		if errors.Is(err, iofs.ErrNotExist) {
			p.fail.Fprintf(p.out, "Error: File not found at '%s'\n", path)
		} else {
			p.fail.Fprintf(p.out, "Error: %v\n", err)
		}

		ok, err := p.confirm(retryQuestion)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrAborted
		}
	}
}

// OutputPath asks until the user names a writable output location. A
// missing parent directory is created when the user agrees; otherwise the
// question is repeated. Unwritable locations are reported and asked again.
func (p *Prompter) OutputPath() (string, error) {
	for {
		raw, err := p.ask(outputQuestion)
		if err != nil {
			return "", err
		}
		path := CleanPath(raw)

		err = ValidateOutputPath(p.fs, path)
		if err == nil {
			return path, nil
		}
		if !IsMissingDir(err) {
			p.fail.Fprintf(p.out, "Error: %v\n", err)
			continue
		}

		dir := filepath.Dir(path)
		p.note.Fprintf(p.out, "Directory '%s' does not exist.\n", dir)
		create, err := p.confirm(createQuestion)
		if err != nil {
			return "", err
		}
		if !create {
			continue
		}
		if err := EnsureOutputDir(p.fs, path); err != nil {
			p.fail.Fprintf(p.out, "Error: %v\n", err)
			retry, err := p.confirm(retryQuestion)
			if err != nil {
				return "", err
			}
			if !retry {
				return "", ErrAborted
			}
			continue
		}
		if err := ValidateOutputPath(p.fs, path); err != nil {
			p.fail.Fprintf(p.out, "Error: %v\n", err)
			continue
		}
		return path, nil
	}
}

// ask prints question and returns the next input line. End of input is
// treated as an abort so that loops always terminate.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrAborted
	}
	return p.in.Text(), nil
}

func (p *Prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}
