// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/configexport/pkg/types"
)

const (
	delimiters = "=:"

	// rawMark prefixes the stand-in values handed to the grammar library
	// in place of values it would otherwise reinterpret.
	rawMark = "\x00"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// rawValues maps stand-in values back to the text as written.
type rawValues map[string]string

func (r rawValues) resolve(v string) string {
	if raw, ok := r[v]; ok {
		return raw
	}
	return v
}

// prepare checks the key/value lines of data and rewrites them so that the
// grammar library only sees plain "key = value" text:
//
//   - keys before the first section header are blanked out;
//   - values starting with a backtick or """ are swapped for stand-ins and
//     restored verbatim after loading;
//   - keys the library would rename ("-", quoted or backticked names) and
//     lines without a delimiter are rejected with the offending line number.
//
// Line numbering is preserved so library errors still point at the input.
func prepare(data []byte) ([]byte, rawValues, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if i := bytes.IndexByte(data, 0); i >= 0 {
		line := bytes.Count(data[:i], []byte("\n")) + 1
		return nil, nil, &types.ParseError{Line: line, Err: errors.New("NUL byte in configuration text")}
	}

	lines := strings.Split(string(data), "\n")
	raw := make(rawValues)
	inSection := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", trimmed[0] == '#', trimmed[0] == ';':
			continue
		case trimmed[0] == '[':
			inSection = true
			continue
		}

		n := i + 1
		idx := strings.IndexAny(trimmed, delimiters)
		if idx < 0 {
			return nil, nil, &types.ParseError{Line: n, Err: fmt.Errorf("key-value delimiter not found: %s", trimmed)}
		}
		key := strings.TrimSpace(trimmed[:idx])
		if err := checkKey(key); err != nil {
			return nil, nil, &types.ParseError{Line: n, Err: err}
		}
		if !inSection {
			lines[i] = ""
			continue
		}

		value := strings.TrimSpace(trimmed[idx+1:])
		if strings.HasPrefix(value, "`") || strings.HasPrefix(value, `"""`) {
			stand := rawMark + strconv.Itoa(len(raw))
			raw[stand] = value
			lines[i] = trimmed[:idx+1] + " " + stand
		}
	}

	return []byte(strings.Join(lines, "\n")), raw, nil
}

// checkKey rejects key names the grammar library would not store as written.
func checkKey(key string) error {
	switch {
	case key == "":
		return errors.New("empty key name")
	case key == "-":
		return errors.New(`key "-" is not supported`)
	case key[0] == '"' || key[0] == '`':
		return fmt.Errorf("quoted key %s is not supported", key)
	}
	return nil
}
