// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/configexport/internal/prompt"
	"github.com/pdiddy/configexport/pkg/types"
)

func init() {
	color.NoColor = true
}

const databaseINI = `; sample
[Database]
host = localhost
port = 5432

[Cache]
ttl : 60
`

type exported struct {
	Timestamp string                       `json:"timestamp"`
	Config    map[string]map[string]string `json:"config"`
}

func newTestApp(t *testing.T, stdin string) (*app, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/app.ini", []byte(databaseINI), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/bad.ini", []byte("[Broken\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/out", 0o755))

	var out bytes.Buffer
	return &app{
		fs:  fs,
		in:  strings.NewReader(stdin),
		out: &out,
		log: zap.NewNop(),
		cfg: types.AppConfig{Export: types.ExportConfig{Format: types.FormatJSON, Indent: 4}},
	}, &out
}

func readExport(t *testing.T, fs afero.Fs, path string) exported {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var e exported
	require.NoError(t, gojson.Unmarshal(data, &e))
	return e
}

func TestConvert_WithArgs(t *testing.T) {
	a, out := newTestApp(t, "")

	require.NoError(t, a.convert([]string{"/in/app.ini", "/out/app.json"}, convertOptions{}))

	e := readExport(t, a.fs, "/out/app.json")
	assert.Equal(t, map[string]map[string]string{
		"Database": {"host": "localhost", "port": "5432"},
		"Cache":    {"ttl": "60"},
	}, e.Config)
	_, err := time.Parse(time.RFC3339, e.Timestamp)
	assert.NoError(t, err)

	assert.Contains(t, out.String(), "Configuration File Parser Results:")
	assert.Contains(t, out.String(), "- host: localhost")
	assert.Contains(t, out.String(), "Configuration successfully saved to: /out/app.json")
}

func TestConvert_Interactive(t *testing.T) {
	stdin := strings.Join([]string{
		"/in/missing.ini", "yes",
		`"/in/app.ini"`,
		"/out/new/app.json", "yes",
	}, "\n") + "\n"
	a, out := newTestApp(t, stdin)

	require.NoError(t, a.convert(nil, convertOptions{viewOptions: viewOptions{quiet: true}}))

	e := readExport(t, a.fs, "/out/new/app.json")
	assert.Len(t, e.Config, 2)
	assert.NotContains(t, out.String(), "Parser Results")
	assert.Contains(t, out.String(), "File not found at '/in/missing.ini'")
}

func TestConvert_Aborted(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantOut string
	}{
		{
			name:    "no input file",
			stdin:   "/in/missing.ini\nno\n",
			wantOut: "No valid input file provided.",
		},
		{
			name:    "no output location",
			args:    []string{"/in/app.ini"},
			stdin:   "",
			wantOut: "No valid output location provided.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := newTestApp(t, tt.stdin)
			err := a.convert(tt.args, convertOptions{})
			assert.ErrorIs(t, err, prompt.ErrAborted)
			assert.Contains(t, out.String(), tt.wantOut)
		})
	}
}

func TestConvert_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		opts    convertOptions
		wantIO  bool
		wantOut string
	}{
		{
			name:   "missing input",
			args:   []string{"/in/nope.ini", "/out/x.json"},
			wantIO: true,
		},
		{
			name:   "missing output directory",
			args:   []string{"/in/app.ini", "/out/sub/x.json"},
			wantIO: true,
		},
		{
			name:    "parse error",
			args:    []string{"/in/bad.ini", "/out/x.json"},
			wantOut: "Failed to read configuration file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, out := newTestApp(t, "")
			err := a.convert(tt.args, tt.opts)
			require.Error(t, err)

			var ioe *types.IOError
			var pe *types.ParseError
			if tt.wantIO {
				assert.True(t, errors.As(err, &ioe), "want *types.IOError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &pe), "want *types.ParseError, got %T", err)
			}
			assert.Contains(t, out.String(), tt.wantOut)

			exists, err := afero.Exists(a.fs, "/out/x.json")
			require.NoError(t, err)
			assert.False(t, exists, "no output may be written on failure")
		})
	}
}

func TestConvert_MkdirFlag(t *testing.T) {
	a, _ := newTestApp(t, "")

	require.NoError(t, a.convert([]string{"/in/app.ini", "/out/a/b/app.json"}, convertOptions{mkdir: true}))
	e := readExport(t, a.fs, "/out/a/b/app.json")
	assert.Len(t, e.Config, 2)
}

func TestConvert_YAMLAndTable(t *testing.T) {
	a, out := newTestApp(t, "")
	a.cfg.Export.Format = types.FormatYAML

	require.NoError(t, a.convert([]string{"/in/app.ini", "/out/app.yaml"}, convertOptions{viewOptions: viewOptions{table: true}}))

	data, err := afero.ReadFile(a.fs, "/out/app.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "timestamp:")
	assert.Contains(t, string(data), `port: "5432"`)
	assert.Contains(t, out.String(), "SECTION")
}

func TestConvert_StrictRejectsDuplicates(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.cfg.Parse.Strict = true
	require.NoError(t, afero.WriteFile(a.fs, "/in/dup.ini", []byte("[A]\nk = 1\n[A]\nk = 2\n"), 0o644))

	err := a.convert([]string{"/in/dup.ini", "/out/dup.json"}, convertOptions{})
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe), "want *types.ParseError, got %T", err)
}

func TestShow(t *testing.T) {
	a, out := newTestApp(t, "")
	require.NoError(t, a.show("/in/app.ini", viewOptions{}, false))
	assert.Contains(t, out.String(), "Database:")
	assert.Contains(t, out.String(), "- ttl: 60")
	assert.Contains(t, out.String(), "2 section(s), 3 key(s)")

	a, out = newTestApp(t, "")
	require.NoError(t, a.show("/in/app.ini", viewOptions{}, true))
	var e exported
	require.NoError(t, gojson.Unmarshal(out.Bytes(), &e))
	assert.Equal(t, "localhost", e.Config["Database"]["host"])

	exists, err := afero.Exists(a.fs, "/out/app.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	tests := []struct {
		name    string
		set     map[string]interface{}
		want    types.AppConfig
		wantErr string
	}{
		{
			name: "explicit values",
			set:  map[string]interface{}{"format": "yaml", "indent": 2, "strict": true, "log_level": "debug"},
			want: types.AppConfig{
				Export:   types.ExportConfig{Format: types.FormatYAML, Indent: 2},
				Parse:    types.ParseConfig{Strict: true},
				LogLevel: "debug",
			},
		},
		{
			name:    "unknown format",
			set:     map[string]interface{}{"format": "xml", "indent": 4},
			wantErr: "unsupported format",
		},
		{
			name:    "negative indent",
			set:     map[string]interface{}{"format": "json", "indent": -1},
			wantErr: "indent must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			for k, v := range tt.set {
				viper.Set(k, v)
			}
			got, err := loadConfig()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFlagHelpNamesLookedUpFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/home/u/.config/" + configName
	require.NoError(t, afero.WriteFile(fs, dir+"/"+configName+".yaml", []byte("format: yaml\n"), 0o644))

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "yaml", v.GetString("format"))

	usage := rootCmd.PersistentFlags().Lookup("config").Usage
	found := filepath.Base(v.ConfigFileUsed())
	assert.Contains(t, usage, "./"+found)
	assert.Contains(t, usage, "~/.config/"+configName+"/"+found)
	assert.NotContains(t, usage, "/config.yaml")
}
