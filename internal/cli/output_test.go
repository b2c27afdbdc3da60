package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/valu/internal/value"
)

func TestOutputFormatter_TextValue(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Value(value.Obj(value.P("a", value.IntNumber(1))))
	require.NoError(t, err)
	assert.Equal(t, "object\n{\n\t\"a\": 1\n}\n", buf.String())
}

func TestOutputFormatter_JSONValue(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Value(value.Arr(value.FloatNumber(1.5), value.String("<x>")))
	require.NoError(t, err)
	assert.Equal(t, `{"status":"ok","data":{"kind":"array","value":[1.5,"<x>"]}}`+"\n", buf.String())
}

func TestOutputFormatter_YAMLValue(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "yaml", Writer: buf}

	err := formatter.Value(value.Bool(true))
	require.NoError(t, err)
	assert.Equal(t, "kind: bool\nvalue: true\n", buf.String())
}

func TestOutputFormatter_Document(t *testing.T) {
	v := value.Obj(value.P("b", value.Null{}), value.P("a", value.Undefined{}))

	tests := []struct {
		name      string
		format    string
		canonical bool
		want      string
	}{
		{"indented", "text", false, "{\n\t\"b\": null,\n\t\"a\": null\n}\n"},
		{"canonical", "json", true, "{\"a\":null,\"b\":null}\n"},
		{"yaml", "yaml", false, "b: null\na: null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: tt.format, Writer: buf}
			require.NoError(t, formatter.Document(v, tt.canonical))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Error("PARSE_ERROR", "bad input", map[string]int{"offset": 3})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PARSE_ERROR", resp.Error.Code)
	assert.Equal(t, "bad input", resp.Error.Message)
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}

	err := formatter.Error("PARSE_ERROR", "bad input", map[string]int{"offset": 3})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [PARSE_ERROR]: bad input")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diag := &bytes.Buffer{}, &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    out,
				ErrWriter: diag,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Loaded %s", "a.yaml")

			assert.Empty(t, out.String())
			if tt.wantLog {
				assert.Contains(t, diag.String(), "Loaded a.yaml")
			} else {
				assert.Empty(t, diag.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))

	wrapped := WrapExitError(ExitFailure, "classification failed", value.NewParseError(0, "x"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.True(t, value.IsParseError(wrapped))
	assert.Contains(t, wrapped.Error(), "classification failed: PARSE_ERROR")
}
