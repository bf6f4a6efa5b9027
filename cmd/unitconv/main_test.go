package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexshd/unitconv"
	"github.com/alexshd/unitconv/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("UNITCONV_REGISTRY", "")
	t.Setenv("UNITCONV_DB", "")
	t.Setenv("UNITCONV_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestConvert(t *testing.T) {
	out, err := runCLI(t, "convert", "1", "km", "m")
	require.NoError(t, err)
	assert.Equal(t, "1000 m\n", out)

	out, err = runCLI(t, "convert", "100", "C", "F")
	require.NoError(t, err)
	assert.Equal(t, "212 F\n", out)
}

func TestConvert_NegativeValue(t *testing.T) {
	out, err := runCLI(t, "convert", "-40", "C", "F")
	require.NoError(t, err)
	assert.Equal(t, "-40 F\n", out)

	out, err = runCLI(t, "convert", "-1.5", "km", "m", "--precision", "1")
	require.NoError(t, err)
	assert.Equal(t, "-1500 m\n", out)
}

func TestBest_NegativeValue(t *testing.T) {
	out, err := runCLI(t, "best", "-5", "C", "--cutoff", "-100")
	require.NoError(t, err)
	assert.Equal(t, "-5 C (degrees Celsius)\n", out)
}

func TestConvert_Precision(t *testing.T) {
	out, err := runCLI(t, "--precision", "2", "convert", "1", "ft", "m")
	require.NoError(t, err)
	assert.Equal(t, "0.3 m\n", out)
}

func TestConvert_UnsupportedUnit(t *testing.T) {
	_, err := runCLI(t, "convert", "1", "furlong", "m")
	require.Error(t, err)
	assert.ErrorIs(t, err, unitconv.ErrUnsupportedUnit)
}

func TestConvert_IncompatibleMeasure(t *testing.T) {
	_, err := runCLI(t, "convert", "1", "kg", "m")
	assert.ErrorIs(t, err, unitconv.ErrIncompatibleMeasure)
}

func TestBest(t *testing.T) {
	out, err := runCLI(t, "best", "1200", "mm")
	require.NoError(t, err)
	assert.Equal(t, "1.2 m (Meters)\n", out)

	out, err = runCLI(t, "best", "3600", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "1 h (Hour)")
}

func TestBest_NoCandidate(t *testing.T) {
	_, err := runCLI(t, "best", "1", "mm", "--cutoff", "1e12")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := runCLI(t, "describe", "km")
	require.NoError(t, err)
	assert.Contains(t, out, "ABBR")
	assert.Contains(t, out, "Kilometer")
	assert.Contains(t, out, "length")
}

func TestListAndAbbrs(t *testing.T) {
	out, err := runCLI(t, "list", "length")
	require.NoError(t, err)
	assert.Contains(t, out, "Millimeters")
	assert.NotContains(t, out, "Kilogram")

	out, err = runCLI(t, "abbrs", "length")
	require.NoError(t, err)
	assert.Contains(t, out, "km\n")

	_, err = runCLI(t, "abbrs", "nope")
	assert.ErrorIs(t, err, unitconv.ErrMeasureNotFound)
}

func TestMeasuresAndCheck(t *testing.T) {
	out, err := runCLI(t, "measures")
	require.NoError(t, err)
	assert.Contains(t, out, "length\n")
	assert.Contains(t, out, "temperature\n")

	out, err = runCLI(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok:")
}

func TestExport_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")

	_, err := runCLI(t, "export", "--out", path)
	require.NoError(t, err)

	out, err := runCLI(t, "--registry", path, "convert", "100", "C", "F")
	require.NoError(t, err)
	assert.Equal(t, "212 F\n", out)
}

func TestExport_SQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.db")

	_, err := runCLI(t, "export", "--format", "sqlite", "--out", path)
	require.NoError(t, err)

	out, err := runCLI(t, "--db", path, "convert", "1", "mi", "ft")
	require.NoError(t, err)
	assert.Equal(t, "5280 ft\n", out)
}

func TestEscapeNegatives(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, config.Config{LogLevel: "info", LogFormat: "tint", Precision: 6}, io.Discard, io.Discard)
	require.NoError(t, err)

	tests := []struct {
		args []string
		want []string
	}{
		{
			args: []string{"convert", "100", "C", "F"},
			want: []string{"convert", "100", "C", "F"},
		},
		{
			args: []string{"convert", "-40", "C", "F"},
			want: []string{"convert", "--", "-40", "C", "F"},
		},
		{
			args: []string{"-p", "2", "convert", "-40", "C", "F"},
			want: []string{"convert", "-p", "2", "--", "-40", "C", "F"},
		},
		{
			args: []string{"best", "-1200", "mm", "--system", "imperial", "--exclude=in"},
			want: []string{"best", "--system", "imperial", "--exclude=in", "--", "-1200", "mm"},
		},
		{
			args: []string{"best", "5", "C", "--cutoff", "-100"},
			want: []string{"best", "5", "C", "--cutoff", "-100"},
		},
		{
			args: []string{"convert", "--", "-40", "C", "F"},
			want: []string{"convert", "--", "-40", "C", "F"},
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeNegatives(parser.Model, tt.args), tt.args)
	}
}
