package processor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/EDI-parser/internal/config"
	"github.com/ginjaninja78/EDI-parser/internal/edi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const ordersDocument = `UNA:+.? '
UNB+UNOC:3+123456789:14+987654321:14+230120:1234+00000000000111'
UNH+1+ORDERS:D:96A:UN'
BGM+220+PO123456+9'
DTM+137:20230120:102'
UNT+5+1'
UNZ+1+00000000000111'
`

func testConfig(t *testing.T) *config.MainConfig {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "input_archive")
	cfg.OutputArchiveDir = filepath.Join(root, "output_archive")
	cfg.OutputNameFormat = "{original}"
	require.NoError(t, cfg.EnsureDirectories())

	return cfg
}

func writeInput(t *testing.T, cfg *config.MainConfig, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func ordersSchema() *edi.Schema {
	return edi.NewSchema(map[string]bool{"UNB": true, "UNH": true, "UNZ": true, "FTX": false})
}

func TestRun_JSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.OutputFormat = "json"
	input := writeInput(t, cfg, "orders.edi", ordersDocument)

	result := New(input, ordersSchema(), cfg, nil).Run()
	require.NoError(t, result.Error)

	assert.True(t, result.Success)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 6, result.Stats.Segments)
	assert.Equal(t, 6, result.Stats.Tags)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "orders.json"), result.OutputFile)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, input, gjson.Get(out, "source").String())
	assert.Equal(t, "PO123456", gjson.Get(out, "segments.BGM.0.1.0").String())
	assert.True(t, gjson.Get(out, "validation.valid").Bool())

	assert.NoFileExists(t, input)
	assert.FileExists(t, filepath.Join(cfg.InputArchiveDir, "orders.edi"))
	assert.FileExists(t, filepath.Join(cfg.OutputArchiveDir, "orders.json"))
}

func TestRun_TimestampArchives(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveTimestampSubdirs = true
	input := writeInput(t, cfg, "orders.edi", ordersDocument)

	before := time.Now()
	result := New(input, ordersSchema(), cfg, nil).Run()
	require.NoError(t, result.Error)

	// Tolerate a run that crosses midnight.
	var archived bool
	for _, day := range []time.Time{before, time.Now()} {
		dated := filepath.Join(cfg.InputArchiveDir, day.Format("2006"), day.Format("01"), day.Format("02"), "orders.edi")
		if _, err := os.Stat(dated); err == nil {
			archived = true
		}
	}
	assert.True(t, archived)
	assert.NoFileExists(t, filepath.Join(cfg.InputArchiveDir, "orders.edi"))
}

func TestRun_InvalidContinues(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, cfg, "partial.edi", "UNB+x'UNH+1'")

	result := New(input, ordersSchema(), cfg, nil).Run()
	require.NoError(t, result.Error)

	assert.True(t, result.Success)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"UNZ"}, result.Missing)
	assert.Equal(t, 1, result.Stats.ValidationErrors)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `valid="false"`)
	assert.Contains(t, string(data), `missing="UNZ"`)
}

func TestRun_InvalidStops(t *testing.T) {
	cfg := testConfig(t)
	stop := false
	cfg.ContinueOnError = &stop
	input := writeInput(t, cfg, "partial.edi", "UNB+x'")

	result := New(input, ordersSchema(), cfg, nil).Run()

	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "UNH, UNZ")
	assert.False(t, result.Success)
	assert.Empty(t, result.OutputFile)
	assert.FileExists(t, input)
}

func TestRun_NoArchive(t *testing.T) {
	cfg := testConfig(t)
	archive := false
	cfg.ArchiveOnSuccess = &archive
	cfg.OutputFormat = "csv"
	input := writeInput(t, cfg, "orders.edi", ordersDocument)

	result := New(input, nil, cfg, nil).Run()
	require.NoError(t, result.Error)

	assert.True(t, result.Valid)
	assert.True(t, strings.HasSuffix(result.OutputFile, ".csv"))
	assert.FileExists(t, input)
}

func TestRun_Failures(t *testing.T) {
	t.Run("malformed header", func(t *testing.T) {
		cfg := testConfig(t)
		input := writeInput(t, cfg, "bad.edi", "UNA:+'")

		result := New(input, ordersSchema(), cfg, nil).Run()
		require.Error(t, result.Error)
		assert.True(t, errors.Is(result.Error, edi.ErrMalformedHeader))
		assert.False(t, result.Success)
		assert.FileExists(t, input)
	})

	t.Run("missing input", func(t *testing.T) {
		cfg := testConfig(t)

		result := New(filepath.Join(cfg.InputDir, "none.edi"), nil, cfg, nil).Run()
		require.Error(t, result.Error)
		assert.Contains(t, result.Error.Error(), "failed to read input")
	})

	t.Run("unknown format", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.OutputFormat = "pdf"
		input := writeInput(t, cfg, "orders.edi", ordersDocument)

		result := New(input, nil, cfg, nil).Run()
		require.Error(t, result.Error)
		assert.FileExists(t, input)
	})
}

func TestAnalyze(t *testing.T) {
	report, err := Analyze("stdin", "UNA>*,! ~UNB*a>b~", ordersSchema())
	require.NoError(t, err)

	assert.Equal(t, "stdin", report.Source)
	assert.Equal(t, '~', report.Delimiters.Segment)
	assert.Equal(t, edi.Segment{{"a", "b"}}, report.Document.Occurrences("UNB")[0])
	require.NotNil(t, report.Validation)
	assert.Equal(t, []string{"UNH", "UNZ"}, report.Validation.Missing)

	report, err = Analyze("", "", nil)
	require.NoError(t, err)
	assert.Nil(t, report.Validation)
	assert.True(t, report.Document.IsEmpty())
}

func TestRun_DryRun(t *testing.T) {
	cfg := testConfig(t)
	input := writeInput(t, cfg, "orders.edi", ordersDocument)

	p := New(input, ordersSchema(), cfg, nil)
	p.DryRun = true
	result := p.Run()

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.True(t, result.Valid)
	assert.Empty(t, result.OutputFile)
	assert.FileExists(t, input)

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
