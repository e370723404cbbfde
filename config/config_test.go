package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 8, cfg.SuggestLimit)
	assert.Equal(t, 50, cfg.ResultLimit)
	assert.Equal(t, 20, cfg.GroupPreview)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.DataLocation)
	assert.Empty(t, cfg.StorePath)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithDataLocation("https://example.org/analyses.csv"),
		WithStorePath("/var/lib/labsearch"),
		WithLanguage("en"),
		WithTaxonomyPath("taxonomy.yaml"),
		WithListenAddr("127.0.0.1:9000"),
		WithFetchRetry(5, time.Second),
	)
	assert.Equal(t, "https://example.org/analyses.csv", cfg.DataLocation)
	assert.Equal(t, "/var/lib/labsearch", cfg.StorePath)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "taxonomy.yaml", cfg.TaxonomyPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 5, cfg.FetchAttempts)
	assert.Equal(t, time.Second, cfg.FetchDelay)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{DataLocation: "  data.csv ", Language: " "}
	cfg.Normalize()
	assert.Equal(t, "data.csv", cfg.DataLocation)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 50, cfg.ResultLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero value", &Config{}, false},
		{"bad language", &Config{Language: "not a tag!"}, true},
		{"negative suggest limit", &Config{SuggestLimit: -1}, true},
		{"negative result limit", &Config{ResultLimit: -3}, true},
		{"negative preview", &Config{GroupPreview: -1}, true},
		{"negative attempts", &Config{FetchAttempts: -1}, true},
		{"negative delay", &Config{FetchDelay: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLanguageTag(t *testing.T) {
	tag, err := NewConfig(WithLanguage("fr-MA")).LanguageTag()
	require.NoError(t, err)
	base, _ := tag.Base()
	assert.Equal(t, "fr", base.String())

	tag, err = DefaultConfig().LanguageTag()
	require.NoError(t, err)
	assert.Equal(t, language.French.String(), tag.String())
}

func TestDecode(t *testing.T) {
	input := `
data: https://example.org/analyses.csv
db: /var/lib/labsearch
language: en
suggest_limit: 5
fetch_delay: 2s
allowed_origins:
  - https://labo.example.ma
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/analyses.csv", cfg.DataLocation)
	assert.Equal(t, "/var/lib/labsearch", cfg.StorePath)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 5, cfg.SuggestLimit)
	assert.Equal(t, 2*time.Second, cfg.FetchDelay)
	assert.Equal(t, []string{"https://labo.example.ma"}, cfg.AllowedOrigins)
	assert.Equal(t, 50, cfg.ResultLimit, "unset keys keep defaults")
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("datasource: x.csv\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
