package labsearch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/labsearch/config"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(c *Catalog) []string {
	records := c.Index().Records()
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestOpen_DefaultsToBuiltinRecords(t *testing.T) {
	c, err := Open(context.Background(), nil, quiet())
	require.NoError(t, err)
	defer c.Close()

	origin := c.Origin()
	assert.True(t, origin.FromFallback)
	assert.Equal(t, source.FallbackName, origin.Source)
	assert.ErrorIs(t, origin.Err, source.ErrEmptyLocation)
	assert.Equal(t, len(source.DefaultRecords()), c.Index().Len())
	assert.Nil(t, c.Store())
}

func TestOpen_LocalSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "analyses.csv", "Code;Nom;Prix\nUREE;Urée;30\nCREA;Créatinine;30\n")

	c, err := Open(context.Background(), config.NewConfig(config.WithDataLocation(path)), quiet())
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Origin().FromFallback)
	assert.Equal(t, path, c.Origin().Source)
	assert.Equal(t, []string{"Créatinine", "Urée"}, names(c))
}

func TestOpen_RemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Name,Price\nFerritine,150\n"))
	}))
	defer srv.Close()

	cfg := config.NewConfig(config.WithDataLocation(srv.URL))
	c, err := Open(context.Background(), cfg, quiet(), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"Ferritine"}, names(c))
}

func TestOpen_UnusableSourceFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "analyses.csv", "Nom,Prix\n,30\nUrée,gratuit\n")

	c, err := Open(context.Background(), config.NewConfig(config.WithDataLocation(path)), quiet())
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Origin().FromFallback)
	assert.ErrorIs(t, c.Origin().Err, core.ErrEmptyDataset)
	assert.Equal(t, len(source.DefaultRecords()), c.Index().Len())
}

func TestOpen_Taxonomy(t *testing.T) {
	dir := t.TempDir()
	taxonomy := writeFile(t, dir, "taxonomy.yaml", "default: Autres\ncategories:\n  - name: Rénal\n    keywords: [urée, créatinine]\n")
	data := writeFile(t, dir, "analyses.csv", "Nom,Prix\nUrée,30\nTSH,120\n")

	cfg := config.NewConfig(config.WithDataLocation(data), config.WithTaxonomyPath(taxonomy))
	c, err := Open(context.Background(), cfg, quiet())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, core.Category("Rénal"), c.Index().Classify("Urée"))
	assert.Equal(t, core.Category("Autres"), c.Index().Classify("TSH"))
}

func TestOpen_BadTaxonomy(t *testing.T) {
	_, err := Open(context.Background(), config.NewConfig(config.WithTaxonomyPath(filepath.Join(t.TempDir(), "missing.yaml"))), quiet())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), config.NewConfig(config.WithLanguage("??")), quiet())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestCatalog_ImportWithoutStore(t *testing.T) {
	c, err := Open(context.Background(), nil, quiet())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Import(context.Background(), nil, "whatever.csv")
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestCatalog_ImportAndReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	data := writeFile(t, dir, "analyses.csv", "Nom,Prix\nUrée,30\n")
	imported := writeFile(t, dir, "import.csv", "Nom,Prix\nFerritine,150\nBilirubine totale,40\n")
	cfg := config.NewConfig(
		config.WithDataLocation(data),
		config.WithStorePath(filepath.Join(dir, "db")),
	)

	c, err := Open(ctx, cfg, quiet())
	require.NoError(t, err)
	assert.False(t, c.Origin().FromSnapshot, "empty store reads the source")
	assert.Equal(t, []string{"Urée"}, names(c))

	report, err := c.Import(ctx, nil, imported)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Info.Count)
	assert.True(t, c.Origin().FromSnapshot)
	assert.Equal(t, []string{"Bilirubine totale", "Ferritine"}, names(c))
	require.NoError(t, c.Close())

	c, err = Open(ctx, cfg, quiet())
	require.NoError(t, err)
	defer c.Close()
	assert.True(t, c.Origin().FromSnapshot)
	assert.Equal(t, imported, c.Origin().Source)
	assert.Equal(t, report.Info.Fingerprint, c.Origin().Snapshot.Fingerprint)
	assert.Equal(t, []string{"Bilirubine totale", "Ferritine"}, names(c))
}
