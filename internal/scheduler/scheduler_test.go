package scheduler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/pension-simulator/internal/config"
)

type countingStore struct {
	calls int
	err   error
}

func (c *countingStore) Reload() error {
	c.calls++
	return c.err
}

func TestReloadTablesJob(t *testing.T) {
	store := &countingStore{}
	job := NewReloadTablesJob(store, zerolog.Nop())
	assert.Equal(t, "reload_tables", job.Name())
	require.NoError(t, job.Run())

	store.err = errors.New("boom")
	assert.Error(t, job.Run())
	assert.Equal(t, 2, store.calls)
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	assert.Error(t, s.AddJob("not a schedule", NewReloadTablesJob(&countingStore{}, zerolog.Nop())))
	assert.NoError(t, s.AddJob("@every 5m", NewReloadTablesJob(&countingStore{}, zerolog.Nop())))
	s.Start()
	s.Stop()
}

func TestRunNowSwapsTablesAndKeepsOldOnFailure(t *testing.T) {
	dir := t.TempDir()
	taxFile := filepath.Join(dir, "tax.yaml")
	coeffFile := filepath.Join(dir, "coefficients.yaml")

	copyFile(t, "../../testdata/tax_2026.yaml", taxFile)
	copyFile(t, "../../testdata/coefficients.yaml", coeffFile)

	store, err := config.NewStore(config.NewLoader(), taxFile, coeffFile)
	require.NoError(t, err)
	first := store.Load()

	s := New(zerolog.Nop())
	job := NewReloadTablesJob(store, zerolog.Nop())

	require.NoError(t, os.WriteFile(taxFile, []byte("year: 2027\ncredit_point_value: 250\n"), 0o644))
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 2027, store.Load().TaxYear())
	assert.NotSame(t, first, store.Load())

	require.NoError(t, os.WriteFile(taxFile, []byte("year: [broken"), 0o644))
	assert.Error(t, s.RunNow(job))
	assert.Equal(t, 2027, store.Load().TaxYear())
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}
