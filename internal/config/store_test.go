package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rpgo/pension-simulator/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0644))
}

func TestStoreReloadSwapsTables(t *testing.T) {
	dir := t.TempDir()
	taxFile := filepath.Join(dir, "tax.yaml")
	coeffFile := filepath.Join(dir, "coefficients.yaml")
	copyFile(t, testdata+"tax_2026.yaml", taxFile)
	copyFile(t, testdata+"coefficients.yaml", coeffFile)

	store, err := NewStore(NewLoader(), taxFile, coeffFile)
	require.NoError(t, err)
	first := store.Load()
	assert.Equal(t, 2026, first.Tax.Year)

	require.NoError(t, os.WriteFile(taxFile, []byte("year: 2027\ncredit_point_value: 250\nbrackets_monthly:\n  - up_to: null\n    rate: 0.1\npension_exemption:\n  monthly_exempt_ceiling: 9700\n"), 0644))
	require.NoError(t, store.Reload())

	second := store.Load()
	assert.Equal(t, 2027, second.Tax.Year)
	assert.Equal(t, 2026, first.Tax.Year, "old snapshot is untouched")
}

func TestStoreReloadFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	taxFile := filepath.Join(dir, "tax.yaml")
	coeffFile := filepath.Join(dir, "coefficients.yaml")
	copyFile(t, testdata+"tax_2026.yaml", taxFile)
	copyFile(t, testdata+"coefficients.yaml", coeffFile)

	store, err := NewStore(NewLoader(), taxFile, coeffFile)
	require.NoError(t, err)
	before := store.Load()

	require.NoError(t, os.Remove(coeffFile))
	assert.Error(t, store.Reload())
	assert.Same(t, before, store.Load())
}

func TestNewStoreFailsWithoutFiles(t *testing.T) {
	_, err := NewStore(NewLoader(), "missing-tax.yaml", "missing-coefficients.yaml")
	assert.Error(t, err)
}

func TestStaticStoreConcurrentReaders(t *testing.T) {
	a := calculation.NewTables(nil, nil)
	store := NewStaticStore(a)
	assert.NoError(t, store.Reload())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables := store.Load()
			assert.NotNil(t, tables)
		}()
	}
	b := calculation.NewTables(nil, nil)
	prev := store.Swap(b)
	wg.Wait()

	assert.Same(t, a, prev)
	assert.Same(t, b, store.Load())
}
