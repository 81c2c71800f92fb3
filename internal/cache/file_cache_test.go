package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileCacheRoundTrip(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[sample]("test_cache", 0)
	key := fc.GenerateKey("scene", "20260401", 0.1)

	_, ok := fc.Get(key)
	assert.False(t, ok)

	want := sample{Name: "PSScene", Count: 3}
	require.NoError(t, fc.Set(key, want))

	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFileCacheKeyDeterminism(t *testing.T) {
	fc := NewFileCache[sample]("test_cache", 0)
	assert.Equal(t, fc.GenerateKey("a", 1), fc.GenerateKey("a", 1))
	assert.NotEqual(t, fc.GenerateKey("a", 1), fc.GenerateKey("a", 2))
}

func TestFileCacheExpiry(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[sample]("test_cache", time.Nanosecond)
	key := fc.GenerateKey("expiring")
	require.NoError(t, fc.Set(key, sample{Name: "old"}))

	time.Sleep(time.Millisecond)
	_, ok := fc.Get(key)
	assert.False(t, ok)
}

func TestFileCacheCorruptEntry(t *testing.T) {
	t.Setenv("ROOT_PATH", t.TempDir())

	fc := NewFileCache[sample]("test_cache", 0)
	key := fc.GenerateKey("corrupt")
	require.NoError(t, fc.Set(key, sample{Name: "fine"}))

	require.NoError(t, os.WriteFile(fc.cacheDir+"/"+key+".json", []byte("{not json"), 0644))
	_, ok := fc.Get(key)
	assert.False(t, ok)
}
