package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set(KeyAgentBaseURL, "http://localhost:9090")
	require.NoError(t, err)

	val, ok := store.Get(KeyAgentBaseURL)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:9090", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyServerAddr, ":8080"))
	require.NoError(t, store.Set(KeyPageSize, 3000))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, ":8080", store.GetString(KeyServerAddr))
	assert.Equal(t, 3000, store.GetInt(KeyPageSize))
	assert.True(t, store.GetBool("verbose"))

	// Missing keys fall back to zero values.
	assert.Equal(t, "", store.GetString("nonexistent"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong types do too.
	assert.Equal(t, "", store.GetString(KeyPageSize))
	assert.Equal(t, 0, store.GetInt(KeyServerAddr))
	assert.False(t, store.GetBool(KeyServerAddr))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set(KeyAgentID, "reader"))
	require.NoError(t, store1.Set(KeyPageSize, 2500))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "reader", store2.GetString(KeyAgentID))
	assert.Equal(t, 2500, store2.GetInt(KeyPageSize))
}

func TestConfigStore_NestedTablesFlatten(t *testing.T) {
	tmpDir := t.TempDir()

	content := "[agent]\nbase_url = \"http://localhost:9090\"\nid = \"reader\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", store.GetString(KeyAgentBaseURL))
	assert.Equal(t, "reader", store.GetString(KeyAgentID))
}

func TestConfigStore_Load_MissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Load_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyAgentAPIKey, "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyInboxDir, "/tmp/inbox"))
	require.NoError(t, store.Set(KeyInboxDir, "/tmp/books"))
	assert.Equal(t, "/tmp/books", store.GetString(KeyInboxDir))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
