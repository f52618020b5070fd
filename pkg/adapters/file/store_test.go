package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nocap-placify/placify/pkg/adapters/file"
	"github.com/nocap-placify/placify/pkg/domain"
	contract "github.com/nocap-placify/placify/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	contract.RunStateStoreContract(t, store)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	err := store.Save(ctx, "../escape", domain.NewSession("x", "w"))
	assert.Error(t, err)
	_, err = store.Load(ctx, "")
	assert.Error(t, err)
}

func TestFileStore_ListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", "w")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-s2-123.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
