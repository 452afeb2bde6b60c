package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"restaurant/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	dir := t.TempDir()
	return NewLocalStorage(config.StorageConfig{UploadDir: dir, MaxUploadMB: 1, PublicBaseURL: "/uploads/"}), dir
}

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	s, dir := newTestStorage(t)
	ctx := context.Background()

	url, err := s.Save(ctx, "products", "Pizza.PNG", strings.NewReader("img"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	onDisk := filepath.Join(dir, "products", filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))

	require.NoError(t, s.Remove(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// 重复删除、外部地址都不报错
	assert.NoError(t, s.Remove(ctx, url))
	assert.NoError(t, s.Remove(ctx, "https://cdn.example.com/a.png"))
}

func TestLocalStorage_Rejects(t *testing.T) {
	s, dir := newTestStorage(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "users", "script.sh", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	big := bytes.Repeat([]byte("a"), int(s.MaxBytes())+1)
	_, err = s.Save(ctx, "users", "big.jpg", bytes.NewReader(big))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(filepath.Join(dir, "users"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_FolderTraversal(t *testing.T) {
	s, dir := newTestStorage(t)

	url, err := s.Save(context.Background(), "../../etc", "a.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"))

	_, err = os.Stat(filepath.Join(dir, "etc", filepath.Base(url)))
	assert.NoError(t, err)
}
