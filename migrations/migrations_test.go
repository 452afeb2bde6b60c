package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)

		body := string(data)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}

func TestInitSchemaIndexes(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_init_schema.sql")
	require.NoError(t, err)
	body := string(data)

	for _, idx := range []string{
		"UNIQUE KEY uk_orders_singleton (singleton_key)",
		"UNIQUE KEY uk_order_lines_product (order_id, product_id)",
		"UNIQUE KEY idx_users_email (email)",
		"UNIQUE KEY idx_users_phone (phone)",
		"UNIQUE KEY idx_categories_name (name)",
	} {
		assert.True(t, strings.Contains(body, idx), idx)
	}
}
