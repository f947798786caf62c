// Stockroom - Warehouse Operations Back Office
// SPDX-License-Identifier: MIT

package warehouse

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"orders.json":    `[]`,
		"inventory.json": `[]`,
		"customers.json": `[]`,
		"products.json":  `[]`,
		"addresses.json": `[]`,
		"warehouses.json": `[
			{"id":"w1","name":"montreal south"},
			{"id":"w2","name":"Laval Hub"},
			{"id":"w3","name":"Quebec Depot"},
			{"id":"w4","name":"Montreal North"}
		]`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return NewService(store.NewCatalog(dir, time.Minute))
}

func TestGetWarehouses_SortedByNameCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.GetWarehouses(context.Background(), Query{Unpaginated: true})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Data))
	for _, w := range res.Data {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"Laval Hub", "Montreal North", "montreal south", "Quebec Depot"}, names)
	assert.Equal(t, 4, res.Pagination.TotalItems)
	assert.Equal(t, 1, res.Pagination.TotalPages)
}

func TestGetWarehouses_Search(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.GetWarehouses(context.Background(), Query{Search: "  MONTREAL ", Unpaginated: true})
	require.NoError(t, err)

	require.Len(t, res.Data, 2)
	assert.Equal(t, "Montreal North", res.Data[0].Name)
	assert.Equal(t, "montreal south", res.Data[1].Name)
}

func TestGetWarehouses_Pagination(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.GetWarehouses(context.Background(), Query{Page: 2, ItemsPerPage: 3})
	require.NoError(t, err)

	require.Len(t, res.Data, 1)
	assert.Equal(t, "Quebec Depot", res.Data[0].Name)
	assert.Equal(t, 2, res.Pagination.CurrentPage)
	assert.True(t, res.Pagination.HasPrevPage)
	assert.False(t, res.Pagination.HasNextPage)
}
