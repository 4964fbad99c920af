package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"kiosco/internal/model"
	"kiosco/internal/storage"
)

func newTestHandle(t *testing.T) *storage.Handle {
	t.Helper()
	h, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	require.NoError(t, storage.Migrate(context.Background(), h))
	return h
}

// seedProduct inserts a product and returns it as stored (with id and
// timestamps).
func seedProduct(t *testing.T, repo ProductRepository, name, barcode string, price, cost string, stock int64) model.Product {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, model.Product{
		Name:    name,
		Barcode: barcode,
		Price:   decimal.RequireFromString(price),
		Cost:    decimal.RequireFromString(cost),
		Stock:   stock,
	}))
	products, err := repo.Search(ctx, barcode)
	require.NoError(t, err)
	require.NotEmpty(t, products, "seeded product %q not found by barcode", name)
	return products[len(products)-1]
}

func seedCatalog(t *testing.T, repo ProductRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedProduct(t, repo,
			fmt.Sprintf("Producto %02d", i),
			fmt.Sprintf("779%010d", i),
			"10.5", "7.25", 10)
	}
}
