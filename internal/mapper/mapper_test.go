package mapper

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents_TruncatesTowardZero(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"19.99", 1999},
		{"19.995", 1999}, // fractional cent is dropped, not rounded
		{"10.1", 1010},
		{"0", 0},
		{"0.009", 0},
		{"-1.01", -101},
		{"-1.019", -101},
		{"2499", 249900},
	}
	for _, tc := range cases {
		d := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.want, ToCents(d), "ToCents(%s)", tc.in)
	}
}

func TestFromCents_Exact(t *testing.T) {
	// 1010 cents must read back as exactly 10.1 — not 10.099999....
	assert.True(t, FromCents(1010).Equal(decimal.RequireFromString("10.1")))
	assert.Equal(t, "10.1", FromCents(1010).String())
	assert.True(t, FromCents(1999).Equal(decimal.RequireFromString("19.99")))
	assert.True(t, FromCents(-101).Equal(decimal.RequireFromString("-1.01")))
}

func TestCents_RoundTrip(t *testing.T) {
	for _, s := range []string{"19.99", "10.1", "0.01", "12345.67", "0"} {
		d := decimal.RequireFromString(s)
		assert.True(t, FromCents(ToCents(d)).Equal(d), "round trip %s", s)
	}
}

func TestParseProductRef(t *testing.T) {
	p := ParseProductRef([]byte(`{
		"id": 7, "name": "Coca Cola 500ml", "description": null,
		"barcode": "7790895000430", "price_cents": 1999, "cost_cents": 1010,
		"stock": 4, "created_at": "2024-01-02 10:00:00", "updated_at": "2024-01-02 10:00:00"
	}`))
	require.NotNil(t, p)
	assert.Equal(t, int64(7), p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))
	assert.True(t, p.Cost.Equal(decimal.RequireFromString("10.1")))
	assert.Nil(t, p.Description)

	// Null id — the shape a LEFT JOIN emits when there is no product.
	assert.Nil(t, ParseProductRef([]byte(`{"id": null, "name": null}`)))

	// Malformed payloads decode to absent, never an error.
	assert.Nil(t, ParseProductRef([]byte(`not json`)))
	assert.Nil(t, ParseProductRef(nil))
}

func TestParseInvoiceRef(t *testing.T) {
	inv := ParseInvoiceRef([]byte(`{"id": 3, "total_cents": 12345, "created_at": "x", "updated_at": "y"}`))
	require.NotNil(t, inv)
	assert.Equal(t, int64(3), inv.ID)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("123.45")))

	assert.Nil(t, ParseInvoiceRef([]byte(`{"id": null}`)))
	assert.Nil(t, ParseInvoiceRef([]byte(`{]`)))
}

func TestParseLines(t *testing.T) {
	lines, ok := ParseLines([]byte(`[
		{"id": 1, "name": "Alfajor", "quantity": 2, "price_cents": 150,
		 "product": {"id": 9, "name": "Alfajor", "barcode": "1", "price_cents": 150, "cost_cents": 90, "stock": 10},
		 "created_at": "a", "updated_at": "b"},
		{"id": 2, "name": "Bolsa", "quantity": 1, "price_cents": 50,
		 "product": {"id": null}, "created_at": "a", "updated_at": "b"}
	]`))
	require.True(t, ok)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Price.Equal(decimal.RequireFromString("1.5")))
	require.NotNil(t, lines[0].Product)
	assert.True(t, lines[0].Product.Cost.Equal(decimal.RequireFromString("0.9")))
	assert.Nil(t, lines[1].Product)
}

func TestParseLines_PhantomEntryDiscarded(t *testing.T) {
	// An invoice with zero lines still produces one all-null array entry
	// through the LEFT JOIN; it must decode to an empty slice, not a fake line.
	lines, ok := ParseLines([]byte(`[{"id": null, "name": null, "quantity": null,
		"price_cents": null, "product": {"id": null}, "created_at": null, "updated_at": null}]`))
	require.True(t, ok)
	require.NotNil(t, lines)
	assert.Len(t, lines, 0)
}

func TestParseLines_Malformed(t *testing.T) {
	lines, ok := ParseLines([]byte(`{"not":"an array"}`))
	assert.False(t, ok)
	assert.Nil(t, lines)
}

func TestInvoiceRowDomain(t *testing.T) {
	row := InvoiceRow{
		ID:         4,
		TotalCents: 250,
		Lines:      sql.NullString{String: `[{"id": null}]`, Valid: true},
		CreatedAt:  "2024-01-02 10:00:00",
		UpdatedAt:  "2024-01-02 10:00:00",
	}
	inv := row.Domain()
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, inv.Lines)
	assert.Len(t, inv.Lines, 0)

	// Absent column means "lines not loaded".
	row.Lines = sql.NullString{}
	assert.Nil(t, row.Domain().Lines)

	// Malformed payload also means "lines not loaded".
	row.Lines = sql.NullString{String: `garbage`, Valid: true}
	assert.Nil(t, row.Domain().Lines)
}

func TestProductRowDomain(t *testing.T) {
	row := ProductRow{
		ID:          1,
		Name:        "Yerba 1kg",
		Description: sql.NullString{String: "Yerba mate", Valid: true},
		Barcode:     "7790000000001",
		PriceCents:  550050,
		CostCents:   320000,
		Stock:       12,
		CreatedAt:   "2024-01-02 10:00:00",
		UpdatedAt:   "2024-01-03 11:00:00",
	}
	p := row.Domain()
	assert.True(t, p.Price.Equal(decimal.RequireFromString("5500.5")))
	assert.True(t, p.Cost.Equal(decimal.RequireFromString("3200")))
	require.NotNil(t, p.Description)
	assert.Equal(t, "Yerba mate", *p.Description)
}
