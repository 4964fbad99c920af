package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosco/internal/model"
	"kiosco/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products []model.Product
	err      error
	saved    []model.Product
}

func (r *stubProductRepo) Search(_ context.Context, _ string) ([]model.Product, error) {
	return r.products, r.err
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	return r.products, r.err
}

func (r *stubProductRepo) Create(_ context.Context, p model.Product) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, p)
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p model.Product) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, p)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubInvoiceRepo struct {
	invoices    []model.Invoice
	created     []model.Invoice
	nextID      int64
	linesFailed int
	err         error
}

func (r *stubInvoiceRepo) List(_ context.Context) ([]model.Invoice, error) {
	return r.invoices, r.err
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id int64) (model.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, repository.ErrNotFound
}

func (r *stubInvoiceRepo) ListLines(_ context.Context) ([]model.InvoiceLine, error) {
	return nil, r.err
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv model.Invoice) (int64, int, error) {
	if r.err != nil {
		return 0, 0, r.err
	}
	r.created = append(r.created, inv)
	r.nextID++
	return r.nextID, r.linesFailed, nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestProductService_FetchErrorIsLocalized(t *testing.T) {
	svc := NewProductService(&stubProductRepo{err: errors.New("disk I/O error")})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	// The raw storage error never reaches the caller.
	assert.NotContains(t, err.Error(), "disk I/O")
	assert.Equal(t, "Ocurrió un error al intentar obtener los productos.", err.Error())

	_, err = svc.Search(context.Background(), "coca")
	require.Error(t, err)
	assert.Equal(t, "Ocurrió un error al intentar obtener los productos.", err.Error())
}

func TestProductService_SaveErrorNamesTheProduct(t *testing.T) {
	svc := NewProductService(&stubProductRepo{err: errors.New("constraint failed")})

	err := svc.Save(context.Background(), model.Product{ID: 1, Name: "Yerba"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Yerba"`)
	assert.NotContains(t, err.Error(), "constraint")
}

func TestProductService_CreatePassesThrough(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo)

	require.NoError(t, svc.Create(context.Background(), model.Product{
		Name:    "Turrón",
		Barcode: "779",
		Price:   decimal.RequireFromString("0.5"),
	}))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Turrón", repo.saved[0].Name)
}

func TestInvoiceService_CreateReportsSkippedLines(t *testing.T) {
	repo := &stubInvoiceRepo{linesFailed: 2}
	svc := NewInvoiceService(repo)

	res, err := svc.Create(context.Background(), model.Invoice{
		Total: decimal.RequireFromString("10"),
		Lines: []model.InvoiceLine{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, 2, res.LinesFailed)
}

func TestInvoiceService_CreateHeaderFailure(t *testing.T) {
	svc := NewInvoiceService(&stubInvoiceRepo{err: errors.New("database is locked")})

	_, err := svc.Create(context.Background(), model.Invoice{})
	require.Error(t, err)
	assert.Equal(t, "Ocurrió un error al crear la factura", err.Error())
}

func TestReceiptService_UnknownInvoice(t *testing.T) {
	svc := NewReceiptService(&stubInvoiceRepo{}, t.TempDir())

	_, err := svc.Render(context.Background(), 77)
	require.Error(t, err)
	assert.Equal(t, "No se encontró la factura solicitada.", err.Error())
}

func TestReceiptService_RendersFile(t *testing.T) {
	repo := &stubInvoiceRepo{invoices: []model.Invoice{{
		ID:        3,
		Total:     decimal.RequireFromString("6.5"),
		CreatedAt: "2024-01-02 10:00:00",
		Lines: []model.InvoiceLine{
			{Name: "Cerveza 355ml", Quantity: 2, Price: decimal.RequireFromString("2.5")},
			{Name: "Bolsa", Quantity: 1, Price: decimal.RequireFromString("1.5")},
		},
	}}}
	svc := NewReceiptService(repo, t.TempDir())

	path, err := svc.Render(context.Background(), 3)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
