package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"kiosco/internal/model"
	"kiosco/internal/repository"
)

var (
	errInvoiceFetch  = errors.New("Ocurrió un error al intentar obtener las facturas.")
	errInvoiceCreate = errors.New("Ocurrió un error al crear la factura")
)

// CreateInvoiceResult reports the outcome of an invoice creation. The header
// insert succeeding is what makes the operation a success; LinesFailed
// exposes how many line inserts were skipped after logging, so the caller
// can surface partial completion instead of assuming everything persisted.
type CreateInvoiceResult struct {
	ID          int64 `json:"id"`
	LinesFailed int   `json:"lines_failed"`
}

// InvoiceService defines the invoice use cases exposed over the command
// boundary.
type InvoiceService interface {
	List(ctx context.Context) ([]model.Invoice, error)
	ListLines(ctx context.Context) ([]model.InvoiceLine, error)
	Create(ctx context.Context, inv model.Invoice) (CreateInvoiceResult, error)
}

type invoiceService struct {
	repo repository.InvoiceRepository
}

func NewInvoiceService(repo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{repo: repo}
}

func (s *invoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	log.Info().Msg("fetching invoices")
	invoices, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list invoices")
		return nil, errInvoiceFetch
	}
	log.Info().Int("count", len(invoices)).Msg("invoices found")
	return invoices, nil
}

func (s *invoiceService) ListLines(ctx context.Context) ([]model.InvoiceLine, error) {
	lines, err := s.repo.ListLines(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list invoice lines")
		return nil, errInvoiceFetch
	}
	return lines, nil
}

// Create persists the invoice with the total supplied by the caller — it is
// not recomputed from the lines. Per-line stock decrements and inserts are
// best effort; only a header failure makes the whole operation fail.
func (s *invoiceService) Create(ctx context.Context, inv model.Invoice) (CreateInvoiceResult, error) {
	id, linesFailed, err := s.repo.Create(ctx, inv)
	if err != nil {
		log.Error().Err(err).Msg("failed to create invoice")
		return CreateInvoiceResult{}, errInvoiceCreate
	}
	if linesFailed > 0 {
		log.Warn().Int64("invoice_id", id).Int("lines_failed", linesFailed).
			Msg("invoice created with skipped lines")
	} else {
		log.Info().Int64("invoice_id", id).Int("lines", len(inv.Lines)).
			Msg("invoice created successfully")
	}
	return CreateInvoiceResult{ID: id, LinesFailed: linesFailed}, nil
}
