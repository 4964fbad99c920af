package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"kiosco/internal/receipt"
	"kiosco/internal/repository"
)

// ReceiptService renders a stored invoice to a PDF receipt on disk.
type ReceiptService interface {
	Render(ctx context.Context, invoiceID int64) (string, error)
}

type receiptService struct {
	repo        repository.InvoiceRepository
	storagePath string
}

func NewReceiptService(repo repository.InvoiceRepository, storagePath string) ReceiptService {
	return &receiptService{repo: repo, storagePath: storagePath}
}

func (s *receiptService) Render(ctx context.Context, invoiceID int64) (string, error) {
	inv, err := s.repo.FindByID(ctx, invoiceID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", errors.New("No se encontró la factura solicitada.")
	}
	if err != nil {
		log.Error().Err(err).Int64("invoice_id", invoiceID).Msg("failed to load invoice for receipt")
		return "", errInvoiceFetch
	}

	path, err := receipt.Generate(&inv, s.storagePath)
	if err != nil {
		log.Error().Err(err).Int64("invoice_id", invoiceID).Msg("failed to render receipt")
		return "", errors.New("Ocurrió un error al generar el comprobante.")
	}
	log.Info().Int64("invoice_id", invoiceID).Str("path", path).Msg("receipt rendered")
	return path, nil
}
