package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Rental-api/internal/domain"
	engine "github.com/jhoicas/Rental-api/internal/domain/billing"
	"github.com/jhoicas/Rental-api/internal/domain/repository"
	"github.com/jhoicas/Rental-api/pkg/logger"
)

// PDFUseCase genera el PDF de una factura emitida.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
	log         *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator, log *logger.Logger) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator, log: log}
}

// DownloadInvoicePDF carga la factura, re-deriva desde el input guardado y genera el PDF.
// Si los totales guardados no coinciden con el re-cálculo se registra un warning y se
// imprime el re-cálculo (el motor es determinista, así que indica datos alterados).
//
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	out := engine.Derive(InputFromInvoice(inv))
	if !storedTotalsMatch(inv, out) {
		uc.log.Warn().
			Str("invoice_id", inv.ID).
			Str("stored_total", inv.GrandTotal.String()).
			Str("derived_total", out.GrandTotal.String()).
			Msg("totales guardados no coinciden con el re-cálculo")
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, out, InvoiceDocument{Number: inv.Number, IssuedAt: inv.IssuedAt})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, PDFFilename(inv.ContractCode), nil
}
