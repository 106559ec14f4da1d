package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/apierror"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/dto"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// InvoicesHandler exposes invoice building, the payment ledger and the
// rendered PDF download.
type InvoicesHandler struct {
	svc            service.InvoiceService
	ledger         service.LedgerService
	pdfStoragePath string
}

func NewInvoicesHandler(svc service.InvoiceService, ledger service.LedgerService, pdfStoragePath string) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, ledger: ledger, pdfStoragePath: pdfStoragePath}
}

func invoiceNumberParam(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("invalid invoice number"))
		return 0, false
	}
	return number, true
}

// Create godoc
// @Summary Build and finalize an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/invoices [post]
func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List all invoices, newest first
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.InvoiceListResponse
// @Router /v1/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Fetch one invoice by number
// @Tags invoices
// @Produce json
// @Param number path int true "Invoice number"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/invoices/{number} [get]
func (h *InvoicesHandler) Get(c *gin.Context) {
	number, ok := invoiceNumberParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetInvoice(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an invoice, restocking its quantities
// @Tags invoices
// @Param number path int true "Invoice number"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/invoices/{number} [delete]
func (h *InvoicesHandler) Delete(c *gin.Context) {
	number, ok := invoiceNumberParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteInvoice(c.Request.Context(), number); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordPayment godoc
// @Summary Apply a payment to a credit invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param number path int true "Invoice number"
// @Param body body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/invoices/{number}/payments [post]
func (h *InvoicesHandler) RecordPayment(c *gin.Context) {
	number, ok := invoiceNumberParam(c)
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.RecordPayment(c.Request.Context(), number, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPayments godoc
// @Summary Payment history of one invoice, oldest first
// @Tags invoices
// @Produce json
// @Param number path int true "Invoice number"
// @Success 200 {array} dto.PaymentRecordResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/invoices/{number}/payments [get]
func (h *InvoicesHandler) ListPayments(c *gin.Context) {
	number, ok := invoiceNumberParam(c)
	if !ok {
		return
	}
	resp, err := h.ledger.InvoicePayments(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF godoc
// @Summary Download the rendered invoice PDF
// @Tags invoices
// @Produce application/pdf
// @Param number path int true "Invoice number"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/invoices/{number}/pdf [get]
func (h *InvoicesHandler) DownloadPDF(c *gin.Context) {
	number, ok := invoiceNumberParam(c)
	if !ok {
		return
	}
	// 404 for unknown invoices even when a stale PDF file exists.
	if _, err := h.svc.GetInvoice(c.Request.Context(), number); err != nil {
		respondError(c, err)
		return
	}
	path := filepath.Join(h.pdfStoragePath, fmt.Sprintf("invoice_%d.pdf", number))
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("PDF not generated yet, retry shortly"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
