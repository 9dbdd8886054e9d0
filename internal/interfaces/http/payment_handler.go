package http

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kmwaura/malipo-api/internal/application/billing"
	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
)

// PaymentHandler serves the payment ledger endpoints (protected).
type PaymentHandler struct {
	uc *billing.PaymentUseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *billing.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Submit records a pending payment against an invoice. Accepts JSON or a
// multipart form; the multipart variant may attach a "proof" file (receipt
// photo or M-Pesa confirmation screenshot).
// POST /api/invoices/:id/payments
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	invoiceID := c.Params("id")

	var in dto.SubmitPaymentRequest
	var proof *billing.ProofUpload
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		amount, err := decimal.NewFromString(c.FormValue("amount"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount must be a decimal number"})
		}
		in = dto.SubmitPaymentRequest{
			Amount:      amount,
			Method:      c.FormValue("method"),
			Reference:   c.FormValue("reference"),
			PaymentDate: c.FormValue("payment_date"),
		}
		if fh, err := c.FormFile("proof"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proof file could not be read"})
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proof file could not be read"})
			}
			proof = &billing.ProofUpload{
				FileName:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}

	payment, err := h.uc.Submit(c.Context(), actor, invoiceID, in, proof)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invoice not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
		}
		if errors.Is(err, domain.ErrOverpayment) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: "amount exceeds the outstanding balance"})
		}
		if errors.Is(err, domain.ErrDependency) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "proof upload failed; try again"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ListByInvoice returns the full ledger of an invoice, oldest first.
// GET /api/invoices/:id/payments
func (h *PaymentHandler) ListByInvoice(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	payments, err := h.uc.ListByInvoice(c.Context(), actor, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invoice not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(payments)
}

// Approve confirms a pending payment and folds it into the invoice totals.
// POST /api/payments/:id/approve  (admin only)
func (h *PaymentHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, h.uc.Approve)
}

// Reject declines a pending payment. Notes are mandatory.
// POST /api/payments/:id/reject  (admin only)
func (h *PaymentHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.uc.Reject)
}

type decisionFn func(ctx context.Context, actor billing.Actor, paymentID string, in dto.PaymentDecisionRequest) (*dto.PaymentResponse, error)

func (h *PaymentHandler) decide(c *fiber.Ctx, fn decisionFn) error {
	actor, ok := actorFrom(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.PaymentDecisionRequest
	// An empty body is fine on approval; notes are validated downstream.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
		}
	}
	payment, err := fn(c.Context(), actor, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "payment not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
		}
		if errors.Is(err, domain.ErrPaymentFinalized) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "payment was already approved or rejected"})
		}
		if errors.Is(err, domain.ErrOverpayment) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: "approving this payment would exceed the invoice total"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(payment)
}
