package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/kmwaura/malipo-api/internal/application/analytics"
	"github.com/kmwaura/malipo-api/internal/application/clients"
	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
)

// ClientHandler serves the client roster endpoints (protected).
type ClientHandler struct {
	uc        *clients.ClientUseCase
	analytics *appanalytics.DashboardUseCase
}

// NewClientHandler builds the handler.
func NewClientHandler(uc *clients.ClientUseCase, analytics *appanalytics.DashboardUseCase) *ClientHandler {
	return &ClientHandler{uc: uc, analytics: analytics}
}

// Create registers a client. Agent-created clients start pending approval;
// admin-created clients are approved immediately.
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	client, err := h.uc.Create(c.Context(), companyID, GetRole(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "agent not found"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID returns one client.
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	client, err := h.uc.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return clientErr(c, err)
	}
	return c.JSON(client)
}

// List returns the company roster, newest first.
// GET /api/clients  (admin/agent)
func (h *ClientHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), companyID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Update edits client contact details.
// PUT /api/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	client, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return clientErr(c, err)
	}
	return c.JSON(client)
}

// Approve accepts an agent-submitted client.
// POST /api/clients/:id/approve  (admin only)
func (h *ClientHandler) Approve(c *fiber.Ctx) error {
	return h.decideApproval(c, h.uc.Approve)
}

// Reject declines an agent-submitted client.
// POST /api/clients/:id/reject  (admin only)
func (h *ClientHandler) Reject(c *fiber.Ctx) error {
	return h.decideApproval(c, h.uc.Reject)
}

func (h *ClientHandler) decideApproval(c *fiber.Ctx, fn func(ctx context.Context, companyID, adminID, id string) error) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := fn(c.Context(), companyID, userID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "client is not pending approval"})
		}
		return clientErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate soft-deletes a client; history stays intact.
// DELETE /api/clients/:id  (admin only)
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	if err := h.uc.Deactivate(c.Context(), companyID, c.Params("id")); err != nil {
		return clientErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetEngagement returns the 0-100 engagement score with its breakdown.
// GET /api/clients/:id/engagement
func (h *ClientHandler) GetEngagement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	}
	engagement, err := h.analytics.GetEngagement(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return clientErr(c, err)
	}
	return c.JSON(engagement)
}

// clientErr maps the shared not-found/forbidden outcomes of client lookups.
func clientErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client not found"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
