package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kmwaura/malipo-api/internal/application/billing"
	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/pkg/jwt"
)

// Locals keys set by AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
	LocalActorID   = "actor_id"
)

// AuthMiddleware validates the Bearer JWT and loads the claims into c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalActorID, claims.ActorID)
		return c.Next()
	}
}

// RequireRole authorizes the request when the token role is one of roles.
// A token without the role claim gets 401; a mismatched role gets 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token has no role claim"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed for this resource"})
	}
}

// RequireSelf pins client-role tokens to their own record on routes with a
// :id path param: the param must match the token's actor_id. Admin and agent
// tokens pass through (company scoping happens in the use cases).
func RequireSelf() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleClient && c.Params("id") != GetActorID(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
		}
		return c.Next()
	}
}

// GetUserID returns the UserID from the context (after AuthMiddleware).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID returns the CompanyID from the context (after AuthMiddleware).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole returns the role from the context (after AuthMiddleware).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetActorID returns the linked client/agent ID from the context, empty for
// admin tokens.
func GetActorID(c *fiber.Ctx) string { return localString(c, LocalActorID) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// actorFrom assembles the billing actor from the token claims. ok is false
// when the token carries no user or company.
func actorFrom(c *fiber.Ctx) (billing.Actor, bool) {
	actor := billing.Actor{
		UserID:    GetUserID(c),
		CompanyID: GetCompanyID(c),
		Role:      GetRole(c),
		ActorID:   GetActorID(c),
	}
	return actor, actor.UserID != "" && actor.CompanyID != ""
}
