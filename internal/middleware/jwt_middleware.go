package middleware

import (
	"errors"
	"slices"
	"strings"

	"blog/internal/common"
	"blog/internal/models"
	"blog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID string
	Role   string
}

// IdentityFrom returns the identity stored by an access guard.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}

// Policy describes who may pass a guard.
type Policy struct {
	// Roles that may pass. Empty means any principal with a user id.
	Roles []string
	// RequireOwnership restricts the "user" role to posts it authored.
	RequireOwnership bool
	// Denied is returned when the role check fails.
	Denied string
}

var (
	UserPolicy = Policy{
		Denied: "Access denied: Please register an account",
	}
	AdminPolicy = Policy{
		Roles:  []string{models.RoleAdmin},
		Denied: "Access denied: Admin only",
	}
	OwnerOrAdminPolicy = Policy{
		Roles:            []string{models.RoleUser, models.RoleAdmin},
		RequireOwnership: true,
		Denied:           "Access denied",
	}
)

func (p Policy) allows(id Identity) bool {
	if len(p.Roles) == 0 {
		return id.UserID != ""
	}
	return slices.Contains(p.Roles, id.Role)
}

// PostFinder looks up the post an ownership check applies to.
type PostFinder interface {
	GetByID(id string) (*models.Post, error)
}

// Guard builds access-control middleware around a TokenService.
type Guard struct {
	tokens *services.TokenService
	posts  PostFinder
}

// NewGuard creates a Guard. posts is only consulted by ownership policies.
func NewGuard(tokens *services.TokenService, posts PostFinder) *Guard {
	return &Guard{
		tokens: tokens,
		posts:  posts,
	}
}

// UserRequired lets through any authenticated principal.
func (g *Guard) UserRequired() fiber.Handler { return g.Require(UserPolicy) }

// AdminRequired lets through admins only.
func (g *Guard) AdminRequired() fiber.Handler { return g.Require(AdminPolicy) }

// OwnerOrAdmin lets through admins and the author of the post named by the
// ":id" route parameter.
func (g *Guard) OwnerOrAdmin() fiber.Handler { return g.Require(OwnerOrAdminPolicy) }

// Require returns a Fiber middleware enforcing p.
func (g *Guard) Require(p Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := BearerToken(c)
		if tokenString == "" {
			return reject(c, fiber.StatusForbidden, "Token required", nil)
		}

		claims, err := g.tokens.Verify(tokenString)
		if err != nil {
			return reject(c, fiber.StatusUnauthorized, "Invalid or expired token", err)
		}
		id := Identity{UserID: claims.UserID, Role: claims.Role}

		if !p.allows(id) {
			return reject(c, fiber.StatusForbidden, p.Denied, nil)
		}

		if p.RequireOwnership {
			post, err := g.posts.GetByID(c.Params("id"))
			if err != nil {
				if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrValidation) {
					return reject(c, fiber.StatusNotFound, "Post not found", nil)
				}
				logrus.WithError(err).WithField("post_id", c.Params("id")).Error("ownership lookup failed")
				return reject(c, fiber.StatusForbidden, "Access denied: You are not the owner", err)
			}
			if id.Role == models.RoleUser && post.Author != id.UserID {
				return reject(c, fiber.StatusForbidden, "Access denied: You are not the owner", nil)
			}
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or has another scheme.
func BearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func reject(c *fiber.Ctx, status int, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}
