package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

const subjectKey = "auth_subject"

// Middleware guards protected routes. It extracts the credential from the
// Authorization header, delegates to the token manager, and either stores
// the authorized subject in request locals or short-circuits with a 401.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the guard.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication before the protected handler runs.
//
// Accepted header shapes: "Bearer <token>" (scheme matched
// case-insensitively) and a bare "<token>". Anything else is rejected.
// Expired and malformed tokens collapse into one external category.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	credential, err := CredentialFromHeader(c.Get("Authorization"))
	if err != nil {
		return err
	}

	claims, err := m.tokens.Verify(credential)
	if err != nil {
		return apperrors.NewUnauthorized("INVALID_OR_EXPIRED_TOKEN", "Invalid or expired token")
	}

	c.Locals(subjectKey, &domain.AuthorizedSubject{Username: claims.Username})
	return c.Next()
}

// CredentialFromHeader classifies an Authorization header value into the
// credential string it carries. Accepted shapes: "Bearer <token>" with the
// scheme matched case-insensitively, or a bare "<token>". An absent value
// and an unrecognized shape reject with distinct 401 causes.
func CredentialFromHeader(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("MISSING_TOKEN", "Token is missing")
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return parts[1], nil
	case len(parts) == 1:
		return parts[0], nil
	default:
		return "", apperrors.NewUnauthorized("INVALID_TOKEN_FORMAT", "Invalid token format. Use: Bearer <token>")
	}
}

// SubjectFromContext retrieves the authenticated principal.
func SubjectFromContext(c *fiber.Ctx) (*domain.AuthorizedSubject, bool) {
	val := c.Locals(subjectKey)
	if val == nil {
		return nil, false
	}
	subject, ok := val.(*domain.AuthorizedSubject)
	return subject, ok
}
