package http

import (
	"log/slog"
	"net/http"
	"strings"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Headers set by the upstream gateway after it has verified the caller.
const (
	HeaderPrincipalRole    = "X-Principal-Role"
	HeaderPrincipalBranch  = "X-Principal-Branch"
	HeaderPrincipalSubject = "X-Principal-Subject"
)

const principalKey = "principal"

// PrincipalMiddleware attaches the caller's access.Principal to the echo
// context. A request without a role header carries no principal; the access
// guard rejects it where one is needed.
func PrincipalMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeaders(c.Request().Header)
			if err != nil {
				return respondError(c, logger, err)
			}
			if p != nil {
				c.Set(principalKey, p)
			}
			return next(c)
		}
	}
}

func principalFromHeaders(h http.Header) (*access.Principal, error) {
	rawRole := strings.TrimSpace(h.Get(HeaderPrincipalRole))
	if rawRole == "" {
		return nil, nil
	}

	role, err := access.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}

	var branchID *kernel.UUID
	if rawBranch := strings.TrimSpace(h.Get(HeaderPrincipalBranch)); rawBranch != "" {
		id, parseErr := kernel.UUIDFromString(rawBranch)
		if parseErr != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(HeaderPrincipalBranch, parseErr)
		}
		branchID = &id
	}

	return access.NewPrincipal(role, branchID, strings.TrimSpace(h.Get(HeaderPrincipalSubject)))
}

func principalFrom(c echo.Context) *access.Principal {
	p, _ := c.Get(principalKey).(*access.Principal)
	return p
}
