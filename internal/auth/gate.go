package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/config"
	"github.com/spec-kit/kanban-service/internal/domain"
	apperrors "github.com/spec-kit/kanban-service/pkg/util"
)

const identityKey = "auth_identity"

// Gate is the request-admission state machine. It is built once at startup
// and holds no per-request state; every decision is a pure function of the
// route class and the presented token.
type Gate struct {
	codec   *SessionCodec
	routes  *Classifier
	logger  *zap.Logger
	offline bool
	debug   bool
}

// NewGate constructs the gate from startup configuration.
func NewGate(cfg config.AppConfig, codec *SessionCodec, routes *Classifier, logger *zap.Logger) *Gate {
	return &Gate{
		codec:   codec,
		routes:  routes,
		logger:  logger,
		offline: cfg.Offline,
		debug:   cfg.Debug,
	}
}

// Decide admits or rejects one request. A nil identity with a nil error means
// admitted anonymously. Expired tokens are waved through on logged-out routes
// because the refresh flow must accept an expired token; a still-valid token
// on those routes is rejected instead.
func (g *Gate) Decide(class RouteClass, token string, present bool) (*domain.Identity, error) {
	if g.offline {
		return nil, apperrors.NewServiceOffline()
	}

	if class == RoutePublic {
		return nil, nil
	}

	if !present {
		if class == RouteLoggedOut {
			return nil, nil
		}
		return nil, apperrors.NewActionNotAllowed()
	}

	claims, err := g.codec.Verify(token)
	if err != nil {
		var expired *ExpiredError
		if errors.As(err, &expired) {
			if class == RouteLoggedOut {
				return nil, nil
			}
			return nil, apperrors.NewTokenExpired()
		}
		return nil, apperrors.NewInternalError(err)
	}

	if class == RouteLoggedOut {
		return nil, apperrors.NewAlreadyLoggedIn()
	}

	return &domain.Identity{UserID: claims.UserID, RoleID: claims.RoleID}, nil
}

// Handle enforces admission for every inbound request.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token, present := BearerToken(c.Get(fiber.HeaderAuthorization))

	identity, err := g.Decide(g.routes.Classify(c.Path()), token, present)
	if err != nil {
		g.logRejection(c.Path(), err)
		return err
	}

	if identity != nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

func (g *Gate) logRejection(path string, err error) {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code == "INTERNAL_ERROR" {
		g.logger.Error("token verification failed", zap.String("path", path), zap.Error(domainErr))
		return
	}
	if g.debug {
		g.logger.Warn("request rejected",
			zap.String("path", path),
			zap.String("code", domainErr.Code))
	}
}

// IdentityFromContext retrieves the admitted caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// BearerToken extracts the credential from an Authorization header value. The
// "Bearer" prefix is accepted but not required.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1], true
	}
	return header, true
}
