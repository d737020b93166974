package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	jwtPkg "Inkwell/pkg/jwt"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")

	if authHeader == "" {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header is missing",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		m.log.WithFields(logrus.Fields{
			"path":  ctx.Path(),
			"error": "Authorization header format is invalid",
		}).Warn("Authorization header check")
		return unauthorized(ctx)
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Token verification failed")
		return unauthorized(ctx)
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		m.log.Warn("Invalid token claims")
		return unauthorized(ctx)
	}

	if claims["id"] == nil || claims["username"] == nil || claims["role"] == nil || claims["sid"] == nil {
		m.log.WithFields(logrus.Fields{
			"error": "Token claims are missing required fields",
		}).Warn("Token claims check")
		return unauthorized(ctx)
	}

	user := entity.UserLoginData{
		ID:        claims["id"].(string),
		Username:  claims["username"].(string),
		Role:      claims["role"].(string),
		SessionID: claims["sid"].(string),
	}

	// A token is only as alive as its server-side session; logout removes
	// the session and strands any copies of the token.
	exists, err := m.redisServer.SessionExists(contextPkg.FromFiberCtx(ctx), user.SessionID)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"session_id": user.SessionID,
		}).Error("Failed to check session")
		return unauthorized(ctx)
	}
	if !exists {
		m.log.WithFields(logrus.Fields{
			"session_id": user.SessionID,
		}).Warn("Session not found or revoked")
		return unauthorized(ctx)
	}

	ctx.Locals("user", user)

	return ctx.Next()
}

// NewOptionalTokenMiddleware attaches the user identity when a valid token
// is presented but lets anonymous requests through. Routes that render
// differently for authors use this instead of the strict variant.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		return ctx.Next()
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Next()
	}

	if claims["id"] == nil || claims["username"] == nil || claims["role"] == nil || claims["sid"] == nil {
		return ctx.Next()
	}

	user := entity.UserLoginData{
		ID:        claims["id"].(string),
		Username:  claims["username"].(string),
		Role:      claims["role"].(string),
		SessionID: claims["sid"].(string),
	}

	exists, err := m.redisServer.SessionExists(contextPkg.FromFiberCtx(ctx), user.SessionID)
	if err != nil || !exists {
		return ctx.Next()
	}

	ctx.Locals("user", user)

	return ctx.Next()
}

func unauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}
