package authHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authService "Inkwell/internal/api/auth/service"
	"Inkwell/internal/middleware"
)

type AuthHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	authService authService.IAuthService
	middleware  middleware.Middleware
}

func NewAuthHandler(authService authService.IAuthService, log *logrus.Logger, validator *validator.Validate, middleware middleware.Middleware) *AuthHandler {
	return &AuthHandler{
		log:         log,
		validator:   validator,
		authService: authService,
		middleware:  middleware,
	}
}

func (h *AuthHandler) Start(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/register", h.middleware.NewRateLimiter, h.RegisterUser)
	authGroup.Post("/login", h.middleware.NewRateLimiter, h.LoginUser)
	authGroup.Post("/logout", h.middleware.NewTokenMiddleware, h.LogoutUser)
	authGroup.Get("/users", h.middleware.NewTokenMiddleware, h.GetAllUsers)
}
