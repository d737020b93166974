package authHandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"Inkwell/internal/api/auth"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	handlerUtilPkg "Inkwell/pkg/handlerUtil"
	jwtPkg "Inkwell/pkg/jwt"
)

func (h *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("RegisterUser request received")

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	var req auth.RegisterUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	result, err := h.authService.RegisterUser(c, req)
	if err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		return handlerUtil.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	var req auth.LoginUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	result, err := h.authService.LoginUser(c, req)
	if err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *AuthHandler) LogoutUser(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}

	if err := h.authService.LogoutUser(c, user); err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"logged_out": true})
	}
}

func (h *AuthHandler) GetAllUsers(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}
	if user.Role != entity.RoleAdmin {
		return handlerUtil.HandleForbidden(ctx)
	}

	result, err := h.authService.GetAllUsers(c)
	if err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}
