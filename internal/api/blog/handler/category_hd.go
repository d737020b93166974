package blogsHandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	handlerUtilPkg "Inkwell/pkg/handlerUtil"
	jwtPkg "Inkwell/pkg/jwt"
)

func (h *BlogsHandler) GetAllCategories(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	result, err := h.blogsService.GetAllCategories(c)
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

func (h *BlogsHandler) GetCategoryByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrCategoryNotFound)
	}

	result, err := h.blogsService.GetCategoryByID(c, int64(id))
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

func (h *BlogsHandler) GetCategoryBySlug(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	slug := ctx.Params("slug")
	if slug == "" {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrCategoryNotFound)
	}

	result, err := h.blogsService.GetCategoryBySlug(c, slug)
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

func (h *BlogsHandler) CreateCategory(ctx *fiber.Ctx) error {
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

	var req blogs.CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	result, err := h.blogsService.CreateCategory(c, req)
	if err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         result.ID,
			"name":       result.Name,
		}).Info("Category created")
		return handlerUtil.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *BlogsHandler) DeleteCategory(ctx *fiber.Ctx) error {
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

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrCategoryNotFound)
	}

	if err := h.blogsService.DeleteCategory(c, int64(id)); err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Info("Category deleted")
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"deleted": true})
	}
}
