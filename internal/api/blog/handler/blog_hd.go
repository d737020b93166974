package blogsHandler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	handlerUtilPkg "Inkwell/pkg/handlerUtil"
	jwtPkg "Inkwell/pkg/jwt"
)

const dateLayout = "2006-01-02"

func (h *BlogsHandler) CreateBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
	}).Info("CreateBlog request received")

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}

	req, err := parseBlogForm(ctx)
	if err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	image, _ := ctx.FormFile("featured_image")

	result, err := h.blogsService.CreateBlog(c, req, image, user)
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
			"slug":       result.Slug,
		}).Info("Blog created")
		return handlerUtil.HandleSuccess(ctx, fiber.StatusCreated, result)
	}
}

func (h *BlogsHandler) UpdateBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrBlogNotFound)
	}

	createReq, err := parseBlogForm(ctx)
	if err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	req := blogs.UpdateBlogRequest{
		Title:      createReq.Title,
		Content:    createReq.Content,
		CategoryID: createReq.CategoryID,
		Tags:       createReq.Tags,
		Status:     ctx.FormValue("status"),
		Action:     createReq.Action,
	}

	if err := h.validator.Struct(req); err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	image, _ := ctx.FormFile("featured_image")

	result, err := h.blogsService.UpdateBlog(c, int64(id), req, image, user)
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
		}).Info("Blog updated")
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *BlogsHandler) DeleteBlog(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrBlogNotFound)
	}

	if err := h.blogsService.DeleteBlog(c, int64(id), user); err != nil {
		return handlerUtil.HandleError(ctx, requestID, err)
	}

	select {
	case <-c.Done():
		return handlerUtil.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
		}).Info("Blog deleted")
		return handlerUtil.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"deleted": true})
	}
}

func (h *BlogsHandler) ListBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	query, err := parseListQuery(ctx)
	if err != nil {
		return handlerUtil.HandleValidationError(ctx, err)
	}

	result, err := h.blogsService.ListPublishedBlogs(c, query)
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

func (h *BlogsHandler) GetBlogByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrBlogNotFound)
	}

	user := optionalUser(ctx)

	result, err := h.blogsService.GetBlogDetailsByID(c, int64(id), user, viewerKey(ctx, user))
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

func (h *BlogsHandler) GetBlogBySlug(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	slug := ctx.Params("slug")
	if slug == "" {
		return handlerUtil.HandleError(ctx, requestID, blogs.ErrBlogNotFound)
	}

	user := optionalUser(ctx)

	result, err := h.blogsService.GetBlogDetailsBySlug(c, slug, user, viewerKey(ctx, user))
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

func (h *BlogsHandler) GetMyBlogs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	handlerUtil := handlerUtilPkg.New(h.log)

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return handlerUtil.HandleUnauthorized(ctx)
	}

	result, err := h.blogsService.GetMyBlogs(c, user, ctx.Query("filter"), ctx.Query("sort"))
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

func parseBlogForm(ctx *fiber.Ctx) (blogs.CreateBlogRequest, error) {
	req := blogs.CreateBlogRequest{
		Title:   strings.TrimSpace(ctx.FormValue("title")),
		Content: ctx.FormValue("content"),
		Action:  strings.ToLower(strings.TrimSpace(ctx.FormValue("action"))),
	}

	if raw := ctx.FormValue("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return blogs.CreateBlogRequest{}, err
		}
		req.CategoryID = &categoryID
	}

	if raw := ctx.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	return req, nil
}

func parseListQuery(ctx *fiber.Ctx) (blogs.ListQuery, error) {
	query := blogs.ListQuery{
		Search:   ctx.Query("search"),
		AuthorID: ctx.Query("author"),
		SortBy:   ctx.Query("sort"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("page_size", blogs.DefaultPageSize),
	}

	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return blogs.ListQuery{}, err
		}
		query.CategoryID = &categoryID
	}

	if raw := ctx.Query("start_date"); raw != "" {
		startDate, err := time.Parse(dateLayout, raw)
		if err != nil {
			return blogs.ListQuery{}, err
		}
		query.StartDate = &startDate
	}

	if raw := ctx.Query("end_date"); raw != "" {
		endDate, err := time.Parse(dateLayout, raw)
		if err != nil {
			return blogs.ListQuery{}, err
		}
		query.EndDate = &endDate
	}

	return query, nil
}

func optionalUser(ctx *fiber.Ctx) entity.UserLoginData {
	user, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return entity.UserLoginData{}
	}
	return user
}

// viewerKey identifies a viewer for view deduplication: the account for
// logged-in readers, the client address for everyone else.
func viewerKey(ctx *fiber.Ctx, user entity.UserLoginData) string {
	if user.ID != "" {
		return user.ID
	}
	return ctx.IP()
}
