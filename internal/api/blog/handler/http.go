package blogsHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	blogsService "Inkwell/internal/api/blog/service"
	"Inkwell/internal/middleware"
)

type BlogsHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	blogsService blogsService.IBlogsService
	middleware   middleware.Middleware
}

func NewBlogsHandler(blogsService blogsService.IBlogsService, log *logrus.Logger, validator *validator.Validate, middleware middleware.Middleware) *BlogsHandler {
	return &BlogsHandler{
		log:          log,
		validator:    validator,
		blogsService: blogsService,
		middleware:   middleware,
	}
}

func (h *BlogsHandler) Start(router fiber.Router) {
	blogsGroup := router.Group("/blogs")

	blogsGroup.Get("/", h.ListBlogs)
	blogsGroup.Post("/", h.middleware.NewTokenMiddleware, h.CreateBlog)
	blogsGroup.Get("/mine", h.middleware.NewTokenMiddleware, h.GetMyBlogs)

	blogsGroup.Get("/categories", h.GetAllCategories)
	blogsGroup.Post("/categories", h.middleware.NewTokenMiddleware, h.CreateCategory)
	blogsGroup.Get("/categories/slug/:slug", h.GetCategoryBySlug)
	blogsGroup.Get("/categories/:id", h.GetCategoryByID)
	blogsGroup.Delete("/categories/:id", h.middleware.NewTokenMiddleware, h.DeleteCategory)

	blogsGroup.Get("/slug/:slug", h.middleware.NewOptionalTokenMiddleware, h.GetBlogBySlug)
	blogsGroup.Get("/:id", h.middleware.NewOptionalTokenMiddleware, h.GetBlogByID)
	blogsGroup.Put("/:id", h.middleware.NewTokenMiddleware, h.UpdateBlog)
	blogsGroup.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteBlog)
}
