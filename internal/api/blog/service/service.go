package blogsService

import (
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	blogRepository "Inkwell/internal/api/blog/repository"
	"Inkwell/internal/entity"
	"Inkwell/pkg/redis"
	"Inkwell/pkg/s3"
	"Inkwell/pkg/utils"
)

type IBlogsService interface {
	CreateBlog(ctx context.Context, req blogs.CreateBlogRequest, image *multipart.FileHeader, user entity.UserLoginData) (blogs.BlogResponse, error)
	UpdateBlog(ctx context.Context, id int64, req blogs.UpdateBlogRequest, image *multipart.FileHeader, user entity.UserLoginData) (blogs.BlogResponse, error)
	DeleteBlog(ctx context.Context, id int64, user entity.UserLoginData) error
	ListPublishedBlogs(ctx context.Context, query blogs.ListQuery) (blogs.BlogListResponse, error)
	GetBlogDetailsByID(ctx context.Context, id int64, user entity.UserLoginData, viewerKey string) (blogs.BlogDetailsResponse, error)
	GetBlogDetailsBySlug(ctx context.Context, slug string, user entity.UserLoginData, viewerKey string) (blogs.BlogDetailsResponse, error)
	GetMyBlogs(ctx context.Context, user entity.UserLoginData, filter string, sortBy string) (blogs.MyBlogsResponse, error)
	GetAllCategories(ctx context.Context) (blogs.CategoryListResponse, error)
	GetCategoryByID(ctx context.Context, id int64) (blogs.CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (blogs.CategoryResponse, error)
	CreateCategory(ctx context.Context, req blogs.CreateCategoryRequest) (blogs.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type blogsService struct {
	log         *logrus.Logger
	blogsRepo   blogRepository.Repository
	s3          s3.ItfS3
	redisServer redis.IRedis
	utils       utils.IUtils
}

func New(blogsRepo blogRepository.Repository, log *logrus.Logger, s3Client s3.ItfS3, redisServer redis.IRedis, utils utils.IUtils) IBlogsService {
	return &blogsService{
		log:         log,
		blogsRepo:   blogsRepo,
		s3:          s3Client,
		redisServer: redisServer,
		utils:       utils,
	}
}
