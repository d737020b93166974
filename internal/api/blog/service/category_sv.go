package blogsService

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
)

func (s *blogsService) GetAllCategories(ctx context.Context) (blogs.CategoryListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.CategoryListResponse{Categories: []blogs.CategoryResponse{}}, nil
	}

	categories, err := client.Categories.GetAllCategories(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list categories, serving empty list")
		return blogs.CategoryListResponse{Categories: []blogs.CategoryResponse{}}, nil
	}

	result := make([]blogs.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, blogs.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Slug:        category.Slug,
			CreatedAt:   category.CreatedAt,
		})
	}

	return blogs.CategoryListResponse{Categories: result}, nil
}

func (s *blogsService) GetCategoryByID(ctx context.Context, id int64) (blogs.CategoryResponse, error) {
	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.CategoryResponse{}, err
	}

	category, err := client.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return blogs.CategoryResponse{}, err
	}

	return blogs.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Slug:        category.Slug,
		CreatedAt:   category.CreatedAt,
	}, nil
}

func (s *blogsService) GetCategoryBySlug(ctx context.Context, slug string) (blogs.CategoryResponse, error) {
	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.CategoryResponse{}, err
	}

	category, err := client.Categories.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return blogs.CategoryResponse{}, err
	}

	return blogs.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Slug:        category.Slug,
		CreatedAt:   category.CreatedAt,
	}, nil
}

func (s *blogsService) CreateCategory(ctx context.Context, req blogs.CreateCategoryRequest) (blogs.CategoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.CategoryResponse{}, err
	}

	slug := s.utils.GenerateSlug(req.Name)

	if _, err := client.Categories.GetCategoryBySlug(ctx, slug); err == nil {
		return blogs.CategoryResponse{}, blogs.ErrCategoryAlreadyExists
	} else if !errors.Is(err, blogs.ErrCategoryNotFound) {
		return blogs.CategoryResponse{}, err
	}

	category := entity.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug,
		CreatedAt:   time.Now(),
	}

	id, err := client.Categories.CreateCategory(ctx, category)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       req.Name,
			"error":      err.Error(),
		}).Error("Failed to create category")
		return blogs.CategoryResponse{}, blogs.ErrCreateCategory
	}

	return blogs.CategoryResponse{
		ID:          id,
		Name:        category.Name,
		Description: category.Description,
		Slug:        category.Slug,
		CreatedAt:   category.CreatedAt,
	}, nil
}

func (s *blogsService) DeleteCategory(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := client.Categories.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, blogs.ErrCategoryNotFound) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete category")
		return blogs.ErrDeleteCategory
	}

	return nil
}
