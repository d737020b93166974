package blogsService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	blogRepository "Inkwell/internal/api/blog/repository"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
)

const (
	maxImageSize  = 5 * 1024 * 1024
	relatedLimit  = 3
	slugRetryMax  = 100
	viewMarkerTTL = 30 * time.Minute
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

func validateImageFile(file *multipart.FileHeader) error {
	ext := strings.ToLower(path.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return blogs.ErrInvalidFileType
	}
	if file.Size > maxImageSize {
		return blogs.ErrFileTooLarge
	}
	return nil
}

func (s *blogsService) ensureCategoryExists(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return err
	}

	_, err = client.Categories.GetCategoryByID(ctx, *categoryID)
	return err
}

// uniqueSlug appends -1, -2, ... until the candidate is free. The exclusion
// id keeps a blog from colliding with its own slug during edits; pass 0 for
// new blogs.
func (s *blogsService) uniqueSlug(ctx context.Context, client blogRepository.Client, base string, excludeID int64) (string, error) {
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for suffix := 1; suffix <= slugRetryMax; suffix++ {
		exists, err := client.Blogs.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}

	return "", fmt.Errorf("could not find a free slug for %q", base)
}

func (s *blogsService) syncBlogTags(ctx context.Context, client blogRepository.Client, blogID int64, tagNames []string) ([]string, error) {
	seen := make(map[string]bool, len(tagNames))
	tagIDs := make([]int64, 0, len(tagNames))
	cleaned := make([]string, 0, len(tagNames))

	for _, name := range tagNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		tag, err := client.Tags.UpsertTag(ctx, name, s.utils.GenerateSlug(name))
		if err != nil {
			return nil, err
		}

		tagIDs = append(tagIDs, tag.ID)
		cleaned = append(cleaned, tag.Name)
	}

	if err := client.Tags.ReplaceBlogTags(ctx, blogID, tagIDs); err != nil {
		return nil, err
	}

	return cleaned, nil
}

// makeBlogResponse presigns the featured image so clients get a usable URL.
// A presign failure falls back to the raw key rather than failing the read.
func (s *blogsService) makeBlogResponse(ctx context.Context, blog entity.Blog, tags []string) blogs.BlogResponse {
	featuredImage := blog.FeaturedImage
	if featuredImage != "" {
		url, err := s.s3.PresignURL(featuredImage)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"key":        featuredImage,
				"error":      err.Error(),
			}).Warn("Failed to presign featured image URL")
		} else {
			featuredImage = url
		}
	}

	return blogs.BlogResponse{
		ID:            blog.ID,
		Title:         blog.Title,
		Content:       blog.Content,
		Excerpt:       blog.Excerpt,
		FeaturedImage: featuredImage,
		Slug:          blog.Slug,
		AuthorID:      blog.AuthorID,
		AuthorName:    blog.AuthorName,
		CategoryID:    blog.CategoryID,
		CategoryName:  blog.CategoryName,
		Status:        blog.Status.String(),
		ViewCount:     blog.ViewCount,
		CreatedAt:     blog.CreatedAt,
		UpdatedAt:     blog.UpdatedAt,
		PublishedAt:   blog.PublishedAt,
		Tags:          tags,
	}
}
