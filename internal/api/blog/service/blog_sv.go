package blogsService

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	blogRepository "Inkwell/internal/api/blog/repository"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
	"Inkwell/pkg/utils"
)

func (s *blogsService) CreateBlog(ctx context.Context, req blogs.CreateBlogRequest, image *multipart.FileHeader, user entity.UserLoginData) (blogs.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if image == nil {
		return blogs.BlogResponse{}, blogs.ErrImageRequired
	}
	if err := validateImageFile(image); err != nil {
		return blogs.BlogResponse{}, err
	}

	if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return blogs.BlogResponse{}, err
	}

	imageKey, err := s.s3.UploadImage(image)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload featured image")
		return blogs.BlogResponse{}, blogs.ErrFailedToUpload
	}

	now := time.Now()
	blog := entity.Blog{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       s.utils.GenerateExcerpt(req.Content, utils.ExcerptMaxLength),
		FeaturedImage: imageKey,
		AuthorID:      user.ID,
		AuthorName:    user.Username,
		CategoryID:    req.CategoryID,
		Status:        entity.BlogStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.Action == "publish" {
		blog.Status = entity.BlogStatusPublished
		publishedAt := now
		blog.PublishedAt = &publishedAt
	}

	baseSlug := s.utils.GenerateSlug(req.Title)

	// A concurrent writer can still take the slug between the uniqueness
	// check and the insert. The partial unique index catches that race and
	// we retry once with a freshly resolved slug.
	var response blogs.BlogResponse
	for attempt := 0; attempt < 2; attempt++ {
		response, err = s.insertBlog(ctx, blog, baseSlug, req.Tags)
		if err == nil {
			return response, nil
		}
		if !blogRepository.IsUniqueViolation(err) {
			break
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       baseSlug,
		}).Warn("Slug collision on insert, retrying with a regenerated slug")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"error":      err.Error(),
	}).Error("Failed to create blog")
	return blogs.BlogResponse{}, blogs.ErrCreateBlog
}

func (s *blogsService) insertBlog(ctx context.Context, blog entity.Blog, baseSlug string, tagNames []string) (blogs.BlogResponse, error) {
	client, err := s.blogsRepo.NewClient(true)
	if err != nil {
		return blogs.BlogResponse{}, err
	}
	defer func() {
		_ = client.Rollback()
	}()

	slug, err := s.uniqueSlug(ctx, client, baseSlug, 0)
	if err != nil {
		return blogs.BlogResponse{}, err
	}
	blog.Slug = slug

	id, err := client.Blogs.CreateBlog(ctx, blog)
	if err != nil {
		return blogs.BlogResponse{}, err
	}
	blog.ID = id

	tags, err := s.syncBlogTags(ctx, client, id, tagNames)
	if err != nil {
		return blogs.BlogResponse{}, err
	}

	if err := client.Commit(); err != nil {
		return blogs.BlogResponse{}, err
	}

	return s.makeBlogResponse(ctx, blog, tags), nil
}

func (s *blogsService) UpdateBlog(ctx context.Context, id int64, req blogs.UpdateBlogRequest, image *multipart.FileHeader, user entity.UserLoginData) (blogs.BlogResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.BlogResponse{}, err
	}

	blog, err := client.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return blogs.BlogResponse{}, err
	}

	if !blogs.CanMutateBlog(blog, user.ID, user.Role) {
		return blogs.BlogResponse{}, blogs.ErrBlogNotOwned
	}

	if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return blogs.BlogResponse{}, err
	}

	oldImageKey := ""
	if image != nil {
		if err := validateImageFile(image); err != nil {
			return blogs.BlogResponse{}, err
		}

		imageKey, err := s.s3.UploadImage(image)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload replacement featured image")
			return blogs.BlogResponse{}, blogs.ErrFailedToUpload
		}

		oldImageKey = blog.FeaturedImage
		blog.FeaturedImage = imageKey
	}

	titleChanged := blog.Title != req.Title
	blog.Title = req.Title
	blog.Content = req.Content
	blog.Excerpt = s.utils.GenerateExcerpt(req.Content, utils.ExcerptMaxLength)
	blog.CategoryID = req.CategoryID
	blog.UpdatedAt = time.Now()

	if req.Status != "" {
		if status, ok := entity.ParseBlogStatus(req.Status); ok {
			blog.Status = status
		}
	}
	if req.Action == "publish" {
		blog.Status = entity.BlogStatusPublished
	}

	// The publish timestamp is stamped once. Unpublishing and republishing
	// keeps the original date.
	if blog.Status == entity.BlogStatusPublished && blog.PublishedAt == nil {
		publishedAt := blog.UpdatedAt
		blog.PublishedAt = &publishedAt
	}

	baseSlug := blog.Slug

	if titleChanged {
		baseSlug = s.utils.GenerateSlug(req.Title)
	}

	var response blogs.BlogResponse
	for attempt := 0; attempt < 2; attempt++ {
		response, err = s.applyBlogUpdate(ctx, blog, baseSlug, titleChanged, req.Tags)
		if err == nil {
			break
		}
		if !blogRepository.IsUniqueViolation(err) {
			break
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       baseSlug,
		}).Warn("Slug collision on update, retrying with a regenerated slug")
	}

	if err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return blogs.BlogResponse{}, err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to update blog")
		return blogs.BlogResponse{}, blogs.ErrUpdateBlog
	}

	if oldImageKey != "" {
		go s.deleteImageAsync(oldImageKey, requestID)
	}

	return response, nil
}

func (s *blogsService) applyBlogUpdate(ctx context.Context, blog entity.Blog, baseSlug string, slugChanged bool, tagNames []string) (blogs.BlogResponse, error) {
	client, err := s.blogsRepo.NewClient(true)
	if err != nil {
		return blogs.BlogResponse{}, err
	}
	defer func() {
		_ = client.Rollback()
	}()

	if slugChanged {
		slug, err := s.uniqueSlug(ctx, client, baseSlug, blog.ID)
		if err != nil {
			return blogs.BlogResponse{}, err
		}
		blog.Slug = slug
	}

	if err := client.Blogs.UpdateBlog(ctx, blog); err != nil {
		return blogs.BlogResponse{}, err
	}

	tags, err := s.syncBlogTags(ctx, client, blog.ID, tagNames)
	if err != nil {
		return blogs.BlogResponse{}, err
	}

	if err := client.Commit(); err != nil {
		return blogs.BlogResponse{}, err
	}

	return s.makeBlogResponse(ctx, blog, tags), nil
}

func (s *blogsService) DeleteBlog(ctx context.Context, id int64, user entity.UserLoginData) error {
	requestID := contextPkg.GetRequestID(ctx)

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return err
	}

	blog, err := client.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return err
	}

	if !blogs.CanMutateBlog(blog, user.ID, user.Role) {
		return blogs.ErrBlogNotOwned
	}

	if err := client.Blogs.SoftDeleteBlog(ctx, id, time.Now()); err != nil {
		if errors.Is(err, blogs.ErrBlogNotFound) {
			return err
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("Failed to delete blog")
		return blogs.ErrDeleteBlog
	}

	if blog.FeaturedImage != "" {
		go s.deleteImageAsync(blog.FeaturedImage, requestID)
	}

	return nil
}

func (s *blogsService) deleteImageAsync(key string, requestID string) {
	if err := s.s3.DeleteImage(key); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"key":        key,
			"error":      err.Error(),
		}).Warn("Failed to delete stored image")
	}
}

// ListPublishedBlogs degrades to an empty page when the read fails, so the
// public index renders instead of erroring.
func (s *blogsService) ListPublishedBlogs(ctx context.Context, query blogs.ListQuery) (blogs.BlogListResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	query.Normalize()

	empty := blogs.BlogListResponse{
		Blogs:       []blogs.BlogResponse{},
		CurrentPage: query.Page,
		PageSize:    query.PageSize,
	}

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return empty, nil
	}

	list, total, err := client.Blogs.ListPublished(ctx, query)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list published blogs, serving empty page")
		return empty, nil
	}

	result := make([]blogs.BlogResponse, 0, len(list))
	for _, blog := range list {
		result = append(result, s.makeBlogResponse(ctx, blog, nil))
	}

	return blogs.BlogListResponse{
		Blogs:       result,
		TotalCount:  total,
		TotalPages:  blogs.TotalPages(total, query.PageSize),
		CurrentPage: query.Page,
		PageSize:    query.PageSize,
	}, nil
}

func (s *blogsService) GetBlogDetailsByID(ctx context.Context, id int64, user entity.UserLoginData, viewerKey string) (blogs.BlogDetailsResponse, error) {
	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.BlogDetailsResponse{}, err
	}

	blog, err := client.Blogs.GetBlogByID(ctx, id)
	if err != nil {
		return blogs.BlogDetailsResponse{}, err
	}

	return s.makeBlogDetails(ctx, client, blog, user, viewerKey)
}

func (s *blogsService) GetBlogDetailsBySlug(ctx context.Context, slug string, user entity.UserLoginData, viewerKey string) (blogs.BlogDetailsResponse, error) {
	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.BlogDetailsResponse{}, err
	}

	blog, err := client.Blogs.GetBlogBySlug(ctx, slug)
	if err != nil {
		return blogs.BlogDetailsResponse{}, err
	}

	return s.makeBlogDetails(ctx, client, blog, user, viewerKey)
}

func (s *blogsService) makeBlogDetails(ctx context.Context, client blogRepository.Client, blog entity.Blog, user entity.UserLoginData, viewerKey string) (blogs.BlogDetailsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	// Drafts are invisible to everyone but the author and admins. Reporting
	// not-found instead of forbidden avoids leaking their existence.
	if blog.Status != entity.BlogStatusPublished && !blogs.CanViewDraft(blog, user.ID, user.Role) {
		return blogs.BlogDetailsResponse{}, blogs.ErrBlogNotFound
	}

	if blog.Status == entity.BlogStatusPublished && viewerKey != "" {
		s.recordView(ctx, client, &blog, viewerKey)
	}

	tags, err := client.Tags.GetTagsByBlogID(ctx, blog.ID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         blog.ID,
			"error":      err.Error(),
		}).Warn("Failed to load blog tags")
		tags = nil
	}

	tagNames := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}

	related := s.relatedBlogs(ctx, client, blog)

	canMutate := blogs.CanMutateBlog(blog, user.ID, user.Role)

	return blogs.BlogDetailsResponse{
		Blog:         s.makeBlogResponse(ctx, blog, tagNames),
		RelatedBlogs: related,
		CanEdit:      canMutate,
		CanDelete:    canMutate,
	}, nil
}

// recordView counts at most one view per viewer per marker lifetime. Failures
// never fail the read; a missed count is cheaper than a missed page.
func (s *blogsService) recordView(ctx context.Context, client blogRepository.Client, blog *entity.Blog, viewerKey string) {
	requestID := contextPkg.GetRequestID(ctx)

	firstView, err := s.redisServer.MarkBlogViewed(ctx, viewerKey, blog.ID, viewMarkerTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         blog.ID,
			"error":      err.Error(),
		}).Warn("Failed to mark blog viewed")
		return
	}
	if !firstView {
		return
	}

	if err := client.Blogs.IncrementViewCount(ctx, blog.ID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         blog.ID,
			"error":      err.Error(),
		}).Warn("Failed to increment view count")
		return
	}

	blog.ViewCount++
}

// relatedBlogs fills up to three slots with recent same-category posts, then
// backfills from any category. Errors degrade to an empty list.
func (s *blogsService) relatedBlogs(ctx context.Context, client blogRepository.Client, blog entity.Blog) []blogs.BlogResponse {
	requestID := contextPkg.GetRequestID(ctx)
	result := make([]blogs.BlogResponse, 0, relatedLimit)
	excludeIDs := []int64{blog.ID}

	if blog.CategoryID != nil {
		sameCategory, err := client.Blogs.ListRecentPublished(ctx, excludeIDs, blog.CategoryID, relatedLimit)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         blog.ID,
				"error":      err.Error(),
			}).Warn("Failed to load related blogs")
			return result
		}

		for _, related := range sameCategory {
			result = append(result, s.makeBlogResponse(ctx, related, nil))
			excludeIDs = append(excludeIDs, related.ID)
		}
	}

	if len(result) < relatedLimit {
		backfill, err := client.Blogs.ListRecentPublished(ctx, excludeIDs, nil, relatedLimit-len(result))
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"id":         blog.ID,
				"error":      err.Error(),
			}).Warn("Failed to backfill related blogs")
			return result
		}

		for _, related := range backfill {
			result = append(result, s.makeBlogResponse(ctx, related, nil))
		}
	}

	return result
}

func (s *blogsService) GetMyBlogs(ctx context.Context, user entity.UserLoginData, filter string, sortBy string) (blogs.MyBlogsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	filter = strings.ToLower(strings.TrimSpace(filter))
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))

	var status *entity.BlogStatus
	switch filter {
	case "published":
		published := entity.BlogStatusPublished
		status = &published
	case "drafts":
		draft := entity.BlogStatusDraft
		status = &draft
	default:
		filter = "all"
	}

	client, err := s.blogsRepo.NewClient(false)
	if err != nil {
		return blogs.MyBlogsResponse{}, err
	}

	list, err := client.Blogs.GetBlogsByAuthor(ctx, user.ID, status)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to list author blogs, serving empty list")
		return blogs.MyBlogsResponse{
			Blogs:  []blogs.BlogResponse{},
			Filter: filter,
			SortBy: sortBy,
		}, nil
	}

	switch sortBy {
	case "oldest":
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	case "a-z":
		sort.SliceStable(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	default:
		sortBy = "newest"
		sort.SliceStable(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	}

	result := make([]blogs.BlogResponse, 0, len(list))
	for _, blog := range list {
		result = append(result, s.makeBlogResponse(ctx, blog, nil))
	}

	return blogs.MyBlogsResponse{
		Blogs:  result,
		Filter: filter,
		SortBy: sortBy,
	}, nil
}
