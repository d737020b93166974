package blogsService

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blogs "Inkwell/internal/api/blog"
	blogRepository "Inkwell/internal/api/blog/repository"
	"Inkwell/internal/entity"
	"Inkwell/pkg/utils"
)

type fakeStore struct {
	mu         sync.Mutex
	nextID     int64
	blogs      map[int64]entity.Blog
	tags       map[string]entity.Tag
	blogTags   map[int64][]int64
	categories map[int64]entity.Category
	listErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blogs:      make(map[int64]entity.Blog),
		tags:       make(map[string]entity.Tag),
		blogTags:   make(map[int64][]int64),
		categories: make(map[int64]entity.Category),
	}
}

type fakeRepo struct {
	store *fakeStore
}

func (f *fakeRepo) NewClient(tx bool) (blogRepository.Client, error) {
	return blogRepository.Client{
		Blogs:      &fakeBlogs{store: f.store},
		Categories: &fakeCategories{store: f.store},
		Tags:       &fakeTags{store: f.store},
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type fakeCategories struct {
	store *fakeStore
}

func (f *fakeCategories) GetAllCategories(_ context.Context) ([]entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var result []entity.Category
	for _, category := range f.store.categories {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeCategories) GetCategoryByID(_ context.Context, id int64) (entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	category, ok := f.store.categories[id]
	if !ok {
		return entity.Category{}, blogs.ErrCategoryNotFound
	}
	return category, nil
}

func (f *fakeCategories) GetCategoryBySlug(_ context.Context, slug string) (entity.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, category := range f.store.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return entity.Category{}, blogs.ErrCategoryNotFound
}

func (f *fakeCategories) CreateCategory(_ context.Context, category entity.Category) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	id := int64(len(f.store.categories) + 1)
	category.ID = id
	f.store.categories[id] = category
	return id, nil
}

func (f *fakeCategories) DeleteCategory(_ context.Context, id int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if _, ok := f.store.categories[id]; !ok {
		return blogs.ErrCategoryNotFound
	}
	delete(f.store.categories, id)
	return nil
}

type fakeBlogs struct {
	store *fakeStore
}

func (f *fakeBlogs) CreateBlog(_ context.Context, blog entity.Blog) (int64, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	f.store.nextID++
	blog.ID = f.store.nextID
	f.store.blogs[blog.ID] = blog
	return blog.ID, nil
}

func (f *fakeBlogs) GetBlogByID(_ context.Context, id int64) (entity.Blog, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	blog, ok := f.store.blogs[id]
	if !ok || blog.IsDeleted {
		return entity.Blog{}, blogs.ErrBlogNotFound
	}
	return blog, nil
}

func (f *fakeBlogs) GetBlogBySlug(_ context.Context, slug string) (entity.Blog, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, blog := range f.store.blogs {
		if blog.Slug == slug && !blog.IsDeleted {
			return blog, nil
		}
	}
	return entity.Blog{}, blogs.ErrBlogNotFound
}

func (f *fakeBlogs) ListPublished(_ context.Context, query blogs.ListQuery) ([]entity.Blog, int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if f.store.listErr != nil {
		return nil, 0, f.store.listErr
	}

	var result []entity.Blog
	for _, blog := range f.store.blogs {
		if blog.Status != entity.BlogStatusPublished || blog.IsDeleted {
			continue
		}
		if query.Search != "" && !strings.Contains(strings.ToLower(blog.Title), strings.ToLower(query.Search)) {
			continue
		}
		result = append(result, blog)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	totalCount := len(result)
	offset := query.Offset()
	if offset >= totalCount {
		return nil, totalCount, nil
	}

	end := offset + query.PageSize
	if end > totalCount {
		end = totalCount
	}
	return result[offset:end], totalCount, nil
}

func (f *fakeBlogs) ListRecentPublished(_ context.Context, excludeIDs []int64, categoryID *int64, limit int) ([]entity.Blog, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if f.store.listErr != nil {
		return nil, f.store.listErr
	}

	excluded := make(map[int64]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var result []entity.Blog
	for _, blog := range f.store.blogs {
		if blog.Status != entity.BlogStatusPublished || blog.IsDeleted || excluded[blog.ID] {
			continue
		}
		if categoryID != nil && (blog.CategoryID == nil || *blog.CategoryID != *categoryID) {
			continue
		}
		result = append(result, blog)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.PublishedAt != nil && b.PublishedAt != nil && !a.PublishedAt.Equal(*b.PublishedAt) {
			return a.PublishedAt.After(*b.PublishedAt)
		}
		return a.ID < b.ID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeBlogs) GetBlogsByAuthor(_ context.Context, authorID string, status *entity.BlogStatus) ([]entity.Blog, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if f.store.listErr != nil {
		return nil, f.store.listErr
	}

	var result []entity.Blog
	for _, blog := range f.store.blogs {
		if blog.AuthorID != authorID || blog.IsDeleted {
			continue
		}
		if status != nil && blog.Status != *status {
			continue
		}
		result = append(result, blog)
	}
	return result, nil
}

func (f *fakeBlogs) UpdateBlog(_ context.Context, blog entity.Blog) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	existing, ok := f.store.blogs[blog.ID]
	if !ok || existing.IsDeleted {
		return blogs.ErrBlogNotFound
	}

	blog.CreatedAt = existing.CreatedAt
	blog.ViewCount = existing.ViewCount
	f.store.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogs) SoftDeleteBlog(_ context.Context, id int64, now time.Time) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	blog, ok := f.store.blogs[id]
	if !ok || blog.IsDeleted {
		return blogs.ErrBlogNotFound
	}

	blog.IsDeleted = true
	blog.UpdatedAt = now
	f.store.blogs[id] = blog
	return nil
}

func (f *fakeBlogs) IncrementViewCount(_ context.Context, id int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	blog, ok := f.store.blogs[id]
	if !ok || blog.IsDeleted {
		return nil
	}

	blog.ViewCount++
	f.store.blogs[id] = blog
	return nil
}

func (f *fakeBlogs) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	for _, blog := range f.store.blogs {
		if blog.Slug == slug && !blog.IsDeleted && blog.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTags struct {
	store *fakeStore
}

func (f *fakeTags) UpsertTag(_ context.Context, name string, slug string) (entity.Tag, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	if tag, ok := f.store.tags[name]; ok {
		return tag, nil
	}

	tag := entity.Tag{ID: int64(len(f.store.tags) + 1), Name: name, Slug: slug, CreatedAt: time.Now()}
	f.store.tags[name] = tag
	return tag, nil
}

func (f *fakeTags) ReplaceBlogTags(_ context.Context, blogID int64, tagIDs []int64) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	f.store.blogTags[blogID] = tagIDs
	return nil
}

func (f *fakeTags) GetTagsByBlogID(_ context.Context, blogID int64) ([]entity.Tag, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	var result []entity.Tag
	for _, tagID := range f.store.blogTags[blogID] {
		for _, tag := range f.store.tags {
			if tag.ID == tagID {
				result = append(result, tag)
			}
		}
	}
	return result, nil
}

type fakeS3 struct {
	mu      sync.Mutex
	uploads int
	deleted []string
}

func (f *fakeS3) UploadImage(file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads++
	return fmt.Sprintf("blogs/upload-%d.jpg", f.uploads), nil
}

func (f *fakeS3) PresignURL(key string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeS3) DeleteImage(baseKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, baseKey)
	return nil
}

type fakeRedis struct {
	mu       sync.Mutex
	sessions map[string]string
	viewed   map[string]bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		sessions: make(map[string]string),
		viewed:   make(map[string]bool),
	}
}

func (f *fakeRedis) SetSession(_ context.Context, sessionID string, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID] = userID
	return nil
}

func (f *fakeRedis) SessionExists(_ context.Context, sessionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[sessionID]
	return ok, nil
}

func (f *fakeRedis) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeRedis) MarkBlogViewed(_ context.Context, viewerKey string, blogID int64, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%s:%d", viewerKey, blogID)
	if f.viewed[key] {
		return false, nil
	}
	f.viewed[key] = true
	return true, nil
}

func newTestService(store *fakeStore) (IBlogsService, *fakeS3, *fakeRedis) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s3Client := &fakeS3{}
	redisServer := newFakeRedis()

	service := New(&fakeRepo{store: store}, logger, s3Client, redisServer, utils.New())
	return service, s3Client, redisServer
}

func testImage() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "cover.jpg", Size: 1024}
}

var (
	author = entity.UserLoginData{ID: "author@example.com", Username: "author", Role: entity.RoleUser}
	admin  = entity.UserLoginData{ID: "admin@example.com", Username: "admin", Role: entity.RoleAdmin}
	reader = entity.UserLoginData{ID: "reader@example.com", Username: "reader", Role: entity.RoleUser}
)

func longContent(seed string) string {
	return strings.Repeat(seed+" ", 30)
}

func TestCreateBlogPublish(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	result, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "My First Post About Testing",
		Content: longContent("interesting words"),
		Tags:    []string{"go", "testing"},
		Action:  "publish",
	}, testImage(), author)
	require.NoError(t, err)

	assert.Equal(t, "my-first-post-about-testing", result.Slug)
	assert.Equal(t, "Published", result.Status)
	assert.NotNil(t, result.PublishedAt)
	assert.Equal(t, author.ID, result.AuthorID)
	assert.True(t, strings.HasPrefix(result.FeaturedImage, "https://cdn.example.com/"))
	assert.NotEmpty(t, result.Excerpt)
	assert.LessOrEqual(t, len(result.Excerpt), utils.ExcerptMaxLength+3)
	assert.ElementsMatch(t, []string{"go", "testing"}, result.Tags)
}

func TestCreateBlogDraftByDefault(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	result, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Unfinished Thoughts",
		Content: longContent("draft words"),
	}, testImage(), author)
	require.NoError(t, err)

	assert.Equal(t, "Draft", result.Status)
	assert.Nil(t, result.PublishedAt)
}

func TestCreateBlogRequiresImage(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "No Cover Here",
		Content: longContent("words"),
	}, nil, author)

	assert.ErrorIs(t, err, blogs.ErrImageRequired)
}

func TestCreateBlogRejectsBadImage(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Bad Attachment",
		Content: longContent("words"),
	}, &multipart.FileHeader{Filename: "script.exe", Size: 10}, author)
	assert.ErrorIs(t, err, blogs.ErrInvalidFileType)

	_, err = service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Huge Attachment",
		Content: longContent("words"),
	}, &multipart.FileHeader{Filename: "huge.jpg", Size: 6 * 1024 * 1024}, author)
	assert.ErrorIs(t, err, blogs.ErrFileTooLarge)
}

func TestCreateBlogUnknownCategory(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	missing := int64(99)
	_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:      "Orphan Category Post",
		Content:    longContent("words"),
		CategoryID: &missing,
	}, testImage(), author)

	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)
}

func TestCreateBlogSlugCollision(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	first, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Same Title Twice",
		Content: longContent("first version"),
	}, testImage(), author)
	require.NoError(t, err)
	assert.Equal(t, "same-title-twice", first.Slug)

	second, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Same Title Twice",
		Content: longContent("second version"),
	}, testImage(), author)
	require.NoError(t, err)
	assert.Equal(t, "same-title-twice-1", second.Slug)

	third, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Same Title Twice",
		Content: longContent("third version"),
	}, testImage(), author)
	require.NoError(t, err)
	assert.Equal(t, "same-title-twice-2", third.Slug)
}

func TestUpdateBlogKeepsSlugWhenTitleUnchanged(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Stable Title",
		Content: longContent("original"),
	}, testImage(), author)
	require.NoError(t, err)

	updated, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Stable Title",
		Content: longContent("revised"),
	}, nil, author)
	require.NoError(t, err)

	assert.Equal(t, created.Slug, updated.Slug)
}

func TestUpdateBlogRegeneratesSlugOnTitleChange(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Original Title",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	updated, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Brand New Title",
		Content: longContent("content"),
	}, nil, author)
	require.NoError(t, err)

	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestUpdateBlogSlugExcludesOwnID(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Case Change Only",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	// The regenerated slug equals the current one; without self-exclusion
	// this would pick up a needless suffix.
	updated, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "CASE CHANGE ONLY",
		Content: longContent("content"),
	}, nil, author)
	require.NoError(t, err)

	assert.Equal(t, "case-change-only", updated.Slug)
}

func TestUpdateBlogPublishStampsOnce(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Draft To Publish",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)
	require.Nil(t, created.PublishedAt)

	published, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Draft To Publish",
		Content: longContent("content"),
		Action:  "publish",
	}, nil, author)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	firstStamp := *published.PublishedAt

	republished, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Draft To Publish",
		Content: longContent("edited content"),
		Action:  "publish",
	}, nil, author)
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)

	assert.True(t, firstStamp.Equal(*republished.PublishedAt))
}

func TestUpdateBlogDeniedForNonOwner(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Authors Only",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Hijacked",
		Content: longContent("content"),
	}, nil, reader)

	assert.ErrorIs(t, err, blogs.ErrBlogNotOwned)
}

func TestUpdateBlogAllowedForAdmin(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Moderated Post",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	updated, err := service.UpdateBlog(context.Background(), created.ID, blogs.UpdateBlogRequest{
		Title:   "Moderated Post Edited",
		Content: longContent("content"),
	}, nil, admin)
	require.NoError(t, err)

	assert.Equal(t, author.ID, updated.AuthorID)
}

func TestDeleteBlogSoftDeletes(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Short Lived",
		Content: longContent("content"),
		Action:  "publish",
	}, testImage(), author)
	require.NoError(t, err)

	require.NoError(t, service.DeleteBlog(context.Background(), created.ID, author))

	_, err = service.GetBlogDetailsByID(context.Background(), created.ID, author, "")
	assert.ErrorIs(t, err, blogs.ErrBlogNotFound)

	listed, err := service.ListPublishedBlogs(context.Background(), blogs.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, listed.Blogs)
}

func TestDeleteBlogDeniedForNonOwner(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Still Protected",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	err = service.DeleteBlog(context.Background(), created.ID, reader)
	assert.ErrorIs(t, err, blogs.ErrBlogNotOwned)
}

func TestGetBlogDetailsHidesDraftsFromStrangers(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Secret Draft",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.GetBlogDetailsByID(context.Background(), created.ID, reader, reader.ID)
	assert.ErrorIs(t, err, blogs.ErrBlogNotFound)

	_, err = service.GetBlogDetailsByID(context.Background(), created.ID, entity.UserLoginData{}, "10.0.0.1")
	assert.ErrorIs(t, err, blogs.ErrBlogNotFound)

	details, err := service.GetBlogDetailsByID(context.Background(), created.ID, author, author.ID)
	require.NoError(t, err)
	assert.True(t, details.CanEdit)
	assert.True(t, details.CanDelete)

	adminView, err := service.GetBlogDetailsByID(context.Background(), created.ID, admin, admin.ID)
	require.NoError(t, err)
	assert.True(t, adminView.CanEdit)
}

func TestViewCountDeduplication(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Popular Post",
		Content: longContent("content"),
		Action:  "publish",
	}, testImage(), author)
	require.NoError(t, err)

	first, err := service.GetBlogDetailsByID(context.Background(), created.ID, reader, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Blog.ViewCount)

	repeat, err := service.GetBlogDetailsByID(context.Background(), created.ID, reader, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repeat.Blog.ViewCount)

	other, err := service.GetBlogDetailsByID(context.Background(), created.ID, entity.UserLoginData{}, "10.0.0.9")
	require.NoError(t, err)
	assert.Equal(t, 2, other.Blog.ViewCount)
}

func TestRelatedBlogsSameCategoryThenBackfill(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	tech, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Technology"})
	require.NoError(t, err)
	food, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)

	techCategory := tech.ID
	foodCategory := food.ID

	mainBlog, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:      "Main Tech Post",
		Content:    longContent("content"),
		CategoryID: &techCategory,
		Action:     "publish",
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:      "Another Tech Post",
		Content:    longContent("content"),
		CategoryID: &techCategory,
		Action:     "publish",
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:      "A Food Post",
		Content:    longContent("content"),
		CategoryID: &foodCategory,
		Action:     "publish",
	}, testImage(), author)
	require.NoError(t, err)

	details, err := service.GetBlogDetailsByID(context.Background(), mainBlog.ID, reader, reader.ID)
	require.NoError(t, err)

	require.Len(t, details.RelatedBlogs, 2)
	for _, related := range details.RelatedBlogs {
		assert.NotEqual(t, mainBlog.ID, related.ID)
	}
	assert.Equal(t, "Another Tech Post", details.RelatedBlogs[0].Title)
}

func TestRelatedBlogsCapped(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	crowded, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Crowded"})
	require.NoError(t, err)
	category := crowded.ID

	var mainID int64
	for i := 0; i < 6; i++ {
		created, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
			Title:      fmt.Sprintf("Crowded Category Post %d", i),
			Content:    longContent("content"),
			CategoryID: &category,
			Action:     "publish",
		}, testImage(), author)
		require.NoError(t, err)
		if i == 0 {
			mainID = created.ID
		}
	}

	details, err := service.GetBlogDetailsByID(context.Background(), mainID, reader, reader.ID)
	require.NoError(t, err)

	assert.Len(t, details.RelatedBlogs, 3)
}

func TestListPublishedBlogsDegradesToEmptyOnError(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	store.listErr = fmt.Errorf("connection refused")

	result, err := service.ListPublishedBlogs(context.Background(), blogs.ListQuery{Page: 2, PageSize: 9})
	require.NoError(t, err)

	assert.Empty(t, result.Blogs)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 2, result.CurrentPage)
}

func TestListPublishedBlogsPaginationMeta(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	for i := 0; i < 4; i++ {
		_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
			Title:   fmt.Sprintf("Indexed Post Number %d", i),
			Content: longContent("content"),
			Action:  "publish",
		}, testImage(), author)
		require.NoError(t, err)
	}

	result, err := service.ListPublishedBlogs(context.Background(), blogs.ListQuery{PageSize: 3})
	require.NoError(t, err)

	assert.Len(t, result.Blogs, 3)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 3, result.PageSize)

	lastPage, err := service.ListPublishedBlogs(context.Background(), blogs.ListQuery{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, lastPage.Blogs, 1)
	assert.Equal(t, 4, lastPage.TotalCount)
}

func TestListPublishedBlogsPageBeyondLast(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	for i := 0; i < 4; i++ {
		_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
			Title:   fmt.Sprintf("Archived Post Number %d", i),
			Content: longContent("content"),
			Action:  "publish",
		}, testImage(), author)
		require.NoError(t, err)
	}

	result, err := service.ListPublishedBlogs(context.Background(), blogs.ListQuery{Page: 5, PageSize: 3})
	require.NoError(t, err)

	// The total reflects every matching row even when the page is empty.
	assert.Empty(t, result.Blogs)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 2, result.TotalPages)
	assert.Equal(t, 5, result.CurrentPage)
}

func TestGetMyBlogsFilterAndSort(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	_, err := service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Zebra Post Published",
		Content: longContent("content"),
		Action:  "publish",
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Apple Post Draft",
		Content: longContent("content"),
	}, testImage(), author)
	require.NoError(t, err)

	_, err = service.CreateBlog(context.Background(), blogs.CreateBlogRequest{
		Title:   "Someone Elses Post",
		Content: longContent("content"),
		Action:  "publish",
	}, testImage(), reader)
	require.NoError(t, err)

	all, err := service.GetMyBlogs(context.Background(), author, "", "")
	require.NoError(t, err)
	assert.Len(t, all.Blogs, 2)
	assert.Equal(t, "all", all.Filter)
	assert.Equal(t, "newest", all.SortBy)

	published, err := service.GetMyBlogs(context.Background(), author, "published", "")
	require.NoError(t, err)
	require.Len(t, published.Blogs, 1)
	assert.Equal(t, "Zebra Post Published", published.Blogs[0].Title)

	drafts, err := service.GetMyBlogs(context.Background(), author, "drafts", "")
	require.NoError(t, err)
	require.Len(t, drafts.Blogs, 1)
	assert.Equal(t, "Apple Post Draft", drafts.Blogs[0].Title)

	alphabetical, err := service.GetMyBlogs(context.Background(), author, "all", "a-z")
	require.NoError(t, err)
	require.Len(t, alphabetical.Blogs, 2)
	assert.Equal(t, "Apple Post Draft", alphabetical.Blogs[0].Title)

	oldest, err := service.GetMyBlogs(context.Background(), author, "all", "oldest")
	require.NoError(t, err)
	require.Len(t, oldest.Blogs, 2)
	assert.Equal(t, "Zebra Post Published", oldest.Blogs[0].Title)
}
