package blogsService

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blogs "Inkwell/internal/api/blog"
)

func TestCreateCategory(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{
		Name:        "Machine Learning",
		Description: "Posts about ML",
	})
	require.NoError(t, err)

	assert.Equal(t, "Machine Learning", created.Name)
	assert.Equal(t, "machine-learning", created.Slug)
	assert.NotZero(t, created.ID)
}

func TestCreateCategoryDuplicate(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	_, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Travel"})
	require.NoError(t, err)

	_, err = service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Travel"})
	assert.ErrorIs(t, err, blogs.ErrCategoryAlreadyExists)

	// Same slug even when the casing differs.
	_, err = service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "TRAVEL"})
	assert.ErrorIs(t, err, blogs.ErrCategoryAlreadyExists)
}

func TestGetAllCategoriesSorted(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	for _, name := range []string{"Travel", "Business", "Food"} {
		_, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	result, err := service.GetAllCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Categories, 3)

	assert.Equal(t, "Business", result.Categories[0].Name)
	assert.Equal(t, "Food", result.Categories[1].Name)
	assert.Equal(t, "Travel", result.Categories[2].Name)
}

func TestGetCategoryByIDAndSlug(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Deep Dives"})
	require.NoError(t, err)

	byID, err := service.GetCategoryByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep Dives", byID.Name)

	bySlug, err := service.GetCategoryBySlug(context.Background(), "deep-dives")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = service.GetCategoryByID(context.Background(), created.ID+1)
	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)

	_, err = service.GetCategoryBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)
}

func TestDeleteCategory(t *testing.T) {
	store := newFakeStore()
	service, _, _ := newTestService(store)

	created, err := service.CreateCategory(context.Background(), blogs.CreateCategoryRequest{Name: "Ephemeral"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(context.Background(), created.ID))

	err = service.DeleteCategory(context.Background(), created.ID)
	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)
}
