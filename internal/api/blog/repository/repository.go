package blogRepository

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Blogs:      &blogsRepository{q: sqlExecutor, log: r.log},
		Categories: &categoriesRepository{q: sqlExecutor, log: r.log},
		Tags:       &tagsRepository{q: sqlExecutor, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Client struct {
	Blogs interface {
		CreateBlog(ctx context.Context, blog entity.Blog) (int64, error)
		GetBlogByID(ctx context.Context, id int64) (entity.Blog, error)
		GetBlogBySlug(ctx context.Context, slug string) (entity.Blog, error)
		ListPublished(ctx context.Context, query blogs.ListQuery) ([]entity.Blog, int, error)
		ListRecentPublished(ctx context.Context, excludeIDs []int64, categoryID *int64, limit int) ([]entity.Blog, error)
		GetBlogsByAuthor(ctx context.Context, authorID string, status *entity.BlogStatus) ([]entity.Blog, error)
		UpdateBlog(ctx context.Context, blog entity.Blog) error
		SoftDeleteBlog(ctx context.Context, id int64, now time.Time) error
		IncrementViewCount(ctx context.Context, id int64) error
		SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	}

	Categories interface {
		GetAllCategories(ctx context.Context) ([]entity.Category, error)
		GetCategoryByID(ctx context.Context, id int64) (entity.Category, error)
		GetCategoryBySlug(ctx context.Context, slug string) (entity.Category, error)
		CreateCategory(ctx context.Context, category entity.Category) (int64, error)
		DeleteCategory(ctx context.Context, id int64) error
	}

	Tags interface {
		UpsertTag(ctx context.Context, name string, slug string) (entity.Tag, error)
		ReplaceBlogTags(ctx context.Context, blogID int64, tagIDs []int64) error
		GetTagsByBlogID(ctx context.Context, blogID int64) ([]entity.Tag, error)
	}

	Commit   func() error
	Rollback func() error
}

type blogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type categoriesRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type tagsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Slug collisions surface this way when two writers race past the
// application-level check; the service regenerates and retries once.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
