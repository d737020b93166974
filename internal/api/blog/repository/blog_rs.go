package blogRepository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
)

type BlogDB struct {
	ID            int64          `db:"id"`
	Title         sql.NullString `db:"title"`
	Content       sql.NullString `db:"content"`
	Excerpt       sql.NullString `db:"excerpt"`
	FeaturedImage sql.NullString `db:"featured_image"`
	Slug          sql.NullString `db:"slug"`
	AuthorID      sql.NullString `db:"author_id"`
	AuthorName    sql.NullString `db:"author_name"`
	CategoryID    sql.NullInt64  `db:"category_id"`
	CategoryName  sql.NullString `db:"category_name"`
	Status        uint8          `db:"status"`
	ViewCount     int            `db:"view_count"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	PublishedAt   sql.NullTime   `db:"published_at"`
	IsDeleted     bool           `db:"is_deleted"`
}

func (r *blogsRepository) CreateBlog(ctx context.Context, blog entity.Blog) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"title":          blog.Title,
		"content":        blog.Content,
		"excerpt":        blog.Excerpt,
		"featured_image": blog.FeaturedImage,
		"slug":           blog.Slug,
		"author_id":      blog.AuthorID,
		"category_id":    nullInt64(blog.CategoryID),
		"status":         blog.Status.Value(),
		"created_at":     blog.CreatedAt,
		"updated_at":     blog.UpdatedAt,
		"published_at":   nullTime(blog.PublishedAt),
	}

	query, args, err := sqlx.Named(queryCreateBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBlog")
		return 0, err
	}
	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       blog.Slug,
			"error":      err.Error(),
		}).Error("Database error when creating blog")
		return 0, err
	}

	return id, nil
}

func (r *blogsRepository) GetBlogByID(ctx context.Context, id int64) (entity.Blog, error) {
	return r.getBlog(ctx, "b.id = :id AND b.is_deleted = FALSE", map[string]interface{}{"id": id})
}

func (r *blogsRepository) GetBlogBySlug(ctx context.Context, slug string) (entity.Blog, error) {
	return r.getBlog(ctx, "b.slug = :slug AND b.is_deleted = FALSE", map[string]interface{}{"slug": slug})
}

func (r *blogsRepository) getBlog(ctx context.Context, condition string, argsKV map[string]interface{}) (entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var blog BlogDB

	query, args, err := sqlx.Named(querySelectBlogColumns+" WHERE "+condition, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("getBlog named query preparation err")
		return entity.Blog{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&blog); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Blog{}, blogs.ErrBlogNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("getBlog execution err")
		return entity.Blog{}, err
	}

	return r.makeBlog(blog), nil
}

// ListPublished builds one WHERE clause shared by the count and the page
// select, so the returned total always matches the filter.
func (r *blogsRepository) ListPublished(ctx context.Context, listQuery blogs.ListQuery) ([]entity.Blog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	conditions := []string{"b.status = :status", "b.is_deleted = FALSE"}
	argsKV := map[string]interface{}{
		"status": entity.BlogStatusPublished.Value(),
	}

	if listQuery.Search != "" {
		conditions = append(conditions,
			"(b.title ILIKE :search OR b.content ILIKE :search OR u.username ILIKE :search)")
		argsKV["search"] = "%" + listQuery.Search + "%"
	}
	if listQuery.CategoryID != nil {
		conditions = append(conditions, "b.category_id = :category_id")
		argsKV["category_id"] = *listQuery.CategoryID
	}
	if listQuery.AuthorID != "" {
		conditions = append(conditions, "b.author_id = :author_id")
		argsKV["author_id"] = listQuery.AuthorID
	}
	if listQuery.StartDate != nil {
		conditions = append(conditions, "b.published_at >= :start_date")
		argsKV["start_date"] = *listQuery.StartDate
	}
	if endBound := listQuery.EndBound(); endBound != nil {
		conditions = append(conditions, "b.published_at < :end_date")
		argsKV["end_date"] = *endBound
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery, countArgs, err := sqlx.Named(queryCountBlogs+whereClause, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPublished count query preparation err")
		return nil, 0, err
	}

	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPublished count execution err")
		return nil, 0, err
	}

	argsKV["limit"] = listQuery.PageSize
	argsKV["offset"] = listQuery.Offset()

	pageQuery := querySelectBlogColumns + whereClause +
		" ORDER BY " + listQuery.OrderBy() + " LIMIT :limit OFFSET :offset"

	query, args, err := sqlx.Named(pageQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPublished named query preparation err")
		return nil, 0, err
	}

	query = r.q.Rebind(query)

	var rows []BlogDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListPublished execution err")
		return nil, 0, err
	}

	result := make([]entity.Blog, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBlog(row))
	}

	return result, total, nil
}

func (r *blogsRepository) ListRecentPublished(ctx context.Context, excludeIDs []int64, categoryID *int64, limit int) ([]entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(excludeIDs) == 0 {
		excludeIDs = []int64{0}
	}

	query := querySelectBlogColumns +
		" WHERE b.status = ? AND b.is_deleted = FALSE AND b.id NOT IN (?)"
	args := []interface{}{entity.BlogStatusPublished.Value(), excludeIDs}

	if categoryID != nil {
		query += " AND b.category_id = ?"
		args = append(args, *categoryID)
	}

	query += " ORDER BY b.published_at DESC, b.id ASC LIMIT ?"
	args = append(args, limit)

	query, expandedArgs, err := sqlx.In(query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecentPublished query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []BlogDB
	if err := r.q.SelectContext(ctx, &rows, query, expandedArgs...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListRecentPublished execution err")
		return nil, err
	}

	result := make([]entity.Blog, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBlog(row))
	}

	return result, nil
}

func (r *blogsRepository) GetBlogsByAuthor(ctx context.Context, authorID string, status *entity.BlogStatus) ([]entity.Blog, error) {
	requestID := contextPkg.GetRequestID(ctx)

	condition := "b.author_id = :author_id AND b.is_deleted = FALSE"
	argsKV := map[string]interface{}{"author_id": authorID}

	if status != nil {
		condition += " AND b.status = :status"
		argsKV["status"] = status.Value()
	}

	query, args, err := sqlx.Named(
		querySelectBlogColumns+" WHERE "+condition+" ORDER BY b.updated_at DESC, b.id ASC", argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlogsByAuthor named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var rows []BlogDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBlogsByAuthor execution err")
		return nil, err
	}

	result := make([]entity.Blog, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBlog(row))
	}

	return result, nil
}

func (r *blogsRepository) UpdateBlog(ctx context.Context, blog entity.Blog) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":             blog.ID,
		"title":          blog.Title,
		"content":        blog.Content,
		"excerpt":        blog.Excerpt,
		"featured_image": blog.FeaturedImage,
		"slug":           blog.Slug,
		"category_id":    nullInt64(blog.CategoryID),
		"status":         blog.Status.Value(),
		"updated_at":     blog.UpdatedAt,
		"published_at":   nullTime(blog.PublishedAt),
	}

	query, args, err := sqlx.Named(queryUpdateBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBlog named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         blog.ID,
			"error":      err.Error(),
		}).Error("UpdateBlog execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         blog.ID,
		}).Warn("UpdateBlog no rows affected")
		return blogs.ErrBlogNotFound
	}

	return nil
}

func (r *blogsRepository) SoftDeleteBlog(ctx context.Context, id int64, now time.Time) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         id,
		"updated_at": now,
	}

	query, args, err := sqlx.Named(querySoftDeleteBlog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SoftDeleteBlog named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("SoftDeleteBlog execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return blogs.ErrBlogNotFound
	}

	return nil
}

// IncrementViewCount bumps the counter inside the database so concurrent
// viewers never lose updates. A missing blog is a no-op, not an error.
func (r *blogsRepository) IncrementViewCount(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryIncrementViewCount, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IncrementViewCount named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("IncrementViewCount execution err")
		return err
	}

	return nil
}

func (r *blogsRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"slug":       slug,
		"exclude_id": excludeID,
	}

	query, args, err := sqlx.Named(querySlugExists, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SlugExists named query preparation err")
		return false, err
	}

	query = r.q.Rebind(query)

	var count int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slug":       slug,
			"error":      err.Error(),
		}).Error("SlugExists execution err")
		return false, err
	}

	return count > 0, nil
}

func (r *blogsRepository) makeBlog(blog BlogDB) entity.Blog {
	result := entity.Blog{
		ID:            blog.ID,
		Title:         blog.Title.String,
		Content:       blog.Content.String,
		Excerpt:       blog.Excerpt.String,
		FeaturedImage: blog.FeaturedImage.String,
		Slug:          blog.Slug.String,
		AuthorID:      blog.AuthorID.String,
		AuthorName:    blog.AuthorName.String,
		CategoryName:  blog.CategoryName.String,
		Status:        entity.BlogStatus(blog.Status),
		ViewCount:     blog.ViewCount,
		CreatedAt:     blog.CreatedAt,
		UpdatedAt:     blog.UpdatedAt,
		IsDeleted:     blog.IsDeleted,
	}

	if blog.CategoryID.Valid {
		categoryID := blog.CategoryID.Int64
		result.CategoryID = &categoryID
	}
	if blog.PublishedAt.Valid {
		publishedAt := blog.PublishedAt.Time
		result.PublishedAt = &publishedAt
	}

	return result
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
