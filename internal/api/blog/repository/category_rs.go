package blogRepository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	blogs "Inkwell/internal/api/blog"
	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
)

func (r *categoriesRepository) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var categories []entity.Category
	if err := r.q.SelectContext(ctx, &categories, r.q.Rebind(queryGetAllCategories)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllCategories execution err")
		return nil, err
	}

	return categories, nil
}

func (r *categoriesRepository) GetCategoryByID(ctx context.Context, id int64) (entity.Category, error) {
	return r.getCategory(ctx, queryGetCategoryByID, map[string]interface{}{"id": id})
}

func (r *categoriesRepository) GetCategoryBySlug(ctx context.Context, slug string) (entity.Category, error) {
	return r.getCategory(ctx, queryGetCategoryBySlug, map[string]interface{}{"slug": slug})
}

func (r *categoriesRepository) getCategory(ctx context.Context, baseQuery string, argsKV map[string]interface{}) (entity.Category, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(baseQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("getCategory named query preparation err")
		return entity.Category{}, err
	}

	query = r.q.Rebind(query)

	var category entity.Category
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Category{}, blogs.ErrCategoryNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("getCategory execution err")
		return entity.Category{}, err
	}

	return category, nil
}

func (r *categoriesRepository) CreateCategory(ctx context.Context, category entity.Category) (int64, error) {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"name":        category.Name,
		"description": category.Description,
		"slug":        category.Slug,
		"created_at":  category.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateCategory named query preparation err")
		return 0, err
	}

	query = r.q.Rebind(query)

	var id int64
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       category.Name,
			"error":      err.Error(),
		}).Error("Database error when creating category")
		return 0, err
	}

	return id, nil
}

func (r *categoriesRepository) DeleteCategory(ctx context.Context, id int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteCategory, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteCategory named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id":         id,
			"error":      err.Error(),
		}).Error("DeleteCategory execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return blogs.ErrCategoryNotFound
	}

	return nil
}
