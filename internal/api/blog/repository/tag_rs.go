package blogRepository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"Inkwell/internal/entity"
	contextPkg "Inkwell/pkg/context"
)

func (r *tagsRepository) UpsertTag(ctx context.Context, name string, slug string) (entity.Tag, error) {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"name":       name,
		"slug":       slug,
		"created_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertTag, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertTag named query preparation err")
		return entity.Tag{}, err
	}

	query = r.q.Rebind(query)

	var tag entity.Tag
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&tag); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"name":       name,
			"error":      err.Error(),
		}).Error("UpsertTag execution err")
		return entity.Tag{}, err
	}

	return tag, nil
}

func (r *tagsRepository) ReplaceBlogTags(ctx context.Context, blogID int64, tagIDs []int64) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteBlogTags, map[string]interface{}{"blog_id": blogID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ReplaceBlogTags named query preparation err")
		return err
	}

	if _, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("ReplaceBlogTags delete execution err")
		return err
	}

	for _, tagID := range tagIDs {
		query, args, err := sqlx.Named(queryInsertBlogTag, map[string]interface{}{
			"blog_id": blogID,
			"tag_id":  tagID,
		})
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("ReplaceBlogTags insert preparation err")
			return err
		}

		if _, err := r.q.ExecContext(ctx, r.q.Rebind(query), args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"blog_id":    blogID,
				"tag_id":     tagID,
				"error":      err.Error(),
			}).Error("ReplaceBlogTags insert execution err")
			return err
		}
	}

	return nil
}

func (r *tagsRepository) GetTagsByBlogID(ctx context.Context, blogID int64) ([]entity.Tag, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetTagsByBlogID, map[string]interface{}{"blog_id": blogID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTagsByBlogID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	var tags []entity.Tag
	if err := r.q.SelectContext(ctx, &tags, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"blog_id":    blogID,
			"error":      err.Error(),
		}).Error("GetTagsByBlogID execution err")
		return nil, err
	}

	return tags, nil
}
