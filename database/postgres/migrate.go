package postgres

import (
	"github.com/jmoiron/sqlx"
)

// The slug index is partial: uniqueness only holds among non-deleted blogs,
// so a soft-deleted blog frees its slug for reuse. The index is also the
// final authority against two concurrent creations racing past the
// application-level uniqueness check.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(255) PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'User',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		description VARCHAR(255) NOT NULL DEFAULT '',
		slug VARCHAR(60) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS blogs (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(100) NOT NULL,
		content TEXT NOT NULL,
		excerpt VARCHAR(250) NOT NULL DEFAULT '',
		featured_image VARCHAR(255) NOT NULL,
		slug VARCHAR(150) NOT NULL,
		author_id VARCHAR(255) NOT NULL REFERENCES users (id),
		category_id BIGINT REFERENCES categories (id) ON DELETE SET NULL,
		status SMALLINT NOT NULL DEFAULT 0,
		view_count INTEGER NOT NULL DEFAULT 0 CHECK (view_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		published_at TIMESTAMPTZ,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_blogs_slug_active
		ON blogs (slug) WHERE is_deleted = FALSE`,

	`CREATE INDEX IF NOT EXISTS idx_blogs_published
		ON blogs (status, is_deleted, published_at DESC)`,

	`CREATE INDEX IF NOT EXISTS idx_blogs_author
		ON blogs (author_id, is_deleted)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(30) NOT NULL UNIQUE,
		slug VARCHAR(40) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS blog_tags (
		blog_id BIGINT NOT NULL REFERENCES blogs (id) ON DELETE CASCADE,
		tag_id BIGINT NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
		PRIMARY KEY (blog_id, tag_id)
	)`,
}

func Migrate(db *sqlx.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}
