package blogRepository

const (
	querySelectBlogColumns = `
		SELECT
			b.id,
			b.title,
			b.content,
			b.excerpt,
			b.featured_image,
			b.slug,
			b.author_id,
			u.username AS author_name,
			b.category_id,
			COALESCE(c.name, '') AS category_name,
			b.status,
			b.view_count,
			b.created_at,
			b.updated_at,
			b.published_at,
			b.is_deleted
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
	`

	queryCountBlogs = `
		SELECT COUNT(*)
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		LEFT JOIN categories c ON c.id = b.category_id
	`

	queryCreateBlog = `
		INSERT INTO blogs (
			title,
			content,
			excerpt,
			featured_image,
			slug,
			author_id,
			category_id,
			status,
			view_count,
			created_at,
			updated_at,
			published_at,
			is_deleted
		) VALUES (
			:title,
			:content,
			:excerpt,
			:featured_image,
			:slug,
			:author_id,
			:category_id,
			:status,
			0,
			:created_at,
			:updated_at,
			:published_at,
			FALSE
		)
		RETURNING id
	`

	queryUpdateBlog = `
		UPDATE blogs
		SET
			title = :title,
			content = :content,
			excerpt = :excerpt,
			featured_image = :featured_image,
			slug = :slug,
			category_id = :category_id,
			status = :status,
			updated_at = :updated_at,
			published_at = :published_at
		WHERE id = :id AND is_deleted = FALSE
	`

	querySoftDeleteBlog = `
		UPDATE blogs
		SET is_deleted = TRUE, updated_at = :updated_at
		WHERE id = :id AND is_deleted = FALSE
	`

	queryIncrementViewCount = `
		UPDATE blogs
		SET view_count = view_count + 1
		WHERE id = :id AND is_deleted = FALSE
	`

	querySlugExists = `
		SELECT COUNT(*)
		FROM blogs
		WHERE slug = :slug AND is_deleted = FALSE AND id <> :exclude_id
	`

	queryGetAllCategories = `
		SELECT
			id,
			name,
			description,
			slug,
			created_at
		FROM categories
		ORDER BY name ASC
	`

	queryGetCategoryByID = `
		SELECT
			id,
			name,
			description,
			slug,
			created_at
		FROM categories
		WHERE id = :id
	`

	queryGetCategoryBySlug = `
		SELECT
			id,
			name,
			description,
			slug,
			created_at
		FROM categories
		WHERE slug = :slug
	`

	queryCreateCategory = `
		INSERT INTO categories (
			name,
			description,
			slug,
			created_at
		) VALUES (
			:name,
			:description,
			:slug,
			:created_at
		)
		RETURNING id
	`

	queryDeleteCategory = `
		DELETE FROM categories
		WHERE id = :id
	`

	queryUpsertTag = `
		INSERT INTO tags (name, slug, created_at)
		VALUES (:name, :slug, :created_at)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, slug, created_at
	`

	queryDeleteBlogTags = `
		DELETE FROM blog_tags
		WHERE blog_id = :blog_id
	`

	queryInsertBlogTag = `
		INSERT INTO blog_tags (blog_id, tag_id)
		VALUES (:blog_id, :tag_id)
		ON CONFLICT DO NOTHING
	`

	queryGetTagsByBlogID = `
		SELECT
			t.id,
			t.name,
			t.slug,
			t.created_at
		FROM tags t
		JOIN blog_tags bt ON bt.tag_id = t.id
		WHERE bt.blog_id = :blog_id
		ORDER BY t.name ASC
	`
)
