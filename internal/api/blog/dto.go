package blogs

import "time"

type CreateBlogRequest struct {
	Title      string   `json:"title" validate:"required,min=5,max=100"`
	Content    string   `json:"content" validate:"required,min=50,max=10000"`
	CategoryID *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1,max=30"`
	Action     string   `json:"action" validate:"omitempty,oneof=publish draft"`
}

type UpdateBlogRequest struct {
	Title      string   `json:"title" validate:"required,min=5,max=100"`
	Content    string   `json:"content" validate:"required,min=50,max=10000"`
	CategoryID *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Tags       []string `json:"tags" validate:"omitempty,dive,min=1,max=30"`
	Status     string   `json:"status" validate:"omitempty,oneof=Draft Published"`
	Action     string   `json:"action" validate:"omitempty,oneof=publish draft"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type BlogResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content,omitempty"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image"`
	Slug          string     `json:"slug"`
	AuthorID      string     `json:"author_id"`
	AuthorName    string     `json:"author_name"`
	CategoryID    *int64     `json:"category_id"`
	CategoryName  string     `json:"category_name,omitempty"`
	Status        string     `json:"status"`
	ViewCount     int        `json:"view_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
	Tags          []string   `json:"tags,omitempty"`
}

type BlogListResponse struct {
	Blogs       []BlogResponse `json:"blogs"`
	TotalCount  int            `json:"total_count"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
}

type BlogDetailsResponse struct {
	Blog         BlogResponse   `json:"blog"`
	RelatedBlogs []BlogResponse `json:"related_blogs"`
	CanEdit      bool           `json:"can_edit"`
	CanDelete    bool           `json:"can_delete"`
}

type MyBlogsResponse struct {
	Blogs  []BlogResponse `json:"blogs"`
	Filter string         `json:"filter"`
	SortBy string         `json:"sort_by"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
