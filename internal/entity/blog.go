package entity

import "time"

type BlogStatus uint8

const (
	BlogStatusDraft     BlogStatus = 0
	BlogStatusPublished BlogStatus = 1
)

var blogStatusNames = map[BlogStatus]string{
	BlogStatusDraft:     "Draft",
	BlogStatusPublished: "Published",
}

func (s BlogStatus) String() string {
	return blogStatusNames[s]
}

func (s BlogStatus) Value() uint8 {
	return uint8(s)
}

func ParseBlogStatus(name string) (BlogStatus, bool) {
	for status, statusName := range blogStatusNames {
		if statusName == name {
			return status, true
		}
	}
	return BlogStatusDraft, false
}

type Blog struct {
	ID            int64      `db:"id"`
	Title         string     `db:"title"`
	Content       string     `db:"content"`
	Excerpt       string     `db:"excerpt"`
	FeaturedImage string     `db:"featured_image"`
	Slug          string     `db:"slug"`
	AuthorID      string     `db:"author_id"`
	AuthorName    string     `db:"author_name"`
	CategoryID    *int64     `db:"category_id"`
	CategoryName  string     `db:"category_name"`
	Status        BlogStatus `db:"status"`
	ViewCount     int        `db:"view_count"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	PublishedAt   *time.Time `db:"published_at"`
	IsDeleted     bool       `db:"is_deleted"`
}

type Category struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Slug        string    `db:"slug"`
	CreatedAt   time.Time `db:"created_at"`
}

type Tag struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
}
