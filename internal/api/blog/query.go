package blogs

import (
	"strings"
	"time"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

// ListQuery carries the filter, sort, and pagination inputs for every
// published-blog read. The public index and the filtered search share it, so
// both apply identical filtering.
type ListQuery struct {
	Search     string
	CategoryID *int64
	AuthorID   string
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	Page       int
	PageSize   int
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		q.PageSize = DefaultPageSize
	}
	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	q.Search = strings.TrimSpace(q.Search)
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// EndBound converts the end date into an exclusive upper bound covering the
// whole end day.
func (q ListQuery) EndBound() *time.Time {
	if q.EndDate == nil {
		return nil
	}
	bound := q.EndDate.AddDate(0, 0, 1)
	return &bound
}

// OrderBy maps the sort vocabulary onto SQL order clauses. The id tie-break
// keeps pagination stable when the primary key has duplicates.
func (q ListQuery) OrderBy() string {
	switch q.SortBy {
	case "oldest":
		return "b.published_at ASC, b.id ASC"
	case "views", "mostviewed":
		return "b.view_count DESC, b.id ASC"
	case "a-z":
		return "b.title ASC, b.id ASC"
	case "z-a":
		return "b.title DESC, b.id ASC"
	default:
		return "b.published_at DESC, b.id ASC"
	}
}

func TotalPages(totalCount, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (totalCount + pageSize - 1) / pageSize
}
