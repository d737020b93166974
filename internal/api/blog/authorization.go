package blogs

import "Inkwell/internal/entity"

// CanMutateBlog reports whether an actor may edit or delete a blog: the
// author always can, an admin always can, everyone else never can. Callers
// must check this before invoking any mutation.
func CanMutateBlog(blog entity.Blog, actorID string, actorRole string) bool {
	if actorID == "" {
		return false
	}
	return actorID == blog.AuthorID || actorRole == entity.RoleAdmin
}

// CanViewDraft gates draft visibility with the same author-or-admin rule.
func CanViewDraft(blog entity.Blog, actorID string, actorRole string) bool {
	return CanMutateBlog(blog, actorID, actorRole)
}
