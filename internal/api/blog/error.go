package blogs

import "Inkwell/pkg/response"

var (
	ErrBlogNotFound          = response.NewError(404, "blog not found")
	ErrCategoryNotFound      = response.NewError(404, "blog category not found")
	ErrCategoryAlreadyExists = response.NewError(409, "blog category already exists")
	ErrCreateBlog            = response.NewError(500, "failed to create blog")
	ErrUpdateBlog            = response.NewError(500, "failed to update blog")
	ErrDeleteBlog            = response.NewError(500, "failed to delete blog")
	ErrCreateCategory        = response.NewError(500, "failed to create blog category")
	ErrDeleteCategory        = response.NewError(500, "failed to delete blog category")
	ErrInvalidFileType       = response.NewError(400, "invalid file type")
	ErrFileTooLarge          = response.NewError(400, "file too large")
	ErrImageRequired         = response.NewError(400, "featured image is required")
	ErrFailedToUpload        = response.NewError(500, "failed to upload file")
	ErrBlogNotOwned          = response.NewError(403, "blog does not belong to user")
)
