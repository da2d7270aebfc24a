package httptransport

import "time"

type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=200" example:"My First Blog Post"`
	Content string   `json:"content" validate:"required,min=1,max=10000" example:"This is the content of my first blog post..."`
	Desc    string   `json:"desc" validate:"omitempty,max=500" example:"A brief description of my blog post"`
	Tags    []string `json:"tags" example:"technology,programming"`
}

// UpdatePostRequest carries a partial update; absent fields stay unchanged.
type UpdatePostRequest struct {
	Title   *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string   `json:"content" validate:"omitnil,min=1,max=10000"`
	Desc    *string   `json:"desc" validate:"omitnil,max=500"`
	Tags    *[]string `json:"tags"`
}

type AuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username" example:"john_doe"`
}

type PostResponse struct {
	ID        string         `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Desc      string         `json:"desc"`
	Tags      []string       `json:"tags"`
	AuthorID  string         `json:"authorId"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Post deleted successfully"`
}
