package queries

import (
	"context"

	"scribe/contexts/publishing/post-service/domain/entities"
	"scribe/contexts/publishing/post-service/ports"
)

type ListPostsUseCase struct {
	Posts ports.PostRepository
}

// Execute returns every post, newest first. Reads are public.
func (u ListPostsUseCase) Execute(ctx context.Context) ([]entities.Post, error) {
	return u.Posts.ListPosts(ctx)
}
