package entities

import "time"

// Post is a blog entry. AuthorID is set at creation and never reassigned.
type Post struct {
	PostID         string
	Title          string
	Content        string
	Desc           string
	Tags           []string
	AuthorID       string
	AuthorUsername string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
	Desc    *string
	Tags    *[]string
}

func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Desc == nil && p.Tags == nil
}

// Apply returns a copy of the post with the patch applied.
func (p Post) Apply(patch PostPatch, now time.Time) Post {
	next := p
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Content != nil {
		next.Content = *patch.Content
	}
	if patch.Desc != nil {
		next.Desc = *patch.Desc
	}
	if patch.Tags != nil {
		next.Tags = append([]string(nil), (*patch.Tags)...)
	}
	next.UpdatedAt = now
	return next
}
