package services

import (
	"fmt"
	"unicode/utf8"

	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
)

const (
	TitleMaxLength   = 200
	ContentMaxLength = 10000
	DescMaxLength    = 500
)

// ValidatePost checks a complete post body. Messages follow the request
// validator wording so the sanitizer maps both the same way.
func ValidatePost(post entities.Post) error {
	if err := checkRequired("title", post.Title, TitleMaxLength); err != nil {
		return err
	}
	if err := checkRequired("content", post.Content, ContentMaxLength); err != nil {
		return err
	}
	return checkMax("desc", post.Desc, DescMaxLength)
}

// ValidatePatch checks only the fields present in the patch.
func ValidatePatch(patch entities.PostPatch) error {
	if patch.Title != nil {
		if err := checkRequired("title", *patch.Title, TitleMaxLength); err != nil {
			return err
		}
	}
	if patch.Content != nil {
		if err := checkRequired("content", *patch.Content, ContentMaxLength); err != nil {
			return err
		}
	}
	if patch.Desc != nil {
		return checkMax("desc", *patch.Desc, DescMaxLength)
	}
	return nil
}

func checkRequired(field string, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%w: %s should not be empty", domainerrors.ErrInvalidPost, field)
	}
	return checkMax(field, value, max)
}

func checkMax(field string, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s must be shorter than or equal to %d characters", domainerrors.ErrInvalidPost, field, max)
	}
	return nil
}
