package review

import "errors"

const (
	MinRating = 1
	MaxRating = 5

	maxCommentLength = 2000
	maxImages        = 5
)

var (
	ErrInvalidProduct = errors.New("review product id is required")
	ErrEmptyUserName  = errors.New("review user name is required")
	ErrRatingRange    = errors.New("review rating must be between 1 and 5")
	ErrEmptyComment   = errors.New("review comment is empty")
	ErrCommentTooLong = errors.New("review comment is too long")
	ErrTooManyImages  = errors.New("too many review images")
	ErrReviewNotFound = errors.New("review not found")
)
