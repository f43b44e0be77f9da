package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `json:"id"`
	ProductID    int64     `json:"product_id"`
	UserName     string    `json:"user_name"`
	UserAvatar   *string   `json:"user_avatar,omitempty"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Images       []string  `json:"images"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Draft struct {
	ProductID  int64
	UserName   string
	UserAvatar *string
	Rating     int
	Comment    string
	Images     []string
}

// Summary is the rating breakdown shown above a product's reviews.
// Distribution[i] counts reviews with i+1 stars.
type Summary struct {
	Count        int
	Average      float64
	Distribution [5]int
}

func Summarize(reviews []Review) Summary {
	var (
		s   Summary
		sum int
	)
	for _, r := range reviews {
		if r.Rating < MinRating || r.Rating > MaxRating {
			continue
		}
		s.Count++
		sum += r.Rating
		s.Distribution[r.Rating-1]++
	}
	if s.Count > 0 {
		s.Average = float64(sum) / float64(s.Count)
	}
	return s
}
