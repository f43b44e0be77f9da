package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListByProduct(ctx context.Context, productID int64) ([]Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Review), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, draft Draft) (Review, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(Review), args.Error(1)
}

func (m *MockRepository) MarkHelpful(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestService_FetchReviewsByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Error downgrades to empty", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ListByProduct", ctx, int64(1)).Return(nil, errors.New("db down"))

		res := NewService(repo).FetchReviewsByProduct(ctx, 1)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("Invalid product id", func(t *testing.T) {
		repo := new(MockRepository)
		assert.Empty(t, NewService(repo).FetchReviewsByProduct(ctx, 0))
		repo.AssertNotCalled(t, "ListByProduct", mock.Anything, mock.Anything)
	})
}

func TestService_CreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("Sanitizes markup", func(t *testing.T) {
		repo := new(MockRepository)
		expected := Draft{ProductID: 1, UserName: "Sarah", Rating: 5, Comment: "Fast & great shipping", Images: []string{"a.jpg"}}
		repo.On("Create", ctx, expected).Return(Review{ID: uuid.New(), Comment: expected.Comment}, nil)

		rv := NewService(repo).CreateReview(ctx, Draft{
			ProductID: 1,
			UserName:  " <b>Sarah</b> ",
			Rating:    5,
			Comment:   `<script>alert(1)</script>Fast & <a href="x">great</a> shipping`,
			Images:    []string{" a.jpg ", ""},
		})
		require.NotNil(t, rv)
		repo.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		draft Draft
	}{
		{name: "rating too low", draft: Draft{ProductID: 1, UserName: "a", Rating: 0, Comment: "x"}},
		{name: "rating too high", draft: Draft{ProductID: 1, UserName: "a", Rating: 6, Comment: "x"}},
		{name: "no product", draft: Draft{UserName: "a", Rating: 3, Comment: "x"}},
		{name: "markup only comment", draft: Draft{ProductID: 1, UserName: "a", Rating: 3, Comment: "<img src=x>"}},
		{name: "blank name", draft: Draft{ProductID: 1, UserName: "  ", Rating: 3, Comment: "x"}},
		{name: "too long", draft: Draft{ProductID: 1, UserName: "a", Rating: 3, Comment: strings.Repeat("x", 2001)}},
		{name: "too many images", draft: Draft{ProductID: 1, UserName: "a", Rating: 3, Comment: "x", Images: []string{"1", "2", "3", "4", "5", "6"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			assert.Nil(t, NewService(repo).CreateReview(ctx, tt.draft))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("Repository error", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Create", ctx, mock.Anything).Return(Review{}, errors.New("db down"))
		assert.Nil(t, NewService(repo).CreateReview(ctx, Draft{ProductID: 1, UserName: "a", Rating: 3, Comment: "ok"}))
	})
}

func TestService_MarkHelpful(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("MarkHelpful", ctx, id).Return(0, ErrReviewNotFound)

	assert.False(t, NewService(repo).MarkHelpful(ctx, id))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Review{{Rating: 5}, {Rating: 4}, {Rating: 4}, {Rating: 9}})
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.333, s.Average, 0.001)
	assert.Equal(t, [5]int{0, 0, 0, 2, 1}, s.Distribution)

	assert.Equal(t, Summary{}, Summarize(nil))
}
