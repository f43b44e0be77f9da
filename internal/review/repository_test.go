package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopfront/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewCols = []string{"id", "product_id", "user_name", "user_avatar", "rating", "comment", "images", "helpful_count", "created_at"}

func TestRepository_ListByProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(reviewCols).
			AddRow(uuid.NewString(), 1, "Sarah", "https://a/1.png", 5, "Great", "{https://img/1.jpg,https://img/2.jpg}", 3, time.Now()).
			AddRow(uuid.NewString(), 1, "Tom", nil, 4, "Good", "{}", 0, time.Now())

		mock.ExpectQuery(`(?s)FROM reviews WHERE product_id = \$1 ORDER BY created_at DESC`).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		reviews, err := repo.ListByProduct(ctx, 1)
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, reviews[0].Images)
		require.NotNil(t, reviews[0].UserAvatar)
		assert.Nil(t, reviews[1].UserAvatar)
		assert.Equal(t, []string{}, reviews[1].Images)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("FROM reviews").WillReturnError(errors.New("db down"))

		_, err := repo.ListByProduct(ctx, 1)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(sqlmock.AnyArg(), int64(7), "Sarah", "https://a/1.png", 5, "Lovely", "{}").
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow(id.String(), 7, "Sarah", "https://a/1.png", 5, "Lovely", "{}", 0, time.Now()))

	rv, err := repo.Create(context.Background(), Draft{
		ProductID:  7,
		UserName:   "Sarah",
		UserAvatar: utils.StrPtr("https://a/1.png"),
		Rating:     5,
		Comment:    "Lovely",
	})
	require.NoError(t, err)
	assert.Equal(t, id, rv.ID)
	assert.Equal(t, 0, rv.HelpfulCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkHelpful(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectQuery("UPDATE reviews SET helpful_count = helpful_count \\+ 1").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"helpful_count"}).AddRow(4))
	n, err := repo.MarkHelpful(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mock.ExpectQuery("UPDATE reviews").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"helpful_count"}))
	_, err = repo.MarkHelpful(context.Background(), id)
	assert.ErrorIs(t, err, ErrReviewNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
