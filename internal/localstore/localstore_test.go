package localstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlite3")), mock
}

func TestStore_Init(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS local_storage").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_storage WHERE key = \\?").
			WithArgs("cart").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"lines":[]}`))

		v, err := s.Get(ctx, "cart")
		assert.NoError(t, err)
		assert.Equal(t, `{"lines":[]}`, v)
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_storage").
			WithArgs("cart").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := s.Get(ctx, "cart")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_storage").
			WillReturnError(errors.New("disk I/O error"))

		_, err := s.Get(ctx, "cart")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_SetAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("Set upserts", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO local_storage .* ON CONFLICT\\(key\\) DO UPDATE").
			WithArgs("adminUser", `{"id":"1"}`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, s.Set(ctx, "adminUser", `{"id":"1"}`))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Remove absent key", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM local_storage WHERE key = \\?").
			WithArgs("cart").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, s.Remove(ctx, "cart"))
	})

	t.Run("Set error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO local_storage").WillReturnError(errors.New("readonly"))

		assert.Error(t, s.Set(ctx, "cart", "{}"))
	})
}

func TestStore_JSON(t *testing.T) {
	ctx := context.Background()
	type blob struct {
		Name string `json:"name"`
	}

	t.Run("SetJSON encodes", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec("INSERT INTO local_storage").
			WithArgs("k", `{"name":"x"}`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, s.SetJSON(ctx, "k", blob{Name: "x"}))
	})

	t.Run("GetJSON decodes", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_storage").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"name":"x"}`))

		var b blob
		assert.NoError(t, s.GetJSON(ctx, "k", &b))
		assert.Equal(t, "x", b.Name)
	})

	t.Run("GetJSON corrupt blob", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery("SELECT value FROM local_storage").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{not json`))

		var b blob
		err := s.GetJSON(ctx, "k", &b)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
