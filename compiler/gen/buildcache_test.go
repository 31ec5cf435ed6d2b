package gen

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCacheUnchanged(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := NewBuildCache(db)

	t.Run("hit", func(t *testing.T) {
		mock.ExpectQuery(`SELECT hash FROM files WHERE path = \?`).
			WithArgs("src/index.ts").
			WillReturnRows(sqlmock.NewRows([]string{"hash"}).AddRow(hashContent("content")))
		assert.True(t, c.Unchanged("src/index.ts", "content"))
	})

	t.Run("stale hash", func(t *testing.T) {
		mock.ExpectQuery(`SELECT hash FROM files WHERE path = \?`).
			WithArgs("src/index.ts").
			WillReturnRows(sqlmock.NewRows([]string{"hash"}).AddRow(hashContent("old content")))
		assert.False(t, c.Unchanged("src/index.ts", "content"))
	})

	t.Run("unknown path", func(t *testing.T) {
		mock.ExpectQuery(`SELECT hash FROM files WHERE path = \?`).
			WithArgs("src/new.ts").
			WillReturnRows(sqlmock.NewRows([]string{"hash"}))
		assert.False(t, c.Unchanged("src/new.ts", "content"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildCacheRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := NewBuildCache(db)

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO files`).
			WithArgs("src/index.ts", hashContent("content")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, c.Record("src/index.ts", "content"))
	})

	t.Run("exec failure wraps path", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO files`).
			WithArgs("src/bad.ts", hashContent("x")).
			WillReturnError(errors.New("disk full"))
		err := c.Record("src/bad.ts", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src/bad.ts")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildCacheForget(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	c := NewBuildCache(db)

	mock.ExpectExec(`DELETE FROM files WHERE path = \?`).
		WithArgs("src/index.ts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, c.Forget("src/index.ts"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHashContent(t *testing.T) {
	assert.Equal(t, hashContent("a"), hashContent("a"))
	assert.NotEqual(t, hashContent("a"), hashContent("b"))
	assert.Len(t, hashContent(""), 64)
}
