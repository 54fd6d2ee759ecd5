package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsyncBack/internal/models"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func gigRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "seller_id", "subcategory_id", "published", "created_at"})
}

func TestGigRepository_ListPublished(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM gigs g WHERE g.published = TRUE ORDER BY g.created_at DESC, g.id DESC")).
		WillReturnRows(gigRows().
			AddRow(2, "Fresh icon", "", 7, 10, true, t0.Add(time.Hour)).
			AddRow(1, "Modern logo", "Vector logos", 7, 10, true, t0))

	gigs, err := (&GigRepository{DB: db}).ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, gigs, 2)
	assert.Equal(t, models.Gig{ID: 2, Title: "Fresh icon", SellerID: 7, SubcategoryID: 10, Published: true, CreatedAt: t0.Add(time.Hour)}, gigs[0])
	assert.Equal(t, "Vector logos", gigs[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGigRepository_SearchPublished(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE g.published = TRUE AND MATCH(g.title) AGAINST (? IN NATURAL LANGUAGE MODE)")).
		WithArgs("logo", "logo").
		WillReturnRows(gigRows())

	gigs, err := (&GigRepository{DB: db}).SearchPublished(context.Background(), "logo")
	require.NoError(t, err)
	assert.NotNil(t, gigs)
	assert.Empty(t, gigs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGigRepository_GetGigByID_NoRecord(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE g.id = ?")).WithArgs(9).WillReturnRows(gigRows())

	_, err := (&GigRepository{DB: db}).GetGigByID(context.Background(), 9)
	assert.ErrorIs(t, err, models.ErrNoRecord)
	assert.NoError(t, mock.ExpectationsWereMet())
}
