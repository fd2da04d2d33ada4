package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/models"
)

func TestFacultyRepositoryListNormalizesRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "department", "specializations", "created_at"}).
		AddRow("f1", "Ada", "ada@uni.test", "Computer Science", `{AI,"Machine Learning"}`, time.Now()).
		AddRow("f2", "Alan", "alan@uni.test", nil, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, department, specializations, created_at FROM faculty ORDER BY created_at ASC, id ASC")).
		WillReturnRows(rows)

	faculty, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, faculty, 2)

	assert.Equal(t, []string{"AI", "Machine Learning"}, faculty[0].Specializations)
	assert.Equal(t, "", faculty[1].Department)
	assert.NotNil(t, faculty[1].Specializations)
	assert.Empty(t, faculty[1].Specializations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM faculty WHERE id = $1")).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacultyRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFacultyRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO faculty")).
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@uni.test", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	member := &models.Faculty{Name: "Ada", Email: "ada@uni.test"}
	require.NoError(t, repo.Create(context.Background(), member))

	assert.NotEmpty(t, member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
