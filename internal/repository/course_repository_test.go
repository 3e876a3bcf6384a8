package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh-dev/tcms-api/internal/models"
)

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_code", "start_date", "end_date", "content", "created_at", "updated_at"}).
		AddRow(int64(1), "GO-2026-01", time.Now(), time.Now().Add(72*time.Hour), "Go backend", time.Now(), time.Now())
	mock.ExpectQuery(`SELECT c\.id, c\.course_code, .* FROM courses c WHERE 1=1 ORDER BY c\.start_date DESC LIMIT 20 OFFSET 0`).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM courses c WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM courses WHERE course_code = \$1 LIMIT 1`).
		WithArgs("GO-2026-01").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByCode(context.Background(), "GO-2026-01", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryExistsByCodeExcludesSelf(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM courses WHERE course_code = \$1 AND id <> \$2 LIMIT 1`).
		WithArgs("GO-2026-01", int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.ExistsByCode(context.Background(), "GO-2026-01", 9)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs("GO-2026-01", sqlmock.AnyArg(), sqlmock.AnyArg(), "Go backend", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	course := &models.Course{
		CourseCode: "GO-2026-01",
		StartDate:  time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC),
		Content:    "Go backend",
	}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.Equal(t, int64(3), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
