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

	"github.com/Dhruvina99/sevarthi-api/internal/models"
)

var attendanceRowColumns = []string{"id", "member_id", "date", "status", "story_id", "role_id", "character_ids", "time_in", "time_out", "reason", "replaced_member_id", "event_type", "created_at", "updated_at"}

func TestAttendanceRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	now := time.Now()
	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(attendanceRowColumns).
		AddRow("a1", "m1", day, "present", "s1", "r1", "{c1,c2}", "18:00", "21:00", nil, nil, "show", now, now).
		AddRow("a2", "m2", day, "replaced", nil, nil, "{}", nil, nil, nil, "m3", nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + attendanceColumns + " FROM attendance ORDER BY date DESC, created_at DESC")).
		WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.AttendanceStatusPresent, records[0].Status)
	assert.Equal(t, []string{"c1", "c2"}, []string(records[0].CharacterIDs))
	require.NotNil(t, records[1].ReplacedMemberID)
	assert.Equal(t, "m3", *records[1].ReplacedMemberID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByMember(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance WHERE member_id = $1")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows(attendanceRowColumns))

	records, err := repo.ListByMember(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance").WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.AttendanceRecord{MemberID: "m1", Date: time.Now(), Status: models.AttendanceStatusAbsent}
	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("UPDATE attendance SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.AttendanceRecord{ID: "nope", Status: models.AttendanceStatusPresent})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
