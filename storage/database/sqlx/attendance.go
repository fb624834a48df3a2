package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) CreateEvent(ctx context.Context, evt attendance.Event) (attendance.Event, error) {
	err := repo.db.QueryRowContext(ctx, `
		INSERT INTO attendance_events (student_id, teacher_id, subject, class_name, date, status, remarks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		evt.StudentID, evt.TeacherID, evt.Subject, evt.ClassName, evt.Date, evt.Status, evt.Remarks, evt.CreatedAt,
	).Scan(&evt.ID)
	if err != nil {
		return attendance.Event{}, errors.Wrap(err, "inserting attendance event")
	}
	return evt, nil
}

func (repo *attendanceRepository) CountByStudent(ctx context.Context, studentID int) (total, present int, err error) {
	err = repo.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM attendance_events WHERE student_id = $1`,
		studentID, attendance.StatusPresent,
	).Scan(&total, &present)
	if err != nil {
		return 0, 0, errors.Wrap(err, "tallying attendance")
	}
	return total, present, nil
}
