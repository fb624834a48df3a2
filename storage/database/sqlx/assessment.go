package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/assessment"
)

type assessmentRow struct {
	ID            int       `db:"id"`
	StudentID     int       `db:"student_id"`
	TeacherID     int       `db:"teacher_id"`
	Subject       string    `db:"subject"`
	ClassName     string    `db:"class_name"`
	Term          string    `db:"term"`
	AcademicYear  string    `db:"academic_year"`
	Kind          string    `db:"assessment_type"`
	Name          string    `db:"assessment_name"`
	Date          time.Time `db:"assessment_date"`
	MaxMarks      float64   `db:"max_marks"`
	MarksObtained float64   `db:"marks_obtained"`
	Percentage    float64   `db:"percentage"`
	Grade         string    `db:"grade"`
	Weightage     float64   `db:"weightage"`
	Remarks       string    `db:"remarks"`
	Feedback      string    `db:"feedback"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row assessmentRow) toAssessment() assessment.Assessment {
	return assessment.Assessment{
		ID:            row.ID,
		StudentID:     row.StudentID,
		TeacherID:     row.TeacherID,
		Subject:       row.Subject,
		ClassName:     row.ClassName,
		Term:          row.Term,
		AcademicYear:  row.AcademicYear,
		Kind:          row.Kind,
		Name:          row.Name,
		Date:          row.Date,
		MaxMarks:      row.MaxMarks,
		MarksObtained: row.MarksObtained,
		Percentage:    row.Percentage,
		Letter:        row.Grade,
		Weightage:     row.Weightage,
		Remarks:       row.Remarks,
		Feedback:      row.Feedback,
		Status:        row.Status,
		CreatedAt:     row.CreatedAt.UTC(),
		UpdatedAt:     row.UpdatedAt.UTC(),
	}
}

func toAssessments(rows []assessmentRow) []assessment.Assessment {
	asmts := make([]assessment.Assessment, 0, len(rows))
	for _, row := range rows {
		asmts = append(asmts, row.toAssessment())
	}
	return asmts
}

const assessmentColumns = `id, student_id, teacher_id, subject, class_name, term, academic_year,
	assessment_type, assessment_name, assessment_date, max_marks, marks_obtained, percentage,
	grade, weightage, remarks, feedback, status, created_at, updated_at`

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

func (repo *assessmentRepository) CreateAssessment(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	err := repo.db.QueryRowContext(ctx, `
		INSERT INTO assessments (student_id, teacher_id, subject, class_name, term, academic_year,
			assessment_type, assessment_name, assessment_date, max_marks, marks_obtained, percentage,
			grade, weightage, remarks, feedback, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		a.StudentID, a.TeacherID, a.Subject, a.ClassName, a.Term, a.AcademicYear,
		a.Kind, a.Name, a.Date, a.MaxMarks, a.MarksObtained, a.Percentage,
		a.Letter, a.Weightage, a.Remarks, a.Feedback, a.Status, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "inserting assessment")
	}
	return a, nil
}

func (repo *assessmentRepository) FilterAssessments(ctx context.Context, filter assessment.QueryFilter) ([]assessment.Assessment, error) {
	where := []string{"student_id = $1"}
	args := []interface{}{filter.StudentID}
	if filter.Subject != "" {
		args = append(args, filter.Subject)
		where = append(where, fmt.Sprintf("subject = $%d", len(args)))
	}
	if filter.Term != "" {
		args = append(args, filter.Term)
		where = append(where, fmt.Sprintf("term = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM assessments WHERE %s ORDER BY assessment_date DESC, id DESC`,
		assessmentColumns, strings.Join(where, " AND "))

	var rows []assessmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering assessments")
	}
	return toAssessments(rows), nil
}

func (repo *assessmentRepository) RecentByStudent(ctx context.Context, studentID, n int) ([]assessment.Assessment, error) {
	var rows []assessmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT `+assessmentColumns+` FROM assessments WHERE student_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, studentID, n)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent student assessments")
	}
	return toAssessments(rows), nil
}

func (repo *assessmentRepository) RecentByTeacher(ctx context.Context, teacherID, n int) ([]assessment.Assessment, error) {
	var rows []assessmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT `+assessmentColumns+` FROM assessments WHERE teacher_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, teacherID, n)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent teacher assessments")
	}
	return toAssessments(rows), nil
}

func (repo *assessmentRepository) RecentAssessments(ctx context.Context, n int) ([]assessment.Assessment, error) {
	var rows []assessmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT `+assessmentColumns+` FROM assessments ORDER BY created_at DESC, id DESC LIMIT $1`, n)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent assessments")
	}
	return toAssessments(rows), nil
}

func (repo *assessmentRepository) AssessmentsByTeacherAndSubject(ctx context.Context, teacherID int, subject string) ([]assessment.Assessment, error) {
	var rows []assessmentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT `+assessmentColumns+` FROM assessments WHERE teacher_id = $1 AND subject = $2
		ORDER BY id`, teacherID, subject)
	if err != nil {
		return nil, errors.Wrap(err, "querying teacher subject assessments")
	}
	return toAssessments(rows), nil
}

func (repo *assessmentRepository) CountAssessments(ctx context.Context) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM assessments`); err != nil {
		return 0, errors.Wrap(err, "counting assessments")
	}
	return count, nil
}
