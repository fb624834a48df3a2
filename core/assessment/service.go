package assessment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/identity"
)

var ErrStudentNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateAssessment(ctx context.Context, a Assessment) (Assessment, error)
		// FilterAssessments applies AND on set QueryFilter fields, ordered by
		// assessment date descending, ID descending on ties.
		FilterAssessments(ctx context.Context, filter QueryFilter) ([]Assessment, error)
		// RecentByStudent/RecentByTeacher/RecentAssessments return the n most
		// recently created assessments, created_at descending, ID descending
		// on ties.
		RecentByStudent(ctx context.Context, studentID, n int) ([]Assessment, error)
		RecentByTeacher(ctx context.Context, teacherID, n int) ([]Assessment, error)
		RecentAssessments(ctx context.Context, n int) ([]Assessment, error)
		AssessmentsByTeacherAndSubject(ctx context.Context, teacherID int, subject string) ([]Assessment, error)
		CountAssessments(ctx context.Context) (int, error)
	}

	Service struct {
		repo   Repository
		idRepo identity.Repository
	}
)

func NewService(repo Repository, idRepo identity.Repository) *Service {
	return &Service{repo: repo, idRepo: idRepo}
}

// Create records a graded assessment authored by the caller. The caller must
// be an admin or a teacher of the assessment's subject; the derived
// percentage and letter are computed here, never taken from input.
func (svc *Service) Create(ctx context.Context, caller identity.Identity, na NewAssessment) (Assessment, error) {
	if err := authz.Authorize(caller, authz.OpCreateAssessment, authz.Target{Subject: na.Subject}); err != nil {
		return Assessment{}, err
	}

	student, err := svc.idRepo.GetIdentityByID(ctx, na.StudentID)
	if err != nil {
		if errors.Cause(err) == identity.ErrNotFound {
			return Assessment{}, ErrStudentNotFound
		}
		return Assessment{}, errors.Wrap(err, "finding student")
	}
	if !student.IsStudent() {
		return Assessment{}, ErrStudentNotFound
	}

	pct, letter, err := ComputeGrade(na.MarksObtained, na.MaxMarks)
	if err != nil {
		return Assessment{}, core.NewValidationError(err, core.FieldError{Field: "max_marks", Error: err.Error()})
	}

	weightage := na.Weightage
	if weightage == 0 {
		weightage = 1.0
	}

	now := time.Now().UTC()
	a := Assessment{
		StudentID:     na.StudentID,
		TeacherID:     caller.ID,
		Subject:       na.Subject,
		ClassName:     na.ClassName,
		Term:          na.Term,
		AcademicYear:  na.AcademicYear,
		Kind:          na.Kind,
		Name:          na.Name,
		Date:          na.date,
		MaxMarks:      na.MaxMarks,
		MarksObtained: na.MarksObtained,
		Percentage:    pct,
		Letter:        letter,
		Weightage:     weightage,
		Remarks:       na.Remarks,
		Feedback:      na.Feedback,
		Status:        StatusPublished,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateAssessment(ctx, a)
}

// ListForStudent returns a student's assessments, newest assessment date
// first. Only the student themselves or an admin may read them;
// authorization runs before the target lookup so an unauthorized caller
// cannot probe for existence.
func (svc *Service) ListForStudent(ctx context.Context, caller identity.Identity, studentID int, filter QueryFilter) ([]Assessment, error) {
	if err := authz.Authorize(caller, authz.OpReadStudentAssessments, authz.Target{StudentID: studentID}); err != nil {
		return nil, err
	}

	student, err := svc.idRepo.GetIdentityByID(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == identity.ErrNotFound {
			return nil, ErrStudentNotFound
		}
		return nil, errors.Wrap(err, "finding student")
	}
	if !student.IsStudent() {
		return nil, ErrStudentNotFound
	}

	filter.Clean()
	filter.StudentID = studentID
	return svc.repo.FilterAssessments(ctx, filter)
}
