package attendance

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
	// Summary tallies a student's attendance events across all subjects.
	Summary struct {
		TotalClasses   int     `json:"total_classes"`
		PresentClasses int     `json:"present_classes"`
		Percentage     float64 `json:"percentage"`
	}

	Repository interface {
		CreateEvent(ctx context.Context, evt Event) (Event, error)
		// CountByStudent returns (total events, present events) for a student
		// across all subjects.
		CountByStudent(ctx context.Context, studentID int) (total, present int, err error)
	}

	Service struct {
		repo   Repository
		idRepo identity.Repository
	}
)

func NewService(repo Repository, idRepo identity.Repository) *Service {
	return &Service{repo: repo, idRepo: idRepo}
}

// Percentage computes the attendance rate rounded to 2 decimals.
// A student with no events has 0 attendance, not an error.
func Percentage(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return core.Round2(float64(present) / float64(total) * 100)
}

// Record stores one attendance event authored by the caller. The caller must
// be an admin or a teacher of the event's subject.
func (svc *Service) Record(ctx context.Context, caller identity.Identity, ne NewEvent) (Event, error) {
	if err := authz.Authorize(caller, authz.OpRecordAttendance, authz.Target{Subject: ne.Subject}); err != nil {
		return Event{}, err
	}

	student, err := svc.idRepo.GetIdentityByID(ctx, ne.StudentID)
	if err != nil {
		if errors.Cause(err) == identity.ErrNotFound {
			return Event{}, ErrStudentNotFound
		}
		return Event{}, errors.Wrap(err, "finding student")
	}
	if !student.IsStudent() {
		return Event{}, ErrStudentNotFound
	}

	evt := Event{
		StudentID: ne.StudentID,
		TeacherID: caller.ID,
		Subject:   ne.Subject,
		ClassName: ne.ClassName,
		Date:      ne.date,
		Status:    ne.Status,
		Remarks:   ne.Remarks,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateEvent(ctx, evt)
}

// SummaryFor tallies a student's events and derives the attendance rate.
func (svc *Service) SummaryFor(ctx context.Context, studentID int) (Summary, error) {
	total, present, err := svc.repo.CountByStudent(ctx, studentID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		TotalClasses:   total,
		PresentClasses: present,
		Percentage:     Percentage(present, total),
	}, nil
}
