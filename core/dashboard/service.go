// Package dashboard assembles the role-specific summary views by composing
// the identity, assessment and attendance repositories. "Most recent" is
// always created_at descending with ID descending on ties, so repeated calls
// over fixed data are reproducible.
package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/identity"
)

const (
	recentAssessmentsStudent = 5
	recentAssessmentsTeacher = 10
	recentAdmin              = 5
)

type Service struct {
	idRepo   identity.Repository
	asmtRepo assessment.Repository
	attRepo  attendance.Repository
}

func NewService(idRepo identity.Repository, asmtRepo assessment.Repository, attRepo attendance.Repository) *Service {
	return &Service{idRepo: idRepo, asmtRepo: asmtRepo, attRepo: attRepo}
}

// StudentView builds the caller's own dashboard.
func (svc *Service) StudentView(ctx context.Context, caller identity.Identity) (StudentView, error) {
	if err := authz.Authorize(caller, authz.OpStudentDashboard, authz.Target{StudentID: caller.ID}); err != nil {
		return StudentView{}, err
	}

	recent, err := svc.asmtRepo.RecentByStudent(ctx, caller.ID, recentAssessmentsStudent)
	if err != nil {
		return StudentView{}, errors.Wrap(err, "querying recent assessments")
	}

	total, present, err := svc.attRepo.CountByStudent(ctx, caller.ID)
	if err != nil {
		return StudentView{}, errors.Wrap(err, "tallying attendance")
	}

	return StudentView{
		RecentAssessments: recent,
		Attendance: attendance.Summary{
			TotalClasses:   total,
			PresentClasses: present,
			Percentage:     attendance.Percentage(present, total),
		},
		Profile: caller,
	}, nil
}

// TeacherView builds the caller's own dashboard. Subjects with no authored
// assessments are omitted from the performance summary, not zero-filled.
func (svc *Service) TeacherView(ctx context.Context, caller identity.Identity) (TeacherView, error) {
	if err := authz.Authorize(caller, authz.OpTeacherDashboard, authz.Target{}); err != nil {
		return TeacherView{}, err
	}

	recent, err := svc.asmtRepo.RecentByTeacher(ctx, caller.ID, recentAssessmentsTeacher)
	if err != nil {
		return TeacherView{}, errors.Wrap(err, "querying recent assessments")
	}

	performance := make([]SubjectPerformance, 0, len(caller.Subjects))
	for _, subject := range caller.Subjects {
		asmts, err := svc.asmtRepo.AssessmentsByTeacherAndSubject(ctx, caller.ID, subject)
		if err != nil {
			return TeacherView{}, errors.Wrap(err, "querying subject assessments")
		}
		if len(asmts) == 0 {
			continue
		}
		var sum float64
		for _, a := range asmts {
			sum += a.Percentage
		}
		performance = append(performance, SubjectPerformance{
			Subject:          subject,
			AverageScore:     core.Round2(sum / float64(len(asmts))),
			TotalAssessments: len(asmts),
		})
	}

	return TeacherView{
		Profile:           caller,
		Subjects:          caller.Subjects,
		RecentAssessments: recent,
		Performance:       performance,
	}, nil
}

// AdminView builds the system-wide dashboard.
func (svc *Service) AdminView(ctx context.Context, caller identity.Identity) (AdminView, error) {
	if err := authz.Authorize(caller, authz.OpAdminDashboard, authz.Target{}); err != nil {
		return AdminView{}, err
	}

	students, err := svc.idRepo.CountByRole(ctx, identity.RoleStudent)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "counting students")
	}
	teachers, err := svc.idRepo.CountByRole(ctx, identity.RoleTeacher)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "counting teachers")
	}
	asmts, err := svc.asmtRepo.CountAssessments(ctx)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "counting assessments")
	}

	recentIdts, err := svc.idRepo.RecentIdentities(ctx, recentAdmin)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "querying recent identities")
	}
	recentAsmts, err := svc.asmtRepo.RecentAssessments(ctx, recentAdmin)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "querying recent assessments")
	}

	return AdminView{
		Statistics: Statistics{
			TotalStudents:    students,
			TotalTeachers:    teachers,
			TotalAssessments: asmts,
		},
		RecentIdentities:  recentIdts,
		RecentAssessments: recentAsmts,
	}, nil
}
