package dashboard

import (
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
)

type (
	// StudentView is a student's own summary.
	StudentView struct {
		RecentAssessments []assessment.Assessment `json:"recent_grades"`
		Attendance        attendance.Summary      `json:"attendance"`
		Profile           identity.Identity       `json:"profile"`
	}

	// SubjectPerformance is the mean result over a teacher's authored
	// assessments in one subject.
	SubjectPerformance struct {
		Subject          string  `json:"subject"`
		AverageScore     float64 `json:"average_score"`
		TotalAssessments int     `json:"total_assessments"`
	}

	// TeacherView is a teacher's own summary.
	TeacherView struct {
		Profile           identity.Identity       `json:"profile"`
		Subjects          []string                `json:"subjects"`
		RecentAssessments []assessment.Assessment `json:"recent_grades"`
		Performance       []SubjectPerformance    `json:"class_performance"`
	}

	// Statistics are system-wide totals.
	Statistics struct {
		TotalStudents    int `json:"total_students"`
		TotalTeachers    int `json:"total_teachers"`
		TotalAssessments int `json:"total_grades"`
	}

	// AdminView is the system-wide summary.
	AdminView struct {
		Statistics        Statistics              `json:"statistics"`
		RecentIdentities  []identity.Identity     `json:"recent_users"`
		RecentAssessments []assessment.Assessment `json:"recent_grades"`
	}
)
