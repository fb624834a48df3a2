package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
)

// CreateIdentity persists an active identity with sensible defaults for the
// fields tests rarely care about.
func CreateIdentity(
	t *testing.T,
	repo identity.Repository,
	firstName, lastName, email string,
	role identity.Role,
	subjects []string,
	createdAt ...time.Time,
) identity.Identity {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	idt := identity.Identity{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		Subjects:  subjects,
		Status:    identity.StatusActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if role == identity.RoleStudent {
		idt.ClassName = "12A"
		idt.EnrollmentYear = tstamp.Year()
	}
	if err := idt.SetPassword("Pass@Word1!"); err != nil {
		t.Fatalf("CreateIdentity() failed: %v", err)
	}
	idt, err := repo.CreateIdentity(context.Background(), idt)
	if err != nil {
		t.Fatalf("CreateIdentity() failed: %v", err)
	}
	return idt
}

// CreateAssessment persists a published assessment with derived grade fields
// precomputed from the given marks.
func CreateAssessment(
	t *testing.T,
	repo assessment.Repository,
	student, teacher identity.Identity,
	subject string,
	marksObtained, maxMarks float64,
	createdAt ...time.Time,
) assessment.Assessment {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	pct, letter, err := assessment.ComputeGrade(marksObtained, maxMarks)
	if err != nil {
		t.Fatalf("CreateAssessment() failed: %v", err)
	}
	a := assessment.Assessment{
		StudentID:     student.ID,
		TeacherID:     teacher.ID,
		Subject:       subject,
		ClassName:     student.ClassName,
		Term:          "Term 1",
		AcademicYear:  "2024-25",
		Kind:          "test",
		Name:          "Unit Test 1",
		Date:          tstamp,
		MaxMarks:      maxMarks,
		MarksObtained: marksObtained,
		Percentage:    pct,
		Letter:        letter,
		Weightage:     1.0,
		Status:        assessment.StatusPublished,
		CreatedAt:     tstamp,
		UpdatedAt:     tstamp,
	}
	a, err = repo.CreateAssessment(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAssessment() failed: %v", err)
	}
	return a
}

// CreateAttendance persists one attendance event.
func CreateAttendance(
	t *testing.T,
	repo attendance.Repository,
	student, teacher identity.Identity,
	subject, status string,
	date time.Time,
) attendance.Event {
	t.Helper()
	evt := attendance.Event{
		StudentID: student.ID,
		TeacherID: teacher.ID,
		Subject:   subject,
		ClassName: student.ClassName,
		Date:      date,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	evt, err := repo.CreateEvent(context.Background(), evt)
	if err != nil {
		t.Fatalf("CreateAttendance() failed: %v", err)
	}
	return evt
}
