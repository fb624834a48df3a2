package assessment_test

import (
	"context"
	"testing"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/identity"
	"github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (*assessment.Service, assessment.Repository, identity.Repository) {
	t.Helper()
	db := inmemdb.Open()
	asmtRepo := inmemdb.NewAssessmentRepository(db)
	idRepo := inmemdb.NewIdentityRepository(db)
	return assessment.NewService(asmtRepo, idRepo), asmtRepo, idRepo
}

func newAssessment(studentID int, subject string, obtained, max float64) assessment.NewAssessment {
	return assessment.NewAssessment{
		StudentID:     studentID,
		Subject:       subject,
		ClassName:     "12A",
		Term:          "Term 1",
		AcademicYear:  "2024-25",
		Kind:          "test",
		Name:          "Unit Test 1",
		Date:          "2024-03-15",
		MaxMarks:      max,
		MarksObtained: obtained,
	}
}

func TestService_Create(t *testing.T) {
	svc, _, idRepo := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, idRepo, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, idRepo, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	na := newAssessment(student.ID, "Mathematics", 45, 50)
	if err := na.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	a, err := svc.Create(ctx, teacher, na)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if a.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if a.TeacherID != teacher.ID {
		t.Errorf("Create() teacher = %d; want caller %d", a.TeacherID, teacher.ID)
	}
	if a.Percentage != 90 {
		t.Errorf("Create() percentage = %v; want 90", a.Percentage)
	}
	if a.Letter != "A" {
		t.Errorf("Create() letter = %s; want A", a.Letter)
	}
	if a.Weightage != 1.0 {
		t.Errorf("Create() weightage = %v; want 1.0", a.Weightage)
	}
	if a.Status != assessment.StatusPublished {
		t.Errorf("Create() status = %s; want %s", a.Status, assessment.StatusPublished)
	}
}

func TestService_Create_authorization(t *testing.T) {
	svc, _, idRepo := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, idRepo, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, idRepo, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)
	admin := testutil.CreateIdentity(t, idRepo, "Admin", "Musonda", "admin@test.cd", identity.RoleAdmin, nil)

	tests := []struct {
		name     string
		caller   identity.Identity
		na       assessment.NewAssessment
		wantErr  error
		wantDeny bool
	}{
		{name: "teacher outside subject set", caller: teacher, na: newAssessment(student.ID, "Chemistry", 40, 50), wantDeny: true},
		{name: "student cannot create", caller: student, na: newAssessment(student.ID, "Mathematics", 40, 50), wantDeny: true},
		{name: "admin for any subject", caller: admin, na: newAssessment(student.ID, "Chemistry", 40, 50)},
		{name: "unknown student", caller: teacher, na: newAssessment(999, "Mathematics", 40, 50), wantErr: assessment.ErrStudentNotFound},
		{name: "target is not a student", caller: admin, na: newAssessment(teacher.ID, "Chemistry", 40, 50), wantErr: assessment.ErrStudentNotFound},
		// authorization is checked before the student lookup
		{name: "deny wins over missing student", caller: student, na: newAssessment(999, "Mathematics", 40, 50), wantDeny: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := tt.na
			if err := na.Validate(); err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			_, err := svc.Create(ctx, tt.caller, na)
			if tt.wantDeny {
				if _, ok := err.(*authz.PermissionError); !ok {
					t.Fatalf("Create() error = %v; want *authz.PermissionError", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Fatalf("Create() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_ListForStudent(t *testing.T) {
	svc, asmtRepo, idRepo := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, idRepo, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, idRepo, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)
	other := testutil.CreateIdentity(t, idRepo, "Ananya", "Sharma", "ananya@test.cd", identity.RoleStudent, nil)
	admin := testutil.CreateIdentity(t, idRepo, "Admin", "Musonda", "admin@test.cd", identity.RoleAdmin, nil)

	testutil.CreateAssessment(t, asmtRepo, student, teacher, "Mathematics", 45, 50)
	testutil.CreateAssessment(t, asmtRepo, student, teacher, "Physics", 30, 50)
	testutil.CreateAssessment(t, asmtRepo, other, teacher, "Mathematics", 25, 50)

	t.Run("student reads own records", func(t *testing.T) {
		asmts, err := svc.ListForStudent(ctx, student, student.ID, assessment.QueryFilter{})
		if err != nil {
			t.Fatalf("ListForStudent() failed: %v", err)
		}
		if len(asmts) != 2 {
			t.Errorf("ListForStudent() returned %d; want 2", len(asmts))
		}
	})

	t.Run("subject filter", func(t *testing.T) {
		asmts, err := svc.ListForStudent(ctx, admin, student.ID, assessment.QueryFilter{Subject: "Physics"})
		if err != nil {
			t.Fatalf("ListForStudent() failed: %v", err)
		}
		if len(asmts) != 1 {
			t.Errorf("ListForStudent() returned %d; want 1", len(asmts))
		}
	})

	t.Run("student denied on another student", func(t *testing.T) {
		_, err := svc.ListForStudent(ctx, student, other.ID, assessment.QueryFilter{})
		if _, ok := err.(*authz.PermissionError); !ok {
			t.Fatalf("ListForStudent() error = %v; want *authz.PermissionError", err)
		}
	})

	t.Run("denial does not reveal existence", func(t *testing.T) {
		_, err := svc.ListForStudent(ctx, student, 999, assessment.QueryFilter{})
		if _, ok := err.(*authz.PermissionError); !ok {
			t.Fatalf("ListForStudent() error = %v; want *authz.PermissionError", err)
		}
	})

	t.Run("admin on unknown student", func(t *testing.T) {
		_, err := svc.ListForStudent(ctx, admin, 999, assessment.QueryFilter{})
		if err != assessment.ErrStudentNotFound {
			t.Fatalf("ListForStudent() error = %v; want ErrStudentNotFound", err)
		}
	})
}
