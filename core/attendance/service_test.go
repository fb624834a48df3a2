package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/identity"
	"github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (*attendance.Service, attendance.Repository, identity.Repository) {
	t.Helper()
	db := inmemdb.Open()
	attRepo := inmemdb.NewAttendanceRepository(db)
	idRepo := inmemdb.NewIdentityRepository(db)
	return attendance.NewService(attRepo, idRepo), attRepo, idRepo
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name           string
		present, total int
		want           float64
	}{
		{name: "no events", present: 0, total: 0, want: 0},
		{name: "all present", present: 10, total: 10, want: 100},
		{name: "none present", present: 0, total: 10, want: 0},
		{name: "9 of 10", present: 9, total: 10, want: 90},
		{name: "rounded to 2 decimals", present: 1, total: 3, want: 33.33},
		{name: "rounded half up", present: 2, total: 3, want: 66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attendance.Percentage(tt.present, tt.total); got != tt.want {
				t.Errorf("Percentage() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestService_Record(t *testing.T) {
	svc, _, idRepo := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, idRepo, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, idRepo, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	newEvent := func(studentID int, subject, status string) attendance.NewEvent {
		return attendance.NewEvent{
			StudentID: studentID,
			Subject:   subject,
			ClassName: "12A",
			Date:      "2024-03-15",
			Status:    status,
		}
	}

	t.Run("ok", func(t *testing.T) {
		ne := newEvent(student.ID, "Mathematics", attendance.StatusPresent)
		if err := ne.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		evt, err := svc.Record(ctx, teacher, ne)
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
		if evt.ID == 0 {
			t.Error("Record() did not assign an ID")
		}
		if evt.TeacherID != teacher.ID {
			t.Errorf("Record() teacher = %d; want caller %d", evt.TeacherID, teacher.ID)
		}
	})

	t.Run("subject outside caller's set", func(t *testing.T) {
		ne := newEvent(student.ID, "Chemistry", attendance.StatusPresent)
		if err := ne.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		_, err := svc.Record(ctx, teacher, ne)
		if _, ok := err.(*authz.PermissionError); !ok {
			t.Fatalf("Record() error = %v; want *authz.PermissionError", err)
		}
	})

	t.Run("student caller denied", func(t *testing.T) {
		ne := newEvent(student.ID, "Mathematics", attendance.StatusPresent)
		if err := ne.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		_, err := svc.Record(ctx, student, ne)
		if _, ok := err.(*authz.PermissionError); !ok {
			t.Fatalf("Record() error = %v; want *authz.PermissionError", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		ne := newEvent(999, "Mathematics", attendance.StatusPresent)
		if err := ne.Validate(); err != nil {
			t.Fatalf("Validate() failed: %v", err)
		}
		if _, err := svc.Record(ctx, teacher, ne); err != attendance.ErrStudentNotFound {
			t.Fatalf("Record() error = %v; want ErrStudentNotFound", err)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		ne := newEvent(student.ID, "Mathematics", "lol")
		if err := ne.Validate(); err == nil {
			t.Fatal("Validate() expected a status error")
		}
	})
}

func TestService_SummaryFor(t *testing.T) {
	svc, attRepo, idRepo := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, idRepo, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, idRepo, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	t.Run("no events", func(t *testing.T) {
		sum, err := svc.SummaryFor(ctx, student.ID)
		if err != nil {
			t.Fatalf("SummaryFor() failed: %v", err)
		}
		if sum.TotalClasses != 0 || sum.PresentClasses != 0 || sum.Percentage != 0 {
			t.Errorf("SummaryFor() = %+v; want all zero", sum)
		}
	})

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		testutil.CreateAttendance(t, attRepo, student, teacher, "Mathematics", attendance.StatusPresent, day.AddDate(0, 0, i))
	}
	testutil.CreateAttendance(t, attRepo, student, teacher, "Mathematics", attendance.StatusAbsent, day.AddDate(0, 0, 9))

	t.Run("9 of 10 present", func(t *testing.T) {
		sum, err := svc.SummaryFor(ctx, student.ID)
		if err != nil {
			t.Fatalf("SummaryFor() failed: %v", err)
		}
		if sum.TotalClasses != 10 {
			t.Errorf("SummaryFor() total = %d; want 10", sum.TotalClasses)
		}
		if sum.PresentClasses != 9 {
			t.Errorf("SummaryFor() present = %d; want 9", sum.PresentClasses)
		}
		if sum.Percentage != 90 {
			t.Errorf("SummaryFor() percentage = %v; want 90", sum.Percentage)
		}
	})
}
