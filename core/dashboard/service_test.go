package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/authz"
	"github.com/trezcool/shule/core/dashboard"
	"github.com/trezcool/shule/core/identity"
	"github.com/trezcool/shule/storage/database/inmem"
	"github.com/trezcool/shule/tests"
)

type repos struct {
	id   identity.Repository
	asmt assessment.Repository
	att  attendance.Repository
}

func setup(t *testing.T) (*dashboard.Service, repos) {
	t.Helper()
	db := inmemdb.Open()
	r := repos{
		id:   inmemdb.NewIdentityRepository(db),
		asmt: inmemdb.NewAssessmentRepository(db),
		att:  inmemdb.NewAttendanceRepository(db),
	}
	return dashboard.NewService(r.id, r.asmt, r.att), r
}

func TestService_StudentView(t *testing.T) {
	svc, r := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, r.id, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, r.id, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	day := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []int
	for i := 0; i < 7; i++ {
		a := testutil.CreateAssessment(t, r.asmt, student, teacher, "Mathematics", 40, 50, day.AddDate(0, 0, i))
		ids = append(ids, a.ID)
	}
	testutil.CreateAttendance(t, r.att, student, teacher, "Mathematics", attendance.StatusPresent, day)
	testutil.CreateAttendance(t, r.att, student, teacher, "Mathematics", attendance.StatusAbsent, day.AddDate(0, 0, 1))

	view, err := svc.StudentView(ctx, student)
	if err != nil {
		t.Fatalf("StudentView() failed: %v", err)
	}

	if len(view.RecentAssessments) != 5 {
		t.Fatalf("StudentView() recent = %d; want 5", len(view.RecentAssessments))
	}
	// newest first: the 5 most recently created of the 7
	for i, a := range view.RecentAssessments {
		if want := ids[len(ids)-1-i]; a.ID != want {
			t.Errorf("StudentView() recent[%d] = %d; want %d", i, a.ID, want)
		}
	}
	if view.Attendance.Percentage != 50 {
		t.Errorf("StudentView() attendance = %v; want 50", view.Attendance.Percentage)
	}
	if view.Profile.ID != student.ID {
		t.Errorf("StudentView() profile = %d; want %d", view.Profile.ID, student.ID)
	}

	if _, err = svc.StudentView(ctx, teacher); err == nil {
		t.Error("StudentView() expected a denial for a teacher caller")
	}
}

func TestService_StudentView_tieBreak(t *testing.T) {
	svc, r := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, r.id, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	student := testutil.CreateIdentity(t, r.id, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	// identical creation timestamps; order must fall back to ID descending
	tstamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var ids []int
	for i := 0; i < 6; i++ {
		a := testutil.CreateAssessment(t, r.asmt, student, teacher, "Mathematics", 40, 50, tstamp)
		ids = append(ids, a.ID)
	}

	first, err := svc.StudentView(ctx, student)
	if err != nil {
		t.Fatalf("StudentView() failed: %v", err)
	}
	for i, a := range first.RecentAssessments {
		if want := ids[len(ids)-1-i]; a.ID != want {
			t.Errorf("StudentView() recent[%d] = %d; want %d", i, a.ID, want)
		}
	}

	// stable across repeated calls
	second, err := svc.StudentView(ctx, student)
	if err != nil {
		t.Fatalf("StudentView() failed: %v", err)
	}
	for i := range first.RecentAssessments {
		if first.RecentAssessments[i].ID != second.RecentAssessments[i].ID {
			t.Fatal("StudentView() is not deterministic over fixed data")
		}
	}
}

func TestService_TeacherView(t *testing.T) {
	svc, r := setup(t)
	ctx := context.Background()

	teacher := testutil.CreateIdentity(t, r.id, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics", "Statistics", "Calculus"})
	student := testutil.CreateIdentity(t, r.id, "Ritik", "Koley", "ritik@test.cd", identity.RoleStudent, nil)

	testutil.CreateAssessment(t, r.asmt, student, teacher, "Mathematics", 45, 50) // 90%
	testutil.CreateAssessment(t, r.asmt, student, teacher, "Mathematics", 35, 50) // 70%
	testutil.CreateAssessment(t, r.asmt, student, teacher, "Statistics", 25, 50)  // 50%

	view, err := svc.TeacherView(ctx, teacher)
	if err != nil {
		t.Fatalf("TeacherView() failed: %v", err)
	}

	if len(view.RecentAssessments) != 3 {
		t.Errorf("TeacherView() recent = %d; want 3", len(view.RecentAssessments))
	}
	// Calculus has no assessments and must be omitted, not zero-filled
	if len(view.Performance) != 2 {
		t.Fatalf("TeacherView() performance entries = %d; want 2", len(view.Performance))
	}
	perf := make(map[string]dashboard.SubjectPerformance, len(view.Performance))
	for _, p := range view.Performance {
		perf[p.Subject] = p
	}
	if p := perf["Mathematics"]; p.AverageScore != 80 || p.TotalAssessments != 2 {
		t.Errorf("TeacherView() Mathematics = %+v; want avg 80 over 2", p)
	}
	if p := perf["Statistics"]; p.AverageScore != 50 || p.TotalAssessments != 1 {
		t.Errorf("TeacherView() Statistics = %+v; want avg 50 over 1", p)
	}

	if _, err = svc.TeacherView(ctx, student); err == nil {
		t.Error("TeacherView() expected a denial for a student caller")
	}
}

func TestService_AdminView(t *testing.T) {
	svc, r := setup(t)
	ctx := context.Background()

	admin := testutil.CreateIdentity(t, r.id, "Admin", "Musonda", "admin@test.cd", identity.RoleAdmin, nil)
	teacher := testutil.CreateIdentity(t, r.id, "Jagdeep", "Sokhey", "jagdeep@test.cd", identity.RoleTeacher, []string{"Mathematics"})
	students := make([]identity.Identity, 0, 3)
	for _, name := range []string{"ritik", "ananya", "arjun"} {
		students = append(students, testutil.CreateIdentity(t, r.id, "Student", "Phiri", name+"@test.cd", identity.RoleStudent, nil))
	}

	for i := 0; i < 7; i++ {
		testutil.CreateAssessment(t, r.asmt, students[i%3], teacher, "Mathematics", 40, 50)
	}

	view, err := svc.AdminView(ctx, admin)
	if err != nil {
		t.Fatalf("AdminView() failed: %v", err)
	}

	if view.Statistics.TotalStudents != 3 {
		t.Errorf("AdminView() students = %d; want 3", view.Statistics.TotalStudents)
	}
	if view.Statistics.TotalTeachers != 1 {
		t.Errorf("AdminView() teachers = %d; want 1", view.Statistics.TotalTeachers)
	}
	if view.Statistics.TotalAssessments != 7 {
		t.Errorf("AdminView() assessments = %d; want 7", view.Statistics.TotalAssessments)
	}
	if len(view.RecentIdentities) != 5 {
		t.Errorf("AdminView() recent identities = %d; want 5", len(view.RecentIdentities))
	}
	if len(view.RecentAssessments) != 5 {
		t.Errorf("AdminView() recent assessments = %d; want 5", len(view.RecentAssessments))
	}

	_, err = svc.AdminView(ctx, teacher)
	if _, ok := err.(*authz.PermissionError); !ok {
		t.Fatalf("AdminView() error = %v; want *authz.PermissionError", err)
	}
}
