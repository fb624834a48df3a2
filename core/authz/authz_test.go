package authz

import (
	"testing"

	"github.com/trezcool/shule/core/identity"
)

func TestAuthorize(t *testing.T) {
	admin := identity.Identity{ID: 1, Role: identity.RoleAdmin}
	teacher := identity.Identity{ID: 2, Role: identity.RoleTeacher, Subjects: []string{"Mathematics", "Physics"}}
	student := identity.Identity{ID: 3, Role: identity.RoleStudent}
	otherStudent := identity.Identity{ID: 4, Role: identity.RoleStudent}

	tests := []struct {
		name     string
		caller   identity.Identity
		op       Operation
		target   Target
		wantDeny bool
	}{
		{name: "admin creates identity", caller: admin, op: OpCreateIdentity},
		{name: "teacher creates identity", caller: teacher, op: OpCreateIdentity, wantDeny: true},
		{name: "student creates identity", caller: student, op: OpCreateIdentity, wantDeny: true},

		{name: "admin lists identities", caller: admin, op: OpListIdentities},
		{name: "teacher lists identities", caller: teacher, op: OpListIdentities, wantDeny: true},
		{name: "student lists identities", caller: student, op: OpListIdentities, wantDeny: true},

		{name: "admin reads any student", caller: admin, op: OpReadStudentAssessments, target: Target{StudentID: student.ID}},
		{name: "student reads own records", caller: student, op: OpReadStudentAssessments, target: Target{StudentID: student.ID}},
		{name: "student reads another student", caller: student, op: OpReadStudentAssessments, target: Target{StudentID: otherStudent.ID}, wantDeny: true},
		{name: "teacher reads student records", caller: teacher, op: OpReadStudentAssessments, target: Target{StudentID: student.ID}, wantDeny: true},

		{name: "admin creates assessment in any subject", caller: admin, op: OpCreateAssessment, target: Target{Subject: "Chemistry"}},
		{name: "teacher creates assessment in own subject", caller: teacher, op: OpCreateAssessment, target: Target{Subject: "Mathematics"}},
		{name: "teacher creates assessment outside subject set", caller: teacher, op: OpCreateAssessment, target: Target{Subject: "Chemistry"}, wantDeny: true},
		{name: "student creates assessment", caller: student, op: OpCreateAssessment, target: Target{Subject: "Mathematics"}, wantDeny: true},

		{name: "admin records attendance", caller: admin, op: OpRecordAttendance, target: Target{Subject: "Chemistry"}},
		{name: "teacher records attendance in own subject", caller: teacher, op: OpRecordAttendance, target: Target{Subject: "Physics"}},
		{name: "teacher records attendance outside subject set", caller: teacher, op: OpRecordAttendance, target: Target{Subject: "Chemistry"}, wantDeny: true},
		{name: "student records attendance", caller: student, op: OpRecordAttendance, target: Target{Subject: "Physics"}, wantDeny: true},

		{name: "student opens student dashboard", caller: student, op: OpStudentDashboard, target: Target{StudentID: student.ID}},
		{name: "teacher opens student dashboard", caller: teacher, op: OpStudentDashboard, wantDeny: true},
		{name: "admin opens student dashboard", caller: admin, op: OpStudentDashboard, wantDeny: true},

		{name: "teacher opens teacher dashboard", caller: teacher, op: OpTeacherDashboard},
		{name: "student opens teacher dashboard", caller: student, op: OpTeacherDashboard, wantDeny: true},
		{name: "admin opens teacher dashboard", caller: admin, op: OpTeacherDashboard, wantDeny: true},

		{name: "admin opens admin dashboard", caller: admin, op: OpAdminDashboard},
		{name: "teacher opens admin dashboard", caller: teacher, op: OpAdminDashboard, wantDeny: true},
		{name: "student opens admin dashboard", caller: student, op: OpAdminDashboard, wantDeny: true},

		{name: "unknown operation", caller: admin, op: Operation("lol"), wantDeny: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.caller, tt.op, tt.target)
			if tt.wantDeny {
				if err == nil {
					t.Fatal("Authorize() expected a denial")
				}
				perr, ok := err.(*PermissionError)
				if !ok {
					t.Fatalf("Authorize() error type = %T; want *PermissionError", err)
				}
				if perr.Op != tt.op {
					t.Errorf("PermissionError.Op = %s; want %s", perr.Op, tt.op)
				}
				if perr.Reason == "" {
					t.Error("PermissionError.Reason is empty")
				}
			} else if err != nil {
				t.Fatalf("Authorize() unexpected denial: %v", err)
			}
		})
	}
}

func TestPermissionError_noLeak(t *testing.T) {
	err := Authorize(
		identity.Identity{ID: 3, Role: identity.RoleStudent},
		OpReadStudentAssessments,
		Target{StudentID: 99},
	)
	if err == nil {
		t.Fatal("Authorize() expected a denial")
	}
	if got, want := err.Error(), "permission denied: read student assessments"; got != want {
		t.Errorf("Error() = %q; want %q", got, want)
	}
}
