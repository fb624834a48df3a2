// Package authz decides, per operation and per caller, whether an operation
// is permitted. Every operation handler runs Authorize before touching any
// data; a caller without visibility on a target is told "permission denied",
// never whether the target exists.
package authz

import (
	"github.com/trezcool/shule/core/identity"
)

// Operation is the closed enumeration of guarded operations.
type Operation string

const (
	OpCreateIdentity         Operation = "create identity"
	OpListIdentities         Operation = "list identities"
	OpReadStudentAssessments Operation = "read student assessments"
	OpCreateAssessment       Operation = "create assessment"
	OpRecordAttendance       Operation = "record attendance"
	OpStudentDashboard       Operation = "student dashboard"
	OpTeacherDashboard       Operation = "teacher dashboard"
	OpAdminDashboard         Operation = "admin dashboard"
)

// Target carries the operation parameters the rules need. Unused fields are
// left zero.
type Target struct {
	StudentID int    // identity owning the records being read/written
	Subject   string // subject of the assessment/attendance being written
}

// PermissionError is an authorization failure for an attempted operation.
type PermissionError struct {
	Op     Operation
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + string(e.Op)
}

func deny(op Operation, reason string) error {
	return &PermissionError{Op: op, Reason: reason}
}

// Authorize runs the rules for op as an ordered set of checks; the first
// failing check wins. A nil return means the operation may proceed.
func Authorize(caller identity.Identity, op Operation, target Target) error {
	switch op {
	case OpCreateIdentity, OpListIdentities, OpAdminDashboard:
		if !caller.IsAdmin() {
			return deny(op, "administrator role required")
		}

	case OpReadStudentAssessments:
		if caller.IsAdmin() {
			return nil
		}
		if !caller.IsStudent() {
			return deny(op, "only the student or an administrator may read these")
		}
		if caller.ID != target.StudentID {
			return deny(op, "students may only read their own records")
		}

	case OpCreateAssessment, OpRecordAttendance:
		if caller.IsAdmin() {
			return nil
		}
		if !caller.IsTeacher() {
			return deny(op, "teacher role required")
		}
		if !caller.Teaches(target.Subject) {
			return deny(op, "subject is not in the caller's subject set")
		}

	case OpStudentDashboard:
		if !caller.IsStudent() {
			return deny(op, "student role required")
		}

	case OpTeacherDashboard:
		if !caller.IsTeacher() {
			return deny(op, "teacher role required")
		}

	default:
		return deny(op, "unknown operation")
	}
	return nil
}
