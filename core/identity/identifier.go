package identity

import "fmt"

// FormatIdentifier renders the public identifier for the seq-th identity of a
// role. Students get "S" + the year's last two digits + a 4-digit sequence,
// teachers get "T" + a 3-digit sequence, admins get none.
//
// seq must come from a serialized per-role sequence: counting existing rows
// and adding one is not safe under concurrent creation, so repositories own
// the sequence and call this within the same critical section as the insert.
func FormatIdentifier(role Role, seq, year int) string {
	switch role {
	case RoleStudent:
		return fmt.Sprintf("S%02d%04d", year%100, seq)
	case RoleTeacher:
		return fmt.Sprintf("T%03d", seq)
	}
	return ""
}
