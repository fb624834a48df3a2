package identity

import (
	"testing"
)

func TestFormatIdentifier(t *testing.T) {
	tests := []struct {
		name string
		role Role
		seq  int
		year int
		want string
	}{
		{name: "first student", role: RoleStudent, seq: 1, year: 2024, want: "S240001"},
		{name: "student seq padding", role: RoleStudent, seq: 42, year: 2024, want: "S240042"},
		{name: "student large seq", role: RoleStudent, seq: 12345, year: 2024, want: "S2412345"},
		{name: "student century wrap", role: RoleStudent, seq: 1, year: 2101, want: "S010001"},
		{name: "first teacher", role: RoleTeacher, seq: 1, year: 2024, want: "T001"},
		{name: "teacher seq padding", role: RoleTeacher, seq: 99, year: 2024, want: "T099"},
		{name: "teacher large seq", role: RoleTeacher, seq: 1000, year: 2024, want: "T1000"},
		{name: "admin has none", role: RoleAdmin, seq: 1, year: 2024, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatIdentifier(tt.role, tt.seq, tt.year); got != tt.want {
				t.Errorf("FormatIdentifier() = %q; want %q", got, tt.want)
			}
		})
	}
}
