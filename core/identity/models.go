package identity

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

// Role is the closed set of account types. Any other value is invalid and
// must be rejected at the boundary.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

var AllRoles = []Role{RoleStudent, RoleTeacher, RoleAdmin}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Account statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Identity struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   []byte    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Role           Role      `json:"role"`
	Department     string    `json:"department,omitempty"`
	StudentID      string    `json:"student_id,omitempty"` // set iff Role == RoleStudent
	TeacherID      string    `json:"teacher_id,omitempty"` // set iff Role == RoleTeacher
	ClassName      string    `json:"class_name,omitempty"` // students only
	Subjects       []string  `json:"subjects"`
	Status         string    `json:"status"`
	EnrollmentYear int       `json:"enrollment_year,omitempty"` // students only
	CreatedAt      time.Time `json:"created_at"`                // UTC
	UpdatedAt      time.Time `json:"updated_at"`                // UTC
}

func (idt *Identity) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	idt.PasswordHash = hash
	return nil
}

func (idt *Identity) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(idt.PasswordHash, []byte(pwd))
}

func (idt Identity) IsAdmin() bool   { return idt.Role == RoleAdmin }
func (idt Identity) IsTeacher() bool { return idt.Role == RoleTeacher }
func (idt Identity) IsStudent() bool { return idt.Role == RoleStudent }

func (idt Identity) IsActive() bool { return idt.Status == StatusActive }

func (idt Identity) DisplayName() string {
	return idt.FirstName + " " + idt.LastName
}

// Identifier returns the public identifier best matching the role.
func (idt Identity) Identifier() string {
	switch idt.Role {
	case RoleStudent:
		return idt.StudentID
	case RoleTeacher:
		return idt.TeacherID
	}
	return idt.Email
}

// Teaches reports whether subject is in the identity's subject set.
func (idt Identity) Teaches(subject string) bool {
	for _, s := range idt.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// NewIdentity contains information needed to create a new Identity.
type NewIdentity struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required"`
	FirstName      string   `json:"first_name" validate:"required"`
	LastName       string   `json:"last_name" validate:"required"`
	Role           Role     `json:"role" validate:"required,role"`
	Department     string   `json:"department"`
	ClassName      string   `json:"class_name"`
	Subjects       []string `json:"subjects"`
	EnrollmentYear int      `json:"enrollment_year"`
}

func (ni *NewIdentity) Validate(svc *Service) error {
	ni.Email = core.CleanString(ni.Email, true /* lower */)
	ni.FirstName = core.CleanString(ni.FirstName)
	ni.LastName = core.CleanString(ni.LastName)
	ni.Department = core.CleanString(ni.Department)
	ni.ClassName = core.CleanString(ni.ClassName)
	for i, s := range ni.Subjects {
		ni.Subjects[i] = core.CleanString(s)
	}

	if err := core.Validate.Struct(ni); err != nil {
		return err
	}
	return svc.checkUniqueness(ni.Email)
}

// QueryFilter narrows an identity listing. Zero fields are ignored.
type QueryFilter struct {
	Role       Role   `query:"role"`
	Department string `query:"department"`
	Page       int    `query:"page"`
	PerPage    int    `query:"per_page"`
}

func (qf *QueryFilter) Clean() {
	qf.Department = core.CleanString(qf.Department)
	if qf.Page < 1 {
		qf.Page = 1
	}
	if qf.PerPage < 1 || qf.PerPage > 100 {
		qf.PerPage = 10
	}
}

// Page is one page of identities plus pagination metadata.
type Page struct {
	Items   []Identity `json:"items"`
	Page    int        `json:"page"`
	Pages   int        `json:"pages"`
	PerPage int        `json:"per_page"`
	Total   int        `json:"total"`
}

// SearchHit is a directory search result.
type SearchHit struct {
	ID          int    `json:"id"`
	DisplayName string `json:"name"`
	Identifier  string `json:"identifier"`
	Role        Role   `json:"type"`
}
