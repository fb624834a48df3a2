package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

const dateLayout = "2006-01-02"

// Event is one attendance mark for a student in a subject on a date.
// Events are read-only once recorded.
type Event struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	TeacherID int       `json:"teacher_id"`
	Subject   string    `json:"subject"`
	ClassName string    `json:"class_name"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Remarks   string    `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewEvent contains information needed to record a new Event.
type NewEvent struct {
	StudentID int    `json:"student_id" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	ClassName string `json:"class_name" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,attstatus"`
	Remarks   string `json:"remarks"`

	date time.Time
}

func (ne *NewEvent) Validate() error {
	ne.Subject = core.CleanString(ne.Subject)
	ne.ClassName = core.CleanString(ne.ClassName)
	ne.Status = core.CleanString(ne.Status, true /* lower */)

	if err := core.Validate.Struct(ne); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, ne.Date)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid YYYY-MM-DD date"})
	}
	ne.date = date
	return nil
}

var (
	attStatusTag  = "attstatus"
	attStatusText = "must be one of: present, absent, late"
)

func init() {
	_ = core.Validate.RegisterValidation(attStatusTag, attStatusValidation)
	core.RegisterCustomTranslation(attStatusTag, attStatusText)
}

func attStatusValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}
