package assessment

import (
	"time"

	"github.com/trezcool/shule/core"
)

// Assessment statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const dateLayout = "2006-01-02"

// Assessment is one graded piece of work tied to one student and one
// authoring teacher. Percentage and Letter are always derived from
// (MarksObtained, MaxMarks); they are never written independently.
type Assessment struct {
	ID            int       `json:"id"`
	StudentID     int       `json:"student_id"`
	TeacherID     int       `json:"teacher_id"`
	Subject       string    `json:"subject"`
	ClassName     string    `json:"class_name"`
	Term          string    `json:"term"`
	AcademicYear  string    `json:"academic_year"`
	Kind          string    `json:"assessment_type"`
	Name          string    `json:"assessment_name"`
	Date          time.Time `json:"assessment_date"`
	MaxMarks      float64   `json:"max_marks"`
	MarksObtained float64   `json:"marks_obtained"`
	Percentage    float64   `json:"percentage"`
	Letter        string    `json:"grade"`
	Weightage     float64   `json:"weightage"`
	Remarks       string    `json:"remarks,omitempty"`
	Feedback      string    `json:"feedback,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// NewAssessment contains information needed to record a new Assessment.
type NewAssessment struct {
	StudentID     int     `json:"student_id" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	ClassName     string  `json:"class_name" validate:"required"`
	Term          string  `json:"term" validate:"required"`
	AcademicYear  string  `json:"academic_year" validate:"required"`
	Kind          string  `json:"assessment_type" validate:"required"`
	Name          string  `json:"assessment_name" validate:"required"`
	Date          string  `json:"assessment_date" validate:"required"`
	MaxMarks      float64 `json:"max_marks" validate:"required,gt=0"`
	MarksObtained float64 `json:"marks_obtained"`
	Weightage     float64 `json:"weightage"`
	Remarks       string  `json:"remarks"`
	Feedback      string  `json:"feedback"`

	date time.Time
}

func (na *NewAssessment) Validate() error {
	na.Subject = core.CleanString(na.Subject)
	na.ClassName = core.CleanString(na.ClassName)
	na.Term = core.CleanString(na.Term)
	na.AcademicYear = core.CleanString(na.AcademicYear)
	na.Kind = core.CleanString(na.Kind)
	na.Name = core.CleanString(na.Name)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, na.Date)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "assessment_date", Error: "must be a valid YYYY-MM-DD date"})
	}
	na.date = date

	// marks outside [0, max] are historically accepted; reject only when the
	// strict policy is on.
	if core.Conf.StrictMarks {
		if na.MarksObtained < 0 {
			return core.NewValidationError(nil, core.FieldError{Field: "marks_obtained", Error: "cannot be negative"})
		}
		if na.MarksObtained > na.MaxMarks {
			return core.NewValidationError(nil, core.FieldError{Field: "marks_obtained", Error: "cannot exceed max_marks"})
		}
	}
	return nil
}

// QueryFilter narrows a student's assessment listing. Zero fields are ignored.
type QueryFilter struct {
	StudentID int    `query:"-"`
	Subject   string `query:"subject"`
	Term      string `query:"term"`
}

func (qf *QueryFilter) Clean() {
	qf.Subject = core.CleanString(qf.Subject)
	qf.Term = core.CleanString(qf.Term)
}
