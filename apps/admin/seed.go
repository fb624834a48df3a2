package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
)

var seedIdentities = []identity.NewIdentity{
	{
		Email:      "admin@dpsb.edu",
		Password:   "Pass@Word1!",
		FirstName:  "Dr. Priya",
		LastName:   "Sharma",
		Role:       identity.RoleAdmin,
		Department: "Administration",
	},
	{
		Email:      "jagdeep@dpsb.edu",
		Password:   "Pass@Word1!",
		FirstName:  "Jagdeep Singh",
		LastName:   "Sokhey",
		Role:       identity.RoleTeacher,
		Department: "Computer Science",
		Subjects:   []string{"Computer Science", "Data Structures", "Programming"},
	},
	{
		Email:      "priya.math@dpsb.edu",
		Password:   "Pass@Word1!",
		FirstName:  "Priya",
		LastName:   "Gupta",
		Role:       identity.RoleTeacher,
		Department: "Mathematics",
		Subjects:   []string{"Mathematics", "Statistics", "Calculus"},
	},
	{
		Email:      "rajesh.physics@dpsb.edu",
		Password:   "Pass@Word1!",
		FirstName:  "Rajesh",
		LastName:   "Kumar",
		Role:       identity.RoleTeacher,
		Department: "Physics",
		Subjects:   []string{"Physics", "Applied Physics"},
	},
	{
		Email:          "ritik@dpsb.edu",
		Password:       "Pass@Word1!",
		FirstName:      "Ritik",
		LastName:       "Koley",
		Role:           identity.RoleStudent,
		Department:     "Science",
		ClassName:      "12A",
		Subjects:       []string{"Mathematics", "Physics", "Computer Science", "Chemistry"},
		EnrollmentYear: 2023,
	},
	{
		Email:          "ananya@dpsb.edu",
		Password:       "Pass@Word1!",
		FirstName:      "Ananya",
		LastName:       "Sharma",
		Role:           identity.RoleStudent,
		Department:     "Science",
		ClassName:      "12A",
		Subjects:       []string{"Mathematics", "Physics", "Computer Science", "Chemistry"},
		EnrollmentYear: 2023,
	},
	{
		Email:          "arjun@dpsb.edu",
		Password:       "Pass@Word1!",
		FirstName:      "Arjun",
		LastName:       "Patel",
		Role:           identity.RoleStudent,
		Department:     "Science",
		ClassName:      "12B",
		Subjects:       []string{"Mathematics", "Physics", "Computer Science", "Chemistry"},
		EnrollmentYear: 2023,
	},
	{
		Email:          "sneha@dpsb.edu",
		Password:       "Pass@Word1!",
		FirstName:      "Sneha",
		LastName:       "Singh",
		Role:           identity.RoleStudent,
		Department:     "Commerce",
		ClassName:      "11A",
		Subjects:       []string{"Mathematics", "Economics", "Business Studies", "Accountancy"},
		EnrollmentYear: 2024,
	},
}

var seedAssessments = []struct {
	kind     string
	name     string
	maxMarks float64
}{
	{"assignment", "Assignment 1", 20},
	{"quiz", "Quiz 1", 10},
	{"test", "Unit Test 1", 50},
	{"assignment", "Assignment 2", 20},
	{"midterm", "Mid Term Exam", 100},
}

// seed loads a small demo data set through the regular services so every
// record goes through validation, grading and authorization. Identities that
// already exist are skipped along with their sample records, so re-running
// does not duplicate data.
func (cli *commandLine) seed() error {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var teachers, students []identity.Identity
	for _, ni := range seedIdentities {
		idt, err := cli.idSvc.GetByEmail(ctx, ni.Email)
		if err == nil {
			fmt.Printf("exists: %s (%s)\n", idt.DisplayName(), idt.Role)
			if idt.IsTeacher() {
				teachers = append(teachers, idt)
			}
			continue
		}
		if errors.Cause(err) != identity.ErrNotFound {
			return err
		}
		if err = ni.Validate(cli.idSvc); err != nil {
			return errors.Wrapf(err, "validating %s", ni.Email)
		}
		if idt, err = cli.idSvc.Create(ctx, ni); err != nil {
			return errors.Wrapf(err, "creating %s", ni.Email)
		}
		fmt.Printf("created: %s (%s)\n", idt.DisplayName(), idt.Role)

		switch {
		case idt.IsTeacher():
			teachers = append(teachers, idt)
		case idt.IsStudent():
			students = append(students, idt)
		}
	}

	asmtCount := 0
	for _, student := range students {
		for _, subject := range student.Subjects {
			teacher, ok := teacherFor(teachers, subject)
			if !ok {
				continue
			}
			for _, sa := range seedAssessments {
				pct := 70 + rng.Float64()*25
				marks := core.Round2(pct / 100 * sa.maxMarks)

				na := assessment.NewAssessment{
					StudentID:     student.ID,
					Subject:       subject,
					ClassName:     student.ClassName,
					Term:          "Term 1",
					AcademicYear:  "2024-25",
					Kind:          sa.kind,
					Name:          sa.name,
					Date:          fmt.Sprintf("2024-03-%02d", 1+rng.Intn(28)),
					MaxMarks:      sa.maxMarks,
					MarksObtained: marks,
				}
				if err := na.Validate(); err != nil {
					return err
				}
				if _, err := cli.asmtSvc.Create(ctx, teacher, na); err != nil {
					return err
				}
				asmtCount++
			}
		}
	}
	fmt.Printf("created %d assessments\n", asmtCount)

	attCount := 0
	for _, student := range students {
		for _, subject := range student.Subjects {
			teacher, ok := teacherFor(teachers, subject)
			if !ok {
				continue
			}
			for day := 1; day <= 30; day++ {
				if rng.Float64() <= 0.1 {
					continue
				}
				ne := attendance.NewEvent{
					StudentID: student.ID,
					Subject:   subject,
					ClassName: student.ClassName,
					Date:      fmt.Sprintf("2024-03-%02d", day),
					Status:    attendance.StatusPresent,
				}
				if err := ne.Validate(); err != nil {
					return err
				}
				if _, err := cli.attSvc.Record(ctx, teacher, ne); err != nil {
					return err
				}
				attCount++
			}
		}
	}
	fmt.Printf("created %d attendance events\n", attCount)
	return nil
}

func teacherFor(teachers []identity.Identity, subject string) (identity.Identity, bool) {
	for _, t := range teachers {
		if t.Teaches(subject) {
			return t, true
		}
	}
	return identity.Identity{}, false
}
