package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/shule/core/assessment"
)

type assessmentRepository struct {
	db *assessmentTable
}

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

func (repo *assessmentRepository) query() []assessment.Assessment {
	asmts := make([]assessment.Assessment, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		asmts = append(asmts, *a)
	}
	return asmts
}

func (repo *assessmentRepository) CreateAssessment(_ context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	a.ID = repo.db.pkCount
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assessmentRepository) FilterAssessments(_ context.Context, filter assessment.QueryFilter) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]assessment.Assessment, 0)
	for _, a := range repo.query() {
		if filter.StudentID != 0 && a.StudentID != filter.StudentID {
			continue
		}
		if filter.Subject != "" && a.Subject != filter.Subject {
			continue
		}
		if filter.Term != "" && a.Term != filter.Term {
			continue
		}
		matches = append(matches, a)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.After(matches[j].Date)
		}
		return matches[i].ID > matches[j].ID
	})
	return matches, nil
}

func (repo *assessmentRepository) RecentByStudent(_ context.Context, studentID, n int) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.recent(func(a assessment.Assessment) bool { return a.StudentID == studentID }, n), nil
}

func (repo *assessmentRepository) RecentByTeacher(_ context.Context, teacherID, n int) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.recent(func(a assessment.Assessment) bool { return a.TeacherID == teacherID }, n), nil
}

func (repo *assessmentRepository) RecentAssessments(_ context.Context, n int) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.recent(func(assessment.Assessment) bool { return true }, n), nil
}

func (repo *assessmentRepository) AssessmentsByTeacherAndSubject(_ context.Context, teacherID int, subject string) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]assessment.Assessment, 0)
	for _, a := range repo.query() {
		if a.TeacherID == teacherID && a.Subject == subject {
			matches = append(matches, a)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (repo *assessmentRepository) CountAssessments(_ context.Context) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return len(repo.db.table), nil
}

// recent filters then orders by created_at descending, ID descending on ties.
func (repo *assessmentRepository) recent(match func(assessment.Assessment) bool, n int) []assessment.Assessment {
	matches := make([]assessment.Assessment, 0)
	for _, a := range repo.query() {
		if match(a) {
			matches = append(matches, a)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}
