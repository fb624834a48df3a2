package inmemdb

import (
	"context"

	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) CreateEvent(_ context.Context, evt attendance.Event) (attendance.Event, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	evt.ID = repo.db.pkCount
	repo.db.table[evt.ID] = &evt
	return evt, nil
}

func (repo *attendanceRepository) CountByStudent(_ context.Context, studentID int) (total, present int, err error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, evt := range repo.db.table {
		if evt.StudentID != studentID {
			continue
		}
		total++
		if evt.Status == attendance.StatusPresent {
			present++
		}
	}
	return total, present, nil
}
