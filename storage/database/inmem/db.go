// Package inmemdb is an in-memory implementation of the repositories, used
// by tests and local development. All tables are guarded by their own RWMutex
// and identifier sequences are serialized with the inserts that consume them.
package inmemdb

import (
	"sync"

	"github.com/trezcool/shule/core/assessment"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/identity"
)

type (
	identityTable struct {
		mutex   sync.RWMutex
		table   map[int]*identity.Identity
		pkCount int
		// role-scoped public identifier sequences; read and bumped under the
		// table write lock together with the insert.
		seqs map[identity.Role]int
	}

	assessmentTable struct {
		mutex   sync.RWMutex
		table   map[int]*assessment.Assessment
		pkCount int
	}

	attendanceTable struct {
		mutex   sync.RWMutex
		table   map[int]*attendance.Event
		pkCount int
	}

	DB struct {
		identity   *identityTable
		assessment *assessmentTable
		attendance *attendanceTable
	}
)

func Open() *DB {
	return &DB{
		identity: &identityTable{
			table: make(map[int]*identity.Identity),
			seqs:  make(map[identity.Role]int),
		},
		assessment: &assessmentTable{table: make(map[int]*assessment.Assessment)},
		attendance: &attendanceTable{table: make(map[int]*attendance.Event)},
	}
}
