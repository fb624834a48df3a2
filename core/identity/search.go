package identity

import (
	"context"

	"github.com/trezcool/shule/core"
)

// SearchField names an Identity attribute the directory search may match against.
type SearchField int

const (
	SearchFirstName SearchField = iota
	SearchLastName
	SearchEmail
	SearchStudentID
	SearchTeacherID
)

const searchLimit = 10

// Search looks up identities matching query, scoped to what the caller may
// see: admins search everyone on every field, teachers search students only,
// students get nothing. An empty or whitespace query yields no results.
func (svc *Service) Search(ctx context.Context, caller Identity, query string) ([]SearchHit, error) {
	query = core.CleanString(query)
	if query == "" {
		return []SearchHit{}, nil
	}

	var (
		fields []SearchField
		roles  []Role
	)
	switch caller.Role {
	case RoleAdmin:
		fields = []SearchField{SearchFirstName, SearchLastName, SearchEmail, SearchStudentID, SearchTeacherID}
	case RoleTeacher:
		fields = []SearchField{SearchFirstName, SearchLastName, SearchStudentID}
		roles = []Role{RoleStudent}
	default: // students have no directory access
		return []SearchHit{}, nil
	}

	idts, err := svc.repo.SearchIdentities(ctx, query, fields, roles, searchLimit)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(idts))
	for _, idt := range idts {
		hits = append(hits, SearchHit{
			ID:          idt.ID,
			DisplayName: idt.DisplayName(),
			Identifier:  idt.Identifier(),
			Role:        idt.Role,
		})
	}
	return hits, nil
}
