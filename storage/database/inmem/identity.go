package inmemdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/trezcool/shule/core/identity"
)

type identityRepository struct {
	db *identityTable
}

func NewIdentityRepository(db *DB) identity.Repository {
	return &identityRepository{db: db.identity}
}

func (repo *identityRepository) query() []identity.Identity {
	idts := make([]identity.Identity, 0, len(repo.db.table))
	for _, idt := range repo.db.table {
		idts = append(idts, *idt)
	}
	return idts
}

func (repo *identityRepository) CheckEmailUniqueness(_ context.Context, email string, excluded ...identity.Identity) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, idt := range repo.query() {
		if idt.Email == email && !isExcluded(idt, excluded) {
			return identity.ErrEmailExists
		}
	}
	return nil
}

func (repo *identityRepository) CreateIdentity(_ context.Context, idt identity.Identity) (identity.Identity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.Email == idt.Email {
			return identity.Identity{}, identity.ErrEmailExists
		}
	}

	// the sequence bump, identifier formatting and insert share the write
	// lock; concurrent creations cannot assign duplicate identifiers
	switch idt.Role {
	case identity.RoleStudent, identity.RoleTeacher:
		repo.db.seqs[idt.Role]++
		identifier := identity.FormatIdentifier(idt.Role, repo.db.seqs[idt.Role], idt.CreatedAt.Year())
		if idt.Role == identity.RoleStudent {
			idt.StudentID = identifier
		} else {
			idt.TeacherID = identifier
		}
	}

	repo.db.pkCount++
	idt.ID = repo.db.pkCount
	repo.db.table[idt.ID] = &idt
	return idt, nil
}

func (repo *identityRepository) GetIdentityByID(_ context.Context, id int) (identity.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if idt, ok := repo.db.table[id]; ok {
		return *idt, nil
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (repo *identityRepository) GetIdentityByEmail(_ context.Context, email string) (identity.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, idt := range repo.query() {
		if idt.Email == email {
			return idt, nil
		}
	}
	return identity.Identity{}, identity.ErrNotFound
}

func (repo *identityRepository) FilterIdentities(_ context.Context, filter identity.QueryFilter) (identity.Page, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]identity.Identity, 0)
	for _, idt := range repo.query() {
		if filter.Role != "" && idt.Role != filter.Role {
			continue
		}
		if filter.Department != "" && idt.Department != filter.Department {
			continue
		}
		matches = append(matches, idt)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	total := len(matches)
	pages := (total + filter.PerPage - 1) / filter.PerPage
	start := (filter.Page - 1) * filter.PerPage
	if start > total {
		start = total
	}
	end := start + filter.PerPage
	if end > total {
		end = total
	}

	return identity.Page{
		Items:   matches[start:end],
		Page:    filter.Page,
		Pages:   pages,
		PerPage: filter.PerPage,
		Total:   total,
	}, nil
}

func (repo *identityRepository) CountByRole(_ context.Context, role identity.Role) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var count int
	for _, idt := range repo.db.table {
		if idt.Role == role {
			count++
		}
	}
	return count, nil
}

func (repo *identityRepository) RecentIdentities(_ context.Context, n int) ([]identity.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	idts := repo.query()
	sort.Slice(idts, func(i, j int) bool {
		if !idts[i].CreatedAt.Equal(idts[j].CreatedAt) {
			return idts[i].CreatedAt.After(idts[j].CreatedAt)
		}
		return idts[i].ID > idts[j].ID
	})
	if len(idts) > n {
		idts = idts[:n]
	}
	return idts, nil
}

func (repo *identityRepository) SearchIdentities(
	_ context.Context,
	q string,
	fields []identity.SearchField,
	roles []identity.Role,
	limit int,
) ([]identity.Identity, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	q = strings.ToLower(q)
	matches := make([]identity.Identity, 0)
	for _, idt := range repo.query() {
		if len(roles) > 0 && !roleIn(idt.Role, roles) {
			continue
		}
		if matchesAnyField(idt, q, fields) {
			matches = append(matches, idt)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (repo *identityRepository) UpdateIdentityStatus(_ context.Context, id int, status string) (identity.Identity, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	idt, ok := repo.db.table[id]
	if !ok {
		return identity.Identity{}, identity.ErrNotFound
	}
	idt.Status = status
	idt.UpdatedAt = time.Now().UTC()
	return *idt, nil
}

func matchesAnyField(idt identity.Identity, q string, fields []identity.SearchField) bool {
	for _, field := range fields {
		var val string
		switch field {
		case identity.SearchFirstName:
			val = idt.FirstName
		case identity.SearchLastName:
			val = idt.LastName
		case identity.SearchEmail:
			val = idt.Email
		case identity.SearchStudentID:
			val = idt.StudentID
		case identity.SearchTeacherID:
			val = idt.TeacherID
		}
		if val != "" && strings.Contains(strings.ToLower(val), q) {
			return true
		}
	}
	return false
}

func roleIn(role identity.Role, roles []identity.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func isExcluded(idt identity.Identity, excluded []identity.Identity) bool {
	for _, excl := range excluded {
		if excl.ID == idt.ID {
			return true
		}
	}
	return false
}
