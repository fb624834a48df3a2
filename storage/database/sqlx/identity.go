package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/identity"
)

const uniqueViolation = "23505"

type identityRow struct {
	ID             int            `db:"id"`
	Email          string         `db:"email"`
	PasswordHash   []byte         `db:"password_hash"`
	FirstName      string         `db:"first_name"`
	LastName       string         `db:"last_name"`
	Role           string         `db:"role"`
	Department     string         `db:"department"`
	StudentID      sql.NullString `db:"student_id"`
	TeacherID      sql.NullString `db:"teacher_id"`
	ClassName      string         `db:"class_name"`
	Subjects       pq.StringArray `db:"subjects"`
	Status         string         `db:"status"`
	EnrollmentYear int            `db:"enrollment_year"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (row identityRow) toIdentity() identity.Identity {
	return identity.Identity{
		ID:             row.ID,
		Email:          row.Email,
		PasswordHash:   row.PasswordHash,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Role:           identity.Role(row.Role),
		Department:     row.Department,
		StudentID:      row.StudentID.String,
		TeacherID:      row.TeacherID.String,
		ClassName:      row.ClassName,
		Subjects:       row.Subjects,
		Status:         row.Status,
		EnrollmentYear: row.EnrollmentYear,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func toIdentities(rows []identityRow) []identity.Identity {
	idts := make([]identity.Identity, 0, len(rows))
	for _, row := range rows {
		idts = append(idts, row.toIdentity())
	}
	return idts
}

const identityColumns = `id, email, password_hash, first_name, last_name, role, department,
	student_id, teacher_id, class_name, subjects, status, enrollment_year, created_at, updated_at`

type identityRepository struct {
	db *sqlx.DB
}

func NewIdentityRepository(db *sqlx.DB) identity.Repository {
	return &identityRepository{db: db}
}

func (repo *identityRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...identity.Identity) error {
	query := `SELECT EXISTS (SELECT 1 FROM identities WHERE email = $1`
	args := []interface{}{email}
	if len(excluded) > 0 {
		ids := make([]int, 0, len(excluded))
		for _, idt := range excluded {
			ids = append(ids, idt.ID)
		}
		query += ` AND id != ALL($2)`
		args = append(args, pq.Array(ids))
	}
	query += `)`

	var exists bool
	if err := repo.db.GetContext(ctx, &exists, query, args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return identity.ErrEmailExists
	}
	return nil
}

// CreateIdentity inserts idt within a transaction that also bumps the role's
// identifier sequence; either both land or neither does.
func (repo *identityRepository) CreateIdentity(ctx context.Context, idt identity.Identity) (identity.Identity, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return identity.Identity{}, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	switch idt.Role {
	case identity.RoleStudent, identity.RoleTeacher:
		// the upsert takes a row lock on the role's sequence, serializing
		// concurrent creations of the same role
		var seq int
		err = tx.QueryRowContext(ctx, `
			INSERT INTO role_sequences (role, seq) VALUES ($1, 1)
			ON CONFLICT (role) DO UPDATE SET seq = role_sequences.seq + 1
			RETURNING seq`, string(idt.Role),
		).Scan(&seq)
		if err != nil {
			return identity.Identity{}, errors.Wrap(err, "bumping role sequence")
		}
		identifier := identity.FormatIdentifier(idt.Role, seq, idt.CreatedAt.Year())
		if idt.Role == identity.RoleStudent {
			idt.StudentID = identifier
		} else {
			idt.TeacherID = identifier
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO identities (email, password_hash, first_name, last_name, role, department,
			student_id, teacher_id, class_name, subjects, status, enrollment_year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		idt.Email, idt.PasswordHash, idt.FirstName, idt.LastName, string(idt.Role), idt.Department,
		nullString(idt.StudentID), nullString(idt.TeacherID), idt.ClassName, pq.Array(idt.Subjects),
		idt.Status, idt.EnrollmentYear, idt.CreatedAt, idt.UpdatedAt,
	).Scan(&idt.ID)
	if err != nil {
		return identity.Identity{}, wrapUniqueViolation(err, "inserting identity")
	}

	if err = tx.Commit(); err != nil {
		return identity.Identity{}, errors.Wrap(err, "committing identity")
	}
	return idt, nil
}

func (repo *identityRepository) GetIdentityByID(ctx context.Context, id int) (identity.Identity, error) {
	var row identityRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+identityColumns+` FROM identities WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return identity.Identity{}, identity.ErrNotFound
		}
		return identity.Identity{}, errors.Wrap(err, "getting identity by id")
	}
	return row.toIdentity(), nil
}

func (repo *identityRepository) GetIdentityByEmail(ctx context.Context, email string) (identity.Identity, error) {
	var row identityRow
	err := repo.db.GetContext(ctx, &row, `SELECT `+identityColumns+` FROM identities WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return identity.Identity{}, identity.ErrNotFound
		}
		return identity.Identity{}, errors.Wrap(err, "getting identity by email")
	}
	return row.toIdentity(), nil
}

func (repo *identityRepository) FilterIdentities(ctx context.Context, filter identity.QueryFilter) (identity.Page, error) {
	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		where = append(where, fmt.Sprintf("department = $%d", len(args)))
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := repo.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM identities`+whereClause, args...); err != nil {
		return identity.Page{}, errors.Wrap(err, "counting identities")
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(`SELECT %s FROM identities%s ORDER BY id LIMIT $%d OFFSET $%d`,
		identityColumns, whereClause, len(args)-1, len(args))

	var rows []identityRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return identity.Page{}, errors.Wrap(err, "filtering identities")
	}

	return identity.Page{
		Items:   toIdentities(rows),
		Page:    filter.Page,
		Pages:   (total + filter.PerPage - 1) / filter.PerPage,
		PerPage: filter.PerPage,
		Total:   total,
	}, nil
}

func (repo *identityRepository) CountByRole(ctx context.Context, role identity.Role) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM identities WHERE role = $1`, string(role))
	if err != nil {
		return 0, errors.Wrap(err, "counting identities by role")
	}
	return count, nil
}

func (repo *identityRepository) RecentIdentities(ctx context.Context, n int) ([]identity.Identity, error) {
	var rows []identityRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+identityColumns+` FROM identities ORDER BY created_at DESC, id DESC LIMIT $1`, n)
	if err != nil {
		return nil, errors.Wrap(err, "querying recent identities")
	}
	return toIdentities(rows), nil
}

func (repo *identityRepository) SearchIdentities(
	ctx context.Context,
	q string,
	fields []identity.SearchField,
	roles []identity.Role,
	limit int,
) ([]identity.Identity, error) {
	pattern := "%" + q + "%"
	conds := make([]string, 0, len(fields))
	for _, field := range fields {
		conds = append(conds, searchColumn(field)+" ILIKE $1")
	}

	args := []interface{}{pattern}
	query := `SELECT ` + identityColumns + ` FROM identities WHERE (` + strings.Join(conds, " OR ") + `)`
	if len(roles) > 0 {
		roleStrs := make([]string, 0, len(roles))
		for _, role := range roles {
			roleStrs = append(roleStrs, string(role))
		}
		args = append(args, pq.Array(roleStrs))
		query += fmt.Sprintf(" AND role = ANY($%d)", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d", len(args))

	var rows []identityRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "searching identities")
	}
	return toIdentities(rows), nil
}

func (repo *identityRepository) UpdateIdentityStatus(ctx context.Context, id int, status string) (identity.Identity, error) {
	var row identityRow
	err := repo.db.GetContext(ctx, &row, `
		UPDATE identities SET status = $2, updated_at = $3 WHERE id = $1
		RETURNING `+identityColumns, id, status, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return identity.Identity{}, identity.ErrNotFound
		}
		return identity.Identity{}, errors.Wrap(err, "updating identity status")
	}
	return row.toIdentity(), nil
}

func searchColumn(field identity.SearchField) string {
	switch field {
	case identity.SearchFirstName:
		return "first_name"
	case identity.SearchLastName:
		return "last_name"
	case identity.SearchEmail:
		return "email"
	case identity.SearchStudentID:
		return "student_id"
	case identity.SearchTeacherID:
		return "teacher_id"
	}
	return "email"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// wrapUniqueViolation maps pq unique violations to the domain's duplicate errors.
func wrapUniqueViolation(err error, msg string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		switch pqErr.Constraint {
		case "identities_email_key":
			return identity.ErrEmailExists
		case "identities_student_id_key", "identities_teacher_id_key":
			return identity.ErrIdentifierExists
		}
	}
	return core.NewDependencyError(err, msg)
}
