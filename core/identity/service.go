package identity

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound           = errors.New("identity not found")
	ErrEmailExists        = core.NewConflictError("an identity with this email already exists")
	ErrIdentifierExists   = core.NewConflictError("an identity with this identifier already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Identity) error
		// CreateIdentity persists idt, assigning its numeric ID and its
		// role-scoped public identifier from a serialized per-role sequence.
		// The sequence read and the insert happen in a single atomic unit;
		// nothing is persisted on failure.
		CreateIdentity(ctx context.Context, idt Identity) (Identity, error)
		GetIdentityByID(ctx context.Context, id int) (Identity, error)
		GetIdentityByEmail(ctx context.Context, email string) (Identity, error)
		// FilterIdentities applies AND on set QueryFilter fields and paginates
		// ordered by ID ascending.
		FilterIdentities(ctx context.Context, filter QueryFilter) (Page, error)
		CountByRole(ctx context.Context, role Role) (int, error)
		// RecentIdentities returns the n most recently created identities,
		// created_at descending, ID descending on ties.
		RecentIdentities(ctx context.Context, n int) ([]Identity, error)
		// SearchIdentities does a case-insensitive substring match of q
		// against the given fields, optionally restricted to a role set,
		// ordered by ID ascending and capped at limit.
		SearchIdentities(ctx context.Context, q string, fields []SearchField, roles []Role, limit int) ([]Identity, error)
		UpdateIdentityStatus(ctx context.Context, id int, status string) (Identity, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

func NewService(repo Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, mailSvc: mailSvc}
}

func (svc *Service) checkUniqueness(email string, excl ...Identity) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, excl...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create registers a new identity. The public identifier is assigned inside
// the repository so concurrent creations cannot collide.
func (svc *Service) Create(ctx context.Context, ni NewIdentity) (Identity, error) {
	now := time.Now().UTC()
	idt := Identity{
		Email:      ni.Email,
		FirstName:  ni.FirstName,
		LastName:   ni.LastName,
		Role:       ni.Role,
		Department: ni.Department,
		Subjects:   ni.Subjects,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if ni.Role == RoleStudent {
		idt.ClassName = ni.ClassName
		idt.EnrollmentYear = ni.EnrollmentYear
	}
	if err := idt.SetPassword(ni.Password); err != nil {
		return Identity{}, errors.Wrap(err, "hashing password")
	}

	idt, err := svc.repo.CreateIdentity(ctx, idt)
	if err != nil {
		return Identity{}, err
	}
	svc.sendWelcomeEmail(idt)
	return idt, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Identity, error) {
	return svc.repo.GetIdentityByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Identity, error) {
	return svc.repo.GetIdentityByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) (Page, error) {
	filter.Clean()
	return svc.repo.FilterIdentities(ctx, filter)
}

func (svc *Service) SetStatus(ctx context.Context, id int, status string) (Identity, error) {
	return svc.repo.UpdateIdentityStatus(ctx, id, status)
}

// Authenticate checks the credentials against the stored hash. It does not
// reveal whether the email exists.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (Identity, error) {
	idt, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, "finding identity by email")
	}
	if err = idt.CheckPassword(pwd); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	if !idt.IsActive() {
		return Identity{}, ErrAccountInactive
	}
	return idt, nil
}

func (svc *Service) sendWelcomeEmail(idt Identity) {
	if svc.mailSvc == nil {
		return
	}
	body := fmt.Sprintf("Hello %s,\n\nYour %s account has been created.", idt.DisplayName(), core.Conf.AppName)
	if identifier := idt.Identifier(); identifier != idt.Email {
		body += fmt.Sprintf("\nYour identifier is %s.", identifier)
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{{Name: idt.DisplayName(), Address: idt.Email}},
		Subject:     "Welcome aboard!",
		TextContent: body,
	})
}
