// Package orgs manages organizations, users and memberships: the records
// that sit outside any tenant scope.
package orgs

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/database"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/ids"
	"github.com/hugh/scoutzos/internal/validation"
	"gorm.io/gorm"
)

// MaxSlugAttempts bounds how often Create retries after losing a slug race.
const MaxSlugAttempts = 5

// Audit entity names for the records this service writes.
const (
	AuditEntityOrganization = "Organization"
	AuditEntityMembership   = "Membership"
)

type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *slog.Logger
}

func NewService(db *gorm.DB, recorder *audit.Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Create stores a new organization under a freshly allocated slug. The
// allocation and insert share a transaction; when the insert loses a race
// on the slug index the whole transaction is retried.
func (s *Service) Create(ctx context.Context, actor *string, name string) (*models.Organization, error) {
	name = validation.CleanName(name)
	if name == "" {
		return nil, apperr.Field("name", "is required")
	}
	if len(name) > 255 {
		return nil, apperr.Field("name", "must be at most 255 characters")
	}

	var org models.Organization
	for attempt := 1; attempt <= MaxSlugAttempts; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			slug, err := AllocateSlug(tx, name)
			if err != nil {
				return err
			}

			org = models.Organization{Name: name, Slug: slug}
			if err := tx.Create(&org).Error; err != nil {
				return err
			}

			return s.recorder.Record(ctx, tx, audit.Entry{
				OrgID:    org.ID,
				Actor:    actor,
				Action:   models.AuditCreate,
				Entity:   AuditEntityOrganization,
				EntityID: org.ID,
				After:    org,
			})
		})
		if err == nil {
			s.logger.Info("organization created", "org_id", org.ID, "slug", org.Slug)
			return &org, nil
		}
		if !database.IsUniqueViolation(err) {
			return nil, s.fail("create organization", err)
		}
		s.logger.Warn("slug collision, retrying", "name", name, "attempt", attempt)
	}

	return nil, apperr.Conflict("could not allocate a unique slug for "+name, nil)
}

// List returns every organization ordered by creation.
func (s *Service) List(ctx context.Context) ([]models.Organization, error) {
	orgs := make([]models.Organization, 0)
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&orgs).Error; err != nil {
		return nil, s.fail("list organizations", apperr.Storage("list organizations", err))
	}
	return orgs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Organization, error) {
	if !ids.Valid(id) {
		return nil, apperr.NotFound("Organization")
	}
	var org models.Organization
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Organization")
		}
		return nil, s.fail("get organization", apperr.Storage("get organization", err))
	}
	return &org, nil
}

// CreateUser registers a user by email. Emails are compared lowercased.
func (s *Service) CreateUser(ctx context.Context, email string, name *string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.Field("email", "is required")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperr.Field("email", "must be a valid email address")
	}
	if name != nil {
		cleaned := validation.CleanName(*name)
		name = &cleaned
	}

	user := models.User{Email: email, Name: name}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("a user with this email already exists", err)
		}
		return nil, s.fail("create user", apperr.Storage("create user", err))
	}

	s.logger.Info("user created", "user_id", user.ID)
	return &user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	if !ids.Valid(id) {
		return nil, apperr.NotFound("User")
	}
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, s.fail("get user", apperr.Storage("get user", err))
	}
	return &user, nil
}

// AddMember grants userID a role in orgID. An empty role means viewer.
func (s *Service) AddMember(ctx context.Context, actor *string, orgID, userID string, role models.Role) (*models.UserOrgRole, error) {
	if role == "" {
		role = models.RoleViewer
	}
	if !validRole(role) {
		return nil, apperr.Field("role", "must be one of: owner, admin, agent, viewer")
	}
	if !ids.Valid(userID) {
		return nil, apperr.Field("user_id", "must be a valid id")
	}
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}

	var membership models.UserOrgRole
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return apperr.Storage("check user", err)
		}
		if count == 0 {
			return apperr.Field("user_id", "User not found")
		}

		membership = models.UserOrgRole{UserID: userID, OrgID: orgID, Role: role}
		if err := tx.Create(&membership).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return apperr.Conflict("user is already a member of this organization", err)
			}
			return apperr.Storage("create membership", err)
		}

		return s.recorder.Record(ctx, tx, audit.Entry{
			OrgID:    orgID,
			Actor:    actor,
			Action:   models.AuditCreate,
			Entity:   AuditEntityMembership,
			EntityID: membership.ID,
			After:    membership,
		})
	})
	if err != nil {
		return nil, s.fail("add member", err)
	}

	s.logger.Info("member added", "org_id", orgID, "user_id", userID, "role", role)
	return &membership, nil
}

// ListMembers returns orgID's memberships, oldest first.
func (s *Service) ListMembers(ctx context.Context, orgID string) ([]models.UserOrgRole, error) {
	if _, err := s.Get(ctx, orgID); err != nil {
		return nil, err
	}
	members := make([]models.UserOrgRole, 0)
	if err := s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, s.fail("list members", apperr.Storage("list members", err))
	}
	return members, nil
}

func validRole(role models.Role) bool {
	for _, r := range models.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Service) fail(op string, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Storage(op, err)
	}
	if e.Kind == apperr.KindStorage {
		s.logger.Error("organization operation failed", "op", op, "error", err)
	}
	return e
}
