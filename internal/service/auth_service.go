package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tradecore/internal/config"
	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/model"
	"tradecore/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, meta domain.RequestMeta) (*dto.LoginResponse, error)
	Logout(ctx context.Context, employeeID uuid.UUID, token string, meta domain.RequestMeta) error
	ChangePassword(ctx context.Context, employeeID uuid.UUID, req dto.ChangePasswordRequest, meta domain.RequestMeta) error

	CreateEmployee(ctx context.Context, actorID uuid.UUID, req dto.CreateEmployeeRequest, meta domain.RequestMeta) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]dto.EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateEmployeeRequest, meta domain.RequestMeta) (*dto.EmployeeResponse, error)
	DeactivateEmployee(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error
	ReactivateEmployee(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	employees repository.EmployeeRepository
	sessions  repository.SessionRepository
	audit     AuditService
	cfg       *config.Config
}

func NewAuthService(
	employees repository.EmployeeRepository,
	sessions repository.SessionRepository,
	audit AuditService,
	cfg *config.Config,
) AuthService {
	return &authService{employees: employees, sessions: sessions, audit: audit, cfg: cfg}
}

// Login authenticates, enforces the failed-attempt lockout, issues an HS256
// token, and records the session. Audit entries here are best-effort: a failed
// audit write must not abort an otherwise successful login, so errors from the
// sink are logged and swallowed.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest, meta domain.RequestMeta) (*dto.LoginResponse, error) {
	user, err := s.employees.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.PersistenceError{Op: "login", Err: err}
		}
		s.recordAuth(ctx, nil, ActionLoginFailed, meta)
		return nil, domain.ErrInvalidCredentials
	}

	// Deactivated accounts are indistinguishable from bad credentials.
	if !user.IsActive {
		s.recordAuth(ctx, nil, ActionLoginFailed, meta)
		return nil, domain.ErrInvalidCredentials
	}

	if user.FailedLoginAttempts >= s.cfg.MaxLoginAttempts {
		s.recordAuth(ctx, nil, ActionLoginBlocked, meta)
		return nil, domain.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if err := s.employees.IncrementFailedAttempts(ctx, req.Username); err != nil {
			log.Warn().Err(err).Msg("failed to increment login attempts")
		}
		s.recordAuth(ctx, nil, ActionLoginFailed, meta)
		return nil, domain.ErrInvalidCredentials
	}

	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(user, expiry)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.employees.ResetFailedAttempts(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Msg("failed to reset login attempts")
	}

	session := &model.UserSession{
		EmployeeID:   user.ID,
		SessionToken: token,
		ExpiresAt:    now.Add(expiry),
		IsActive:     true,
		LastActivity: now,
	}
	if meta.IP != "" {
		session.IPAddress = &meta.IP
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, &domain.PersistenceError{Op: "login", Err: err}
	}

	s.recordAuth(ctx, &user.ID, ActionLoginSuccess, meta)

	return &dto.LoginResponse{
		AccessToken:        token,
		TokenType:          "bearer",
		ExpiresIn:          s.cfg.JWTExpirationHours * 3600,
		MustChangePassword: user.MustChangePassword,
		User:               employeeToResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, employeeID uuid.UUID, token string, meta domain.RequestMeta) error {
	var err error
	if token != "" {
		err = s.sessions.Deactivate(ctx, employeeID, token)
	} else {
		err = s.sessions.DeactivateAll(ctx, employeeID)
	}
	if err != nil {
		return &domain.PersistenceError{Op: "logout", Err: err}
	}
	s.recordAuth(ctx, &employeeID, ActionLogout, meta)
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, employeeID uuid.UUID, req dto.ChangePasswordRequest, meta domain.RequestMeta) error {
	user, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEmployeeNotFound
		}
		return &domain.PersistenceError{Op: "change_password", Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hash)
	user.PasswordChangedAt = &now
	user.MustChangePassword = false
	if err := s.employees.Update(ctx, user); err != nil {
		return &domain.PersistenceError{Op: "change_password", Err: err}
	}

	s.recordAuth(ctx, &employeeID, ActionPasswordChange, meta)
	return nil
}

func (s *authService) CreateEmployee(ctx context.Context, actorID uuid.UUID, req dto.CreateEmployeeRequest, meta domain.RequestMeta) (*dto.EmployeeResponse, error) {
	if !domain.ValidRole(domain.Role(req.Role)) {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Employee{
		Username:           req.Username,
		PasswordHash:       string(hash),
		FullName:           req.FullName,
		Email:              req.Email,
		Phone:              req.Phone,
		Position:           req.Position,
		Role:               domain.Role(req.Role),
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := s.employees.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, &domain.PersistenceError{Op: "create_employee", Err: err}
	}

	entry := AuditEntry{
		EmployeeID: &actorID,
		Action:     ActionCreateUser,
		Table:      "employees",
		RecordID:   &user.ID,
		NewValues:  map[string]interface{}{"username": user.Username, "role": user.Role},
		Meta:       meta,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("audit write failed")
	}

	resp := employeeToResponse(user)
	return &resp, nil
}

func (s *authService) ListEmployees(ctx context.Context, includeInactive bool) ([]dto.EmployeeResponse, error) {
	users, err := s.employees.List(ctx, includeInactive)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_employees", Err: err}
	}
	resp := make([]dto.EmployeeResponse, len(users))
	for i := range users {
		resp[i] = employeeToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) UpdateEmployee(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateEmployeeRequest, meta domain.RequestMeta) (*dto.EmployeeResponse, error) {
	user, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, &domain.PersistenceError{Op: "update_employee", Err: err}
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Position != nil {
		user.Position = req.Position
	}
	if req.Role != "" {
		if !domain.ValidRole(domain.Role(req.Role)) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = domain.Role(req.Role)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user.PasswordHash = string(hash)
		user.PasswordChangedAt = &now
	}
	if err := s.employees.Update(ctx, user); err != nil {
		return nil, &domain.PersistenceError{Op: "update_employee", Err: err}
	}

	if err := s.audit.Record(ctx, AuditEntry{
		EmployeeID: &actorID,
		Action:     ActionUpdateUser,
		Table:      "employees",
		RecordID:   &id,
		Meta:       meta,
	}); err != nil {
		log.Warn().Err(err).Msg("audit write failed")
	}

	resp := employeeToResponse(user)
	return &resp, nil
}

func (s *authService) DeactivateEmployee(ctx context.Context, actorID, id uuid.UUID, meta domain.RequestMeta) error {
	if err := s.employees.SoftDelete(ctx, id); err != nil {
		return &domain.PersistenceError{Op: "deactivate_employee", Err: err}
	}
	if err := s.sessions.DeactivateAll(ctx, id); err != nil {
		log.Warn().Err(err).Msg("failed to deactivate sessions")
	}
	if err := s.audit.Record(ctx, AuditEntry{
		EmployeeID: &actorID,
		Action:     ActionDeleteUser,
		Table:      "employees",
		RecordID:   &id,
		Meta:       meta,
	}); err != nil {
		log.Warn().Err(err).Msg("audit write failed")
	}
	return nil
}

func (s *authService) ReactivateEmployee(ctx context.Context, id uuid.UUID) error {
	if err := s.employees.Reactivate(ctx, id); err != nil {
		return &domain.PersistenceError{Op: "reactivate_employee", Err: err}
	}
	return nil
}

// recordAuth writes a login-flow audit entry best-effort.
func (s *authService) recordAuth(ctx context.Context, employeeID *uuid.UUID, action string, meta domain.RequestMeta) {
	entry := AuditEntry{
		EmployeeID: employeeID,
		Action:     action,
		Table:      "employees",
		RecordID:   employeeID,
		Meta:       meta,
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit write failed")
	}
}

func (s *authService) generateToken(user *model.Employee, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func employeeToResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:       e.ID.String(),
		Username: e.Username,
		FullName: e.FullName,
		Email:    e.Email,
		Phone:    e.Phone,
		Position: e.Position,
		Role:     string(e.Role),
		IsActive: e.IsActive,
	}
}
