// Package auth registra usuarios y emite los tokens de sesión.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
	"github.com/jhoicas/Panneaux-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	signer      *jwt.Signer
	ttl         time.Duration
	cost        int
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	ttl := time.Duration(jwtCfg.ExpMinutes) * time.Minute
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		signer:      jwt.NewSigner(jwtCfg.Secret, jwtCfg.Issuer, ttl),
		ttl:         ttl,
		cost:        bcrypt.DefaultCost,
		now:         time.Now,
	}
}

// WithBcryptCost ajusta el coste de bcrypt (tests).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea un usuario activo de la empresa in.CompanyID.
//
// Retorna:
//   - domain.ErrInvalidInput si el rol no es admin, comptable ni commercial.
//   - domain.ErrNotFound si la empresa no existe.
//   - domain.ErrEmailAlreadyExists si el email ya está registrado en la empresa.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	role := in.Role
	switch role {
	case "":
		role = entity.RoleCommercial
	case entity.RoleAdmin, entity.RoleComptable, entity.RoleCommercial:
	default:
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}

	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("registro: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.userRepo.GetByEmailAndCompany(ctx, email, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("registro: buscar email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("registro: hash: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Name == "" {
		user.Name = email
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica las credenciales y emite un token con user_id, company_id y role.
// Email desconocido es domain.ErrUserNotFound, clave incorrecta domain.ErrUnauthorized y
// cuenta no activa domain.ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, fmt.Errorf("login: buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}

	issuedAt := uc.now()
	token, err := uc.signer.Sign(jwt.Identity{UserID: user.ID, CompanyID: user.CompanyID, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: issuedAt.Add(uc.ttl),
		User:      *toUserResponse(user),
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
