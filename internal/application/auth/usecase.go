package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kmwaura/malipo-api/internal/application/dto"
	"github.com/kmwaura/malipo-api/internal/domain"
	"github.com/kmwaura/malipo-api/internal/domain/entity"
	"github.com/kmwaura/malipo-api/internal/domain/repository"
	"github.com/kmwaura/malipo-api/pkg/jwt"
)

// JWTConfig is the token generation configuration.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase covers registration and login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	agentRepo   repository.FieldAgentRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	agentRepo repository.FieldAgentRepository,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		agentRepo:   agentRepo,
		jwtCfg:      jwtCfg,
	}
}

// RegisterUser creates a login: hashes the password with bcrypt and persists.
// Returns ErrEmailAlreadyExists when the email is taken within the company.
// Client and agent logins must reference an existing record of that company.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmailAndCompany(in.Email, in.CompanyID)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}

	var clientID, agentID *string
	switch role {
	case entity.RoleAdmin:
	case entity.RoleClient:
		if in.ClientID == "" {
			return nil, domain.ErrInvalidInput
		}
		client, err := uc.clientRepo.GetByID(in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.CompanyID != in.CompanyID {
			return nil, domain.ErrNotFound
		}
		clientID = &client.ID
	case entity.RoleAgent:
		if in.AgentID == "" {
			return nil, domain.ErrInvalidInput
		}
		agent, err := uc.agentRepo.GetByID(in.AgentID)
		if err != nil {
			return nil, err
		}
		if agent == nil || agent.CompanyID != in.CompanyID {
			return nil, domain.ErrNotFound
		}
		agentID = &agent.ID
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		ClientID:     clientID,
		AgentID:      agentID,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifies email/password, generates a JWT and returns token + user.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	actorID := ""
	if user.ClientID != nil {
		actorID = *user.ClientID
	} else if user.AgentID != nil {
		actorID = *user.AgentID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, actorID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.ClientID != nil {
		resp.ClientID = *u.ClientID
	}
	if u.AgentID != nil {
		resp.AgentID = *u.AgentID
	}
	return resp
}
