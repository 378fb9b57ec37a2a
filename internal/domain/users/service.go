package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"care-circle/internal/ports/auth"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials cubre usuario inexistente y password malo por igual:
	// no filtramos cuál de los dos falló.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	repo   Repository
	issuer auth.TokenIssuer
	cost   int
	now    func() time.Time
}

func NewService(repo Repository, issuer auth.TokenIssuer, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:   repo,
		issuer: issuer,
		cost:   bcryptCost,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     Role
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Username:     username,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	// la unicidad de username la garantiza el repo (índice único en Postgres)
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type LoginOutput struct {
	Token string
	User  User
}

func (s *Service) Login(ctx context.Context, username, password string) (LoginOutput, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if s.issuer == nil {
		return LoginOutput{}, errors.New("token issuer not configured")
	}
	token, err := s.issuer.Issue(u.ID)
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{Token: token, User: u}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}
