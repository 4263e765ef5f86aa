package usecases

import (
	"context"
	"errors"
	"strings"

	"mentesana-server/apperr"
	"mentesana-server/auth"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type AuthUseCase struct {
	DB       db.Database
	UserRepo repositories.UserRepository
	Tokens   *auth.TokenIssuer
	Hasher   *auth.Hasher
}

func NewAuthUseCase(database db.Database, tokens *auth.TokenIssuer, hasher *auth.Hasher) *AuthUseCase {
	return &AuthUseCase{
		DB:       database,
		UserRepo: repositories.NewUserSqlRepository(database),
		Tokens:   tokens,
		Hasher:   hasher,
	}
}

type RegisterInput struct {
	Nombre     string
	Correo     string
	Contrasena string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// normalizeEmail trims the address. Matching stays case-sensitive.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// Register creates an account with an empty profile and signs a token.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Nombre)
	email := normalizeEmail(in.Correo)
	password := strings.TrimSpace(in.Contrasena)
	if name == "" || email == "" || password == "" {
		return nil, apperr.BadRequest("Name, email and password are required")
	}

	if _, err := uc.UserRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, failure("Could not register user", err)
	}

	hash, err := uc.Hasher.Hash(password)
	if err != nil {
		return nil, failure("Could not register user", err)
	}

	user := &entities.User{Nombre: name, Correo: email, Contrasena: hash, Nivel: 1}
	err = uc.DB.Atomic(ctx, func(tx db.Tx) error {
		if err := repositories.NewUserSqlRepository(tx).Create(ctx, user); err != nil {
			return err
		}
		return repositories.NewProfileSqlRepository(tx).CreateEmpty(ctx, user.IdUsuario)
	})
	if errors.Is(err, db.ErrConflict) {
		return nil, apperr.Conflict("User already exists")
	}
	if err != nil {
		return nil, failure("Could not register user", err)
	}

	return uc.issue(user)
}

// Login checks the credentials and signs a token.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return nil, apperr.BadRequest("Email and password are required")
	}

	user, err := uc.UserRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, failure("Could not log in", err)
	}

	if err := uc.Hasher.Check(user.Contrasena, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperr.Unauthorized("Incorrect password")
		}
		return nil, failure("Could not log in", err)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entities.User) (*AuthResult, error) {
	token, err := uc.Tokens.Issue(user.IdUsuario, user.Correo)
	if err != nil {
		return nil, failure("Could not sign token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
