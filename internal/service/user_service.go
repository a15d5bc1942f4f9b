package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"linux-assistant/internal/domain"
	"linux-assistant/internal/repository"
)

// UserService coordina registro, login y consulta de usuarios.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{logger: logger, users: users}
}

// Register crea un usuario nuevo. Email y username deben ser unicos;
// la contraseña se persiste solo como digest bcrypt.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, fmt.Errorf("lookup username: %w", err)
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashBytes),
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		// Carrera contra los indices unicos: el pre-chequeo no alcanzo.
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, ErrDuplicateUser
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	s.logger.Info("user registered", zap.String("user_id", id.Hex()))
	return user, nil
}

// Login valida credenciales. No emite token ni sesion: el cliente debe
// reenviar su user id en cada request posterior.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Get resuelve un usuario por su identificador opaco.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
