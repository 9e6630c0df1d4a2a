package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/phuslu/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/repository"
)

// AuthService checks credentials and issues and verifies session tokens.
// Tokens are fernet tokens carrying the username and store id; they expire
// after the configured TTL.
type AuthService struct {
	storeRepo *repository.StoreRepository
	keys      []*fernet.Key
	ttl       time.Duration
}

// NewAuthService creates a new AuthService. keys must hold at least one key;
// the first one signs new tokens, all of them verify.
func NewAuthService(storeRepo *repository.StoreRepository, keys []*fernet.Key, ttl time.Duration) *AuthService {
	return &AuthService{
		storeRepo: storeRepo,
		keys:      keys,
		ttl:       ttl,
	}
}

// SessionKeys decodes a base64 fernet key. An empty string yields a freshly
// generated key, so tokens will not survive a restart.
func SessionKeys(encoded string) ([]*fernet.Key, error) {
	if strings.TrimSpace(encoded) == "" {
		var k fernet.Key
		if err := k.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		log.Warn().Msg("SESSION_KEY not set, using a random key for this process")
		return []*fernet.Key{&k}, nil
	}

	keys, err := fernet.DecodeKeys(strings.Split(encoded, ",")...)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_KEY: %w", err)
	}
	return keys, nil
}

// Login verifies a username/password pair and returns a session token.
// Unknown users and wrong passwords both yield apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, model.User, error) {
	user, err := s.storeRepo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return "", model.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.User{}, apperrors.ErrInvalidCredentials
	}

	token, err := s.Issue(model.Session{Username: user.Username, StoreID: user.StoreID})
	if err != nil {
		return "", model.User{}, err
	}
	return token, user, nil
}

// Issue signs a session into a token.
func (s *AuthService) Issue(session model.Session) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	tok, err := fernet.EncryptAndSign(payload, s.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return string(tok), nil
}

// Authenticate verifies a token and returns the session it carries.
func (s *AuthService) Authenticate(token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, apperrors.ErrMissingToken
	}
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, s.keys)
	if payload == nil {
		return model.Session{}, apperrors.ErrInvalidToken
	}

	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil || session.StoreID == "" {
		return model.Session{}, apperrors.ErrInvalidToken
	}
	return session, nil
}

// CreateUser creates a store named after the user and a user mapped to it.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, apperrors.ErrInvalidCredentials
	}

	if _, err := s.storeRepo.GetUserByUsername(ctx, username); err == nil {
		return model.User{}, apperrors.ErrUserExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	store, err := s.storeRepo.CreateStore(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	return s.storeRepo.CreateUser(ctx, username, string(hash), store.ID)
}

// GetUser returns the user behind a session.
func (s *AuthService) GetUser(ctx context.Context, session model.Session) (model.User, error) {
	return s.storeRepo.GetUserByUsername(ctx, session.Username)
}
