package services

import (
	"fmt"
	"strings"
	"time"

	"loja/internal/models"
	"loja/internal/repositories"
	"loja/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when login is attempted with empty
// credentials. The mocked backend accepts anything else.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// AuthError wraps an unexpected internal fault during login or register.
// The mocked backend never produces one on purpose, but callers must
// handle the possibility.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// seedUser is the known identity the mocked backend resolves when its
// email is used to log in.
var seedUser = models.User{
	ID:    "user-1",
	Name:  "Usuário Teste",
	Email: "usuario@teste.com",
	Address: &models.Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01234-567",
	},
}

// ProfileUpdate carries the fields UpdateProfile merges into the current
// identity; nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string         `json:"name,omitempty"`
	Email   *string         `json:"email,omitempty"`
	Address *models.Address `json:"address,omitempty"`
}

// AuthService implements the mocked authentication flow: any non-empty
// credentials resolve to an identity, the current identity persists in the
// session store, and a JWT carries it between requests.
type AuthService struct {
	userRepo   repositories.UserRepository
	store      session.Store
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, store session.Store, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Login resolves an identity for the given credentials and establishes a
// session. The seed identity is returned for its known email and a
// previously registered user gets their stored identity back; any other
// email yields an identity synthesized from its local part. Empty
// credentials fail with ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	var user models.User
	switch {
	case email == seedUser.Email:
		user = seedUser
	default:
		if registered, err := s.userRepo.GetByEmail(email); err == nil && registered != nil {
			user = *registered
		} else {
			local, _, _ := strings.Cut(email, "@")
			user = models.User{
				ID:    uuid.New().String(),
				Name:  local,
				Email: email,
			}
		}
	}

	if err := s.store.Save(&user); err != nil {
		return nil, "", &AuthError{Op: "login", Err: err}
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", &AuthError{Op: "login", Err: err}
	}
	return &user, token, nil
}

// Register synthesizes a new identity, persists it with the credential
// hashed, and establishes a session.
func (s *AuthService) Register(name, email, password string) (*models.User, string, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, "", fmt.Errorf("email '%s' already registered", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", &AuthError{Op: "register", Err: fmt.Errorf("failed to hash password: %w", err)}
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, "", &AuthError{Op: "register", Err: err}
	}

	if err := s.store.Save(&user); err != nil {
		return nil, "", &AuthError{Op: "register", Err: err}
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", &AuthError{Op: "register", Err: err}
	}
	return &user, token, nil
}

// Logout clears the current session. Idempotent.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// Current returns the persisted session identity, or nil when no session
// is active.
func (s *AuthService) Current() (*models.User, error) {
	return s.store.Load()
}

// UpdateProfile merges the given fields into the current identity and
// persists the result. Without an active session it is a no-op and
// returns nil.
func (s *AuthService) UpdateProfile(update ProfileUpdate) (*models.User, error) {
	user, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Address != nil {
		addr := *update.Address
		user.Address = &addr
	}

	if err := s.store.Save(user); err != nil {
		return nil, err
	}
	// Registered identities also keep their repository record in sync;
	// synthesized ones exist only in the session.
	if _, repoErr := s.userRepo.GetByID(user.ID); repoErr == nil {
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

// SaveAddress attaches an address to the identity with the given id. Used
// by checkout's save-address opt-in; only touches the session store when
// the current session belongs to that user.
func (s *AuthService) SaveAddress(userID string, address models.Address) error {
	current, err := s.store.Load()
	if err != nil {
		return err
	}
	if current != nil && current.ID == userID {
		addr := address
		current.Address = &addr
		if err := s.store.Save(current); err != nil {
			return err
		}
	}
	if user, repoErr := s.userRepo.GetByID(userID); repoErr == nil {
		addr := address
		user.Address = &addr
		return s.userRepo.Update(user)
	}
	return nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
