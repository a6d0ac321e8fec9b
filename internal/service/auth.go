package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/validation"
)

const AuthCookieName = "auth_token"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// RegisterInput carries the registration form. DOB, Age and ProfilePicture
// are optional.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Skills         string
	Purpose        string
	Contact        string
	ProfilePicture string
	DOB            *time.Time
	Age            *int
}

type AuthService struct {
	db                     *sqlx.DB
	userRepository         repository.UserRepository
	notificationRepository repository.NotificationRepository
	emailService           *EmailService
	jwtSecret              string
	isProduction           bool
	jwtExpiry              time.Duration
	bcryptCost             int
	dummyHash              []byte
}

func NewAuthService(
	db *sqlx.DB,
	userRepository repository.UserRepository,
	notificationRepository repository.NotificationRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
) *AuthService {
	s := &AuthService{
		db:                     db,
		userRepository:         userRepository,
		notificationRepository: notificationRepository,
		emailService:           emailService,
		jwtSecret:              jwtSecret,
		isProduction:           isProduction,
		jwtExpiry:              jwtExpiry,
		bcryptCost:             bcrypt.DefaultCost,
	}
	// Compared against when the email is unknown so both failure paths cost the same.
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("skillswap-dummy-password"), s.bcryptCost)
	return s
}

// Register creates the account and its welcome notification in one transaction.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Email = validation.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	err := validation.ValidateName(in.Name)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidateEmail(in.Email)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidatePassword(in.Password)
	if err != nil {
		return nil, invalid(err)
	}
	err = validation.ValidateContact(in.Contact)
	if err != nil {
		return nil, invalid(err)
	}

	_, err = s.userRepository.ByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *model.User
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		users := s.userRepository.WithTx(tx)
		err := users.Create(ctx, &model.User{
			Name:           in.Name,
			Skills:         strings.TrimSpace(in.Skills),
			Purpose:        strings.TrimSpace(in.Purpose),
			Contact:        strings.TrimSpace(in.Contact),
			ProfilePicture: in.ProfilePicture,
			DOB:            in.DOB,
			Age:            in.Age,
			Email:          in.Email,
			PasswordHash:   hash,
		})
		if err != nil {
			return err
		}

		user, err = users.ByEmail(ctx, in.Email)
		if err != nil {
			return err
		}

		return s.notificationRepository.WithTx(tx).Create(ctx, &model.Notification{
			UserID:  user.ID,
			Message: fmt.Sprintf("Welcome to Skill Swap, %s!", user.Name),
		})
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if s.emailService != nil {
		err = s.emailService.SendWelcomeEmail(ctx, user.Email, user.Name)
		if err != nil {
			slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
		}
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.userRepository.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateJWT returns a signed session token and its expiry.
func (s *AuthService) GenerateJWT(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(user.ID, 10),
		"email":   user.Email,
		"exp":     expiry.Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiry, nil
}

// VerifyJWT validates the token and returns the user id it was issued for.
func (s *AuthService) VerifyJWT(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
