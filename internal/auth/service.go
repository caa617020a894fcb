package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

const tokenLifetime = 7 * 24 * time.Hour

// Service handles registration, login, and token validation.
type Service struct {
	db        *gorm.DB
	jwtSecret []byte
}

// NewService builds an auth service over the given database.
func NewService(db *gorm.DB, jwtSecret string) *Service {
	return &Service{db: db, jwtSecret: []byte(jwtSecret)}
}

// Claims is the JWT payload issued at registration and login.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	UserType models.UserType `json:"userType"`
}

// Register creates an account and returns the user with a signed
// token. Email uniqueness is checked before insert; the database
// unique index backs it up.
func (s *Service) Register(input RegisterInput) (*models.User, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" {
		return nil, "", apierrors.ValidationError("name", "name is required")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, "", apierrors.ValidationError("email", "a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, "", apierrors.ValidationError("password", "password must be at least 6 characters")
	}

	var existing models.User
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, "", apierrors.Conflict("an account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apierrors.InternalError("failed to create account")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apierrors.InternalError("failed to create account")
	}

	userType := input.UserType
	if userType != models.UserTypeBusiness {
		userType = models.UserTypeIndividual
	}

	user := models.User{
		Name:                 input.Name,
		Email:                input.Email,
		Password:             string(hashed),
		UserType:             userType,
		NotificationSettings: models.DefaultNotificationSettings(),
		PrivacySettings:      models.DefaultPrivacySettings(),
		FeedPreferences:      models.DefaultFeedPreferences(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", apierrors.InternalError("failed to create account")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", apierrors.InternalError("failed to issue token")
	}
	return &user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", apierrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apierrors.Unauthorized("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", apierrors.InternalError("failed to issue token")
	}
	return &user, token, nil
}

// ValidateToken parses and verifies a token, returning the user ID it
// was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", apierrors.Unauthorized("invalid or expired token")
	}
	return claims.UserID, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
