package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentals/constants"
	apperrors "rentals/errors"
	"rentals/models"
	"rentals/services/logger"
	"rentals/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

// UserStore là phần lưu trữ user mà AuthService cần
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

// GoogleVerifier kiểm tra Google ID token
type GoogleVerifier interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

type googleVerifier struct{}

func (googleVerifier) Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error) {
	return idtoken.Validate(ctx, idToken, audience)
}

// Session là kết quả đăng nhập thành công
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthServiceOptions struct {
	Users          UserStore
	Tokens         *TokenService
	GoogleClientID string
	Verifier       GoogleVerifier
	Logger         logger.Logger
}

// AuthService đăng nhập admin bằng mật khẩu hoặc Google
type AuthService struct {
	users          UserStore
	tokens         *TokenService
	googleClientID string
	verifier       GoogleVerifier
	logger         logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	verifier := opts.Verifier
	if verifier == nil {
		verifier = googleVerifier{}
	}
	return &AuthService{
		users:          opts.Users,
		tokens:         opts.Tokens,
		googleClientID: opts.GoogleClientID,
		verifier:       verifier,
		logger:         opts.Logger,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func invalidCredentials(err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "Invalid email or password", err)
}

// Login kiểm tra email/mật khẩu; không phân biệt "sai email" với "sai mật khẩu"
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, invalidCredentials(err)
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, invalidCredentials(apperrors.ErrInvalidPassword)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials(apperrors.ErrInvalidPassword)
	}
	return s.startSession(ctx, user)
}

// LoginWithGoogle chỉ cho phép email đã có tài khoản
func (s *AuthService) LoginWithGoogle(ctx context.Context, rawToken string) (*Session, error) {
	if s.googleClientID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Google sign-in is not configured", apperrors.ErrUnauthorized)
	}
	payload, err := s.verifier.Validate(ctx, rawToken, s.googleClientID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google token", err)
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		s.logger.Warn("Đăng nhập Google bị từ chối cho %s", email)
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserNotFound, "Account not found", err)
	}
	if err != nil {
		return nil, err
	}

	if picture, _ := payload.Claims["picture"].(string); picture != "" && user.Avatar == "" {
		user.Avatar = picture
		if err := s.users.Save(ctx, user); err != nil {
			s.logger.Warn("Không thể cập nhật avatar cho %s: %v", user.ID, err)
		}
	}
	return s.startSession(ctx, user)
}

func (s *AuthService) startSession(ctx context.Context, user *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(UserInfo{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("Không thể cập nhật last_login_at cho %s: %v", user.ID, err)
	}
	s.logger.Info("User %s đăng nhập", user.ID)
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate đọc token của phiên và trả về user hiện tại
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	info, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, info.UserID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Session user not found", err)
	}
	return user, nil
}

// CreateAdmin tạo tài khoản admin; email đã tồn tại thì báo lỗi
func (s *AuthService) CreateAdmin(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Missing required field: email", apperrors.ErrMissingRequired)
	}
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserExists, "User already exists", nil)
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
	}
	if user.Name == "" {
		user.Name = "Admin"
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("Đã tạo admin %s", email)
	return user, nil
}
