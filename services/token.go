package services

import (
	"fmt"
	"time"

	apperrors "rentals/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserID string `json:"userid"`
	Role   int    `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenService ký và kiểm tra access token lưu trong cookie phiên
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken trả về token HS256 và thời điểm hết hạn
func (s *TokenService) GenerateToken(userInfo UserInfo) (string, time.Time, error) {
	expiresAt := s.now().Add(s.ttl)
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  s.now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken kiểm tra chữ ký, thuật toán và hạn dùng rồi trả về thông tin user
func (s *TokenService) ParseToken(tokenString string) (*UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}
	if claims.UserInfo.UserID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Không tìm thấy ID user trong token", nil)
	}
	return &claims.UserInfo, nil
}
