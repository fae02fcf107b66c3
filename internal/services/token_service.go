package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onside-finance/onside/internal/models"
	"github.com/onside-finance/onside/internal/repository"
	"go.uber.org/zap"
)

const tokenIssuer = "onside"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrTokenNotFound = errors.New("token not found")
)

type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues signed bearer tokens and keeps a server-side record of
// each one so they can be listed and revoked.
type TokenService struct {
	tokenRepo     *repository.TokenRepository
	jwtSecret     string
	defaultExpiry time.Duration
}

func NewTokenService(tokenRepo *repository.TokenRepository, jwtSecret string, defaultExpiry time.Duration) *TokenService {
	return &TokenService{
		tokenRepo:     tokenRepo,
		jwtSecret:     jwtSecret,
		defaultExpiry: defaultExpiry,
	}
}

// GenerateToken signs and stores a token for user. A non-positive expiresIn
// uses the configured default.
func (s *TokenService) GenerateToken(user *models.User, expiresIn time.Duration) (*models.APIToken, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrUserNotFound
	}
	if expiresIn <= 0 {
		expiresIn = s.defaultExpiry
	}

	now := time.Now()
	expiresAt := now.Add(expiresIn)
	claims := TokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			// two tokens minted in the same second would otherwise be identical
			ID:     strconv.FormatInt(now.UnixNano(), 36),
			Issuer: tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	apiToken := &models.APIToken{
		UserID:    user.ID,
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := s.tokenRepo.Create(apiToken); err != nil {
		return nil, err
	}

	return apiToken, nil
}

// ValidateToken checks the signature and the stored record and returns the
// user the token was issued to.
func (s *TokenService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if _, ok := token.Claims.(*TokenClaims); !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	dbToken, err := s.tokenRepo.FindByToken(tokenString)
	if err != nil {
		return nil, err
	}
	if dbToken == nil {
		// revoked, expired, or the owner is gone
		return nil, ErrInvalidToken
	}

	if err := s.tokenRepo.Touch(dbToken.ID, time.Now()); err != nil {
		zap.L().Warn("failed to record token use", zap.Uint("token_id", dbToken.ID), zap.Error(err))
	}

	return &dbToken.User, nil
}

func (s *TokenService) ListUserTokens(userID uint) ([]models.APIToken, error) {
	return s.tokenRepo.FindByUserID(userID)
}

func (s *TokenService) DeleteToken(tokenID, userID uint) error {
	deleted, err := s.tokenRepo.Delete(tokenID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}

// PurgeExpired removes stored tokens past their expiry.
func (s *TokenService) PurgeExpired() (int64, error) {
	n, err := s.tokenRepo.DeleteExpired()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		zap.L().Info("purged expired api tokens", zap.Int64("count", n))
	}
	return n, nil
}
