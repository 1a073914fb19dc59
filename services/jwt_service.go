package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wedding-hall-server/config"
	"wedding-hall-server/database"
	"wedding-hall-server/models"
	"wedding-hall-server/types"
)

// JWTService handles access and refresh token operations
type JWTService struct{}

// NewJWTService creates a new JWT service
func NewJWTService() *JWTService {
	return &JWTService{}
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GenerateTokenPair generates both access and refresh tokens
func (js *JWTService) GenerateTokenPair(user *models.User, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := js.generateRefreshToken(user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// generateAccessToken generates a short-lived access token carrying the role
func (js *JWTService) generateAccessToken(user *models.User) (string, int64, error) {
	claims := &types.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.AppConfig.JWT.ExpiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "wedding-hall-server",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(config.AppConfig.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	expiresIn := int64(config.AppConfig.JWT.ExpiryHours * 3600)
	return tokenString, expiresIn, nil
}

// generateRefreshToken generates a long-lived refresh token
func (js *JWTService) generateRefreshToken(userID uint, userAgent, ipAddress string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := database.DB.Create(refreshToken).Error; err != nil {
		return "", err
	}

	log.Printf("✅ Refresh token generated for user %d", userID)
	return tokenString, nil
}

// ValidateRefreshToken validates a refresh token
func (js *JWTService) ValidateRefreshToken(tokenString string) (*models.RefreshToken, error) {
	var refreshToken models.RefreshToken

	if err := database.DB.Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}

	if !refreshToken.IsValid() {
		return nil, errors.New("refresh token is invalid or expired")
	}

	return &refreshToken, nil
}

// RefreshAccessToken generates a new access token using a refresh token
func (js *JWTService) RefreshAccessToken(refreshTokenString string) (*TokenPair, error) {
	refreshToken, err := js.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.DB.First(&user, refreshToken.UserID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	accessToken, expiresIn, err := js.generateAccessToken(&user)
	if err != nil {
		return nil, err
	}

	refreshToken.UpdatedAt = time.Now()
	database.DB.Save(refreshToken)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString, // Keep the same refresh token
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// RevokeRefreshToken revokes a refresh token
func (js *JWTService) RevokeRefreshToken(tokenString string) error {
	var refreshToken models.RefreshToken

	if err := database.DB.Where("token = ?", tokenString).First(&refreshToken).Error; err != nil {
		return errors.New("refresh token not found")
	}

	refreshToken.Revoke()
	database.DB.Save(&refreshToken)

	log.Printf("✅ Refresh token revoked for user %d", refreshToken.UserID)
	return nil
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (js *JWTService) RevokeAllUserTokens(userID uint) error {
	if err := database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error; err != nil {
		return err
	}

	log.Printf("✅ All refresh tokens revoked for user %d", userID)
	return nil
}

// CleanupExpiredTokens removes expired refresh and password reset tokens
func (js *JWTService) CleanupExpiredTokens() error {
	if err := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{}).Error; err != nil {
		return err
	}
	if err := database.DB.Where("expires_at < ?", time.Now()).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return err
	}

	log.Printf("✅ Expired tokens cleaned up")
	return nil
}
