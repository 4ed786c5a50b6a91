// auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LilVoxy/lostfound_chat/config"
)

// Ошибки проверки токенов
var (
	ErrInvalidToken = errors.New("недействительный токен")
	ErrExpiredToken = errors.New("срок действия токена истек")
	ErrWrongType    = errors.New("токен неподходящего типа")
)

// Типы токенов в паре
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims — полезная нагрузка токена
type Claims struct {
	UserID    int    `json:"uid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair — пара токенов, выдаваемая клиенту.
// Access короткоживущий, refresh используется для его обновления.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenManager выдает и проверяет пары JWT-токенов
type TokenManager struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

// NewTokenManager создает менеджер токенов из конфигурации
func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:          []byte(cfg.Secret),
		accessLifetime:  cfg.AccessLifetime,
		refreshLifetime: cfg.RefreshLifetime,
	}
}

// IssuePair выдает новую пару access/refresh для пользователя
func (tm *TokenManager) IssuePair(userID int) (*TokenPair, error) {
	access, err := tm.sign(userID, tokenTypeAccess, tm.accessLifetime)
	if err != nil {
		return nil, err
	}

	refresh, err := tm.sign(userID, tokenTypeRefresh, tm.refreshLifetime)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ValidateAccess проверяет access-токен и возвращает ID пользователя
func (tm *TokenManager) ValidateAccess(tokenString string) (int, error) {
	claims, err := tm.parse(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.TokenType != tokenTypeAccess {
		return 0, ErrWrongType
	}
	return claims.UserID, nil
}

// Refresh проверяет refresh-токен и выдает новую пару.
// Старая пара при этом считается использованной: клиент обязан
// сохранить новый refresh-токен (ротация).
func (tm *TokenManager) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := tm.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, ErrWrongType
	}
	return tm.IssuePair(claims.UserID)
}

// sign подписывает токен указанного типа и срока жизни
func (tm *TokenManager) sign(userID int, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// parse разбирает и проверяет подпись токена
func (tm *TokenManager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
