package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/solosphere/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie - имя cookie с сессионным токеном.
const SessionCookie = "token"

// DefaultTokenTTL - время жизни токена по умолчанию.
const DefaultTokenTTL = 5 * time.Hour

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionService выпускает и проверяет подписанные сессионные токены.
// Состояние сессии на сервере не хранится.
type SessionService struct {
	secret     []byte
	ttl        time.Duration
	production bool
	now        func() time.Time
}

// NewSessionService создаёт новый экземпляр SessionService.
// В production cookie выставляется с Secure и SameSite=None, иначе SameSite=Strict.
func NewSessionService(secret string, ttl time.Duration, production bool) *SessionService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &SessionService{
		secret:     []byte(secret),
		ttl:        ttl,
		production: production,
		now:        time.Now,
	}
}

// Issue подписывает токен с личностью пользователя.
func (s *SessionService) Issue(identity models.Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify проверяет подпись и срок действия токена.
// Любая ошибка проверки оборачивает models.ErrUnauthorized.
func (s *SessionService) Verify(token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, fmt.Errorf("%w: missing token", models.ErrUnauthorized)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims sessionClaims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}
	return models.Identity{Email: claims.Email}, nil
}

// Cookie возвращает cookie с токеном.
func (s *SessionService) Cookie(token string, expiresAt time.Time) *http.Cookie {
	c := s.baseCookie()
	c.Value = token
	c.Expires = expiresAt
	return c
}

// ClearCookie возвращает cookie, удаляющий токен в браузере.
func (s *SessionService) ClearCookie() *http.Cookie {
	c := s.baseCookie()
	c.MaxAge = -1
	return c
}

func (s *SessionService) baseCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteStrictMode,
	}
	if s.production {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}
