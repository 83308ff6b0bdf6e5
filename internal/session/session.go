// Package session keeps admin login state and flash messages in Redis.
// The browser only holds a signed token naming the session id.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"table_order/internal/auth"
	"table_order/internal/redis"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "table_order_session"
	sessionKey = "session"
)

type Store interface {
	SetSession(ctx context.Context, sessionID string, data *redis.SessionData, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(store Store, secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, secure: secure}
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Session struct {
	ID      string
	Data    *redis.SessionData
	manager *Manager
}

func (s *Session) Principal() auth.Principal {
	return auth.Principal{RestaurantID: s.Data.RestaurantID, RestaurantName: s.Data.RestaurantName}
}

func (s *Session) save(ctx context.Context) error {
	s.Data.UpdatedAt = time.Now().UTC()
	return s.manager.store.SetSession(ctx, s.ID, s.Data, s.manager.ttl)
}

// AddFlash queues a one-shot message for the next rendered page.
func (s *Session) AddFlash(ctx context.Context, category, message string) error {
	s.Data.Flashes = append(s.Data.Flashes, redis.Flash{Category: category, Message: message})
	return s.save(ctx)
}

// Flashes returns and clears the queued messages.
func (s *Session) Flashes(ctx context.Context) []redis.Flash {
	flashes := s.Data.Flashes
	if len(flashes) == 0 {
		return nil
	}
	s.Data.Flashes = nil
	_ = s.save(ctx)
	return flashes
}

// Load resolves the caller's session from its cookie, minting a new one
// when the cookie is missing or invalid, and attaches it to c.
func (m *Manager) Load(c *gin.Context) *Session {
	s := m.resolve(c)
	c.Set(sessionKey, s)
	return s
}

func (m *Manager) resolve(c *gin.Context) *Session {
	ctx := c.Request.Context()
	if token, err := c.Cookie(CookieName); err == nil {
		if sid, err := m.parse(token); err == nil {
			data, err := m.store.GetSession(ctx, sid)
			if err != nil {
				data = &redis.SessionData{CreatedAt: time.Now().UTC()}
			}
			return &Session{ID: sid, Data: data, manager: m}
		}
	}

	s := &Session{ID: uuid.NewString(), Data: &redis.SessionData{CreatedAt: time.Now().UTC()}, manager: m}
	m.writeCookie(c, s.ID)
	return s
}

// Login binds the restaurant to a fresh session id so a pre-login id
// cannot be reused.
func (m *Manager) Login(c *gin.Context, restaurantID uint, restaurantName string) error {
	ctx := c.Request.Context()
	old := Current(c)
	if old != nil {
		_ = m.store.DeleteSession(ctx, old.ID)
	}

	s := &Session{
		ID:      uuid.NewString(),
		Data:    &redis.SessionData{CreatedAt: time.Now().UTC(), RestaurantID: restaurantID, RestaurantName: restaurantName},
		manager: m,
	}
	if old != nil {
		s.Data.Flashes = old.Data.Flashes
	}
	if err := s.save(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	m.writeCookie(c, s.ID)
	c.Set(sessionKey, s)
	auth.SetPrincipal(c, s.Principal())
	return nil
}

// Logout drops the identity but keeps the session for flash messages.
func (m *Manager) Logout(c *gin.Context) error {
	s := Current(c)
	if s == nil {
		return nil
	}
	s.Data.RestaurantID = 0
	s.Data.RestaurantName = ""
	auth.SetPrincipal(c, auth.Principal{})
	return s.save(c.Request.Context())
}

func (m *Manager) writeCookie(c *gin.Context, sid string) {
	token, err := m.sign(sid)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

func (m *Manager) sign(sid string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

func (m *Manager) parse(tokenStr string) (string, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(tokenStr, parsed, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	if parsed.SessionID == "" {
		return "", errors.New("session token without id")
	}
	return parsed.SessionID, nil
}

// Current returns the session attached by Load, or nil.
func Current(c *gin.Context) *Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// Flash adds a message to the current session, if any.
func Flash(c *gin.Context, category, message string) {
	if s := Current(c); s != nil {
		_ = s.AddFlash(c.Request.Context(), category, message)
	}
}
