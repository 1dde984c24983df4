package services

import (
	"agency/internal/database"
	"agency/internal/logger"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token       string    `json:"token"`
	AgentID     string    `json:"agentId"`
	Login       string    `json:"login"`
	DisplayName string    `json:"displayName"`
	IsAdmin     bool      `json:"isAdmin"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// SessionService stores agent sessions in the session cache, or in process memory when the
// cache is disabled.
type SessionService struct {
	db    database.DB
	ttl   time.Duration
	local map[string]Session
	mu    sync.Mutex
	log   logger.Logger
}

func NewSessionService(db database.DB, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{
		db:    db,
		ttl:   ttl,
		local: map[string]Session{},
		log:   logger.New("SessionService"),
	}
}

func (s *SessionService) Create(ctx context.Context, session Session) (Session, error) {
	log := s.log.Function("Create")

	session.Token = uuid.New().String()
	session.ExpiresAt = time.Now().Add(s.ttl)

	if s.db.Cache.Session == nil {
		s.mu.Lock()
		s.local[session.Token] = session
		s.mu.Unlock()
		return session, nil
	}

	if err := database.NewCacheBuilder(s.db.Cache.Session, database.SessionCacheKey(session.Token)).
		WithStruct(session).
		WithTTL(s.ttl).
		WithContext(ctx).
		Set(); err != nil {
		return Session{}, log.Err("failed to store session", err, "agentID", session.AgentID)
	}

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, token string) (Session, bool, error) {
	if token == "" {
		return Session{}, false, nil
	}

	if s.db.Cache.Session == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		session, ok := s.local[token]
		if ok && time.Now().After(session.ExpiresAt) {
			delete(s.local, token)
			return Session{}, false, nil
		}
		return session, ok, nil
	}

	var session Session
	found, err := database.NewCacheBuilder(s.db.Cache.Session, database.SessionCacheKey(token)).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return Session{}, false, s.log.Function("Get").Err("failed to read session", err)
	}

	return session, found, nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	if s.db.Cache.Session == nil {
		s.mu.Lock()
		delete(s.local, token)
		s.mu.Unlock()
		return nil
	}

	if err := database.NewCacheBuilder(s.db.Cache.Session, database.SessionCacheKey(token)).
		WithContext(ctx).
		Delete(); err != nil {
		return s.log.Function("Delete").Err("failed to delete session", err)
	}
	return nil
}
