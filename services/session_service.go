package services

import (
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/models"
)

// SessionCookieName 承载会话令牌的Cookie名称
const SessionCookieName = "signup_session"

// Session 服务端持有的会话数据，绑定已认证的管理员
type Session struct {
	ID        string    `json:"id"`
	AdminID   uint      `json:"admin_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired 会话是否已过期
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// InterfaceSessionStore 会话存储接口，按会话ID存取
type InterfaceSessionStore interface {
	Put(session *Session) error
	Get(id string) (*Session, bool)
	Delete(id string) error
}

// MemorySessionStore 进程内会话存储，随进程重启清空
type MemorySessionStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemorySessionStore 创建内存会话存储
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// Put 写入会话
func (s *MemorySessionStore) Put(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Get 读取会话，过期的会话惰性清除
func (s *MemorySessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if session.Expired() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return session, true
}

// Delete 删除会话
func (s *MemorySessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len 当前存活的会话数
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RedisSessionStore 基于Redis的会话存储，由Redis的TTL负责过期
type RedisSessionStore struct {
	redis *RedisService
}

// NewRedisSessionStore 创建Redis会话存储
func NewRedisSessionStore(redisService *RedisService) *RedisSessionStore {
	return &RedisSessionStore{redis: redisService}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Put 写入会话
func (s *RedisSessionStore) Put(session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	return s.redis.Set(sessionKey(session.ID), session, ttl)
}

// Get 读取会话
func (s *RedisSessionStore) Get(id string) (*Session, bool) {
	var session Session
	if err := s.redis.Get(sessionKey(id), &session); err != nil {
		if !errors.Is(err, redis.Nil) {
			config.Warning("读取Redis会话失败: %v", err)
		}
		return nil, false
	}
	if session.Expired() {
		return nil, false
	}
	return &session, true
}

// Delete 删除会话
func (s *RedisSessionStore) Delete(id string) error {
	return s.redis.Delete(sessionKey(id))
}

// InterfaceSessionService 定义会话服务接口
type InterfaceSessionService interface {
	CreateSession(admin *models.Admin) (string, error)
	ResolveToken(token string) (*Session, bool)
	DestroyToken(token string) error
	TTL() time.Duration
}

// SessionService 管理会话生命周期：签发Cookie令牌并维护服务端会话记录
type SessionService struct {
	store InterfaceSessionStore
	jwt   InterfaceJWTService
	ttl   time.Duration
}

// NewSessionService 创建一个新的会话服务
func NewSessionService(store InterfaceSessionStore, jwtService InterfaceJWTService, ttl time.Duration) *SessionService {
	return &SessionService{
		store: store,
		jwt:   jwtService,
		ttl:   ttl,
	}
}

// CreateSession 为认证成功的管理员创建会话并返回Cookie令牌
func (s *SessionService) CreateSession(admin *models.Admin) (string, error) {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Put(session); err != nil {
		return "", err
	}

	return s.jwt.GenerateSessionToken(session.ID, session.ExpiresAt)
}

// ResolveToken 校验Cookie令牌并返回其绑定的会话
func (s *SessionService) ResolveToken(token string) (*Session, bool) {
	sessionID, err := s.jwt.ParseSessionToken(token)
	if err != nil {
		return nil, false
	}
	return s.store.Get(sessionID)
}

// DestroyToken 销毁令牌对应的会话
func (s *SessionService) DestroyToken(token string) error {
	sessionID, err := s.jwt.ParseSessionToken(token)
	if err != nil {
		// 无法解析的令牌没有对应会话，无需处理
		return nil
	}
	return s.store.Delete(sessionID)
}

// TTL 返回会话有效期
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
