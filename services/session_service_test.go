package services

import (
	"testing"
	"time"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/models"
)

func newSessionFixture(ttl time.Duration) (*SessionService, *MemorySessionStore) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	store := NewMemorySessionStore()
	return NewSessionService(store, NewJWTService(cfg), ttl), store
}

func TestSessionLifecycle(t *testing.T) {
	svc, store := newSessionFixture(time.Hour)
	admin := &models.Admin{ID: 7, Username: "admin"}

	token, err := svc.CreateSession(admin)
	if err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("期望存储1个会话，实际 %d", store.Len())
	}

	session, ok := svc.ResolveToken(token)
	if !ok {
		t.Fatal("有效令牌应解析出会话")
	}
	if session.AdminID != 7 || session.Username != "admin" {
		t.Fatalf("会话绑定不符: %+v", session)
	}

	if err := svc.DestroyToken(token); err != nil {
		t.Fatalf("销毁会话失败: %v", err)
	}
	if _, ok := svc.ResolveToken(token); ok {
		t.Fatal("销毁后的令牌不应再解析出会话")
	}
}

func TestResolveTokenRejectsGarbage(t *testing.T) {
	svc, _ := newSessionFixture(time.Hour)

	if _, ok := svc.ResolveToken("not-a-token"); ok {
		t.Fatal("乱码令牌不应通过校验")
	}

	// 用另一个密钥签出的令牌也应被拒绝
	otherCfg := &config.Config{JWTSecretKey: "other-secret"}
	otherJWT := NewJWTService(otherCfg)
	token, err := otherJWT.GenerateSessionToken("some-id", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	if _, ok := svc.ResolveToken(token); ok {
		t.Fatal("异源签名的令牌不应通过校验")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	session := &Session{
		ID:        "expired",
		AdminID:   1,
		Username:  "admin",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := store.Put(session); err != nil {
		t.Fatalf("写入会话失败: %v", err)
	}

	if _, ok := store.Get("expired"); ok {
		t.Fatal("过期会话不应命中")
	}
	// 过期会话在读取时被惰性清除
	if store.Len() != 0 {
		t.Fatalf("期望会话被清除，实际存储 %d 个", store.Len())
	}
}

func TestJWTSessionTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateSessionToken("session-42", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	sessionID, err := svc.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if sessionID != "session-42" {
		t.Fatalf("会话ID不符: %q", sessionID)
	}
}

func TestJWTSessionTokenExpired(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}
	svc := NewJWTService(cfg)

	token, err := svc.GenerateSessionToken("session-42", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}

	if _, err := svc.ParseSessionToken(token); err == nil {
		t.Fatal("过期令牌应解析失败")
	}
}
