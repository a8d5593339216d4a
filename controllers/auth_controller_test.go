package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mojay6111/football-signup/models"
	"github.com/mojay6111/football-signup/services"
)

// fakeAdminService 只认一组预置的凭据
type fakeAdminService struct {
	admin    *models.Admin
	password string
}

func (f *fakeAdminService) Authenticate(username, password string) (*models.Admin, error) {
	if f.admin != nil && username == f.admin.Username && password == f.password {
		return f.admin, nil
	}
	return nil, services.ErrInvalidCredentials
}

func (f *fakeAdminService) GetAdminByUsername(username string) (*models.Admin, error) {
	if f.admin != nil && username == f.admin.Username {
		return f.admin, nil
	}
	return nil, nil
}

func (f *fakeAdminService) EnsureDefaultAdmin() error { return nil }

func adminFixture() *fakeAdminService {
	return &fakeAdminService{
		admin:    &models.Admin{ID: 1, Username: "admin"},
		password: "admin123",
	}
}

func TestLoginMissingFields(t *testing.T) {
	r := newTestRouter(t, map[string]interface{}{"admin": adminFixture()})

	w := postForm(r, "/login", "username=admin")

	if w.Code != http.StatusBadRequest || w.Body.String() != "All fields are required." {
		t.Fatalf("期望 400，实际 %d %q", w.Code, w.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRouter(t, map[string]interface{}{"admin": adminFixture()})

	w := postForm(r, "/login", "username=admin&password=wrong")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望401，实际 %d", w.Code)
	}
	if res := w.Result(); len(res.Cookies()) != 0 {
		t.Fatal("失败的登录不应种下会话Cookie")
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	r := newTestRouter(t, map[string]interface{}{"admin": adminFixture()})

	// 未登录时管理页应跳回登录页
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("未登录应302到 /login，实际 %d %q", w.Code, w.Header().Get("Location"))
	}

	// 登录成功后种下Cookie并跳转管理页
	w = postForm(r, "/login", "username=admin&password=admin123")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin" {
		t.Fatalf("登录成功应302到 /admin，实际 %d %q", w.Code, w.Header().Get("Location"))
	}

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("登录成功应种下会话Cookie")
	}

	// 携带Cookie后管理页可以访问
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Admin Panel") {
		t.Fatalf("携带会话应渲染管理页，实际 %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "admin") {
		t.Fatal("管理页应显示当前管理员用户名")
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	r := newTestRouter(t, map[string]interface{}{"admin": adminFixture()})

	w := postForm(r, "/login", "username=admin&password=admin123")
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("登录成功应种下会话Cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("注销应302到 /login，实际 %d", w.Code)
	}

	// 旧Cookie对应的会话已销毁
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("注销后旧会话不应再通过门禁，实际 %d", w.Code)
	}
}

func TestTamperedSessionCookieRejected(t *testing.T) {
	r := newTestRouter(t, map[string]interface{}{"admin": adminFixture()})

	w := postForm(r, "/login", "username=admin&password=admin123")
	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("登录成功应种下会话Cookie")
	}

	sessionCookie.Value += "tampered"
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("被篡改的令牌不应通过门禁，实际 %d", w.Code)
	}
}
