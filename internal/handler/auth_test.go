package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"blog-service/internal/util"
)

func TestRegister(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     "a@x.com",
		"full_name": "A",
		"password":  "p1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	resp := decode(t, w)
	if id, _ := resp["id"].(float64); id == 0 {
		t.Error("响应里应有非零 id")
	}
	if resp["email"] != "a@x.com" {
		t.Errorf("email = %v, want a@x.com", resp["email"])
	}
	// 任何形式的密码字段都不能出现在响应里
	if strings.Contains(strings.ToLower(w.Body.String()), "password") {
		t.Errorf("响应不应包含密码字段: %s", w.Body.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "a@x.com", "p1")

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     "A@X.COM",
		"full_name": "A again",
		"password":  "p2",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_BadEmail(t *testing.T) {
	r := setupServer(t)

	for _, email := range []string{"", "not-an-email", "a@"} {
		w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
			"email":    email,
			"password": "p1",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("email %q: status = %d, want 400", email, w.Code)
		}
	}
}

func TestLogin(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "a@x.com", "p1")

	// token 的 subject 必须解析回登录的那个用户
	w := doJSON(t, r, http.MethodGet, "/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/me status = %d, body = %s", w.Code, w.Body.String())
	}
	if resp := decode(t, w); resp["email"] != "a@x.com" {
		t.Errorf("/me email = %v, want a@x.com", resp["email"])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "a@x.com", "p1")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// 不存在的用户和密码错误返回同样的状态
	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "p1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLogin_SetsCookie(t *testing.T) {
	r := setupServer(t)

	doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "a@x.com",
		"password": "p1",
	})
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "p1",
	})

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "access_token=") {
		t.Errorf("登录应写入 access_token cookie: %q", cookie)
	}
	if resp := decode(t, w); resp["token_type"] != "bearer" {
		t.Errorf("token_type = %v, want bearer", resp["token_type"])
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "access_token=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Errorf("登出应清除 access_token cookie: %q", cookie)
	}
}

func TestProtected_MissingToken(t *testing.T) {
	r := setupServer(t)

	for _, path := range []string{"/blogs/", "/users/", "/me"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, w.Code)
		}
	}
}

func TestProtected_ExpiredToken(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "a@x.com", "p1")

	expired, err := util.GenerateToken(testJWTSecret, "blog-service-test", "a@x.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/me", expired, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtected_UnknownSubject(t *testing.T) {
	r := setupServer(t)

	// 签名合法但用户不存在
	token, err := util.GenerateToken(testJWTSecret, "blog-service-test", "ghost@x.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/me", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtected_CookieCarrier(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "a@x.com", "p1")

	req := doJSONRequest(t, http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Errorf("cookie 方式访问 status = %d, want 200", w.Code)
	}
}
