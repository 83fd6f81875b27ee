package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-service/internal/config"
	"blog-service/internal/database"
	"blog-service/internal/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "handler-test-secret"

// setupServer 起一个带内存库的完整路由
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:      testJWTSecret,
			Issuer:      "blog-service-test",
			ExpireHours: 1,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
	return router.SetupRouter(cfg, db)
}

// doJSON 发送 JSON 请求，token 非空时带 Bearer 头
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doJSONRequest 只构造请求不发送，调用方可以再加 cookie 等
func doJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decode 把响应体解析成 map
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}

// registerAndLogin 注册并登录，返回可用的 token
func registerAndLogin(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"full_name": "Test User",
		"password":  password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}

	token, _ := decode(t, w)["access_token"].(string)
	if token == "" {
		t.Fatal("login 应返回 access_token")
	}
	return token
}
