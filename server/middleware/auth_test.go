package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authEngine(cfg AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Auth(cfg))
	engine.GET("/parts/search", func(c *gin.Context) {
		subject := c.GetString("subject")
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func stubValidator(valid string) func(string) (map[string]interface{}, error) {
	return func(token string) (map[string]interface{}, error) {
		if token != valid {
			return nil, errors.New("bad token")
		}
		return map[string]interface{}{"subject": "user-1", "role": "editor"}, nil
	}
}

func TestAuth(t *testing.T) {
	cfg := AuthConfig{
		TokenValidator: stubValidator("good-token"),
		SkipPaths:      []string{"/health"},
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid token", "/parts/search", "Bearer good-token", http.StatusOK},
		{"invalid token", "/parts/search", "Bearer bad-token", http.StatusUnauthorized},
		{"missing header", "/parts/search", "", http.StatusUnauthorized},
		{"wrong scheme", "/parts/search", "Basic abc", http.StatusUnauthorized},
		{"skip path", "/health", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			authEngine(cfg).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAuthStoresClaims(t *testing.T) {
	engine := authEngine(AuthConfig{TokenValidator: stubValidator("tok")})

	req := httptest.NewRequest(http.MethodGet, "/parts/search", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"subject":"user-1"}` {
		t.Errorf("body = %s", body)
	}
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(RateLimitConfig{Rate: 1, Burst: 2}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests = %v, want first two allowed", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}
}

func TestRequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header not set")
	}

	// A caller-provided id is preserved.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "given-id")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "given-id" {
		t.Errorf("X-Request-Id = %q, want caller id preserved", got)
	}
}
