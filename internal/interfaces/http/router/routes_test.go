package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/identity"
	"github.com/jaysam/backend/internal/infrastructure/auth"
	"github.com/jaysam/backend/internal/interfaces/http/handler"
	"github.com/jaysam/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newTestEngine wires the real route table behind a stand-in auth
// middleware that injects claims for the given role. Handlers run over
// nil services, so requests are crafted to fail binding when a gate
// lets them through: a 400 proves passage, a 403 proves denial.
func newTestEngine(role identity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authStub := func(c *gin.Context) {
		claims := &auth.Claims{
			UserID: uuid.NewString(),
			Email:  "user@jaysam.test",
			Role:   role.String(),
		}
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Set(middleware.JWTEmailKey, claims.Email)
		c.Set(middleware.JWTRoleKey, claims.Role)
		c.Next()
	}

	handlers := Handlers{
		System:  handler.NewSystemHandler(nil, nil),
		Auth:    handler.NewAuthHandler(nil, zap.NewNop()),
		Product: handler.NewProductHandler(nil),
		Cart:    handler.NewCartHandler(nil),
		Order:   handler.NewOrderHandler(nil, nil),
		User:    handler.NewUserHandler(nil),
	}

	engine := gin.New()
	NewRoutes(handlers, authStub).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func performRequest(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestProductAdminGate(t *testing.T) {
	t.Run("clients and employees are denied", func(t *testing.T) {
		for _, role := range []identity.Role{identity.RoleClient, identity.RoleEmployee} {
			engine := newTestEngine(role)
			w := performRequest(engine, http.MethodPost, "/api/v1/admin/products", "{}")
			assert.Equal(t, http.StatusForbidden, w.Code, "role %s", role)
		}
	})

	t.Run("managers and above reach the handler", func(t *testing.T) {
		for _, role := range []identity.Role{identity.RoleManager, identity.RoleAdmin, identity.RoleCEO} {
			engine := newTestEngine(role)
			w := performRequest(engine, http.MethodPost, "/api/v1/admin/products", "{}")
			assert.Equal(t, http.StatusBadRequest, w.Code, "role %s", role)
		}
	})
}

func TestOrderStatusGate(t *testing.T) {
	target := "/api/v1/admin/orders/" + uuid.NewString() + "/status"

	t.Run("employees may not update order status", func(t *testing.T) {
		engine := newTestEngine(identity.RoleEmployee)
		w := performRequest(engine, http.MethodPut, target, "{}")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("managers reach the status handler", func(t *testing.T) {
		engine := newTestEngine(identity.RoleManager)
		w := performRequest(engine, http.MethodPut, target, "{}")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employees may still list all orders", func(t *testing.T) {
		engine := newTestEngine(identity.RoleEmployee)
		w := performRequest(engine, http.MethodGet, "/api/v1/admin/orders?status=Bogus", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("clients may not list all orders", func(t *testing.T) {
		engine := newTestEngine(identity.RoleClient)
		w := performRequest(engine, http.MethodGet, "/api/v1/admin/orders?status=Bogus", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserAdminGate(t *testing.T) {
	t.Run("managers are denied", func(t *testing.T) {
		engine := newTestEngine(identity.RoleManager)
		w := performRequest(engine, http.MethodGet, "/api/v1/admin/users/not-a-uuid", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins reach the handler", func(t *testing.T) {
		engine := newTestEngine(identity.RoleAdmin)
		w := performRequest(engine, http.MethodGet, "/api/v1/admin/users/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
