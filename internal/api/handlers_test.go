package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/api"
	"github.com/rh-rosa-lab/rosactl/internal/auth"
	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/internal/template"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func setupRegistry(t *testing.T) *template.Registry {
	t.Helper()
	loader := template.NewLoader("../template/definitions")
	registry, err := template.NewRegistry(loader)
	require.NoError(t, err)
	return registry
}

func doJSON(e *echo.Echo, handler echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func TestValidateHandler(t *testing.T) {
	e := newEcho()
	handler := api.NewValidateHandler(policy.NewEngine(setupRegistry(t)))

	t.Run("valid config returns valid outcome", func(t *testing.T) {
		body := `{"name":"my-cluster","version":"4.20.0","region":"us-west-2","min_replicas":2,"max_replicas":3}`
		rec := doJSON(e, handler.Validate, http.MethodPost, "/api/validate", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var outcome types.ValidationOutcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
		assert.True(t, outcome.Valid)
		assert.Empty(t, outcome.Errors)
	})

	t.Run("rule failures still return 200", func(t *testing.T) {
		body := `{"name":"","version":"4.19.0","region":"us-west-2","min_replicas":2,"max_replicas":3}`
		rec := doJSON(e, handler.Validate, http.MethodPost, "/api/validate", body)

		require.Equal(t, http.StatusOK, rec.Code)

		var outcome types.ValidationOutcome
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
		assert.False(t, outcome.Valid)
		assert.NotEmpty(t, outcome.Errors)
		assert.NotEmpty(t, outcome.Warnings, "version warning must survive the name error")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		rec := doJSON(e, handler.Validate, http.MethodPost, "/api/validate", `{"name": 12`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetaHandler(t *testing.T) {
	e := newEcho()
	handler := api.NewMetaHandler(setupRegistry(t))

	t.Run("versions", func(t *testing.T) {
		rec := doJSON(e, handler.Versions, http.MethodGet, "/api/versions", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.VersionsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.SupportedVersions, "4.20.0")
		assert.Equal(t, "4.20.0", resp.DefaultVersion)
		assert.Equal(t, "4.20.0", resp.RecommendedVersion)
	})

	t.Run("templates", func(t *testing.T) {
		rec := doJSON(e, handler.Templates, http.MethodGet, "/api/templates", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Templates []*template.Template `json:"templates"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Templates, 2)
	})
}

func TestAuthHandler(t *testing.T) {
	e := newEcho()

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)

	config := api.DefaultServerConfig()
	config.OperatorPasswordHash = hash
	a := auth.NewAuth(config.JWTSecret, time.Hour)
	handler := api.NewAuthHandler(config, a)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login",
			`{"username":"operator","password":"hunter2"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)

		claims, err := a.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "operator", claims.Username)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login",
			`{"username":"operator","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login",
			`{"username":"admin","password":"hunter2"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured operator hash is service unavailable", func(t *testing.T) {
		bare := api.DefaultServerConfig()
		h := api.NewAuthHandler(bare, a)

		rec := doJSON(e, h.Login, http.MethodPost, "/api/auth/login",
			`{"username":"operator","password":"hunter2"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestErrorValidation(t *testing.T) {
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := api.ErrorValidation(c, []string{"first problem", "second problem"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Equal(t, "first problem", resp.Detail)
	assert.Equal(t, []string{"first problem", "second problem"}, resp.Errors)
}
