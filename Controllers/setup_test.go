package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"OpsBoard/FiberConfig"
	"OpsBoard/Models"
	"OpsBoard/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a fresh in-memory database and an app with the real
// routing and middleware chain. The package-level Models.DB is pointed
// at the test database because the auth guards read it.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))
	Models.DB = db

	app := fiber.New()
	FiberConfig.SetupRoutes(app, db)
	return app, db
}

func createAdmin(t *testing.T, db *gorm.DB, email string) Models.Admin {
	t.Helper()

	admin := Models.Admin{Name: "Admin " + email, Email: email}
	require.NoError(t, admin.SetPassword("adminpass"))
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func createOperator(t *testing.T, db *gorm.DB, name, email string) Models.OperationTeamMember {
	t.Helper()

	operator := Models.OperationTeamMember{Name: name, Email: email}
	require.NoError(t, operator.SetPassword("operatorpass"))
	require.NoError(t, db.Create(&operator).Error)
	return operator
}

func login(t *testing.T, app *fiber.App, email, password, role string) string {
	t.Helper()

	resp := do(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.TokenCookie {
			return cookie.Value
		}
	}
	t.Fatal("login response carried no token cookie")
	return ""
}

func do(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
