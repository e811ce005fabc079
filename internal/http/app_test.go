package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"annapurna/internal/http/handlers"
	applog "annapurna/internal/log"
	"annapurna/internal/repos"
	"annapurna/internal/services"
)

// newTestApp assembles the real route table over an in-memory store.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:", 1)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := services.NewAuthService(repos.NewUserRepo(db), "test-secret")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		},
	})
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, authSvc)

	app.Post("/auth/signup", deps.AuthHandler.Signup)
	app.Post("/auth/login", deps.AuthHandler.Login)
	app.Post("/auth/forgot-password", deps.AuthHandler.ForgotPassword)

	app.Get("/user/profile", handlers.RequireUser(authSvc), deps.AuthHandler.Profile)

	app.Get("/items/all", handlers.RequireUser(authSvc), deps.ItemHandler.All)
	app.Get("/items/available", handlers.RequireUser(authSvc), deps.ItemHandler.Available)
	app.Post("/items/create", handlers.RequireVendor(authSvc), deps.ItemHandler.Create)
	app.Get("/items/daily", handlers.RequireVendor(authSvc), deps.ItemHandler.Daily)
	app.Post("/items/daily", handlers.RequireVendor(authSvc), deps.ItemHandler.Restock)

	app.Get("/orders/my-orders", handlers.RequireCustomer(authSvc), deps.OrderHandler.MyOrders)
	app.Post("/orders/place", handlers.RequireCustomer(authSvc), deps.OrderHandler.Place)
	app.Get("/orders/vendor", handlers.RequireVendor(authSvc), deps.OrderHandler.VendorOrders)
	app.Put("/orders/:id/status", handlers.RequireVendor(authSvc), deps.OrderHandler.UpdateStatus)

	app.Get("/notifications", handlers.RequireUser(authSvc), deps.NotificationHandler.List)
	app.Put("/notifications/:id/read", handlers.RequireUser(authSvc), deps.NotificationHandler.MarkRead)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	return app, db
}

func jsonReq(method, path, token string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// signupAndLogin registers a user over HTTP and returns its bearer token.
func signupAndLogin(t *testing.T, app *fiber.App, employeeID, email, accountType string) string {
	t.Helper()
	resp := do(t, app, jsonReq("POST", "/auth/signup", "", fiber.Map{
		"employeeId":  employeeID,
		"fullName":    "Test User",
		"email":       email,
		"password":    "Passw0rd!",
		"accountType": accountType,
	}))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup %s: status %d", email, resp.StatusCode)
	}

	resp = do(t, app, jsonReq("POST", "/auth/login", "", fiber.Map{
		"email":    email,
		"password": "Passw0rd!",
	}))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned no token")
	}
	return body.Token
}
