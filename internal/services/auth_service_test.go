package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"annapurna/internal/domain"
	"annapurna/internal/repos"
	"annapurna/internal/services"
)

const testSecret = "test-secret"

func memdbAuth(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:", 1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newAuth(t *testing.T) (*services.AuthService, *sqlx.DB) {
	db := memdbAuth(t)
	return services.NewAuthService(repos.NewUserRepo(db), testSecret), db
}

func signup(t *testing.T, auth *services.AuthService, empID, email, accountType string) *domain.User {
	t.Helper()
	u, err := auth.Signup(services.SignupInput{
		EmployeeID:  empID,
		FullName:    "Test User",
		Email:       email,
		Password:    "Passw0rd!",
		AccountType: accountType,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return u
}

func TestSignupAndLogin(t *testing.T) {
	auth, db := newAuth(t)

	u := signup(t, auth, "EMP-1001", "asha@pantry.test", "customer")
	if u.ID == "" || len(u.VerificationToken) != 64 {
		t.Fatalf("bad signup result: %+v", u)
	}

	var hash string
	if err := db.Get(&hash, `SELECT password_hash FROM users WHERE id=?`, u.ID); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(hash, "Passw0rd!") || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("password not bcrypt-hashed: %s", hash)
	}

	got, token, err := auth.Login("asha@pantry.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID || token == "" {
		t.Fatalf("bad login result: user=%+v token=%q", got, token)
	}

	if _, _, err := auth.Login("asha@pantry.test", "wrongpass!"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, _, err := auth.Login("nobody@pantry.test", "Passw0rd!"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds for unknown email, got %v", err)
	}
}

func TestDuplicateSignupRejected(t *testing.T) {
	auth, _ := newAuth(t)
	signup(t, auth, "EMP-1001", "asha@pantry.test", "customer")

	_, err := auth.Signup(services.SignupInput{
		EmployeeID: "EMP-2002", FullName: "Other", Email: "asha@pantry.test",
		Password: "Passw0rd!", AccountType: "customer",
	})
	if err != services.ErrDuplicateUser {
		t.Fatalf("want ErrDuplicateUser for duplicate email, got %v", err)
	}

	_, err = auth.Signup(services.SignupInput{
		EmployeeID: "EMP-1001", FullName: "Other", Email: "other@pantry.test",
		Password: "Passw0rd!", AccountType: "customer",
	})
	if err != services.ErrDuplicateUser {
		t.Fatalf("want ErrDuplicateUser for duplicate employee id, got %v", err)
	}
}

func TestSingleVendorInvariant(t *testing.T) {
	auth, db := newAuth(t)
	signup(t, auth, "EMP-9001", "vendor@pantry.test", "vendor")

	_, err := auth.Signup(services.SignupInput{
		EmployeeID: "EMP-9002", FullName: "Second Vendor", Email: "vendor2@pantry.test",
		Password: "Passw0rd!", AccountType: "vendor",
	})
	if err != services.ErrVendorExists {
		t.Fatalf("want ErrVendorExists, got %v", err)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE account_type='vendor'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want exactly 1 vendor row, got %d", n)
	}

	// Customers are unaffected by the vendor cap.
	signup(t, auth, "EMP-9003", "cust@pantry.test", "customer")
}

// The store rejects a second vendor row with a unique violation on the
// account_type partial index, and that error classifies as a vendor
// conflict rather than a duplicate user.
func TestVendorConflictClassification(t *testing.T) {
	db := memdbAuth(t)
	users := repos.NewUserRepo(db)

	mk := func(n string) *domain.User {
		return &domain.User{
			ID: "u-" + n, EmployeeID: "EMP-" + n, FullName: "Vendor " + n,
			Email: n + "@pantry.test", Hash: "x", AccountType: domain.AccountVendor,
		}
	}
	if err := users.Create(mk("one")); err != nil {
		t.Fatal(err)
	}
	err := users.Create(mk("two"))
	if err == nil {
		t.Fatal("second vendor insert must fail")
	}
	if !repos.IsVendorConflict(err) {
		t.Fatalf("want vendor conflict classification, got: %v", err)
	}
}

func TestTokenResolveFailsClosed(t *testing.T) {
	auth, _ := newAuth(t)
	u := signup(t, auth, "EMP-1001", "asha@pantry.test", "customer")

	token, err := auth.IssueToken(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	got, err := auth.CurrentUser(token)
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("valid token should resolve: user=%+v err=%v", got, err)
	}

	// Malformed
	if got, err := auth.CurrentUser("not-a-token"); err != nil || got != nil {
		t.Fatalf("malformed token should resolve to nil, got %+v err=%v", got, err)
	}

	// Tampered signature
	tampered := token[:len(token)-2] + "xx"
	if got, err := auth.CurrentUser(tampered); err != nil || got != nil {
		t.Fatalf("tampered token should resolve to nil, got %+v err=%v", got, err)
	}

	// Wrong key
	otherAuth := services.NewAuthService(auth.Users, "other-secret")
	otherTok, _ := otherAuth.IssueToken(u.ID)
	if got, err := auth.CurrentUser(otherTok); err != nil || got != nil {
		t.Fatalf("foreign-key token should resolve to nil, got %+v err=%v", got, err)
	}

	// Expired
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if got, err := auth.CurrentUser(expired); err != nil || got != nil {
		t.Fatalf("expired token should resolve to nil, got %+v err=%v", got, err)
	}

	// Valid token for a deleted user
	orphan, _ := auth.IssueToken("no-such-user")
	if got, err := auth.CurrentUser(orphan); err != nil || got != nil {
		t.Fatalf("token for missing user should resolve to nil, got %+v err=%v", got, err)
	}
}

func TestForgotPassword(t *testing.T) {
	auth, db := newAuth(t)
	u := signup(t, auth, "EMP-1001", "asha@pantry.test", "customer")

	if _, err := auth.ForgotPassword("nobody@pantry.test"); err != services.ErrUserNotFound {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	token, err := auth.ForgotPassword("asha@pantry.test")
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 64 {
		t.Fatalf("want 256-bit hex token, got %q", token)
	}

	var row struct {
		Token   string `db:"reset_token"`
		Expires string `db:"reset_token_expires"`
	}
	if err := db.Get(&row, `SELECT reset_token, reset_token_expires FROM users WHERE id=?`, u.ID); err != nil {
		t.Fatal(err)
	}
	if row.Token != token {
		t.Fatalf("stored token mismatch: %q vs %q", row.Token, token)
	}
	exp, err := time.Parse(time.RFC3339, row.Expires)
	if err != nil {
		t.Fatalf("bad expiry %q: %v", row.Expires, err)
	}
	ttl := time.Until(exp)
	if ttl <= 50*time.Minute || ttl > time.Hour {
		t.Fatalf("want ~1h reset expiry, got %v", ttl)
	}
}
