package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, uid, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uid,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestParseUserClaims(t *testing.T) {
	token := signToken(t, testSecret, "uid-1", "driver", time.Hour)

	uid, role, err := ParseUserClaims(testSecret, token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if uid != "uid-1" || role != "driver" {
		t.Fatalf("unexpected claims: uid=%q role=%q", uid, role)
	}

	// Bearer prefix is tolerated
	if _, _, err := ParseUserClaims(testSecret, "Bearer "+token); err != nil {
		t.Fatalf("bearer-prefixed token rejected: %v", err)
	}
}

func TestParseUserClaimsRejects(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", "uid-1", "driver", time.Hour)},
		{"expired", signToken(t, testSecret, "uid-1", "driver", -time.Hour)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseUserClaims(testSecret, tc.token); err == nil {
				t.Errorf("expected parse error")
			}
		})
	}
}

func TestWrapRole(t *testing.T) {
	am := NewAuthMiddleware(testSecret)

	var gotUID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = r.Header.Get("X-UserId")
		gotRole = r.Header.Get("X-UserRole")
		w.WriteHeader(http.StatusOK)
	})

	call := func(handler http.Handler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/my-bus", nil)
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	driverToken := signToken(t, testSecret, "uid-1", "driver", time.Hour)

	if rec := call(am.Wrap(next), ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := call(am.Wrap(next), "Bearer broken"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
	if rec := call(am.WrapRole("admin", next), driverToken); rec.Code != http.StatusForbidden {
		t.Fatalf("role mismatch: expected 403, got %d", rec.Code)
	}
	if rec := call(am.WrapRole("driver", next), driverToken); rec.Code != http.StatusOK {
		t.Fatalf("matching role: expected 200, got %d", rec.Code)
	}
	if gotUID != "uid-1" || gotRole != "driver" {
		t.Fatalf("identity headers not forwarded: uid=%q role=%q", gotUID, gotRole)
	}
}
