package handlers_test

import (
	"testing"
)

func TestAccessDeniedLogs(t *testing.T) {
	app := newApp(t)
	john := login(t, app, "john@example.com")

	entries := captureLogs(t, func() {
		call(t, app, "GET", "/api/v1/users", nil, john)
	})
	e, ok := findLog(entries, "access.denied.admin")
	if !ok {
		t.Fatalf("expected access.denied.admin log, got %+v", entries)
	}
	if e.UserID != "1" || e.Level != "warn" {
		t.Fatalf("denial not attributed: %+v", e)
	}

	// jane's sofa is not john's to close
	entries = captureLogs(t, func() {
		call(t, app, "PUT", "/api/v1/products/2/sold", nil, john)
	})
	if _, ok := findLog(entries, "access.denied.listing.sold"); !ok {
		t.Fatalf("expected access.denied.listing.sold log, got %+v", entries)
	}
}

func TestModerationIsAudited(t *testing.T) {
	app := newApp(t)
	admin := login(t, app, "admin@example.com")

	entries := captureLogs(t, func() {
		call(t, app, "PUT", "/api/v1/users/1/ban", nil, admin)
		call(t, app, "DELETE", "/api/v1/products/4", nil, admin)
	})
	ban, ok := findLog(entries, "admin.users.ban")
	if !ok || ban.Level != "audit" || ban.Fields["user_id"] != "1" {
		t.Fatalf("ban not audited: %+v", entries)
	}
	if _, ok := findLog(entries, "listing.delete"); !ok {
		t.Fatalf("delete not audited: %+v", entries)
	}
}

func TestLoginFailureLogged(t *testing.T) {
	app := newApp(t)
	entries := captureLogs(t, func() {
		call(t, app, "POST", "/api/v1/auth/login", map[string]string{"email": "ghost@example.com", "password": "x"}, "")
	})
	e, ok := findLog(entries, "auth.login.fail")
	if !ok || e.Fields["email"] != "ghost@example.com" {
		t.Fatalf("expected auth.login.fail, got %+v", entries)
	}
}
