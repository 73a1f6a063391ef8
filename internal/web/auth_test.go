package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/linguahub/linguahub/internal/storage/memory"
)

func newTestApp(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	handler, err := NewHandler(Config{AppName: "LinguaHub"}, Stores{
		Users:     store,
		Projects:  store,
		Reference: store,
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler, store
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, handler http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func registerForm(username string) url.Values {
	return url.Values{
		"full_name":     {"Alice Jones"},
		"email_address": {"alice@example.com"},
		"username":      {username},
		"password":      {"s3cret"},
	}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func register(t *testing.T, handler http.Handler, username string) *http.Cookie {
	t.Helper()
	w := postForm(t, handler, "/register", registerForm(username))
	if w.Code != http.StatusFound {
		t.Fatalf("register status = %d, want %d", w.Code, http.StatusFound)
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("expected session cookie after registration")
	}
	return cookie
}

func TestRegisterStartsSessionAndRedirectsToProfile(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)

	w := postForm(t, handler, "/register", registerForm("Alice"))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/profile" {
		t.Fatalf("location = %q, want %q", location, "/profile")
	}
	if sessionCookie(w) == nil {
		t.Fatal("expected session cookie")
	}

	user, err := store.UserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserByUsername() error = %v", err)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatalf("PasswordHash = %q, want a hash distinct from the plaintext", user.PasswordHash)
	}
}

func TestRegisterDuplicateUsernameRedirectsBack(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	register(t, handler, "alice")

	w := postForm(t, handler, "/register", registerForm("ALICE"))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/register" {
		t.Fatalf("location = %q, want %q", location, "/register")
	}
	if sessionCookie(w) != nil {
		t.Fatal("duplicate registration must not start a session")
	}

	usernames, err := store.ListUsernames(context.Background())
	if err != nil {
		t.Fatalf("ListUsernames() error = %v", err)
	}
	if len(usernames) != 1 {
		t.Fatalf("len(usernames) = %d, want 1", len(usernames))
	}
}

func TestLoginCorrectCredentials(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)
	register(t, handler, "alice")

	w := postForm(t, handler, "/login", url.Values{
		"username": {"ALICE"},
		"password": {"s3cret"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/profile" {
		t.Fatalf("location = %q, want %q", location, "/profile")
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}

	profile := getPath(t, handler, "/profile", cookie)
	if profile.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want %d", profile.Code, http.StatusOK)
	}
	if !strings.Contains(profile.Body.String(), "alice") {
		t.Fatal("expected profile to show the lowercased username")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)
	register(t, handler, "alice")

	w := postForm(t, handler, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Fatalf("location = %q, want %q", location, "/login")
	}
	if sessionCookie(w) != nil {
		t.Fatal("failed login must not start a session")
	}
}

func TestLoginUnknownUsernameMatchesWrongPasswordResponse(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)
	register(t, handler, "alice")

	wrongPassword := postForm(t, handler, "/login", url.Values{
		"username": {"alice"}, "password": {"wrong"},
	})
	unknownUser := postForm(t, handler, "/login", url.Values{
		"username": {"mallory"}, "password": {"s3cret"},
	})

	if wrongPassword.Code != unknownUser.Code {
		t.Fatalf("status mismatch: %d vs %d", wrongPassword.Code, unknownUser.Code)
	}
	if wrongPassword.Header().Get("Location") != unknownUser.Header().Get("Location") {
		t.Fatal("both failure modes must redirect identically")
	}

	followWrong := getPath(t, handler, "/login", wrongPassword.Result().Cookies()...)
	followUnknown := getPath(t, handler, "/login", unknownUser.Result().Cookies()...)
	if followWrong.Body.String() != followUnknown.Body.String() {
		t.Fatal("both failure modes must render the same message")
	}
}

func TestProfileAnonymousRedirectsToLogin(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)

	w := getPath(t, handler, "/profile")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Fatalf("location = %q, want %q", location, "/login")
	}
}

func TestLogoutEndsSession(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)
	cookie := register(t, handler, "alice")

	w := getPath(t, handler, "/logout", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/login" {
		t.Fatalf("location = %q, want %q", location, "/login")
	}

	after := getPath(t, handler, "/profile", cookie)
	if after.Code != http.StatusFound {
		t.Fatalf("profile status after logout = %d, want redirect", after.Code)
	}
}
