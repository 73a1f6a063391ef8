package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const sessionCookieName = "linguahub_session"

// session holds data for an authenticated web session. Exactly one username
// is bound per client session.
type session struct {
	username  string
	expiresAt time.Time
}

// sessionStore is a thread-safe in-memory session store.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// newSessionStore creates an empty session store.
func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*session)}
}

// create stores a new session bound to username and returns its ID.
func (s *sessionStore) create(username string, expiresAt time.Time) string {
	id := randomHex(16)
	s.mu.Lock()
	s.sessions[id] = &session{username: username, expiresAt: expiresAt}
	s.mu.Unlock()
	return id
}

// get returns a session by ID, or nil if missing or expired.
func (s *sessionStore) get(id string) *session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(sess.expiresAt) {
		s.delete(id)
		return nil
	}
	return sess
}

// delete removes a session by ID.
func (s *sessionStore) delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// sessionFromRequest reads the session cookie and looks up the session.
// Callers must branch on the nil (anonymous) case before using the result.
func sessionFromRequest(r *http.Request, store *sessionStore) *session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return store.get(cookie.Value)
}

// setSessionCookie writes the session cookie to the response.
func setSessionCookie(w http.ResponseWriter, id string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func clearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// randomHex returns n random bytes hex-encoded.
func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic("failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
