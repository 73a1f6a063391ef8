package web

import (
	"fmt"
	"net/http"
)

// incorrectCredentials is deliberately identical for unknown usernames and
// wrong passwords so login responses do not enumerate accounts.
const incorrectCredentials = "Incorrect Username and/or Password"

// handleLoginForm renders the login form.
func (h *handler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", h.pageView(w, r))
}

// handleLoginSubmit verifies credentials and starts a session bound to the
// lowercased username. Failed logins never start a session.
func (h *handler) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Login failed", "failed to parse login form")
		return
	}

	typed := r.FormValue("username")
	user, ok, err := h.creds.Verify(r.Context(), typed, r.FormValue("password"))
	if err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Login failed", "failed to verify credentials")
		return
	}
	if !ok {
		setFlash(w, incorrectCredentials)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	h.startSession(w, user.Username)
	setFlash(w, fmt.Sprintf("Welcome, %s", typed))
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// handleLogout ends the session and returns to the login page.
func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.endSession(w, r)
	setFlash(w, "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusFound)
}
