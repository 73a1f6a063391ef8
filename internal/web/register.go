package web

import (
	"errors"
	"net/http"

	"github.com/linguahub/linguahub/internal/storage"
)

// handleRegisterForm renders the linguist registration form.
func (h *handler) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", h.pageView(w, r))
}

// handleRegisterSubmit creates a linguist account and starts a session.
// A duplicate username redirects back to the form with a conflict message;
// the storage layer guarantees no second record is created.
func (h *handler) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Registration failed", "failed to parse registration form")
		return
	}

	user := storage.User{
		FullName:        r.FormValue("full_name"),
		EmailAddress:    r.FormValue("email_address"),
		SourceLanguages: r.FormValue("source_languages"),
		TargetLanguage:  r.FormValue("target_language"),
		BillingInfo:     r.FormValue("billing_info"),
		PaypalAccount:   r.FormValue("paypal_account"),
		Username:        r.FormValue("username"),
	}

	registered, err := h.creds.Register(r.Context(), user, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			setFlash(w, "Username already exists")
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}
		h.renderErrorPage(w, r, http.StatusBadGateway, "Registration failed", "failed to create account")
		return
	}

	h.startSession(w, registered.Username)
	setFlash(w, "Registration Successful!")
	http.Redirect(w, r, "/profile", http.StatusFound)
}
