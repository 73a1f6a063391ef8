package web

import (
	"errors"
	"net/http"

	"github.com/linguahub/linguahub/internal/storage"
)

// handleProfile shows the signed-in linguist's record. Anonymous visits are
// redirected to the login page rather than faulting.
func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	linguist, err := h.users.UserByUsername(r.Context(), sess.username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The account behind this session is gone; drop the session.
			h.endSession(w, r)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		h.renderErrorPage(w, r, http.StatusBadGateway, "Profile unavailable", "failed to load profile")
		return
	}

	h.render(w, "profile.html", profileView{
		Page: h.pageView(w, r),
		Linguist: linguist,
	})
}
