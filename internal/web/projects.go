package web

import "net/http"

// handleProjects renders the public project listing.
func (h *handler) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.ListProjects(r.Context())
	if err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Projects unavailable", "failed to load projects")
		return
	}
	h.render(w, "projects.html", projectsView{
		Page: h.pageView(w, r),
		Projects: projects,
	})
}
