package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/linguahub/linguahub/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Page carries the context shared by every rendered page. It is embedded
// exported so the template engine can reach its promoted fields.
type Page struct {
	AppName  string
	Flash    string
	Username string
}

type projectsView struct {
	Page
	Projects []storage.Project
}

type profileView struct {
	Page
	Linguist storage.User
}

// projectFormView feeds both the add and edit project forms with the
// reference-data choices for the select widgets.
type projectFormView struct {
	Page
	Project    storage.Project
	Categories []storage.Category
	Leads      []storage.Lead
	Usernames  []string
	Statuses   []storage.Status
}

type errorView struct {
	Page
	Title   string
	Message string
}

func (h *handler) render(w http.ResponseWriter, name string, view any) {
	if err := templates.ExecuteTemplate(w, name, view); err != nil {
		http.Error(w, "failed to render "+name, http.StatusInternalServerError)
	}
}

func (h *handler) renderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	// Assemble the view before WriteHeader: pageView consumes the flash
	// cookie, and Set-Cookie has no effect once headers are flushed.
	view := errorView{
		Page:    h.pageView(w, r),
		Title:   title,
		Message: message,
	}
	w.WriteHeader(status)
	h.render(w, "error.html", view)
}

// pageView assembles the shared page context, consuming any pending flash.
func (h *handler) pageView(w http.ResponseWriter, r *http.Request) Page {
	view := Page{
		AppName: h.config.AppName,
		Flash:   popFlash(w, r),
	}
	if sess := sessionFromRequest(r, h.sessions); sess != nil {
		view.Username = sess.username
	}
	return view
}
