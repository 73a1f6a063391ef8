package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/linguahub/linguahub/internal/storage"
)

// projectFromForm maps the submitted form onto a project record. Fields are
// copied verbatim as strings; the overdue checkbox is normalized to the
// literal "on" or "off"; the creator comes from the session, never the form.
func projectFromForm(r *http.Request, createdBy string) storage.Project {
	overdue := "off"
	if r.FormValue("project_is_overdue") != "" {
		overdue = "on"
	}
	return storage.Project{
		Name:           r.FormValue("project_name"),
		CategoryName:   r.FormValue("category_name"),
		Lead:           r.FormValue("project_lead"),
		AssignedTo:     r.FormValue("username"),
		Description:    r.FormValue("project_description"),
		Languages:      r.FormValue("project_languages"),
		Specialization: r.FormValue("project_specialization"),
		Software:       r.FormValue("project_software"),
		DueDate:        r.FormValue("project_due_date"),
		Status:         r.FormValue("project_status"),
		IsOverdue:      overdue,
		CreatedBy:      createdBy,
	}
}

// formChoices bundles the reference-data listings for the project forms.
type formChoices struct {
	categories []storage.Category
	leads      []storage.Lead
	usernames  []string
	statuses   []storage.Status
}

func (h *handler) loadFormChoices(ctx context.Context) (formChoices, error) {
	categories, err := h.refdata.ListCategories(ctx)
	if err != nil {
		return formChoices{}, err
	}
	leads, err := h.refdata.ListLeads(ctx)
	if err != nil {
		return formChoices{}, err
	}
	usernames, err := h.users.ListUsernames(ctx)
	if err != nil {
		return formChoices{}, err
	}
	statuses, err := h.refdata.ListStatuses(ctx)
	if err != nil {
		return formChoices{}, err
	}
	return formChoices{categories: categories, leads: leads, usernames: usernames, statuses: statuses}, nil
}

// handleAddProjectForm renders the project creation form with its
// reference-data choices.
func (h *handler) handleAddProjectForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	choices, err := h.loadFormChoices(r.Context())
	if err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Form unavailable", "failed to load form choices")
		return
	}
	h.render(w, "add_project.html", projectFormView{
		Page:       h.pageView(w, r),
		Categories: choices.categories,
		Leads:      choices.leads,
		Usernames:  choices.usernames,
		Statuses:   choices.statuses,
	})
}

// handleAddProjectSubmit creates a project from the submitted form.
func (h *handler) handleAddProjectSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Project creation failed", "failed to parse project form")
		return
	}
	if _, err := h.projects.CreateProject(r.Context(), projectFromForm(r, sess.username)); err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Project creation failed", "failed to save project")
		return
	}
	setFlash(w, "Project Successfully Created")
	http.Redirect(w, r, "/get_projects", http.StatusFound)
}

// handleEditProjectForm renders the edit form pre-filled from the stored
// record. Editing a project that no longer exists reports a flash instead of
// faulting.
func (h *handler) handleEditProjectForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	projectID := strings.TrimSpace(r.PathValue("projectID"))
	project, err := h.projects.ProjectByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			setFlash(w, "Project no longer exists")
			http.Redirect(w, r, "/get_projects", http.StatusFound)
			return
		}
		h.renderErrorPage(w, r, http.StatusBadGateway, "Project unavailable", "failed to load project")
		return
	}
	choices, err := h.loadFormChoices(r.Context())
	if err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Form unavailable", "failed to load form choices")
		return
	}
	h.render(w, "edit_project.html", projectFormView{
		Page:       h.pageView(w, r),
		Project:    project,
		Categories: choices.categories,
		Leads:      choices.leads,
		Usernames:  choices.usernames,
		Statuses:   choices.statuses,
	})
}

// handleEditProjectSubmit fully replaces the stored record with the
// submitted form. Last write wins; there is no optimistic locking.
func (h *handler) handleEditProjectSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderErrorPage(w, r, http.StatusBadRequest, "Project update failed", "failed to parse project form")
		return
	}
	projectID := strings.TrimSpace(r.PathValue("projectID"))
	err := h.projects.ReplaceProject(r.Context(), projectID, projectFromForm(r, sess.username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			setFlash(w, "Project no longer exists")
			http.Redirect(w, r, "/get_projects", http.StatusFound)
			return
		}
		h.renderErrorPage(w, r, http.StatusBadGateway, "Project update failed", "failed to save project")
		return
	}
	setFlash(w, "Project Successfully Updated")
	http.Redirect(w, r, "/get_projects", http.StatusFound)
}

// handleDeleteProject removes the record and returns to the listing.
// Deleting an already-absent project succeeds quietly.
func (h *handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	projectID := strings.TrimSpace(r.PathValue("projectID"))
	if err := h.projects.DeleteProject(r.Context(), projectID); err != nil {
		h.renderErrorPage(w, r, http.StatusBadGateway, "Project deletion failed", "failed to delete project")
		return
	}
	setFlash(w, "Project Successfully Deleted")
	http.Redirect(w, r, "/get_projects", http.StatusFound)
}
