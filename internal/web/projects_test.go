package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/linguahub/linguahub/internal/storage"
)

func projectForm(name, status string, overdue bool) url.Values {
	form := url.Values{
		"project_name":           {name},
		"category_name":          {"Legal"},
		"project_lead":           {"Dana"},
		"username":               {"alice"},
		"project_description":    {"Contract translation"},
		"project_languages":      {"EN > FR"},
		"project_specialization": {"Contracts"},
		"project_software":       {"memoQ"},
		"project_due_date":       {"2026-09-15"},
		"project_status":         {status},
	}
	if overdue {
		form.Set("project_is_overdue", "on")
	}
	return form
}

func TestProjectListingIsPublic(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)

	for _, path := range []string{"/", "/get_projects"} {
		w := getPath(t, handler, path)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want %d", path, w.Code, http.StatusOK)
		}
	}
}

func TestAddProjectRequiresSession(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)

	form := getPath(t, handler, "/add_project")
	if form.Code != http.StatusFound || form.Header().Get("Location") != "/login" {
		t.Fatalf("GET /add_project = %d -> %q, want redirect to /login", form.Code, form.Header().Get("Location"))
	}

	submit := postForm(t, handler, "/add_project", projectForm("Doc1", "open", false))
	if submit.Code != http.StatusFound || submit.Header().Get("Location") != "/login" {
		t.Fatalf("POST /add_project = %d -> %q, want redirect to /login", submit.Code, submit.Header().Get("Location"))
	}

	projects, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("len(projects) = %d, want 0", len(projects))
	}
}

func TestAddProjectNormalizesOverdueAndRecordsCreator(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	cookie := register(t, handler, "alice")

	w := postForm(t, handler, "/add_project", projectForm("Doc1", "open", false), cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/get_projects" {
		t.Fatalf("location = %q, want %q", location, "/get_projects")
	}

	projects, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("len(projects) = %d, want 1", len(projects))
	}
	got := projects[0]
	if got.IsOverdue != "off" {
		t.Fatalf("IsOverdue = %q, want %q when the checkbox is absent", got.IsOverdue, "off")
	}
	if got.CreatedBy != "alice" {
		t.Fatalf("CreatedBy = %q, want %q", got.CreatedBy, "alice")
	}
	if got.Name != "Doc1" || got.Status != "open" || got.DueDate != "2026-09-15" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestAddProjectOverdueChecked(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	cookie := register(t, handler, "alice")

	postForm(t, handler, "/add_project", projectForm("Doc1", "open", true), cookie)

	projects, err := store.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].IsOverdue != "on" {
		t.Fatalf("projects = %+v, want one record with overdue on", projects)
	}
}

func TestEditProjectReplacesRecord(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	cookie := register(t, handler, "alice")
	ctx := context.Background()

	id, err := store.CreateProject(ctx, storage.Project{Name: "Doc1", Status: "open", IsOverdue: "off", CreatedBy: "alice"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	w := postForm(t, handler, "/edit_project/"+id, projectForm("Doc1", "closed", true), cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}

	got, err := store.ProjectByID(ctx, id)
	if err != nil {
		t.Fatalf("ProjectByID() error = %v", err)
	}
	if got.Status != "closed" || got.IsOverdue != "on" {
		t.Fatalf("record = %+v, want status closed and overdue on", got)
	}
}

func TestEditProjectFormPrefilled(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	cookie := register(t, handler, "alice")

	id, err := store.CreateProject(context.Background(), storage.Project{Name: "Doc1", Status: "open"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	w := getPath(t, handler, "/edit_project/"+id, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Doc1") {
		t.Fatal("expected edit form to be pre-filled with the project name")
	}
}

func TestEditMissingProjectRedirectsWithFlash(t *testing.T) {
	t.Parallel()
	handler, _ := newTestApp(t)
	cookie := register(t, handler, "alice")

	w := postForm(t, handler, "/edit_project/missing", projectForm("Doc1", "open", false), cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if location := w.Header().Get("Location"); location != "/get_projects" {
		t.Fatalf("location = %q, want %q", location, "/get_projects")
	}

	cookies := append(w.Result().Cookies(), cookie)
	listing := getPath(t, handler, "/get_projects", cookies...)
	if !strings.Contains(listing.Body.String(), "Project no longer exists") {
		t.Fatal("expected a flash explaining the project is gone")
	}
}

func TestDeleteProjectIdempotentRoute(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	cookie := register(t, handler, "alice")
	ctx := context.Background()

	id, err := store.CreateProject(ctx, storage.Project{Name: "Doc1"})
	if err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	first := getPath(t, handler, "/delete_project/"+id, cookie)
	if first.Code != http.StatusFound {
		t.Fatalf("first delete status = %d, want %d", first.Code, http.StatusFound)
	}
	if _, err := store.ProjectByID(ctx, id); err == nil {
		t.Fatal("expected the project to be gone")
	}

	second := getPath(t, handler, "/delete_project/"+id, cookie)
	if second.Code != http.StatusFound {
		t.Fatalf("second delete status = %d, want %d", second.Code, http.StatusFound)
	}
}

// TestProjectLifecycle walks the full register, create, edit, delete
// scenario end to end.
func TestProjectLifecycle(t *testing.T) {
	t.Parallel()
	handler, store := newTestApp(t)
	ctx := context.Background()

	cookie := register(t, handler, "Alice")

	profile := getPath(t, handler, "/profile", cookie)
	if profile.Code != http.StatusOK || !strings.Contains(profile.Body.String(), "alice") {
		t.Fatalf("profile = %d, want active session as alice", profile.Code)
	}

	if w := postForm(t, handler, "/add_project", projectForm("Doc1", "open", false), cookie); w.Code != http.StatusFound {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusFound)
	}
	projects, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(projects) != 1 || projects[0].IsOverdue != "off" {
		t.Fatalf("projects = %+v, want one record with overdue off", projects)
	}
	id := projects[0].ID

	if w := postForm(t, handler, "/edit_project/"+id, projectForm("Doc1", "closed", true), cookie); w.Code != http.StatusFound {
		t.Fatalf("edit status = %d, want %d", w.Code, http.StatusFound)
	}
	updated, err := store.ProjectByID(ctx, id)
	if err != nil {
		t.Fatalf("ProjectByID() error = %v", err)
	}
	if updated.Status != "closed" || updated.IsOverdue != "on" {
		t.Fatalf("updated = %+v, want status closed and overdue on", updated)
	}

	if w := getPath(t, handler, "/delete_project/"+id, cookie); w.Code != http.StatusFound {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusFound)
	}
	remaining, err := store.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("len(remaining) = %d, want 0", len(remaining))
	}
}
