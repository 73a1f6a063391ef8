// Package memory provides an in-memory storage.Store used by tests and the
// demo server mode. It mirrors the MongoDB store's semantics, including
// username uniqueness and idempotent deletes.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/linguahub/linguahub/internal/storage"
)

// Store is a thread-safe in-memory implementation of storage.Store.
type Store struct {
	mu         sync.RWMutex
	users      map[string]storage.User // keyed by lowercased username
	projects   map[string]storage.Project
	projectIDs []string // insertion order for listings
	categories map[string]string
	leads      map[string]string
	statuses   map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:      make(map[string]storage.User),
		projects:   make(map[string]storage.Project),
		categories: make(map[string]string),
		leads:      make(map[string]string),
		statuses:   make(map[string]string),
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close(ctx context.Context) error { return nil }

// CreateUser inserts a user record, enforcing username uniqueness under the
// store lock.
func (s *Store) CreateUser(ctx context.Context, user storage.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return "", storage.ErrDuplicateUsername
	}
	user.ID = uuid.NewString()
	s.users[user.Username] = user
	return user.ID, nil
}

// UserByUsername fetches a user record by lowercased username.
func (s *Store) UserByUsername(ctx context.Context, username string) (storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return user, nil
}

// ListUsernames returns every username sorted ascending.
func (s *Store) ListUsernames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	usernames := make([]string, 0, len(s.users))
	for username := range s.users {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	return usernames, nil
}

// CreateProject inserts a project record and returns its generated id.
func (s *Store) CreateProject(ctx context.Context, project storage.Project) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = uuid.NewString()
	s.projects[project.ID] = project
	s.projectIDs = append(s.projectIDs, project.ID)
	return project.ID, nil
}

// ListProjects returns all project records in insertion order.
func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projects := make([]storage.Project, 0, len(s.projects))
	for _, id := range s.projectIDs {
		if project, ok := s.projects[id]; ok {
			projects = append(projects, project)
		}
	}
	return projects, nil
}

// ProjectByID fetches a project record by id.
func (s *Store) ProjectByID(ctx context.Context, id string) (storage.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return storage.Project{}, storage.ErrNotFound
	}
	return project, nil
}

// ReplaceProject overwrites the record matching id with project.
func (s *Store) ReplaceProject(ctx context.Context, id string, project storage.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return storage.ErrNotFound
	}
	project.ID = id
	s.projects[id] = project
	return nil
}

// DeleteProject removes the record matching id. An absent id is a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.projects, id)
	return nil
}

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]storage.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]storage.Category, 0, len(s.categories))
	for id, name := range s.categories {
		categories = append(categories, storage.Category{ID: id, Name: name})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// ListLeads returns all project leads sorted by name.
func (s *Store) ListLeads(ctx context.Context) ([]storage.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leads := make([]storage.Lead, 0, len(s.leads))
	for id, name := range s.leads {
		leads = append(leads, storage.Lead{ID: id, Name: name})
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].Name < leads[j].Name })
	return leads, nil
}

// ListStatuses returns all status values sorted by name.
func (s *Store) ListStatuses(ctx context.Context) ([]storage.Status, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	statuses := make([]storage.Status, 0, len(s.statuses))
	for id, name := range s.statuses {
		statuses = append(statuses, storage.Status{ID: id, Name: name})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// EnsureCategory upserts a category by name.
func (s *Store) EnsureCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureName(s.categories, name)
	return nil
}

// EnsureLead upserts a project lead by name.
func (s *Store) EnsureLead(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureName(s.leads, name)
	return nil
}

// EnsureStatus upserts a status value by name.
func (s *Store) EnsureStatus(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureName(s.statuses, name)
	return nil
}

func ensureName(records map[string]string, name string) {
	for _, existing := range records {
		if existing == name {
			return
		}
	}
	records[uuid.NewString()] = name
}
