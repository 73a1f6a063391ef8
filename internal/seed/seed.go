// Package seed populates the reference-data collections that feed the
// project form selects.
package seed

import (
	"context"
	"fmt"

	"github.com/linguahub/linguahub/internal/storage"
)

// Data lists the reference values to ensure.
type Data struct {
	Categories []string
	Leads      []string
	Statuses   []string
}

// Defaults returns a starter set of reference data for fresh deployments.
func Defaults() Data {
	return Data{
		Categories: []string{"Legal", "Literary", "Marketing", "Medical", "Technical"},
		Leads:      []string{"Dana Whitfield", "Marco Esposito", "Priya Nair"},
		Statuses:   []string{"Completed", "In Progress", "On Hold", "Open"},
	}
}

// Apply upserts every value in data. It is idempotent; re-running against a
// populated store changes nothing.
func Apply(ctx context.Context, store storage.ReferenceStore, data Data) error {
	for _, name := range data.Categories {
		if err := store.EnsureCategory(ctx, name); err != nil {
			return fmt.Errorf("ensure category %q: %w", name, err)
		}
	}
	for _, name := range data.Leads {
		if err := store.EnsureLead(ctx, name); err != nil {
			return fmt.Errorf("ensure lead %q: %w", name, err)
		}
	}
	for _, name := range data.Statuses {
		if err := store.EnsureStatus(ctx, name); err != nil {
			return fmt.Errorf("ensure status %q: %w", name, err)
		}
	}
	return nil
}
