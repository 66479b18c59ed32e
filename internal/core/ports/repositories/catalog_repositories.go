package repositories

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
)

// CatalogReader reads the item catalog the legacy list view classified against.
type CatalogReader interface {
	// FindCatalogCategories returns the current category of each named item that exists.
	FindCatalogCategories(ctx context.Context, itemNames []string) (map[string]domain.CatalogCategory, error)
}
