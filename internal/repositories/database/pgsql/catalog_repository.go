package pgsql

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogReader {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogReader = (*PgxCatalogRepository)(nil)

// FindCatalogCategories looks up the catalog flag for each name. Missing items are absent from the map.
func (r *PgxCatalogRepository) FindCatalogCategories(ctx context.Context, itemNames []string) (map[string]domain.CatalogCategory, error) {
	result := make(map[string]domain.CatalogCategory, len(itemNames))
	if len(itemNames) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT name, category FROM catalog_items WHERE name = ANY($1);`, itemNames)
	if err != nil {
		return nil, apperrors.NewIOError("failed to query catalog items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.CatalogItem
		if err := rows.Scan(&m.Name, &m.Category); err != nil {
			return nil, apperrors.NewIOError("failed to scan catalog item row", err)
		}
		result[m.Name] = domain.CatalogCategory(m.Category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewIOError("error iterating catalog rows", err)
	}
	return result, nil
}
