package models

// CatalogItem is a row of the catalog_items table.
type CatalogItem struct {
	Name     string `db:"name"`
	Category string `db:"category"`
}
