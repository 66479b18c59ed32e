package domain

// CatalogCategory is the legacy catalog flag: Debit items bring money in, Credit items take it out.
type CatalogCategory string

const (
	CatalogDebit  CatalogCategory = "Debit"
	CatalogCredit CatalogCategory = "Credit"
)

// CatalogItem is a sellable/expensable item as configured in the catalog.
type CatalogItem struct {
	Name     string          `json:"name"`
	Category CatalogCategory `json:"category"`
}
