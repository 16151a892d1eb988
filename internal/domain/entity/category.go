package entity

// Category representa una categoría de productos. El nombre es único por
// cuenta (constraint compuesto account_id+name).
type Category struct {
	ID          string
	AccountID   string
	Name        string
	Description string
}
