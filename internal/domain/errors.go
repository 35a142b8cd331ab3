package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id has no row.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when a category id has no row.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrAlertNotFound is returned when an alert id has no row.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrProductHasSales blocks deletion of a product with recorded sales.
	ErrProductHasSales = errors.New("product has recorded sales and cannot be deleted")
)
