package category

import "errors"

var (
	ErrEmptyName        = errors.New("category name cannot be empty")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)
