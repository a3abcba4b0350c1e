package category

import "errors"

var (
	ErrNotFound    = errors.New("category not found")
	ErrMissingName = errors.New("category name is required")
)

// Category maps to the `categories` table. ParentID is nil for top-level
// categories; nesting is one level deep.
type Category struct {
	ID       int    `json:"category_id"`
	Name     string `json:"name"`
	ParentID *int   `json:"parent_id,omitempty"`
	Ord      int    `json:"ord"`
}

type Repository interface {
	List() ([]Category, error)
	GetByID(id int) (Category, error)
	// ChildIDs returns the ids of the direct children of the category.
	ChildIDs(id int) ([]int, error)
	Create(c Category) (Category, error)
	Update(id int, c Category) (Category, error)
	Delete(id int) error
}
