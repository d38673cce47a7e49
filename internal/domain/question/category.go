package question

import "fmt"

// Category groups questions for navigation.
type Category struct {
	id   string
	name string
}

// NewCategory validates and creates a Category. An empty name falls back to the ID.
func NewCategory(id, name string) (Category, error) {
	if id == "" {
		return Category{}, fmt.Errorf("category ID is required")
	}
	if name == "" {
		name = id
	}
	return Category{id: id, name: name}, nil
}

// ID returns the category identifier referenced by Question.Category.
func (c *Category) ID() string { return c.id }

// Name returns the human-readable category name.
func (c *Category) Name() string { return c.name }
