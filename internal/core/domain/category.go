package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrCategoryTitleEmpty   = errors.New("category title cannot be empty")
	ErrCategoryTitleTooLong = errors.New("category title is too long (max 100 chars)")
)

const MaxCategoryTitleLen = 100

// Category is keyed by its title; there is no separate identifier.
type Category struct {
	Title    string     `json:"title"`
	Trackers []*Tracker `json:"trackers"`
}

// NormalizeCategoryTitle trims the title and checks its length.
func NormalizeCategoryTitle(title string) (string, error) {
	clean := strings.TrimSpace(title)
	if clean == "" {
		return "", ErrCategoryTitleEmpty
	}
	if utf8.RuneCountInString(clean) > MaxCategoryTitleLen {
		return "", ErrCategoryTitleTooLong
	}
	return clean, nil
}

// Catalog is the ordered, read-only list of categories for a session.
type Catalog struct {
	categories []*Category
}

// NewCatalog keeps the order the store returned.
func NewCatalog(categories []*Category) *Catalog {
	return &Catalog{categories: categories}
}

func (c *Catalog) AllCategories() []*Category {
	if c == nil {
		return nil
	}
	return c.categories
}

// Tracker finds a tracker by id along with the title of its category.
func (c *Catalog) Tracker(id string) (*Tracker, string, error) {
	for _, cat := range c.AllCategories() {
		for _, t := range cat.Trackers {
			if t.ID == id {
				return t, cat.Title, nil
			}
		}
	}
	return nil, "", ErrTrackerNotFound
}
