package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	UncategorizedID    = "cat-001"
	UncategorizedName  = "Uncategorized"
	UncategorizedColor = "#A0A0B0"
)

var (
	ErrEmptyCategoryName      = errors.New("model: category name is required")
	ErrDuplicateCategoryName  = errors.New("model: duplicate category name")
	ErrCategoryNotFound       = errors.New("model: category not found")
	ErrUncategorizedImmutable = errors.New("model: the Uncategorized category cannot be renamed or deleted")
)

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Uncategorized is the fallback for tasks whose category is missing or has
// been deleted.
func Uncategorized() Category {
	return Category{ID: UncategorizedID, Name: UncategorizedName, Color: UncategorizedColor}
}

// DefaultCategories returns the seed list written on first run.
func DefaultCategories() []Category {
	return []Category{
		Uncategorized(),
		{ID: "cat-002", Name: "Study", Color: "#3B82F6"},
		{ID: "cat-003", Name: "Work", Color: "#10B981"},
		{ID: "cat-004", Name: "Health", Color: "#F59E0B"},
		{ID: "cat-005", Name: "Spiritual", Color: "#8A5CF5"},
	}
}

func NewCategoryID() string {
	return "cat-" + uuid.NewString()
}

// CategoryIndex resolves category ids to display metadata.
type CategoryIndex struct {
	byID     map[string]Category
	fallback Category
}

func NewCategoryIndex(categories []Category) CategoryIndex {
	idx := CategoryIndex{byID: make(map[string]Category, len(categories)), fallback: Uncategorized()}
	for _, c := range categories {
		idx.byID[c.ID] = c
	}
	if c, ok := idx.byID[UncategorizedID]; ok {
		idx.fallback = c
	}
	return idx
}

// Resolve returns the category for id, or the Uncategorized entry when the
// id is empty or dangling.
func (i CategoryIndex) Resolve(id string) Category {
	if c, ok := i.byID[id]; ok {
		return c
	}
	return i.fallback
}

// AddCategory appends a new category with a generated id. Names are unique
// ignoring case.
func AddCategory(categories []Category, name, color string) ([]Category, Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Category{}, ErrEmptyCategoryName
	}
	if nameTaken(categories, name, "") {
		return nil, Category{}, fmt.Errorf("%w: %q", ErrDuplicateCategoryName, name)
	}
	c := Category{ID: NewCategoryID(), Name: name, Color: color}
	out := append(cloneCategories(categories), c)
	return out, c, nil
}

// UpdateCategory renames and recolors the category with id. An empty color
// keeps the current one.
func UpdateCategory(categories []Category, id, name, color string) ([]Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	pos := categoryPos(categories, id)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	if id == UncategorizedID && name != categories[pos].Name {
		return nil, ErrUncategorizedImmutable
	}
	if nameTaken(categories, name, id) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCategoryName, name)
	}
	out := cloneCategories(categories)
	out[pos].Name = name
	if color != "" {
		out[pos].Color = color
	}
	return out, nil
}

// DeleteCategory removes the category with id. Tasks pointing at it are not
// rewritten; they resolve to Uncategorized from then on.
func DeleteCategory(categories []Category, id string) ([]Category, error) {
	if id == UncategorizedID {
		return nil, ErrUncategorizedImmutable
	}
	pos := categoryPos(categories, id)
	if pos < 0 {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	out := make([]Category, 0, len(categories)-1)
	out = append(out, categories[:pos]...)
	return append(out, categories[pos+1:]...), nil
}

// SortCategoriesForDisplay puts Uncategorized first and the rest by name,
// ignoring case.
func SortCategoriesForDisplay(categories []Category) []Category {
	out := cloneCategories(categories)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID == UncategorizedID || out[j].ID == UncategorizedID {
			return out[i].ID == UncategorizedID && out[j].ID != UncategorizedID
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func nameTaken(categories []Category, name, exceptID string) bool {
	for _, c := range categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func categoryPos(categories []Category, id string) int {
	for i, c := range categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
