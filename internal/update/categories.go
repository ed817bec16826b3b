package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

func (m Model) handleCategoriesKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Categories.Cursor > 0 {
			m.Categories.Cursor--
		}
	case "down", "j":
		if m.Categories.Cursor < len(m.Categories.Items)-1 {
			m.Categories.Cursor++
		}
	case "x", "delete":
		if c, ok := m.currentCategory(); ok {
			if _, err := m.deleteCategory(c.ID); err != nil {
				m.setError(err)
			}
		}
	}
	return m
}

func (m Model) currentCategory() (model.Category, bool) {
	if m.Categories.Cursor < 0 || m.Categories.Cursor >= len(m.Categories.Items) {
		return model.Category{}, false
	}
	return m.Categories.Items[m.Categories.Cursor], true
}

func (m *Model) addCategory(name, color string) (string, error) {
	cats, created, err := model.AddCategory(m.svc.Store.Categories(), name, color)
	if err != nil {
		return "", err
	}
	if err := m.svc.Store.SaveCategories(m.ctx, cats); err != nil {
		return "", err
	}
	m.reload()
	return fmt.Sprintf("added category %s (%s)", created.Name, created.ID), nil
}

func (m *Model) renameCategory(id, name string) (string, error) {
	cats, err := model.UpdateCategory(m.svc.Store.Categories(), id, name, "")
	if err != nil {
		return "", err
	}
	if err := m.svc.Store.SaveCategories(m.ctx, cats); err != nil {
		return "", err
	}
	m.reload()
	return fmt.Sprintf("renamed %s to %s", id, name), nil
}

// deleteCategory removes a category. Tasks that used it keep the id and
// are shown as Uncategorized.
func (m *Model) deleteCategory(id string) (string, error) {
	cats, err := model.DeleteCategory(m.svc.Store.Categories(), id)
	if err != nil {
		if errors.Is(err, model.ErrUncategorizedImmutable) {
			return "", fmt.Errorf("%s cannot be deleted", model.UncategorizedName)
		}
		return "", err
	}
	if err := m.svc.Store.SaveCategories(m.ctx, cats); err != nil {
		return "", err
	}
	m.reload()
	msg := fmt.Sprintf("deleted category %s", id)
	m.Status = StatusBar{Text: msg}
	return msg, nil
}

func (m Model) renderCategoriesView() string {
	rows := make([]views.CategoryRowData, 0, len(m.Categories.Items))
	for i, c := range m.Categories.Items {
		rows = append(rows, views.CategoryRowData{
			ID:       c.ID,
			Name:     c.Name,
			Color:    c.Color,
			Fixed:    c.ID == model.UncategorizedID,
			Selected: i == m.Categories.Cursor,
		})
	}
	return views.RenderCategoriesPanel(m.styles, views.CategoriesPanelData{Rows: rows})
}
