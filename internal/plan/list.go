package plan

import (
	"context"
	"fmt"
	"strings"

	"serviceplan/pkg/types"
)

type ListRequest struct {
	ShowAll bool
	Lang    types.Language
}

type ListColumn struct {
	Key   types.FieldKey
	Label string
}

type ListRow struct {
	ID    int64
	Date  string
	Link  string
	Cells []string
}

// ListView is the table of entries. The date column is always first and is
// not part of Columns.
type ListView struct {
	ShowAll   bool
	DateLabel string
	Columns   []ListColumn
	Rows      []ListRow
}

// ParseListColumns validates configured column keys. An empty list selects
// every content field.
func ParseListColumns(keys []string) ([]types.FieldKey, error) {
	var out []types.FieldKey
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		key := types.FieldKey(k)
		if !types.IsContentField(key) {
			return nil, fmt.Errorf("unknown list column %q", k)
		}
		out = append(out, key)
	}

	if len(out) == 0 {
		return types.ContentFieldKeys(), nil
	}
	return out, nil
}

// FormLink is the URL of the form for entry id.
func FormLink(id int64) string {
	return fmt.Sprintf("/plan/form?edit_id=%d", id)
}

// BuildListView lays out entries in the order given.
func BuildListView(entries []*types.ServiceEntry, columns []types.FieldKey, labels types.Labels, linkRows bool) *ListView {
	view := &ListView{
		DateLabel: labels.Field(types.FieldDate),
		Columns:   make([]ListColumn, len(columns)),
		Rows:      make([]ListRow, 0, len(entries)),
	}

	for i, key := range columns {
		view.Columns[i] = ListColumn{Key: key, Label: labels.Field(key)}
	}

	for _, e := range entries {
		row := ListRow{
			ID:    e.ID,
			Date:  e.Date.Format(types.ListDateLayout),
			Cells: make([]string, len(columns)),
		}
		if linkRows {
			row.Link = FormLink(e.ID)
		}
		for i, key := range columns {
			row.Cells[i] = e.Value(key)
		}
		view.Rows = append(view.Rows, row)
	}

	return view
}

// WithListLayout sets the columns of the list view and whether rows link to
// the form.
func (c *Controller) WithListLayout(columns []types.FieldKey, linkRows bool) *Controller {
	c.listColumns = columns
	c.linkRows = linkRows
	return c
}

// Entries returns entries in date order with dates in the planner's zone.
// Past entries are left out unless showAll is set.
func (c *Controller) Entries(ctx context.Context, showAll bool) ([]*types.ServiceEntry, error) {
	entries, err := c.entries.Entries(ctx, types.EntryFilter{
		OnlyUpcoming: !showAll,
		Now:          c.planner.Now(),
	})
	if err != nil {
		return nil, err
	}

	loc := c.planner.Location()
	for _, e := range entries {
		e.Date = e.Date.In(loc)
	}

	return entries, nil
}

func (c *Controller) List(ctx context.Context, req ListRequest) (*ListView, error) {
	entries, err := c.Entries(ctx, req.ShowAll)
	if err != nil {
		return nil, err
	}

	view := BuildListView(entries, c.listColumns, types.LabelsFor(req.Lang), c.linkRows)
	view.ShowAll = req.ShowAll
	return view, nil
}
