package view

import (
	"fmt"

	"github.com/umalmyha/ledger/internal/model"
)

// CheckState is the tri-state of "select all" checkbox
type CheckState int

const (
	Unchecked CheckState = iota
	Indeterminate
	Checked
)

// Row is a customer on the visible page
type Row struct {
	Customer model.Customer
	Number   int
	Selected bool
}

// Snapshot is the derived view of collection for a given state
type Snapshot struct {
	Query      string
	Page       int
	PageSize   int
	TotalPages int
	TotalRows  int
	RangeStart int
	RangeEnd   int
	Rows       []Row
	Selection  Selection
	Header     CheckState
	// Single is set when exactly one selected id is present in collection
	Single *model.Customer
}

func (s Snapshot) HasPrev() bool {
	return s.Page > 1
}

func (s Snapshot) HasNext() bool {
	return s.Page < s.TotalPages
}

// RangeLabel renders "start-end of total" or "0 of 0"
func (s Snapshot) RangeLabel() string {
	if s.TotalRows == 0 {
		return "0 of 0"
	}
	return fmt.Sprintf("%d-%d of %d", s.RangeStart, s.RangeEnd, s.TotalRows)
}

// RowIDs returns ids of visible rows in display order
func (s Snapshot) RowIDs() []string {
	ids := make([]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		ids = append(ids, r.Customer.ID)
	}
	return ids
}

// Derive filters and paginates collection for state.
// The returned state has page reset to 1 when it exceeds total pages.
func Derive(collection []model.Customer, s State) (Snapshot, State) {
	filtered := Filter(collection, s.Query)
	totalPages := TotalPages(len(filtered), s.PageSize)

	if s.Page > totalPages || s.Page < 1 {
		s.Page = 1
	}

	window := Paginate(filtered, s.Page, s.PageSize)
	offset := (s.Page - 1) * s.PageSize

	rows := make([]Row, 0, len(window))
	for i, c := range window {
		rows = append(rows, Row{Customer: c, Number: offset + i + 1, Selected: s.Selection.Has(c.ID)})
	}

	snap := Snapshot{
		Query:      s.Query,
		Page:       s.Page,
		PageSize:   s.PageSize,
		TotalPages: totalPages,
		TotalRows:  len(filtered),
		Rows:       rows,
		Selection:  s.Selection,
		Header:     headerState(rows, s.Selection),
		Single:     singleSelected(collection, s.Selection),
	}

	if len(filtered) > 0 {
		snap.RangeStart = offset + 1
		snap.RangeEnd = offset + len(window)
	}
	return snap, s
}

func headerState(rows []Row, sel Selection) CheckState {
	if len(rows) > 0 {
		all := true
		for _, r := range rows {
			if !r.Selected {
				all = false
				break
			}
		}

		if all {
			return Checked
		}
	}

	if !sel.Empty() {
		return Indeterminate
	}
	return Unchecked
}

func singleSelected(collection []model.Customer, sel Selection) *model.Customer {
	if sel.Len() != 1 {
		return nil
	}

	for i := range collection {
		if sel.Has(collection[i].ID) {
			c := collection[i]
			return &c
		}
	}
	return nil
}
