package view

import (
	"fmt"

	apperrors "github.com/umalmyha/ledger/internal/errors"
)

// State is the view-state value object, it is only changed through Reduce
type State struct {
	Query     string
	Page      int
	PageSize  int
	Selection Selection
}

func NewState() State {
	return State{
		Page:      1,
		PageSize:  DefaultPageSize,
		Selection: NewSelection(),
	}
}

// Action is a view-state transition
type Action interface {
	apply(State) (State, error)
}

// Reduce applies action to state returning the next state, s is left untouched
func Reduce(s State, a Action) (State, error) {
	return a.apply(s)
}

// SetQuery changes search query and moves back to first page
type SetQuery struct {
	Query string
}

func (a SetQuery) apply(s State) (State, error) {
	s.Query = a.Query
	s.Page = 1
	return s, nil
}

// SetPage moves to page, pages below 1 are clamped
type SetPage struct {
	Page int
}

func (a SetPage) apply(s State) (State, error) {
	s.Page = a.Page
	if s.Page < 1 {
		s.Page = 1
	}
	return s, nil
}

// SetPageSize changes page size to one of enumerated choices and moves back to first page
type SetPageSize struct {
	Size int
}

func (a SetPageSize) apply(s State) (State, error) {
	if !ValidPageSize(a.Size) {
		return s, apperrors.NewBusinessErr("pageSize", fmt.Sprintf("page size %d is not supported, use one of %v", a.Size, pageSizes))
	}

	s.PageSize = a.Size
	s.Page = 1
	return s, nil
}

// ToggleSelection flips membership of a single id
type ToggleSelection struct {
	ID string
}

func (a ToggleSelection) apply(s State) (State, error) {
	s.Selection = s.Selection.Toggle(a.ID)
	return s, nil
}

// ToggleAll clears the whole selection when every passed row is selected,
// otherwise selection becomes exactly the passed rows.
type ToggleAll struct {
	IDs []string
}

func (a ToggleAll) apply(s State) (State, error) {
	if len(a.IDs) == 0 || allSelected(s.Selection, a.IDs) {
		s.Selection = NewSelection()
		return s, nil
	}

	s.Selection = NewSelection(a.IDs...)
	return s, nil
}

// ClearSelection empties selection
type ClearSelection struct{}

func (ClearSelection) apply(s State) (State, error) {
	s.Selection = NewSelection()
	return s, nil
}

func allSelected(sel Selection, ids []string) bool {
	for _, id := range ids {
		if !sel.Has(id) {
			return false
		}
	}
	return true
}
