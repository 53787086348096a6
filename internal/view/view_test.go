package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/model"
)

func customers(n int) []model.Customer {
	list := make([]model.Customer, 0, n)
	for i := 1; i <= n; i++ {
		list = append(list, model.Customer{
			ID:          fmt.Sprintf("id-%02d", i),
			Name:        fmt.Sprintf("C%d", i),
			Description: "regular customer",
			Status:      model.StatusOpen,
		})
	}
	return list
}

func names(rows []Row) []string {
	n := make([]string, 0, len(rows))
	for _, r := range rows {
		n = append(n, r.Customer.Name)
	}
	return n
}

func TestFilterPreservesOrder(t *testing.T) {
	list := []model.Customer{
		{ID: "1", Name: "Acme", Description: "hardware", Status: model.StatusOpen},
		{ID: "2", Name: "Bolt", Description: "ACME reseller", Status: model.StatusDue},
		{ID: "3", Name: "Crane", Description: "logistics", Status: model.StatusPaid},
		{ID: "4", Name: "Dune acme", Description: "retail", Status: model.StatusInactive},
	}

	for _, q := range []string{"acme", "  ACME ", "a", "e", "zzz", "Due"} {
		filtered := Filter(list, q)

		t.Logf("query %q returns subsequence of collection", q)
		pos := -1
		for _, c := range filtered {
			idx := -1
			for i := pos + 1; i < len(list); i++ {
				if list[i].ID == c.ID {
					idx = i
					break
				}
			}
			require.NotEqual(t, -1, idx, "customer %s is out of order or unknown", c.ID)
			pos = idx
		}
	}

	require.Equal(t, []string{"1", "2", "4"}, ids(Filter(list, "acme")))
	require.Equal(t, list, Filter(list, "   "), "blank query must return full collection")
	require.Equal(t, list, Filter(list, ""), "empty query must return full collection")
}

func TestFilterByStatus(t *testing.T) {
	list := []model.Customer{
		{ID: "1", Name: "Acme", Description: "hardware", Status: model.StatusOpen},
		{ID: "2", Name: "Bolt", Description: "reseller", Status: model.StatusPaid},
		{ID: "3", Name: "Crane", Description: "logistics", Status: model.StatusDue},
	}

	filtered := Filter(list, "paid")
	require.Len(t, filtered, 1)
	require.Equal(t, "2", filtered[0].ID)
}

func ids(list []model.Customer) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestPaginateReconstructsList(t *testing.T) {
	for _, n := range []int{0, 1, 4, 12, 50, 51} {
		list := customers(n)
		for _, size := range []int{1, 3, 5, 10, 50} {
			total := TotalPages(len(list), size)

			joined := make([]model.Customer, 0, n)
			for page := 1; page <= total; page++ {
				window := Paginate(list, page, size)
				require.LessOrEqual(t, len(window), size, "page must not exceed page size")
				joined = append(joined, window...)
			}

			require.Equal(t, ids(list), ids(joined), "pages of %d customers by %d must reconstruct list", n, size)
			require.Empty(t, Paginate(list, total+1, size), "page beyond total must be empty")
		}
	}
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 1, TotalPages(0, 10), "empty list still has one page")
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 3, TotalPages(12, 5))
}

func TestTwelveCustomersByTen(t *testing.T) {
	list := customers(12)
	state := NewState()

	t.Log("page 1 shows C1..C10")
	{
		snap, _ := Derive(list, state)
		require.Equal(t, 2, snap.TotalPages)
		require.Equal(t, []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8", "C9", "C10"}, names(snap.Rows))
		require.Equal(t, "1-10 of 12", snap.RangeLabel())
		require.False(t, snap.HasPrev())
		require.True(t, snap.HasNext())
	}

	t.Log("page 2 shows C11..C12")
	{
		next, err := Reduce(state, SetPage{Page: 2})
		require.NoError(t, err)

		snap, _ := Derive(list, next)
		require.Equal(t, []string{"C11", "C12"}, names(snap.Rows))
		require.Equal(t, 11, snap.Rows[0].Number, "row numbers continue across pages")
		require.Equal(t, "11-12 of 12", snap.RangeLabel())
		require.True(t, snap.HasPrev())
		require.False(t, snap.HasNext())
	}
}

func TestPageResetLaw(t *testing.T) {
	list := customers(12)

	state, err := Reduce(NewState(), SetPage{Page: 2})
	require.NoError(t, err)

	t.Log("page within total pages is kept")
	{
		_, reconciled := Derive(list, state)
		require.Equal(t, 2, reconciled.Page)
	}

	t.Log("page beyond recomputed total is reset to 1")
	{
		snap, reconciled := Derive(list[:10], state)
		require.Equal(t, 1, reconciled.Page)
		require.Equal(t, 1, snap.Page)
		require.Len(t, snap.Rows, 10)
	}

	t.Log("empty collection renders 0 of 0 on page 1")
	{
		snap, reconciled := Derive(nil, state)
		require.Equal(t, 1, reconciled.Page)
		require.Equal(t, 1, snap.TotalPages)
		require.Equal(t, "0 of 0", snap.RangeLabel())
		require.Empty(t, snap.Rows)
	}
}

func TestReduce(t *testing.T) {
	state := NewState()
	require.Equal(t, 1, state.Page)
	require.Equal(t, DefaultPageSize, state.PageSize)

	t.Log("query change moves back to first page")
	{
		s, err := Reduce(State{Page: 3, PageSize: 10}, SetQuery{Query: "acme"})
		require.NoError(t, err)
		require.Equal(t, "acme", s.Query)
		require.Equal(t, 1, s.Page)
	}

	t.Log("page below 1 is clamped")
	{
		s, err := Reduce(state, SetPage{Page: 0})
		require.NoError(t, err)
		require.Equal(t, 1, s.Page)
	}

	t.Log("page size must be enumerated")
	{
		s, err := Reduce(state, SetPageSize{Size: 7})
		require.Error(t, err)
		require.IsType(t, &apperrors.BusinessErr{}, err)
		require.Equal(t, state, s, "state must be unchanged on rejected transition")

		paged, err := Reduce(State{Page: 2, PageSize: 10, Selection: NewSelection()}, SetPageSize{Size: 50})
		require.NoError(t, err)
		require.Equal(t, 50, paged.PageSize)
		require.Equal(t, 1, paged.Page, "page size change moves back to first page")
	}

	t.Log("toggling does not affect previous state")
	{
		toggled, err := Reduce(state, ToggleSelection{ID: "a"})
		require.NoError(t, err)
		require.True(t, toggled.Selection.Has("a"))
		require.False(t, state.Selection.Has("a"), "previous state must stay untouched")

		untoggled, err := Reduce(toggled, ToggleSelection{ID: "a"})
		require.NoError(t, err)
		require.True(t, untoggled.Selection.Empty())
	}

	t.Log("clear selection")
	{
		s, err := Reduce(State{Selection: NewSelection("a", "b")}, ClearSelection{})
		require.NoError(t, err)
		require.True(t, s.Selection.Empty())
	}
}

func TestToggleAll(t *testing.T) {
	page := []string{"a", "b", "c"}

	t.Log("partial selection becomes exactly the passed rows")
	{
		s, err := Reduce(State{Selection: NewSelection("a", "z")}, ToggleAll{IDs: page})
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, s.Selection.IDs())
	}

	t.Log("when all passed rows are selected the whole set is cleared")
	{
		s, err := Reduce(State{Selection: NewSelection("a", "b", "c", "z")}, ToggleAll{IDs: page})
		require.NoError(t, err)
		require.True(t, s.Selection.Empty())
	}

	t.Log("no rows clears selection")
	{
		s, err := Reduce(State{Selection: NewSelection("a")}, ToggleAll{})
		require.NoError(t, err)
		require.True(t, s.Selection.Empty())
	}
}

func TestHeaderAndSingleSelection(t *testing.T) {
	list := customers(12)

	t.Log("nothing selected")
	{
		snap, _ := Derive(list, NewState())
		require.Equal(t, Unchecked, snap.Header)
		require.Nil(t, snap.Single)
	}

	t.Log("single existing customer selected")
	{
		s, _ := Reduce(NewState(), ToggleSelection{ID: "id-03"})
		snap, _ := Derive(list, s)
		require.Equal(t, Indeterminate, snap.Header)
		require.NotNil(t, snap.Single)
		require.Equal(t, "C3", snap.Single.Name)
		require.True(t, snap.Rows[2].Selected)
	}

	t.Log("single stale id is not treated as single selection")
	{
		s, _ := Reduce(NewState(), ToggleSelection{ID: "gone"})
		snap, _ := Derive(list, s)
		require.Nil(t, snap.Single)
		require.Equal(t, 1, snap.Selection.Len(), "stale ids are kept until cleared")
	}

	t.Log("selection on another page keeps header indeterminate")
	{
		s, _ := Reduce(NewState(), ToggleSelection{ID: "id-12"})
		snap, _ := Derive(list, s)
		require.Equal(t, Indeterminate, snap.Header)
	}

	t.Log("every visible row selected")
	{
		first, _ := Derive(list, NewState())
		s, _ := Reduce(NewState(), ToggleAll{IDs: first.RowIDs()})
		snap, _ := Derive(list, s)
		require.Equal(t, Checked, snap.Header)
		require.Equal(t, 10, snap.Selection.Len())
	}
}

func TestDialog(t *testing.T) {
	closed := ClosedDialog()
	require.False(t, closed.Open())

	create := OpenCreate()
	require.True(t, create.Open())
	require.Equal(t, DialogCreate, create.Mode)
	require.Equal(t, "Add Customer", create.Title())
	require.Equal(t, "Open", create.Form.Status)
	require.Equal(t, "0", create.Form.Rate)

	c := model.Customer{ID: "x", Name: "Acme", Description: "Hardware", Status: model.StatusDue, Rate: 2, Balance: -1, Deposit: 5}
	update := OpenUpdate(c)
	require.Equal(t, DialogUpdate, update.Mode)
	require.Equal(t, "x", update.TargetID)
	require.Equal(t, "Acme", update.Form.Name)
	require.Equal(t, "-1", update.Form.Balance)
	require.Equal(t, "Update", update.SubmitLabel())

	rejected := update.Rejected(update.Form, map[string]string{"name": "Name is required"})
	require.True(t, rejected.Open())
	require.Empty(t, update.Errors, "rejection must not change original dialog")

	reopened := OpenUpdate(c)
	require.Empty(t, reopened.Errors, "reopening must reset errors")
}
