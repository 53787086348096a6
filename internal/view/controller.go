package view

import "github.com/umalmyha/ledger/internal/model"

// Controller owns collection snapshot and view state. Collection is never
// mutated in place, it is replaced by Reconcile with a freshly fetched one.
// Controller is not safe for concurrent use.
type Controller struct {
	collection []model.Customer
	state      State
	snapshot   Snapshot
}

func NewController() *Controller {
	c := &Controller{collection: make([]model.Customer, 0), state: NewState()}
	c.recompute()
	return c
}

// Dispatch applies transition and recomputes the derived view
func (c *Controller) Dispatch(a Action) error {
	next, err := Reduce(c.state, a)
	if err != nil {
		return err
	}

	c.state = next
	c.recompute()
	return nil
}

// Reconcile replaces collection and recomputes filtering, paging and single selection
func (c *Controller) Reconcile(collection []model.Customer) {
	c.collection = make([]model.Customer, len(collection))
	copy(c.collection, collection)
	c.recompute()
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// Find looks up customer in current collection
func (c *Controller) Find(id string) (model.Customer, bool) {
	for _, cust := range c.collection {
		if cust.ID == id {
			return cust, true
		}
	}
	return model.Customer{}, false
}

func (c *Controller) recompute() {
	c.snapshot, c.state = Derive(c.collection, c.state)
}
