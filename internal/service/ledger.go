package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/metrics"
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/internal/repository"
	"github.com/umalmyha/ledger/internal/validation"
	"github.com/umalmyha/ledger/internal/view"
)

// Op names collection operation
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpRefresh Op = "refresh"
)

// Outcome reports result of submitted mutation
type Outcome struct {
	Op       Op
	Customer model.Customer
	Err      error
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Notification describes failed operation which can be retried
type Notification struct {
	Op        Op
	Message   string
	Retryable bool
	pending   mutation
}

type mutation struct {
	op     Op
	id     string
	fields model.NewCustomer
	patch  model.PatchCustomer
	ids    []string
}

// Page is a render model of dashboard
type Page struct {
	View         view.Snapshot
	Dialog       view.Dialog
	Notification *Notification
	PageSizes    []int
	Loaded       bool
}

type LedgerOption func(*Ledger)

func WithMetrics(m *metrics.Metrics) LedgerOption {
	return func(l *Ledger) {
		l.metrics = m
	}
}

func WithLogger(logger logrus.FieldLogger) LedgerOption {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// Ledger is the single writer of customers collection and dashboard state.
// All operations are serialized.
type Ledger struct {
	mu           sync.Mutex
	customerRps  repository.CustomerRepository
	validator    *validation.Validator
	ctrl         *view.Controller
	dialog       view.Dialog
	notification *Notification
	loaded       bool
	metrics      *metrics.Metrics
	logger       logrus.FieldLogger
}

func NewLedger(customerRps repository.CustomerRepository, validator *validation.Validator, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		customerRps: customerRps,
		validator:   validator,
		ctrl:        view.NewController(),
		dialog:      view.ClosedDialog(),
		logger:      logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Refresh re-fetches collection and reconciles view state
func (l *Ledger) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refresh(ctx)
}

// EnsureLoaded fetches collection unless it was fetched already
func (l *Ledger) EnsureLoaded(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return nil
	}
	return l.refresh(ctx)
}

func (l *Ledger) Dispatch(a view.Action) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctrl.Dispatch(a)
}

// ToggleAllVisible toggles selection of rows on current page
func (l *Ledger) ToggleAllVisible() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctrl.Dispatch(view.ToggleAll{IDs: l.ctrl.Snapshot().RowIDs()})
}

// OpenPrimary opens update dialog if exactly one existing customer is selected, add dialog otherwise
func (l *Ledger) OpenPrimary() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if single := l.ctrl.Snapshot().Single; single != nil {
		l.dialog = view.OpenUpdate(*single)
		return
	}
	l.dialog = view.OpenCreate()
}

func (l *Ledger) CancelDialog() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dialog = view.ClosedDialog()
}

// Submit validates dialog form and runs create or update. Invalid input keeps
// dialog open and returns *validation.PayloadError.
func (l *Ledger) Submit(ctx context.Context, in validation.FormInput) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.dialog.Open() {
		return Outcome{}, apperrors.NewBusinessErr("dialog", "no customer dialog is open")
	}

	fields, err := l.validator.Customer(in)
	if err != nil {
		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			l.dialog = l.dialog.Rejected(in, pldErr.Fields())
		}
		return Outcome{}, err
	}

	m := mutation{op: OpCreate, fields: fields}
	if l.dialog.Mode == view.DialogUpdate {
		m = mutation{op: OpUpdate, id: l.dialog.TargetID, patch: fields.Patch()}
	}

	l.dialog = view.ClosedDialog()
	return l.run(ctx, m), nil
}

// DeleteSelected deletes selected customers, selection is cleared on success
func (l *Ledger) DeleteSelected(ctx context.Context) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	sel := l.ctrl.State().Selection
	if sel.Empty() {
		return Outcome{Op: OpDelete}
	}
	return l.run(ctx, mutation{op: OpDelete, ids: sel.IDs()})
}

// Create adds customer bypassing dialog
func (l *Ledger) Create(ctx context.Context, nc model.NewCustomer) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.run(ctx, mutation{op: OpCreate, fields: nc})
}

// Update patches customer bypassing dialog
func (l *Ledger) Update(ctx context.Context, id string, patch model.PatchCustomer) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.run(ctx, mutation{op: OpUpdate, id: id, patch: patch})
}

// Delete removes customers by ids, selection is cleared on success
func (l *Ledger) Delete(ctx context.Context, ids []string) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.run(ctx, mutation{op: OpDelete, ids: ids})
}

// Retry replays operation of current notification
func (l *Ledger) Retry(ctx context.Context) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.notification == nil || !l.notification.Retryable {
		return Outcome{}, apperrors.NewBusinessErr("notification", "nothing to retry")
	}

	pending := l.notification.pending
	l.notification = nil

	if pending.op == OpRefresh {
		err := l.refresh(ctx)
		return Outcome{Op: OpRefresh, Err: err}, nil
	}
	return l.run(ctx, pending), nil
}

func (l *Ledger) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notification = nil
}

// Query derives page of collection for provided state without touching dashboard state
func (l *Ledger) Query(ctx context.Context, s view.State) (view.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	customers, err := l.customerRps.FindAll(ctx)
	if err != nil {
		return view.Snapshot{}, fmt.Errorf("failed to list customers - %w", err)
	}

	snapshot, _ := view.Derive(customers, s)
	return snapshot, nil
}

func (l *Ledger) Page() Page {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := Page{
		View:      l.ctrl.Snapshot(),
		Dialog:    l.dialog,
		PageSizes: view.PageSizes(),
		Loaded:    l.loaded,
	}

	if l.notification != nil {
		n := *l.notification
		p.Notification = &n
	}
	return p
}

func (l *Ledger) run(ctx context.Context, m mutation) Outcome {
	var (
		c   model.Customer
		err error
	)

	switch m.op {
	case OpCreate:
		c, err = l.customerRps.Create(ctx, m.fields)
	case OpUpdate:
		c, err = l.customerRps.Update(ctx, m.id, m.patch)
	case OpDelete:
		err = l.customerRps.DeleteByIDs(ctx, m.ids)
	default:
		err = fmt.Errorf("unknown operation %s", m.op)
	}

	l.metrics.Mutation(string(m.op), err)
	logger := l.logger.WithFields(logrus.Fields{"op": m.op, "id": m.id, "count": len(m.ids)})

	if err != nil {
		if repository.IsCanceled(err) {
			logger.WithError(err).Info("customer mutation canceled")
		} else {
			logger.WithError(err).Warn("customer mutation failed")
		}
		l.notification = &Notification{
			Op:        m.op,
			Message:   fmt.Sprintf("Failed to %s customer data: %v", m.op, err),
			Retryable: !apperrors.IsNotFound(err),
			pending:   m,
		}
		return Outcome{Op: m.op, Err: err}
	}

	logger.Info("customer mutation completed")
	l.notification = nil

	if m.op == OpDelete {
		// removed ids can't stay selected
		_ = l.ctrl.Dispatch(view.ClearSelection{})
	}

	if err := l.refresh(ctx); err != nil {
		l.logger.WithError(err).Warn("failed to refresh customers after mutation")
	}
	return Outcome{Op: m.op, Customer: c}
}

func (l *Ledger) refresh(ctx context.Context) error {
	customers, err := l.customerRps.FindAll(ctx)
	l.metrics.Mutation(string(OpRefresh), err)

	if err != nil {
		l.notification = &Notification{
			Op:        OpRefresh,
			Message:   fmt.Sprintf("Failed to load customers: %v", err),
			Retryable: true,
			pending:   mutation{op: OpRefresh},
		}
		return fmt.Errorf("failed to refresh customers - %w", err)
	}

	l.ctrl.Reconcile(customers)
	l.loaded = true
	l.metrics.Collection(len(customers))
	return nil
}
