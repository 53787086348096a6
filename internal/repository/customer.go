package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/model"
)

const (
	DefaultListLatency     = 300 * time.Millisecond
	DefaultMutationLatency = 200 * time.Millisecond
)

// CustomerRepository is the persistence contract for customers collection.
// Implementations assume a single active caller.
type CustomerRepository interface {
	FindAll(context.Context) ([]model.Customer, error)
	Create(context.Context, model.NewCustomer) (model.Customer, error)
	Update(context.Context, string, model.PatchCustomer) (model.Customer, error)
	DeleteByIDs(context.Context, []string) error
}

type SlotOption func(*slotCustomerRepository)

// WithCodec sets slot encoding, JSON by default
func WithCodec(codec Codec) SlotOption {
	return func(r *slotCustomerRepository) {
		r.codec = codec
	}
}

// WithLatency simulates network delay for list and mutation calls
func WithLatency(list, mutation time.Duration) SlotOption {
	return func(r *slotCustomerRepository) {
		r.listLatency = list
		r.mutationLatency = mutation
	}
}

// WithLogger sets logger used to report swallowed storage failures
func WithLogger(logger logrus.FieldLogger) SlotOption {
	return func(r *slotCustomerRepository) {
		r.logger = logger
	}
}

// WithIDGenerator replaces uuid generation of new customer ids
func WithIDGenerator(gen func() string) SlotOption {
	return func(r *slotCustomerRepository) {
		r.newID = gen
	}
}

type slotCustomerRepository struct {
	slot            Slot
	codec           Codec
	listLatency     time.Duration
	mutationLatency time.Duration
	logger          logrus.FieldLogger
	newID           func() string
}

// NewSlotCustomerRepository builds repository keeping whole collection in a single slot
func NewSlotCustomerRepository(slot Slot, opts ...SlotOption) CustomerRepository {
	r := &slotCustomerRepository{
		slot:   slot,
		codec:  JSONCodec(),
		logger: logrus.StandardLogger(),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *slotCustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	if err := delay(ctx, r.listLatency); err != nil {
		return nil, err
	}
	return r.load(ctx)
}

func (r *slotCustomerRepository) Create(ctx context.Context, nc model.NewCustomer) (model.Customer, error) {
	if err := delay(ctx, r.mutationLatency); err != nil {
		return model.Customer{}, err
	}

	customers, err := r.load(ctx)
	if err != nil {
		return model.Customer{}, err
	}

	c := nc.WithID(r.uniqueID(customers))
	if err := r.store(ctx, append(customers, c)); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *slotCustomerRepository) Update(ctx context.Context, id string, patch model.PatchCustomer) (model.Customer, error) {
	if err := delay(ctx, r.mutationLatency); err != nil {
		return model.Customer{}, err
	}

	customers, err := r.load(ctx)
	if err != nil {
		return model.Customer{}, err
	}

	idx := -1
	for i := range customers {
		if customers[i].ID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return model.Customer{}, apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer %s not found", id))
	}

	c := customers[idx].MergePatch(patch)
	next := make([]model.Customer, len(customers))
	copy(next, customers)
	next[idx] = c

	if err := r.store(ctx, next); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *slotCustomerRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if err := delay(ctx, r.mutationLatency); err != nil {
		return err
	}

	customers, err := r.load(ctx)
	if err != nil {
		return err
	}

	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}

	kept := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if _, ok := remove[c.ID]; !ok {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(customers) {
		return nil
	}
	return r.store(ctx, kept)
}

func (r *slotCustomerRepository) load(ctx context.Context) ([]model.Customer, error) {
	data, err := r.slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s - %w", r.slot.Name(), err)
	}

	if len(data) == 0 {
		return make([]model.Customer, 0), nil
	}

	customers, err := r.codec.Decode(data)
	if err != nil {
		decodeErr := apperrors.NewStorageDecodeErr(r.slot.Name(), err)
		r.logger.WithError(decodeErr).Warn("stored customers are corrupted, treating slot as empty")
		return make([]model.Customer, 0), nil
	}

	if customers == nil {
		customers = make([]model.Customer, 0)
	}
	return customers, nil
}

func (r *slotCustomerRepository) store(ctx context.Context, customers []model.Customer) error {
	data, err := r.codec.Encode(customers)
	if err != nil {
		return fmt.Errorf("failed to encode customers - %w", err)
	}

	if err := r.slot.Store(ctx, data); err != nil {
		return fmt.Errorf("failed to store slot %s - %w", r.slot.Name(), err)
	}
	return nil
}

func (r *slotCustomerRepository) uniqueID(customers []model.Customer) string {
	taken := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		taken[c.ID] = struct{}{}
	}

	for {
		id := r.newID()
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

func delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsCanceled reports whether err was caused by context cancellation or deadline
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
