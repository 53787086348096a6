package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/model"
	"github.com/umalmyha/ledger/pkg/db/transactor"
)

//go:embed migrations/V1__customers.sql
var customersSchema string

const customerColumns = "id, name, description, status, rate, balance, deposit"

type postgresCustomerRepository struct {
	trx transactor.PgxTransactor
}

func NewPostgresCustomerRepository(trx transactor.PgxTransactor) CustomerRepository {
	return &postgresCustomerRepository{trx: trx}
}

// EnsurePostgresSchema creates customers table if it is missing
func EnsurePostgresSchema(ctx context.Context, trx transactor.PgxTransactor) error {
	if _, err := trx.Executor(ctx).Exec(ctx, customersSchema); err != nil {
		return fmt.Errorf("failed to apply customers schema - %w", err)
	}
	return nil
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	customers := make([]model.Customer, 0)
	q := "SELECT " + customerColumns + " FROM customers ORDER BY position"

	rows, err := r.trx.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, nc model.NewCustomer) (model.Customer, error) {
	c := nc.WithID(uuid.NewString())
	q := "INSERT INTO customers(" + customerColumns + ") VALUES($1, $2, $3, $4, $5, $6, $7)"

	if _, err := r.trx.Executor(ctx).Exec(ctx, q, c.ID, c.Name, c.Description, string(c.Status), c.Rate, c.Balance, c.Deposit); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, id string, patch model.PatchCustomer) (model.Customer, error) {
	var updated model.Customer

	err := r.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := "SELECT " + customerColumns + " FROM customers WHERE id = $1 FOR UPDATE"
		existing, err := r.scan(r.trx.Executor(ctx).QueryRow(ctx, q, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewEntryNotFoundErr(fmt.Sprintf("customer %s not found", id))
			}
			return err
		}

		updated = existing.MergePatch(patch)
		q = `UPDATE customers SET name = $1, description = $2, status = $3, rate = $4, balance = $5, deposit = $6
             WHERE id = $7`
		_, err = r.trx.Executor(ctx).Exec(ctx, q, updated.Name, updated.Description, string(updated.Status), updated.Rate, updated.Balance, updated.Deposit, id)
		return err
	})
	if err != nil {
		return model.Customer{}, err
	}
	return updated, nil
}

func (r *postgresCustomerRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	q := "DELETE FROM customers WHERE id = ANY($1)"
	_, err := r.trx.Executor(ctx).Exec(ctx, q, ids)
	return err
}

func (r *postgresCustomerRepository) scan(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	var status string
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &status, &c.Rate, &c.Balance, &c.Deposit); err != nil {
		return model.Customer{}, err
	}
	c.Status = model.Status(status)
	return c, nil
}
