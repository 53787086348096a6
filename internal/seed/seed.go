// Package seed generates demo customers.
package seed

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/umalmyha/ledger/internal/model"
)

// Generator produces random but plausible customers
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator builds generator, zero seed means random
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

func (g *Generator) Customers(n int) []model.NewCustomer {
	statuses := model.Statuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	customers := make([]model.NewCustomer, 0, n)
	for i := 0; i < n; i++ {
		customers = append(customers, model.NewCustomer{
			Name:        g.faker.Company(),
			Description: g.faker.Sentence(5),
			Status:      model.Status(g.faker.RandomString(names)),
			Rate:        g.amount(0, 100),
			Balance:     g.amount(-5000, 5000),
			Deposit:     g.amount(-1000, 1000),
		})
	}
	return customers
}

func (g *Generator) amount(min, max float64) float64 {
	return decimal.NewFromFloat(g.faker.Float64Range(min, max)).Round(2).InexactFloat64()
}
