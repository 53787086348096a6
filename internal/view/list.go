// Package view derives the visible customers page from the stored collection
// and keeps selection and paging state consistent across mutations.
package view

import (
	"strings"

	"github.com/umalmyha/ledger/internal/model"
)

// DefaultPageSize is the page size of a fresh view
const DefaultPageSize = 10

var pageSizes = []int{5, 10, 15, 20, 30, 40, 50}

// PageSizes returns the enumerated page size choices
func PageSizes() []int {
	sizes := make([]int, len(pageSizes))
	copy(sizes, pageSizes)
	return sizes
}

// ValidPageSize reports whether size is one of enumerated choices
func ValidPageSize(size int) bool {
	for _, s := range pageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Filter returns customers whose name, description or status contains query ignoring case.
// Blank query returns customers as is.
func Filter(customers []model.Customer, query string) []model.Customer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return customers
	}

	filtered := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Matches(q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// TotalPages is max(1, ceil(count/size))
func TotalPages(count, size int) int {
	if size < 1 || count <= 0 {
		return 1
	}

	pages := count / size
	if count%size > 0 {
		pages++
	}
	return pages
}

// Paginate returns window [(page-1)*size, page*size) clipped to customers bounds
func Paginate(customers []model.Customer, page, size int) []model.Customer {
	if page < 1 || size < 1 {
		return make([]model.Customer, 0)
	}

	start := (page - 1) * size
	if start >= len(customers) {
		return make([]model.Customer, 0)
	}

	end := start + size
	if end > len(customers) {
		end = len(customers)
	}
	return customers[start:end]
}
