package seed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorCustomers(t *testing.T) {
	customers := NewGenerator(42).Customers(25)
	require.Len(t, customers, 25)

	for _, c := range customers {
		require.NotEmpty(t, c.Name)
		require.NotEmpty(t, c.Description)
		require.True(t, c.Status.Valid(), "status %q must be known", c.Status)
		require.GreaterOrEqual(t, c.Balance, -5000.0)
		require.LessOrEqual(t, c.Balance, 5000.0)
		require.Equal(t, math.Round(c.Rate*100)/100, c.Rate, "amounts must have two decimals")
	}
}

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	require.Equal(t, NewGenerator(7).Customers(3), NewGenerator(7).Customers(3))
}
