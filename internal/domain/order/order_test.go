package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShipping(t *testing.T) ShippingAddress {
	t.Helper()
	shipping, err := NewShippingAddress("12 Mill Road", "Portland", "OR", "97201", "555-0101")
	require.NoError(t, err)
	return shipping
}

func TestNewShippingAddress(t *testing.T) {
	t.Run("creates address with valid inputs", func(t *testing.T) {
		shipping, err := NewShippingAddress(" 12 Mill Road ", "Portland", "OR", "97201", "555-0101")
		require.NoError(t, err)
		assert.Equal(t, "12 Mill Road", shipping.Address)
		assert.Equal(t, "Portland", shipping.City)
		assert.Equal(t, "OR", shipping.State)
	})

	t.Run("fails with empty address", func(t *testing.T) {
		_, err := NewShippingAddress("", "Portland", "OR", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address cannot be empty")
	})

	t.Run("fails with empty city", func(t *testing.T) {
		_, err := NewShippingAddress("12 Mill Road", "  ", "OR", "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "city cannot be empty")
	})

	t.Run("zip and phone are optional", func(t *testing.T) {
		shipping, err := NewShippingAddress("12 Mill Road", "Portland", "OR", "", "")
		require.NoError(t, err)
		assert.Empty(t, shipping.Zip)
		assert.Empty(t, shipping.Phone)
	})
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("creates pending order", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0001", userID, validShipping(t), "leave at gate")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, ord.Status)
		assert.Equal(t, userID, ord.UserID)
		assert.True(t, ord.TotalAmount.IsZero())
		assert.Empty(t, ord.Items)
		assert.Nil(t, ord.CancelledAt)
		assert.Equal(t, "leave at gate", ord.CustomerNotes)
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		_, err := NewOrder("", userID, validShipping(t), "")
		require.Error(t, err)
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewOrder("ORD-20260828-0001", uuid.Nil, validShipping(t), "")
		require.Error(t, err)
	})
}

func TestOrderAddItem(t *testing.T) {
	userID := uuid.New()

	t.Run("accumulates total across lines", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0002", userID, validShipping(t), "")
		require.NoError(t, err)

		_, err = ord.AddItem(uuid.New(), decimal.NewFromInt(3), decimal.NewFromFloat(12.50))
		require.NoError(t, err)
		_, err = ord.AddItem(uuid.New(), decimal.NewFromInt(2), decimal.NewFromFloat(8.00))
		require.NoError(t, err)

		assert.Equal(t, 2, ord.ItemCount())
		assert.True(t, ord.TotalAmount.Equal(decimal.NewFromFloat(53.50)))
	})

	t.Run("snapshots unit price on the line", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0003", userID, validShipping(t), "")
		require.NoError(t, err)

		item, err := ord.AddItem(uuid.New(), decimal.NewFromInt(4), decimal.NewFromFloat(9.99))
		require.NoError(t, err)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(9.99)))
		assert.True(t, item.TotalPrice.Equal(decimal.NewFromFloat(39.96)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0004", userID, validShipping(t), "")
		require.NoError(t, err)

		_, err = ord.AddItem(uuid.New(), decimal.Zero, decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("rejects items on a cancelled order", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0005", userID, validShipping(t), "")
		require.NoError(t, err)
		require.NoError(t, ord.Cancel())

		_, err = ord.AddItem(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(5))
		require.Error(t, err)
	})
}

func TestOrderCancel(t *testing.T) {
	userID := uuid.New()

	t.Run("cancels a pending order", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0006", userID, validShipping(t), "")
		require.NoError(t, err)

		require.NoError(t, ord.Cancel())
		assert.Equal(t, StatusCancelled, ord.Status)
		assert.NotNil(t, ord.CancelledAt)
		assert.True(t, ord.IsCancelled())
		assert.True(t, ord.IsTerminal())
	})

	t.Run("double cancel fails", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0007", userID, validShipping(t), "")
		require.NoError(t, err)

		require.NoError(t, ord.Cancel())
		err = ord.Cancel()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only pending orders")
	})

	t.Run("cancel after processing fails", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0008", userID, validShipping(t), "")
		require.NoError(t, err)

		require.NoError(t, ord.MarkProcessing())
		require.Error(t, ord.Cancel())
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	userID := uuid.New()

	t.Run("walks the full fulfillment path", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0009", userID, validShipping(t), "")
		require.NoError(t, err)

		require.NoError(t, ord.MarkProcessing())
		assert.Equal(t, StatusProcessing, ord.Status)
		require.NoError(t, ord.MarkShipped())
		assert.Equal(t, StatusShipped, ord.Status)
		require.NoError(t, ord.MarkDelivered())
		assert.Equal(t, StatusDelivered, ord.Status)
		assert.True(t, ord.IsTerminal())
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0010", userID, validShipping(t), "")
		require.NoError(t, err)

		require.Error(t, ord.MarkShipped())
		require.Error(t, ord.MarkDelivered())
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
		assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled))
	})

	t.Run("version increments on each transition", func(t *testing.T) {
		ord, err := NewOrder("ORD-20260828-0011", userID, validShipping(t), "")
		require.NoError(t, err)
		before := ord.Version

		require.NoError(t, ord.MarkProcessing())
		assert.Equal(t, before+1, ord.Version)
	})
}

func TestOrderIsOwnedBy(t *testing.T) {
	userID := uuid.New()
	ord, err := NewOrder("ORD-20260828-0012", userID, validShipping(t), "")
	require.NoError(t, err)

	assert.True(t, ord.IsOwnedBy(userID))
	assert.False(t, ord.IsOwnedBy(uuid.New()))
}
