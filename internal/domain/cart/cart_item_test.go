package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("creates cart line", func(t *testing.T) {
		item, err := NewCartItem(userID, productID, 3)
		require.NoError(t, err)
		assert.Equal(t, userID, item.UserID)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, 3, item.Quantity)
		assert.NotEqual(t, uuid.Nil, item.ID)
	})

	t.Run("fails with nil user", func(t *testing.T) {
		_, err := NewCartItem(uuid.Nil, productID, 1)
		require.Error(t, err)
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewCartItem(userID, uuid.Nil, 1)
		require.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		_, err := NewCartItem(userID, productID, 0)
		require.Error(t, err)
		_, err = NewCartItem(userID, productID, -2)
		require.Error(t, err)
	})
}

func TestCartItemQuantity(t *testing.T) {
	item, err := NewCartItem(uuid.New(), uuid.New(), 2)
	require.NoError(t, err)

	t.Run("repeat adds merge into the line", func(t *testing.T) {
		require.NoError(t, item.IncreaseQuantity(3))
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("rejects non-positive delta", func(t *testing.T) {
		require.Error(t, item.IncreaseQuantity(0))
		require.Error(t, item.IncreaseQuantity(-1))
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("set quantity overwrites", func(t *testing.T) {
		require.NoError(t, item.SetQuantity(1))
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("set quantity rejects zero", func(t *testing.T) {
		require.Error(t, item.SetQuantity(0))
	})
}

func TestLineTotal(t *testing.T) {
	line := Line{
		Quantity:  4,
		UnitPrice: decimal.NewFromFloat(12.25),
	}
	assert.True(t, line.LineTotal().Equal(decimal.NewFromInt(49)))
}
