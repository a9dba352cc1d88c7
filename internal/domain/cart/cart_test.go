package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/restaurant-backend/internal/domain/product"
)

func testProduct(id uint, price int64, stock int) *product.Product {
	return &product.Product{
		ID:    id,
		Name:  "X-Burger",
		Price: price,
		Stock: stock,
	}
}

func TestAdd_ClampsToStockCeiling(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		requested int
		want      int
	}{
		{"under ceiling", 10, 3, 3},
		{"exactly ceiling", 5, 5, 5},
		{"above ceiling clamps", 5, 8, 5},
		{"unlimited stock never clamps", 0, 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &SessionCart{SessionID: "s1"}
			added, err := sc.Add(testProduct(1, 2500, tt.stock), tt.requested, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, added)
			require.Len(t, sc.Items, 1)
			assert.Equal(t, tt.want, sc.Items[0].Quantity)
		})
	}
}

func TestAdd_FailsWhenCeilingReached(t *testing.T) {
	sc := &SessionCart{SessionID: "s1"}
	prod := testProduct(1, 2500, 2)

	added, err := sc.Add(prod, 2, "")
	require.NoError(t, err)
	require.Equal(t, 2, added)

	// Ceiling already reached, nothing can be added.
	added, err = sc.Add(prod, 1, "")
	require.Error(t, err)
	assert.Zero(t, added)
	assert.Contains(t, err.Error(), "only 2 in stock")
	assert.Equal(t, 2, sc.Items[0].Quantity)
}

func TestAdd_MergesExistingLine(t *testing.T) {
	sc := &SessionCart{SessionID: "s1"}
	prod := testProduct(1, 2500, 10)

	_, err := sc.Add(prod, 2, "sem cebola")
	require.NoError(t, err)
	_, err = sc.Add(prod, 3, "")
	require.NoError(t, err)

	require.Len(t, sc.Items, 1)
	assert.Equal(t, 5, sc.Items[0].Quantity)
	assert.Equal(t, "sem cebola", sc.Items[0].Notes)
}

func TestAdd_SnapshotsPriceAndName(t *testing.T) {
	sc := &SessionCart{SessionID: "s1"}
	prod := testProduct(7, 1890, 0)

	_, err := sc.Add(prod, 1, "")
	require.NoError(t, err)

	// Later catalog edits must not affect the stored line.
	prod.Price = 9999
	prod.Name = "renamed"

	assert.Equal(t, int64(1890), sc.Items[0].UnitPrice)
	assert.Equal(t, "X-Burger", sc.Items[0].Name)
}

func TestUpdateQuantity(t *testing.T) {
	prod := testProduct(1, 1000, 4)

	t.Run("zero removes the line", func(t *testing.T) {
		sc := &SessionCart{SessionID: "s1"}
		_, err := sc.Add(prod, 2, "")
		require.NoError(t, err)

		require.NoError(t, sc.UpdateQuantity(prod, 0))
		assert.Empty(t, sc.Items)
	})

	t.Run("above ceiling fails with message", func(t *testing.T) {
		sc := &SessionCart{SessionID: "s1"}
		_, err := sc.Add(prod, 2, "")
		require.NoError(t, err)

		err = sc.UpdateQuantity(prod, 9)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only 4 units")
		assert.Equal(t, 2, sc.Items[0].Quantity)
	})

	t.Run("replaces stored quantity", func(t *testing.T) {
		sc := &SessionCart{SessionID: "s1"}
		_, err := sc.Add(prod, 2, "")
		require.NoError(t, err)

		require.NoError(t, sc.UpdateQuantity(prod, 3))
		assert.Equal(t, 3, sc.Items[0].Quantity)
	})

	t.Run("missing item", func(t *testing.T) {
		sc := &SessionCart{SessionID: "s1"}
		err := sc.UpdateQuantity(prod, 1)
		require.Error(t, err)
	})
}

func TestUpdateNotesAndRemove(t *testing.T) {
	sc := &SessionCart{SessionID: "s1"}
	_, err := sc.Add(testProduct(1, 1000, 0), 1, "")
	require.NoError(t, err)

	require.NoError(t, sc.UpdateNotes(1, "bem passado"))
	assert.Equal(t, "bem passado", sc.Items[0].Notes)

	require.NoError(t, sc.Remove(1))
	assert.Empty(t, sc.Items)

	require.Error(t, sc.Remove(1))
}

func TestTotals(t *testing.T) {
	const (
		deliveryFee     = 500
		freeDeliveryMin = 8000
	)

	tests := []struct {
		name         string
		lines        map[int64]int // unit price -> quantity
		wantSubtotal int64
		wantFee      int64
	}{
		{"empty cart has no fee", nil, 0, 0},
		{"below threshold pays flat fee", map[int64]int{2500: 2}, 5000, 500},
		{"at threshold delivery is free", map[int64]int{4000: 2}, 8000, 0},
		{"above threshold delivery is free", map[int64]int{4500: 3}, 13500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &SessionCart{SessionID: "s1"}
			var id uint = 1
			for price, qty := range tt.lines {
				_, err := sc.Add(testProduct(id, price, 0), qty, "")
				require.NoError(t, err)
				id++
			}

			totals := sc.Totals(deliveryFee, freeDeliveryMin)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantFee, totals.DeliveryFee)
			assert.Equal(t, tt.wantSubtotal+tt.wantFee, totals.Total)
		})
	}
}
