package services

import (
	"testing"

	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityAvailableMissingRow(t *testing.T) {
	db := setupTestDB(t)

	quantity, err := QuantityAvailable(db, 999, 999)
	require.NoError(t, err)
	assert.Zero(t, quantity)
}

func TestRestockCreatesAndIncrements(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db, 100.00, 5)

	// Top up the existing row.
	stock, err := Restock(db, int(f.sneaker.ID), int(f.size.ID), 3)
	require.NoError(t, err)
	assert.Equal(t, 8, stock.Quantity)

	// A pair with no row yet gets one.
	newSize := models.Size{Value: 44}
	require.NoError(t, db.Create(&newSize).Error)

	stock, err = Restock(db, int(f.sneaker.ID), int(newSize.ID), 6)
	require.NoError(t, err)
	assert.Equal(t, 6, stock.Quantity)

	quantity, err := QuantityAvailable(db, int(f.sneaker.ID), int(newSize.ID))
	require.NoError(t, err)
	assert.Equal(t, 6, quantity)
}

func TestCheckCartQuantityAdvisory(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db, 100.00, 5)

	// Within stock.
	require.NoError(t, CheckCartQuantity(db, int(f.user.ID), int(f.sneaker.ID), int(f.size.ID), 5))

	// Over stock.
	err := CheckCartQuantity(db, int(f.user.ID), int(f.sneaker.ID), int(f.size.ID), 6)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 6, insufficient.Requested)
}

func TestCheckCartQuantityCountsExistingLine(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db, 100.00, 5)
	addCartLine(t, db, f, 3)

	require.NoError(t, CheckCartQuantity(db, int(f.user.ID), int(f.sneaker.ID), int(f.size.ID), 2))

	err := CheckCartQuantity(db, int(f.user.ID), int(f.sneaker.ID), int(f.size.ID), 3)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 6, insufficient.Requested)
}

func TestCheckCartQuantityOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db, 100.00, 5)

	newSize := models.Size{Value: 46}
	require.NoError(t, db.Create(&newSize).Error)

	err := CheckCartQuantity(db, int(f.user.ID), int(f.sneaker.ID), int(newSize.ID), 1)
	var outOfStock *OutOfStockError
	require.ErrorAs(t, err, &outOfStock)
	assert.Equal(t, int(newSize.ID), outOfStock.SizeID)
}
