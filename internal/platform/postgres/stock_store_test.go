package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/postgres"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stockColumns = []string{"id", "product_id", "quantity", "created_by", "created_at"}

func TestPostgresStockStore_List(t *testing.T) {
	db, mock := newMockDB(t)
	stockStore := postgres.NewPostgresStockStore(db, nil)
	owner := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.created_by = $1 ORDER BY s.quantity DESC, s.id DESC")).
		WithArgs(owner).
		WillReturnRows(sqlmock.NewRows(stockColumns).
			AddRow(int64(1), int64(3), int64(50), owner.String(), now).
			AddRow(int64(2), nil, int64(5), owner.String(), now))

	stocks, err := stockStore.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	require.NotNil(t, stocks[0].ProductID)
	assert.Equal(t, int64(3), *stocks[0].ProductID)
	assert.Equal(t, 50, stocks[0].Quantity)
	assert.Nil(t, stocks[1].ProductID)
}

func TestPostgresStockStore_Create(t *testing.T) {
	owner := uuid.New()
	productID := int64(3)

	t.Run("created", func(t *testing.T) {
		db, mock := newMockDB(t)
		stockStore := postgres.NewPostgresStockStore(db, nil)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_stocks (product_id, quantity, created_by)")).
			WithArgs(productID, 10, owner).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

		stock := &domain.Stock{ProductID: &productID, Quantity: 10, CreatedBy: owner}
		require.NoError(t, stockStore.Create(context.Background(), stock))
		assert.Equal(t, int64(9), stock.ID)
	})

	t.Run("duplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		stockStore := postgres.NewPostgresStockStore(db, nil)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_stocks")).
			WillReturnError(newPgError("23505"))

		err := stockStore.Create(context.Background(), &domain.Stock{ProductID: &productID, Quantity: 1, CreatedBy: owner})
		assert.ErrorIs(t, err, store.ErrStockExists)
	})
}

func TestPostgresStockStore_UpdateQuantity(t *testing.T) {
	owner := uuid.New()
	query := regexp.QuoteMeta(
		"UPDATE product_stocks SET quantity = $3 WHERE product_stocks.created_by = $1 AND product_stocks.id = $2",
	)

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		stockStore := postgres.NewPostgresStockStore(db, nil)

		mock.ExpectQuery(query).
			WithArgs(owner, int64(1), 25).
			WillReturnRows(sqlmock.NewRows(stockColumns).
				AddRow(int64(1), int64(3), int64(25), owner.String(), time.Now().UTC()))

		stock, err := stockStore.UpdateQuantity(context.Background(), owner, 1, 25)
		require.NoError(t, err)
		assert.Equal(t, 25, stock.Quantity)
	})

	t.Run("not owned", func(t *testing.T) {
		db, mock := newMockDB(t)
		stockStore := postgres.NewPostgresStockStore(db, nil)

		mock.ExpectQuery(query).
			WithArgs(owner, int64(1), 25).
			WillReturnRows(sqlmock.NewRows(stockColumns))

		_, err := stockStore.UpdateQuantity(context.Background(), owner, 1, 25)
		assert.ErrorIs(t, err, store.ErrStockNotFound)
	})

	t.Run("negative", func(t *testing.T) {
		db, _ := newMockDB(t)
		stockStore := postgres.NewPostgresStockStore(db, nil)

		_, err := stockStore.UpdateQuantity(context.Background(), owner, 1, -1)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPostgresStockStore_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	stockStore := postgres.NewPostgresStockStore(db, nil)
	owner := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_stocks WHERE product_stocks.created_by = $1 AND product_stocks.id = $2")).
		WithArgs(owner, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, stockStore.Delete(context.Background(), owner, 2))
}
