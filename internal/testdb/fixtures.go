package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MustInsertUser inserts an active user with the password "password123"
// hashed at bcrypt.MinCost and returns its ID.
func MustInsertUser(ctx context.Context, t *testing.T, db store.DBTX, email string) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, hashed_password, is_active, is_staff, created_at, updated_at)
		VALUES ($1, $2, '', $3, TRUE, FALSE, $4, $4)
	`, id, email, string(hash), now)
	require.NoError(t, err, "Failed to insert test user")

	return id
}

// MustInsertProduct inserts a product without categories and returns its ID.
func MustInsertProduct(ctx context.Context, t *testing.T, db store.DBTX, owner uuid.UUID, name string, price int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, created_by)
		VALUES ($1, '', $2, $3)
		RETURNING id
	`, name, price, owner).Scan(&id)
	require.NoError(t, err, "Failed to insert test product")

	return id
}

// MustInsertStock inserts a stock row for productID and returns its ID.
func MustInsertStock(ctx context.Context, t *testing.T, db store.DBTX, owner uuid.UUID, productID int64, quantity int) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(ctx, `
		INSERT INTO product_stocks (product_id, quantity, created_by)
		VALUES ($1, $2, $3)
		RETURNING id
	`, productID, quantity, owner).Scan(&id)
	require.NoError(t, err, "Failed to insert test stock")

	return id
}
