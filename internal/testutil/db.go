package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/pkg/database"
)

var bindOnce sync.Once

// NewDB opens a fresh in-memory database with the full schema applied.
// Connections are capped at one so concurrent transactions serialize the
// same way row locks do in production, keeping stock races deterministic.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	bindOnce.Do(func() {
		sqlx.BindDriver("sqlite", sqlx.QUESTION)
	})

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.ApplySchema(context.Background(), db))

	t.Cleanup(func() { db.Close() })
	return db
}

// CreateUser inserts a user row and returns it. Pass overrides via fn.
func CreateUser(t *testing.T, db *sqlx.DB, accountType string, fn func(*model.User)) *model.User {
	t.Helper()

	now := time.Now().UTC()
	u := &model.User{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:              uuid.New().String() + "@example.com",
		PasswordHash:       "x",
		AccountType:        accountType,
		FirstName:          "Test",
		LastName:           "User",
		VerificationStatus: model.VerificationPending,
	}
	if accountType == model.AccountTypeBusiness {
		name := "Test Business"
		u.BusinessName = &name
	}
	if fn != nil {
		fn(u)
	}

	_, err := db.NamedExecContext(context.Background(), `
		INSERT INTO users (id, email, password_hash, account_type, first_name, last_name,
			phone, address, business_name, is_verified, verification_status, can_sell,
			created_at, updated_at)
		VALUES (:id, :email, :password_hash, :account_type, :first_name, :last_name,
			:phone, :address, :business_name, :is_verified, :verification_status, :can_sell,
			:created_at, :updated_at)`, u)
	require.NoError(t, err)
	return u
}

// CreateVerifiedBusiness inserts a business account that is approved to sell.
func CreateVerifiedBusiness(t *testing.T, db *sqlx.DB) *model.User {
	t.Helper()
	return CreateUser(t, db, model.AccountTypeBusiness, func(u *model.User) {
		u.IsVerified = true
		u.VerificationStatus = model.VerificationApproved
		u.CanSell = true
	})
}

// CreateProduct inserts an active product owned by businessID.
func CreateProduct(t *testing.T, db *sqlx.DB, businessID string, fn func(*model.Product)) *model.Product {
	t.Helper()

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusinessID:            businessID,
		Name:                  "Test Product",
		BusinessPrice:         1000,
		PlatformFeePercentage: decimal.NewFromFloat(15.00),
		PublicPrice:           1150,
		Category:              "general",
		StockQuantity:         10,
		MinOrderQuantity:      1,
		QRCode:                "QR-" + uuid.New().String(),
		IsActive:              true,
	}
	if fn != nil {
		fn(p)
	}

	_, err := db.NamedExecContext(context.Background(), `
		INSERT INTO products (id, business_id, name, description, business_price,
			platform_fee_percentage, public_price, category, stock_quantity,
			min_order_quantity, qr_code, is_active, created_at, updated_at)
		VALUES (:id, :business_id, :name, :description, :business_price,
			:platform_fee_percentage, :public_price, :category, :stock_quantity,
			:min_order_quantity, :qr_code, :is_active, :created_at, :updated_at)`, p)
	require.NoError(t, err)
	return p
}

// StockQuantity reads the current stock for a product.
func StockQuantity(t *testing.T, db *sqlx.DB, productID string) int {
	t.Helper()
	var qty int
	err := db.GetContext(context.Background(), &qty,
		db.Rebind(`SELECT stock_quantity FROM products WHERE id = ?`), productID)
	require.NoError(t, err)
	return qty
}

// CountRows returns the row count of a table.
func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	err := db.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table)
	require.NoError(t, err)
	return n
}
