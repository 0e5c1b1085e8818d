package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order/pricing"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/product"
	"github.com/delivers/marketplace-service/internal/product/dto"
	"github.com/delivers/marketplace-service/internal/product/repository"
	"github.com/delivers/marketplace-service/internal/testutil"
)

func newProductUseCase(t *testing.T) (product.UseCase, *sqlx.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewProductUseCase(repository.NewPGRepository(db), nil, logger.NewNop()), db
}

func TestCreateProduct(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:    business.ID,
		Name:          "Arabica Beans",
		Description:   "Single origin",
		BusinessPrice: 2000,
		Category:      "coffee",
		StockQuantity: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2300), p.PublicPrice, "default fee is 15 percent")
	assert.Equal(t, 1, p.MinOrderQuantity)
	assert.True(t, p.IsActive)
	assert.True(t, strings.HasPrefix(p.QRCode, "QR_"))

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Arabica Beans", stored.Name)
	assert.True(t, stored.BusinessVerified)
}

func TestCreateProductCustomFee(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:            business.ID,
		Name:                  "Widget",
		BusinessPrice:         1000,
		PlatformFeePercentage: 20,
		Category:              "hardware",
		StockQuantity:         5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1200), p.PublicPrice)
}

func TestCreateProductUnverifiedSeller(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateUser(t, db, model.AccountTypeBusiness, nil)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:    business.ID,
		Name:          "Widget",
		BusinessPrice: 1000,
		Category:      "hardware",
	})
	assert.ErrorIs(t, err, product.ErrSellerNotVerified)
}

func TestCreateProductValidation(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:    business.ID,
		BusinessPrice: 1000,
		Category:      "hardware",
	})
	assert.ErrorIs(t, err, product.ErrInvalidInput)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:    business.ID,
		Name:          "Widget",
		BusinessPrice: 0,
		Category:      "hardware",
	})
	assert.ErrorIs(t, err, pricing.ErrInvalidPrice)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		BusinessID:    business.ID,
		Name:          "Widget",
		BusinessPrice: 1000,
		Category:      "hardware",
		StockQuantity: -1,
	})
	assert.ErrorIs(t, err, product.ErrInvalidInput)
}

func TestUpdateProductRecomputesPrice(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, business.ID, nil)

	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:            p.ID,
		BusinessID:    business.ID,
		Name:          "Renamed",
		BusinessPrice: 2000,
		Category:      p.Category,
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2300), updated.PublicPrice)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateProductOwnership(t *testing.T) {
	uc, db := newProductUseCase(t)
	owner := testutil.CreateVerifiedBusiness(t, db)
	intruder := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, owner.ID, nil)

	_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:            p.ID,
		BusinessID:    intruder.ID,
		Name:          "Hijacked",
		BusinessPrice: 1,
		Category:      "x",
	})
	assert.ErrorIs(t, err, product.ErrNotOwner)

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:            "missing",
		BusinessID:    owner.ID,
		Name:          "x",
		BusinessPrice: 1,
		Category:      "x",
	})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, business.ID, nil) // stock 10

	updated, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:  p.ID,
		BusinessID: business.ID,
		Delta:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.StockQuantity)

	updated, err = uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:  p.ID,
		BusinessID: business.ID,
		Delta:      -15,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)
}

func TestAdjustStockUnderflow(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.StockQuantity = 3
	})

	_, err := uc.AdjustStock(context.Background(), &dto.AdjustStockInput{
		ProductID:  p.ID,
		BusinessID: business.ID,
		Delta:      -4,
	})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 3, testutil.StockQuantity(t, db, p.ID))
}

func TestListPublicFilters(t *testing.T) {
	uc, db := newProductUseCase(t)
	verified := testutil.CreateVerifiedBusiness(t, db)
	unverified := testutil.CreateUser(t, db, model.AccountTypeBusiness, nil)

	testutil.CreateProduct(t, db, verified.ID, func(p *model.Product) {
		p.Name = "Colombian Coffee"
		p.Category = "coffee"
	})
	testutil.CreateProduct(t, db, verified.ID, func(p *model.Product) {
		p.Name = "Green Tea"
		p.Category = "tea"
	})
	testutil.CreateProduct(t, db, verified.ID, func(p *model.Product) {
		p.Name = "Hidden"
		p.IsActive = false
	})
	testutil.CreateProduct(t, db, unverified.ID, func(p *model.Product) {
		p.Name = "Unverified Coffee"
		p.Category = "coffee"
	})

	products, count, err := uc.ListPublic(context.Background(), &dto.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, count, "inactive and unverified products stay hidden")
	assert.Len(t, products, 2)

	products, count, err = uc.ListPublic(context.Background(), &dto.ProductFilters{Category: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, products, 1)
	assert.Equal(t, "Colombian Coffee", products[0].Name)

	products, _, err = uc.ListPublic(context.Background(), &dto.ProductFilters{SearchQuery: "green"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Green Tea", products[0].Name)
}

func TestListPublicPagination(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	for i := 0; i < 5; i++ {
		testutil.CreateProduct(t, db, business.ID, nil)
	}

	products, count, err := uc.ListPublic(context.Background(), &dto.ProductFilters{
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Len(t, products, 2)
}

func TestScanQR(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, business.ID, nil)

	found, err := uc.ScanQR(context.Background(), p.QRCode)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	_, err = uc.ScanQR(context.Background(), "QR-nope")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestScanQRInactiveHidden(t *testing.T) {
	uc, db := newProductUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.IsActive = false
	})

	_, err := uc.ScanQR(context.Background(), p.QRCode)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	uc, db := newProductUseCase(t)
	owner := testutil.CreateVerifiedBusiness(t, db)
	intruder := testutil.CreateVerifiedBusiness(t, db)
	p := testutil.CreateProduct(t, db, owner.ID, nil)

	err := uc.DeleteProduct(context.Background(), intruder.ID, p.ID)
	assert.ErrorIs(t, err, product.ErrNotOwner)

	require.NoError(t, uc.DeleteProduct(context.Background(), owner.ID, p.ID))
	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Deleting twice is a no-op.
	require.NoError(t, uc.DeleteProduct(context.Background(), owner.ID, p.ID))
}
