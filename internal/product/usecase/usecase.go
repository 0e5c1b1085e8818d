package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order/pricing"
	"github.com/delivers/marketplace-service/internal/pkg/cache"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/product"
	"github.com/delivers/marketplace-service/internal/product/dto"
)

// defaultPlatformFeePercentage applies when a business does not set its own.
var defaultPlatformFeePercentage = decimal.NewFromFloat(15.00)

const listCacheTTL = 5 * time.Minute

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

// NewProductUseCase builds the catalog usecase. cache may be nil; listing
// then always hits the database.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	verified, err := uc.repo.IsBusinessVerified(ctx, input.BusinessID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, product.ErrSellerNotVerified
	}

	if input.Name == "" || input.Category == "" {
		return nil, fmt.Errorf("%w: name and category are required", product.ErrInvalidInput)
	}
	if input.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", product.ErrInvalidInput)
	}
	minOrder := input.MinOrderQuantity
	if minOrder == 0 {
		minOrder = 1
	}
	if minOrder < 1 {
		return nil, fmt.Errorf("%w: minimum order quantity must be at least 1", product.ErrInvalidInput)
	}

	feePct := defaultPlatformFeePercentage
	if input.PlatformFeePercentage > 0 {
		feePct = decimal.NewFromFloat(input.PlatformFeePercentage)
	}

	publicPrice, err := pricing.ComputePublicPrice(input.BusinessPrice, feePct)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now()

	description := &input.Description
	if input.Description == "" {
		description = nil
	}

	p := &model.Product{
		BaseModel:             model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		BusinessID:            input.BusinessID,
		Name:                  input.Name,
		Description:           description,
		BusinessPrice:         input.BusinessPrice,
		PlatformFeePercentage: feePct,
		PublicPrice:           publicPrice,
		Category:              input.Category,
		StockQuantity:         input.StockQuantity,
		MinOrderQuantity:      minOrder,
		QRCode:                newQRCode(input.BusinessID),
		IsActive:              true,
		BusinessVerified:      true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return p, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	if p.BusinessID != input.BusinessID {
		return nil, product.ErrNotOwner
	}

	feePct := p.PlatformFeePercentage
	if input.PlatformFeePercentage > 0 {
		feePct = decimal.NewFromFloat(input.PlatformFeePercentage)
	}
	publicPrice, err := pricing.ComputePublicPrice(input.BusinessPrice, feePct)
	if err != nil {
		return nil, err
	}

	p.Name = input.Name
	if input.Description != "" {
		desc := input.Description
		p.Description = &desc
	} else {
		p.Description = nil
	}
	p.BusinessPrice = input.BusinessPrice
	p.PlatformFeePercentage = feePct
	p.PublicPrice = publicPrice
	p.Category = input.Category
	if input.MinOrderQuantity >= 1 {
		p.MinOrderQuantity = input.MinOrderQuantity
	}
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())

	return p, nil
}

// AdjustStock applies a restock or correction delta. A short redis lease
// serializes adjustments per product; the conditional update in the
// repository still protects against underflow if the lock is unavailable.
func (uc *productUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	if p.BusinessID != input.BusinessID {
		return nil, product.ErrNotOwner
	}

	if uc.cache != nil {
		lockKey := "lock:stock:" + input.ProductID
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
				break
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return nil, product.ErrLockBusy
		}
		defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)
	}

	ok, err := uc.repo.AdjustStock(ctx, input.ProductID, input.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, product.ErrInsufficientStock
	}

	go uc.invalidateListCache(context.Background())

	return uc.repo.FindByID(ctx, input.ProductID)
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, businessID, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // already gone
	}
	if p.BusinessID != businessID {
		return product.ErrNotOwner
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())

	return nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *productUseCase) ListPublic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, keyErr := listCacheKey(filters)

	if uc.cache != nil && keyErr == nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Count, nil
			}
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && keyErr == nil {
		payload := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(payload); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) ListByBusiness(ctx context.Context, businessID string) ([]model.Product, error) {
	return uc.repo.FindByBusiness(ctx, businessID)
}

// ScanQR resolves a scanned QR identifier to a sellable product. Inactive
// products and products of unverified businesses are treated as missing.
func (uc *productUseCase) ScanQR(ctx context.Context, qrCode string) (*model.Product, error) {
	p, err := uc.repo.FindByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive || !p.BusinessVerified {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func listCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func newQRCode(businessID string) string {
	prefix := businessID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("QR_%s_%d_%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8])
}
