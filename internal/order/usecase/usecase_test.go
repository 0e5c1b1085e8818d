package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order"
	"github.com/delivers/marketplace-service/internal/order/dto"
	"github.com/delivers/marketplace-service/internal/order/repository"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/testutil"
)

func newOrderUseCase(t *testing.T) (order.UseCase, *sqlx.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewOrderUseCase(repository.NewPGRepository(db), logger.NewNop()), db
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
	})
	assert.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Equal(t, 0, testutil.CountRows(t, db, "orders"))
}

func TestPlaceOrderMissingAddress(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, nil)

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "   ",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrMissingAddress)
}

func TestPlaceOrderInvalidItem(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: "", Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidItem)

	_, err = uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidItem)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: "missing", Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrProductUnavailable)
}

func TestPlaceOrderBelowMinimum(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.MinOrderQuantity = 5
	})

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	assert.ErrorIs(t, err, order.ErrBelowMinimumOrder)
	assert.Equal(t, 0, testutil.CountRows(t, db, "orders"))
	assert.Equal(t, 10, testutil.StockQuantity(t, db, product.ID))
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.StockQuantity = 3
	})

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 4}},
	})
	assert.ErrorIs(t, err, order.ErrInsufficientStock)
	assert.Equal(t, 0, testutil.CountRows(t, db, "orders"))
	assert.Equal(t, 3, testutil.StockQuantity(t, db, product.ID))
}

func TestPlaceOrderUnverifiedSeller(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateUser(t, db, model.AccountTypeBusiness, nil)
	product := testutil.CreateProduct(t, db, business.ID, nil)

	_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrProductUnavailable)
}

func TestPlaceOrderSuccess(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, nil) // 1000/1150, stock 10

	result, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2300), result.TotalAmount)
	assert.Equal(t, 1, result.ItemsCount)

	assert.Equal(t, 8, testutil.StockQuantity(t, db, product.ID))

	o, items, err := uc.GetOrder(context.Background(), customer.ID, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, int64(2300), o.TotalAmount)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2000), items[0].TotalBusinessPayout)
	assert.Equal(t, int64(300), items[0].TotalPlatformFee)
	assert.Equal(t, "Test Product", items[0].ProductName)

	var payment model.BusinessPayment
	require.NoError(t, db.Get(&payment,
		db.Rebind(`SELECT * FROM business_payments WHERE order_id = ?`), result.OrderID))
	assert.Equal(t, business.ID, payment.BusinessID)
	assert.Equal(t, 2, payment.QuantitySold)
	require.NotNil(t, payment.UnitBusinessPrice)
	assert.Equal(t, int64(1000), *payment.UnitBusinessPrice)
	assert.Equal(t, int64(2000), payment.TotalBusinessPayment)
	assert.Equal(t, int64(300), payment.PlatformFeeAmount)
	assert.Equal(t, model.PaymentStatusProcessed, payment.PaymentStatus)

	var receipt model.CustomerReceipt
	require.NoError(t, db.Get(&receipt,
		db.Rebind(`SELECT * FROM customer_receipts WHERE order_id = ?`), result.OrderID))
	assert.Equal(t, int64(2300), receipt.TotalAmount)
	assert.Equal(t, "123 Main St", receipt.DeliveryAddress)

	var receiptItems []dto.ReceiptItem
	require.NoError(t, json.Unmarshal([]byte(receipt.Items), &receiptItems))
	require.Len(t, receiptItems, 1)
	assert.Equal(t, int64(1150), receiptItems[0].UnitPrice)
}

func TestPlaceOrderMultipleBusinesses(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	businessA := testutil.CreateVerifiedBusiness(t, db)
	businessB := testutil.CreateVerifiedBusiness(t, db)
	productA := testutil.CreateProduct(t, db, businessA.ID, nil)
	productB := testutil.CreateProduct(t, db, businessB.ID, func(p *model.Product) {
		p.BusinessPrice = 500
		p.PublicPrice = 575
	})

	result, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items: []dto.OrderItemInput{
			{ProductID: productA.ID, Quantity: 1},
			{ProductID: productB.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1150+2*575), result.TotalAmount)

	assert.Equal(t, 2, testutil.CountRows(t, db, "business_payments"))
	assert.Equal(t, 2, testutil.CountRows(t, db, "business_receipts"))
	assert.Equal(t, 1, testutil.CountRows(t, db, "customer_receipts"))

	var payout int64
	require.NoError(t, db.Get(&payout, db.Rebind(
		`SELECT total_business_payment FROM business_payments WHERE business_id = ?`), businessB.ID))
	assert.Equal(t, int64(1000), payout)
}

func TestPlaceOrderMixedPricesNullUnitPrice(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	cheap := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.BusinessPrice = 100
		p.PublicPrice = 115
	})
	dear := testutil.CreateProduct(t, db, business.ID, nil)

	result, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items: []dto.OrderItemInput{
			{ProductID: cheap.ID, Quantity: 1},
			{ProductID: dear.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	var payment model.BusinessPayment
	require.NoError(t, db.Get(&payment,
		db.Rebind(`SELECT * FROM business_payments WHERE order_id = ?`), result.OrderID))
	assert.Nil(t, payment.UnitBusinessPrice)
	assert.Equal(t, 2, payment.QuantitySold)
	assert.Equal(t, int64(1100), payment.TotalBusinessPayment)
}

func TestPlaceOrderConcurrentStockRace(t *testing.T) {
	uc, db := newOrderUseCase(t)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, func(p *model.Product) {
		p.StockQuantity = 5
	})
	customerA := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	customerB := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)

	input := &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, customer := range []string{customerA.ID, customerB.ID} {
		wg.Add(1)
		go func(i int, customerID string) {
			defer wg.Done()
			_, errs[i] = uc.PlaceOrder(context.Background(), customerID, input)
		}(i, customer)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, order.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two competing orders must fail")
	assert.Equal(t, 2, testutil.StockQuantity(t, db, product.ID))
	assert.Equal(t, 1, testutil.CountRows(t, db, "orders"))
}

func TestGetOrderOwnership(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	other := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, nil)

	result, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, _, err = uc.GetOrder(context.Background(), other.ID, result.OrderID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, _, err = uc.GetOrder(context.Background(), customer.ID, "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, nil)

	for i := 0; i < 2; i++ {
		_, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
			DeliveryAddress: "123 Main St",
			Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := uc.ListOrders(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].ItemsCount)
}

func TestUpdateStatusTransitions(t *testing.T) {
	uc, db := newOrderUseCase(t)
	customer := testutil.CreateUser(t, db, model.AccountTypeConsumer, nil)
	business := testutil.CreateVerifiedBusiness(t, db)
	product := testutil.CreateProduct(t, db, business.ID, nil)

	result, err := uc.PlaceOrder(context.Background(), customer.ID, &dto.PlaceOrderInput{
		DeliveryAddress: "123 Main St",
		Items:           []dto.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Skipping a state is rejected.
	err = uc.UpdateStatus(context.Background(), result.OrderID, model.OrderStatusShipped)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	require.NoError(t, uc.UpdateStatus(context.Background(), result.OrderID, model.OrderStatusProcessing))
	require.NoError(t, uc.UpdateStatus(context.Background(), result.OrderID, model.OrderStatusShipped))
	require.NoError(t, uc.UpdateStatus(context.Background(), result.OrderID, model.OrderStatusDelivered))

	// Delivered is terminal, even for cancellation.
	err = uc.UpdateStatus(context.Background(), result.OrderID, model.OrderStatusCancelled)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	err = uc.UpdateStatus(context.Background(), "missing", model.OrderStatusProcessing)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
