package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order"
	"github.com/delivers/marketplace-service/internal/order/dto"
	"github.com/delivers/marketplace-service/internal/order/pricing"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
)

type orderUseCase struct {
	repo   order.Repository
	logger logger.ZapLogger
}

func NewOrderUseCase(repo order.Repository, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		logger: log,
	}
}

// PlaceOrder validates every cart line against live inventory, computes the
// per-line money split at checkout-time prices, and commits the order, stock
// decrements, business payments and receipts as one unit of work. Any
// validation failure aborts before a single write; any commit failure rolls
// the whole order back.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, customerID string, input *dto.PlaceOrderInput) (*dto.OrderResult, error) {
	if len(input.Items) == 0 {
		return nil, order.ErrEmptyCart
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, order.ErrMissingAddress
	}

	now := time.Now()
	orderID := uuid.New().String()

	var totalAmount int64
	items := make([]model.OrderItem, 0, len(input.Items))

	for _, line := range input.Items {
		if line.ProductID == "" || line.Quantity < 1 {
			return nil, order.ErrInvalidItem
		}

		product, err := uc.repo.FindProductForSale(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if err := order.ValidateLine(product, line.Quantity); err != nil {
			return nil, err
		}

		split := pricing.ComputeLineSplit(product.BusinessPrice, product.PublicPrice, line.Quantity)
		totalAmount += split.Total

		items = append(items, model.OrderItem{
			ID:                  uuid.New().String(),
			OrderID:             orderID,
			ProductID:           product.ID,
			BusinessID:          product.BusinessID,
			ProductName:         product.Name,
			Quantity:            line.Quantity,
			UnitBusinessPrice:   product.BusinessPrice,
			UnitPublicPrice:     product.PublicPrice,
			TotalBusinessPayout: split.BusinessPayout,
			TotalCustomerPays:   split.Total,
			TotalPlatformFee:    split.PlatformFee,
		})
	}

	plan := &order.CommitPlan{
		Order: &model.Order{
			ID:              orderID,
			CustomerID:      customerID,
			DeliveryAddress: input.DeliveryAddress,
			TotalAmount:     totalAmount,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
		},
		Items: items,
	}
	plan.Payments, plan.BusinessReceipts = assembleBusinessSide(orderID, items, now)
	plan.CustomerReceipt = assembleCustomerReceipt(orderID, customerID, input.DeliveryAddress, items, totalAmount, now)

	if err := uc.repo.CreateOrder(ctx, plan); err != nil {
		if errors.Is(err, order.ErrInsufficientStock) {
			// The conditional decrement is the authoritative stock check;
			// report it the same way as a validation failure.
			return nil, err
		}
		uc.logger.Error("order commit failed",
			zap.String("order_id", orderID),
			zap.String("customer_id", customerID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", order.ErrOrderProcessingFailed, err)
	}

	uc.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("customer_id", customerID),
		zap.Int64("total_amount", totalAmount),
		zap.Int("items_count", len(items)))

	return &dto.OrderResult{
		OrderID:     orderID,
		TotalAmount: totalAmount,
		ItemsCount:  len(items),
	}, nil
}

// assembleBusinessSide groups order lines by business and produces one
// payment row and one receipt per business. Payments are modeled as
// instantaneous, so they are born processed.
func assembleBusinessSide(orderID string, items []model.OrderItem, now time.Time) ([]model.BusinessPayment, []model.BusinessReceipt) {
	byBusiness := make(map[string][]model.OrderItem)
	businessOrder := []string{}
	for _, item := range items {
		if _, seen := byBusiness[item.BusinessID]; !seen {
			businessOrder = append(businessOrder, item.BusinessID)
		}
		byBusiness[item.BusinessID] = append(byBusiness[item.BusinessID], item)
	}

	payments := make([]model.BusinessPayment, 0, len(businessOrder))
	receipts := make([]model.BusinessReceipt, 0, len(businessOrder))

	for _, businessID := range businessOrder {
		group := byBusiness[businessID]

		var quantity int
		var payout, fee int64
		receiptItems := make([]dto.ReceiptItem, 0, len(group))
		uniformPrice := true
		firstPrice := group[0].UnitBusinessPrice
		for _, item := range group {
			quantity += item.Quantity
			payout += item.TotalBusinessPayout
			fee += item.TotalPlatformFee
			if item.UnitBusinessPrice != firstPrice {
				uniformPrice = false
			}
			receiptItems = append(receiptItems, dto.ReceiptItem{
				Name:      item.ProductName,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitBusinessPrice,
				Total:     item.TotalBusinessPayout,
			})
		}

		var unitPrice *int64
		if uniformPrice {
			unitPrice = &firstPrice
		}

		payments = append(payments, model.BusinessPayment{
			ID:                   uuid.New().String(),
			OrderID:              orderID,
			BusinessID:           businessID,
			QuantitySold:         quantity,
			UnitBusinessPrice:    unitPrice,
			TotalBusinessPayment: payout,
			PlatformFeeAmount:    fee,
			PaymentStatus:        model.PaymentStatusProcessed,
			ProcessedAt:          now,
		})

		itemsJSON, _ := json.Marshal(receiptItems)
		receipts = append(receipts, model.BusinessReceipt{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			BusinessID:    businessID,
			ReceiptNumber: newReceiptNumber("BR"),
			Items:         string(itemsJSON),
			PaymentAmount: payout,
			PlatformFee:   fee,
			GeneratedAt:   now,
		})
	}

	return payments, receipts
}

func assembleCustomerReceipt(orderID, customerID, address string, items []model.OrderItem, total int64, now time.Time) *model.CustomerReceipt {
	receiptItems := make([]dto.ReceiptItem, 0, len(items))
	for _, item := range items {
		receiptItems = append(receiptItems, dto.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPublicPrice,
			Total:     item.TotalCustomerPays,
		})
	}
	itemsJSON, _ := json.Marshal(receiptItems)

	return &model.CustomerReceipt{
		ID:              uuid.New().String(),
		OrderID:         orderID,
		CustomerID:      customerID,
		ReceiptNumber:   newReceiptNumber("CR"),
		DeliveryAddress: address,
		Items:           string(itemsJSON),
		TotalAmount:     total,
		GeneratedAt:     now,
	}
}

func newReceiptNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}

func (uc *orderUseCase) ListOrders(ctx context.Context, customerID string) ([]model.Order, error) {
	return uc.repo.FindByCustomer(ctx, customerID)
}

func (uc *orderUseCase) GetOrder(ctx context.Context, customerID, orderID string) (*model.Order, []model.OrderItem, error) {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if o == nil || o.CustomerID != customerID {
		return nil, nil, order.ErrOrderNotFound
	}
	items, err := uc.repo.FindItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	o.ItemsCount = len(items)
	return o, items, nil
}

// UpdateStatus applies an operational transition (processing, shipped,
// delivered, cancelled). The repository predicate re-checks the current
// status so a concurrent transition loses cleanly.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, orderID, status string) error {
	o, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return order.ErrOrderNotFound
	}
	if !model.CanTransitionOrderStatus(o.Status, status) {
		return fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status, status)
	}
	return uc.repo.UpdateStatus(ctx, orderID, o.Status, status)
}
