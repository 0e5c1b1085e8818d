package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/order"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindProductForSale(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(`
		SELECT p.*, u.is_verified AS business_verified, u.business_name AS joined_business_name
		FROM products p
		JOIN users u ON p.business_id = u.id
		WHERE p.id = ?
	`)
	err := r.DB.GetContext(ctx, &product, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// CreateOrder writes the whole plan in one transaction. The stock decrement
// is conditional at the storage layer so two concurrent orders can never
// drive stock negative: validation earlier in the request is advisory, this
// is the authoritative guard.
func (r *PGRepository) CreateOrder(ctx context.Context, plan *order.CommitPlan) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (id, customer_id, delivery_address, total_amount, status, created_at)
		VALUES (:id, :customer_id, :delivery_address, :total_amount, :status, :created_at)
	`, plan.Order)
	if err != nil {
		return err
	}

	decrement := r.DB.Rebind(`
		UPDATE products
		SET stock_quantity = stock_quantity - ?, updated_at = ?
		WHERE id = ? AND stock_quantity >= ?
	`)

	for i := range plan.Items {
		item := &plan.Items[i]

		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, business_id, product_name, quantity,
				unit_business_price, unit_public_price,
				total_business_payout, total_customer_pays, total_platform_fee
			)
			VALUES (
				:id, :order_id, :product_id, :business_id, :product_name, :quantity,
				:unit_business_price, :unit_public_price,
				:total_business_payout, :total_customer_pays, :total_platform_fee
			)
		`, item)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, decrement,
			item.Quantity, plan.Order.CreatedAt, item.ProductID, item.Quantity)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: product %s", order.ErrInsufficientStock, item.ProductID)
		}
	}

	for i := range plan.Payments {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO business_payments (
				id, order_id, business_id, quantity_sold, unit_business_price,
				total_business_payment, platform_fee_amount, payment_status, processed_at
			)
			VALUES (
				:id, :order_id, :business_id, :quantity_sold, :unit_business_price,
				:total_business_payment, :platform_fee_amount, :payment_status, :processed_at
			)
		`, &plan.Payments[i])
		if err != nil {
			return err
		}
	}

	for i := range plan.BusinessReceipts {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO business_receipts (
				id, order_id, business_id, receipt_number, items,
				payment_amount, platform_fee, generated_at
			)
			VALUES (
				:id, :order_id, :business_id, :receipt_number, :items,
				:payment_amount, :platform_fee, :generated_at
			)
		`, &plan.BusinessReceipts[i])
		if err != nil {
			return err
		}
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO customer_receipts (
			id, order_id, customer_id, receipt_number, delivery_address,
			items, total_amount, generated_at
		)
		VALUES (
			:id, :order_id, :customer_id, :receipt_number, :delivery_address,
			:items, :total_amount, :generated_at
		)
	`, plan.CustomerReceipt)
	if err != nil {
		return err
	}

	confirm := r.DB.Rebind(`UPDATE orders SET status = ? WHERE id = ?`)
	if _, err = tx.ExecContext(ctx, confirm, model.OrderStatusConfirmed, plan.Order.ID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	plan.Order.Status = model.OrderStatusConfirmed
	return nil
}

func (r *PGRepository) FindByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	orders := []model.Order{}
	query := r.DB.Rebind(`
		SELECT o.id, o.customer_id, o.delivery_address, o.total_amount, o.status, o.created_at,
		       COUNT(oi.id) AS items_count
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		WHERE o.customer_id = ?
		GROUP BY o.id, o.customer_id, o.delivery_address, o.total_amount, o.status, o.created_at
		ORDER BY o.created_at DESC
	`)
	err := r.DB.SelectContext(ctx, &orders, query, customerID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var o model.Order
	query := r.DB.Rebind(`
		SELECT id, customer_id, delivery_address, total_amount, status, created_at, 0 AS items_count
		FROM orders WHERE id = ?
	`)
	err := r.DB.GetContext(ctx, &o, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	query := r.DB.Rebind(`SELECT * FROM order_items WHERE order_id = ?`)
	err := r.DB.SelectContext(ctx, &items, query, orderID)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus moves an order from one status to another. The old status is
// part of the predicate so concurrent transitions cannot race past the state
// machine; zero rows affected means the order was not in `from` anymore.
func (r *PGRepository) UpdateStatus(ctx context.Context, orderID, from, to string) error {
	query := r.DB.Rebind(`UPDATE orders SET status = ? WHERE id = ? AND status = ?`)
	res, err := r.DB.ExecContext(ctx, query, to, orderID, from)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return order.ErrInvalidTransition
	}
	return nil
}
