package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/payment/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Summarize(ctx context.Context, businessID string) (*dto.Summary, error) {
	var summary dto.Summary
	query := r.DB.Rebind(`
		SELECT
			COUNT(*) AS total_payments,
			COALESCE(SUM(total_business_payment), 0) AS total_earned,
			COALESCE(SUM(platform_fee_amount), 0) AS total_fees,
			COALESCE(SUM(quantity_sold), 0) AS total_items_sold
		FROM business_payments
		WHERE business_id = ? AND payment_status = ?
	`)
	err := r.DB.GetContext(ctx, &summary, query, businessID, model.PaymentStatusProcessed)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *PGRepository) FindRecent(ctx context.Context, businessID string, limit int) ([]model.BusinessPayment, error) {
	payments := []model.BusinessPayment{}
	query := r.DB.Rebind(`
		SELECT * FROM business_payments
		WHERE business_id = ? AND payment_status = ?
		ORDER BY processed_at DESC
		LIMIT ?
	`)
	err := r.DB.SelectContext(ctx, &payments, query, businessID, model.PaymentStatusProcessed, limit)
	if err != nil {
		return nil, err
	}
	return payments, nil
}
