package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/product/dto"
)

const productSelect = `
	SELECT p.*, u.is_verified AS business_verified, u.business_name AS joined_business_name
	FROM products p
	JOIN users u ON p.business_id = u.id
`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, business_id, name, description, business_price,
			platform_fee_percentage, public_price, category, stock_quantity,
			min_order_quantity, qr_code, is_active, created_at, updated_at
		)
		VALUES (
			:id, :business_id, :name, :description, :business_price,
			:platform_fee_percentage, :public_price, :category, :stock_quantity,
			:min_order_quantity, :qr_code, :is_active, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(productSelect + ` WHERE p.id = ?`)
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByQRCode(ctx context.Context, qrCode string) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(productSelect + ` WHERE p.qr_code = ?`)
	err := r.DB.GetContext(ctx, &product, query, qrCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// FindAll lists the public catalog: active products of verified businesses.
func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{"p.is_active = TRUE", "u.is_verified = TRUE"}
	args := []interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, f.Category)
	}
	if f.SearchQuery != "" {
		// LOWER/LIKE instead of ILIKE so the same query runs on the
		// SQLite test databases.
		conditions = append(conditions, "(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)")
		pattern := "%" + strings.ToLower(f.SearchQuery) + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	countQuery := r.DB.Rebind(`SELECT count(*) FROM products p JOIN users u ON p.business_id = u.id` + whereClause)
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	orderBy := "p.created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "p.name"
		case "price":
			orderBy = "p.public_price"
		case "created_at":
			orderBy = "p.created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := productSelect + whereClause + " ORDER BY " + orderBy
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) FindByBusiness(ctx context.Context, businessID string) ([]model.Product, error) {
	products := []model.Product{}
	query := r.DB.Rebind(productSelect + ` WHERE p.business_id = ? ORDER BY p.created_at DESC`)
	err := r.DB.SelectContext(ctx, &products, query, businessID)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = :name,
		    description = :description,
		    business_price = :business_price,
		    platform_fee_percentage = :platform_fee_percentage,
		    public_price = :public_price,
		    category = :category,
		    min_order_quantity = :min_order_quantity,
		    is_active = :is_active,
		    updated_at = :updated_at
		WHERE id = :id AND business_id = :business_id
	`
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM products WHERE id = ?`), id)
	return err
}

func (r *PGRepository) AdjustStock(ctx context.Context, productID string, delta int) (bool, error) {
	query := r.DB.Rebind(`
		UPDATE products
		SET stock_quantity = stock_quantity + ?
		WHERE id = ? AND stock_quantity + ? >= 0
	`)
	res, err := r.DB.ExecContext(ctx, query, delta, productID, delta)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) IsBusinessVerified(ctx context.Context, businessID string) (bool, error) {
	var verified bool
	query := r.DB.Rebind(`SELECT is_verified FROM users WHERE id = ? AND account_type = ?`)
	err := r.DB.GetContext(ctx, &verified, query, businessID, model.AccountTypeBusiness)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return verified, nil
}
