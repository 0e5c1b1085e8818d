package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/delivers/marketplace-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, account_type, first_name, last_name,
			phone, address, business_name, is_verified, verification_status,
			can_sell, created_at, updated_at
		)
		VALUES (
			:id, :email, :password_hash, :account_type, :first_name, :last_name,
			:phone, :address, :business_name, :is_verified, :verification_status,
			:can_sell, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := r.DB.Rebind(`SELECT * FROM users WHERE email = ?`)
	err := r.DB.GetContext(ctx, &u, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := r.DB.Rebind(`SELECT * FROM users WHERE id = ?`)
	err := r.DB.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepository) UpdateVerification(ctx context.Context, userID, status string, verified bool) error {
	query := r.DB.Rebind(`
		UPDATE users
		SET verification_status = ?, is_verified = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND account_type = 'business'
	`)
	_, err := r.DB.ExecContext(ctx, query, status, verified, userID)
	return err
}

func (r *PGRepository) CreateDocument(ctx context.Context, doc *model.Document) error {
	query := `
		INSERT INTO documents (
			id, user_id, document_type, file_url, file_name,
			upload_date, verification_status, admin_notes
		)
		VALUES (
			:id, :user_id, :document_type, :file_url, :file_name,
			:upload_date, :verification_status, :admin_notes
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, doc)
	return err
}

func (r *PGRepository) FindDocumentsByUser(ctx context.Context, userID string) ([]model.Document, error) {
	docs := []model.Document{}
	query := r.DB.Rebind(`SELECT * FROM documents WHERE user_id = ? ORDER BY upload_date DESC`)
	err := r.DB.SelectContext(ctx, &docs, query, userID)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *PGRepository) UpdateDocumentsStatus(ctx context.Context, userID, status string, notes *string) error {
	query := r.DB.Rebind(`
		UPDATE documents
		SET verification_status = ?, admin_notes = ?
		WHERE user_id = ?
	`)
	_, err := r.DB.ExecContext(ctx, query, status, notes, userID)
	return err
}

func (r *PGRepository) FindPendingSellers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	query := r.DB.Rebind(`
		SELECT * FROM users
		WHERE account_type = 'business' AND verification_status = 'pending'
		ORDER BY created_at ASC
	`)
	err := r.DB.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, err
	}
	return users, nil
}
