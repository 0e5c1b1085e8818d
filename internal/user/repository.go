package user

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateVerification(ctx context.Context, userID, status string, verified bool) error

	CreateDocument(ctx context.Context, doc *model.Document) error
	FindDocumentsByUser(ctx context.Context, userID string) ([]model.Document, error)
	UpdateDocumentsStatus(ctx context.Context, userID, status string, notes *string) error

	FindPendingSellers(ctx context.Context) ([]model.User, error)
}
