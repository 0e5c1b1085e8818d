package user

import (
	"context"

	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResult, error)
	Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)

	SubmitDocument(ctx context.Context, input *dto.SubmitDocumentInput) (*model.Document, error)
	ListDocuments(ctx context.Context, userID string) ([]model.Document, error)

	PendingSellers(ctx context.Context) ([]dto.PendingSeller, error)
	VerifySeller(ctx context.Context, input *dto.VerifySellerInput) error
}
