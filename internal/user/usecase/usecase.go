package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/pkg/logger"
	"github.com/delivers/marketplace-service/internal/user"
	"github.com/delivers/marketplace-service/internal/user/dto"
)

type userUseCase struct {
	repo   user.Repository
	tokens *auth.TokenManager
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tokens *auth.TokenManager, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

// Register creates an account. Business accounts start unverified and must
// pass the document review before they can sell; admin accounts are
// considered approved from the start.
func (uc *userUseCase) Register(ctx context.Context, input *dto.RegisterInput) (*dto.AuthResult, error) {
	if input.Email == "" || input.Password == "" || input.FirstName == "" ||
		input.LastName == "" || input.Address == "" {
		return nil, fmt.Errorf("%w: email, password, name and address are required", user.ErrInvalidInput)
	}
	switch input.AccountType {
	case model.AccountTypeAdmin, model.AccountTypeConsumer, model.AccountTypeBusiness:
	default:
		return nil, fmt.Errorf("%w: unknown account type %q", user.ErrInvalidInput, input.AccountType)
	}

	existing, err := uc.repo.FindByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	isAdmin := input.AccountType == model.AccountTypeAdmin

	verificationStatus := model.VerificationPending
	if isAdmin {
		verificationStatus = model.VerificationApproved
	}

	u := &model.User{
		BaseModel:          model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Email:              strings.ToLower(input.Email),
		PasswordHash:       hash,
		AccountType:        input.AccountType,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Phone:              optional(input.Phone),
		Address:            optional(input.Address),
		BusinessName:       optional(input.BusinessName),
		IsVerified:         isAdmin,
		VerificationStatus: verificationStatus,
		CanSell:            input.AccountType == model.AccountTypeBusiness,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(u)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("account_type", u.AccountType))

	return &dto.AuthResult{User: u, Token: token}, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.LoginInput) (*dto.AuthResult, error) {
	u, err := uc.repo.FindByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		return nil, err
	}
	if u == nil || !auth.VerifyPassword(input.Password, u.PasswordHash) {
		return nil, user.ErrInvalidCredentials
	}

	token, err := uc.tokens.Generate(u)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResult{User: u, Token: token}, nil
}

func (uc *userUseCase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// SubmitDocument records verification paperwork for a business account.
func (uc *userUseCase) SubmitDocument(ctx context.Context, input *dto.SubmitDocumentInput) (*model.Document, error) {
	if !model.ValidDocumentType(input.DocumentType) {
		return nil, fmt.Errorf("%w: unknown document type %q", user.ErrInvalidInput, input.DocumentType)
	}
	if input.FileURL == "" || input.FileName == "" {
		return nil, fmt.Errorf("%w: file url and name are required", user.ErrInvalidInput)
	}

	u, err := uc.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	if u.AccountType != model.AccountTypeBusiness {
		return nil, user.ErrNotSeller
	}

	doc := &model.Document{
		ID:                 uuid.New().String(),
		UserID:             input.UserID,
		DocumentType:       input.DocumentType,
		FileURL:            input.FileURL,
		FileName:           input.FileName,
		UploadDate:         time.Now(),
		VerificationStatus: model.VerificationPending,
	}

	if err := uc.repo.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *userUseCase) ListDocuments(ctx context.Context, userID string) ([]model.Document, error) {
	return uc.repo.FindDocumentsByUser(ctx, userID)
}

func (uc *userUseCase) PendingSellers(ctx context.Context) ([]dto.PendingSeller, error) {
	sellers, err := uc.repo.FindPendingSellers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PendingSeller, 0, len(sellers))
	for _, seller := range sellers {
		docs, err := uc.repo.FindDocumentsByUser(ctx, seller.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.PendingSeller{User: seller, Documents: docs})
	}
	return result, nil
}

// VerifySeller applies an admin approval or rejection to a business account
// and all of its submitted documents.
func (uc *userUseCase) VerifySeller(ctx context.Context, input *dto.VerifySellerInput) error {
	if input.UserID == "" {
		return fmt.Errorf("%w: user id is required", user.ErrInvalidInput)
	}
	var status string
	switch input.Action {
	case dto.VerifyActionApprove:
		status = model.VerificationApproved
	case dto.VerifyActionReject:
		status = model.VerificationRejected
	default:
		return fmt.Errorf("%w: unknown action %q", user.ErrInvalidInput, input.Action)
	}

	u, err := uc.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrNotFound
	}
	if u.AccountType != model.AccountTypeBusiness {
		return user.ErrNotSeller
	}

	verified := status == model.VerificationApproved
	if err := uc.repo.UpdateVerification(ctx, input.UserID, status, verified); err != nil {
		return err
	}
	if err := uc.repo.UpdateDocumentsStatus(ctx, input.UserID, status, optional(input.Notes)); err != nil {
		return err
	}

	uc.logger.Info("seller verification updated",
		zap.String("user_id", input.UserID),
		zap.String("status", status))

	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
