package dto

import "github.com/delivers/marketplace-service/internal/model"

// AuthResult pairs a user with their freshly issued identity token.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// PendingSeller is an admin-dashboard row: a business account awaiting
// verification together with its submitted documents.
type PendingSeller struct {
	User      model.User       `json:"user"`
	Documents []model.Document `json:"documents"`
}
