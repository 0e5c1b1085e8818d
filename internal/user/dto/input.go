package dto

type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	AccountType  string `json:"account_type"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SubmitDocumentInput struct {
	UserID       string `json:"-"`
	DocumentType string `json:"document_type"`
	FileURL      string `json:"file_url"`
	FileName     string `json:"file_name"`
}

const (
	VerifyActionApprove = "approve"
	VerifyActionReject  = "reject"
)

type VerifySellerInput struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
	Notes  string `json:"notes"`
}
