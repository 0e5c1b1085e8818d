package model

const (
	AccountTypeAdmin    = "admin"
	AccountTypeConsumer = "consumer"
	AccountTypeBusiness = "business"
)

const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

type User struct {
	BaseModel
	Email              string  `db:"email" json:"email"`
	PasswordHash       string  `db:"password_hash" json:"-"`
	AccountType        string  `db:"account_type" json:"account_type"`
	FirstName          string  `db:"first_name" json:"first_name"`
	LastName           string  `db:"last_name" json:"last_name"`
	Phone              *string `db:"phone" json:"phone"`
	Address            *string `db:"address" json:"address"`
	BusinessName       *string `db:"business_name" json:"business_name"`
	IsVerified         bool    `db:"is_verified" json:"is_verified"`
	VerificationStatus string  `db:"verification_status" json:"verification_status"`
	CanSell            bool    `db:"can_sell" json:"can_sell"`
}
