package model

import "time"

const (
	DocumentTypeCedula               = "cedula"
	DocumentTypeRevenueStatement     = "revenue_statement"
	DocumentTypeBankStatement        = "bank_statement"
	DocumentTypeTaxReturn            = "tax_return"
	DocumentTypeBusinessRegistration = "business_registration"
)

// Document records verification paperwork metadata for a business account.
// File contents live in external storage; only the URL is tracked here.
type Document struct {
	ID                 string    `db:"id" json:"id"`
	UserID             string    `db:"user_id" json:"user_id"`
	DocumentType       string    `db:"document_type" json:"document_type"`
	FileURL            string    `db:"file_url" json:"file_url"`
	FileName           string    `db:"file_name" json:"file_name"`
	UploadDate         time.Time `db:"upload_date" json:"upload_date"`
	VerificationStatus string    `db:"verification_status" json:"verification_status"`
	AdminNotes         *string   `db:"admin_notes" json:"admin_notes"`
}

// ValidDocumentType reports whether t is one of the accepted document kinds.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeCedula, DocumentTypeRevenueStatement, DocumentTypeBankStatement,
		DocumentTypeTaxReturn, DocumentTypeBusinessRegistration:
		return true
	}
	return false
}
