package enums

import "fmt"

// DocumentType enumerates the supporting documents accepted on a rental
// order during approval review.
type DocumentType string

const (
	DocumentTypeIdentityCard   DocumentType = "identity_card"
	DocumentTypeLoanLetter     DocumentType = "loan_letter"
	DocumentTypeBusinessPermit DocumentType = "business_permit"
	DocumentTypeTaxID          DocumentType = "tax_id"
	DocumentTypeOther          DocumentType = "other"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeIdentityCard,
	DocumentTypeLoanLetter,
	DocumentTypeBusinessPermit,
	DocumentTypeTaxID,
	DocumentTypeOther,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
