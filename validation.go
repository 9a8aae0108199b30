package bnccdoc

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ValidationCodeLength is the number of hex characters kept from the digest.
const ValidationCodeLength = 12

// ValidationCode derives the authenticity code of a document from its
// identity and its owner's identity. The code is never stored: rendering the
// same document again yields the same code.
func ValidationCode(documentID, ownerID string) string {
	sum := sha256.Sum256([]byte(documentID + "-" + ownerID))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:ValidationCodeLength])
}

// PlanValidationCode is the code of a single-plan document.
func PlanValidationCode(p *Plan) string {
	return ValidationCode(strconv.FormatInt(p.ID, 10), strconv.FormatInt(p.OwnerID, 10))
}

// YearlyValidationCode is the code of a yearly aggregate requested by userID.
func YearlyValidationCode(year string, userID int64) string {
	return ValidationCode(year, strconv.FormatInt(userID, 10))
}

// VerificationURL is the public address a QR code points to.
func VerificationURL(domain, code string) string {
	domain = strings.TrimSuffix(strings.TrimPrefix(domain, "https://"), "/")
	return "https://" + domain + "/validar/" + code
}
