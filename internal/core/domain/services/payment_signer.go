package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"orderledger/internal/pkg/errs"
)

var (
	// ErrSignatureMismatch means the supplied signature was not produced with our secret
	// for the given gateway identifiers.
	ErrSignatureMismatch = errs.NewValueIsInvalidError("razorpay_signature")

	// ErrSigningSecretMissing is returned by NewPaymentSigner for an empty secret.
	ErrSigningSecretMissing = errs.NewValueIsRequiredError("payment signing secret")
)

// PaymentSigner implements the gateway signature contract: the lowercase hex
// HMAC-SHA256 of "{gatewayOrderId}|{gatewayPaymentId}" keyed with the server secret.
type PaymentSigner struct {
	secret []byte
}

// NewPaymentSigner returns ErrSigningSecretMissing for an empty secret.
func NewPaymentSigner(secret string) (PaymentSigner, error) {
	if secret == "" {
		return PaymentSigner{}, ErrSigningSecretMissing
	}
	return PaymentSigner{secret: []byte(secret)}, nil
}

// Sign returns the expected signature for the pair.
func (s PaymentSigner) Sign(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares signature with the expected value in constant time. Hex case is
// ignored; anything that is not valid hex fails.
func (s PaymentSigner) Verify(gatewayOrderID, gatewayPaymentID, signature string) error {
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(signature)))
	if err != nil {
		return ErrSignatureMismatch
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrSignatureMismatch
	}
	return nil
}
