package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a client-submitted callback signature against
// HMAC-SHA256(secret, orderID + "|" + paymentID). The comparison is
// constant-time; a malformed hex signature simply fails verification.
// This is a pure predicate: the caller owns any state transition.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	return hmac.Equal(expected, provided)
}

// SignCallback produces the signature the provider would attach to a
// completion callback. Exported for tests and sandbox tooling.
func SignCallback(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
