package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_secret"
	sig := signPayload("order_abc", "pay_xyz", secret)

	assert.True(t, VerifyPaymentSignature("order_abc", "pay_xyz", sig, secret))
}

func TestVerifyPaymentSignatureRejectsTampering(t *testing.T) {
	secret := "test_secret"
	sig := signPayload("order_abc", "pay_xyz", secret)

	assert.False(t, VerifyPaymentSignature("order_abc", "pay_other", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_other", "pay_xyz", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_abc", "pay_xyz", sig, "wrong_secret"))
	assert.False(t, VerifyPaymentSignature("order_abc", "pay_xyz", "not-a-signature", secret))
}
