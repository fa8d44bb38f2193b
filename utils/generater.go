package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

func GenerateOTP() string {
	// Generate a 4-digit OTP
	var number [1]byte
	rand.Read(number[:])
	return fmt.Sprintf("%04d", int(number[0])%10000)
}

// GenerateReceiptID returns a short unique receipt id for payment records
func GenerateReceiptID() string {
	return fmt.Sprintf("rcpt_%s", uuid.New().String()[:12])
}
