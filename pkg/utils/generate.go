package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateReceiptID creates a unique receipt reference with timestamp
func GenerateReceiptID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: RCPT-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("RCPT-%s-%s-%s", datePart, timePart, randomPart)
}
