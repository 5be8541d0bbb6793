package domain

import (
	"context"
	"math/rand/v2"
	"strings"
)

const (
	numberPrefix      = "ORD-"
	numberSuffixLen   = 6
	numberAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numberMaxAttempts = 5
)

// NumberChecker probes whether an order number is already taken.
type NumberChecker func(ctx context.Context, number string) (bool, error)

// GenerateOrderNumber produces a candidate like ORD-A3X7K9. It probes the
// checker up to five times; after that the last candidate is returned
// unchecked and the storage uniqueness constraint is the final authority.
func GenerateOrderNumber(ctx context.Context, taken NumberChecker) (string, error) {
	for attempt := 0; attempt < numberMaxAttempts; attempt++ {
		candidate := randomOrderNumber()
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return randomOrderNumber(), nil
}

func randomOrderNumber() string {
	var sb strings.Builder
	sb.Grow(len(numberPrefix) + numberSuffixLen)
	sb.WriteString(numberPrefix)
	for i := 0; i < numberSuffixLen; i++ {
		sb.WriteByte(numberAlphabet[rand.IntN(len(numberAlphabet))])
	}
	return sb.String()
}
