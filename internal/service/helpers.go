package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// randomSuffix returns n random bytes hex-encoded, uppercased.
func randomSuffix(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}

// newOrderNumber builds a human-readable order number from the creation
// timestamp plus a random suffix. The suffix keeps concurrent creations within
// the same second from colliding; the unique index catches the residual case
// and the caller retries generation once.
func newOrderNumber() string {
	return "ORD" + time.Now().Format("20060102150405") + randomSuffix(2)
}

// newClientCode builds the immutable client business key.
func newClientCode() string {
	return "C" + time.Now().Format("20060102") + randomSuffix(4)
}
