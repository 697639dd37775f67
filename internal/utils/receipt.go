package utils

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// receiptBytes is how much of a random UUID goes into a receipt code; ten
// bytes keep codes around fourteen characters while staying collision-free
// for a park's sales volume.
const receiptBytes = 10

// NewReceiptCode returns a short base58 code identifying one purchase. The
// alphabet leaves out 0, O, I and l so codes can be read back over a counter.
func NewReceiptCode() string {
	id := uuid.New()
	return base58.Encode(id[:receiptBytes])
}

// ValidReceiptCode reports whether code decodes as a receipt produced by
// NewReceiptCode.
func ValidReceiptCode(code string) bool {
	b, err := base58.Decode(code)
	return err == nil && len(b) == receiptBytes
}
