package utils

import (
	"fmt"
	"math/rand"
	"strconv"
)

// FormatDocumentNo renders a sequence as PREFIX-0001
func FormatDocumentNo(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// RandomBarcode returns a 5-digit barcode without a leading zero
func RandomBarcode() string {
	return strconv.Itoa(10000 + rand.Intn(90000))
}
