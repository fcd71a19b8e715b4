// Package id generates human-facing references shown on receipts and
// order history. References are deterministic projections of internal ids,
// never stored.
package id

import "fmt"

// hashToModulo maps an arbitrary string to [0, modulo) with a stable
// 31-multiplier rolling hash, so the same order id always renders the
// same reference.
func hashToModulo(input string, modulo uint32) uint32 {
	var hash uint32
	for i := 0; i < len(input); i++ {
		hash = hash*31 + uint32(input[i])
	}
	return hash % modulo
}

// OrderReference derives the 8-digit reference printed on order history
// and receipts from the order's internal id.
func OrderReference(orderID string) string {
	return fmt.Sprintf("%08d", hashToModulo(orderID, 100000000))
}
