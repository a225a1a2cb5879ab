package schedule

import "crypto/rand"

const (
	cancelCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CancelCodeLength   = 6
)

// NewCancelCode genera un código corto para consultar/cancelar sin login.
// Es un token corto: la unicidad la garantiza el llamador reintentando
// contra la base cuando hay colisión.
func NewCancelCode() string {
	buf := make([]byte, CancelCodeLength)
	rand.Read(buf)

	for i, b := range buf {
		buf[i] = cancelCodeAlphabet[int(b)%len(cancelCodeAlphabet)]
	}

	return string(buf)
}
