package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	doctor := "0xb0a9f8e7d6c5b4a3f2e1d0c9b8a7f6e5d4c3b2a1"
	patient := "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b"

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t,
			RequestID(doctor, patient, 1700000000),
			RequestID(doctor, patient, 1700000000))
	})

	t.Run("sensitive to every field", func(t *testing.T) {
		base := RequestID(doctor, patient, 1700000000)
		assert.NotEqual(t, base, RequestID(doctor, patient, 1700000001))
		assert.NotEqual(t, base, RequestID(patient, doctor, 1700000000))
		assert.NotEqual(t, base, RequestID(doctor, "someone-else", 1700000000))
	})

	t.Run("separators keep the encoding unambiguous", func(t *testing.T) {
		// without separators these two triples would collide
		assert.NotEqual(t,
			RequestID("ab", "c", 1),
			RequestID("a", "bc", 1))
	})

	t.Run("hex encoded 32 bytes", func(t *testing.T) {
		id := RequestID(doctor, patient, 1700000000)
		assert.Len(t, id, 64)
		assert.Regexp(t, "^[0-9a-f]+$", id)
	})
}
