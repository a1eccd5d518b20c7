package utils

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// RequestID derives the identifier for an access request from the doctor,
// the patient and the transaction timestamp. The digest is Keccak-256 over
// doctorID, patientID and the decimal seconds value, NUL-separated so the
// encoding is unambiguous for arbitrary identifier strings. The same triple
// always yields the same id, which is how duplicate submissions in one
// second are detected.
func RequestID(doctorID, patientID string, seconds int64) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(doctorID))
	h.Write([]byte{0})
	h.Write([]byte(patientID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(seconds, 10)))
	return hex.EncodeToString(h.Sum(nil))
}
