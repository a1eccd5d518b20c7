package utils

import (
	"fmt"
	"strings"
)

// Key prefixes for the object types kept in world state
const (
	PrefixPatient        = "PATIENT"
	PrefixDoctor         = "DOCTOR"
	PrefixDocument       = "DOC"
	PrefixPatientDocs    = "PATIENT~DOCS"
	PrefixDoctorDocs     = "DOCTOR~DOCS"
	PrefixRequest        = "REQUEST"
	PrefixDoctorRequests = "DOCTOR~REQUESTS"
	PrefixPatientPending = "PATIENT~PENDING"
	PrefixAccess         = "ACCESS"
	PrefixGrant          = "GRANT"
	KeyStats             = "STATS"
)

// PatientKey returns the key for a patient profile
func PatientKey(patientID string) string {
	return fmt.Sprintf("%s~%s", PrefixPatient, patientID)
}

// DoctorKey returns the key for a doctor profile
func DoctorKey(doctorID string) string {
	return fmt.Sprintf("%s~%s", PrefixDoctor, doctorID)
}

// DocumentKey returns the key for a document record
func DocumentKey(documentID string) string {
	return fmt.Sprintf("%s~%s", PrefixDocument, documentID)
}

// PatientDocsKey returns the key for a patient's document-id list
func PatientDocsKey(patientID string) string {
	return fmt.Sprintf("%s~%s", PrefixPatientDocs, patientID)
}

// DoctorDocsKey returns the key for a doctor's uploaded document-id list
func DoctorDocsKey(doctorID string) string {
	return fmt.Sprintf("%s~%s", PrefixDoctorDocs, doctorID)
}

// RequestKey returns the key for an access request record
func RequestKey(requestID string) string {
	return fmt.Sprintf("%s~%s", PrefixRequest, requestID)
}

// DoctorRequestsKey returns the key for a doctor's sent request-id list
func DoctorRequestsKey(doctorID string) string {
	return fmt.Sprintf("%s~%s", PrefixDoctorRequests, doctorID)
}

// PatientPendingKey returns the key for a patient's pending request-id list
func PatientPendingKey(patientID string) string {
	return fmt.Sprintf("%s~%s", PrefixPatientPending, patientID)
}

// AccessKey returns the key for a doctor-to-patient permission entry
func AccessKey(doctorID, patientID string) string {
	return fmt.Sprintf("%s~%s~%s", PrefixAccess, doctorID, patientID)
}

// GrantKey returns the key for an administrative grant entry
func GrantKey(granteeID string) string {
	return fmt.Sprintf("%s~%s", PrefixGrant, granteeID)
}

// ParseAccessKey parses a permission key back into its doctor and patient ids
func ParseAccessKey(key string) (doctorID, patientID string, err error) {
	parts := strings.Split(key, "~")
	if len(parts) != 3 || parts[0] != PrefixAccess {
		return "", "", fmt.Errorf("invalid access key format: %s", key)
	}
	return parts[1], parts[2], nil
}
