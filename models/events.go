package models

// Event names emitted via the chaincode event channel
const (
	EventPatientRegistered   = "PatientRegistered"
	EventDoctorRegistered    = "DoctorRegistered"
	EventDocumentUploaded    = "DocumentUploaded"
	EventDocumentAccessed    = "DocumentAccessed"
	EventDocumentDeactivated = "DocumentDeactivated"
	EventAccessRequested     = "AccessRequested"
	EventAccessApproved      = "AccessApproved"
	EventAccessDenied        = "AccessDenied"
	EventAccessRevoked       = "AccessRevoked"
	EventPermissionGranted   = "PermissionGranted"
	EventPermissionRevoked   = "PermissionRevoked"
)

// RegistrationEvent is the payload for PatientRegistered and DoctorRegistered
type RegistrationEvent struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

// DocumentEvent is the payload for document lifecycle and access events
type DocumentEvent struct {
	DocumentID string `json:"documentId"`
	PatientID  string `json:"patientId"`
	DoctorID   string `json:"doctorId,omitempty"`
	AccessedBy string `json:"accessedBy,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// AccessRequestEvent is the payload for AccessRequested/Approved/Denied
type AccessRequestEvent struct {
	RequestID string `json:"requestId"`
	DoctorID  string `json:"doctorId"`
	PatientID string `json:"patientId"`
	Reason    string `json:"reason,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// PermissionEvent is the payload for AccessRevoked and the administrative
// PermissionGranted/PermissionRevoked events
type PermissionEvent struct {
	GranteeID string `json:"granteeId"`
	PatientID string `json:"patientId,omitempty"`
	GrantorID string `json:"grantorId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
