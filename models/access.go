package models

// AccessRequest represents a doctor's time-bounded request to read a
// patient's documents. A request resolves exactly once; the record is kept
// after resolution for audit, including after a later revocation.
type AccessRequest struct {
	ID          string `json:"id"`
	DoctorID    string `json:"doctorId"`
	PatientID   string `json:"patientId"`
	Reason      string `json:"reason"`
	RequestTime int64  `json:"requestTime"`
	IsPending   bool   `json:"isPending"`
	Status      string `json:"status"`
	ObjectType  string `json:"objectType"`
}

// Request status constants
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// AccessPermission is the request-derived doctor-to-patient permission entry
type AccessPermission struct {
	DoctorID   string `json:"doctorId"`
	PatientID  string `json:"patientId"`
	Granted    bool   `json:"granted"`
	RequestID  string `json:"requestId,omitempty"`
	GrantedAt  int64  `json:"grantedAt,omitempty"`
	RevokedAt  int64  `json:"revokedAt,omitempty"`
	ObjectType string `json:"objectType"`
}

// GlobalGrant is the administrative permission entry. It is keyed by grantee
// only: an active grant bypasses the per-patient check for every patient.
type GlobalGrant struct {
	GranteeID  string `json:"granteeId"`
	GrantorID  string `json:"grantorId"`
	Granted    bool   `json:"granted"`
	GrantedAt  int64  `json:"grantedAt,omitempty"`
	RevokedAt  int64  `json:"revokedAt,omitempty"`
	ObjectType string `json:"objectType"`
}

// NewAccessRequest creates a pending access request
func NewAccessRequest(id, doctorID, patientID, reason string, requestTime int64) *AccessRequest {
	return &AccessRequest{
		ID:          id,
		DoctorID:    doctorID,
		PatientID:   patientID,
		Reason:      reason,
		RequestTime: requestTime,
		IsPending:   true,
		Status:      RequestStatusPending,
		ObjectType:  "accessRequest",
	}
}

// NewAccessPermission creates an active request-derived permission
func NewAccessPermission(doctorID, patientID, requestID string, grantedAt int64) *AccessPermission {
	return &AccessPermission{
		DoctorID:   doctorID,
		PatientID:  patientID,
		Granted:    true,
		RequestID:  requestID,
		GrantedAt:  grantedAt,
		ObjectType: "accessPermission",
	}
}

// NewGlobalGrant creates an active administrative grant
func NewGlobalGrant(granteeID, grantorID string, grantedAt int64) *GlobalGrant {
	return &GlobalGrant{
		GranteeID:  granteeID,
		GrantorID:  grantorID,
		Granted:    true,
		GrantedAt:  grantedAt,
		ObjectType: "globalGrant",
	}
}

// Resolve marks the request approved or denied. It is a no-op guard at the
// model level; callers must check IsPending first.
func (ar *AccessRequest) Resolve(approved bool) {
	ar.IsPending = false
	if approved {
		ar.Status = RequestStatusApproved
	} else {
		ar.Status = RequestStatusDenied
	}
}

// IsActive reports whether the permission is currently granted
func (ap *AccessPermission) IsActive() bool {
	return ap != nil && ap.Granted
}

// IsActive reports whether the grant is currently active
func (gg *GlobalGrant) IsActive() bool {
	return gg != nil && gg.Granted
}
