package models

// PatientProfile represents a registered patient identity
type PatientProfile struct {
	Address       string `json:"address"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	DateOfBirth   int64  `json:"dateOfBirth"`
	IsRegistered  bool   `json:"isRegistered"`
	DocumentCount int    `json:"documentCount"`
	RegisteredAt  int64  `json:"registeredAt"`
	ObjectType    string `json:"objectType"`
}

// DoctorProfile represents a registered doctor identity
type DoctorProfile struct {
	Address        string `json:"address"`
	Name           string `json:"name"`
	License        string `json:"license"`
	Specialization string `json:"specialization"`
	IsVerified     bool   `json:"isVerified"`
	DocumentCount  int    `json:"documentCount"`
	RegisteredAt   int64  `json:"registeredAt"`
	ObjectType     string `json:"objectType"`
}

// LedgerStats holds the aggregate registration and upload counters
type LedgerStats struct {
	TotalPatients  int    `json:"totalPatients"`
	TotalDoctors   int    `json:"totalDoctors"`
	TotalDocuments int    `json:"totalDocuments"`
	ObjectType     string `json:"objectType"`
}

// NewPatientProfile creates a patient profile for a first-time registration
func NewPatientProfile(address, name, email string, dateOfBirth, registeredAt int64) *PatientProfile {
	return &PatientProfile{
		Address:      address,
		Name:         name,
		Email:        email,
		DateOfBirth:  dateOfBirth,
		IsRegistered: true,
		RegisteredAt: registeredAt,
		ObjectType:   "patientProfile",
	}
}

// NewDoctorProfile creates a doctor profile for a first-time registration.
// Doctors are marked verified at registration; there is no separate
// verification workflow.
func NewDoctorProfile(address, name, license, specialization string, registeredAt int64) *DoctorProfile {
	return &DoctorProfile{
		Address:        address,
		Name:           name,
		License:        license,
		Specialization: specialization,
		IsVerified:     true,
		RegisteredAt:   registeredAt,
		ObjectType:     "doctorProfile",
	}
}

// NewLedgerStats creates a zeroed stats record
func NewLedgerStats() *LedgerStats {
	return &LedgerStats{ObjectType: "ledgerStats"}
}
