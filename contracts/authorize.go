package contracts

import (
	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/vmedithon/chaincode/medical-records/models"
)

// canAccessPatient is the single decision point for reading a patient's
// records and profile. Access is allowed for the patient themselves, for a
// grantee holding an active request-derived permission for this patient, or
// for a grantee holding an active administrative grant. The administrative
// grant is global, not patient-scoped.
func canAccessPatient(stub shim.ChaincodeStubInterface, requesterID, patientID string) (bool, error) {
	if requesterID == patientID {
		return true, nil
	}
	perm, err := getPermission(stub, requesterID, patientID)
	if err != nil {
		return false, err
	}
	if perm.IsActive() {
		return true, nil
	}
	grant, err := getGrant(stub, requesterID)
	if err != nil {
		return false, err
	}
	return grant.IsActive(), nil
}

// canAccessDocument applies the patient-level decision plus the uploader
// allowance: the doctor who uploaded a document may read it without going
// through the request flow. An explicit revocation by the patient overrides
// the allowance, so a revoked doctor cannot fall back on authorship.
func canAccessDocument(stub shim.ChaincodeStubInterface, requesterID string, doc *models.Document) (bool, error) {
	if requesterID == doc.PatientID {
		return true, nil
	}
	perm, err := getPermission(stub, requesterID, doc.PatientID)
	if err != nil {
		return false, err
	}
	if perm.IsActive() {
		return true, nil
	}
	revoked := perm != nil && !perm.Granted
	if requesterID == doc.DoctorID && !revoked {
		return true, nil
	}
	grant, err := getGrant(stub, requesterID)
	if err != nil {
		return false, err
	}
	return grant.IsActive(), nil
}
