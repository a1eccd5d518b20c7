package contracts

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/vmedithon/chaincode/medical-records/models"
	"github.com/vmedithon/chaincode/medical-records/utils"
)

// AccessContract manages the request/approval consent workflow and the
// administrative permission grants.
type AccessContract struct {
	contractapi.Contract
}

// RequestPatientAccess files a pending access request from the calling
// doctor for a patient's documents and returns the request id. The id is
// derived from the doctor, the patient and the transaction timestamp, so a
// resubmission within the same second is rejected as a duplicate.
func (ac *AccessContract) RequestPatientAccess(
	ctx contractapi.TransactionContextInterface,
	patientID string,
	reason string,
) (string, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return "", err
	}
	if !utils.NonEmpty(reason) {
		return "", fmt.Errorf("%w: reason cannot be empty", ErrInvalidInput)
	}

	stub := ctx.GetStub()
	doctor, err := getDoctor(stub, caller)
	if err != nil {
		return "", err
	}
	if doctor == nil || !doctor.IsVerified {
		return "", fmt.Errorf("only verified doctors can request access: %w", ErrNotAuthorized)
	}
	patient, err := getPatient(stub, patientID)
	if err != nil {
		return "", err
	}
	if patient == nil {
		return "", fmt.Errorf("patient %s: %w", patientID, ErrNotRegistered)
	}

	perm, err := getPermission(stub, caller, patientID)
	if err != nil {
		return "", err
	}
	if perm.IsActive() {
		return "", fmt.Errorf("doctor %s already has access to patient %s: %w", caller, patientID, ErrAlreadyAuthorized)
	}

	pending, err := ac.hasPendingRequest(stub, caller, patientID)
	if err != nil {
		return "", err
	}
	if pending {
		return "", fmt.Errorf("doctor %s already has a pending request for patient %s: %w", caller, patientID, ErrDuplicateRequest)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return "", err
	}
	requestID := utils.RequestID(caller, patientID, now)
	existing, err := getRequest(stub, requestID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("request %s: %w", requestID, ErrDuplicateRequest)
	}

	if err := putRequest(stub, models.NewAccessRequest(requestID, caller, patientID, reason, now)); err != nil {
		return "", err
	}
	if err := appendID(stub, utils.DoctorRequestsKey(caller), requestID); err != nil {
		return "", err
	}
	if err := appendID(stub, utils.PatientPendingKey(patientID), requestID); err != nil {
		return "", err
	}

	if err := emitEvent(stub, models.EventAccessRequested, models.AccessRequestEvent{
		RequestID: requestID,
		DoctorID:  caller,
		PatientID: patientID,
		Reason:    reason,
		Timestamp: now,
	}); err != nil {
		return "", err
	}
	return requestID, nil
}

// ApproveAccessRequest resolves a pending request in the doctor's favor and
// activates the permission. Only the request's patient may approve.
func (ac *AccessContract) ApproveAccessRequest(
	ctx contractapi.TransactionContextInterface,
	requestID string,
) error {
	return ac.resolveRequest(ctx, requestID, true)
}

// DenyAccessRequest resolves a pending request without granting anything.
// Only the request's patient may deny.
func (ac *AccessContract) DenyAccessRequest(
	ctx contractapi.TransactionContextInterface,
	requestID string,
) error {
	return ac.resolveRequest(ctx, requestID, false)
}

// RevokePatientAccess withdraws the calling patient's previously approved
// permission for a doctor. The historical request record is not touched.
func (ac *AccessContract) RevokePatientAccess(
	ctx contractapi.TransactionContextInterface,
	doctorID string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	stub := ctx.GetStub()
	patient, err := getPatient(stub, caller)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("only registered patients can revoke access: %w", ErrNotAuthorized)
	}

	perm, err := getPermission(stub, doctorID, caller)
	if err != nil {
		return err
	}
	if !perm.IsActive() {
		return fmt.Errorf("doctor %s has no active access to patient %s: %w", doctorID, caller, ErrNoActiveAccess)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	perm.Granted = false
	perm.RevokedAt = now
	if err := putPermission(stub, perm); err != nil {
		return err
	}

	return emitEvent(stub, models.EventAccessRevoked, models.PermissionEvent{
		GranteeID: doctorID,
		PatientID: caller,
		Timestamp: now,
	})
}

// CheckDoctorAccess reports whether a doctor currently holds access to a
// patient, through either the request-derived permission or an
// administrative grant.
func (ac *AccessContract) CheckDoctorAccess(
	ctx contractapi.TransactionContextInterface,
	doctorID string,
	patientID string,
) (bool, error) {
	stub := ctx.GetStub()
	perm, err := getPermission(stub, doctorID, patientID)
	if err != nil {
		return false, err
	}
	if perm.IsActive() {
		return true, nil
	}
	grant, err := getGrant(stub, doctorID)
	if err != nil {
		return false, err
	}
	return grant.IsActive(), nil
}

// GrantPermission gives the grantee blanket read access, bypassing the
// per-patient permission entirely. Any registered actor may grant.
func (ac *AccessContract) GrantPermission(
	ctx contractapi.TransactionContextInterface,
	granteeID string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if !utils.NonEmpty(granteeID) {
		return fmt.Errorf("%w: grantee cannot be empty", ErrInvalidInput)
	}

	stub := ctx.GetStub()
	registered, err := ac.isRegistered(stub, caller)
	if err != nil {
		return err
	}
	if !registered {
		return fmt.Errorf("grantor %s: %w", caller, ErrNotRegistered)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	if err := putGrant(stub, models.NewGlobalGrant(granteeID, caller, now)); err != nil {
		return err
	}

	return emitEvent(stub, models.EventPermissionGranted, models.PermissionEvent{
		GranteeID: granteeID,
		GrantorID: caller,
		Timestamp: now,
	})
}

// RevokePermission withdraws an administrative grant. Revoking a grant that
// is not active is an error, not a no-op.
func (ac *AccessContract) RevokePermission(
	ctx contractapi.TransactionContextInterface,
	granteeID string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	stub := ctx.GetStub()
	registered, err := ac.isRegistered(stub, caller)
	if err != nil {
		return err
	}
	if !registered {
		return fmt.Errorf("grantor %s: %w", caller, ErrNotRegistered)
	}

	grant, err := getGrant(stub, granteeID)
	if err != nil {
		return err
	}
	if !grant.IsActive() {
		return fmt.Errorf("grantee %s has no active grant: %w", granteeID, ErrNoActiveAccess)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	grant.Granted = false
	grant.RevokedAt = now
	if err := putGrant(stub, grant); err != nil {
		return err
	}

	return emitEvent(stub, models.EventPermissionRevoked, models.PermissionEvent{
		GranteeID: granteeID,
		GrantorID: caller,
		Timestamp: now,
	})
}

// GetAccessRequest returns a request record for its doctor, its patient, or
// an administrative grantee.
func (ac *AccessContract) GetAccessRequest(
	ctx contractapi.TransactionContextInterface,
	requestID string,
) (*models.AccessRequest, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	stub := ctx.GetStub()
	req, err := getRequest(stub, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("request %s: %w", requestID, ErrRequestNotFound)
	}
	if caller != req.DoctorID && caller != req.PatientID {
		grant, err := getGrant(stub, caller)
		if err != nil {
			return nil, err
		}
		if !grant.IsActive() {
			return nil, fmt.Errorf("caller %s may not view request %s: %w", caller, requestID, ErrNotAuthorized)
		}
	}
	return req, nil
}

// GetPatientPendingRequests returns the ids of a patient's unresolved
// requests. Only the patient may list them.
func (ac *AccessContract) GetPatientPendingRequests(
	ctx contractapi.TransactionContextInterface,
	patientID string,
) ([]string, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if caller != patientID {
		return nil, fmt.Errorf("caller %s may not list pending requests of patient %s: %w", caller, patientID, ErrNotAuthorized)
	}
	return getIDList(ctx.GetStub(), utils.PatientPendingKey(patientID))
}

// GetDoctorRequests returns the ids of every request a doctor has sent,
// resolved or not. Only that doctor or an administrative grantee may list.
func (ac *AccessContract) GetDoctorRequests(
	ctx contractapi.TransactionContextInterface,
	doctorID string,
) ([]string, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	stub := ctx.GetStub()
	if caller != doctorID {
		grant, err := getGrant(stub, caller)
		if err != nil {
			return nil, err
		}
		if !grant.IsActive() {
			return nil, fmt.Errorf("caller %s may not list requests of doctor %s: %w", caller, doctorID, ErrNotAuthorized)
		}
	}
	return getIDList(stub, utils.DoctorRequestsKey(doctorID))
}

// resolveRequest applies the single pending-to-resolved transition. Approval
// activates the permission; denial leaves the permission table untouched.
func (ac *AccessContract) resolveRequest(
	ctx contractapi.TransactionContextInterface,
	requestID string,
	approve bool,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	stub := ctx.GetStub()
	req, err := getRequest(stub, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("request %s: %w", requestID, ErrRequestNotFound)
	}
	if caller != req.PatientID {
		return fmt.Errorf("only patient %s can resolve request %s: %w", req.PatientID, requestID, ErrNotAuthorized)
	}
	if !req.IsPending {
		return fmt.Errorf("request %s: %w", requestID, ErrRequestNotPending)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	req.Resolve(approve)
	if err := putRequest(stub, req); err != nil {
		return err
	}
	if err := removeID(stub, utils.PatientPendingKey(req.PatientID), requestID); err != nil {
		return err
	}

	event := models.EventAccessDenied
	if approve {
		event = models.EventAccessApproved
		if err := putPermission(stub, models.NewAccessPermission(req.DoctorID, req.PatientID, requestID, now)); err != nil {
			return err
		}
	}
	return emitEvent(stub, event, models.AccessRequestEvent{
		RequestID: requestID,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Timestamp: now,
	})
}

// hasPendingRequest checks the patient's pending index for an unresolved
// request from this doctor.
func (ac *AccessContract) hasPendingRequest(stub shim.ChaincodeStubInterface, doctorID, patientID string) (bool, error) {
	ids, err := getIDList(stub, utils.PatientPendingKey(patientID))
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		req, err := getRequest(stub, id)
		if err != nil {
			return false, err
		}
		if req != nil && req.IsPending && req.DoctorID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

// isRegistered reports whether the id holds a patient or doctor profile
func (ac *AccessContract) isRegistered(stub shim.ChaincodeStubInterface, id string) (bool, error) {
	patient, err := getPatient(stub, id)
	if err != nil {
		return false, err
	}
	if patient != nil {
		return true, nil
	}
	doctor, err := getDoctor(stub, id)
	if err != nil {
		return false, err
	}
	return doctor != nil, nil
}
