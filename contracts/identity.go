package contracts

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/vmedithon/chaincode/medical-records/models"
	"github.com/vmedithon/chaincode/medical-records/utils"
)

// IdentityContract manages patient and doctor registration
type IdentityContract struct {
	contractapi.Contract
}

// InitLedger seeds the aggregate counters
func (ic *IdentityContract) InitLedger(ctx contractapi.TransactionContextInterface) error {
	found, err := getState(ctx.GetStub(), utils.KeyStats, &models.LedgerStats{})
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return putStats(ctx.GetStub(), models.NewLedgerStats())
}

// RegisterPatient registers the calling identity as a patient. An identifier
// registers as a patient at most once; the profile's identity fields are
// immutable afterwards.
func (ic *IdentityContract) RegisterPatient(
	ctx contractapi.TransactionContextInterface,
	name string,
	email string,
	dateOfBirth int64,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if !utils.NonEmpty(name) {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if email != "" && !utils.ValidEmail(email) {
		return fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}

	stub := ctx.GetStub()
	existing, err := getPatient(stub, caller)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("patient %s: %w", caller, ErrAlreadyRegistered)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	if err := putPatient(stub, models.NewPatientProfile(caller, name, email, dateOfBirth, now)); err != nil {
		return err
	}

	stats, err := getStats(stub)
	if err != nil {
		return err
	}
	stats.TotalPatients++
	if err := putStats(stub, stats); err != nil {
		return err
	}

	return emitEvent(stub, models.EventPatientRegistered, models.RegistrationEvent{
		Address:   caller,
		Name:      name,
		Timestamp: now,
	})
}

// RegisterDoctor registers the calling identity as a doctor. The profile is
// marked verified at registration.
func (ic *IdentityContract) RegisterDoctor(
	ctx contractapi.TransactionContextInterface,
	name string,
	license string,
	specialization string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if !utils.NonEmpty(name) {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if !utils.NonEmpty(license) {
		return fmt.Errorf("%w: license cannot be empty", ErrInvalidInput)
	}

	stub := ctx.GetStub()
	existing, err := getDoctor(stub, caller)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("doctor %s: %w", caller, ErrAlreadyRegistered)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	if err := putDoctor(stub, models.NewDoctorProfile(caller, name, license, specialization, now)); err != nil {
		return err
	}

	stats, err := getStats(stub)
	if err != nil {
		return err
	}
	stats.TotalDoctors++
	if err := putStats(stub, stats); err != nil {
		return err
	}

	return emitEvent(stub, models.EventDoctorRegistered, models.RegistrationEvent{
		Address:   caller,
		Name:      name,
		Timestamp: now,
	})
}

// GetPatientInfo returns a patient profile. Callers other than the patient
// must hold an active permission or grant for that patient.
func (ic *IdentityContract) GetPatientInfo(
	ctx contractapi.TransactionContextInterface,
	patientID string,
) (*models.PatientProfile, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	stub := ctx.GetStub()
	allowed, err := canAccessPatient(stub, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("caller %s may not view patient %s: %w", caller, patientID, ErrNotAuthorized)
	}
	profile, err := getPatient(stub, patientID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("patient %s: %w", patientID, ErrNotRegistered)
	}
	return profile, nil
}

// GetDoctorInfo returns a doctor profile
func (ic *IdentityContract) GetDoctorInfo(
	ctx contractapi.TransactionContextInterface,
	doctorID string,
) (*models.DoctorProfile, error) {
	profile, err := getDoctor(ctx.GetStub(), doctorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("doctor %s: %w", doctorID, ErrNotRegistered)
	}
	return profile, nil
}

// GetLedgerStats returns the aggregate registration and upload counters
func (ic *IdentityContract) GetLedgerStats(ctx contractapi.TransactionContextInterface) (*models.LedgerStats, error) {
	return getStats(ctx.GetStub())
}
