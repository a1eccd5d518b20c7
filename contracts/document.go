package contracts

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/vmedithon/chaincode/medical-records/models"
	"github.com/vmedithon/chaincode/medical-records/utils"
)

// DocumentContract manages medical document records. Document content lives
// in external content-addressed storage; only the identifier and metadata
// are kept on the ledger.
type DocumentContract struct {
	contractapi.Contract
}

// UploadDocument records a document uploaded for a patient. The caller must
// be a verified doctor and the content identifier must be unused.
func (dc *DocumentContract) UploadDocument(
	ctx contractapi.TransactionContextInterface,
	documentID string,
	patientID string,
	documentType string,
	metadata string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	if !utils.NonEmpty(documentID) {
		return fmt.Errorf("%w: document id cannot be empty", ErrInvalidInput)
	}
	if !utils.NonEmpty(documentType) {
		return fmt.Errorf("%w: document type cannot be empty", ErrInvalidInput)
	}
	if len(metadata) > utils.MaxMetadataSize {
		return fmt.Errorf("%w: metadata exceeds %d bytes", ErrInvalidInput, utils.MaxMetadataSize)
	}

	stub := ctx.GetStub()
	doctor, err := getDoctor(stub, caller)
	if err != nil {
		return err
	}
	if doctor == nil || !doctor.IsVerified {
		return fmt.Errorf("only verified doctors can upload documents: %w", ErrNotAuthorized)
	}
	patient, err := getPatient(stub, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return fmt.Errorf("patient %s: %w", patientID, ErrNotRegistered)
	}
	existing, err := getDocument(stub, documentID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("document %s: %w", documentID, ErrDocumentExists)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	if err := putDocument(stub, models.NewDocument(documentID, patientID, caller, documentType, metadata, now)); err != nil {
		return err
	}
	if err := appendID(stub, utils.PatientDocsKey(patientID), documentID); err != nil {
		return err
	}
	if err := appendID(stub, utils.DoctorDocsKey(caller), documentID); err != nil {
		return err
	}

	patient.DocumentCount++
	if err := putPatient(stub, patient); err != nil {
		return err
	}
	doctor.DocumentCount++
	if err := putDoctor(stub, doctor); err != nil {
		return err
	}
	stats, err := getStats(stub)
	if err != nil {
		return err
	}
	stats.TotalDocuments++
	if err := putStats(stub, stats); err != nil {
		return err
	}

	return emitEvent(stub, models.EventDocumentUploaded, models.DocumentEvent{
		DocumentID: documentID,
		PatientID:  patientID,
		DoctorID:   caller,
		Timestamp:  now,
	})
}

// GetDocument returns a document record for the patient, the uploading
// doctor, or a grantee, and records the access on the event channel.
func (dc *DocumentContract) GetDocument(
	ctx contractapi.TransactionContextInterface,
	documentID string,
) (*models.Document, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	stub := ctx.GetStub()
	doc, err := getDocument(stub, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, ErrDocumentNotFound)
	}
	allowed, err := canAccessDocument(stub, caller, doc)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("caller %s may not view document %s: %w", caller, documentID, ErrNotAuthorized)
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return nil, err
	}
	if err := emitEvent(stub, models.EventDocumentAccessed, models.DocumentEvent{
		DocumentID: documentID,
		PatientID:  doc.PatientID,
		AccessedBy: caller,
		Timestamp:  now,
	}); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeactivateDocument retires a document. Only the document's patient or its
// uploading doctor may deactivate, regardless of the permission table, and
// the transition happens once.
func (dc *DocumentContract) DeactivateDocument(
	ctx contractapi.TransactionContextInterface,
	documentID string,
) error {
	caller, err := callerID(ctx)
	if err != nil {
		return err
	}
	stub := ctx.GetStub()
	doc, err := getDocument(stub, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("document %s: %w", documentID, ErrDocumentNotFound)
	}
	if caller != doc.PatientID && caller != doc.DoctorID {
		return fmt.Errorf("caller %s may not deactivate document %s: %w", caller, documentID, ErrNotAuthorized)
	}
	if !doc.IsActive {
		return fmt.Errorf("document %s: %w", documentID, ErrAlreadyInactive)
	}

	doc.IsActive = false
	if err := putDocument(stub, doc); err != nil {
		return err
	}

	now, err := txSeconds(ctx)
	if err != nil {
		return err
	}
	return emitEvent(stub, models.EventDocumentDeactivated, models.DocumentEvent{
		DocumentID: documentID,
		PatientID:  doc.PatientID,
		DoctorID:   doc.DoctorID,
		AccessedBy: caller,
		Timestamp:  now,
	})
}

// GetPatientDocuments returns the ids of all documents owned by a patient.
// Enumeration is denied outright for callers without access to the patient,
// rather than filtered, so document existence does not leak.
func (dc *DocumentContract) GetPatientDocuments(
	ctx contractapi.TransactionContextInterface,
	patientID string,
) ([]string, error) {
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
		return nil, fmt.Errorf("caller %s may not list documents of patient %s: %w", caller, patientID, ErrNotAuthorized)
	}
	return getIDList(stub, utils.PatientDocsKey(patientID))
}

// GetDoctorDocuments returns the ids of all documents uploaded by a doctor.
// Only that doctor, or a holder of an administrative grant, may enumerate.
func (dc *DocumentContract) GetDoctorDocuments(
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
			return nil, fmt.Errorf("caller %s may not list documents of doctor %s: %w", caller, doctorID, ErrNotAuthorized)
		}
	}
	return getIDList(stub, utils.DoctorDocsKey(doctorID))
}

// GetDocumentHistory returns every committed version of a document record,
// gated the same way as GetDocument.
func (dc *DocumentContract) GetDocumentHistory(
	ctx contractapi.TransactionContextInterface,
	documentID string,
) ([]*models.HistoricDocument, error) {
	caller, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	stub := ctx.GetStub()
	doc, err := getDocument(stub, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", documentID, ErrDocumentNotFound)
	}
	allowed, err := canAccessDocument(stub, caller, doc)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("caller %s may not view document %s: %w", caller, documentID, ErrNotAuthorized)
	}

	iter, err := stub.GetHistoryForKey(utils.DocumentKey(documentID))
	if err != nil {
		return nil, fmt.Errorf("failed to read history of document %s: %v", documentID, err)
	}
	defer iter.Close()

	var history []*models.HistoricDocument
	for iter.HasNext() {
		mod, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate history of document %s: %v", documentID, err)
		}
		entry := &models.HistoricDocument{
			TxID:     mod.TxId,
			IsDelete: mod.IsDelete,
		}
		if mod.Timestamp != nil {
			entry.Timestamp = mod.Timestamp.Seconds
		}
		if mod.Value != nil {
			var value models.Document
			if err := json.Unmarshal(mod.Value, &value); err != nil {
				return nil, fmt.Errorf("failed to unmarshal history of document %s: %v", documentID, err)
			}
			entry.Value = value
		}
		history = append(history, entry)
	}
	return history, nil
}
