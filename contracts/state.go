package contracts

import (
	"encoding/json"
	"fmt"

	"github.com/golang/protobuf/ptypes"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/vmedithon/chaincode/medical-records/models"
	"github.com/vmedithon/chaincode/medical-records/utils"
)

// callerID returns the authenticated identifier of the transaction submitter
func callerID(ctx contractapi.TransactionContextInterface) (string, error) {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %v", err)
	}
	return id, nil
}

// txSeconds returns the transaction timestamp in unix seconds. The tx
// timestamp is the only time source used; reading the wall clock would make
// endorsements diverge.
func txSeconds(ctx contractapi.TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get tx timestamp: %v", err)
	}
	t, err := ptypes.Timestamp(ts)
	if err != nil {
		return 0, fmt.Errorf("invalid tx timestamp: %v", err)
	}
	return t.Unix(), nil
}

// getState unmarshals the value at key into out. It returns false with no
// error when the key is absent.
func getState(stub shim.ChaincodeStubInterface, key string, out interface{}) (bool, error) {
	data, err := stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %v", key, err)
	}
	return true, nil
}

// putState marshals value and writes it at key
func putState(stub shim.ChaincodeStubInterface, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", key, err)
	}
	if err := stub.PutState(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %v", key, err)
	}
	return nil
}

func getPatient(stub shim.ChaincodeStubInterface, patientID string) (*models.PatientProfile, error) {
	var profile models.PatientProfile
	found, err := getState(stub, utils.PatientKey(patientID), &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func putPatient(stub shim.ChaincodeStubInterface, profile *models.PatientProfile) error {
	return putState(stub, utils.PatientKey(profile.Address), profile)
}

func getDoctor(stub shim.ChaincodeStubInterface, doctorID string) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	found, err := getState(stub, utils.DoctorKey(doctorID), &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func putDoctor(stub shim.ChaincodeStubInterface, profile *models.DoctorProfile) error {
	return putState(stub, utils.DoctorKey(profile.Address), profile)
}

func getDocument(stub shim.ChaincodeStubInterface, documentID string) (*models.Document, error) {
	var doc models.Document
	found, err := getState(stub, utils.DocumentKey(documentID), &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func putDocument(stub shim.ChaincodeStubInterface, doc *models.Document) error {
	return putState(stub, utils.DocumentKey(doc.ID), doc)
}

func getRequest(stub shim.ChaincodeStubInterface, requestID string) (*models.AccessRequest, error) {
	var req models.AccessRequest
	found, err := getState(stub, utils.RequestKey(requestID), &req)
	if err != nil || !found {
		return nil, err
	}
	return &req, nil
}

func putRequest(stub shim.ChaincodeStubInterface, req *models.AccessRequest) error {
	return putState(stub, utils.RequestKey(req.ID), req)
}

func getPermission(stub shim.ChaincodeStubInterface, doctorID, patientID string) (*models.AccessPermission, error) {
	var perm models.AccessPermission
	found, err := getState(stub, utils.AccessKey(doctorID, patientID), &perm)
	if err != nil || !found {
		return nil, err
	}
	return &perm, nil
}

func putPermission(stub shim.ChaincodeStubInterface, perm *models.AccessPermission) error {
	return putState(stub, utils.AccessKey(perm.DoctorID, perm.PatientID), perm)
}

func getGrant(stub shim.ChaincodeStubInterface, granteeID string) (*models.GlobalGrant, error) {
	var grant models.GlobalGrant
	found, err := getState(stub, utils.GrantKey(granteeID), &grant)
	if err != nil || !found {
		return nil, err
	}
	return &grant, nil
}

func putGrant(stub shim.ChaincodeStubInterface, grant *models.GlobalGrant) error {
	return putState(stub, utils.GrantKey(grant.GranteeID), grant)
}

// getStats returns the aggregate counters, zeroed when the ledger has never
// recorded a registration or upload.
func getStats(stub shim.ChaincodeStubInterface) (*models.LedgerStats, error) {
	var stats models.LedgerStats
	found, err := getState(stub, utils.KeyStats, &stats)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.NewLedgerStats(), nil
	}
	return &stats, nil
}

func putStats(stub shim.ChaincodeStubInterface, stats *models.LedgerStats) error {
	return putState(stub, utils.KeyStats, stats)
}

// getIDList returns the id list stored at key, empty when absent
func getIDList(stub shim.ChaincodeStubInterface, key string) ([]string, error) {
	var ids []string
	if _, err := getState(stub, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// appendID adds id to the list stored at key
func appendID(stub shim.ChaincodeStubInterface, key, id string) error {
	ids, err := getIDList(stub, key)
	if err != nil {
		return err
	}
	return putState(stub, key, append(ids, id))
}

// removeID deletes id from the list stored at key, preserving order
func removeID(stub shim.ChaincodeStubInterface, key, id string) error {
	ids, err := getIDList(stub, key)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return putState(stub, key, kept)
}

// emitEvent publishes a typed payload on the chaincode event channel
func emitEvent(stub shim.ChaincodeStubInterface, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %v", name, err)
	}
	if err := stub.SetEvent(name, data); err != nil {
		return fmt.Errorf("failed to emit %s event: %v", name, err)
	}
	return nil
}
