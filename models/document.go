package models

// Document represents a medical document reference on the ledger. The ID is
// the content identifier of the document blob in external storage; the
// chaincode never resolves it.
type Document struct {
	ID           string `json:"id"`
	PatientID    string `json:"patientId"`
	DoctorID     string `json:"doctorId"`
	DocumentType string `json:"documentType"`
	Metadata     string `json:"metadata"`
	Timestamp    int64  `json:"timestamp"`
	IsActive     bool   `json:"isActive"`
	ObjectType   string `json:"objectType"`
}

// HistoricDocument represents one committed version of a document record
type HistoricDocument struct {
	TxID      string   `json:"txId"`
	Value     Document `json:"value"`
	Timestamp int64    `json:"timestamp"`
	IsDelete  bool     `json:"isDelete"`
}

// NewDocument creates an active document record
func NewDocument(id, patientID, doctorID, documentType, metadata string, timestamp int64) *Document {
	return &Document{
		ID:           id,
		PatientID:    patientID,
		DoctorID:     doctorID,
		DocumentType: documentType,
		Metadata:     metadata,
		Timestamp:    timestamp,
		IsActive:     true,
		ObjectType:   "document",
	}
}
