package contracts

import (
	"crypto/x509"
	"fmt"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
)

// mockStub is a map-backed world state for unit tests. Unimplemented stub
// methods panic through the embedded nil interface, which is what we want:
// the contracts must only touch the surface exercised here.
type mockStub struct {
	shim.ChaincodeStubInterface
	state   map[string][]byte
	events  map[string][]byte
	history map[string][]*queryresult.KeyModification
	txID    string
	seconds int64
	txSeq   int
}

func newMockStub() *mockStub {
	return &mockStub{
		state:   map[string][]byte{},
		events:  map[string][]byte{},
		history: map[string][]*queryresult.KeyModification{},
		seconds: 1700000000,
	}
}

// tick advances the simulated tx timestamp and id, as if a new transaction
// were submitted.
func (ms *mockStub) tick() {
	ms.seconds++
	ms.txSeq++
	ms.txID = fmt.Sprintf("tx%04d", ms.txSeq)
}

func (ms *mockStub) GetState(key string) ([]byte, error) {
	return ms.state[key], nil
}

func (ms *mockStub) PutState(key string, value []byte) error {
	ms.state[key] = value
	ms.history[key] = append(ms.history[key], &queryresult.KeyModification{
		TxId:      ms.txID,
		Value:     append([]byte(nil), value...),
		Timestamp: &timestamp.Timestamp{Seconds: ms.seconds},
	})
	return nil
}

func (ms *mockStub) DelState(key string) error {
	delete(ms.state, key)
	ms.history[key] = append(ms.history[key], &queryresult.KeyModification{
		TxId:      ms.txID,
		IsDelete:  true,
		Timestamp: &timestamp.Timestamp{Seconds: ms.seconds},
	})
	return nil
}

func (ms *mockStub) GetTxID() string {
	return ms.txID
}

func (ms *mockStub) GetTxTimestamp() (*timestamp.Timestamp, error) {
	return &timestamp.Timestamp{Seconds: ms.seconds}, nil
}

func (ms *mockStub) SetEvent(name string, payload []byte) error {
	ms.events[name] = payload
	return nil
}

func (ms *mockStub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	return &mockHistoryIterator{mods: ms.history[key]}, nil
}

// snapshot copies the world state so tests can assert that a failed
// operation wrote nothing.
func (ms *mockStub) snapshot() map[string][]byte {
	copied := make(map[string][]byte, len(ms.state))
	for k, v := range ms.state {
		copied[k] = append([]byte(nil), v...)
	}
	return copied
}

type mockHistoryIterator struct {
	mods []*queryresult.KeyModification
	pos  int
}

func (it *mockHistoryIterator) HasNext() bool {
	return it.pos < len(it.mods)
}

func (it *mockHistoryIterator) Next() (*queryresult.KeyModification, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("no more history entries")
	}
	mod := it.mods[it.pos]
	it.pos++
	return mod, nil
}

func (it *mockHistoryIterator) Close() error {
	return nil
}

// mockClientIdentity supplies a fixed caller id
type mockClientIdentity struct {
	id string
}

func (mc *mockClientIdentity) GetID() (string, error) {
	return mc.id, nil
}

func (mc *mockClientIdentity) GetMSPID() (string, error) {
	return "TestMSP", nil
}

func (mc *mockClientIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}

func (mc *mockClientIdentity) AssertAttributeValue(string, string) error {
	return nil
}

func (mc *mockClientIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

// asCaller builds a transaction context for a new transaction submitted by
// the given identity against the shared mock state.
func asCaller(stub *mockStub, id string) *contractapi.TransactionContext {
	stub.tick()
	ctx := &contractapi.TransactionContext{}
	ctx.SetStub(stub)
	ctx.SetClientIdentity(&mockClientIdentity{id: id})
	return ctx
}
