package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	patientAddr      = "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b"
	doctorAddr       = "0xb0a9f8e7d6c5b4a3f2e1d0c9b8a7f6e5d4c3b2a1"
	otherPatientAddr = "0x2222222222222222222222222222222222222222"
	strangerAddr     = "0x9999999999999999999999999999999999999999"
)

func registerTestPatient(t *testing.T, stub *mockStub, addr string) {
	t.Helper()
	ic := new(IdentityContract)
	require.NoError(t, ic.RegisterPatient(asCaller(stub, addr), "John Doe", "john@example.com", 946684800))
}

func registerTestDoctor(t *testing.T, stub *mockStub, addr string) {
	t.Helper()
	ic := new(IdentityContract)
	require.NoError(t, ic.RegisterDoctor(asCaller(stub, addr), "Dr. Smith", "LIC12345", "Cardiology"))
}

func TestRegisterPatient(t *testing.T) {
	ic := new(IdentityContract)

	t.Run("creates profile and counts", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterPatient(asCaller(stub, patientAddr), "John Doe", "john@example.com", 946684800)
		require.NoError(t, err)

		profile, err := ic.GetPatientInfo(asCaller(stub, patientAddr), patientAddr)
		require.NoError(t, err)
		assert.Equal(t, "John Doe", profile.Name)
		assert.Equal(t, "john@example.com", profile.Email)
		assert.Equal(t, int64(946684800), profile.DateOfBirth)
		assert.True(t, profile.IsRegistered)
		assert.Zero(t, profile.DocumentCount)

		stats, err := ic.GetLedgerStats(asCaller(stub, patientAddr))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalPatients)

		assert.Contains(t, stub.events, "PatientRegistered")
	})

	t.Run("rejects duplicate registration unchanged", func(t *testing.T) {
		stub := newMockStub()
		registerTestPatient(t, stub, patientAddr)
		before := stub.snapshot()

		err := ic.RegisterPatient(asCaller(stub, patientAddr), "John Smith", "smith@example.com", 0)
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Equal(t, before, stub.state)

		stats, err := ic.GetLedgerStats(asCaller(stub, patientAddr))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalPatients)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterPatient(asCaller(stub, patientAddr), "   ", "john@example.com", 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterPatient(asCaller(stub, patientAddr), "John Doe", "not-an-email", 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("accepts empty email", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterPatient(asCaller(stub, patientAddr), "John Doe", "", 0)
		assert.NoError(t, err)
	})
}

func TestRegisterDoctor(t *testing.T) {
	ic := new(IdentityContract)

	t.Run("creates verified profile and counts", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterDoctor(asCaller(stub, doctorAddr), "Dr. Smith", "LIC12345", "Cardiology")
		require.NoError(t, err)

		profile, err := ic.GetDoctorInfo(asCaller(stub, strangerAddr), doctorAddr)
		require.NoError(t, err)
		assert.Equal(t, "Dr. Smith", profile.Name)
		assert.Equal(t, "LIC12345", profile.License)
		assert.Equal(t, "Cardiology", profile.Specialization)
		assert.True(t, profile.IsVerified)

		stats, err := ic.GetLedgerStats(asCaller(stub, doctorAddr))
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalDoctors)

		assert.Contains(t, stub.events, "DoctorRegistered")
	})

	t.Run("rejects duplicate registration unchanged", func(t *testing.T) {
		stub := newMockStub()
		registerTestDoctor(t, stub, doctorAddr)
		before := stub.snapshot()

		err := ic.RegisterDoctor(asCaller(stub, doctorAddr), "Dr. Johnson", "LIC67890", "Neurology")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
		assert.Equal(t, before, stub.state)
	})

	t.Run("rejects empty license", func(t *testing.T) {
		stub := newMockStub()
		err := ic.RegisterDoctor(asCaller(stub, doctorAddr), "Dr. Smith", "", "Cardiology")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("same identity may hold both roles", func(t *testing.T) {
		stub := newMockStub()
		registerTestPatient(t, stub, patientAddr)
		err := ic.RegisterDoctor(asCaller(stub, patientAddr), "Dr. Doe", "LIC00001", "Oncology")
		assert.NoError(t, err)
	})
}

func TestGetPatientInfoGate(t *testing.T) {
	ic := new(IdentityContract)
	ac := new(AccessContract)

	stub := newMockStub()
	registerTestPatient(t, stub, patientAddr)
	registerTestDoctor(t, stub, doctorAddr)

	t.Run("patient reads own profile", func(t *testing.T) {
		_, err := ic.GetPatientInfo(asCaller(stub, patientAddr), patientAddr)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := ic.GetPatientInfo(asCaller(stub, strangerAddr), patientAddr)
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("approved doctor may read", func(t *testing.T) {
		requestID, err := ac.RequestPatientAccess(asCaller(stub, doctorAddr), patientAddr, "checkup")
		require.NoError(t, err)
		require.NoError(t, ac.ApproveAccessRequest(asCaller(stub, patientAddr), requestID))

		_, err = ic.GetPatientInfo(asCaller(stub, doctorAddr), patientAddr)
		assert.NoError(t, err)
	})

	t.Run("unknown patient reports not registered to its owner", func(t *testing.T) {
		_, err := ic.GetPatientInfo(asCaller(stub, strangerAddr), strangerAddr)
		assert.ErrorIs(t, err, ErrNotRegistered)
	})
}

func TestGetDoctorInfoNotFound(t *testing.T) {
	ic := new(IdentityContract)
	stub := newMockStub()
	_, err := ic.GetDoctorInfo(asCaller(stub, strangerAddr), doctorAddr)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestInitLedger(t *testing.T) {
	ic := new(IdentityContract)
	stub := newMockStub()
	require.NoError(t, ic.InitLedger(asCaller(stub, strangerAddr)))

	stats, err := ic.GetLedgerStats(asCaller(stub, strangerAddr))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPatients)
	assert.Zero(t, stats.TotalDoctors)
	assert.Zero(t, stats.TotalDocuments)

	// a second init must not reset counters
	registerTestPatient(t, stub, patientAddr)
	require.NoError(t, ic.InitLedger(asCaller(stub, strangerAddr)))
	stats, err = ic.GetLedgerStats(asCaller(stub, strangerAddr))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPatients)
}
