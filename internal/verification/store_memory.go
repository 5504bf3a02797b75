package verification

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemorySourceStore holds source records keyed by ID number. The single
// record per ID number mirrors the simplified data model; lookups remain
// per-source (see SourceRecordStore).
type InMemorySourceStore struct {
	mu      sync.RWMutex
	records map[string]SourceRecord
}

func NewInMemorySourceStore() *InMemorySourceStore {
	return &InMemorySourceStore{records: make(map[string]SourceRecord)}
}

// Load replaces any existing record with the same ID number.
func (s *InMemorySourceStore) Load(records ...SourceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.IDNumber] = r
	}
}

func (s *InMemorySourceStore) FindByIDAndSource(_ context.Context, idNumber, sourceName string) (*SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[idNumber]
	if !ok || record.SourceName != sourceName {
		return nil, ErrNotFound
	}
	out := record
	return &out, nil
}

func (s *InMemorySourceStore) SearchByIDNumber(_ context.Context, idNumber string) ([]SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []SourceRecord
	for _, record := range s.records {
		if strings.Contains(record.IDNumber, idNumber) {
			matches = append(matches, record)
		}
	}
	sortRecords(matches)
	return matches, nil
}

func (s *InMemorySourceStore) ListAll(_ context.Context) ([]SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SourceRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sortRecords(out)
	return out, nil
}

func sortRecords(records []SourceRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].SourceName != records[j].SourceName {
			return records[i].SourceName < records[j].SourceName
		}
		return records[i].IDNumber < records[j].IDNumber
	})
}

// InMemoryAttemptStore is an append-only in-memory attempt log.
type InMemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts []VerificationAttempt
}

func NewInMemoryAttemptStore() *InMemoryAttemptStore {
	return &InMemoryAttemptStore{}
}

func (s *InMemoryAttemptStore) Append(_ context.Context, attempt VerificationAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *InMemoryAttemptStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.attempts)), nil
}

func (s *InMemoryAttemptStore) CountByStatus(_ context.Context) (map[AttemptStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[AttemptStatus]int64)
	for _, a := range s.attempts {
		counts[a.Status]++
	}
	return counts, nil
}

func (s *InMemoryAttemptStore) AverageResponseTimeMs(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.attempts) == 0 {
		return 0, nil
	}
	var total int64
	for _, a := range s.attempts {
		total += a.ResponseTimeMs
	}
	return float64(total) / float64(len(s.attempts)), nil
}

// All returns a copy of every appended attempt, oldest first. Test helper.
func (s *InMemoryAttemptStore) All() []VerificationAttempt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]VerificationAttempt{}, s.attempts...)
}

// SeedRecords returns the demo identity records distributed across the mock
// sources. "19850615/10/1" deliberately exists only at ZRA.
func SeedRecords() []SourceRecord {
	now := time.Now().UTC()
	seed := func(idType IDType, idNumber, fullName, dob, gender, mobile, province, district, postal, source string) SourceRecord {
		return SourceRecord{
			ID:           uuid.NewString(),
			IDType:       idType,
			IDNumber:     idNumber,
			FullName:     fullName,
			DateOfBirth:  dob,
			Gender:       gender,
			MobileNumber: mobile,
			Province:     province,
			District:     district,
			PostalCode:   postal,
			SourceName:   source,
			IsVerified:   true,
			CreatedAt:    now,
		}
	}
	return []SourceRecord{
		seed(IDTypeNationalIdentity, "221151/61/1", "Mary Banda", "1987-03-12", "F", "+260977123451", "Lusaka", "Lusaka", "10101", SourceINRIS),
		seed(IDTypeNationalIdentity, "354872/10/1", "Peter Phiri", "1979-11-02", "M", "+260977123452", "Copperbelt", "Ndola", "21001", SourceINRIS),
		seed(IDTypePassport, "ZN184392", "Agnes Tembo", "1992-07-24", "F", "+260966123453", "Lusaka", "Chilanga", "10102", SourceINRIS),
		seed(IDTypeNationalIdentity, "19850615/10/1", "John Mwanza", "1985-06-15", "M", "+260955123454", "Lusaka", "Lusaka", "10101", SourceZRA),
		seed(IDTypeNationalIdentity, "19910822/10/1", "Grace Zulu", "1991-08-22", "F", "+260955123455", "Eastern", "Chipata", "30100", SourceZRA),
		seed(IDTypeDrivingLicense, "DL-448213", "Chanda Mulenga", "1983-01-30", "M", "+260977123456", "Copperbelt", "Kitwe", "22100", SourceZRA),
		seed(IDTypeNationalIdentity, "467778/10/1", "Beatrice Sakala", "1995-05-09", "F", "+260977123457", "Southern", "Livingstone", "60100", SourceMNOAirtel),
		seed(IDTypePassport, "ZN559301", "Moses Lungu", "1988-12-17", "M", "+260966123458", "Lusaka", "Kafue", "10103", SourceMNOAirtel),
	}
}
