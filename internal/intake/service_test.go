package intake

import (
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fiskal/receipt-intake/internal/catalog"
)

// mockDB is a mock implementation of DB
type mockDB struct {
	records      map[string]*Record
	fingerprints map[string]string
	saveErr      error
	getErr       error
	listErr      error
	deleteErr    error
	seenErr      error
	markErr      error
}

func newMockDB() *mockDB {
	return &mockDB{
		records:      make(map[string]*Record),
		fingerprints: make(map[string]string),
	}
}

func (m *mockDB) SaveRecord(rec *Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *mockDB) GetRecord(id string) (*Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return rec, nil
}

func (m *mockDB) ListRecords() ([]*Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := make([]*Record, 0, len(m.records))
	for _, r := range m.records {
		records = append(records, r)
	}
	return records, nil
}

func (m *mockDB) DeleteRecord(id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.records[id]; !ok {
		return errors.New("record not found")
	}
	delete(m.records, id)
	return nil
}

func (m *mockDB) SeenFingerprint(fp string) (bool, error) {
	if m.seenErr != nil {
		return false, m.seenErr
	}
	_, seen := m.fingerprints[fp]
	return seen, nil
}

func (m *mockDB) MarkFingerprint(fp, recordID string) error {
	if m.markErr != nil {
		return m.markErr
	}
	m.fingerprints[fp] = recordID
	return nil
}

func (m *mockDB) Close() error {
	return nil
}

// mockTextSource is a mock implementation of ocr.TextSource
type mockTextSource struct {
	lines   []string
	scanErr error
}

func (m *mockTextSource) RecognizeText(imageData []byte, contentType string) ([]string, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.lines, nil
}

func (m *mockTextSource) Close() error {
	return nil
}

// fixedIDGenerator returns sequential IDs for deterministic tests
type fixedIDGenerator struct {
	next int
}

func (g *fixedIDGenerator) Generate() string {
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// fixedTimeSource returns a fixed time
type fixedTimeSource struct {
	now time.Time
}

func (t *fixedTimeSource) Now() time.Time {
	return t.now
}

var _ = Describe("Service", func() {
	var (
		db      *mockDB
		source  *mockTextSource
		service *Service
		now     time.Time
	)

	starbucksLines := []string{"STARBUCKS", "28.12.2024", "85,00 TL"}

	BeforeEach(func() {
		db = newMockDB()
		source = &mockTextSource{lines: starbucksLines}
		now = time.Date(2024, time.December, 29, 10, 0, 0, 0, time.UTC)
		service = NewServiceWithDeps(
			db,
			source,
			NewProcessor(catalog.Builtin()),
			"TRY",
			&fixedIDGenerator{},
			&fixedTimeSource{now: now},
		)
	})

	Describe("ProcessLines", func() {
		It("should persist the record with ID and timestamps", func() {
			rec, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ID).To(Equal("id-1"))
			Expect(rec.CreatedAt).To(Equal(now))
			Expect(db.records).To(HaveKey("id-1"))
		})

		It("should fall back to the reference currency", func() {
			rec, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Currency).To(Equal("TRY"))
		})

		It("should honor an explicit currency", func() {
			rec, err := service.ProcessLines(starbucksLines, "EUR")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Currency).To(Equal("EUR"))
		})

		It("should mark the fingerprint after the first submission", func() {
			rec, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Duplicate).To(BeFalse())
			Expect(db.fingerprints).To(HaveKey(rec.Fingerprint))
		})

		It("should flag a re-scan as duplicate without changing its status", func() {
			first, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())

			noisy := []string{"STARBUCKS", "28.12.2024", "85,00 TL", "TEŞEKKÜRLER"}
			second, err := service.ProcessLines(noisy, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Duplicate).To(BeTrue())
			Expect(second.Fingerprint).To(Equal(first.Fingerprint))
			Expect(second.Status).To(Equal(first.Status))
		})

		It("should not index the fingerprint of a duplicate under the new record", func() {
			first, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(db.fingerprints[first.Fingerprint]).To(Equal(first.ID))
		})

		It("should persist an Error record for empty input", func() {
			rec, err := service.ProcessLines(nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(StatusError))
			Expect(db.records).To(HaveKey(rec.ID))
		})

		When("the store fails", func() {
			BeforeEach(func() {
				db.saveErr = errors.New("disk full")
			})

			It("should return the error", func() {
				_, err := service.ProcessLines(starbucksLines, "")
				Expect(err).To(MatchError(ContainSubstring("saving record")))
			})
		})
	})

	Describe("ProcessImage", func() {
		It("should run recognized lines through intake", func() {
			rec, err := service.ProcessImage([]byte("image"), "image/jpeg", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Merchant).To(HaveValue(Equal("STARBUCKS")))
		})

		When("recognition fails", func() {
			BeforeEach(func() {
				source.scanErr = errors.New("model unavailable")
			})

			It("should map the failure to a persisted Error record", func() {
				rec, err := service.ProcessImage([]byte("image"), "image/jpeg", "")
				Expect(err).NotTo(HaveOccurred())
				Expect(rec.Status).To(Equal(StatusError))
			})
		})

		When("no text source is configured", func() {
			BeforeEach(func() {
				service = NewService(db, nil, NewProcessor(catalog.Builtin()), "TRY")
			})

			It("should return an error", func() {
				_, err := service.ProcessImage([]byte("image"), "image/jpeg", "")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Approve", func() {
		It("should approve a record pending review", func() {
			created, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(StatusPendingReview))

			approved, err := service.Approve(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(StatusApproved))
		})

		It("should refuse to approve a rejected record", func() {
			created, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Reject(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(created.ID)
			Expect(err).To(HaveOccurred())
			Expect(db.records[created.ID].Status).To(Equal(StatusRejected))
		})

		It("should refuse to approve an Error record", func() {
			created, err := service.ProcessLines(nil, "")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(created.ID)
			Expect(err).To(HaveOccurred())
		})

		It("should error for an unknown record", func() {
			_, err := service.Approve("missing")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Reject", func() {
		It("should reject a record pending review", func() {
			created, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())

			rejected, err := service.Reject(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.Status).To(Equal(StatusRejected))
		})

		It("should never regress an approved record", func() {
			created, err := service.ProcessLines(starbucksLines, "")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Approve(created.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Reject(created.ID)
			Expect(err).To(HaveOccurred())
			Expect(db.records[created.ID].Status).To(Equal(StatusApproved))
		})
	})
})
