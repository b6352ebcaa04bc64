package intake

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var db *BoltDB

	merchant := "STARBUCKS"
	total := 85.00

	newRecord := func(id string) *Record {
		return &Record{
			ID:          id,
			Merchant:    &merchant,
			Total:       &total,
			Currency:    "TRY",
			CategoryID:  "food_drink",
			Confidence:  0.7,
			Status:      StatusPendingReview,
			Fingerprint: "fp-" + id,
			CreatedAt:   time.Date(2024, time.December, 28, 12, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, time.December, 28, 12, 0, 0, 0, time.UTC),
		}
	}

	BeforeEach(func() {
		var err error
		db, err = NewBoltDB(filepath.Join(GinkgoT().TempDir(), "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("SaveRecord and GetRecord", func() {
		It("should round-trip a record", func() {
			rec := newRecord("rec-1")
			Expect(db.SaveRecord(rec)).To(Succeed())

			loaded, err := db.GetRecord("rec-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Merchant).To(HaveValue(Equal("STARBUCKS")))
			Expect(loaded.Total).To(HaveValue(Equal(85.00)))
			Expect(loaded.Status).To(Equal(StatusPendingReview))
			Expect(loaded.Fingerprint).To(Equal("fp-rec-1"))
		})

		It("should overwrite on save with the same ID", func() {
			rec := newRecord("rec-1")
			Expect(db.SaveRecord(rec)).To(Succeed())

			rec.Status = StatusApproved
			Expect(db.SaveRecord(rec)).To(Succeed())

			loaded, err := db.GetRecord("rec-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal(StatusApproved))
		})

		It("should error for a missing record", func() {
			_, err := db.GetRecord("missing")
			Expect(err).To(MatchError(ContainSubstring("not found")))
		})
	})

	Describe("ListRecords", func() {
		It("should return an empty slice for an empty store", func() {
			records, err := db.ListRecords()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("should return all saved records", func() {
			Expect(db.SaveRecord(newRecord("rec-1"))).To(Succeed())
			Expect(db.SaveRecord(newRecord("rec-2"))).To(Succeed())

			records, err := db.ListRecords()
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
		})
	})

	Describe("DeleteRecord", func() {
		It("should remove the record", func() {
			Expect(db.SaveRecord(newRecord("rec-1"))).To(Succeed())
			Expect(db.DeleteRecord("rec-1")).To(Succeed())

			_, err := db.GetRecord("rec-1")
			Expect(err).To(HaveOccurred())
		})

		It("should error for a missing record", func() {
			Expect(db.DeleteRecord("missing")).To(MatchError(ContainSubstring("not found")))
		})

		It("should release the record's fingerprint", func() {
			rec := newRecord("rec-1")
			Expect(db.SaveRecord(rec)).To(Succeed())
			Expect(db.MarkFingerprint(rec.Fingerprint, rec.ID)).To(Succeed())

			Expect(db.DeleteRecord("rec-1")).To(Succeed())

			seen, err := db.SeenFingerprint(rec.Fingerprint)
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(BeFalse())
		})

		It("should keep a fingerprint owned by another record", func() {
			rec := newRecord("rec-2")
			rec.Fingerprint = "fp-shared"
			Expect(db.SaveRecord(rec)).To(Succeed())
			Expect(db.MarkFingerprint("fp-shared", "rec-1")).To(Succeed())

			Expect(db.DeleteRecord("rec-2")).To(Succeed())

			seen, err := db.SeenFingerprint("fp-shared")
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(BeTrue())
		})
	})

	Describe("fingerprint index", func() {
		It("should not report an unmarked fingerprint", func() {
			seen, err := db.SeenFingerprint("fp-unknown")
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(BeFalse())
		})

		It("should report a marked fingerprint", func() {
			Expect(db.MarkFingerprint("fp-1", "rec-1")).To(Succeed())

			seen, err := db.SeenFingerprint("fp-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(BeTrue())
		})
	})
})
