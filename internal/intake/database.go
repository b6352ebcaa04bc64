package intake

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	recordBucketName      = "records"
	fingerprintBucketName = "fingerprints"
)

// DB is the persistent receipt store. It owns both the processed
// records and the index of previously seen duplicate fingerprints; the
// pipeline itself never reads or writes storage.
type DB interface {
	// SaveRecord saves a record to the database
	SaveRecord(rec *Record) error

	// GetRecord retrieves a record by ID
	GetRecord(id string) (*Record, error)

	// ListRecords returns all records
	ListRecords() ([]*Record, error)

	// DeleteRecord removes a record and releases its fingerprint
	DeleteRecord(id string) error

	// SeenFingerprint reports whether the fingerprint was marked before
	SeenFingerprint(fp string) (bool, error)

	// MarkFingerprint remembers the fingerprint as seen for recordID
	MarkFingerprint(fp, recordID string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(recordBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(fingerprintBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveRecord saves a record to the database
func (b *BoltDB) SaveRecord(rec *Record) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucketName))
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		return bucket.Put([]byte(rec.ID), data)
	})
}

// GetRecord retrieves a record by ID
func (b *BoltDB) GetRecord(id string) (*Record, error) {
	var rec *Record
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("record not found: %s", id)
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecords returns all records
func (b *BoltDB) ListRecords() ([]*Record, error) {
	records := make([]*Record, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recordBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling record: %w", err)
			}
			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRecord removes a record. Its fingerprint mapping is released
// too, so re-submitting the same physical receipt after deletion is
// not flagged as a duplicate.
func (b *BoltDB) DeleteRecord(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		records := tx.Bucket([]byte(recordBucketName))
		data := records.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("record not found: %s", id)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("unmarshaling record: %w", err)
		}
		if err := records.Delete([]byte(id)); err != nil {
			return err
		}
		if rec.Fingerprint == "" {
			return nil
		}
		fingerprints := tx.Bucket([]byte(fingerprintBucketName))
		if string(fingerprints.Get([]byte(rec.Fingerprint))) == id {
			return fingerprints.Delete([]byte(rec.Fingerprint))
		}
		return nil
	})
}

// SeenFingerprint reports whether the fingerprint was marked before
func (b *BoltDB) SeenFingerprint(fp string) (bool, error) {
	var seen bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucketName))
		seen = bucket.Get([]byte(fp)) != nil
		return nil
	})
	if err != nil {
		return false, err
	}
	return seen, nil
}

// MarkFingerprint remembers the fingerprint as seen for recordID
func (b *BoltDB) MarkFingerprint(fp, recordID string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(fingerprintBucketName))
		return bucket.Put([]byte(fp), []byte(recordID))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
