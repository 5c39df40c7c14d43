package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	configBucket  = []byte("config")
	secretsBucket = []byte("secrets")
)

// Config keys
var (
	configVersion = []byte("version")
	configCreated = []byte("created")
)

// Entry describes one secret in the index
type Entry struct {
	Label    string    `json:"label"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Size     int64     `json:"size"` // ciphertext file size in bytes
}

// Index provides BBolt-based metadata storage for sealbox
type Index struct {
	db *bolt.DB
}

// Open opens or creates the index database and ensures its bucket structure
func Open(path string) (*Index, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{configBucket, secretsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(configBucket)
		if config.Get(configVersion) == nil {
			if err := config.Put(configVersion, []byte("1")); err != nil {
				return err
			}
			created, _ := time.Now().MarshalBinary()
			if err := config.Put(configCreated, created); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize index: %w", err)
	}

	return &Index{db: db}, nil
}

// Close closes the database
func (ix *Index) Close() error {
	return ix.db.Close()
}

func entryKey(label, name string) []byte {
	return []byte(label + "/" + name)
}

// Put records a secret write. The Created timestamp of an existing entry is
// preserved; Modified is always set to now.
func (ix *Index) Put(label, name string, size int64) error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		secrets := tx.Bucket(secretsBucket)
		now := time.Now()

		entry := Entry{
			Label:    label,
			Name:     name,
			Created:  now,
			Modified: now,
			Size:     size,
		}
		if data := secrets.Get(entryKey(label, name)); data != nil {
			var prev Entry
			if err := json.Unmarshal(data, &prev); err == nil {
				entry.Created = prev.Created
			}
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return secrets.Put(entryKey(label, name), data)
	})
}

// Delete removes a secret's entry. Removing a missing entry is not an error.
func (ix *Index) Delete(label, name string) error {
	return ix.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(secretsBucket).Delete(entryKey(label, name))
	})
}

// Get returns the entry for one secret, or nil if it is not indexed
func (ix *Index) Get(label, name string) (*Entry, error) {
	var entry *Entry
	err := ix.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(secretsBucket).Get(entryKey(label, name))
		if data == nil {
			return nil
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// List returns all entries under a label, sorted by name. An empty label
// returns every entry in the index.
func (ix *Index) List(label string) ([]Entry, error) {
	var entries []Entry
	err := ix.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(secretsBucket).ForEach(func(k, v []byte) error {
			if label != "" && !strings.HasPrefix(string(k), label+"/") {
				return nil
			}
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt index entry %s: %w", k, err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Label != entries[j].Label {
			return entries[i].Label < entries[j].Label
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Labels returns the distinct labels present in the index, sorted
func (ix *Index) Labels() ([]string, error) {
	seen := make(map[string]bool)
	err := ix.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(secretsBucket).ForEach(func(k, v []byte) error {
			if i := strings.IndexByte(string(k), '/'); i > 0 {
				seen[string(k[:i])] = true
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// Created returns the index creation timestamp
func (ix *Index) Created() (time.Time, error) {
	var created time.Time
	err := ix.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(configBucket).Get(configCreated)
		if data == nil {
			return fmt.Errorf("creation time not found")
		}
		return created.UnmarshalBinary(data)
	})
	return created, err
}
