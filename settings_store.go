package surrender

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// createDirectoryIfNotExist permits to check if a directory exist
// and create it if not. An error will be return if there is any
func createDirectoryIfNotExist(d string, perm fs.FileMode) error {
	if _, err := os.Stat(d); os.IsNotExist(err) {
		if err := os.MkdirAll(d, perm); err != nil {
			return err
		}
		return nil
	}
	return nil
}

// NewBoltStorage opens or creates the settings database
func NewBoltStorage(options BoltOptions) (*BoltStore, error) {
	var (
		db  *bolt.DB
		err error
	)
	if options.DataDir == "" {
		return nil, ErrDataDirRequired
	}
	if options.Options == nil {
		options.Options = bolt.DefaultOptions
	}
	dbdir := filepath.Join(options.DataDir, "db")
	if err := createDirectoryIfNotExist(dbdir, 0750); err != nil {
		return nil, fmt.Errorf("fail to create directory %s: %w", dbdir, err)
	}
	if db, err = bolt.Open(filepath.Join(dbdir, dbFileName), 0600, options.Options); err != nil {
		return nil, err
	}

	store := &BoltStore{
		dataDir: options.DataDir,
		db:      db,
	}

	if !options.Options.ReadOnly {
		if err := store.initializeBuckets(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return store, nil
}

// initializeBuckets will initialize all buckets
func (b *BoltStore) initializeBuckets() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSettingsName))
		return err
	})
}

// Close will close bolt database
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// SetSetting stores the raw value of the provided variable key
func (b *BoltStore) SetSetting(key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSettingsName))
		if bucket == nil {
			return ErrStoreClosed
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

// GetSetting fetches the raw value of the provided variable key.
// An error will be returned if the key is not found
func (b *BoltStore) GetSetting(key string) (string, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSettingsName))
		if bucket == nil {
			return ErrStoreClosed
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// value is only valid during the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	return string(value), err
}

// GetSettings returns all stored variable keys with their raw value
func (b *BoltStore) GetSettings() (map[string]string, error) {
	settings := make(map[string]string)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSettingsName))
		if bucket == nil {
			return ErrStoreClosed
		}
		return bucket.ForEach(func(k, v []byte) error {
			settings[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}
