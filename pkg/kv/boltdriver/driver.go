package boltdriver

import (
	"fmt"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/cuemby/stow/pkg/kv"
	"github.com/cuemby/stow/pkg/log"
)

// rootBucketName is the single bbolt bucket that backs the whole flat
// keyspace stow's bucket manager builds its own layout on top of.
var rootBucketName = []byte("stow-root")

func init() {
	kv.Register("bolt", diskDriver{})
	kv.Register("memory", memoryDriver{})
}

// diskDriver opens a disk-backed bbolt database.
type diskDriver struct{}

// Connect opens the bbolt database at path. If the file does not exist
// and flags lacks kv.FlagCreateIfNotExists, Connect fails rather than
// silently creating it.
func (diskDriver) Connect(path string, flags kv.Flags) (kv.Conn, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if !flags.Has(kv.FlagCreateIfNotExists) {
			return nil, fmt.Errorf("boltdriver: %s does not exist and FlagCreateIfNotExists was not set", path)
		}
	}

	opts := &bolt.Options{ReadOnly: flags.Has(kv.FlagReadOnly)}
	db, err := bolt.Open(path, 0o600, opts)
	if err != nil {
		return nil, err
	}
	db.NoSync = flags.Has(kv.FlagDisableSync)

	if !opts.ReadOnly {
		if err := db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(rootBucketName)
			return err
		}); err != nil {
			db.Close()
			return nil, err
		}
	}

	log.WithComponent("boltdriver").Info().Str("path", path).Msg("bbolt database opened")
	return &conn{db: db}, nil
}

// memoryDriver opens a bbolt database backed by a discarded temp file,
// for tests and scratch use.
type memoryDriver struct{}

func (memoryDriver) Connect(_ string, flags kv.Flags) (kv.Conn, error) {
	f, err := os.CreateTemp("", "stow-memory-*.db")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	db.NoSync = flags.Has(kv.FlagDisableSync)

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucketName)
		return err
	}); err != nil {
		db.Close()
		os.Remove(path)
		return nil, err
	}

	log.WithComponent("boltdriver").Info().Str("path", path).Msg("ephemeral bbolt database opened")
	return &conn{db: db, tempPath: path}, nil
}

// conn wraps an open bbolt database.
type conn struct {
	db       *bolt.DB
	tempPath string
}

// Begin starts a bbolt transaction and resolves the root bucket inside
// it, creating it on demand for writable transactions.
func (c *conn) Begin(writable bool) (kv.RawTx, error) {
	tx, err := c.db.Begin(writable)
	if err != nil {
		return nil, err
	}
	b := tx.Bucket(rootBucketName)
	if b == nil {
		if !writable {
			tx.Rollback()
			return nil, kv.ErrBucketNotFound
		}
		b, err = tx.CreateBucket(rootBucketName)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	return &rawTx{tx: tx, bucket: b}, nil
}

// Close closes the bbolt database, and for the memory driver removes the
// backing temp file.
func (c *conn) Close() error {
	err := c.db.Close()
	if c.tempPath != "" {
		os.Remove(c.tempPath)
	}
	return err
}
