// Package serialdb is a leveldb backed set of spent zerocoin serials.  Each
// serial is stored with the height of the block that spent it so the
// serials of a disconnected block can be removed again.
package serialdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	// serialPrefix keys map a serial to the height spending it.
	serialPrefix = []byte("s")

	// heightPrefix keys index the serials spent at a height.
	heightPrefix = []byte("h")
)

// ErrSerialExists is returned when recording a serial that is already spent.
var ErrSerialExists = errors.New("serial already recorded")

// DB is the spent serial set.  It is safe for concurrent use.
type DB struct {
	db *leveldb.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	o := opt.Options{Compression: opt.SnappyCompression}
	db, err := leveldb.OpenFile(path, &o)
	if err != nil {
		return nil, fmt.Errorf("can't open serial db %s: %w", path, err)
	}
	log.Infof("Opened serial db %s", path)
	return &DB{db: db}, nil
}

// OpenMem returns a database kept in memory.
func OpenMem() (*DB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// serialBytes encodes a serial with a leading sign byte so negative and
// positive serials of equal magnitude do not collide.
func serialBytes(serial *big.Int) []byte {
	sign := byte(1)
	if serial.Sign() < 0 {
		sign = 0
	}
	return append([]byte{sign}, serial.Bytes()...)
}

func serialKey(serial *big.Int) []byte {
	return append(append([]byte{}, serialPrefix...), serialBytes(serial)...)
}

func heightKey(height int32) []byte {
	key := make([]byte, len(heightPrefix)+4)
	copy(key, heightPrefix)
	binary.BigEndian.PutUint32(key[len(heightPrefix):], uint32(height))
	return key
}

// Contains reports whether serial has been spent.
func (d *DB) Contains(serial *big.Int) (bool, error) {
	return d.db.Has(serialKey(serial), nil)
}

// SpendHeight returns the height of the block that spent serial.
func (d *DB) SpendHeight(serial *big.Int) (int32, bool, error) {
	v, err := d.db.Get(serialKey(serial), nil)
	if err == leveldb.ErrNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(v) != 4 {
		return 0, false, fmt.Errorf("corrupt height for serial %x: %x",
			serial, v)
	}
	return int32(binary.BigEndian.Uint32(v)), true, nil
}

// RecordBlock atomically records the serials spent by the block at height.
// Nothing is written if any serial is already spent.
func (d *DB) RecordBlock(height int32, serials []*big.Int) error {
	batch := new(leveldb.Batch)
	hkey := heightKey(height)
	hval := hkey[len(heightPrefix):]
	batched := make(map[string]struct{}, len(serials))
	for _, serial := range serials {
		spent, err := d.Contains(serial)
		if err != nil {
			return err
		}
		if _, dup := batched[string(serialBytes(serial))]; spent || dup {
			return fmt.Errorf("%w: %x", ErrSerialExists, serial)
		}
		batched[string(serialBytes(serial))] = struct{}{}
		batch.Put(serialKey(serial), hval)
		batch.Put(append(append([]byte{}, hkey...), serialBytes(serial)...),
			nil)
	}
	if err := d.db.Write(batch, nil); err != nil {
		return err
	}
	log.Debugf("Recorded %d serials at height %d", len(serials), height)
	return nil
}

// Record records a single serial spent at height.
func (d *DB) Record(serial *big.Int, height int32) error {
	return d.RecordBlock(height, []*big.Int{serial})
}

// RemoveBlock deletes every serial recorded at height and returns how many
// were removed.
func (d *DB) RemoveBlock(height int32) (int, error) {
	hkey := heightKey(height)
	batch := new(leveldb.Batch)

	iter := d.db.NewIterator(util.BytesPrefix(hkey), nil)
	n := 0
	for iter.Next() {
		k := iter.Key()
		batch.Delete(append([]byte{}, k...))
		batch.Delete(append(append([]byte{}, serialPrefix...),
			k[len(hkey):]...))
		n++
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return 0, err
	}

	if err := d.db.Write(batch, nil); err != nil {
		return 0, err
	}
	log.Debugf("Removed %d serials at height %d", n, height)
	return n, nil
}
