// Package store caches flow direction rasters in a BadgerDB keyed by a digest
// of the elevation grid and the options it was processed with.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/maseology/flwdir"
)

// ErrNotFound is returned by Get when the key has no cached raster.
var ErrNotFound = errors.New("store: not found")

const prefix = "flwdir/"

// Options configures the cache.
type Options struct {
	// Dir holds the BadgerDB files. Required unless InMemory.
	Dir string

	// InMemory runs BadgerDB without disk persistence.
	InMemory bool

	// Logger receives badger warnings and errors; nil discards them.
	Logger *zap.SugaredLogger
}

// Store is a BadgerDB backed raster cache.
type Store struct {
	db *badger.DB
}

// Open opens or creates the cache.
func Open(o Options) (*Store, error) {
	if !o.InMemory && o.Dir == "" {
		return nil, errors.New("store: Options.Dir is required for on-disk mode")
	}
	dbOpts := badger.DefaultOptions(o.Dir)
	if o.InMemory {
		dbOpts = dbOpts.WithInMemory(true)
	}
	log := o.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := badger.Open(dbOpts.WithLogger(badgerLogger{log}))
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", o.Dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key digests an elevation grid and the options affecting its processing.
func Key(z []float64, nrow, ncol int, o flwdir.Options) string {
	b := make([]byte, 0, 8*(len(z)+16))
	f := func(v float64) { b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v)) }
	i := func(v int) { b = binary.LittleEndian.AppendUint64(b, uint64(v)) }

	i(nrow)
	i(ncol)
	f(o.NodataValue())
	for _, v := range o.Transform {
		f(v)
	}
	if o.LatLon {
		i(1)
	} else {
		i(0)
	}
	f(o.MaxDepth)
	b = append(b, o.Outlets...)
	i(len(o.Idxs))
	for _, v := range o.Idxs {
		i(v)
	}
	for _, v := range z {
		f(v)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}

// Get returns the raster cached under key.
func (s *Store) Get(_ context.Context, key string) (*flwdir.FlwDirRaster, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefix + key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap flwdir.Snapshot
	if err := msgpack.Unmarshal(val, &snap); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return flwdir.FromSnapshot(&snap)
}

// Put caches r under key, replacing any previous entry.
func (s *Store) Put(_ context.Context, key string, r *flwdir.FlwDirRaster) error {
	data, err := msgpack.Marshal(r.Snapshot())
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefix+key), data)
	})
}

// Delete removes key; deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefix + key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Keys yields the cached keys in ascending order.
func (s *Store) Keys(_ context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := s.db.View(func(txn *badger.Txn) error {
			iterOpts := badger.DefaultIteratorOptions
			iterOpts.PrefetchValues = false
			iterOpts.Prefix = []byte(prefix)
			it := txn.NewIterator(iterOpts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				k := string(it.Item().Key())
				if !yield(k[len(prefix):], nil) {
					return nil
				}
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// badgerLogger routes badger output to zap, dropping info and debug messages.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l badgerLogger) Errorf(f string, v ...any)   { l.log.Errorf("[badger] "+f, v...) }
func (l badgerLogger) Warningf(f string, v ...any) { l.log.Warnf("[badger] "+f, v...) }
func (badgerLogger) Infof(string, ...any)          {}
func (badgerLogger) Debugf(string, ...any)         {}
