// Package persist implements the Persistence Cell: a single serialized
// blob stored under one fixed key in a badger KV store, mirroring
// state.rs's ic_stable_structures::Cell<ConfigState, _> — CBOR in place of
// ciborium, badger in place of stable memory, but the same
// Uninitialized/Initialized state machine and the same guarantee that a
// reader only ever sees a fully-committed state, never a partial one.
package persist

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/Appic-Solutions/trsansaction-logger/store"
)

var logger = log.New("module", "persist")

var stateKey = []byte("transaction_logger/state")

// ErrNotInitialized is returned by Read/Mutate when the cell has never had
// Init called.
var ErrNotInitialized = errors.New("persist: state not initialized")

// ErrAlreadyInitialized is returned by Init when the cell already holds a
// state.
var ErrAlreadyInitialized = errors.New("persist: state already initialized")

// ErrEncode wraps a CBOR marshal failure when committing a state.
var ErrEncode = errors.New("persist: failed to encode state")

// ErrDecode wraps a CBOR unmarshal failure when loading a state.
var ErrDecode = errors.New("persist: failed to decode state")

// wireState is the CBOR-serializable projection of store.State. The
// btrees themselves aren't serializable, so Cell flattens them to slices
// on write and rebuilds them on read — the same role ConfigState::to_bytes
// plays around State in the Rust source.
type wireState struct {
	ActiveTasks              []wireTaskKey
	Minters                  []wireMinter
	EvmToIcpTxs              []wireEvmToIcpTx
	IcpToEvmTxs              []wireIcpToEvmTx
	SupportedCkErc20Tokens   []wireErc20Pair
	SupportedTwinAppicTokens []wireErc20Pair
}

// Cell is a badger-backed, CBOR-encoded single-value store for one
// store.State. It must be Open'd once at process start; all subsequent
// access goes through Read (a borrow of the current state for queries) and
// Mutate (clone, apply f, commit only if f succeeds).
type Cell struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger database at dir for use as a
// persistence cell. Callers must call Close when done.
func Open(dir string) (*Cell, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("persist: opening badger db at %q: %w", dir, err)
	}
	return &Cell{db: db}, nil
}

func (c *Cell) Close() error {
	return c.db.Close()
}

// Initialized reports whether the cell currently holds a committed state.
func (c *Cell) Initialized() (bool, error) {
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(stateKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Init commits the cell's first state. Returns ErrAlreadyInitialized if
// the cell already holds a state — the Rust source traps on this
// condition since it can only mean a double-init bug, and the caller here
// is expected to treat it the same way (a fatal startup error, not a
// recoverable one).
func (c *Cell) Init(s *store.State) error {
	initialized, err := c.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	return c.commit(s)
}

// Read loads the current state for a read-only query. Returns
// ErrNotInitialized if Init was never called.
func (c *Cell) Read() (*store.State, error) {
	var s *store.State
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotInitialized
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			loaded, err := decode(val)
			if err != nil {
				return err
			}
			s = loaded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Mutate loads the current state, clones it, applies f to the clone, and
// commits the clone only if f returns a nil error. The caller's in-flight
// view of the original state (and any concurrent Read) never observes a
// partial mutation: either f's edits are entirely visible afterward, or
// none are. Returns ErrNotInitialized if Init was never called.
func (c *Cell) Mutate(f func(*store.State) error) error {
	current, err := c.Read()
	if err != nil {
		return err
	}
	clone := current.Clone()
	if err := f(clone); err != nil {
		return err
	}
	return c.commit(clone)
}

func (c *Cell) commit(s *store.State) error {
	encoded, err := encode(s)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey, encoded)
	})
}

func encode(s *store.State) ([]byte, error) {
	wire := toWire(s)
	data, err := cbor.Marshal(wire)
	if err != nil {
		logger.Error("failed to cbor-encode state", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func decode(data []byte) (*store.State, error) {
	var wire wireState
	if err := cbor.Unmarshal(data, &wire); err != nil {
		logger.Error("failed to cbor-decode state", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return fromWire(wire), nil
}
