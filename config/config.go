// Package config defines the logger's startup configuration: which
// minters to monitor, their fee schedules and starting cursors, the
// badger data directory, and the scrape/reap cron schedules. It is loaded
// from TOML with naoina/toml the same way the teacher's dbsyncer/gasp
// packages load their DBConfig, including a hand-written gencodec-style
// Marshal/UnmarshalTOML pair in gen_config.go so optional fields don't
// clobber defaults with zero values.
package config

import (
	"fmt"
	"math/big"
	"os"

	"github.com/naoina/toml"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

// MinterArgs describes one minter to register at startup, mirroring
// MinterArgs in the Rust source's endpoints module.
type MinterArgs struct {
	ChainID           store.ChainID
	MinterID          string
	Endpoint          string
	Oprator           string
	LastObservedEvent uint64
	LastScrapedEvent  uint64
	EvmToIcpFee       string
	IcpToEvmFee       string
}

// Minter parses args into a store.Minter, the same role
// Minter::from_minter_args plays in state.rs.
func (a MinterArgs) Minter() (store.Minter, error) {
	id, err := principal.Parse(a.MinterID)
	if err != nil {
		return store.Minter{}, fmt.Errorf("config: minter_id: %w", err)
	}
	oprator, err := store.ParseOprator(a.Oprator)
	if err != nil {
		return store.Minter{}, err
	}
	evmToIcpFee, ok := new(big.Int).SetString(a.EvmToIcpFee, 10)
	if !ok {
		return store.Minter{}, fmt.Errorf("config: invalid evm_to_icp_fee %q", a.EvmToIcpFee)
	}
	icpToEvmFee, ok := new(big.Int).SetString(a.IcpToEvmFee, 10)
	if !ok {
		return store.Minter{}, fmt.Errorf("config: invalid icp_to_evm_fee %q", a.IcpToEvmFee)
	}
	return store.Minter{
		ID:                id,
		ChainID:           a.ChainID,
		Oprator:           oprator,
		LastObservedEvent: a.LastObservedEvent,
		LastScrapedEvent:  a.LastScrapedEvent,
		EvmToIcpFee:       evmToIcpFee,
		IcpToEvmFee:       icpToEvmFee,
	}, nil
}

// TokenPairArgs registers one supported ERC20/ckERC20 twin-token mapping at
// startup, mirroring the token-pair entries endpoints::InitArgs carries
// alongside its minter list.
type TokenPairArgs struct {
	ChainID      store.ChainID
	Erc20Address string
	IcrcLedgerID string
	Oprator      string
}

// TokenPair parses a into a store.Erc20Identifier/principal pair ready for
// State.RecordErc20TwinPair.
func (a TokenPairArgs) TokenPair() (store.Erc20Identifier, principal.Principal, store.Oprator, error) {
	addr, err := chainaddr.ParseAddress(a.Erc20Address)
	if err != nil {
		return store.Erc20Identifier{}, nil, 0, fmt.Errorf("config: erc20_address: %w", err)
	}
	ledgerID, err := principal.Parse(a.IcrcLedgerID)
	if err != nil {
		return store.Erc20Identifier{}, nil, 0, fmt.Errorf("config: icrc_ledger_id: %w", err)
	}
	oprator, err := store.ParseOprator(a.Oprator)
	if err != nil {
		return store.Erc20Identifier{}, nil, 0, err
	}
	return store.Erc20Identifier{Erc20Address: addr, ChainID: a.ChainID}, ledgerID, oprator, nil
}

// InitArgs is the top-level startup configuration, mirroring InitArgs in
// the Rust source's endpoints module plus the ambient fields (data
// directory, cron schedules) the Rust canister's init() never needed
// since the IC scheduler owns timers there.
type InitArgs struct {
	DataDir        string          `toml:",omitempty"`
	ScrapeSchedule string          `toml:",omitempty"`
	ReapSchedule   string          `toml:",omitempty"`
	HTTPAddr       string          `toml:",omitempty"`
	Minters        []MinterArgs    `toml:",omitempty"`
	TokenPairs     []TokenPairArgs `toml:",omitempty"`
}

// DefaultInitArgs returns the baseline configuration, analogous to
// go-ethereum's DefaultConfig package vars: a sane local default for
// every field a TOML file may omit.
func DefaultInitArgs() InitArgs {
	return InitArgs{
		DataDir:        "./txlogger-data",
		ScrapeSchedule: "@every 30s",
		ReapSchedule:   "@every 1h",
		HTTPAddr:       "127.0.0.1:8080",
	}
}

// LoadFile reads and parses a TOML config file, applying it on top of
// DefaultInitArgs so any field the file omits keeps its default.
func LoadFile(path string) (InitArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InitArgs{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	args := DefaultInitArgs()
	if err := toml.Unmarshal(data, &args); err != nil {
		return InitArgs{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return args, nil
}
