// Package store implements the Transfer Store (C3): the keyed, ordered
// collections of minters and in-flight transfers, and the mutators the
// Reconciliation Applier drives them with. Types and field names mirror
// state.rs one for one; the ordering key types (MinterKey,
// EvmToIcpTxIdentifier, IcpToEvmIdentifier, Erc20Identifier) exist purely
// so google/btree's BTreeG can order entries deterministically the way
// Rust's BTreeMap does.
package store

import (
	"fmt"
	"math/big"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/guard"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
)

// Oprator names which minter vocabulary a record originated from.
type Oprator uint8

const (
	OpratorDfinityCkEthMinter Oprator = iota
	OpratorAppicMinter
)

func (o Oprator) String() string {
	switch o {
	case OpratorDfinityCkEthMinter:
		return "DfinityCkEthMinter"
	case OpratorAppicMinter:
		return "AppicMinter"
	default:
		return "unknown"
	}
}

// ParseOprator parses the textual oprator name used in config files and
// client-facing requests, the inverse of Oprator.String.
func ParseOprator(s string) (Oprator, error) {
	switch s {
	case "AppicMinter":
		return OpratorAppicMinter, nil
	case "DfinityCkEthMinter":
		return OpratorDfinityCkEthMinter, nil
	default:
		return 0, fmt.Errorf("store: unknown oprator %q", s)
	}
}

// ChainID is the EVM chain a minter instance serves.
type ChainID uint64

// Minter is one monitored minter canister/instance: its cursor state and
// the fee schedule the applier consults on settlement.
type Minter struct {
	ID                principal.Principal
	LastObservedEvent uint64
	LastScrapedEvent  uint64
	Oprator           Oprator
	EvmToIcpFee       *big.Int
	IcpToEvmFee       *big.Int
	ChainID           ChainID
}

// MinterKey orders minters by (ChainID, Oprator), matching state.rs's
// derived Ord on MinterKey(ChainId, Oprator).
type MinterKey struct {
	ChainID ChainID
	Oprator Oprator
}

func MinterKeyOf(m Minter) MinterKey {
	return MinterKey{ChainID: m.ChainID, Oprator: m.Oprator}
}

func (a MinterKey) Less(b MinterKey) bool {
	if a.ChainID != b.ChainID {
		return a.ChainID < b.ChainID
	}
	return a.Oprator < b.Oprator
}

// EvmToIcpTxIdentifier keys a deposit by its source transaction hash and
// chain, exactly as EvmToIcpTxIdentifier(TransactionHash, ChainId) in
// state.rs.
type EvmToIcpTxIdentifier struct {
	TransactionHash chainaddr.Hash
	ChainID         ChainID
}

func (a EvmToIcpTxIdentifier) Less(b EvmToIcpTxIdentifier) bool {
	if a.TransactionHash != b.TransactionHash {
		return a.TransactionHash.Hex() < b.TransactionHash.Hex()
	}
	return a.ChainID < b.ChainID
}

// EvmToIcpStatus tracks a deposit through its lifecycle.
type EvmToIcpStatus uint8

const (
	EvmToIcpStatusPendingVerification EvmToIcpStatus = iota
	EvmToIcpStatusAccepted
	EvmToIcpStatusMinted
	EvmToIcpStatusInvalid
	EvmToIcpStatusQuarantined
)

func (s EvmToIcpStatus) String() string {
	switch s {
	case EvmToIcpStatusPendingVerification:
		return "PendingVerification"
	case EvmToIcpStatusAccepted:
		return "Accepted"
	case EvmToIcpStatusMinted:
		return "Minted"
	case EvmToIcpStatusInvalid:
		return "Invalid"
	case EvmToIcpStatusQuarantined:
		return "Quarantined"
	default:
		return "unknown"
	}
}

// EvmToIcpTx is one EVM-to-ICP deposit/mint record.
type EvmToIcpTx struct {
	FromAddress          chainaddr.Address
	TransactionHash      chainaddr.Hash
	Value                *big.Int
	BlockNumber          *big.Int
	ActualReceived       *big.Int
	Principal            principal.Principal
	Subaccount           *[32]byte
	ChainID              ChainID
	TotalGasSpent        *big.Int
	Erc20ContractAddress chainaddr.Address
	IcrcLedgerID         *principal.Principal
	Status               EvmToIcpStatus
	InvalidReason        string
	Verified             bool
	Time                 uint64
	Oprator              Oprator
}

// IcpToEvmIdentifier keys a withdrawal by its native ledger burn index and
// chain, exactly as IcpToEvmIdentifier(NativeLedgerBurnIndex, ChainId) in
// state.rs.
type IcpToEvmIdentifier struct {
	NativeLedgerBurnIndex uint64
	ChainID               ChainID
}

func (a IcpToEvmIdentifier) Less(b IcpToEvmIdentifier) bool {
	if a.NativeLedgerBurnIndex != b.NativeLedgerBurnIndex {
		return a.NativeLedgerBurnIndex < b.NativeLedgerBurnIndex
	}
	return a.ChainID < b.ChainID
}

// IcpToEvmStatus tracks a withdrawal through its lifecycle.
type IcpToEvmStatus uint8

const (
	IcpToEvmStatusPendingVerification IcpToEvmStatus = iota
	IcpToEvmStatusAccepted
	IcpToEvmStatusCreated
	IcpToEvmStatusSignedTransaction
	IcpToEvmStatusFinalizedTransaction
	IcpToEvmStatusReplacedTransaction
	IcpToEvmStatusReimbursed
	IcpToEvmStatusQuarantinedReimbursement
	IcpToEvmStatusSuccessful
	IcpToEvmStatusFailed
)

func (s IcpToEvmStatus) String() string {
	switch s {
	case IcpToEvmStatusPendingVerification:
		return "PendingVerification"
	case IcpToEvmStatusAccepted:
		return "Accepted"
	case IcpToEvmStatusCreated:
		return "Created"
	case IcpToEvmStatusSignedTransaction:
		return "SignedTransaction"
	case IcpToEvmStatusFinalizedTransaction:
		return "FinalizedTransaction"
	case IcpToEvmStatusReplacedTransaction:
		return "ReplacedTransaction"
	case IcpToEvmStatusReimbursed:
		return "Reimbursed"
	case IcpToEvmStatusQuarantinedReimbursement:
		return "QuarantinedReimbursement"
	case IcpToEvmStatusSuccessful:
		return "Successful"
	case IcpToEvmStatusFailed:
		return "Failed"
	default:
		return "unknown"
	}
}

// IcpToEvmTx is one ICP-to-EVM withdrawal record.
type IcpToEvmTx struct {
	TransactionHash       *chainaddr.Hash
	NativeLedgerBurnIndex uint64
	WithdrawalAmount      *big.Int
	ActualReceived        *big.Int
	Destination           chainaddr.Address
	From                  principal.Principal
	ChainID               ChainID
	FromSubaccount        *[32]byte
	Time                  uint64
	MaxTransactionFee     *big.Int
	EffectiveGasPrice     *big.Int
	GasUsed               *big.Int
	TotalGasSpent         *big.Int
	Erc20LedgerBurnIndex  *big.Int
	Erc20ContractAddress  chainaddr.Address
	IcrcLedgerID          *principal.Principal
	Verified              bool
	Status                IcpToEvmStatus
	Oprator               Oprator
}

// Erc20Identifier keys a supported ERC20/ckERC20 pair by contract address
// and chain.
type Erc20Identifier struct {
	Erc20Address chainaddr.Address
	ChainID      ChainID
}

func (a Erc20Identifier) Less(b Erc20Identifier) bool {
	if a.Erc20Address != b.Erc20Address {
		return a.Erc20Address.Hex() < b.Erc20Address.Hex()
	}
	return a.ChainID < b.ChainID
}

// TokenPair is a supported twin-token mapping, projected for API/query use.
type TokenPair struct {
	Erc20Address chainaddr.Address
	LedgerID     principal.Principal
	Oprator      Oprator
	ChainID      ChainID
}

// Transaction is the address/principal query projection of either
// transfer direction.
type Transaction struct {
	EvmToIcp *EvmToIcpTx
	IcpToEvm *IcpToEvmTx
}

// ErrArithmeticUnderflow is returned by checked subtraction helpers when a
// settlement amount would go negative. The store traps this the way
// state.rs's checked Nat subtraction would panic on underflow, rather than
// silently wrapping.
var ErrArithmeticUnderflow = fmt.Errorf("store: arithmetic underflow")

func checkedSub(a, b *big.Int) (*big.Int, error) {
	if a.Cmp(b) < 0 {
		return nil, ErrArithmeticUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

// TaskKey names one active-task slot in State.ActiveTasks. It is the same
// key type guard.Set uses.
type TaskKey = guard.Key
