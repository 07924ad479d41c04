// Package dfinity defines the wire vocabulary of the DfinityCkEthMinter
// event log. It is strictly richer than the canonical vocabulary: it
// includes chain-state bookkeeping variants (Init, Upgrade, SyncedToBlock*,
// SkippedBlock, AddedCkErc20Token) that the logger infers from cursors
// instead, and it names several fields along a `ck*` axis that the Schema
// Reducer renames to their canonical equivalents.
package dfinity

import (
	"math/big"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
)

type EventSource struct {
	TransactionHash chainaddr.Hash
	LogIndex        uint64
}

type TransactionStatus uint8

const (
	TransactionStatusSuccess TransactionStatus = iota
	TransactionStatusFailure
)

type TransactionReceipt struct {
	TransactionHash   chainaddr.Hash
	GasUsed           *big.Int
	EffectiveGasPrice *big.Int
	Status            TransactionStatus
}

type EvmTransaction struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
}

// EventPayload is the closed set of variants DfinityCkEthMinter can emit.
type EventPayload interface {
	dfinityPayload()
}

type Init struct{ ChainID uint64 }

func (Init) dfinityPayload() {}

type Upgrade struct{}

func (Upgrade) dfinityPayload() {}

type SyncedToBlock struct{ BlockNumber *big.Int }

func (SyncedToBlock) dfinityPayload() {}

type SyncedErc20ToBlock struct{ BlockNumber *big.Int }

func (SyncedErc20ToBlock) dfinityPayload() {}

type SyncedDepositWithSubaccountToBlock struct{ BlockNumber *big.Int }

func (SyncedDepositWithSubaccountToBlock) dfinityPayload() {}

type SkippedBlock struct {
	ContractAddress chainaddr.Address
	BlockNumber     *big.Int
}

func (SkippedBlock) dfinityPayload() {}

type AddedCkErc20Token struct {
	ChainID          uint64
	Address          chainaddr.Address
	CkErc20TokenSymbol string
	CkErc20LedgerID    principal.Principal
}

func (AddedCkErc20Token) dfinityPayload() {}

type AcceptedDeposit struct {
	TransactionHash chainaddr.Hash
	BlockNumber     *big.Int
	LogIndex        uint64
	FromAddress     chainaddr.Address
	Value           *big.Int
	Principal       principal.Principal
	Subaccount      *[32]byte
}

func (AcceptedDeposit) dfinityPayload() {}

type AcceptedErc20Deposit struct {
	TransactionHash      chainaddr.Hash
	BlockNumber          *big.Int
	LogIndex             uint64
	FromAddress          chainaddr.Address
	Value                *big.Int
	Principal            principal.Principal
	Erc20ContractAddress chainaddr.Address
	Subaccount           *[32]byte
}

func (AcceptedErc20Deposit) dfinityPayload() {}

type InvalidDeposit struct {
	EventSource EventSource
	Reason      string
}

func (InvalidDeposit) dfinityPayload() {}

type QuarantinedDeposit struct {
	EventSource EventSource
}

func (QuarantinedDeposit) dfinityPayload() {}

// MintedCkEth renames to canonical.MintedNative.
type MintedCkEth struct {
	EventSource    EventSource
	MintBlockIndex *big.Int
}

func (MintedCkEth) dfinityPayload() {}

// MintedCkErc20 renames to canonical.MintedErc20, with
// ckerc20_token_symbol -> erc20_token_symbol.
type MintedCkErc20 struct {
	EventSource        EventSource
	MintBlockIndex     *big.Int
	CkErc20TokenSymbol string
	Erc20ContractAddress chainaddr.Address
}

func (MintedCkErc20) dfinityPayload() {}

// AcceptedEthWithdrawalRequest renames to
// canonical.AcceptedNativeWithdrawalRequest.
type AcceptedEthWithdrawalRequest struct {
	WithdrawalAmount *big.Int
	Destination      chainaddr.Address
	LedgerBurnIndex  *big.Int
	From             principal.Principal
	FromSubaccount   *[32]byte
	CreatedAt        *uint64
}

func (AcceptedEthWithdrawalRequest) dfinityPayload() {}

// AcceptedErc20WithdrawalRequest renames cketh_ledger_burn_index ->
// native_ledger_burn_index, ckerc20_ledger_id -> erc20_ledger_id,
// ckerc20_ledger_burn_index -> erc20_ledger_burn_index.
type AcceptedErc20WithdrawalRequest struct {
	MaxTransactionFee      *big.Int
	WithdrawalAmount       *big.Int
	Erc20ContractAddress   chainaddr.Address
	Destination            chainaddr.Address
	CkethLedgerBurnIndex   *big.Int
	CkErc20LedgerID        principal.Principal
	CkErc20LedgerBurnIndex *big.Int
	From                   principal.Principal
	FromSubaccount         *[32]byte
	CreatedAt              *uint64
}

func (AcceptedErc20WithdrawalRequest) dfinityPayload() {}

type CreatedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (CreatedTransaction) dfinityPayload() {}

type SignedTransaction struct {
	WithdrawalID   *big.Int
	RawTransaction []byte
}

func (SignedTransaction) dfinityPayload() {}

type ReplacedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (ReplacedTransaction) dfinityPayload() {}

type FinalizedTransaction struct {
	WithdrawalID       *big.Int
	TransactionReceipt TransactionReceipt
}

func (FinalizedTransaction) dfinityPayload() {}

// ReimbursedEthWithdrawal renames to canonical.ReimbursedNativeWithdrawal.
type ReimbursedEthWithdrawal struct {
	ReimbursedInBlock *big.Int
	WithdrawalID      *big.Int
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedEthWithdrawal) dfinityPayload() {}

type ReimbursedErc20Withdrawal struct {
	WithdrawalID      *big.Int
	BurnInBlock       *big.Int
	ReimbursedInBlock *big.Int
	LedgerID          principal.Principal
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedErc20Withdrawal) dfinityPayload() {}

type QuarantinedReimbursement struct {
	Index *big.Int
}

func (QuarantinedReimbursement) dfinityPayload() {}

type FailedErc20WithdrawalRequest struct {
	WithdrawalID     *big.Int
	ReimbursedAmount *big.Int
	To               principal.Principal
	ToSubaccount     *[32]byte
}

func (FailedErc20WithdrawalRequest) dfinityPayload() {}

// Event pairs a payload with its minter-reported timestamp.
type Event struct {
	Timestamp uint64
	Payload   EventPayload
}

// GetEventsResult is the shape of DfinityCkEthMinter's get_events RPC
// response.
type GetEventsResult struct {
	Events          []Event
	TotalEventCount uint64
}
