// Package canonical defines the single tagged-variant event vocabulary (C1)
// that both minter-native event streams are reduced to. It is a closed set:
// no inheritance, no open extension, exactly the variants the
// Reconciliation Applier needs. Operational bookkeeping variants of either
// minter (init, upgrade, sync-to-block, skipped-block, added-token) are
// deliberately absent; the Schema Reducer filters them away.
package canonical

import (
	"math/big"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
)

// EventSource identifies the minter-side log entry a canonical event was
// derived from: a transaction hash plus the index of the log within it.
type EventSource struct {
	TransactionHash chainaddr.Hash
	LogIndex        uint64
}

// TransactionStatus is the outcome of a finalized EVM transaction.
type TransactionStatus uint8

const (
	TransactionStatusUnknown TransactionStatus = iota
	TransactionStatusSuccess
	TransactionStatusFailure
)

// TransactionReceipt carries the gas/outcome facts FinalizedTransaction
// needs to settle an ICP→EVM withdrawal.
type TransactionReceipt struct {
	TransactionHash   chainaddr.Hash
	GasUsed           *big.Int
	EffectiveGasPrice *big.Int
	Status            TransactionStatus
}

// Payload is the sealed interface every canonical event variant implements.
// It carries no behavior; its only purpose is to close the variant set the
// same way the Rust source's `EventPayload` enum does.
type Payload interface {
	payload()
}

type AcceptedDeposit struct {
	TransactionHash chainaddr.Hash
	BlockNumber     *big.Int
	LogIndex        uint64
	FromAddress     chainaddr.Address
	Value           *big.Int
	Principal       principal.Principal
	Subaccount      *[32]byte
}

func (AcceptedDeposit) payload() {}

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

func (AcceptedErc20Deposit) payload() {}

type MintedNative struct {
	EventSource    EventSource
	MintBlockIndex *big.Int
}

func (MintedNative) payload() {}

type MintedErc20 struct {
	EventSource          EventSource
	MintBlockIndex       *big.Int
	Erc20TokenSymbol     string
	Erc20ContractAddress chainaddr.Address
}

func (MintedErc20) payload() {}

type InvalidDeposit struct {
	EventSource EventSource
	Reason      string
}

func (InvalidDeposit) payload() {}

type QuarantinedDeposit struct {
	EventSource EventSource
}

func (QuarantinedDeposit) payload() {}

type AcceptedNativeWithdrawalRequest struct {
	WithdrawalAmount *big.Int
	Destination      chainaddr.Address
	LedgerBurnIndex  *big.Int
	From             principal.Principal
	FromSubaccount   *[32]byte
	CreatedAt        *uint64
}

func (AcceptedNativeWithdrawalRequest) payload() {}

type AcceptedErc20WithdrawalRequest struct {
	MaxTransactionFee     *big.Int
	WithdrawalAmount      *big.Int
	Erc20ContractAddress  chainaddr.Address
	Destination           chainaddr.Address
	NativeLedgerBurnIndex *big.Int
	Erc20LedgerID         principal.Principal
	Erc20LedgerBurnIndex  *big.Int
	From                  principal.Principal
	FromSubaccount        *[32]byte
	CreatedAt             *uint64
}

func (AcceptedErc20WithdrawalRequest) payload() {}

// EvmTransaction is the minimal shape of the EVM transaction built/signed
// for an ICP→EVM withdrawal. The Applier only needs its presence to mark a
// state transition; its fields are informational.
type EvmTransaction struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
}

type CreatedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (CreatedTransaction) payload() {}

type SignedTransaction struct {
	WithdrawalID   *big.Int
	RawTransaction []byte
}

func (SignedTransaction) payload() {}

type ReplacedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (ReplacedTransaction) payload() {}

type FinalizedTransaction struct {
	WithdrawalID       *big.Int
	TransactionReceipt TransactionReceipt
}

func (FinalizedTransaction) payload() {}

type ReimbursedNativeWithdrawal struct {
	ReimbursedInBlock *big.Int
	WithdrawalID      *big.Int
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedNativeWithdrawal) payload() {}

type ReimbursedErc20Withdrawal struct {
	WithdrawalID      *big.Int
	BurnInBlock       *big.Int
	ReimbursedInBlock *big.Int
	LedgerID          principal.Principal
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedErc20Withdrawal) payload() {}

type QuarantinedReimbursement struct {
	Index *big.Int
}

func (QuarantinedReimbursement) payload() {}

type FailedErc20WithdrawalRequest struct {
	WithdrawalID     *big.Int
	ReimbursedAmount *big.Int
	To               principal.Principal
	ToSubaccount     *[32]byte
}

func (FailedErc20WithdrawalRequest) payload() {}

// Event pairs a payload with the minter-reported timestamp it occurred at.
type Event struct {
	Timestamp uint64
	Payload   Payload
}

// Events is an ordered, per-minter canonical event stream.
type Events []Event
