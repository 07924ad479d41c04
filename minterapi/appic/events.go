// Package appic defines the wire vocabulary of the AppicMinter event log, as
// returned by its get_events RPC. Most variants are already shaped like the
// canonical vocabulary (canonical.Payload) since Appic is the logger's
// "native" dialect; the Schema Reducer still applies a variant whitelist
// filter to drop the two operational bookkeeping variants below.
package appic

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

// EventPayload is the closed set of variants AppicMinter can emit. Init and
// Upgrade are operational bookkeeping and are filtered by the reducer.
type EventPayload interface {
	appicPayload()
}

type Init struct{ ChainID uint64 }

func (Init) appicPayload() {}

type Upgrade struct{}

func (Upgrade) appicPayload() {}

type AcceptedDeposit struct {
	TransactionHash chainaddr.Hash
	BlockNumber     *big.Int
	LogIndex        uint64
	FromAddress     chainaddr.Address
	Value           *big.Int
	Principal       principal.Principal
	Subaccount      *[32]byte
}

func (AcceptedDeposit) appicPayload() {}

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

func (AcceptedErc20Deposit) appicPayload() {}

type MintedNative struct {
	EventSource    EventSource
	MintBlockIndex *big.Int
}

func (MintedNative) appicPayload() {}

type MintedErc20 struct {
	EventSource          EventSource
	MintBlockIndex       *big.Int
	Erc20TokenSymbol     string
	Erc20ContractAddress chainaddr.Address
}

func (MintedErc20) appicPayload() {}

type InvalidDeposit struct {
	EventSource EventSource
	Reason      string
}

func (InvalidDeposit) appicPayload() {}

type QuarantinedDeposit struct {
	EventSource EventSource
}

func (QuarantinedDeposit) appicPayload() {}

type AcceptedNativeWithdrawalRequest struct {
	WithdrawalAmount *big.Int
	Destination      chainaddr.Address
	LedgerBurnIndex  *big.Int
	From             principal.Principal
	FromSubaccount   *[32]byte
	CreatedAt        *uint64
}

func (AcceptedNativeWithdrawalRequest) appicPayload() {}

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

func (AcceptedErc20WithdrawalRequest) appicPayload() {}

type CreatedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (CreatedTransaction) appicPayload() {}

type SignedTransaction struct {
	WithdrawalID   *big.Int
	RawTransaction []byte
}

func (SignedTransaction) appicPayload() {}

type ReplacedTransaction struct {
	WithdrawalID *big.Int
	Transaction  EvmTransaction
}

func (ReplacedTransaction) appicPayload() {}

type FinalizedTransaction struct {
	WithdrawalID       *big.Int
	TransactionReceipt TransactionReceipt
}

func (FinalizedTransaction) appicPayload() {}

type ReimbursedNativeWithdrawal struct {
	ReimbursedInBlock *big.Int
	WithdrawalID      *big.Int
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedNativeWithdrawal) appicPayload() {}

type ReimbursedErc20Withdrawal struct {
	WithdrawalID      *big.Int
	BurnInBlock       *big.Int
	ReimbursedInBlock *big.Int
	LedgerID          principal.Principal
	ReimbursedAmount  *big.Int
	TransactionHash   *chainaddr.Hash
}

func (ReimbursedErc20Withdrawal) appicPayload() {}

type QuarantinedReimbursement struct {
	Index *big.Int
}

func (QuarantinedReimbursement) appicPayload() {}

type FailedErc20WithdrawalRequest struct {
	WithdrawalID     *big.Int
	ReimbursedAmount *big.Int
	To               principal.Principal
	ToSubaccount     *[32]byte
}

func (FailedErc20WithdrawalRequest) appicPayload() {}

// Event pairs a payload with its minter-reported timestamp.
type Event struct {
	Timestamp uint64
	Payload   EventPayload
}

// GetEventsResult is the shape of AppicMinter's get_events RPC response.
type GetEventsResult struct {
	Events          []Event
	TotalEventCount uint64
}
