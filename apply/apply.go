// Package apply implements the Reconciliation Applier (C4): the dispatch
// table from canonical event variant to store mutation. It is the one
// place minter identity (chain, oprator, fee schedule) and a canonical
// event are combined into a store mutation, so every call is fully
// determined by (event, minter) with no other hidden state.
package apply

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Appic-Solutions/trsansaction-logger/canonical"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

var logger = log.New("module", "apply")

// Minter is the per-stream context the applier needs beyond the event
// itself: which chain/oprator the event belongs to, and the fee schedule
// settlement arithmetic reads.
type Minter struct {
	ChainID     store.ChainID
	Oprator     store.Oprator
	EvmToIcpFee *big.Int
	IcpToEvmFee *big.Int
}

// Apply dispatches one canonical event against s, mutating it in place.
// It never fails on a well-formed event: unknown-target mutations (no
// matching in-flight transfer) are silently ignored except for the two
// Accepted* variants, which create a new record if none exists yet — a
// deposit/withdrawal can be observed as Accepted without any client ever
// having pre-registered it. The only failure mode is a checked
// arithmetic underflow in a settlement calculation, which the caller
// should treat as fatal for the whole scrape batch.
func Apply(s *store.State, m Minter, timestamp uint64, payload canonical.Payload) error {
	switch v := payload.(type) {
	case canonical.AcceptedDeposit:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.TransactionHash, ChainID: m.ChainID}
		s.RecordAcceptedEvmToIcp(id, store.AcceptedEvmToIcpParams{
			TransactionHash: v.TransactionHash,
			BlockNumber:     v.BlockNumber,
			FromAddress:     v.FromAddress,
			Value:           v.Value,
			Principal:       v.Principal,
			Subaccount:      v.Subaccount,
			ChainID:         m.ChainID,
			Oprator:         m.Oprator,
			Timestamp:       timestamp,
		})
		return nil

	case canonical.AcceptedErc20Deposit:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.TransactionHash, ChainID: m.ChainID}
		s.RecordAcceptedEvmToIcp(id, store.AcceptedEvmToIcpParams{
			TransactionHash:      v.TransactionHash,
			BlockNumber:          v.BlockNumber,
			FromAddress:          v.FromAddress,
			Value:                v.Value,
			Principal:            v.Principal,
			Erc20ContractAddress: v.Erc20ContractAddress,
			Subaccount:           v.Subaccount,
			ChainID:              m.ChainID,
			Oprator:              m.Oprator,
			Timestamp:            timestamp,
		})
		return nil

	case canonical.MintedNative:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.EventSource.TransactionHash, ChainID: m.ChainID}
		if m.EvmToIcpFee == nil {
			logger.Warn("MintedNative with no minter fee on record, skipping", "id", id)
			return nil
		}
		return s.RecordMintedEvmToIcp(id, store.NativeErc20Address, m.EvmToIcpFee)

	case canonical.MintedErc20:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.EventSource.TransactionHash, ChainID: m.ChainID}
		if m.EvmToIcpFee == nil {
			logger.Warn("MintedErc20 with no minter fee on record, skipping", "id", id)
			return nil
		}
		return s.RecordMintedEvmToIcp(id, v.Erc20ContractAddress, m.EvmToIcpFee)

	case canonical.InvalidDeposit:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.EventSource.TransactionHash, ChainID: m.ChainID}
		s.RecordInvalidEvmToIcp(id, v.Reason)
		return nil

	case canonical.QuarantinedDeposit:
		id := store.EvmToIcpTxIdentifier{TransactionHash: v.EventSource.TransactionHash, ChainID: m.ChainID}
		s.RecordQuarantinedEvmToIcp(id)
		return nil

	case canonical.AcceptedNativeWithdrawalRequest:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.LedgerBurnIndex.Uint64(), ChainID: m.ChainID}
		s.RecordAcceptedIcpToEvm(id, store.AcceptedIcpToEvmParams{
			WithdrawalAmount:     v.WithdrawalAmount,
			Erc20ContractAddress: store.NativeErc20Address,
			Destination:          v.Destination,
			From:                 v.From,
			FromSubaccount:       v.FromSubaccount,
			CreatedAt:            v.CreatedAt,
			Oprator:              m.Oprator,
			ChainID:              m.ChainID,
			Timestamp:            timestamp,
		})
		return nil

	case canonical.AcceptedErc20WithdrawalRequest:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.NativeLedgerBurnIndex.Uint64(), ChainID: m.ChainID}
		s.RecordAcceptedIcpToEvm(id, store.AcceptedIcpToEvmParams{
			MaxTransactionFee:    v.MaxTransactionFee,
			WithdrawalAmount:     v.WithdrawalAmount,
			Erc20ContractAddress: v.Erc20ContractAddress,
			Destination:          v.Destination,
			Erc20LedgerBurnIndex: v.Erc20LedgerBurnIndex,
			From:                 v.From,
			FromSubaccount:       v.FromSubaccount,
			CreatedAt:            v.CreatedAt,
			Oprator:              m.Oprator,
			ChainID:              m.ChainID,
			Timestamp:            timestamp,
		})
		return nil

	case canonical.CreatedTransaction:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordCreatedIcpToEvm(id)
		return nil

	case canonical.SignedTransaction:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordSignedIcpToEvm(id)
		return nil

	case canonical.ReplacedTransaction:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordReplacedIcpToEvm(id)
		return nil

	case canonical.FinalizedTransaction:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		if m.IcpToEvmFee == nil {
			logger.Warn("FinalizedTransaction with no minter fee on record, skipping", "id", id)
			return nil
		}
		return s.RecordFinalizedIcpToEvm(id, store.TransactionReceipt{
			TransactionHash:   v.TransactionReceipt.TransactionHash,
			GasUsed:           v.TransactionReceipt.GasUsed,
			EffectiveGasPrice: v.TransactionReceipt.EffectiveGasPrice,
			Success:           v.TransactionReceipt.Status == canonical.TransactionStatusSuccess,
		}, m.IcpToEvmFee)

	case canonical.ReimbursedNativeWithdrawal:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordReimbursedIcpToEvm(id)
		return nil

	case canonical.ReimbursedErc20Withdrawal:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordReimbursedIcpToEvm(id)
		return nil

	case canonical.QuarantinedReimbursement:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.Index.Uint64(), ChainID: m.ChainID}
		s.RecordQuarantinedReimbursedIcpToEvm(id)
		return nil

	case canonical.FailedErc20WithdrawalRequest:
		id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: v.WithdrawalID.Uint64(), ChainID: m.ChainID}
		s.RecordFailedIcpToEvm(id)
		return nil

	default:
		return fmt.Errorf("apply: unhandled canonical payload %T", payload)
	}
}

// ApplyAll applies every event in events, in order, against s for the
// given minter, stopping at the first arithmetic error (underflow) so the
// caller can quarantine the whole scrape batch rather than commit a
// partially-applied state.
func ApplyAll(s *store.State, m Minter, events canonical.Events) error {
	for _, e := range events {
		if err := Apply(s, m, e.Timestamp, e.Payload); err != nil {
			return fmt.Errorf("apply: event at timestamp %d: %w", e.Timestamp, err)
		}
	}
	return nil
}
