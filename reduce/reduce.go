// Package reduce implements the Schema Reducer (C2): total, never-failing
// functions mapping each minter's raw event vocabulary onto the canonical
// one. Reduction is variant-for-variant, the same shape as the Rust
// source's Reduce trait impls in event_conversion.rs: operational
// bookkeeping variants are dropped via a whitelist, domain variants are
// renamed field-for-field where the minter's naming differs from
// canonical, and everything else passes through unchanged.
package reduce

import (
	"github.com/Appic-Solutions/trsansaction-logger/canonical"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi/appic"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi/dfinity"
)

// Skipped records a raw event the reducer dropped. Malformed distinguishes
// a payload of a recognized operational bookkeeping variant (expected,
// routine) from one the reducer doesn't recognize at all (unexpected; the
// scheduler logs these instead of applying them silently).
type Skipped struct {
	Timestamp uint64
	Reason    string
	Malformed bool
}

// Appic reduces an AppicMinter event stream to canonical form. AppicMinter's
// domain variants are already canonical-shaped; only Init and Upgrade are
// filtered.
func Appic(events []appic.Event) (canonical.Events, []Skipped) {
	out := make(canonical.Events, 0, len(events))
	var skipped []Skipped

	for _, e := range events {
		payload, ok := reduceAppicPayload(e.Payload)
		if !ok {
			reason, malformed := appicSkipReason(e.Payload)
			skipped = append(skipped, Skipped{Timestamp: e.Timestamp, Reason: reason, Malformed: malformed})
			continue
		}
		out = append(out, canonical.Event{Timestamp: e.Timestamp, Payload: payload})
	}
	return out, skipped
}

func appicSkipReason(p appic.EventPayload) (string, bool) {
	switch p.(type) {
	case appic.Init:
		return "init", false
	case appic.Upgrade:
		return "upgrade", false
	default:
		return "unknown", true
	}
}

func reduceAppicPayload(p appic.EventPayload) (canonical.Payload, bool) {
	switch v := p.(type) {
	case appic.AcceptedDeposit:
		return canonical.AcceptedDeposit{
			TransactionHash: v.TransactionHash,
			BlockNumber:     v.BlockNumber,
			LogIndex:        v.LogIndex,
			FromAddress:     v.FromAddress,
			Value:           v.Value,
			Principal:       v.Principal,
			Subaccount:      v.Subaccount,
		}, true
	case appic.AcceptedErc20Deposit:
		return canonical.AcceptedErc20Deposit{
			TransactionHash:      v.TransactionHash,
			BlockNumber:          v.BlockNumber,
			LogIndex:             v.LogIndex,
			FromAddress:          v.FromAddress,
			Value:                v.Value,
			Principal:            v.Principal,
			Erc20ContractAddress: v.Erc20ContractAddress,
			Subaccount:           v.Subaccount,
		}, true
	case appic.MintedNative:
		return canonical.MintedNative{
			EventSource:    canonical.EventSource(v.EventSource),
			MintBlockIndex: v.MintBlockIndex,
		}, true
	case appic.MintedErc20:
		return canonical.MintedErc20{
			EventSource:          canonical.EventSource(v.EventSource),
			MintBlockIndex:       v.MintBlockIndex,
			Erc20TokenSymbol:     v.Erc20TokenSymbol,
			Erc20ContractAddress: v.Erc20ContractAddress,
		}, true
	case appic.InvalidDeposit:
		return canonical.InvalidDeposit{
			EventSource: canonical.EventSource(v.EventSource),
			Reason:      v.Reason,
		}, true
	case appic.QuarantinedDeposit:
		return canonical.QuarantinedDeposit{EventSource: canonical.EventSource(v.EventSource)}, true
	case appic.AcceptedNativeWithdrawalRequest:
		return canonical.AcceptedNativeWithdrawalRequest{
			WithdrawalAmount: v.WithdrawalAmount,
			Destination:      v.Destination,
			LedgerBurnIndex:  v.LedgerBurnIndex,
			From:             v.From,
			FromSubaccount:   v.FromSubaccount,
			CreatedAt:        v.CreatedAt,
		}, true
	case appic.AcceptedErc20WithdrawalRequest:
		return canonical.AcceptedErc20WithdrawalRequest{
			MaxTransactionFee:     v.MaxTransactionFee,
			WithdrawalAmount:      v.WithdrawalAmount,
			Erc20ContractAddress:  v.Erc20ContractAddress,
			Destination:           v.Destination,
			NativeLedgerBurnIndex: v.NativeLedgerBurnIndex,
			Erc20LedgerID:         v.Erc20LedgerID,
			Erc20LedgerBurnIndex:  v.Erc20LedgerBurnIndex,
			From:                  v.From,
			FromSubaccount:        v.FromSubaccount,
			CreatedAt:             v.CreatedAt,
		}, true
	case appic.CreatedTransaction:
		return canonical.CreatedTransaction{
			WithdrawalID: v.WithdrawalID,
			Transaction:  canonical.EvmTransaction(v.Transaction),
		}, true
	case appic.SignedTransaction:
		return canonical.SignedTransaction{
			WithdrawalID:   v.WithdrawalID,
			RawTransaction: v.RawTransaction,
		}, true
	case appic.ReplacedTransaction:
		return canonical.ReplacedTransaction{
			WithdrawalID: v.WithdrawalID,
			Transaction:  canonical.EvmTransaction(v.Transaction),
		}, true
	case appic.FinalizedTransaction:
		return canonical.FinalizedTransaction{
			WithdrawalID: v.WithdrawalID,
			TransactionReceipt: canonical.TransactionReceipt{
				TransactionHash:   v.TransactionReceipt.TransactionHash,
				GasUsed:           v.TransactionReceipt.GasUsed,
				EffectiveGasPrice: v.TransactionReceipt.EffectiveGasPrice,
				Status:            canonical.TransactionStatus(v.TransactionReceipt.Status) + 1,
			},
		}, true
	case appic.ReimbursedNativeWithdrawal:
		return canonical.ReimbursedNativeWithdrawal{
			ReimbursedInBlock: v.ReimbursedInBlock,
			WithdrawalID:      v.WithdrawalID,
			ReimbursedAmount:  v.ReimbursedAmount,
			TransactionHash:   v.TransactionHash,
		}, true
	case appic.ReimbursedErc20Withdrawal:
		return canonical.ReimbursedErc20Withdrawal{
			WithdrawalID:      v.WithdrawalID,
			BurnInBlock:       v.BurnInBlock,
			ReimbursedInBlock: v.ReimbursedInBlock,
			LedgerID:          v.LedgerID,
			ReimbursedAmount:  v.ReimbursedAmount,
			TransactionHash:   v.TransactionHash,
		}, true
	case appic.QuarantinedReimbursement:
		return canonical.QuarantinedReimbursement{Index: v.Index}, true
	case appic.FailedErc20WithdrawalRequest:
		return canonical.FailedErc20WithdrawalRequest{
			WithdrawalID:     v.WithdrawalID,
			ReimbursedAmount: v.ReimbursedAmount,
			To:               v.To,
			ToSubaccount:     v.ToSubaccount,
		}, true
	default:
		return nil, false
	}
}

// Dfinity reduces a DfinityCkEthMinter event stream to canonical form,
// dropping chain-cursor bookkeeping variants (Init, Upgrade, SyncedToBlock*,
// SkippedBlock, AddedCkErc20Token — the logger tracks cursors itself) and
// renaming the `ck*`-prefixed fields onto their canonical names.
func Dfinity(events []dfinity.Event) (canonical.Events, []Skipped) {
	out := make(canonical.Events, 0, len(events))
	var skipped []Skipped

	for _, e := range events {
		payload, ok := reduceDfinityPayload(e.Payload)
		if !ok {
			reason, malformed := dfinitySkipReason(e.Payload)
			skipped = append(skipped, Skipped{Timestamp: e.Timestamp, Reason: reason, Malformed: malformed})
			continue
		}
		out = append(out, canonical.Event{Timestamp: e.Timestamp, Payload: payload})
	}
	return out, skipped
}

func dfinitySkipReason(p dfinity.EventPayload) (string, bool) {
	switch p.(type) {
	case dfinity.Init:
		return "init", false
	case dfinity.Upgrade:
		return "upgrade", false
	case dfinity.SyncedToBlock:
		return "synced_to_block", false
	case dfinity.SyncedErc20ToBlock:
		return "synced_erc20_to_block", false
	case dfinity.SyncedDepositWithSubaccountToBlock:
		return "synced_deposit_with_subaccount_to_block", false
	case dfinity.SkippedBlock:
		return "skipped_block", false
	case dfinity.AddedCkErc20Token:
		return "added_ckerc20_token", false
	default:
		return "unknown", true
	}
}

func reduceDfinityPayload(p dfinity.EventPayload) (canonical.Payload, bool) {
	switch v := p.(type) {
	case dfinity.AcceptedDeposit:
		return canonical.AcceptedDeposit{
			TransactionHash: v.TransactionHash,
			BlockNumber:     v.BlockNumber,
			LogIndex:        v.LogIndex,
			FromAddress:     v.FromAddress,
			Value:           v.Value,
			Principal:       v.Principal,
			Subaccount:      v.Subaccount,
		}, true
	case dfinity.AcceptedErc20Deposit:
		return canonical.AcceptedErc20Deposit{
			TransactionHash:      v.TransactionHash,
			BlockNumber:          v.BlockNumber,
			LogIndex:             v.LogIndex,
			FromAddress:          v.FromAddress,
			Value:                v.Value,
			Principal:            v.Principal,
			Erc20ContractAddress: v.Erc20ContractAddress,
			Subaccount:           v.Subaccount,
		}, true
	case dfinity.InvalidDeposit:
		return canonical.InvalidDeposit{
			EventSource: canonical.EventSource(v.EventSource),
			Reason:      v.Reason,
		}, true
	case dfinity.QuarantinedDeposit:
		return canonical.QuarantinedDeposit{EventSource: canonical.EventSource(v.EventSource)}, true
	case dfinity.MintedCkEth:
		return canonical.MintedNative{
			EventSource:    canonical.EventSource(v.EventSource),
			MintBlockIndex: v.MintBlockIndex,
		}, true
	case dfinity.MintedCkErc20:
		return canonical.MintedErc20{
			EventSource:          canonical.EventSource(v.EventSource),
			MintBlockIndex:       v.MintBlockIndex,
			Erc20TokenSymbol:     v.CkErc20TokenSymbol,
			Erc20ContractAddress: v.Erc20ContractAddress,
		}, true
	case dfinity.AcceptedEthWithdrawalRequest:
		return canonical.AcceptedNativeWithdrawalRequest{
			WithdrawalAmount: v.WithdrawalAmount,
			Destination:      v.Destination,
			LedgerBurnIndex:  v.LedgerBurnIndex,
			From:             v.From,
			FromSubaccount:   v.FromSubaccount,
			CreatedAt:        v.CreatedAt,
		}, true
	case dfinity.AcceptedErc20WithdrawalRequest:
		return canonical.AcceptedErc20WithdrawalRequest{
			MaxTransactionFee:     v.MaxTransactionFee,
			WithdrawalAmount:      v.WithdrawalAmount,
			Erc20ContractAddress:  v.Erc20ContractAddress,
			Destination:           v.Destination,
			NativeLedgerBurnIndex: v.CkethLedgerBurnIndex,
			Erc20LedgerID:         v.CkErc20LedgerID,
			Erc20LedgerBurnIndex:  v.CkErc20LedgerBurnIndex,
			From:                  v.From,
			FromSubaccount:        v.FromSubaccount,
			CreatedAt:             v.CreatedAt,
		}, true
	case dfinity.CreatedTransaction:
		return canonical.CreatedTransaction{
			WithdrawalID: v.WithdrawalID,
			Transaction:  canonical.EvmTransaction(v.Transaction),
		}, true
	case dfinity.SignedTransaction:
		return canonical.SignedTransaction{
			WithdrawalID:   v.WithdrawalID,
			RawTransaction: v.RawTransaction,
		}, true
	case dfinity.ReplacedTransaction:
		return canonical.ReplacedTransaction{
			WithdrawalID: v.WithdrawalID,
			Transaction:  canonical.EvmTransaction(v.Transaction),
		}, true
	case dfinity.FinalizedTransaction:
		return canonical.FinalizedTransaction{
			WithdrawalID: v.WithdrawalID,
			TransactionReceipt: canonical.TransactionReceipt{
				TransactionHash:   v.TransactionReceipt.TransactionHash,
				GasUsed:           v.TransactionReceipt.GasUsed,
				EffectiveGasPrice: v.TransactionReceipt.EffectiveGasPrice,
				Status:            canonical.TransactionStatus(v.TransactionReceipt.Status) + 1,
			},
		}, true
	case dfinity.ReimbursedEthWithdrawal:
		return canonical.ReimbursedNativeWithdrawal{
			ReimbursedInBlock: v.ReimbursedInBlock,
			WithdrawalID:      v.WithdrawalID,
			ReimbursedAmount:  v.ReimbursedAmount,
			TransactionHash:   v.TransactionHash,
		}, true
	case dfinity.ReimbursedErc20Withdrawal:
		return canonical.ReimbursedErc20Withdrawal{
			WithdrawalID:      v.WithdrawalID,
			BurnInBlock:       v.BurnInBlock,
			ReimbursedInBlock: v.ReimbursedInBlock,
			LedgerID:          v.LedgerID,
			ReimbursedAmount:  v.ReimbursedAmount,
			TransactionHash:   v.TransactionHash,
		}, true
	case dfinity.QuarantinedReimbursement:
		return canonical.QuarantinedReimbursement{Index: v.Index}, true
	case dfinity.FailedErc20WithdrawalRequest:
		return canonical.FailedErc20WithdrawalRequest{
			WithdrawalID:     v.WithdrawalID,
			ReimbursedAmount: v.ReimbursedAmount,
			To:               v.To,
			ToSubaccount:     v.ToSubaccount,
		}, true
	default:
		return nil, false
	}
}
