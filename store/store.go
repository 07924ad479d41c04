package store

import (
	"math/big"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/btree"

	"github.com/Appic-Solutions/trsansaction-logger/chainaddr"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
)

// NativeErc20Address is the sentinel address representing a chain's native
// coin inside the erc20-contract-address fields (mirrors
// scrape_events::NATIVE_ERC20_ADDRESS in the Rust source).
var NativeErc20Address = chainaddr.NativeAddress

// IsNativeToken reports whether addr is the native-coin sentinel.
func IsNativeToken(addr chainaddr.Address) bool {
	return addr == NativeErc20Address
}

// State is the full transfer store: every minter, in-flight transfer, and
// supported token pair, plus an ActiveTasks set of task keys. The
// scheduler keeps its in-flight task locks in its own guard.Set and does
// not write ActiveTasks. It is
// always accessed through Clone-mutate-commit (see persist.Cell) so a
// failed mutation never leaves a partially-applied state visible.
type State struct {
	ActiveTasks              map[TaskKey]struct{}
	Minters                  *btree.BTreeG[minterEntry]
	EvmToIcpTxs              *btree.BTreeG[evmToIcpEntry]
	IcpToEvmTxs              *btree.BTreeG[icpToEvmEntry]
	SupportedCkErc20Tokens   *btree.BTreeG[erc20Entry]
	SupportedTwinAppicTokens *btree.BTreeG[erc20Entry]
}

type minterEntry struct {
	Key   MinterKey
	Value Minter
}

func (a minterEntry) Less(b minterEntry) bool { return a.Key.Less(b.Key) }

type evmToIcpEntry struct {
	Key   EvmToIcpTxIdentifier
	Value EvmToIcpTx
}

func (a evmToIcpEntry) Less(b evmToIcpEntry) bool { return a.Key.Less(b.Key) }

type icpToEvmEntry struct {
	Key   IcpToEvmIdentifier
	Value IcpToEvmTx
}

func (a icpToEvmEntry) Less(b icpToEvmEntry) bool { return a.Key.Less(b.Key) }

type erc20Entry struct {
	Key   Erc20Identifier
	Value principal.Principal
}

func (a erc20Entry) Less(b erc20Entry) bool { return a.Key.Less(b.Key) }

const btreeDegree = 32

// NewState returns an empty store, equivalent to State::from(InitArgs) with
// no minters.
func NewState() *State {
	return &State{
		ActiveTasks:              make(map[TaskKey]struct{}),
		Minters:                  btree.NewG[minterEntry](btreeDegree, minterEntry.Less),
		EvmToIcpTxs:              btree.NewG[evmToIcpEntry](btreeDegree, evmToIcpEntry.Less),
		IcpToEvmTxs:              btree.NewG[icpToEvmEntry](btreeDegree, icpToEvmEntry.Less),
		SupportedCkErc20Tokens:   btree.NewG[erc20Entry](btreeDegree, erc20Entry.Less),
		SupportedTwinAppicTokens: btree.NewG[erc20Entry](btreeDegree, erc20Entry.Less),
	}
}

// Clone returns a deep, independent copy of s. Each btree's own Clone is
// O(1) copy-on-write, matching the cheap full-state .clone() the Rust
// mutate_state wrapper performs before every mutation.
func (s *State) Clone() *State {
	activeTasks := make(map[TaskKey]struct{}, len(s.ActiveTasks))
	for k := range s.ActiveTasks {
		activeTasks[k] = struct{}{}
	}
	return &State{
		ActiveTasks:              activeTasks,
		Minters:                  s.Minters.Clone(),
		EvmToIcpTxs:              s.EvmToIcpTxs.Clone(),
		IcpToEvmTxs:              s.IcpToEvmTxs.Clone(),
		SupportedCkErc20Tokens:   s.SupportedCkErc20Tokens.Clone(),
		SupportedTwinAppicTokens: s.SupportedTwinAppicTokens.Clone(),
	}
}

// GetMinters returns every registered minter, in key order.
func (s *State) GetMinters() []Minter {
	var out []Minter
	s.Minters.Ascend(func(e minterEntry) bool {
		out = append(out, e.Value)
		return true
	})
	return out
}

// IfChainIDExists reports whether any minter serves chainID.
func (s *State) IfChainIDExists(chainID ChainID) bool {
	found := false
	s.Minters.Ascend(func(e minterEntry) bool {
		if e.Value.ChainID == chainID {
			found = true
			return false
		}
		return true
	})
	return found
}

// RecordMinter inserts or replaces a minter, keyed by (ChainID, Oprator).
func (s *State) RecordMinter(m Minter) {
	s.Minters.ReplaceOrInsert(minterEntry{Key: MinterKeyOf(m), Value: m})
}

// GetIcrcTwinForErc20 returns the twin ledger principal for an ERC20
// contract, looked up in the token table matching oprator.
func (s *State) GetIcrcTwinForErc20(id Erc20Identifier, oprator Oprator) (principal.Principal, bool) {
	table := s.SupportedCkErc20Tokens
	if oprator == OpratorAppicMinter {
		table = s.SupportedTwinAppicTokens
	}
	entry, ok := table.Get(erc20Entry{Key: id})
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// RecordErc20TwinPair registers a supported ERC20/ckERC20 token pair.
func (s *State) RecordErc20TwinPair(id Erc20Identifier, ledgerID principal.Principal, oprator Oprator) {
	table := s.SupportedCkErc20Tokens
	if oprator == OpratorAppicMinter {
		table = s.SupportedTwinAppicTokens
	}
	table.ReplaceOrInsert(erc20Entry{Key: id, Value: ledgerID})
}

// GetSupportedTwinTokenPairs lists every supported token pair across both
// minter vocabularies.
func (s *State) GetSupportedTwinTokenPairs() []TokenPair {
	var out []TokenPair
	s.SupportedCkErc20Tokens.Ascend(func(e erc20Entry) bool {
		out = append(out, TokenPair{
			Erc20Address: e.Key.Erc20Address,
			LedgerID:     e.Value,
			Oprator:      OpratorDfinityCkEthMinter,
			ChainID:      e.Key.ChainID,
		})
		return true
	})
	s.SupportedTwinAppicTokens.Ascend(func(e erc20Entry) bool {
		out = append(out, TokenPair{
			Erc20Address: e.Key.Erc20Address,
			LedgerID:     e.Value,
			Oprator:      OpratorAppicMinter,
			ChainID:      e.Key.ChainID,
		})
		return true
	})
	return out
}

// IfEvmToIcpTxExists reports whether a deposit record exists for id.
func (s *State) IfEvmToIcpTxExists(id EvmToIcpTxIdentifier) bool {
	_, ok := s.EvmToIcpTxs.Get(evmToIcpEntry{Key: id})
	return ok
}

// IfIcpToEvmTxExists reports whether a withdrawal record exists for id.
func (s *State) IfIcpToEvmTxExists(id IcpToEvmIdentifier) bool {
	_, ok := s.IcpToEvmTxs.Get(icpToEvmEntry{Key: id})
	return ok
}

// RecordNewEvmToIcp inserts tx unconditionally, overwriting any existing
// entry at id.
func (s *State) RecordNewEvmToIcp(id EvmToIcpTxIdentifier, tx EvmToIcpTx) {
	s.EvmToIcpTxs.ReplaceOrInsert(evmToIcpEntry{Key: id, Value: tx})
}

// PreRegisterEvmToIcpParams carries the fields a client-facing
// add_evm_to_icp_tx call supplies ahead of any scrape, seeding an
// optimistic record the reaper can later clean up if it's never confirmed.
type PreRegisterEvmToIcpParams struct {
	TransactionHash chainaddr.Hash
	FromAddress     chainaddr.Address
	Value           *big.Int
	Principal       principal.Principal
	Subaccount      *[32]byte
	ChainID         ChainID
	Oprator         Oprator
	Timestamp       uint64
}

// PreRegisterEvmToIcp creates an optimistic, unverified deposit record at
// id if none exists yet. It is a no-op against an id already tracked (by an
// earlier pre-register or a scrape that has already seen the
// AcceptedDeposit), so a client retrying the call can't clobber progressed
// state back to PendingVerification.
func (s *State) PreRegisterEvmToIcp(id EvmToIcpTxIdentifier, p PreRegisterEvmToIcpParams) {
	if s.IfEvmToIcpTxExists(id) {
		return
	}
	s.RecordNewEvmToIcp(id, EvmToIcpTx{
		FromAddress:     p.FromAddress,
		TransactionHash: p.TransactionHash,
		Value:           p.Value,
		Principal:       p.Principal,
		Subaccount:      p.Subaccount,
		ChainID:         p.ChainID,
		Status:          EvmToIcpStatusPendingVerification,
		Verified:        false,
		Time:            p.Timestamp,
		Oprator:         p.Oprator,
	})
}

// AcceptedEvmToIcpParams carries the fields an AcceptedDeposit/
// AcceptedErc20Deposit canonical event supplies to RecordAcceptedEvmToIcp.
type AcceptedEvmToIcpParams struct {
	TransactionHash      chainaddr.Hash
	BlockNumber          *big.Int
	FromAddress          chainaddr.Address
	Value                *big.Int
	Principal            principal.Principal
	Erc20ContractAddress chainaddr.Address
	Subaccount           *[32]byte
	ChainID              ChainID
	Oprator              Oprator
	Timestamp            uint64
}

// RecordAcceptedEvmToIcp updates the existing deposit at id in place if one
// exists (only the fields the deposit's acceptance carries are touched),
// or creates a new Accepted-status record. This mirrors state.rs's
// record_accepted_evm_to_icp: the same identifier can already be held as
// PendingVerification from a client pre-registration before its
// AcceptedDeposit event arrives.
func (s *State) RecordAcceptedEvmToIcp(id EvmToIcpTxIdentifier, p AcceptedEvmToIcpParams) {
	if existing, ok := s.EvmToIcpTxs.Get(evmToIcpEntry{Key: id}); ok {
		tx := existing.Value
		tx.Verified = true
		tx.BlockNumber = p.BlockNumber
		tx.FromAddress = p.FromAddress
		tx.Value = p.Value
		tx.Principal = p.Principal
		tx.Erc20ContractAddress = p.Erc20ContractAddress
		tx.Subaccount = p.Subaccount
		tx.Status = EvmToIcpStatusAccepted
		s.EvmToIcpTxs.ReplaceOrInsert(evmToIcpEntry{Key: id, Value: tx})
		return
	}

	icrcLedgerID, _ := s.GetIcrcTwinForErc20(Erc20Identifier{Erc20Address: p.Erc20ContractAddress, ChainID: p.ChainID}, p.Oprator)
	var icrcLedgerIDPtr *principal.Principal
	if icrcLedgerID != nil {
		icrcLedgerIDPtr = &icrcLedgerID
	}

	tx := EvmToIcpTx{
		FromAddress:          p.FromAddress,
		TransactionHash:      p.TransactionHash,
		Value:                p.Value,
		BlockNumber:          p.BlockNumber,
		Principal:            p.Principal,
		Subaccount:           p.Subaccount,
		ChainID:              p.ChainID,
		Erc20ContractAddress: p.Erc20ContractAddress,
		IcrcLedgerID:         icrcLedgerIDPtr,
		Status:               EvmToIcpStatusAccepted,
		Verified:             true,
		Time:                 p.Timestamp,
		Oprator:              p.Oprator,
	}
	s.RecordNewEvmToIcp(id, tx)
}

// RecordMintedEvmToIcp settles a deposit once its mint has landed. Native
// transfers have the minter fee subtracted from the received amount;
// ERC20 transfers don't, matching is_native_token branching in
// record_minted_evm_to_icp.
func (s *State) RecordMintedEvmToIcp(id EvmToIcpTxIdentifier, erc20ContractAddress chainaddr.Address, evmToIcpFee *big.Int) error {
	existing, ok := s.EvmToIcpTxs.Get(evmToIcpEntry{Key: id})
	if !ok {
		return nil
	}
	tx := existing.Value

	var actualReceived *big.Int
	if IsNativeToken(erc20ContractAddress) {
		received, err := checkedSub(tx.Value, evmToIcpFee)
		if err != nil {
			logger.Warn("evm_to_icp fee exceeds deposit value", "id", id, "value", tx.Value, "fee", evmToIcpFee)
			return err
		}
		actualReceived = received
	} else {
		actualReceived = new(big.Int).Set(tx.Value)
	}

	if tx.Erc20ContractAddress != erc20ContractAddress {
		logger.Warn("minted event erc20 address differs from accepted address", "id", id, "accepted", tx.Erc20ContractAddress, "minted", erc20ContractAddress)
	}

	tx.ActualReceived = actualReceived
	tx.Erc20ContractAddress = erc20ContractAddress
	tx.Status = EvmToIcpStatusMinted
	s.EvmToIcpTxs.ReplaceOrInsert(evmToIcpEntry{Key: id, Value: tx})
	return nil
}

// RecordInvalidEvmToIcp marks a deposit invalid. A no-op if id is unknown.
func (s *State) RecordInvalidEvmToIcp(id EvmToIcpTxIdentifier, reason string) {
	existing, ok := s.EvmToIcpTxs.Get(evmToIcpEntry{Key: id})
	if !ok {
		return
	}
	tx := existing.Value
	tx.Status = EvmToIcpStatusInvalid
	tx.InvalidReason = reason
	s.EvmToIcpTxs.ReplaceOrInsert(evmToIcpEntry{Key: id, Value: tx})
}

// RecordQuarantinedEvmToIcp marks a deposit quarantined. A no-op if id is
// unknown.
func (s *State) RecordQuarantinedEvmToIcp(id EvmToIcpTxIdentifier) {
	existing, ok := s.EvmToIcpTxs.Get(evmToIcpEntry{Key: id})
	if !ok {
		return
	}
	tx := existing.Value
	tx.Status = EvmToIcpStatusQuarantined
	s.EvmToIcpTxs.ReplaceOrInsert(evmToIcpEntry{Key: id, Value: tx})
}

// RecordNewIcpToEvm inserts tx unconditionally, overwriting any existing
// entry at id.
func (s *State) RecordNewIcpToEvm(id IcpToEvmIdentifier, tx IcpToEvmTx) {
	s.IcpToEvmTxs.ReplaceOrInsert(icpToEvmEntry{Key: id, Value: tx})
}

// PreRegisterIcpToEvmParams carries the fields a client-facing
// add_icp_to_evm_tx call supplies ahead of any scrape.
type PreRegisterIcpToEvmParams struct {
	WithdrawalAmount *big.Int
	Destination      chainaddr.Address
	From             principal.Principal
	FromSubaccount   *[32]byte
	ChainID          ChainID
	Oprator          Oprator
	Timestamp        uint64
}

// PreRegisterIcpToEvm creates an optimistic, unverified withdrawal record at
// id if none exists yet, mirroring PreRegisterEvmToIcp's idempotency.
func (s *State) PreRegisterIcpToEvm(id IcpToEvmIdentifier, p PreRegisterIcpToEvmParams) {
	if s.IfIcpToEvmTxExists(id) {
		return
	}
	s.RecordNewIcpToEvm(id, IcpToEvmTx{
		NativeLedgerBurnIndex: id.NativeLedgerBurnIndex,
		WithdrawalAmount:      p.WithdrawalAmount,
		Destination:           p.Destination,
		From:                  p.From,
		ChainID:               p.ChainID,
		FromSubaccount:        p.FromSubaccount,
		Time:                  p.Timestamp,
		Status:                IcpToEvmStatusPendingVerification,
		Verified:              false,
		Oprator:               p.Oprator,
	})
}

// AcceptedIcpToEvmParams carries the fields an
// AcceptedNativeWithdrawalRequest/AcceptedErc20WithdrawalRequest canonical
// event supplies to RecordAcceptedIcpToEvm.
type AcceptedIcpToEvmParams struct {
	MaxTransactionFee     *big.Int
	WithdrawalAmount      *big.Int
	Erc20ContractAddress  chainaddr.Address
	Destination           chainaddr.Address
	Erc20LedgerBurnIndex  *big.Int
	From                  principal.Principal
	FromSubaccount        *[32]byte
	CreatedAt             *uint64
	Oprator               Oprator
	ChainID               ChainID
	Timestamp             uint64
}

// RecordAcceptedIcpToEvm updates the existing withdrawal at id in place if
// one exists, or creates a new Accepted-status record, mirroring
// record_accepted_icp_to_evm.
func (s *State) RecordAcceptedIcpToEvm(id IcpToEvmIdentifier, p AcceptedIcpToEvmParams) {
	if existing, ok := s.IcpToEvmTxs.Get(icpToEvmEntry{Key: id}); ok {
		tx := existing.Value
		tx.Verified = true
		tx.MaxTransactionFee = p.MaxTransactionFee
		tx.WithdrawalAmount = p.WithdrawalAmount
		tx.Erc20ContractAddress = p.Erc20ContractAddress
		tx.Destination = p.Destination
		tx.NativeLedgerBurnIndex = id.NativeLedgerBurnIndex
		tx.Erc20LedgerBurnIndex = p.Erc20LedgerBurnIndex
		tx.From = p.From
		tx.FromSubaccount = p.FromSubaccount
		tx.Status = IcpToEvmStatusAccepted
		s.IcpToEvmTxs.ReplaceOrInsert(icpToEvmEntry{Key: id, Value: tx})
		return
	}

	icrcLedgerID, _ := s.GetIcrcTwinForErc20(Erc20Identifier{Erc20Address: p.Erc20ContractAddress, ChainID: p.ChainID}, p.Oprator)
	var icrcLedgerIDPtr *principal.Principal
	if icrcLedgerID != nil {
		icrcLedgerIDPtr = &icrcLedgerID
	}

	createdAt := p.Timestamp
	if p.CreatedAt != nil {
		createdAt = *p.CreatedAt
	}

	tx := IcpToEvmTx{
		NativeLedgerBurnIndex: id.NativeLedgerBurnIndex,
		WithdrawalAmount:      p.WithdrawalAmount,
		Destination:           p.Destination,
		From:                  p.From,
		ChainID:               p.ChainID,
		FromSubaccount:        p.FromSubaccount,
		Time:                  createdAt,
		MaxTransactionFee:     p.MaxTransactionFee,
		Erc20LedgerBurnIndex:  p.Erc20LedgerBurnIndex,
		IcrcLedgerID:          icrcLedgerIDPtr,
		Erc20ContractAddress:  p.Erc20ContractAddress,
		Verified:              true,
		Status:                IcpToEvmStatusAccepted,
		Oprator:               p.Oprator,
	}
	s.RecordNewIcpToEvm(id, tx)
}

func (s *State) setIcpToEvmStatus(id IcpToEvmIdentifier, status IcpToEvmStatus) {
	existing, ok := s.IcpToEvmTxs.Get(icpToEvmEntry{Key: id})
	if !ok {
		return
	}
	tx := existing.Value
	tx.Status = status
	s.IcpToEvmTxs.ReplaceOrInsert(icpToEvmEntry{Key: id, Value: tx})
}

// RecordCreatedIcpToEvm marks a withdrawal's EVM transaction as created.
func (s *State) RecordCreatedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusCreated)
}

// RecordSignedIcpToEvm marks a withdrawal's EVM transaction as signed.
func (s *State) RecordSignedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusSignedTransaction)
}

// RecordReplacedIcpToEvm marks a withdrawal's EVM transaction as replaced
// (e.g. resubmitted at a higher gas price).
func (s *State) RecordReplacedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusReplacedTransaction)
}

// TransactionReceipt is the settlement data a FinalizedTransaction
// canonical event carries.
type TransactionReceipt struct {
	TransactionHash   chainaddr.Hash
	GasUsed           *big.Int
	EffectiveGasPrice *big.Int
	Success           bool
}

// RecordFinalizedIcpToEvm settles a withdrawal once its EVM transaction is
// finalized. Native withdrawals have gas cost and the minter fee deducted
// from the received amount; ERC20 withdrawals only pay the withdrawal
// amount itself since gas is paid in the chain's native coin, not the
// token. Mirrors record_finalized_icp_to_evm's arithmetic exactly,
// including total_gas_spent = gas_used*effective_gas_price + fee.
func (s *State) RecordFinalizedIcpToEvm(id IcpToEvmIdentifier, receipt TransactionReceipt, icpToEvmFee *big.Int) error {
	existing, ok := s.IcpToEvmTxs.Get(icpToEvmEntry{Key: id})
	if !ok {
		return nil
	}
	tx := existing.Value

	gasCost := new(big.Int).Mul(receipt.GasUsed, receipt.EffectiveGasPrice)
	totalGasSpent := new(big.Int).Add(gasCost, icpToEvmFee)

	var actualReceived *big.Int
	if IsNativeToken(tx.Erc20ContractAddress) {
		received, err := checkedSub(tx.WithdrawalAmount, totalGasSpent)
		if err != nil {
			logger.Warn("icp_to_evm gas plus fee exceeds withdrawal amount", "id", id, "withdrawal_amount", tx.WithdrawalAmount, "total_gas_spent", totalGasSpent)
			return err
		}
		actualReceived = received
	} else {
		actualReceived = new(big.Int).Set(tx.WithdrawalAmount)
	}

	if receipt.Success {
		tx.Status = IcpToEvmStatusSuccessful
	} else {
		tx.Status = IcpToEvmStatusFailed
	}

	tx.ActualReceived = actualReceived
	txHash := receipt.TransactionHash
	tx.TransactionHash = &txHash
	tx.GasUsed = receipt.GasUsed
	tx.EffectiveGasPrice = receipt.EffectiveGasPrice
	tx.TotalGasSpent = totalGasSpent

	s.IcpToEvmTxs.ReplaceOrInsert(icpToEvmEntry{Key: id, Value: tx})
	return nil
}

// RecordReimbursedIcpToEvm marks a failed withdrawal as reimbursed.
func (s *State) RecordReimbursedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusReimbursed)
}

// RecordQuarantinedReimbursedIcpToEvm marks a reimbursement quarantined
// pending manual review.
func (s *State) RecordQuarantinedReimbursedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusQuarantinedReimbursement)
}

// RecordFailedIcpToEvm marks a withdrawal request as failed before being
// sent (e.g. an ERC20 refund rejected pre-send), distinct from a withdrawal
// whose EVM transaction was sent and later reverted, which
// RecordFinalizedIcpToEvm handles directly off the transaction receipt.
func (s *State) RecordFailedIcpToEvm(id IcpToEvmIdentifier) {
	s.setIcpToEvmStatus(id, IcpToEvmStatusFailed)
}

// UnverifiedTx pairs an identifier with the record time the reaper uses to
// decide if its verification TTL has elapsed.
type UnverifiedTx[K any] struct {
	ID   K
	Time uint64
}

// AllUnverifiedEvmToIcp lists every deposit not yet Accepted/verified.
func (s *State) AllUnverifiedEvmToIcp() []UnverifiedTx[EvmToIcpTxIdentifier] {
	var out []UnverifiedTx[EvmToIcpTxIdentifier]
	s.EvmToIcpTxs.Ascend(func(e evmToIcpEntry) bool {
		if !e.Value.Verified {
			out = append(out, UnverifiedTx[EvmToIcpTxIdentifier]{ID: e.Key, Time: e.Value.Time})
		}
		return true
	})
	return out
}

// RemoveUnverifiedEvmToIcp drops a stale, never-accepted deposit record.
func (s *State) RemoveUnverifiedEvmToIcp(id EvmToIcpTxIdentifier) {
	s.EvmToIcpTxs.Delete(evmToIcpEntry{Key: id})
}

// AllUnverifiedIcpToEvm lists every withdrawal not yet Accepted/verified.
func (s *State) AllUnverifiedIcpToEvm() []UnverifiedTx[IcpToEvmIdentifier] {
	var out []UnverifiedTx[IcpToEvmIdentifier]
	s.IcpToEvmTxs.Ascend(func(e icpToEvmEntry) bool {
		if !e.Value.Verified {
			out = append(out, UnverifiedTx[IcpToEvmIdentifier]{ID: e.Key, Time: e.Value.Time})
		}
		return true
	})
	return out
}

// RemoveUnverifiedIcpToEvm drops a stale, never-accepted withdrawal record.
func (s *State) RemoveUnverifiedIcpToEvm(id IcpToEvmIdentifier) {
	s.IcpToEvmTxs.Delete(icpToEvmEntry{Key: id})
}

// GetTransactionForAddress returns every transfer touching an EVM address,
// as a source (EVM→ICP) or destination (ICP→EVM).
func (s *State) GetTransactionForAddress(addr chainaddr.Address) []Transaction {
	var out []Transaction
	s.EvmToIcpTxs.Ascend(func(e evmToIcpEntry) bool {
		if e.Value.FromAddress == addr {
			tx := e.Value
			out = append(out, Transaction{EvmToIcp: &tx})
		}
		return true
	})
	s.IcpToEvmTxs.Ascend(func(e icpToEvmEntry) bool {
		if e.Value.Destination == addr {
			tx := e.Value
			out = append(out, Transaction{IcpToEvm: &tx})
		}
		return true
	})
	return out
}

// GetTransactionForPrincipal returns every transfer touching an ICP
// principal, as a destination (EVM→ICP) or source (ICP→EVM).
func (s *State) GetTransactionForPrincipal(p principal.Principal) []Transaction {
	var out []Transaction
	s.EvmToIcpTxs.Ascend(func(e evmToIcpEntry) bool {
		if e.Value.Principal.Equal(p) {
			tx := e.Value
			out = append(out, Transaction{EvmToIcp: &tx})
		}
		return true
	})
	s.IcpToEvmTxs.Ascend(func(e icpToEvmEntry) bool {
		if e.Value.From.Equal(p) {
			tx := e.Value
			out = append(out, Transaction{IcpToEvm: &tx})
		}
		return true
	})
	return out
}

// MinterEntry pairs a minter with its ordering key, for serialization.
type MinterEntry struct {
	Key   MinterKey
	Value Minter
}

// AllMinterEntries returns every minter keyed entry in ascending order.
func (s *State) AllMinterEntries() []MinterEntry {
	var out []MinterEntry
	s.Minters.Ascend(func(e minterEntry) bool {
		out = append(out, MinterEntry{Key: e.Key, Value: e.Value})
		return true
	})
	return out
}

// EvmToIcpEntry pairs a deposit record with its identifier, for
// serialization.
type EvmToIcpEntry struct {
	Key   EvmToIcpTxIdentifier
	Value EvmToIcpTx
}

// AllEvmToIcpEntries returns every deposit keyed entry in ascending order.
func (s *State) AllEvmToIcpEntries() []EvmToIcpEntry {
	var out []EvmToIcpEntry
	s.EvmToIcpTxs.Ascend(func(e evmToIcpEntry) bool {
		out = append(out, EvmToIcpEntry{Key: e.Key, Value: e.Value})
		return true
	})
	return out
}

// IcpToEvmEntry pairs a withdrawal record with its identifier, for
// serialization.
type IcpToEvmEntry struct {
	Key   IcpToEvmIdentifier
	Value IcpToEvmTx
}

// AllIcpToEvmEntries returns every withdrawal keyed entry in ascending order.
func (s *State) AllIcpToEvmEntries() []IcpToEvmEntry {
	var out []IcpToEvmEntry
	s.IcpToEvmTxs.Ascend(func(e icpToEvmEntry) bool {
		out = append(out, IcpToEvmEntry{Key: e.Key, Value: e.Value})
		return true
	})
	return out
}

// Erc20Entry pairs a supported token pair's identifier with its twin
// ledger principal, for serialization.
type Erc20Entry struct {
	Key   Erc20Identifier
	Value principal.Principal
}

// AllCkErc20Entries returns every DfinityCkEthMinter-side token pair.
func (s *State) AllCkErc20Entries() []Erc20Entry {
	var out []Erc20Entry
	s.SupportedCkErc20Tokens.Ascend(func(e erc20Entry) bool {
		out = append(out, Erc20Entry{Key: e.Key, Value: e.Value})
		return true
	})
	return out
}

// AllTwinAppicEntries returns every AppicMinter-side token pair.
func (s *State) AllTwinAppicEntries() []Erc20Entry {
	var out []Erc20Entry
	s.SupportedTwinAppicTokens.Ascend(func(e erc20Entry) bool {
		out = append(out, Erc20Entry{Key: e.Key, Value: e.Value})
		return true
	})
	return out
}

var logger = log.New("module", "store")
