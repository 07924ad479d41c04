package persist

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Appic-Solutions/trsansaction-logger/guard"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

// wireTaskKey is the CBOR-friendly projection of guard.Key.
type wireTaskKey struct {
	Task   string
	Minter string
}

type wireMinter struct {
	ChainID           uint64
	Oprator           uint8
	ID                []byte
	LastObservedEvent uint64
	LastScrapedEvent  uint64
	EvmToIcpFee       []byte
	IcpToEvmFee       []byte
}

type wireEvmToIcpTx struct {
	TransactionHash      []byte
	ChainID              uint64
	FromAddress          []byte
	Value                []byte
	BlockNumber          []byte
	ActualReceived       []byte
	Principal            []byte
	Subaccount           []byte
	TotalGasSpent        []byte
	Erc20ContractAddress []byte
	IcrcLedgerID         []byte
	Status               uint8
	InvalidReason        string
	Verified             bool
	Time                 uint64
	Oprator              uint8
}

type wireIcpToEvmTx struct {
	NativeLedgerBurnIndex uint64
	ChainID               uint64
	TransactionHash       []byte
	WithdrawalAmount      []byte
	ActualReceived        []byte
	Destination           []byte
	From                  []byte
	FromSubaccount        []byte
	Time                  uint64
	MaxTransactionFee     []byte
	EffectiveGasPrice     []byte
	GasUsed               []byte
	TotalGasSpent         []byte
	Erc20LedgerBurnIndex  []byte
	Erc20ContractAddress  []byte
	IcrcLedgerID          []byte
	Verified              bool
	Status                uint8
	Oprator               uint8
}

type wireErc20Pair struct {
	Erc20Address []byte
	ChainID      uint64
	LedgerID     []byte
}

func bigBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}

func bigFromBytes(b []byte) *big.Int {
	if b == nil {
		return nil
	}
	return new(big.Int).SetBytes(b)
}

func subaccountBytes(s *[32]byte) []byte {
	if s == nil {
		return nil
	}
	return s[:]
}

func subaccountFromBytes(b []byte) *[32]byte {
	if b == nil {
		return nil
	}
	var arr [32]byte
	copy(arr[:], b)
	return &arr
}

func principalPtrBytes(p *principal.Principal) []byte {
	if p == nil {
		return nil
	}
	return []byte(*p)
}

func principalPtrFromBytes(b []byte) *principal.Principal {
	if b == nil {
		return nil
	}
	p := principal.Principal(b)
	return &p
}

func hashPtrBytes(h *common.Hash) []byte {
	if h == nil {
		return nil
	}
	return h.Bytes()
}

func hashPtrFromBytes(b []byte) *common.Hash {
	if b == nil {
		return nil
	}
	h := common.BytesToHash(b)
	return &h
}

func toWire(s *store.State) wireState {
	var w wireState

	for k := range s.ActiveTasks {
		w.ActiveTasks = append(w.ActiveTasks, wireTaskKey{Task: string(k.Task), Minter: k.Minter})
	}

	for _, e := range s.AllMinterEntries() {
		w.Minters = append(w.Minters, wireMinter{
			ChainID:           uint64(e.Value.ChainID),
			Oprator:           uint8(e.Value.Oprator),
			ID:                []byte(e.Value.ID),
			LastObservedEvent: e.Value.LastObservedEvent,
			LastScrapedEvent:  e.Value.LastScrapedEvent,
			EvmToIcpFee:       bigBytes(e.Value.EvmToIcpFee),
			IcpToEvmFee:       bigBytes(e.Value.IcpToEvmFee),
		})
	}

	for _, e := range s.AllEvmToIcpEntries() {
		tx := e.Value
		w.EvmToIcpTxs = append(w.EvmToIcpTxs, wireEvmToIcpTx{
			TransactionHash:      tx.TransactionHash.Bytes(),
			ChainID:              uint64(e.Key.ChainID),
			FromAddress:          tx.FromAddress.Bytes(),
			Value:                bigBytes(tx.Value),
			BlockNumber:          bigBytes(tx.BlockNumber),
			ActualReceived:       bigBytes(tx.ActualReceived),
			Principal:            []byte(tx.Principal),
			Subaccount:           subaccountBytes(tx.Subaccount),
			TotalGasSpent:        bigBytes(tx.TotalGasSpent),
			Erc20ContractAddress: tx.Erc20ContractAddress.Bytes(),
			IcrcLedgerID:         principalPtrBytes(tx.IcrcLedgerID),
			Status:               uint8(tx.Status),
			InvalidReason:        tx.InvalidReason,
			Verified:             tx.Verified,
			Time:                 tx.Time,
			Oprator:              uint8(tx.Oprator),
		})
	}

	for _, e := range s.AllIcpToEvmEntries() {
		tx := e.Value
		w.IcpToEvmTxs = append(w.IcpToEvmTxs, wireIcpToEvmTx{
			NativeLedgerBurnIndex: e.Key.NativeLedgerBurnIndex,
			ChainID:               uint64(e.Key.ChainID),
			TransactionHash:       hashPtrBytes(tx.TransactionHash),
			WithdrawalAmount:      bigBytes(tx.WithdrawalAmount),
			ActualReceived:        bigBytes(tx.ActualReceived),
			Destination:           tx.Destination.Bytes(),
			From:                  []byte(tx.From),
			FromSubaccount:        subaccountBytes(tx.FromSubaccount),
			Time:                  tx.Time,
			MaxTransactionFee:     bigBytes(tx.MaxTransactionFee),
			EffectiveGasPrice:     bigBytes(tx.EffectiveGasPrice),
			GasUsed:               bigBytes(tx.GasUsed),
			TotalGasSpent:         bigBytes(tx.TotalGasSpent),
			Erc20LedgerBurnIndex:  bigBytes(tx.Erc20LedgerBurnIndex),
			Erc20ContractAddress:  tx.Erc20ContractAddress.Bytes(),
			IcrcLedgerID:          principalPtrBytes(tx.IcrcLedgerID),
			Verified:              tx.Verified,
			Status:                uint8(tx.Status),
			Oprator:               uint8(tx.Oprator),
		})
	}

	for _, e := range s.AllCkErc20Entries() {
		w.SupportedCkErc20Tokens = append(w.SupportedCkErc20Tokens, wireErc20Pair{
			Erc20Address: e.Key.Erc20Address.Bytes(),
			ChainID:      uint64(e.Key.ChainID),
			LedgerID:     []byte(e.Value),
		})
	}
	for _, e := range s.AllTwinAppicEntries() {
		w.SupportedTwinAppicTokens = append(w.SupportedTwinAppicTokens, wireErc20Pair{
			Erc20Address: e.Key.Erc20Address.Bytes(),
			ChainID:      uint64(e.Key.ChainID),
			LedgerID:     []byte(e.Value),
		})
	}

	return w
}

func fromWire(w wireState) *store.State {
	s := store.NewState()

	for _, t := range w.ActiveTasks {
		s.ActiveTasks[guard.Key{Task: guard.TaskType(t.Task), Minter: t.Minter}] = struct{}{}
	}

	for _, m := range w.Minters {
		s.RecordMinter(store.Minter{
			ID:                principal.Principal(m.ID),
			LastObservedEvent: m.LastObservedEvent,
			LastScrapedEvent:  m.LastScrapedEvent,
			Oprator:           store.Oprator(m.Oprator),
			EvmToIcpFee:       bigFromBytes(m.EvmToIcpFee),
			IcpToEvmFee:       bigFromBytes(m.IcpToEvmFee),
			ChainID:           store.ChainID(m.ChainID),
		})
	}

	for _, t := range w.EvmToIcpTxs {
		id := store.EvmToIcpTxIdentifier{
			TransactionHash: common.BytesToHash(t.TransactionHash),
			ChainID:         store.ChainID(t.ChainID),
		}
		s.RecordNewEvmToIcp(id, store.EvmToIcpTx{
			FromAddress:          common.BytesToAddress(t.FromAddress),
			TransactionHash:      common.BytesToHash(t.TransactionHash),
			Value:                bigFromBytes(t.Value),
			BlockNumber:          bigFromBytes(t.BlockNumber),
			ActualReceived:       bigFromBytes(t.ActualReceived),
			Principal:            principal.Principal(t.Principal),
			Subaccount:           subaccountFromBytes(t.Subaccount),
			ChainID:              store.ChainID(t.ChainID),
			TotalGasSpent:        bigFromBytes(t.TotalGasSpent),
			Erc20ContractAddress: common.BytesToAddress(t.Erc20ContractAddress),
			IcrcLedgerID:         principalPtrFromBytes(t.IcrcLedgerID),
			Status:               store.EvmToIcpStatus(t.Status),
			InvalidReason:        t.InvalidReason,
			Verified:             t.Verified,
			Time:                 t.Time,
			Oprator:              store.Oprator(t.Oprator),
		})
	}

	for _, t := range w.IcpToEvmTxs {
		id := store.IcpToEvmIdentifier{
			NativeLedgerBurnIndex: t.NativeLedgerBurnIndex,
			ChainID:               store.ChainID(t.ChainID),
		}
		s.RecordNewIcpToEvm(id, store.IcpToEvmTx{
			TransactionHash:       hashPtrFromBytes(t.TransactionHash),
			NativeLedgerBurnIndex: t.NativeLedgerBurnIndex,
			WithdrawalAmount:      bigFromBytes(t.WithdrawalAmount),
			ActualReceived:        bigFromBytes(t.ActualReceived),
			Destination:           common.BytesToAddress(t.Destination),
			From:                  principal.Principal(t.From),
			ChainID:               store.ChainID(t.ChainID),
			FromSubaccount:        subaccountFromBytes(t.FromSubaccount),
			Time:                  t.Time,
			MaxTransactionFee:     bigFromBytes(t.MaxTransactionFee),
			EffectiveGasPrice:     bigFromBytes(t.EffectiveGasPrice),
			GasUsed:               bigFromBytes(t.GasUsed),
			TotalGasSpent:         bigFromBytes(t.TotalGasSpent),
			Erc20LedgerBurnIndex:  bigFromBytes(t.Erc20LedgerBurnIndex),
			Erc20ContractAddress:  common.BytesToAddress(t.Erc20ContractAddress),
			IcrcLedgerID:          principalPtrFromBytes(t.IcrcLedgerID),
			Verified:              t.Verified,
			Status:                store.IcpToEvmStatus(t.Status),
			Oprator:               store.Oprator(t.Oprator),
		})
	}

	for _, p := range w.SupportedCkErc20Tokens {
		s.RecordErc20TwinPair(
			store.Erc20Identifier{Erc20Address: common.BytesToAddress(p.Erc20Address), ChainID: store.ChainID(p.ChainID)},
			principal.Principal(p.LedgerID),
			store.OpratorDfinityCkEthMinter,
		)
	}
	for _, p := range w.SupportedTwinAppicTokens {
		s.RecordErc20TwinPair(
			store.Erc20Identifier{Erc20Address: common.BytesToAddress(p.Erc20Address), ChainID: store.ChainID(p.ChainID)},
			principal.Principal(p.LedgerID),
			store.OpratorAppicMinter,
		)
	}

	return s
}
