package apply_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/apply"
	"github.com/Appic-Solutions/trsansaction-logger/canonical"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi/dfinity"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/reduce"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

func TestApplyAcceptedDepositThenMintedNative(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorAppicMinter, EvmToIcpFee: big.NewInt(10)}

	txHash := common.HexToHash("0x1")
	err := apply.Apply(s, m, 100, canonical.AcceptedDeposit{
		TransactionHash: txHash,
		BlockNumber:     big.NewInt(1),
		FromAddress:     common.HexToAddress("0xabc"),
		Value:           big.NewInt(1000),
	})
	require.NoError(t, err)

	err = apply.Apply(s, m, 101, canonical.MintedNative{
		EventSource:    canonical.EventSource{TransactionHash: txHash},
		MintBlockIndex: big.NewInt(2),
	})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.HexToAddress("0xabc"))
	require.Len(t, txs, 1)
	assert.Equal(t, store.EvmToIcpStatusMinted, txs[0].EvmToIcp.Status)
	assert.Equal(t, big.NewInt(990), txs[0].EvmToIcp.ActualReceived)
}

func TestApplyMintedWithNoFeeSkipsSilently(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorAppicMinter}

	txHash := common.HexToHash("0x1")
	require.NoError(t, apply.Apply(s, m, 1, canonical.AcceptedDeposit{TransactionHash: txHash, Value: big.NewInt(1)}))

	err := apply.Apply(s, m, 2, canonical.MintedNative{EventSource: canonical.EventSource{TransactionHash: txHash}})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.Address{})
	require.Len(t, txs, 1)
	assert.Equal(t, store.EvmToIcpStatusAccepted, txs[0].EvmToIcp.Status, "status must stay Accepted when fee is unknown")
}

func TestApplyFinalizedTransactionSuccess(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorDfinityCkEthMinter, IcpToEvmFee: big.NewInt(5)}

	id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: 7, ChainID: 1}
	err := apply.Apply(s, m, 1, canonical.AcceptedNativeWithdrawalRequest{
		WithdrawalAmount: big.NewInt(100_000),
		Destination:      common.HexToAddress("0xfee"),
		LedgerBurnIndex:  big.NewInt(7),
	})
	require.NoError(t, err)
	require.True(t, s.IfIcpToEvmTxExists(id))

	err = apply.Apply(s, m, 2, canonical.FinalizedTransaction{
		WithdrawalID: big.NewInt(7),
		TransactionReceipt: canonical.TransactionReceipt{
			GasUsed:           big.NewInt(21000),
			EffectiveGasPrice: big.NewInt(1),
			Status:            canonical.TransactionStatusSuccess,
		},
	})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.HexToAddress("0xfee"))
	require.Len(t, txs, 1)
	assert.Equal(t, store.IcpToEvmStatusSuccessful, txs[0].IcpToEvm.Status)
	assert.Equal(t, big.NewInt(100_000-21000-5), txs[0].IcpToEvm.ActualReceived)
}

func TestApplyUnknownTargetFinalizedIsIgnored(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorAppicMinter, IcpToEvmFee: big.NewInt(1)}

	err := apply.Apply(s, m, 1, canonical.FinalizedTransaction{
		WithdrawalID: big.NewInt(999),
		TransactionReceipt: canonical.TransactionReceipt{
			GasUsed:           big.NewInt(1),
			EffectiveGasPrice: big.NewInt(1),
		},
	})
	assert.NoError(t, err)
}

// TestS1 walks a native EVM->ICP deposit through pre-registration (the
// client saw it on-chain before the scheduler scraped it), acceptance, and
// minting, checking the settlement arithmetic and final status.
func TestS1(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorAppicMinter, EvmToIcpFee: big.NewInt(1000)}

	txHash := common.HexToHash("0xAA")
	id := store.EvmToIcpTxIdentifier{TransactionHash: txHash, ChainID: 1}
	p := principal.Principal([]byte{1, 2, 3})

	s.PreRegisterEvmToIcp(id, store.PreRegisterEvmToIcpParams{
		TransactionHash: txHash,
		FromAddress:     common.HexToAddress("0xF00"),
		Value:           big.NewInt(1_000_000),
		Principal:       p,
		ChainID:         1,
		Oprator:         store.OpratorAppicMinter,
		Timestamp:       1,
	})
	require.True(t, s.IfEvmToIcpTxExists(id))

	err := apply.Apply(s, m, 100, canonical.AcceptedDeposit{
		TransactionHash: txHash,
		BlockNumber:     big.NewInt(100),
		FromAddress:     common.HexToAddress("0xF00"),
		Value:           big.NewInt(1_000_000),
		Principal:       p,
	})
	require.NoError(t, err)

	err = apply.Apply(s, m, 101, canonical.MintedNative{
		EventSource:    canonical.EventSource{TransactionHash: txHash},
		MintBlockIndex: big.NewInt(7),
	})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.HexToAddress("0xF00"))
	require.Len(t, txs, 1)
	tx := txs[0].EvmToIcp
	assert.Equal(t, store.EvmToIcpStatusMinted, tx.Status)
	assert.True(t, tx.Verified)
	assert.Equal(t, big.NewInt(100), tx.BlockNumber)
	assert.Equal(t, big.NewInt(999_000), tx.ActualReceived)
}

// TestS2 walks an ERC20 ICP->EVM withdrawal that gets rejected before it is
// ever sent, checking it lands in Failed with no settlement applied.
func TestS2(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorDfinityCkEthMinter, IcpToEvmFee: big.NewInt(1)}
	p := principal.Principal([]byte{4, 5, 6})

	err := apply.Apply(s, m, 1, canonical.AcceptedErc20WithdrawalRequest{
		NativeLedgerBurnIndex: big.NewInt(42),
		WithdrawalAmount:      big.NewInt(5_000_000),
		Erc20ContractAddress:  common.HexToAddress("0xDEAD"),
		Destination:           common.HexToAddress("0xBEEF"),
		Erc20LedgerBurnIndex:  big.NewInt(9),
		From:                  p,
	})
	require.NoError(t, err)

	id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: 42, ChainID: 1}
	require.True(t, s.IfIcpToEvmTxExists(id))

	err = apply.Apply(s, m, 2, canonical.FailedErc20WithdrawalRequest{
		WithdrawalID:     big.NewInt(42),
		ReimbursedAmount: big.NewInt(5_000_000),
		To:               p,
	})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.HexToAddress("0xBEEF"))
	require.Len(t, txs, 1)
	tx := txs[0].IcpToEvm
	assert.Equal(t, store.IcpToEvmStatusFailed, tx.Status)
	assert.Nil(t, tx.ActualReceived)
}

// TestS3 walks a native ICP->EVM withdrawal through its whole
// created/signed/finalized lifecycle, checking the gas and fee arithmetic
// RecordFinalizedIcpToEvm performs.
func TestS3(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorDfinityCkEthMinter, IcpToEvmFee: big.NewInt(2_000)}

	err := apply.Apply(s, m, 1, canonical.AcceptedNativeWithdrawalRequest{
		WithdrawalAmount: big.NewInt(10_000_000),
		Destination:      common.HexToAddress("0xfee"),
		LedgerBurnIndex:  big.NewInt(7),
	})
	require.NoError(t, err)

	require.NoError(t, apply.Apply(s, m, 2, canonical.CreatedTransaction{WithdrawalID: big.NewInt(7)}))
	require.NoError(t, apply.Apply(s, m, 3, canonical.SignedTransaction{WithdrawalID: big.NewInt(7)}))

	txHash := common.HexToHash("0xCAFE")
	err = apply.Apply(s, m, 4, canonical.FinalizedTransaction{
		WithdrawalID: big.NewInt(7),
		TransactionReceipt: canonical.TransactionReceipt{
			TransactionHash:   txHash,
			GasUsed:           big.NewInt(21_000),
			EffectiveGasPrice: big.NewInt(100),
			Status:            canonical.TransactionStatusSuccess,
		},
	})
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.HexToAddress("0xfee"))
	require.Len(t, txs, 1)
	tx := txs[0].IcpToEvm
	assert.Equal(t, store.IcpToEvmStatusSuccessful, tx.Status)
	assert.Equal(t, big.NewInt(2_102_000), tx.TotalGasSpent)
	assert.Equal(t, big.NewInt(7_898_000), tx.ActualReceived)
	require.NotNil(t, tx.TransactionHash)
	assert.Equal(t, txHash, *tx.TransactionHash)
}

// TestS4 checks the Schema Reducer renames a DfinityCkEthMinter MintedCkEth
// event straight through to canonical.MintedNative with its fields intact.
func TestS4(t *testing.T) {
	txHash := common.HexToHash("0xBB")
	events := []dfinity.Event{
		{
			Timestamp: 55,
			Payload: dfinity.MintedCkEth{
				EventSource:    dfinity.EventSource{TransactionHash: txHash, LogIndex: 2},
				MintBlockIndex: big.NewInt(4),
			},
		},
	}

	canon, skipped := reduce.Dfinity(events)
	require.Empty(t, skipped)
	require.Len(t, canon, 1)

	assert.Equal(t, uint64(55), canon[0].Timestamp)
	assert.Equal(t, canonical.MintedNative{
		EventSource:    canonical.EventSource{TransactionHash: txHash, LogIndex: 2},
		MintBlockIndex: big.NewInt(4),
	}, canon[0].Payload)
}

func TestApplyAllStopsOnUnderflow(t *testing.T) {
	s := store.NewState()
	m := apply.Minter{ChainID: 1, Oprator: store.OpratorAppicMinter, EvmToIcpFee: big.NewInt(1000)}

	txHash := common.HexToHash("0x2")
	events := canonical.Events{
		{Timestamp: 1, Payload: canonical.AcceptedDeposit{TransactionHash: txHash, Value: big.NewInt(10)}},
		{Timestamp: 2, Payload: canonical.MintedNative{EventSource: canonical.EventSource{TransactionHash: txHash}}},
	}

	err := apply.ApplyAll(s, m, events)
	assert.Error(t, err)
}
