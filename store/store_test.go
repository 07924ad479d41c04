package store_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

func testPrincipal(t *testing.T, text string) principal.Principal {
	t.Helper()
	return principal.Principal([]byte(text))
}

func TestRecordAcceptedEvmToIcpCreatesWhenMissing(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}

	s.RecordAcceptedEvmToIcp(id, store.AcceptedEvmToIcpParams{
		TransactionHash: common.HexToHash("0x1"),
		BlockNumber:     big.NewInt(100),
		FromAddress:     common.HexToAddress("0xabc"),
		Value:           big.NewInt(1000),
		Principal:       testPrincipal(t, "p1"),
		ChainID:         1,
		Oprator:         store.OpratorAppicMinter,
		Timestamp:       42,
	})

	require.True(t, s.IfEvmToIcpTxExists(id))
	txs := s.GetTransactionForAddress(common.HexToAddress("0xabc"))
	require.Len(t, txs, 1)
	assert.Equal(t, store.EvmToIcpStatusAccepted, txs[0].EvmToIcp.Status)
	assert.True(t, txs[0].EvmToIcp.Verified)
}

func TestRecordAcceptedEvmToIcpUpdatesExisting(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}

	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{
		TransactionHash: common.HexToHash("0x1"),
		Value:           big.NewInt(1),
		ChainID:         1,
		Status:          store.EvmToIcpStatusPendingVerification,
		Verified:        false,
	})

	s.RecordAcceptedEvmToIcp(id, store.AcceptedEvmToIcpParams{
		TransactionHash: common.HexToHash("0x1"),
		BlockNumber:     big.NewInt(5),
		Value:           big.NewInt(999),
		ChainID:         1,
		Timestamp:       7,
	})

	unverified := s.AllUnverifiedEvmToIcp()
	assert.Empty(t, unverified, "accepted tx must no longer be unverified")
}

func TestRecordMintedEvmToIcpSubtractsFeeForNativeToken(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}
	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{Value: big.NewInt(1000), ChainID: 1})

	err := s.RecordMintedEvmToIcp(id, store.NativeErc20Address, big.NewInt(50))
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.Address{})
	require.Len(t, txs, 1)
	assert.Equal(t, big.NewInt(950), txs[0].EvmToIcp.ActualReceived)
	assert.Equal(t, store.EvmToIcpStatusMinted, txs[0].EvmToIcp.Status)
}

func TestRecordMintedEvmToIcpKeepsFullValueForErc20(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}
	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{Value: big.NewInt(1000), ChainID: 1})

	tokenAddr := common.HexToAddress("0xdead")
	err := s.RecordMintedEvmToIcp(id, tokenAddr, big.NewInt(50))
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.Address{})
	require.Len(t, txs, 1)
	assert.Equal(t, big.NewInt(1000), txs[0].EvmToIcp.ActualReceived)
}

func TestRecordMintedEvmToIcpUnderflowReturnsError(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}
	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{Value: big.NewInt(10), ChainID: 1})

	err := s.RecordMintedEvmToIcp(id, store.NativeErc20Address, big.NewInt(50))
	assert.ErrorIs(t, err, store.ErrArithmeticUnderflow)
}

func TestRecordFinalizedIcpToEvmComputesGasAndFee(t *testing.T) {
	s := store.NewState()
	id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: 1, ChainID: 1}
	s.RecordNewIcpToEvm(id, store.IcpToEvmTx{
		WithdrawalAmount:     big.NewInt(100_000),
		Erc20ContractAddress: store.NativeErc20Address,
		ChainID:              1,
	})

	err := s.RecordFinalizedIcpToEvm(id, store.TransactionReceipt{
		TransactionHash:   common.HexToHash("0xbeef"),
		GasUsed:           big.NewInt(21000),
		EffectiveGasPrice: big.NewInt(2),
		Success:           true,
	}, big.NewInt(100))
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.Address{})
	require.Len(t, txs, 1)
	tx := txs[0].IcpToEvm
	assert.Equal(t, store.IcpToEvmStatusSuccessful, tx.Status)
	assert.Equal(t, big.NewInt(42100), tx.TotalGasSpent) // 21000*2 + 100
	assert.Equal(t, big.NewInt(100_000-42100), tx.ActualReceived)
}

func TestRecordFinalizedIcpToEvmFailureStatus(t *testing.T) {
	s := store.NewState()
	id := store.IcpToEvmIdentifier{NativeLedgerBurnIndex: 1, ChainID: 1}
	s.RecordNewIcpToEvm(id, store.IcpToEvmTx{
		WithdrawalAmount:     big.NewInt(10_000_000),
		Erc20ContractAddress: store.NativeErc20Address,
		ChainID:              1,
	})

	err := s.RecordFinalizedIcpToEvm(id, store.TransactionReceipt{
		GasUsed:           big.NewInt(21000),
		EffectiveGasPrice: big.NewInt(2),
		Success:           false,
	}, big.NewInt(100))
	require.NoError(t, err)

	txs := s.GetTransactionForAddress(common.Address{})
	require.Len(t, txs, 1)
	assert.Equal(t, store.IcpToEvmStatusFailed, txs[0].IcpToEvm.Status)
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}
	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{Value: big.NewInt(1), ChainID: 1})

	clone := s.Clone()
	clone.RecordQuarantinedEvmToIcp(id)

	original := s.GetTransactionForAddress(common.Address{})
	require.Len(t, original, 1)
	assert.NotEqual(t, store.EvmToIcpStatusQuarantined, original[0].EvmToIcp.Status)
}

func TestRemoveUnverifiedEvmToIcp(t *testing.T) {
	s := store.NewState()
	id := store.EvmToIcpTxIdentifier{TransactionHash: common.HexToHash("0x1"), ChainID: 1}
	s.RecordNewEvmToIcp(id, store.EvmToIcpTx{Value: big.NewInt(1), ChainID: 1, Verified: false, Time: 10})

	unverified := s.AllUnverifiedEvmToIcp()
	require.Len(t, unverified, 1)
	assert.Equal(t, uint64(10), unverified[0].Time)

	s.RemoveUnverifiedEvmToIcp(id)
	assert.False(t, s.IfEvmToIcpTxExists(id))
}

func TestRecordMinterAndIfChainIDExists(t *testing.T) {
	s := store.NewState()
	assert.False(t, s.IfChainIDExists(5))

	s.RecordMinter(store.Minter{ChainID: 5, Oprator: store.OpratorAppicMinter, ID: testPrincipal(t, "m1")})
	assert.True(t, s.IfChainIDExists(5))
	assert.Len(t, s.GetMinters(), 1)
}

func TestGetSupportedTwinTokenPairsAcrossBothOprators(t *testing.T) {
	s := store.NewState()
	s.RecordErc20TwinPair(store.Erc20Identifier{Erc20Address: common.HexToAddress("0x1"), ChainID: 1}, testPrincipal(t, "a"), store.OpratorDfinityCkEthMinter)
	s.RecordErc20TwinPair(store.Erc20Identifier{Erc20Address: common.HexToAddress("0x2"), ChainID: 1}, testPrincipal(t, "b"), store.OpratorAppicMinter)

	pairs := s.GetSupportedTwinTokenPairs()
	assert.Len(t, pairs, 2)
}
