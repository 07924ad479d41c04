package reduce_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/canonical"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi/appic"
	"github.com/Appic-Solutions/trsansaction-logger/minterapi/dfinity"
	"github.com/Appic-Solutions/trsansaction-logger/reduce"
)

func TestAppicFiltersBookkeepingVariants(t *testing.T) {
	events := []appic.Event{
		{Timestamp: 1, Payload: appic.Init{ChainID: 1}},
		{Timestamp: 2, Payload: appic.Upgrade{}},
		{Timestamp: 3, Payload: appic.AcceptedDeposit{Value: big.NewInt(10)}},
	}

	reduced, skipped := reduce.Appic(events)

	require.Len(t, reduced, 1)
	require.Len(t, skipped, 2)
	assert.Equal(t, "init", skipped[0].Reason)
	assert.Equal(t, "upgrade", skipped[1].Reason)
	assert.IsType(t, canonical.AcceptedDeposit{}, reduced[0].Payload)
}

func TestDfinityFiltersAllBookkeepingVariants(t *testing.T) {
	events := []dfinity.Event{
		{Timestamp: 1, Payload: dfinity.Init{ChainID: 1}},
		{Timestamp: 2, Payload: dfinity.Upgrade{}},
		{Timestamp: 3, Payload: dfinity.SyncedToBlock{BlockNumber: big.NewInt(5)}},
		{Timestamp: 4, Payload: dfinity.SyncedErc20ToBlock{BlockNumber: big.NewInt(5)}},
		{Timestamp: 5, Payload: dfinity.SyncedDepositWithSubaccountToBlock{BlockNumber: big.NewInt(5)}},
		{Timestamp: 6, Payload: dfinity.SkippedBlock{BlockNumber: big.NewInt(5)}},
		{Timestamp: 7, Payload: dfinity.AddedCkErc20Token{ChainID: 1}},
	}

	reduced, skipped := reduce.Dfinity(events)

	assert.Empty(t, reduced)
	assert.Len(t, skipped, 7)
}

func TestDfinityRenamesMintedCkErc20Fields(t *testing.T) {
	events := []dfinity.Event{
		{
			Timestamp: 1,
			Payload: dfinity.MintedCkErc20{
				MintBlockIndex:     big.NewInt(42),
				CkErc20TokenSymbol: "ckUSDC",
			},
		},
	}

	reduced, skipped := reduce.Dfinity(events)

	require.Len(t, reduced, 1)
	assert.Empty(t, skipped)

	minted, ok := reduced[0].Payload.(canonical.MintedErc20)
	require.True(t, ok)
	assert.Equal(t, "ckUSDC", minted.Erc20TokenSymbol)
	assert.Equal(t, big.NewInt(42), minted.MintBlockIndex)
}

func TestDfinityRenamesAcceptedErc20WithdrawalRequestFields(t *testing.T) {
	events := []dfinity.Event{
		{
			Timestamp: 1,
			Payload: dfinity.AcceptedErc20WithdrawalRequest{
				CkethLedgerBurnIndex:   big.NewInt(1),
				CkErc20LedgerBurnIndex: big.NewInt(2),
			},
		},
	}

	reduced, _ := reduce.Dfinity(events)
	require.Len(t, reduced, 1)

	req, ok := reduced[0].Payload.(canonical.AcceptedErc20WithdrawalRequest)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(1), req.NativeLedgerBurnIndex)
	assert.Equal(t, big.NewInt(2), req.Erc20LedgerBurnIndex)
}

func TestFinalizedTransactionStatusMapsToNonUnknown(t *testing.T) {
	events := []appic.Event{
		{
			Timestamp: 1,
			Payload: appic.FinalizedTransaction{
				WithdrawalID: big.NewInt(1),
				TransactionReceipt: appic.TransactionReceipt{
					Status: appic.TransactionStatusSuccess,
				},
			},
		},
	}

	reduced, _ := reduce.Appic(events)
	require.Len(t, reduced, 1)

	tx, ok := reduced[0].Payload.(canonical.FinalizedTransaction)
	require.True(t, ok)
	assert.Equal(t, canonical.TransactionStatusSuccess, tx.TransactionReceipt.Status)
	assert.NotEqual(t, canonical.TransactionStatusUnknown, tx.TransactionReceipt.Status)
}
