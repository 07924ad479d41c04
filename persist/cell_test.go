package persist_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/persist"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

func openCell(t *testing.T) *persist.Cell {
	t.Helper()
	c, err := persist.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestReadBeforeInitReturnsErrNotInitialized(t *testing.T) {
	c := openCell(t)
	_, err := c.Read()
	assert.ErrorIs(t, err, persist.ErrNotInitialized)
}

func TestInitTwiceReturnsErrAlreadyInitialized(t *testing.T) {
	c := openCell(t)
	require.NoError(t, c.Init(store.NewState()))

	err := c.Init(store.NewState())
	assert.ErrorIs(t, err, persist.ErrAlreadyInitialized)
}

func TestMutateRoundTripsMinterState(t *testing.T) {
	c := openCell(t)
	require.NoError(t, c.Init(store.NewState()))

	err := c.Mutate(func(s *store.State) error {
		s.RecordMinter(store.Minter{
			ID:          principal.Principal([]byte("minter-1")),
			ChainID:     1,
			Oprator:     store.OpratorAppicMinter,
			EvmToIcpFee: big.NewInt(10),
			IcpToEvmFee: big.NewInt(20),
		})
		return nil
	})
	require.NoError(t, err)

	loaded, err := c.Read()
	require.NoError(t, err)
	minters := loaded.GetMinters()
	require.Len(t, minters, 1)
	assert.Equal(t, big.NewInt(10), minters[0].EvmToIcpFee)
	assert.Equal(t, big.NewInt(20), minters[0].IcpToEvmFee)
}

func TestMutateDoesNotCommitOnError(t *testing.T) {
	c := openCell(t)
	require.NoError(t, c.Init(store.NewState()))

	sentinel := assert.AnError
	err := c.Mutate(func(s *store.State) error {
		s.RecordMinter(store.Minter{ChainID: 9})
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	loaded, err := c.Read()
	require.NoError(t, err)
	assert.False(t, loaded.IfChainIDExists(9), "failed mutation must not be visible")
}

func TestEvmToIcpTxRoundTripsThroughCbor(t *testing.T) {
	c := openCell(t)
	require.NoError(t, c.Init(store.NewState()))

	txHash := common.HexToHash("0xabc")
	id := store.EvmToIcpTxIdentifier{TransactionHash: txHash, ChainID: 5}

	err := c.Mutate(func(s *store.State) error {
		s.RecordNewEvmToIcp(id, store.EvmToIcpTx{
			TransactionHash: txHash,
			Value:           big.NewInt(123456789),
			ChainID:         5,
			Status:          store.EvmToIcpStatusPendingVerification,
			Verified:        false,
			Time:            555,
		})
		return nil
	})
	require.NoError(t, err)

	loaded, err := c.Read()
	require.NoError(t, err)
	require.True(t, loaded.IfEvmToIcpTxExists(id))

	unverified := loaded.AllUnverifiedEvmToIcp()
	require.Len(t, unverified, 1)
	assert.Equal(t, uint64(555), unverified[0].Time)
}
