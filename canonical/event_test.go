package canonical_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Appic-Solutions/trsansaction-logger/canonical"
)

func TestEventsHoldsMixedPayloadVariants(t *testing.T) {
	events := canonical.Events{
		{Timestamp: 1, Payload: canonical.AcceptedDeposit{Value: big.NewInt(100)}},
		{Timestamp: 2, Payload: canonical.MintedNative{MintBlockIndex: big.NewInt(7)}},
	}

	assert.Len(t, events, 2)

	_, isDeposit := events[0].Payload.(canonical.AcceptedDeposit)
	assert.True(t, isDeposit)

	_, isMinted := events[1].Payload.(canonical.MintedNative)
	assert.True(t, isMinted)
}

func TestTransactionStatusZeroValueIsUnknown(t *testing.T) {
	var status canonical.TransactionStatus
	assert.Equal(t, canonical.TransactionStatusUnknown, status)
}
