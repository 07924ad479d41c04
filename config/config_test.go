package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Appic-Solutions/trsansaction-logger/config"
	"github.com/Appic-Solutions/trsansaction-logger/principal"
	"github.com/Appic-Solutions/trsansaction-logger/store"
)

func TestLoadFileAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`HTTPAddr = "0.0.0.0:9090"`), 0o644))

	args, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", args.HTTPAddr)
	assert.Equal(t, config.DefaultInitArgs().ScrapeSchedule, args.ScrapeSchedule)
	assert.Equal(t, config.DefaultInitArgs().DataDir, args.DataDir)
}

func TestMinterArgsParsesIntoStoreMinter(t *testing.T) {
	minterID := principal.Principal([]byte("minter-1")).String()
	args := config.MinterArgs{
		ChainID:     1,
		MinterID:    minterID,
		Oprator:     "AppicMinter",
		EvmToIcpFee: "1000",
		IcpToEvmFee: "2000",
	}

	m, err := args.Minter()
	require.NoError(t, err)
	assert.Equal(t, store.OpratorAppicMinter, m.Oprator)
	assert.Equal(t, store.ChainID(1), m.ChainID)
	assert.Equal(t, "1000", m.EvmToIcpFee.String())
}

func TestMinterArgsRejectsUnknownOprator(t *testing.T) {
	minterID := principal.Principal([]byte("minter-1")).String()
	args := config.MinterArgs{MinterID: minterID, Oprator: "NotReal", EvmToIcpFee: "0", IcpToEvmFee: "0"}
	_, err := args.Minter()
	assert.Error(t, err)
}
