package main

import (
	"testing"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/Umbracoindevs/UMBRA-v2/consensus"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin/serialdb"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, params *chaincfg.Params) *consensus.Engine {
	serials, err := serialdb.OpenMem()
	require.NoError(t, err)
	t.Cleanup(func() { serials.Close() })

	engine, err := consensus.New(&consensus.Config{
		Params:       params,
		Accumulator:  newUnavailableAccumulator(params),
		Accumulators: unavailableAccumulators{},
		Serials:      serials,
		TipHeight:    -1,
	})
	require.NoError(t, err)
	return engine
}

func TestCheckGenesis(t *testing.T) {
	for _, params := range []*chaincfg.Params{
		chaincfg.MainNetParams(),
		chaincfg.TestNetParams(),
		chaincfg.RegressionNetParams(),
	} {
		require.NoError(t, checkGenesis(newTestEngine(t, params)),
			params.Name())
	}
}

func TestUnavailableAccumulator(t *testing.T) {
	params := chaincfg.MainNetParams()
	acc := newUnavailableAccumulator(params)
	require.False(t, acc.Verify(nil, nil, nil, 0))
	require.Equal(t, 0, acc.SerialUpperBound(1).Cmp(params.ZerocoinModulus()))

	_, _, err := unavailableAccumulators{}.Checkpoint(1, 1)
	require.ErrorIs(t, err, errNoAccumulators)
}
