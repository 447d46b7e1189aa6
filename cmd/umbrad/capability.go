package main

import (
	"errors"
	"math/big"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// errNoAccumulators is returned until an accumulator backend is attached.
var errNoAccumulators = errors.New("no zerocoin accumulator backend attached")

// unavailableAccumulator stands in for the zerocoin arithmetic library.  No
// proof verifies against it, so zerocoin spends are rejected until a real
// backend is attached.
type unavailableAccumulator struct {
	modulus *big.Int
}

func newUnavailableAccumulator(params *chaincfg.Params) unavailableAccumulator {
	return unavailableAccumulator{modulus: params.ZerocoinModulus()}
}

func (unavailableAccumulator) Verify(*big.Int, []byte, *big.Int,
	chain.Denomination) bool {

	return false
}

func (unavailableAccumulator) Recompute(chain.Denomination,
	[]*chain.ZerocoinMint) *big.Int {

	return nil
}

// SerialUpperBound bounds serials by the trusted modulus.
func (a unavailableAccumulator) SerialUpperBound(chain.Denomination) *big.Int {
	return new(big.Int).Set(a.modulus)
}

type unavailableAccumulators struct{}

func (unavailableAccumulators) Checkpoint(chain.Denomination,
	int32) (*big.Int, int, error) {

	return nil, 0, errNoAccumulators
}

func (unavailableAccumulators) MintsUpTo(chain.Denomination,
	int32) ([]*chain.ZerocoinMint, error) {

	return nil, errNoAccumulators
}

// emptyView is the chain view of a node without blocks.
type emptyView struct{}

func (emptyView) BestHeight() int32 { return -1 }

func (emptyView) BestWork() *big.Int { return new(big.Int) }

func (emptyView) Ancestors(*chainhash.Hash, int) ([]wire.BlockHeader, error) {
	return nil, nil
}
