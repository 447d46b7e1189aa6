package chaincfg

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/wire"
)

// regressionPowLimit is the easiest proof of work target on the regression
// test network, 2^255 - 1.
var regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

var regressionCheckpoints = CheckpointData{
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("001")},
	},
	LastCheckpointTime:         1545453420,
	TransactionsLastCheckpoint: 0,
	TransactionsPerDay:         100,
}

// RegressionNetParams returns the parameters of the regression test
// network.  They are the test network parameters with the overrides below.
func RegressionNetParams() *Params {
	p := TestNetParams().clone()

	p.net = RegressionNet
	p.magic = wire.BitcoinNet(0xb792c434)
	p.defaultPort = "18879"

	p.genesisHeader.Timestamp = time.Unix(1545453421, 0)
	p.genesisHeader.Bits = 0x1e0ffff0
	p.genesisHeader.Nonce = 732084
	p.genesisHash = nil

	p.subsidyHalvingInterval = 150
	p.enforceBlockUpgradeMajority = 750
	p.rejectBlockOutdatedMajority = 950
	p.toCheckBlockUpgradeMajority = 1000
	p.targetTimespan = 24 * time.Hour
	p.targetSpacing = time.Minute
	p.powLimit = new(big.Int).Set(regressionPowLimit)
	p.powLimitBits = 0x207fffff
	p.allowMinDifficultyBlocks = true

	p.defaultConsistencyChecks = true
	p.mineBlocksOnDemand = true
	p.requireStandard = false
	p.checkpoints = regressionCheckpoints.clone()
	return p
}
