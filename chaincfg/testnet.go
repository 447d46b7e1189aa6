package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/wire"
)

var testNetCheckpoints = CheckpointData{
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("001")},
	},
	LastCheckpointTime:         1546202840,
	TransactionsLastCheckpoint: 0,
	TransactionsPerDay:         250,
}

// TestNetParams returns the parameters of the public test network.  They
// are the main network parameters with the overrides below.
func TestNetParams() *Params {
	p := MainNetParams().clone()

	p.net = TestNet
	p.magic = wire.BitcoinNet(0xc58dc835)
	p.defaultPort = "88877"
	p.sporkKey = "0405b9b540363a2d702bc33095753cf026f27b69600ab7ce0c1fe16da645fd4c662e4dc8dd608b78b6c3130722dd29c3f4e26099b53f36d4a5a902f401bf344ecf"

	p.genesisHeader.Timestamp = time.Unix(1546202840, 0)
	p.genesisHeader.Nonce = 29
	p.genesisHash = nil

	p.enforceBlockUpgradeMajority = 51
	p.rejectBlockOutdatedMajority = 75
	p.toCheckBlockUpgradeMajority = 100
	p.targetTimespan = time.Minute
	p.targetSpacing = time.Minute
	p.allowMinDifficultyBlocks = true

	p.lastPOWBlock = 50
	p.coinbaseMaturity = 15
	p.masternodeCountDrift = 4
	p.maxMoneyOut = 50000000 * COIN

	p.zerocoinStartHeight = 1
	p.zerocoinStartTime = time.Unix(1545453419, 0)
	p.blockEnforceSerialRange = 1
	p.blockRecalculateAccumulators = AtHeight(9908000)
	p.blockFirstFraudulent = AtHeight(0)
	p.blockLastGoodCheckpoint = AtHeight(0)

	p.startMasternodePayments = time.Unix(1545453421, 0)
	// The test network only has an eight block finalization window.
	p.budgetFeeConfirmations = 3

	p.requireStandard = false
	p.checkpoints = testNetCheckpoints.clone()
	return p
}
