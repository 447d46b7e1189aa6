package chaincfg

import (
	"encoding/binary"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

// Network identifies one of the networks a node can run on.
type Network int

const (
	MainNet Network = iota
	TestNet
	RegressionNet
	UnitTestNet
)

var networkNames = map[Network]string{
	MainNet:       "main",
	TestNet:       "test",
	RegressionNet: "regtest",
	UnitTestNet:   "unittest",
}

// String returns the network id string used on the command line and in the
// data directory layout.
func (n Network) String() string {
	if s, ok := networkNames[n]; ok {
		return s
	}
	return "unknown"
}

const (
	// COIN is the number of base units in one coin.
	COIN btcutil.Amount = 100000000

	// ZCENT is the smallest zerocoin fee unit, one hundredth of a coin.
	ZCENT btcutil.Amount = COIN / 100
)

// Checkpoint identifies a known good point in the block chain.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// CheckpointData is the checkpoint table of a network together with the
// figures used to estimate sync progress past the last checkpoint.
type CheckpointData struct {
	// Checkpoints ordered from oldest to newest.
	Checkpoints []Checkpoint

	// LastCheckpointTime is the unix timestamp of the last checkpoint
	// block.
	LastCheckpointTime int64

	// TransactionsLastCheckpoint is the total number of transactions
	// between genesis and the last checkpoint.
	TransactionsLastCheckpoint int64

	// TransactionsPerDay is the estimated number of transactions per day
	// after the last checkpoint.
	TransactionsPerDay float64
}

func (d CheckpointData) clone() CheckpointData {
	cps := make([]Checkpoint, len(d.Checkpoints))
	for i, cp := range d.Checkpoints {
		h := *cp.Hash
		cps[i] = Checkpoint{Height: cp.Height, Hash: &h}
	}
	d.Checkpoints = cps
	return d
}

// Params holds every consensus constant of one network.  A Params is never
// modified once built; all accessors return copies of reference typed
// fields so callers cannot alter the shared value.
type Params struct {
	net         Network
	magic       wire.BitcoinNet
	defaultPort string
	sporkKey    string

	genesisHeader wire.BlockHeader
	// genesisHash is nil when the network does not assert its genesis
	// hash.
	genesisHash *chainhash.Hash

	// Proof of work.
	powLimit                 *big.Int
	powLimitBits             uint32
	targetTimespan           time.Duration
	targetSpacing            time.Duration
	retargetAdjustmentFactor int64
	allowMinDifficultyBlocks bool
	skipProofOfWorkCheck     bool

	// Chain shape.
	subsidyHalvingInterval int32
	maxReorganizationDepth int32
	lastPOWBlock           int32
	masternodeCountDrift   int32
	coinbaseMaturity       int32
	maxMoneyOut            btcutil.Amount

	// Block version governance.
	enforceBlockUpgradeMajority int
	rejectBlockOutdatedMajority int
	toCheckBlockUpgradeMajority int

	checkpoints CheckpointData

	// Zerocoin.
	zerocoinStartHeight             int32
	zerocoinStartTime               time.Time
	accumulatorStartHeight          int32
	blockEnforceSerialRange         int32
	blockRecalculateAccumulators    OptionalHeight
	blockFirstFraudulent            OptionalHeight
	blockLastGoodCheckpoint         OptionalHeight
	maxZerocoinSpendsPerTransaction int
	minZerocoinMintFee              btcutil.Amount
	mintRequiredConfirmations       int32
	requiredAccumulation            int
	defaultSecurityLevel            int
	zerocoinHeaderVersion           int32
	zerocoinModulus                 *big.Int

	// Masternodes and budgets.
	startMasternodePayments time.Time
	budgetFeeConfirmations  int

	defaultConsistencyChecks bool
	mineBlocksOnDemand       bool
	requireStandard          bool
}

// clone returns a deep copy of p.  Network builders start from a clone of
// their base network and apply their overrides to it.
func (p *Params) clone() *Params {
	c := *p
	c.powLimit = new(big.Int).Set(p.powLimit)
	c.zerocoinModulus = new(big.Int).Set(p.zerocoinModulus)
	c.checkpoints = p.checkpoints.clone()
	if p.genesisHash != nil {
		h := *p.genesisHash
		c.genesisHash = &h
	}
	return &c
}

// Net returns the network identifier.
func (p *Params) Net() Network { return p.net }

// Name returns the network id string.
func (p *Params) Name() string { return p.net.String() }

// Magic returns the protocol magic as a wire network value.
func (p *Params) Magic() wire.BitcoinNet { return p.magic }

// MessageStart returns the four magic bytes in the order they appear on the
// wire.
func (p *Params) MessageStart() [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(p.magic))
	return b
}

// DefaultPort returns the default peer port.  It is kept as a string since
// it is never interpreted by the consensus rules.
func (p *Params) DefaultPort() string { return p.defaultPort }

// SporkKey returns the hex public key that signs spork messages.
func (p *Params) SporkKey() string { return p.sporkKey }

// GenesisHeader returns a copy of the genesis block header.
func (p *Params) GenesisHeader() wire.BlockHeader { return p.genesisHeader }

// GenesisHash returns the asserted genesis hash, or nil when the network
// does not assert one.
func (p *Params) GenesisHash() *chainhash.Hash {
	if p.genesisHash == nil {
		return nil
	}
	h := *p.genesisHash
	return &h
}

// PowLimit returns the easiest allowed proof of work target.
func (p *Params) PowLimit() *big.Int { return new(big.Int).Set(p.powLimit) }

// PowLimitBits returns PowLimit in compact form.
func (p *Params) PowLimitBits() uint32 { return p.powLimitBits }

// TargetTimespan returns the period over which difficulty is retargeted.
func (p *Params) TargetTimespan() time.Duration { return p.targetTimespan }

// TargetSpacing returns the desired time between blocks.
func (p *Params) TargetSpacing() time.Duration { return p.targetSpacing }

// RetargetAdjustmentFactor bounds the measured timespan of a retarget to
// [timespan/factor, timespan*factor].
func (p *Params) RetargetAdjustmentFactor() int64 { return p.retargetAdjustmentFactor }

// AllowMinDifficultyBlocks reports whether a block may drop to the minimum
// difficulty after a long gap.
func (p *Params) AllowMinDifficultyBlocks() bool { return p.allowMinDifficultyBlocks }

// SkipProofOfWorkCheck reports whether block hashes are not compared to
// their target.
func (p *Params) SkipProofOfWorkCheck() bool { return p.skipProofOfWorkCheck }

// RetargetInterval returns the number of blocks between retargets.
func (p *Params) RetargetInterval() int32 {
	return int32(p.targetTimespan / p.targetSpacing)
}

func (p *Params) SubsidyHalvingInterval() int32 { return p.subsidyHalvingInterval }

// MaxReorganizationDepth returns how many blocks below the tip a competing
// chain may replace.
func (p *Params) MaxReorganizationDepth() int32 { return p.maxReorganizationDepth }

// LastPOWBlock returns the height of the last proof of work block.
func (p *Params) LastPOWBlock() int32 { return p.lastPOWBlock }

func (p *Params) MasternodeCountDrift() int32 { return p.masternodeCountDrift }

func (p *Params) CoinbaseMaturity() int32 { return p.coinbaseMaturity }

func (p *Params) MaxMoneyOut() btcutil.Amount { return p.maxMoneyOut }

// EnforceBlockUpgradeMajority returns the number of blocks in the window
// that must signal a version for its rules to be enforced.
func (p *Params) EnforceBlockUpgradeMajority() int { return p.enforceBlockUpgradeMajority }

// RejectBlockOutdatedMajority returns the number of blocks in the window
// that must signal a version before older versions are rejected.
func (p *Params) RejectBlockOutdatedMajority() int { return p.rejectBlockOutdatedMajority }

// ToCheckBlockUpgradeMajority returns the size of the version window.
func (p *Params) ToCheckBlockUpgradeMajority() int { return p.toCheckBlockUpgradeMajority }

// Checkpoints returns the checkpoint table ordered by height.
func (p *Params) Checkpoints() []Checkpoint {
	return p.checkpoints.clone().Checkpoints
}

// CheckpointData returns the checkpoint table with its sync estimate
// figures.
func (p *Params) CheckpointData() CheckpointData { return p.checkpoints.clone() }

// ZerocoinStartHeight returns the height zerocoin activates at.
func (p *Params) ZerocoinStartHeight() int32 { return p.zerocoinStartHeight }

// ZerocoinStartTime returns the time zerocoin activates at.
func (p *Params) ZerocoinStartTime() time.Time { return p.zerocoinStartTime }

func (p *Params) AccumulatorStartHeight() int32 { return p.accumulatorStartHeight }

// BlockEnforceSerialRange returns the first height at which zerocoin serials
// must be in range.
func (p *Params) BlockEnforceSerialRange() int32 { return p.blockEnforceSerialRange }

// BlockRecalculateAccumulators returns the height from which accumulators
// must be recalculated instead of read from the cache.
func (p *Params) BlockRecalculateAccumulators() OptionalHeight {
	return p.blockRecalculateAccumulators
}

// BlockFirstFraudulent returns the first block known to carry forged
// serials.
func (p *Params) BlockFirstFraudulent() OptionalHeight { return p.blockFirstFraudulent }

// BlockLastGoodCheckpoint returns the last block with a trusted accumulator
// checkpoint.
func (p *Params) BlockLastGoodCheckpoint() OptionalHeight { return p.blockLastGoodCheckpoint }

func (p *Params) MaxZerocoinSpendsPerTransaction() int { return p.maxZerocoinSpendsPerTransaction }

func (p *Params) MinZerocoinMintFee() btcutil.Amount { return p.minZerocoinMintFee }

// MintRequiredConfirmations returns the confirmations a mint needs before
// it is accumulated.
func (p *Params) MintRequiredConfirmations() int32 { return p.mintRequiredConfirmations }

// RequiredAccumulation returns how many mints an accumulator must hold
// before spends may be proven against it.
func (p *Params) RequiredAccumulation() int { return p.requiredAccumulation }

func (p *Params) DefaultSecurityLevel() int { return p.defaultSecurityLevel }

// ZerocoinHeaderVersion returns the minimum header version once zerocoin
// is active.
func (p *Params) ZerocoinHeaderVersion() int32 { return p.zerocoinHeaderVersion }

// ZerocoinModulus returns the trusted RSA modulus.
func (p *Params) ZerocoinModulus() *big.Int { return new(big.Int).Set(p.zerocoinModulus) }

// StartMasternodePayments returns the time masternode payments become
// mandatory.
func (p *Params) StartMasternodePayments() time.Time { return p.startMasternodePayments }

// BudgetFeeConfirmations returns the confirmations a budget finalization
// fee transaction needs before its vote counts.
func (p *Params) BudgetFeeConfirmations() int { return p.budgetFeeConfirmations }

func (p *Params) DefaultConsistencyChecks() bool { return p.defaultConsistencyChecks }

func (p *Params) MineBlocksOnDemand() bool { return p.mineBlocksOnDemand }

func (p *Params) RequireStandard() bool { return p.requireStandard }
