package consensus

import (
	"context"
	"encoding/binary"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

const (
	testBits  = 0x1e0ffff0
	chainTime = 1545460000
)

type nopAccumulator struct{}

func (nopAccumulator) Verify(*big.Int, []byte, *big.Int, chain.Denomination) bool {
	return true
}

func (nopAccumulator) Recompute(chain.Denomination, []*chain.ZerocoinMint) *big.Int {
	return big.NewInt(1)
}

func (nopAccumulator) SerialUpperBound(chain.Denomination) *big.Int {
	return big.NewInt(1 << 62)
}

type nopAccStore struct{}

func (nopAccStore) Checkpoint(chain.Denomination, int32) (*big.Int, int, error) {
	return big.NewInt(1), 1, nil
}

func (nopAccStore) MintsUpTo(chain.Denomination, int32) ([]*chain.ZerocoinMint, error) {
	return nil, nil
}

type nopSerials struct{}

func (nopSerials) Contains(*big.Int) (bool, error) { return false, nil }

// fakeView is an in-memory block index.
type fakeView struct {
	headers map[chainhash.Hash]wire.BlockHeader
	best    int32
	work    *big.Int
}

func newFakeView() *fakeView {
	return &fakeView{
		headers: make(map[chainhash.Hash]wire.BlockHeader),
		best:    -1,
		work:    big.NewInt(0),
	}
}

func (v *fakeView) BestHeight() int32  { return v.best }
func (v *fakeView) BestWork() *big.Int { return v.work }

func (v *fakeView) Ancestors(hash *chainhash.Hash, n int) ([]wire.BlockHeader, error) {
	var out []wire.BlockHeader
	cur := *hash
	for len(out) < n {
		h, ok := v.headers[cur]
		if !ok {
			break
		}
		out = append(out, h)
		cur = h.PrevBlock
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func hashAt(height int32, branch byte) chainhash.Hash {
	var h chainhash.Hash
	binary.LittleEndian.PutUint32(h[:4], uint32(height))
	h[4] = branch
	return h
}

// extend adds blocks at heights from..to on branch, each two minutes after
// its parent, and returns the hash of the last one.
func (v *fakeView) extend(parent chainhash.Hash, from, to int32,
	branch byte, version int32) chainhash.Hash {

	for h := from; h <= to; h++ {
		hash := hashAt(h, branch)
		v.headers[hash] = wire.BlockHeader{
			Version:   version,
			PrevBlock: parent,
			Timestamp: time.Unix(chainTime+int64(h)*120, 0),
			Bits:      testBits,
		}
		parent = hash
	}
	return parent
}

func candidate(parent chainhash.Hash, height int32, branch byte,
	version int32, forkHeight int32, work int64) *Candidate {

	header := wire.BlockHeader{
		Version:   version,
		PrevBlock: parent,
		Timestamp: time.Unix(chainTime+int64(height)*120, 0),
		Bits:      testBits,
	}
	return &Candidate{
		Block: chain.NewBlock(header, hashAt(height, branch), height,
			nil),
		ChainWork:  big.NewInt(work),
		ForkHeight: forkHeight,
		FirstSeen:  time.Unix(chainTime, 0),
	}
}

// smallWindowParams is a unit test network with a four block version window
// and only the genesis checkpoint.
func smallWindowParams() *chaincfg.Params {
	genesis := chaincfg.MainNetParams().GenesisHash()
	return chaincfg.NewModifiableParams().
		SetEnforceBlockUpgradeMajority(2).
		SetRejectBlockOutdatedMajority(3).
		SetToCheckBlockUpgradeMajority(4).
		SetSkipProofOfWorkCheck(true).
		SetCheckpoints([]chaincfg.Checkpoint{{Height: 0, Hash: genesis}}).
		Params()
}

func newEngine(t *testing.T, params *chaincfg.Params, tip int32,
	versions []int32) *Engine {

	e, err := New(&Config{
		Params:         params,
		Accumulator:    nopAccumulator{},
		Accumulators:   nopAccStore{},
		Serials:        nopSerials{},
		TipHeight:      tip,
		RecentVersions: versions,
	})
	require.NoError(t, err)
	return e
}

func TestNewRejectsInvalidParams(t *testing.T) {
	params := chaincfg.NewModifiableParams().
		SetEnforceBlockUpgradeMajority(2000).
		Params()
	_, err := New(&Config{
		Params:       params,
		Accumulator:  nopAccumulator{},
		Accumulators: nopAccStore{},
		Serials:      nopSerials{},
	})
	require.True(t, errors.Is(err, chaincfg.ErrInvalidParams))

	_, err = New(&Config{Params: chaincfg.MainNetParams()})
	require.True(t, errors.Is(err, zerocoin.ErrMissingCapability))
}

func TestGenesis(t *testing.T) {
	params := chaincfg.MainNetParams()
	e := newEngine(t, params, -1, nil)
	view := newFakeView()

	genesis := chain.NewBlock(params.GenesisHeader(), *params.GenesisHash(),
		0, nil)
	v, err := e.ValidateBlock(context.Background(),
		&Candidate{Block: genesis}, view)
	require.NoError(t, err)
	require.True(t, v.Accepted, v.String())
	require.NoError(t, v.Err())

	other := chain.NewBlock(params.GenesisHeader(), chainhash.Hash{0x01}, 0,
		nil)
	v, err = e.ValidateBlock(context.Background(),
		&Candidate{Block: other}, view)
	require.NoError(t, err)
	require.False(t, v.Accepted)
	require.True(t, chain.IsErrorCode(v.Err(), chain.ErrCheckpointMismatch))
}

// TestGenesisWithoutFixedHash covers networks that fix no genesis hash: the
// hash of their genesis header is expected and the placeholder checkpoint at
// height zero is not consulted.
func TestGenesisWithoutFixedHash(t *testing.T) {
	for _, params := range []*chaincfg.Params{
		chaincfg.TestNetParams(),
		chaincfg.RegressionNetParams(),
	} {
		require.Nil(t, params.GenesisHash(), params.Name())
		e := newEngine(t, params, -1, nil)
		view := newFakeView()

		header := params.GenesisHeader()
		want := header.BlockHash()
		require.Equal(t, want, *e.GenesisHash())

		genesis := chain.NewBlock(header, want, 0, nil)
		v, err := e.ValidateBlock(context.Background(),
			&Candidate{Block: genesis}, view)
		require.NoError(t, err)
		require.True(t, v.Accepted, "%s: %v", params.Name(), v)

		placeholder := chain.NewBlock(header, chainhash.Hash{0x01}, 0, nil)
		v, err = e.ValidateBlock(context.Background(),
			&Candidate{Block: placeholder}, view)
		require.NoError(t, err)
		require.True(t, chain.IsErrorCode(v.Err(),
			chain.ErrCheckpointMismatch), params.Name())

		header.Nonce++
		altered := chain.NewBlock(header, header.BlockHash(), 0, nil)
		v, err = e.ValidateBlock(context.Background(),
			&Candidate{Block: altered}, view)
		require.NoError(t, err)
		require.False(t, v.Accepted, params.Name())
	}
}

func TestCheckpointMismatch(t *testing.T) {
	params := chaincfg.MainNetParams()
	e := newEngine(t, params, 0, []int32{1})
	view := newFakeView()
	view.best = 0
	view.extend(chainhash.Hash{}, 0, 0, 0, 1)

	c := candidate(hashAt(0, 0), 1, 0, 1, 0, 2)
	v, err := e.ValidateBlock(context.Background(), c, view)
	require.NoError(t, err)
	require.Equal(t, chain.ErrCheckpointMismatch, v.Reject.ErrorCode)
}

func TestReorgTooDeep(t *testing.T) {
	params := chaincfg.MainNetParams()
	e := newEngine(t, params, 1000, nil)
	view := newFakeView()
	view.best = 1000
	view.work = big.NewInt(1000)

	maxReorg := params.MaxReorganizationDepth()
	fork := 1000 - maxReorg - 1
	c := candidate(hashAt(1000, 1), 1001, 1, 4, fork, 2000)
	v, err := e.ValidateBlock(context.Background(), c, view)
	require.NoError(t, err)
	require.Equal(t, chain.ErrReorgTooDeep, v.Reject.ErrorCode)
}

func TestBudgetConfirmations(t *testing.T) {
	require.Equal(t, 3, newEngine(t, chaincfg.TestNetParams(), -1, nil).
		FinalizationConfirmationsRequired())
	require.Equal(t, 6, newEngine(t, chaincfg.MainNetParams(), -1, nil).
		FinalizationConfirmationsRequired())
}

func TestAcceptExtendingTip(t *testing.T) {
	params := smallWindowParams()
	view := newFakeView()
	tip := view.extend(chainhash.Hash{}, 0, 10, 0, 4)
	view.best = 10
	view.work = big.NewInt(10)
	e := newEngine(t, params, 10, []int32{4, 4, 4, 4})

	v, err := e.ValidateBlock(context.Background(),
		candidate(tip, 11, 0, 4, 10, 11), view)
	require.NoError(t, err)
	require.True(t, v.Accepted, v.String())
	require.Equal(t, int32(4), v.EnforcedVersion)
	require.Equal(t, zerocoin.Inactive, v.ZerocoinState)

	// Wrong declared target.
	bad := candidate(tip, 11, 0, 4, 10, 11)
	header := bad.Block.Header()
	header.Bits = 0x1d00ffff
	bad.Block = chain.NewBlock(header, *bad.Block.Hash(), 11, nil)
	v, err = e.ValidateBlock(context.Background(), bad, view)
	require.NoError(t, err)
	require.Equal(t, chain.ErrBadProofOfWork, v.Reject.ErrorCode)

	// Unknown parent.
	_, err = e.ValidateBlock(context.Background(),
		candidate(hashAt(99, 9), 11, 0, 4, 10, 11), view)
	require.True(t, errors.Is(err, ErrOrphanBlock))
}

func TestForkUsesOwnVersionWindow(t *testing.T) {
	params := smallWindowParams()
	view := newFakeView()
	forkPoint := view.extend(chainhash.Hash{}, 0, 7, 0, 5)
	tip := view.extend(forkPoint, 8, 10, 0, 5)
	branchTip := view.extend(forkPoint, 8, 10, 1, 4)
	view.best = 10
	view.work = big.NewInt(10)
	e := newEngine(t, params, 10, []int32{5, 5, 5, 5})

	// Version 4 is obsolete on the best chain.
	v, err := e.ValidateBlock(context.Background(),
		candidate(tip, 11, 0, 4, 10, 11), view)
	require.NoError(t, err)
	require.Equal(t, chain.ErrObsoleteVersion, v.Reject.ErrorCode)

	// The branch's own window is mostly version 4.
	v, err = e.ValidateBlock(context.Background(),
		candidate(branchTip, 11, 1, 4, 7, 12), view)
	require.NoError(t, err)
	require.True(t, v.Accepted, v.String())
	require.Equal(t, int32(4), v.EnforcedVersion)
}

func TestAccumulatorCheckpointEnforced(t *testing.T) {
	params := chaincfg.NewModifiableParams().
		SetEnforceBlockUpgradeMajority(2).
		SetRejectBlockOutdatedMajority(3).
		SetToCheckBlockUpgradeMajority(4).
		SetSkipProofOfWorkCheck(true).
		SetCheckpoints([]chaincfg.Checkpoint{
			{Height: 0, Hash: chaincfg.MainNetParams().GenesisHash()},
		}).
		SetZerocoinStart(5, time.Unix(chainTime, 0)).
		Params()
	view := newFakeView()
	tip := view.extend(chainhash.Hash{}, 0, 10, 0, 4)
	view.best = 10
	view.work = big.NewInt(10)
	e := newEngine(t, params, 10, []int32{4, 4, 4, 4})

	c := candidate(tip, 11, 0, 4, 10, 11)
	v, err := e.ValidateBlock(context.Background(), c, view)
	require.NoError(t, err)
	require.False(t, v.Accepted)
	require.Equal(t, chain.ErrAccumulatorProofInvalid, v.Reject.ErrorCode)

	c.Block.SetAccumulatorCheckpoint(chainhash.Hash{0xac})
	v, err = e.ValidateBlock(context.Background(), c, view)
	require.NoError(t, err)
	require.True(t, v.Accepted, v.String())
	require.Equal(t, int32(4), v.EnforcedVersion)
	require.Equal(t, zerocoin.SerialRangeEnforced, v.ZerocoinState)

	// Without an enforced upgrade the commitment is optional.
	e = newEngine(t, params, 10, []int32{1, 1, 1, 4})
	v, err = e.ValidateBlock(context.Background(),
		candidate(tip, 11, 0, 4, 10, 11), view)
	require.NoError(t, err)
	require.True(t, v.Accepted, v.String())
	require.Zero(t, v.EnforcedVersion)
}

func TestValidateCancelled(t *testing.T) {
	params := smallWindowParams()
	view := newFakeView()
	tip := view.extend(chainhash.Hash{}, 0, 3, 0, 4)
	view.best = 3
	e := newEngine(t, params, 3, []int32{4, 4, 4, 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.ValidateBlock(ctx, candidate(tip, 4, 0, 4, 3, 5), view)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestConnectDisconnect(t *testing.T) {
	e := newEngine(t, smallWindowParams(), 3, []int32{2, 2, 2, 2})
	block := func(height, version int32) *chain.Block {
		header := wire.BlockHeader{Version: version}
		return chain.NewBlock(header, hashAt(height, 0), height, nil)
	}

	for h := int32(4); h <= 6; h++ {
		require.NoError(t, e.ConnectBlock(block(h, 5)))
	}
	require.Equal(t, int32(6), e.TipHeight())
	require.Equal(t, []int32{2, 5, 5, 5}, e.tracker.Versions())

	err := e.ConnectBlock(block(9, 5))
	require.True(t, errors.Is(err, ErrNotNextBlock))

	// Disconnecting brings back the version that had been evicted.
	require.NoError(t, e.DisconnectBlock(block(6, 5)))
	require.Equal(t, int32(5), e.TipHeight())
	require.Equal(t, []int32{2, 2, 5, 5}, e.tracker.Versions())

	err = e.DisconnectBlock(block(3, 2))
	require.True(t, errors.Is(err, ErrNotNextBlock))
}

// TestValidateDuringConnect runs validations from several goroutines while
// the tip moves back and forth.  Run with -race.
func TestValidateDuringConnect(t *testing.T) {
	params := smallWindowParams()
	view := newFakeView()
	forkPoint := view.extend(chainhash.Hash{}, 0, 7, 0, 4)
	tip := view.extend(forkPoint, 8, 10, 0, 4)
	branchTip := view.extend(forkPoint, 8, 10, 1, 4)
	view.best = 10
	view.work = big.NewInt(10)
	e := newEngine(t, params, 10, []int32{4, 4, 4, 4})

	const validators = 8
	const rounds = 50

	errs := make(chan error, validators*rounds)
	var wg sync.WaitGroup
	for i := 0; i < validators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				c := candidate(tip, 11, 0, 4, 10, 11)
				if i%2 == 1 {
					c = candidate(branchTip, 11, 1, 4, 7, 12)
				}
				v, err := e.ValidateBlock(context.Background(),
					c, view)
				switch {
				case err != nil:
					errs <- err
				case !v.Accepted:
					errs <- v.Err()
				}
			}
		}(i)
	}

	next := chain.NewBlock(wire.BlockHeader{Version: 5}, hashAt(11, 0), 11,
		nil)
	for r := 0; r < rounds; r++ {
		require.NoError(t, e.ConnectBlock(next))
		require.NoError(t, e.DisconnectBlock(next))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(10), e.TipHeight())
	require.Equal(t, []int32{4, 4, 4, 4}, e.tracker.Versions())
}

func TestSelectCandidate(t *testing.T) {
	at := time.Unix(chainTime, 0)
	mk := func(work int64, seen time.Time, branch byte) *Candidate {
		c := candidate(chainhash.Hash{}, 5, branch, 4, 4, work)
		c.FirstSeen = seen
		return c
	}

	light := mk(10, at, 1)
	heavy := mk(20, at.Add(time.Minute), 2)
	require.Equal(t, heavy, SelectCandidate([]*Candidate{light, heavy, nil}))

	early := mk(20, at, 3)
	require.Equal(t, early, SelectCandidate([]*Candidate{heavy, early}))

	// Equal work and arrival: lowest hash wins whatever the input order.
	a := mk(20, at, 4)
	b := mk(20, at, 5)
	require.Equal(t, a, SelectCandidate([]*Candidate{a, b}))
	require.Equal(t, a, SelectCandidate([]*Candidate{b, a}))

	require.Nil(t, SelectCandidate(nil))
}

func TestSyncProgress(t *testing.T) {
	params := chaincfg.MainNetParams()
	e := newEngine(t, params, -1, nil)
	data := params.CheckpointData()
	last := time.Unix(data.LastCheckpointTime, 0)

	p := e.SyncProgress(301, last, data.TransactionsLastCheckpoint, last)
	require.InDelta(t, 1.0, p.Fraction, 1e-9)
	require.Equal(t, int32(0), p.BlocksRemaining)
}
