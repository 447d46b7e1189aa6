package majority

import (
	"testing"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/stretchr/testify/require"
)

func feed(t *Tracker, version int32, n int) {
	for i := 0; i < n; i++ {
		t.Add(version)
	}
}

func TestRejectThreshold(t *testing.T) {
	for _, params := range []*chaincfg.Params{
		chaincfg.MainNetParams(),
		chaincfg.TestNetParams(),
	} {
		reject := params.RejectBlockOutdatedMajority()

		full := New(params, nil)
		feed(full, 4, reject)
		class, v := full.Classify(3)
		require.Equal(t, RejectOutdated, class, params.Name())
		require.Equal(t, int32(4), v)

		short := New(params, nil)
		feed(short, 4, reject-1)
		class, _ = short.Classify(3)
		require.Equal(t, Allowed, class, params.Name())
	}
}

func TestEnforceThreshold(t *testing.T) {
	params := chaincfg.TestNetParams()
	enforce := params.EnforceBlockUpgradeMajority()

	tr := New(params, nil)
	feed(tr, 1, params.ToCheckBlockUpgradeMajority()-enforce)
	feed(tr, 4, enforce-1)

	class, _ := tr.Classify(4)
	require.Equal(t, Allowed, class)

	tr.Add(4)
	class, v := tr.Classify(4)
	require.Equal(t, RequireUpgrade, class)
	require.Equal(t, int32(4), v)

	class, v = tr.Classify(5)
	require.Equal(t, RequireUpgrade, class)
	require.Equal(t, int32(4), v)

	// Old versions are still accepted until the reject threshold.
	class, _ = tr.Classify(3)
	require.Equal(t, Allowed, class)
}

func TestBaseVersionNeverEnforced(t *testing.T) {
	params := chaincfg.TestNetParams()
	tr := New(params, nil)
	feed(tr, BaseBlockVersion, params.ToCheckBlockUpgradeMajority())

	class, _ := tr.Classify(BaseBlockVersion)
	require.Equal(t, Allowed, class)
}

func TestBaseVersionRejectsOlder(t *testing.T) {
	params := chaincfg.MainNetParams()
	reject := params.RejectBlockOutdatedMajority()

	tr := New(params, nil)
	feed(tr, BaseBlockVersion, reject)
	class, v := tr.Classify(0)
	require.Equal(t, RejectOutdated, class)
	require.Equal(t, int32(BaseBlockVersion), v)

	tr = New(params, nil)
	feed(tr, BaseBlockVersion, reject-1)
	class, _ = tr.Classify(0)
	require.Equal(t, Allowed, class)
}

func TestWindowEviction(t *testing.T) {
	params := chaincfg.NewModifiableParams().
		SetEnforceBlockUpgradeMajority(2).
		SetRejectBlockOutdatedMajority(3).
		SetToCheckBlockUpgradeMajority(4).
		Params()

	tr := New(params, []int32{1, 2, 3, 4, 5, 6})
	require.Equal(t, 4, tr.Len())
	require.Equal(t, []int32{3, 4, 5, 6}, tr.Versions())

	tr.Add(7)
	require.Equal(t, []int32{4, 5, 6, 7}, tr.Versions())
	require.Equal(t, 3, tr.CountAtLeast(5))
	require.True(t, tr.IsSuperMajority(5, 3))
	require.False(t, tr.IsSuperMajority(6, 3))
	require.NoError(t, tr.CheckConsistency())
}

// TestPartialWindow checks that thresholds are counted against the blocks
// seen so far, not the configured size.
func TestPartialWindow(t *testing.T) {
	params := chaincfg.MainNetParams()
	tr := New(params, []int32{4, 4, 4})

	require.Equal(t, 3, tr.Len())
	require.Equal(t, 1000, tr.Size())
	class, _ := tr.Classify(3)
	require.Equal(t, Allowed, class)
}

func TestClone(t *testing.T) {
	tr := New(chaincfg.TestNetParams(), []int32{2, 3})
	c := tr.Clone()
	c.Add(4)

	require.Equal(t, []int32{2, 3}, tr.Versions())
	require.Equal(t, []int32{2, 3, 4}, c.Versions())
}
