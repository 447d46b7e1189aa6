// Package majority tracks the block versions of the most recent blocks of the
// best chain and decides when a new version's rules are enforced and when
// older versions are no longer accepted.
package majority

import (
	"fmt"
	"math"
	"sort"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
)

// BaseBlockVersion is the version every chain starts with.  It gates no
// rules, so it is never reported as an enforced upgrade.
const BaseBlockVersion = 1

// Classification is the verdict of the tracker on a candidate version.
type Classification int

const (
	// Allowed means the version may be accepted and no upgrade rules
	// apply to it.
	Allowed Classification = iota

	// RequireUpgrade means the version may be accepted but must follow
	// the rules of the enforced upgrade version.
	RequireUpgrade

	// RejectOutdated means a supermajority has moved past the version.
	RejectOutdated
)

func (c Classification) String() string {
	switch c {
	case Allowed:
		return "allowed"
	case RequireUpgrade:
		return "require upgrade"
	case RejectOutdated:
		return "reject outdated"
	default:
		return fmt.Sprintf("unknown classification %d", int(c))
	}
}

// Tracker is a sliding window over the versions of the last accepted
// blocks.  Before the window is full the thresholds are counted against the
// blocks seen so far.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	enforce int
	reject  int

	window []int32 // ring buffer
	next   int     // slot the next version is written to
	count  int     // number of versions in the window
}

// New returns a tracker for params seeded with the versions of the most
// recent best chain blocks, oldest first.  Only the last
// ToCheckBlockUpgradeMajority versions are kept.
func New(params *chaincfg.Params, recent []int32) *Tracker {
	t := &Tracker{
		enforce: params.EnforceBlockUpgradeMajority(),
		reject:  params.RejectBlockOutdatedMajority(),
		window:  make([]int32, params.ToCheckBlockUpgradeMajority()),
	}
	if len(recent) > len(t.window) {
		recent = recent[len(recent)-len(t.window):]
	}
	for _, v := range recent {
		t.Add(v)
	}
	return t
}

// Add appends the version of a newly accepted block, evicting the oldest
// version once the window is full.
func (t *Tracker) Add(version int32) {
	t.window[t.next] = version
	t.next = (t.next + 1) % len(t.window)
	if t.count < len(t.window) {
		t.count++
	}
}

// Len returns the number of versions in the window.
func (t *Tracker) Len() int {
	return t.count
}

// Size returns the capacity of the window.
func (t *Tracker) Size() int {
	return len(t.window)
}

// Versions returns the versions in the window, oldest first.
func (t *Tracker) Versions() []int32 {
	out := make([]int32, 0, t.count)
	start := (t.next - t.count + len(t.window)) % len(t.window)
	for i := 0; i < t.count; i++ {
		out = append(out, t.window[(start+i)%len(t.window)])
	}
	return out
}

// filled returns the occupied slots of the ring in storage order.  Slots
// are filled from index zero, so before the window wraps they are a prefix.
func (t *Tracker) filled() []int32 {
	return t.window[:t.count]
}

// CountAtLeast returns the number of versions in the window that are at
// least minVersion.
func (t *Tracker) CountAtLeast(minVersion int32) int {
	n := 0
	for _, v := range t.filled() {
		if v >= minVersion {
			n++
		}
	}
	return n
}

// IsSuperMajority reports whether at least required blocks of the window
// signal minVersion or higher.
func (t *Tracker) IsSuperMajority(minVersion int32, required int) bool {
	return t.CountAtLeast(minVersion) >= required
}

// Classify decides how a block of the passed version is treated.  The
// returned version is the upgrade that caused the classification: the version
// the candidate falls short of for RejectOutdated, the highest enforced
// version at or below the candidate for RequireUpgrade.
//
// Every version counts towards rejection, BaseBlockVersion included, so a
// supermajority of version 1 blocks rejects a version 0 candidate.  Only
// versions above BaseBlockVersion are reported as enforced upgrades.
func (t *Tracker) Classify(version int32) (Classification, int32) {
	versions := t.distinctVersionsAbove(math.MinInt32)

	// Newest versions first so the highest applicable one is reported.
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		if v > version && t.IsSuperMajority(v, t.reject) {
			return RejectOutdated, v
		}
	}
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		if v <= BaseBlockVersion {
			break
		}
		if v <= version && t.IsSuperMajority(v, t.enforce) {
			return RequireUpgrade, v
		}
	}
	return Allowed, 0
}

// distinctVersionsAbove returns the distinct versions in the window greater
// than floor, ascending.
func (t *Tracker) distinctVersionsAbove(floor int32) []int32 {
	seen := make(map[int32]struct{})
	var out []int32
	for _, v := range t.filled() {
		if v <= floor {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the tracker.
func (t *Tracker) Clone() *Tracker {
	c := *t
	c.window = make([]int32, len(t.window))
	copy(c.window, t.window)
	return &c
}

// CheckConsistency verifies the internal bookkeeping of the window.
func (t *Tracker) CheckConsistency() error {
	if t.count < 0 || t.count > len(t.window) {
		return fmt.Errorf("version window holds %d entries, capacity %d",
			t.count, len(t.window))
	}
	if t.next < 0 || t.next >= len(t.window) {
		return fmt.Errorf("version window cursor %d out of range", t.next)
	}
	if t.enforce > len(t.window) || t.reject > len(t.window) {
		return fmt.Errorf("version thresholds %d/%d exceed window %d",
			t.enforce, t.reject, len(t.window))
	}
	return nil
}
