package chaincfg

import "fmt"

// OptionalHeight is a block height that may be unset.  An unset height means
// the event it describes never happens on the network, for example a chain
// that never needs its zerocoin accumulators recalculated.
//
// The zero value is unset.
type OptionalHeight struct {
	height int32
	set    bool
}

// Never is the unset OptionalHeight.
var Never = OptionalHeight{}

// AtHeight returns an OptionalHeight set to h.
func AtHeight(h int32) OptionalHeight {
	return OptionalHeight{height: h, set: true}
}

// Get returns the height and whether it is set.
func (o OptionalHeight) Get() (int32, bool) {
	return o.height, o.set
}

// IsSet reports whether the height is set.
func (o OptionalHeight) IsSet() bool {
	return o.set
}

// Reached reports whether h is at or past the height.  An unset height is
// never reached.
func (o OptionalHeight) Reached(h int32) bool {
	return o.set && h >= o.height
}

// String returns the height in decimal, or "never" when unset.
func (o OptionalHeight) String() string {
	if !o.set {
		return "never"
	}
	return fmt.Sprintf("%d", o.height)
}
