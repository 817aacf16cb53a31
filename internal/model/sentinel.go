package model

// Device-facing sentinel flags. These integers are a protocol contract with
// deployed firmware and must not change. Zero means "no flag computed" and
// must never be sent on the wire.
const (
	FlagActive   = 100
	FlagInactive = 99
)

func SentinelFor(b bool) int {
	if b {
		return FlagActive
	}
	return FlagInactive
}
