package counter

// Counter is a cumulative metric, used to track draw and byte
// throughput of generator-backed streams
type Counter interface {
	Value() int64
	RatePerSec() int64

	Add(n int64)
}
