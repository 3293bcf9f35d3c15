package row

const (
	// defaultCapacity is the initial capacity of a buffer created with a smaller one.
	defaultCapacity = 64

	// maxGrowth caps a single growth step (1GB).
	maxGrowth = 1 << 30

	// countSize is the width of the element count that prefixes typed collections.
	countSize = 4

	// unixEpochTicks is the DateTime tick count of 1970-01-01T00:00:00Z.
	// A tick is 100ns counted from 0001-01-01T00:00:00Z.
	unixEpochTicks = 621355968000000000
	ticksPerSecond = 10_000_000
)
