package layout

// Bit indexes a presence or boolean bit within a bitmask.
type Bit int

// InvalidBit means no bit was allocated.
const InvalidBit Bit = -1

// IsInvalid reports whether b is InvalidBit.
func (b Bit) IsInvalid() bool {
	return b == InvalidBit
}

// Offset returns the byte holding b in a bitmask that starts at base.
func (b Bit) Offset(base int) int {
	return base + int(b)/8
}

// Bit returns the position of b within its byte.
func (b Bit) Bit() int {
	return int(b) % 8
}

// Mask returns the single-bit mask of b within its byte.
func (b Bit) Mask() byte {
	return 1 << uint(b.Bit())
}

// BitAllocator hands out increasing bit indices. Not thread-safe.
type BitAllocator struct {
	next int
}

// Allocate returns the next unused bit.
func (a *BitAllocator) Allocate() Bit {
	b := Bit(a.next)
	a.next++
	return b
}

// NumBytes returns the bytes needed to hold every allocated bit.
func (a *BitAllocator) NumBytes() int {
	return (a.next + 7) / 8
}
