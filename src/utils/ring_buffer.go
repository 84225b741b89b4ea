package utils

import (
	"crypto-sniper/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of per-tick snapshots.
// True ring buffer - no resizing allowed!
// -----------------------------------------------------------------------------

type RingBuffer struct {
	data     []models.MSymbolSnapshot
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 64 // Default reasonable size
	}

	return &RingBuffer{
		data:     make([]models.MSymbolSnapshot, capacity),
		capacity: capacity,
		index:    0,
		size:     0,
	}
}

// -----------------------------------------------------------------------------

// Append adds one snapshot, overwriting the oldest when full
func (rb *RingBuffer) Append(snap models.MSymbolSnapshot) {
	rb.data[rb.index] = snap
	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns the n latest snapshots, oldest first
func (rb *RingBuffer) GetLatest(n int) []models.MSymbolSnapshot {
	if rb.size == 0 || n <= 0 {
		return []models.MSymbolSnapshot{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]models.MSymbolSnapshot, count)

	// Latest data is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity

	for i := 0; i < count; i++ {
		idx := (startIdx + i) % rb.capacity
		result[i] = rb.data[idx]
	}

	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all data in insertion order (oldest to newest)
func (rb *RingBuffer) GetAll() []models.MSymbolSnapshot {
	return rb.GetLatest(rb.size)
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.index = 0
	rb.size = 0
}
