package libewok

import "math/bits"

// Iterator walks a Bitmap's compressed buffer and yields the logical
// 64-bit words it encodes, uncompressed, one at a time: every clean
// word in a run is synthesized on the fly (all-zero or all-one
// depending on the run bit) and every literal is returned verbatim.
//
// It borrows its parent Bitmap and must not outlive a mutation of it
// (spec.md §5): this package does not itself enforce that with a lock,
// matching the single-threaded cooperative model spec.md describes.
type Iterator struct {
	buf        []uint64
	pointer    int // index of the next marker/literal word to consume
	compressed uint64
	literals   uint64
	b          bool
}

// Iterator returns a new word iterator positioned before the first
// block of b.
func (bm *Bitmap) Iterator() *Iterator {
	return &Iterator{buf: bm.buf}
}

// Next yields the next logical 64-bit word. It returns false once
// every block has been consumed; a non-empty bitmap yields exactly
// ceil(bit_size/64) words, and the final word's bits above
// bit_size%64 are unspecified (callers must mask).
func (it *Iterator) Next() (uint64, bool) {
	for {
		if it.compressed > 0 {
			it.compressed--
			return fillWord(it.b), true
		}
		if it.literals > 0 {
			w := it.buf[it.pointer]
			it.pointer++
			it.literals--
			return w, true
		}
		if it.pointer >= len(it.buf) {
			return 0, false
		}
		marker := it.buf[it.pointer]
		it.b = markerRunBit(marker)
		it.compressed = markerRunningLength(marker)
		it.literals = markerLiteralCount(marker)
		it.pointer++
	}
}

// BitIterator walks a Bitmap's compressed buffer and yields the
// absolute position of every set bit, strictly ascending, each exactly
// once, in O(popcount + compressed size): clean runs of 0s are
// skipped in O(1) regardless of their length, clean runs of 1s and
// literal words are scanned bit-by-bit with a trailing-zeros primitive.
type BitIterator struct {
	buf []uint64

	markerIdx int // index, in buf, of the next marker to load
	runBit    bool
	runLeft   uint64 // clean words left in the current run
	litLeft   uint64 // literal words left in the current block
	litPtr    int    // index, in buf, of the next literal word to read

	pos     uint64 // absolute bit position of bit 0 of the next word to scan
	base    uint64 // absolute bit position of bit 0 of the word curMask refers to
	curMask uint64 // unyielded bits of the word currently being scanned
}

// BitIterator returns a new set-bit iterator positioned before the
// first block of b.
func (bm *Bitmap) BitIterator() *BitIterator {
	return &BitIterator{buf: bm.buf}
}

// Next yields the next set bit's absolute position. It returns false
// once every block has been consumed.
func (it *BitIterator) Next() (uint64, bool) {
	for {
		if it.curMask != 0 {
			tz := bits.TrailingZeros64(it.curMask)
			pos := it.base + uint64(tz)
			it.curMask &^= uint64(1) << uint(tz)
			return pos, true
		}

		if it.runLeft > 0 {
			if it.runBit {
				it.curMask = ^uint64(0)
				it.base = it.pos
				it.pos += wordBits
				it.runLeft--
				continue
			}
			it.pos += it.runLeft * wordBits
			it.runLeft = 0
			continue
		}

		if it.litLeft > 0 {
			it.curMask = it.buf[it.litPtr]
			it.base = it.pos
			it.pos += wordBits
			it.litPtr++
			it.litLeft--
			continue
		}

		if it.markerIdx >= len(it.buf) {
			return 0, false
		}
		marker := it.buf[it.markerIdx]
		it.runBit = markerRunBit(marker)
		it.runLeft = markerRunningLength(marker)
		it.litLeft = markerLiteralCount(marker)
		it.litPtr = it.markerIdx + 1
		it.markerIdx = it.litPtr + int(it.litLeft)
	}
}

// EachBit calls fn with the position of every set bit, in ascending
// order, stopping early if fn returns false. This is the closure-based
// re-expression of the C library's ewah_each_bit(callback, payload)
// (spec.md §9's guidance on re-expressing the visitor).
func (bm *Bitmap) EachBit(fn func(pos uint64) bool) {
	it := bm.BitIterator()
	for {
		pos, ok := it.Next()
		if !ok {
			return
		}
		if !fn(pos) {
			return
		}
	}
}
