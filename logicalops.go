package libewok

// bitwiseFn is the per-word operation a combiner applies: OR (a|b),
// AND (a&b), XOR (a^b), or AND-NOT (a&^b). Operand order matters for
// AND-NOT, which is why every combiner below is careful to always pass
// (i's word, j's word) in that order.
type bitwiseFn func(a, b uint64) uint64

func orWords(a, b uint64) uint64    { return a | b }
func andWords(a, b uint64) uint64   { return a & b }
func xorWords(a, b uint64) uint64   { return a ^ b }
func andNotWords(a, b uint64) uint64 { return a &^ b }

// blockCursor is a read-only cursor over one operand of a combiner. It
// exposes, at each step, either the remaining length of the clean run
// currently being scanned or the remaining literal count of the
// current block — whichever is active — auto-advancing across marker
// boundaries as each segment is exhausted (spec.md §4.5: "Each cursor
// exposes: current clean-run length ... current remaining literal
// count ... the ability to consume k clean/literal words").
//
// Grounded on alphazero-gart/syslib/bitmap/wahl.go's wahlReader, which
// plays the identical role for 31-bit Wahl blocks; generalized here to
// the spec's 64-bit marker+literal layout and to expose clean-run and
// literal headroom distinctly instead of a single "current word" (the
// Wahl reader could do this because every Wahl block holds exactly one
// decoded word; an EWAH block's literal run can be many words long).
type blockCursor struct {
	buf       []uint64
	markerIdx int
	runBit    bool
	runLeft   uint64
	litLeft   uint64
	litPtr    int
}

func newBlockCursor(buf []uint64) *blockCursor {
	return &blockCursor{buf: buf}
}

// hasData advances past any fully-consumed block and reports whether
// real (non-virtual) data remains.
func (c *blockCursor) hasData() bool {
	for c.runLeft == 0 && c.litLeft == 0 {
		if c.markerIdx >= len(c.buf) {
			return false
		}
		marker := c.buf[c.markerIdx]
		c.runBit = markerRunBit(marker)
		c.runLeft = markerRunningLength(marker)
		c.litLeft = markerLiteralCount(marker)
		c.litPtr = c.markerIdx + 1
		c.markerIdx = c.litPtr + int(c.litLeft)
	}
	return true
}

// headroom reports the current segment's type (clean run vs literal),
// the run's bit value (meaningless when isRun is false), and its
// remaining length. Once the cursor's real data is exhausted it
// reports a virtual clean run of zeros sized to remainingNeeded — the
// "implicit zero extension" of the shorter operand (spec.md §4.5).
func (c *blockCursor) headroom(remainingNeeded uint64) (isRun, bit bool, n uint64) {
	if !c.hasData() {
		return true, false, remainingNeeded
	}
	if c.runLeft > 0 {
		return true, c.runBit, c.runLeft
	}
	return false, false, c.litLeft
}

// consumeRun advances past up to k words of the current clean run.
// k beyond the real remaining length (possible only when the cursor
// is reporting its virtual zero-tail) is silently capped.
func (c *blockCursor) consumeRun(k uint64) {
	if k > c.runLeft {
		k = c.runLeft
	}
	c.runLeft -= k
}

// consumeLiterals returns (a view of) the next k literal words and
// advances past them.
func (c *blockCursor) consumeLiterals(k uint64) []uint64 {
	if k > c.litLeft {
		k = c.litLeft
	}
	out := c.buf[c.litPtr : c.litPtr+int(k)]
	c.litPtr += int(k)
	c.litLeft -= k
	return out
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// mergeInto runs the four-case run-wise merge from spec.md §4.5 over
// operands i and j, writing the canonicalized result into a fresh
// Bitmap via the same builder used for ordinary construction. The
// output's bit_size is max(i.bit_size, j.bit_size); the shorter
// operand is treated as implicitly zero-padded out to that length.
func mergeInto(i, j *Bitmap, op bitwiseFn) *Bitmap {
	out := NewBitmap()
	ci := newBlockCursor(i.buf)
	cj := newBlockCursor(j.buf)

	total := maxU64(i.bitSize, j.bitSize)
	wordsTotal := (total + wordBits - 1) / wordBits

	var wordsEmitted uint64
	var lastStepWasLiteral bool
	for wordsEmitted < wordsTotal {
		remaining := wordsTotal - wordsEmitted
		iRun, iBit, iN := ci.headroom(remaining)
		jRun, jBit, jN := cj.headroom(remaining)

		step := iN
		if jN < step {
			step = jN
		}
		if remaining < step {
			step = remaining
		}

		switch {
		case iRun && jRun:
			word := op(fillWord(iBit), fillWord(jBit))
			out.AddEmptyWords(word != 0, step)
			ci.consumeRun(step)
			cj.consumeRun(step)
			lastStepWasLiteral = false

		case iRun && !jRun:
			lits := cj.consumeLiterals(step)
			fillI := fillWord(iBit)
			c0, c1 := op(fillI, 0), op(fillI, ^uint64(0))
			if c0 == c1 {
				out.AddEmptyWords(c0 != 0, step)
				lastStepWasLiteral = false
			} else {
				results := make([]uint64, len(lits))
				for k, w := range lits {
					results[k] = op(fillI, w)
				}
				out.AddDirtyWords(results, false)
				lastStepWasLiteral = true
			}
			ci.consumeRun(step)

		case !iRun && jRun:
			lits := ci.consumeLiterals(step)
			fillJ := fillWord(jBit)
			c0, c1 := op(0, fillJ), op(^uint64(0), fillJ)
			if c0 == c1 {
				out.AddEmptyWords(c0 != 0, step)
				lastStepWasLiteral = false
			} else {
				results := make([]uint64, len(lits))
				for k, w := range lits {
					results[k] = op(w, fillJ)
				}
				out.AddDirtyWords(results, false)
				lastStepWasLiteral = true
			}
			cj.consumeRun(step)

		default: // both literal
			litsI := ci.consumeLiterals(step)
			litsJ := cj.consumeLiterals(step)
			results := make([]uint64, len(litsI))
			for k := range results {
				results[k] = op(litsI[k], litsJ[k])
			}
			out.AddDirtyWords(results, false)
			lastStepWasLiteral = true
		}

		wordsEmitted += step
	}

	// AddEmptyWords/AddDirtyWords above grow bit_size in whole-word
	// steps; trim to the (possibly non-word-aligned) logical length.
	// Only mask the trailing data itself when the final buffer word is
	// actually one of its marker's literals: a run emitted via
	// AddEmptyWords leaves a marker word as the buffer's last word, and
	// masking a marker's high bits would corrupt its 32-bit running
	// length instead of trimming data.
	out.bitSize = total
	if rem := total % wordBits; rem != 0 && len(out.buf) > 0 && lastStepWasLiteral {
		mask := (uint64(1) << rem) - 1
		out.buf[len(out.buf)-1] &= mask
	}
	return out
}

func assign(dst, src *Bitmap) {
	dst.buf = src.buf
	dst.bitSize = src.bitSize
	dst.rlwIndex = src.rlwIndex
}

// Or writes the logical OR of i and j into out.
func Or(i, j, out *Bitmap) { assign(out, mergeInto(i, j, orWords)) }

// And writes the logical AND of i and j into out.
func And(i, j, out *Bitmap) { assign(out, mergeInto(i, j, andWords)) }

// Xor writes the logical XOR of i and j into out.
func Xor(i, j, out *Bitmap) { assign(out, mergeInto(i, j, xorWords)) }

// AndNot writes i AND (NOT j) into out. i is the minuend: AndNot is
// not symmetric in its arguments.
func AndNot(i, j, out *Bitmap) { assign(out, mergeInto(i, j, andNotWords)) }
