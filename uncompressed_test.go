package libewok

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUncompressedSetGetGrows(t *testing.T) {
	u := NewUncompressed()
	require.False(t, u.Get(100))

	u.Set(100)
	require.True(t, u.Get(100))
	require.False(t, u.Get(99))
	require.False(t, u.Get(101))
	require.Equal(t, 2, u.WordCount()) // bit 100 lives in word index 1
}

func TestUncompressedClear(t *testing.T) {
	u := NewUncompressed()
	u.Set(5)
	u.Clear(5)
	require.False(t, u.Get(5))

	// clearing beyond capacity grows the array rather than panicking.
	require.NotPanics(t, func() { u.Clear(9999) })
}

func TestToUncompressedThenFromUncompressedRoundTrips(t *testing.T) {
	b := NewBitmap()
	b.AddEmptyWords(true, 2)
	b.AddDirtyWords([]uint64{0xDEADBEEF, 0}, false)
	b.AddEmptyWords(false, 3)
	b.Set(b.BitSize() + 20)

	u := b.ToUncompressed()
	back := FromUncompressed(u)

	require.Equal(t, bitsOf(b), bitsOf(back))
	require.EqualValues(t, u.WordCount()*wordBits, back.BitSize())
}

func TestFromUncompressedCollapsesRuns(t *testing.T) {
	u := NewUncompressed()
	// words 0-2 all-zero, word 3 mixed, words 4-5 all-one.
	u.grow(5)
	u.words[3] = 0x42
	u.words[4] = ^uint64(0)
	u.words[5] = ^uint64(0)

	b := FromUncompressed(u)
	require.EqualValues(t, 6*wordBits, b.BitSize())

	want := map[uint64]bool{3*wordBits + 1: true, 3*wordBits + 6: true}
	for pos := uint64(4 * wordBits); pos < 6*wordBits; pos++ {
		want[pos] = true
	}
	require.Equal(t, want, bitsOf(b))
}
