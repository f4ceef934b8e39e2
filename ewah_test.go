package libewok

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBitmapIsEmpty(t *testing.T) {
	b := NewBitmap()
	require.NotNil(t, b)
	require.Zero(t, b.BitSize())
	require.Zero(t, b.WordCount())
	require.Zero(t, b.Popcount())
}

func TestWithCapacityPreallocatesWithoutGrowingBitSize(t *testing.T) {
	b := NewBitmap(WithCapacity(64))
	require.Zero(t, b.BitSize())
	require.Zero(t, b.WordCount())
}

func TestMarkerRoundTrip(t *testing.T) {
	m := makeMarker(true, 12345, 678)
	require.True(t, markerRunBit(m))
	require.EqualValues(t, 12345, markerRunningLength(m))
	require.EqualValues(t, 678, markerLiteralCount(m))

	m = withRunBit(m, false)
	require.False(t, markerRunBit(m))
	require.EqualValues(t, 12345, markerRunningLength(m))
	require.EqualValues(t, 678, markerLiteralCount(m))
}

func TestMarkerSaturation(t *testing.T) {
	m := makeMarker(true, maxRunningLength, maxLiteralCount)
	require.Equal(t, maxRunningLength, markerRunningLength(m))
	require.Equal(t, maxLiteralCount, markerLiteralCount(m))
}

func TestFillWord(t *testing.T) {
	require.Equal(t, uint64(0), fillWord(false))
	require.Equal(t, ^uint64(0), fillWord(true))
}

func TestClearResetsButKeepsCapacity(t *testing.T) {
	b := NewBitmap()
	b.AddEmptyWords(true, 100)
	require.NotZero(t, b.WordCount())
	cap0 := cap(b.buf)

	b.Clear()
	require.Zero(t, b.BitSize())
	require.Zero(t, b.WordCount())
	require.Equal(t, cap0, cap(b.buf))
}

func TestPopcountMatchesBitIterator(t *testing.T) {
	b := NewBitmap()
	b.AddEmptyWords(false, 3)
	b.AddDirtyWords([]uint64{0x1, 0xF0F0F0F0F0F0F0F0, 0x3}, false)
	b.AddEmptyWords(true, 2)

	var viaIterator uint64
	b.EachBit(func(uint64) bool { viaIterator++; return true })
	require.Equal(t, viaIterator, b.Popcount())
}
