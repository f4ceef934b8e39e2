package libewok

import (
	"encoding/binary"
	"io"
	"math"
)

// Serialize writes b to w in the bit-exact wire format from spec.md
// §6.1: a big-endian uint32 bit_size, a big-endian uint32 word count,
// that many big-endian uint64 words, and a trailing big-endian uint32
// giving the active marker's index. All multi-byte values go through
// encoding/binary.BigEndian (spec.md §9's "expose a single conversion
// utility and route all multi-byte reads/writes through it").
//
// Returns (0, nil) on success and (-1, err) on any I/O failure or if
// b's bit_size or word count does not fit the format's 32-bit fields —
// mirroring the C library's int return code (spec.md §6.1, §9's Open
// Question on the 32-bit header: oversized bitmaps are rejected here
// rather than silently truncated).
func (b *Bitmap) Serialize(w io.Writer) (int, error) {
	if b.bitSize > math.MaxUint32 {
		logWarnf("Serialize: rejecting bitmap with bit_size %d (exceeds uint32)", b.bitSize)
		return -1, oversizedf("bit_size %d exceeds the uint32 wire limit", b.bitSize)
	}
	if uint64(len(b.buf)) > math.MaxUint32 {
		logWarnf("Serialize: rejecting bitmap with %d words (exceeds uint32)", len(b.buf))
		return -1, oversizedf("word count %d exceeds the uint32 wire limit", len(b.buf))
	}

	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(b.bitSize))
	binary.BigEndian.PutUint32(header[4:8], uint32(len(b.buf)))
	if _, err := w.Write(header[:]); err != nil {
		return -1, ioErrorf(err, "writing bit_size/num_words header")
	}

	words := make([]byte, 8*len(b.buf))
	for i, word := range b.buf {
		binary.BigEndian.PutUint64(words[i*8:], word)
	}
	if len(words) > 0 {
		if _, err := w.Write(words); err != nil {
			return -1, ioErrorf(err, "writing word buffer")
		}
	}

	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], uint32(b.rlwIndex))
	if _, err := w.Write(trailer[:]); err != nil {
		return -1, ioErrorf(err, "writing rlw_offset trailer")
	}
	return 0, nil
}

// Deserialize reads a bitmap serialized by Serialize from r, replacing
// b's current contents entirely. Returns (0, nil) on success and
// (-1, err) on any short read or I/O error.
func (b *Bitmap) Deserialize(r io.Reader) (int, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return -1, ioErrorf(err, "reading bit_size/num_words header")
	}
	bitSize := binary.BigEndian.Uint32(header[0:4])
	numWords := binary.BigEndian.Uint32(header[4:8])

	words := make([]uint64, numWords)
	if numWords > 0 {
		raw := make([]byte, 8*int(numWords))
		if _, err := io.ReadFull(r, raw); err != nil {
			return -1, ioErrorf(err, "reading word buffer")
		}
		for i := range words {
			words[i] = binary.BigEndian.Uint64(raw[i*8:])
		}
	}

	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return -1, ioErrorf(err, "reading rlw_offset trailer")
	}

	b.buf = words
	b.bitSize = uint64(bitSize)
	b.rlwIndex = int(binary.BigEndian.Uint32(trailer[:]))
	return 0, nil
}
