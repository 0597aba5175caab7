package sha2

import "massnet.org/sha2/massutil/safetype"

// padder hands out the padded message one block at a time. Whole blocks are
// sliced straight out of the message; the remainder, the 0x80 marker, the
// zero fill and the bit-length field are assembled in tail, which spans one
// block, or two when the marker and length field do not fit after the
// remainder.
type padder struct {
	msg       []byte
	blockSize int
	off       int

	tail    [2 * BlockSize512]byte
	tailLen int
	tailOff int
}

// reset prepares p for msg. lenSize is the width in bytes of the trailing
// length field (8 or 16).
func (p *padder) reset(msg []byte, blockSize, lenSize int) {
	full := len(msg) - len(msg)%blockSize

	p.msg = msg[:full]
	p.blockSize = blockSize
	p.off = 0
	p.tail = [2 * BlockSize512]byte{}
	p.tailOff = 0

	n := copy(p.tail[:], msg[full:])
	p.tail[n] = 0x80
	p.tailLen = blockSize
	if n+1+lenSize > blockSize {
		p.tailLen = 2 * blockSize
	}

	// Lengths beyond the field's range are out of scope; the field keeps
	// the low-order bits.
	bits := safetype.NewUint128FromUint(uint64(len(msg))).Lsh(3)
	bits.PutBytes(p.tail[p.tailLen-lenSize : p.tailLen])
}

// next returns the following block, or false once the padded message is used up.
func (p *padder) next() ([]byte, bool) {
	bs := p.blockSize
	if p.off < len(p.msg) {
		block := p.msg[p.off : p.off+bs]
		p.off += bs
		return block, true
	}
	if p.tailOff < p.tailLen {
		block := p.tail[p.tailOff : p.tailOff+bs]
		p.tailOff += bs
		return block, true
	}
	return nil, false
}

// blockCount is the number of blocks a message of msgLen bytes pads to:
// ceil((8*msgLen + 1 + 8*lenSize) / (8*blockSize)).
func blockCount(msgLen, blockSize, lenSize int) int {
	bits := 8*msgLen + 1 + 8*lenSize
	blockBits := 8 * blockSize
	return (bits + blockBits - 1) / blockBits
}
