package sha2

// rotr rotates x right by n within the family's word width.
func (fam *family[W]) rotr(x W, n uint) W {
	return x>>n | x<<(fam.width-n)
}

func (fam *family[W]) smallSigma0(x W) W {
	s := &fam.ssig0
	return fam.rotr(x, s[0]) ^ fam.rotr(x, s[1]) ^ x>>s[2]
}

func (fam *family[W]) smallSigma1(x W) W {
	s := &fam.ssig1
	return fam.rotr(x, s[0]) ^ fam.rotr(x, s[1]) ^ x>>s[2]
}

// load reads one big-endian word from the front of b.
func (fam *family[W]) load(b []byte) W {
	var v W
	for _, c := range b[:fam.wordSize] {
		v = v<<8 | W(c)
	}
	return v
}

// store writes state as big-endian words into out, which must hold
// 8*wordSize bytes.
func (fam *family[W]) store(state *[8]W, out []byte) {
	n := fam.wordSize
	for i, v := range state {
		b := out[i*n : (i+1)*n]
		for j := n - 1; j >= 0; j-- {
			b[j] = byte(v)
			v >>= 8
		}
	}
}

// expand fills the first len(fam.k) entries of w with the message schedule
// of block.
func (fam *family[W]) expand(block []byte, w *[maxRounds]W) {
	for i := 0; i < 16; i++ {
		w[i] = fam.load(block[i*fam.wordSize:])
	}
	for i := 16; i < len(fam.k); i++ {
		w[i] = fam.smallSigma1(w[i-2]) + w[i-7] + fam.smallSigma0(w[i-15]) + w[i-16]
	}
}
