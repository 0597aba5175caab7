package sha2

func (fam *family[W]) bigSigma0(x W) W {
	s := &fam.bsig0
	return fam.rotr(x, s[0]) ^ fam.rotr(x, s[1]) ^ fam.rotr(x, s[2])
}

func (fam *family[W]) bigSigma1(x W) W {
	s := &fam.bsig1
	return fam.rotr(x, s[0]) ^ fam.rotr(x, s[1]) ^ fam.rotr(x, s[2])
}

func ch[W word](x, y, z W) W {
	return (x & y) ^ (^x & z)
}

func maj[W word](x, y, z W) W {
	return (x & y) ^ (x & z) ^ (y & z)
}

// compress folds one expanded block into state.
func (fam *family[W]) compress(state *[8]W, w *[maxRounds]W) {
	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for i, k := range fam.k {
		t1 := h + fam.bigSigma1(e) + ch(e, f, g) + k + w[i]
		t2 := fam.bigSigma0(a) + maj(a, b, c)

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	state[0] += a
	state[1] += b
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
}

// sum runs the whole pipeline for msg and writes the untruncated state to out.
func sum[W word](fam *family[W], iv *[8]W, msg []byte, out []byte) {
	var (
		state = *iv
		w     [maxRounds]W
		pad   padder
	)
	pad.reset(msg, fam.blockSize, fam.lenSize)
	for block, ok := pad.next(); ok; block, ok = pad.next() {
		fam.expand(block, &w)
		fam.compress(&state, &w)
	}
	fam.store(&state, out)
}
