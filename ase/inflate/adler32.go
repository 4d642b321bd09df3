package inflate

const (
	adlerMod = 65521
	// Largest n such that 255n(n+1)/2 + (n+1)(adlerMod-1) fits in 32 bits.
	adlerNMax = 5552
)

// Adler32 extends the running checksum adler with p. Start with 1.
func Adler32(adler uint32, p []byte) uint32 {
	s1, s2 := adler&0xffff, adler>>16
	for len(p) > 0 {
		var rest []byte
		if len(p) > adlerNMax {
			p, rest = p[:adlerNMax], p[adlerNMax:]
		}
		for _, b := range p {
			s1 += uint32(b)
			s2 += s1
		}
		s1 %= adlerMod
		s2 %= adlerMod
		p = rest
	}
	return s2<<16 | s1
}
