package bot

// lcg is a seedable linear congruential generator (a=1664525, c=1013904223,
// m=2^32). The same seed always yields the same sequence.
type lcg struct {
	state uint32
}

func newLCG(seed uint32) *lcg {
	return &lcg{state: seed}
}

func (g *lcg) next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// float64 returns a value in [0,1).
func (g *lcg) float64() float64 {
	return float64(g.next()) / (1 << 32)
}

// intn returns a value in [0,n). n must be positive.
func (g *lcg) intn(n int) int {
	return int(g.float64() * float64(n))
}

func (g *lcg) reset(seed uint32) {
	g.state = seed
}
