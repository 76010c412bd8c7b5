package syndicate

// relationships[src][dst] is the share of standing dst gains (or loses) for
// every point earned with src. Zero means no effect.
var relationships = [Count][Count]float64{
	Steel:    {Steel: 1.0, Veil: 0.5, Loka: -0.5, Perrin: -1.0},
	Arbiters: {Arbiters: 1.0, Suda: 0.5, Perrin: -0.5, Veil: -1.0},
	Suda:     {Suda: 1.0, Arbiters: 0.5, Veil: -0.5, Loka: -1.0},
	Perrin:   {Perrin: 1.0, Loka: 0.5, Arbiters: -0.5, Steel: -1.0},
	Veil:     {Veil: 1.0, Steel: 0.5, Suda: -0.5, Arbiters: -1.0},
	Loka:     {Loka: 1.0, Perrin: 0.5, Steel: -0.5, Suda: -1.0},
}

// Effect is one nonzero entry of a matrix row.
type Effect struct {
	Target     Faction
	Multiplier float64
}

// Multiplier returns how much dst moves per point farmed with src.
func Multiplier(src, dst Faction) float64 {
	if !src.Valid() || !dst.Valid() {
		return 0
	}
	return relationships[src][dst]
}

// Effects returns the nonzero row for src in faction order. An invalid
// source has no effects.
func Effects(src Faction) []Effect {
	if !src.Valid() {
		return nil
	}
	out := make([]Effect, 0, 4)
	for _, dst := range All {
		if m := relationships[src][dst]; m != 0 {
			out = append(out, Effect{Target: dst, Multiplier: m})
		}
	}
	return out
}
