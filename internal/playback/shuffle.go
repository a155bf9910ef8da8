package playback

import "math/rand/v2"

// ShuffledOrder returns the playback order for a queue snapshot. With
// shuffle disabled (or fewer than two items) the input order is returned
// unchanged; otherwise a Fisher-Yates permutation. The input is never
// mutated, which keeps the controller itself order-preserving and
// deterministic.
func ShuffledOrder(items []Item, enabled bool, rng *rand.Rand) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if !enabled || len(out) < 2 {
		return out
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
