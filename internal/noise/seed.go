package noise

import (
	"github.com/seehuhn/mt19937"
)

// DeriveSeeds expands a world seed into the elevation and moisture sub-seeds
// by taking the first two outputs of a Mersenne Twister seeded with it.
func DeriveSeeds(seed int64) (elevation, moisture int64) {
	rng := mt19937.New()
	rng.Seed(seed)

	elevation = rng.Int63()
	moisture = rng.Int63()
	return elevation, moisture
}
