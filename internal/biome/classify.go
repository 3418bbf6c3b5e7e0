package biome

// Classification thresholds. Comparisons are strict and evaluated top to
// bottom; the first matching rule wins.
const (
	OceanLevel    = 0.12
	BeachLevel    = 0.14
	MountainLevel = 0.8
	HighlandLevel = 0.6
	UplandLevel   = 0.3
)

// Classify maps an elevation/moisture pair to its biome.
// Both inputs must be in [0,1]; results outside that domain are unspecified.
func Classify(elevation, moisture float64) Biome {
	if elevation < OceanLevel {
		return Ocean
	}
	if elevation < BeachLevel {
		return Beach
	}

	if elevation > MountainLevel {
		switch {
		case moisture < 0.1:
			return Scorched
		case moisture < 0.2:
			return Bare
		case moisture < 0.5:
			return Tundra
		default:
			return Snow
		}
	}

	if elevation > HighlandLevel {
		switch {
		case moisture < 0.33:
			return TemperateDesert
		case moisture < 0.66:
			return Shrubland
		default:
			return Taiga
		}
	}

	if elevation > UplandLevel {
		switch {
		case moisture < 0.16:
			return TemperateDesert
		case moisture < 0.50:
			return Grassland
		case moisture < 0.83:
			return TemperateDeciduousForest
		default:
			return TemperateRainForest
		}
	}

	switch {
	case moisture < 0.16:
		return SubtropicalDesert
	case moisture < 0.33:
		return Grassland
	case moisture < 0.66:
		return TropicalSeasonalForest
	default:
		return TropicalRainForest
	}
}
