package scoring

// Composite combines the two category sums into the final device score:
// weighted sum, then the normalization factor. Multi-core performance is
// weighted at nearly twice single-core in the reference configuration.
func Composite(cfg Config, singleSum, multiSum float64) float64 {
	weighted := singleSum*cfg.SingleCoreWeight + multiSum*cfg.MultiCoreWeight
	return weighted * cfg.NormalizationFactor
}

// Rating is the discrete band a composite score falls into.
type Rating struct {
	Stars     string  `json:"stars"`
	Label     string  `json:"label"`
	Threshold float64 `json:"threshold"`
}

// String renders the rating the way the report prints it, e.g.
// "★★★☆☆ (Good Performance)".
func (r Rating) String() string {
	return r.Stars + " (" + r.Label + ")"
}

// Rate maps a composite score onto the rating ladder: the first band whose
// threshold the score meets wins. A score below every threshold, including
// NaN (which fails every >= comparison), lands in the lowest band.
func Rate(cfg Config, score float64) Rating {
	if len(cfg.Bands) == 0 {
		return Rating{}
	}
	for _, b := range cfg.Bands {
		if score >= b.Threshold {
			return Rating{Stars: b.Stars, Label: b.Label, Threshold: b.Threshold}
		}
	}
	last := cfg.Bands[len(cfg.Bands)-1]
	return Rating{Stars: last.Stars, Label: last.Label, Threshold: last.Threshold}
}
