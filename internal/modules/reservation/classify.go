package reservation

import "b200/internal/config"

type Band string

const (
	BandAmple       Band = "ample"
	BandNearlyFull  Band = "nearly_full"
	BandUnavailable Band = "unavailable"
	BandNoData      Band = "no_data"
	BandNotOpen     Band = "not_open"
)

// Classify maps a day's ticket total onto a severity band.
// Setting lowMax == midMax gives a two-tier scale without NEARLY_FULL.
func Classify(count, lowMax, midMax int) Band {
	switch {
	case count <= lowMax:
		return BandAmple
	case count <= midMax:
		return BandNearlyFull
	default:
		return BandUnavailable
	}
}

type Classifier struct {
	thresholds config.Thresholds
}

func NewClassifier(t config.Thresholds) Classifier {
	return Classifier{thresholds: t}
}

func (c Classifier) Thresholds() config.Thresholds { return c.thresholds }

// Band classifies count, reporting BandNoData for an empty day unless zero counts as ample.
func (c Classifier) Band(count int) Band {
	if count == 0 && !c.thresholds.ZeroIsAmple {
		return BandNoData
	}
	return Classify(count, c.thresholds.LowMax, c.thresholds.MidMax)
}
