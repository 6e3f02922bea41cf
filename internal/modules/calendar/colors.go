package calendar

import "b200/internal/modules/reservation"

var bandColors = map[reservation.Band]string{
	reservation.BandAmple:       "#c8e6c9",
	reservation.BandNearlyFull:  "#ffe6b3",
	reservation.BandUnavailable: "#ffcccc",
	reservation.BandNoData:      "#ffffff",
	reservation.BandNotOpen:     "#e5e7eb",
}

var bandLabels = map[reservation.Band]string{
	reservation.BandAmple:       "Available",
	reservation.BandNearlyFull:  "Nearly full",
	reservation.BandUnavailable: "Unavailable",
	reservation.BandNoData:      "No bookings",
	reservation.BandNotOpen:     "Not open yet",
}

func BandColor(b reservation.Band) string {
	return bandColors[b]
}

func legend(t reservation.Classifier, view View) []LegendEntry {
	bands := []reservation.Band{reservation.BandAmple}
	th := t.Thresholds()
	if th.MidMax > th.LowMax {
		bands = append(bands, reservation.BandNearlyFull)
	}
	bands = append(bands, reservation.BandUnavailable)
	if !th.ZeroIsAmple {
		bands = append(bands, reservation.BandNoData)
	}
	if view == ViewUser {
		bands = append(bands, reservation.BandNotOpen)
	}

	out := make([]LegendEntry, 0, len(bands))
	for _, b := range bands {
		out = append(out, LegendEntry{Band: b, Color: bandColors[b], Label: bandLabels[b]})
	}
	return out
}
