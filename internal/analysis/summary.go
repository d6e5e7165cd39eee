package analysis

type Summary struct {
	Frames       int
	MeanWall     float64
	MeanSphere   float64
	PeakWall     float64
	PeakSphere   float64
	WallPeriod   float64
	SpherePeriod float64
}

func Summarize(wall, sphere []float64) Summary {
	s := Summary{Frames: max(len(wall), len(sphere))}
	s.MeanWall, s.PeakWall = meanPeak(wall)
	s.MeanSphere, s.PeakSphere = meanPeak(sphere)
	s.WallPeriod, _ = DominantPeriod(wall)
	s.SpherePeriod, _ = DominantPeriod(sphere)
	return s
}

func meanPeak(data []float64) (mean, peak float64) {
	if len(data) == 0 {
		return 0, 0
	}
	for _, v := range data {
		mean += v
		peak = max(peak, v)
	}
	return mean / float64(len(data)), peak
}
