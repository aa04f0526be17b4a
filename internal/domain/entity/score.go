package entity

import "math"

// WeldingStats сырые измерения одного прохода сканера
type WeldingStats struct {
	Uniformity   float64 // равномерность валиков, 0..1
	Coverage     float64 // доля попаданий в наплавку, 0..1
	Travel       float64 // равномерность проводки, не ограничена снизу
	BadWeldCount int     // групп дефектов вне допустимой зоны
	HoleCount    int     // прожогов
}

// WeldingScore итоговые баллы панели
type WeldingScore struct {
	Uniformity int `json:"uniformity"`
	Coverage   int `json:"coverage"`
	Travel     int `json:"travel"`
}

// NewWeldingScore переводит измерения в баллы.
// Прожог обнуляет равномерность; покрытие и проводка не ограничиваются.
func NewWeldingScore(stats WeldingStats) WeldingScore {
	score := WeldingScore{
		Coverage: percent(stats.Coverage),
		Travel:   percent(stats.Travel),
	}
	if stats.HoleCount == 0 {
		score.Uniformity = clamp(percent(stats.Uniformity)-stats.BadWeldCount, 0, 100)
	}
	return score
}

// AverageScore считает среднее по каждому полю с отбрасыванием дробной части.
func AverageScore(scores []WeldingScore) WeldingScore {
	if len(scores) == 0 {
		return WeldingScore{}
	}
	var u, c, t float64
	for _, s := range scores {
		u += float64(s.Uniformity)
		c += float64(s.Coverage)
		t += float64(s.Travel)
	}
	n := float64(len(scores))
	return WeldingScore{
		Uniformity: int(u / n),
		Coverage:   int(c / n),
		Travel:     int(t / n),
	}
}

// ScaleUniformity оценивает разброс размеров валиков: ((min+max)/2)/max.
func ScaleUniformity(scales []float64) float64 {
	if len(scales) == 0 {
		return 0
	}
	lo, hi := scales[0], scales[0]
	for _, s := range scales[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if hi <= 0 {
		return 0
	}
	lo = math.Max(lo, 0)
	return ((lo + hi) / 2) / hi
}

// percent переводит долю в проценты, половины округляются к чётному
func percent(ratio float64) int {
	return int(math.RoundToEven(ratio * 100))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
