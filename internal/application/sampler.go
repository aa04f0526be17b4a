package app

import (
	"context"
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"weld-score/internal/domain/entity"
	"weld-score/internal/domain/port"
)

// Sample точка пути сканера на очередном кадре
type Sample struct {
	Position r3.Vec
	Segment  int     // индекс сегмента пути
	Progress float64 // положение внутри сегмента, 0..1
}

// SamplePath ведёт сканер по ломаной за duration секунд, по одной точке на кадр.
// Время делится между сегментами пропорционально длине, но не меньше
// MinSegmentDuration на сегмент, поэтому полный проход может быть чуть длиннее duration.
// Меньше двух точек даёт пустую последовательность.
func SamplePath(ctx context.Context, waypoints []r3.Vec, duration float64, clock port.FrameClock) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if len(waypoints) < 2 {
			return
		}

		lengths := make([]float64, len(waypoints)-1)
		var total float64
		for i := range lengths {
			lengths[i] = r3.Norm(r3.Sub(waypoints[i+1], waypoints[i]))
			total += lengths[i]
		}

		for i, length := range lengths {
			segmentTime := entity.MinSegmentDuration
			if total > 0 {
				segmentTime = math.Max(duration*length/total, entity.MinSegmentDuration)
			}
			start, end := waypoints[i], waypoints[i+1]

			for t := 0.0; t < 1; {
				dt, err := clock.Next(ctx)
				if err != nil {
					return
				}
				t = math.Min(t+dt/segmentTime, 1)
				if !yield(Sample{Position: lerp(start, end, t), Segment: i, Progress: t}) {
					return
				}
			}
		}
	}
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
