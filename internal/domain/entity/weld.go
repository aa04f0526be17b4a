package entity

import "time"

// Параметры оценки сварки
const (
	IdealTravelTime    = 0.419 // эталонное время проводки, сек
	MinSegmentDuration = 0.1   // минимальное время на сегмент пути, сек
	MinTravelSamples   = 11    // минимум замеров проводки для оценки
	ProbeGap           = 0.1   // отступ луча над точкой замера

	DefaultScanDuration = 2.0 // время сканирования панели по умолчанию, сек
)

// Тайминги анимации подачи панели (только для уведомлений)
const (
	PresentLift = 800 * time.Millisecond
	PresentDrop = 250 * time.Millisecond
)

// SurfaceCategory категория поверхности для запросов касания
type SurfaceCategory string

const (
	SurfaceNone         SurfaceCategory = ""
	SurfaceWeldMaterial SurfaceCategory = "weld-material" // наплавленный металл
	SurfacePanel        SurfaceCategory = "panel"         // основной металл
	SurfaceDefect       SurfaceCategory = "defect"
)
