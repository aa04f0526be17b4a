package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"weld-score/internal/domain/entity"
)

// Vec3 точка в файле раскладки: [x, y, z]
type Vec3 [3]float64

func (v Vec3) Vec() r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// BoxSpec поверхность панели в виде параллелепипеда
type BoxSpec struct {
	Min     Vec3   `yaml:"min"`
	Max     Vec3   `yaml:"max"`
	Surface string `yaml:"surface"` // по умолчанию weld-material
}

// Category возвращает категорию поверхности
func (b BoxSpec) Category() entity.SurfaceCategory {
	if b.Surface == "" {
		return entity.SurfaceWeldMaterial
	}
	return entity.SurfaceCategory(b.Surface)
}

// MarkerSpec маркер (или несколько одинаковых) на панели
type MarkerSpec struct {
	Kind         string  `yaml:"kind"`
	Scale        float64 `yaml:"scale"`
	InGoodRegion bool    `yaml:"in_good_region"`
	Count        int     `yaml:"count"` // 0 считается как 1
}

// PanelSpec описание панели в файле раскладки
type PanelSpec struct {
	Name         string       `yaml:"name"`
	WeldType     string       `yaml:"weld_type"`
	ScanDuration float64      `yaml:"scan_duration"`
	ScanUp       *Vec3        `yaml:"scan_up"`
	Waypoints    []Vec3       `yaml:"waypoints"`
	Surfaces     []BoxSpec    `yaml:"surfaces"`
	Markers      []MarkerSpec `yaml:"markers"`
}

type panelsFile struct {
	Panels []PanelSpec `yaml:"panels"`
}

// LoadPanels читает раскладку панелей из yaml-файла
func LoadPanels(path string) ([]PanelSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read panels file: %w", err)
	}
	return ParsePanels(data)
}

// ParsePanels разбирает и проверяет раскладку панелей
func ParsePanels(data []byte) ([]PanelSpec, error) {
	var file panelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse panels file: %w", err)
	}
	for i, p := range file.Panels {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i, p.Name, err)
		}
	}
	return file.Panels, nil
}

func (p PanelSpec) validate() error {
	if _, err := entity.ParseWeldType(p.WeldType); err != nil {
		return err
	}
	if p.ScanDuration < 0 {
		return errors.New("scan_duration must not be negative")
	}
	if p.ScanUp != nil && p.ScanUp.Vec() == (r3.Vec{}) {
		return errors.New("scan_up must not be zero")
	}
	for _, m := range p.Markers {
		switch entity.MarkerKind(m.Kind) {
		case entity.MarkerWeldMaterial, entity.MarkerHole, entity.MarkerDefectGroup:
		default:
			return fmt.Errorf("unknown marker kind %q", m.Kind)
		}
		if m.Count < 0 {
			return errors.New("marker count must not be negative")
		}
	}
	return nil
}

// Panel создаёт панель с маркерами из описания
func (p PanelSpec) Panel() (*entity.Panel, error) {
	weldType, err := entity.ParseWeldType(p.WeldType)
	if err != nil {
		return nil, err
	}

	waypoints := make([]r3.Vec, 0, len(p.Waypoints))
	for _, w := range p.Waypoints {
		waypoints = append(waypoints, w.Vec())
	}

	panel := entity.NewPanel(p.Name, weldType, waypoints)
	if p.ScanDuration > 0 {
		panel.ScanDuration = p.ScanDuration
	}
	if p.ScanUp != nil {
		panel.ScanUp = p.ScanUp.Vec()
	}
	for _, m := range p.Markers {
		for n := max(m.Count, 1); n > 0; n-- {
			marker := entity.NewMarker(entity.MarkerKind(m.Kind), m.Scale)
			marker.InGoodRegion = m.InGoodRegion
			panel.Markers.Add(marker)
		}
	}
	return panel, nil
}
