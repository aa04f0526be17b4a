package entity

// BeadArea область валика, найденная на фото панели
type BeadArea struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
	Area   int // площадь области в пикселях
}

// Center возвращает координаты центра валика
func (b BeadArea) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// BeadInspection итог анализа фото панели
type BeadInspection struct {
	ImageWidth  int        // ширина изображения
	ImageHeight int        // высота изображения
	Beads       []BeadArea // найденные валики
}

// Markers переводит валики в маркеры наплавки.
// Размер маркера равен ширине валика относительно самого широкого.
func (r *BeadInspection) Markers() []Marker {
	widest := 0
	for _, b := range r.Beads {
		widest = max(widest, b.Width)
	}
	if widest == 0 {
		return nil
	}
	markers := make([]Marker, 0, len(r.Beads))
	for _, b := range r.Beads {
		markers = append(markers, NewMarker(MarkerWeldMaterial, float64(b.Width)/float64(widest)))
	}
	return markers
}
