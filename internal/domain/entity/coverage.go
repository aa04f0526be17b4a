package entity

import "sync"

// CoverageAccumulator считает попадания луча в наплавку за проход
type CoverageAccumulator struct {
	mu    sync.RWMutex
	total int
	hits  int
}

// Reset обнуляет счётчики перед новым проходом
func (c *CoverageAccumulator) Reset() {
	c.mu.Lock()
	c.total, c.hits = 0, 0
	c.mu.Unlock()
}

// Record учитывает один замер
func (c *CoverageAccumulator) Record(hit bool) {
	c.mu.Lock()
	c.total++
	if hit {
		c.hits++
	}
	c.mu.Unlock()
}

func (c *CoverageAccumulator) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

func (c *CoverageAccumulator) Hits() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits
}

// Ratio возвращает долю попаданий, 0 если замеров не было
func (c *CoverageAccumulator) Ratio() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.total == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.total)
}
