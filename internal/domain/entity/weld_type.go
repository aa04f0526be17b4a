package entity

import (
	"fmt"
	"strings"
)

// WeldType тип сварного соединения панели
type WeldType int

const (
	WeldTypeNone WeldType = iota

	// Угловые швы
	WeldTypeF1
	WeldTypeF2
	WeldTypeF3
	WeldTypeF4
	WeldTypeF5
	WeldTypeF6

	// Стыковые швы
	WeldTypeG1
	WeldTypeG2
	WeldTypeG3
	WeldTypeG4
	WeldTypeG5
	WeldTypeG6
)

var weldTypeNames = map[WeldType]string{
	WeldTypeF1: "1F", WeldTypeF2: "2F", WeldTypeF3: "3F",
	WeldTypeF4: "4F", WeldTypeF5: "5F", WeldTypeF6: "6F",
	WeldTypeG1: "1G", WeldTypeG2: "2G", WeldTypeG3: "3G",
	WeldTypeG4: "4G", WeldTypeG5: "5G", WeldTypeG6: "6G",
}

// DisplayName возвращает подпись для панели ("1F", "2G", ...)
func (t WeldType) DisplayName() string {
	if name, ok := weldTypeNames[t]; ok {
		return name
	}
	return "None"
}

func (t WeldType) String() string {
	return t.DisplayName()
}

// ParseWeldType принимает как "1F", так и "F1"
func ParseWeldType(s string) (WeldType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NONE" {
		return WeldTypeNone, nil
	}
	for t, name := range weldTypeNames {
		if s == name || s == string(name[1])+string(name[0]) {
			return t, nil
		}
	}
	return WeldTypeNone, fmt.Errorf("unknown weld type %q", s)
}
