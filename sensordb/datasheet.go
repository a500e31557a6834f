// Package sensordb holds the camera sensor width reference table and the brand/model lookup
// used to convert focal lengths from millimeters to pixels.
package sensordb

import (
	"strings"
	"unicode"
)

// Datasheet is one entry of the sensor table.
type Datasheet struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	// SensorWidth is the physical sensor width in millimeters.
	SensorWidth float64 `json:"sensor_width_mm"`
}

// matches reports whether the queried make/model designates this datasheet. The query make may
// hold several words, one of which must equal the brand. Every word of the query model that
// carries a digit must be one of the words of the datasheet model. Comparisons ignore case.
func (ds Datasheet) matches(queryMake, queryModel string) bool {
	brand := strings.ToLower(ds.Brand)
	for _, makeWord := range strings.Split(queryMake, " ") {
		if strings.ToLower(makeWord) != brand {
			continue
		}
		if modelWordsFound(queryModel, ds.Model) {
			return true
		}
	}
	return false
}

func modelWordsFound(queryModel, datasheetModel string) bool {
	datasheetWords := strings.Split(strings.ToLower(datasheetModel), " ")
	for _, word := range strings.Split(strings.ToLower(queryModel), " ") {
		if !strings.ContainsFunc(word, unicode.IsDigit) {
			continue
		}
		found := false
		for _, dsWord := range datasheetWords {
			if dsWord == word {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
