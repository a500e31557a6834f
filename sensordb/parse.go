package sensordb

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ParseDatabase reads a sensor table file. See ParseDatabaseReader for the format.
func ParseDatabase(path string) (*Database, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening sensor database")
	}
	defer utils.UncheckedErrorFunc(f.Close)
	db, err := ParseDatabaseReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sensor database %q", path)
	}
	return db, nil
}

// ParseDatabaseReader reads `brand;model;sensorWidthMM` records, one per line. Extra trailing
// fields (e.g. the source of the measurement) are ignored, as are blank lines and lines starting
// with '#'.
func ParseDatabaseReader(r io.Reader) (*Database, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var datasheets []Datasheet
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 3 {
			return nil, errors.Errorf("line %d: expected brand;model;sensor width, got %q", line, strings.Join(record, ";"))
		}
		width, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid sensor width", line)
		}
		if width <= 0 {
			return nil, errors.Errorf("line %d: sensor width must be positive, got %v", line, width)
		}
		datasheets = append(datasheets, Datasheet{
			Brand:       strings.TrimSpace(record[0]),
			Model:       strings.TrimSpace(record[1]),
			SensorWidth: width,
		})
	}
	return NewDatabase(datasheets), nil
}
