package sensordb

// Database is an immutable, ordered collection of datasheets. It is safe for concurrent use.
type Database struct {
	datasheets []Datasheet
}

// NewDatabase returns a database over a copy of the given datasheets.
func NewDatabase(datasheets []Datasheet) *Database {
	return &Database{datasheets: append([]Datasheet(nil), datasheets...)}
}

// Len returns the number of datasheets.
func (db *Database) Len() int {
	if db == nil {
		return 0
	}
	return len(db.datasheets)
}

// Datasheets returns a copy of the table entries.
func (db *Database) Datasheets() []Datasheet {
	if db == nil {
		return nil
	}
	return append([]Datasheet(nil), db.datasheets...)
}

// LookupResult is the outcome of resolving a sensor width for a camera make/model.
type LookupResult struct {
	Datasheet Datasheet
	Found     bool
	// Unsure is set when the matching datasheet's model differs from the queried model, so the
	// match should be checked by a human.
	Unsure bool
}

// SensorWidth returns the matched width in millimeters, or -1 when nothing matched.
func (res LookupResult) SensorWidth() float64 {
	if !res.Found {
		return -1
	}
	return res.Datasheet.SensorWidth
}

// Lookup finds the datasheet for a camera make and model. An exact brand and model match is
// preferred; otherwise the first entry matching by brand word and digit-bearing model words is
// used and the result is flagged unsure if its model string differs from the query.
func (db *Database) Lookup(queryMake, queryModel string) LookupResult {
	if db == nil || (queryMake == "" && queryModel == "") {
		return LookupResult{}
	}
	for _, ds := range db.datasheets {
		if ds.Brand == queryMake && ds.Model == queryModel {
			return LookupResult{Datasheet: ds, Found: true}
		}
	}
	for _, ds := range db.datasheets {
		if ds.matches(queryMake, queryModel) {
			return LookupResult{Datasheet: ds, Found: true, Unsure: ds.Model != queryModel}
		}
	}
	return LookupResult{}
}
