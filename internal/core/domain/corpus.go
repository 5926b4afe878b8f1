package domain

import "time"

// Split names an exported corpus partition.
type Split string

// Corpus splits.
const (
	// SplitTest is the held-out split. It receives exactly the first page.
	SplitTest Split = "test"

	// SplitTrain receives every page after the first.
	SplitTrain Split = "train"
)

// ExportReport summarises an export run.
type ExportReport struct {
	Pages     int
	TestRows  int64
	TrainRows int64
	Dir       string
}

// Rows returns the total number of exported pairs.
func (r ExportReport) Rows() int64 {
	return r.TestRows + r.TrainRows
}

// ExportProgress is reported every few pages during export.
type ExportProgress struct {
	Pages     int
	TestRows  int64
	TrainRows int64
	Cursor    ExportCursor
	At        time.Time
}
