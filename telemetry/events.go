// Package telemetry provides population statistics and CSV experiment output.
package telemetry

// PredationRecord is one row of predations.csv.
type PredationRecord struct {
	Tick      int     `csv:"tick"`
	EaterID   uint32  `csv:"eater_id"`
	PreyID    uint32  `csv:"prey_id"`
	PreySize  int     `csv:"prey_size"`
	EaterSize int     `csv:"eater_size"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
}
