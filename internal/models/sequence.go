package model

// Sequence is a named counter keyed by model+field (e.g. Task/taskid).
// Exactly one row exists per key; its atomic increment is the only source
// of numeric suffixes for generated task identifiers.
type Sequence struct {
	Model string `gorm:"primaryKey;size:64"`
	Field string `gorm:"primaryKey;size:64"`
	Seq   int64  `gorm:"not null;default:0"`
}
