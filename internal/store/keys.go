package store

// Logical keys for the engine's persisted state. Option levels are not
// stored: they are replayed from history on load.
const (
	KeyHistory        = "history"
	KeyOptionFloors   = "optionFloors"
	KeyReviewSchedule = "reviewSchedule"
	KeySessionLength  = "sessionLength"
)
