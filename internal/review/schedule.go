package review

// Intervals defines the expanding review schedule in days.
// Index 0 means eligible again immediately.
var Intervals = []int{0, 1, 3, 7, 14}

// MaxIntervalIndex is the highest index into Intervals.
const MaxIntervalIndex = 4
