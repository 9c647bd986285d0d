package tui

type View int

const (
	ViewDigest View = iota
	ViewReader
	ViewDates
)
