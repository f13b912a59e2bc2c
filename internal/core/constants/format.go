package constants

const (
	// HandIDOffset is where the target header expects the hand number,
	// right after "PokerStars Hand #".
	HandIDOffset = 17

	// MaxSeatsLabel is appended to every table header.
	MaxSeatsLabel = "8-max"

	// TrailerLines is the number of blank lines separating hands.
	TrailerLines = 3

	// OutputExt is the extension of per-table export files.
	OutputExt = ".txt"
)
