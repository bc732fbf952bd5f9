package api

import "fmt"

// RemoteError is a non-success response that carries no more specific meaning.
type RemoteError struct {
	Op     string
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	}
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
}

// IllegalMoveError is the server rejecting a submitted move.
// Reason is the server's detail text, shown to the player verbatim.
type IllegalMoveError struct {
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return e.Reason
}

// InvalidHistoryError is the server rejecting a supplied move record.
type InvalidHistoryError struct {
	Reason string
}

func (e *InvalidHistoryError) Error() string {
	return e.Reason
}

// NothingToUndoError is the server refusing to undo, typically because no
// moves have been made.
type NothingToUndoError struct {
	Reason string
}

func (e *NothingToUndoError) Error() string {
	return e.Reason
}

// SeekOutOfRangeError is the server rejecting a history index. The client
// clamps before seeking, so this only fires when its move count is stale.
type SeekOutOfRangeError struct {
	Index  int
	Reason string
}

func (e *SeekOutOfRangeError) Error() string {
	return e.Reason
}
