package game

import (
	"baghchal-tui/pgn"
	"baghchal-tui/types"
)

// ClickAction is what a board click resolves to.
type ClickAction int

const (
	// ClickIgnore does nothing (e.g. empty cell with nothing selected).
	ClickIgnore ClickAction = iota
	// ClickSelect selects the clicked piece (or replaces the selection).
	ClickSelect
	// ClickDeselect clears the selection (clicked the selected piece again).
	ClickDeselect
	// ClickSubmit submits the Token and clears the selection.
	ClickSubmit
	// ClickReject reports Status and leaves the selection unchanged.
	ClickReject
)

// ClickResult is the resolved outcome of a single board click.
type ClickResult struct {
	Action ClickAction
	Token  string         // set for ClickSubmit
	Status string         // set for ClickReject
	Pos    types.BoardPos // set for ClickSelect
}

// ResolveClick maps a click on the live position to an action, keyed by game
// phase, current selection and the clicked cell's occupant. It performs only
// advisory checks (occupancy and turn); legality is the server's call.
//
// During the goat-placing phase every empty cell is a placement. In the
// movement phase a click either picks up a piece of the side to move, drops
// the selected piece on an empty cell, or is rejected.
func ResolveClick(snap *types.GameSnapshot, sel *types.BoardPos, pos types.BoardPos) ClickResult {
	occupant := snap.At(pos.Row, pos.Col)

	if snap.PlacingPhase() {
		if occupant == types.Empty {
			return ClickResult{Action: ClickSubmit, Token: pgn.EncodePlacement(pos.Row, pos.Col)}
		}
		return ClickResult{Action: ClickReject, Status: "That point is occupied"}
	}

	if sel == nil {
		switch occupant {
		case snap.Turn:
			return ClickResult{Action: ClickSelect, Pos: pos}
		case types.Empty:
			return ClickResult{Action: ClickIgnore}
		default:
			return ClickResult{Action: ClickReject, Status: "Not your piece"}
		}
	}

	if *sel == pos {
		return ClickResult{Action: ClickDeselect}
	}

	switch occupant {
	case snap.Turn:
		return ClickResult{Action: ClickSelect, Pos: pos}
	case types.Empty:
		return ClickResult{Action: ClickSubmit, Token: pgn.EncodeMove(sel.Row, sel.Col, pos.Row, pos.Col)}
	default:
		return ClickResult{Action: ClickReject, Status: "Invalid destination"}
	}
}
