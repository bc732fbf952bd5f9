package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"baghchal-tui/types"
)

func emptyBoard() [][]string {
	board := make([][]string, types.BoardSize)
	for i := range board {
		board[i] = make([]string, types.BoardSize)
	}
	return board
}

func placingSnapshot() *types.GameSnapshot {
	return &types.GameSnapshot{
		Board: emptyBoard(),
		Turn:  types.Goat,
	}
}

func movementSnapshot(turn string) *types.GameSnapshot {
	snap := &types.GameSnapshot{
		Board:       emptyBoard(),
		Turn:        turn,
		GoatsPlaced: types.GoatQuota,
	}
	snap.Board[1][1] = types.Goat // (2,2)
	snap.Board[0][0] = types.Bagh // (1,1)
	return snap
}

func pos(row, col int) types.BoardPos {
	return types.BoardPos{Row: row, Col: col}
}

func TestResolveClickPlacingPhase(t *testing.T) {
	snap := placingSnapshot()
	snap.Board[0][0] = types.Bagh

	res := ResolveClick(snap, nil, pos(3, 3))
	assert.Equal(t, ClickSubmit, res.Action)
	assert.Equal(t, "33", res.Token)

	res = ResolveClick(snap, nil, pos(1, 1))
	assert.Equal(t, ClickReject, res.Action)
	assert.Equal(t, "That point is occupied", res.Status)
}

func TestResolveClickMovementNoSelection(t *testing.T) {
	snap := movementSnapshot(types.Goat)

	// Own piece selects.
	res := ResolveClick(snap, nil, pos(2, 2))
	assert.Equal(t, ClickSelect, res.Action)
	assert.Equal(t, pos(2, 2), res.Pos)

	// Opposing piece is rejected.
	res = ResolveClick(snap, nil, pos(1, 1))
	assert.Equal(t, ClickReject, res.Action)
	assert.Equal(t, "Not your piece", res.Status)

	// Empty cell does nothing.
	res = ResolveClick(snap, nil, pos(4, 4))
	assert.Equal(t, ClickIgnore, res.Action)
}

func TestResolveClickMovementWithSelection(t *testing.T) {
	snap := movementSnapshot(types.Goat)
	snap.Board[2][2] = types.Goat // second goat at (3,3)
	sel := pos(2, 2)

	// Clicking the selection again deselects.
	res := ResolveClick(snap, &sel, pos(2, 2))
	assert.Equal(t, ClickDeselect, res.Action)

	// Clicking another own piece replaces the selection.
	res = ResolveClick(snap, &sel, pos(3, 3))
	assert.Equal(t, ClickSelect, res.Action)
	assert.Equal(t, pos(3, 3), res.Pos)

	// Clicking an empty cell submits a move token.
	res = ResolveClick(snap, &sel, pos(3, 2))
	assert.Equal(t, ClickSubmit, res.Action)
	assert.Equal(t, "2232", res.Token)

	// Clicking an opposing piece is an invalid destination.
	res = ResolveClick(snap, &sel, pos(1, 1))
	assert.Equal(t, ClickReject, res.Action)
	assert.Equal(t, "Invalid destination", res.Status)
}

func TestResolveClickBaghTurn(t *testing.T) {
	snap := movementSnapshot(types.Bagh)

	res := ResolveClick(snap, nil, pos(1, 1))
	assert.Equal(t, ClickSelect, res.Action)

	sel := pos(1, 1)
	res = ResolveClick(snap, &sel, pos(1, 2))
	assert.Equal(t, ClickSubmit, res.Action)
	assert.Equal(t, "1112", res.Token)
}

func TestResolveClickGoatStillPlacingBlocksMovement(t *testing.T) {
	// 19 of 20 goats placed: goat clicks still place, never select.
	snap := movementSnapshot(types.Goat)
	snap.GoatsPlaced = types.GoatQuota - 1

	res := ResolveClick(snap, nil, pos(4, 4))
	assert.Equal(t, ClickSubmit, res.Action)
	assert.Equal(t, "44", res.Token)

	res = ResolveClick(snap, nil, pos(2, 2))
	assert.Equal(t, ClickReject, res.Action)
}
