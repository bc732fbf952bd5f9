package game

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baghchal-tui/api"
	"baghchal-tui/pgn"
	"baghchal-tui/types"
)

// fakeRemote simulates the server: it appends accepted moves to a record and
// serves snapshots derived from it. Every call is logged for assertions.
type fakeRemote struct {
	mu    sync.Mutex
	calls []string
	moves []string

	board       [][]string
	turn        string
	goatsPlaced int
	gameOver    bool
	winner      string

	createErr error
	loadErr   error
	stateErr  error
	moveErr   error
	botErr    error
	undoErr   error
	seekErr   error

	gameOverOnMove bool

	moveStarted chan struct{} // closed when Move is first entered
	moveRelease chan struct{} // when non-nil, Move blocks until closed
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		board: emptyBoard(),
		turn:  types.Goat,
	}
}

func (f *fakeRemote) log(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeRemote) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) snapshotAt(n int) *types.GameSnapshot {
	return &types.GameSnapshot{
		Board:       f.board,
		Turn:        f.turn,
		GoatsPlaced: f.goatsPlaced,
		GameOver:    f.gameOver && n == len(f.moves),
		Winner:      f.winner,
		PGN:         strings.Join(f.moves[:n], " "),
	}
}

func (f *fakeRemote) NewGame(mode string, difficulty int) (string, error) {
	f.log("new")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	f.moves = nil
	f.mu.Unlock()
	return "game-1", nil
}

func (f *fakeRemote) LoadGame(pgnText string) (string, error) {
	f.log("load")
	if f.loadErr != nil {
		return "", f.loadErr
	}
	f.mu.Lock()
	f.moves = pgn.ParseMoveList(pgnText)
	f.mu.Unlock()
	return "game-2", nil
}

func (f *fakeRemote) GameState(gameID string) (*types.GameSnapshot, error) {
	f.log("state")
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotAt(len(f.moves)), nil
}

func (f *fakeRemote) Move(gameID, token string) (*types.GameSnapshot, error) {
	f.log("move " + token)
	f.mu.Lock()
	started := f.moveStarted
	release := f.moveRelease
	f.moveStarted = nil
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	f.mu.Lock()
	f.moves = append(f.moves, token)
	if f.gameOverOnMove {
		f.gameOver = true
	}
	defer f.mu.Unlock()
	return f.snapshotAt(len(f.moves)), nil
}

func (f *fakeRemote) BotMove(gameID string) (*types.GameSnapshot, error) {
	f.log("bot")
	if f.botErr != nil {
		return nil, f.botErr
	}
	f.mu.Lock()
	f.moves = append(f.moves, "R"+fmt.Sprint(len(f.moves)))
	defer f.mu.Unlock()
	return f.snapshotAt(len(f.moves)), nil
}

func (f *fakeRemote) Undo(gameID string) (*types.GameSnapshot, error) {
	f.log("undo")
	if f.undoErr != nil {
		return nil, f.undoErr
	}
	f.mu.Lock()
	if len(f.moves) > 0 {
		f.moves = f.moves[:len(f.moves)-1]
	}
	defer f.mu.Unlock()
	return f.snapshotAt(len(f.moves)), nil
}

func (f *fakeRemote) Seek(gameID string, index int) (*types.GameSnapshot, error) {
	f.log(fmt.Sprintf("seek %d", index))
	if f.seekErr != nil {
		return nil, f.seekErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if index < 0 || index > len(f.moves) {
		return nil, &api.SeekOutOfRangeError{Index: index, Reason: "Index out of range"}
	}
	return f.snapshotAt(index), nil
}

func startedSession(t *testing.T, f *fakeRemote) *Session {
	t.Helper()
	s := NewSession(f)
	require.NoError(t, s.NewGame("PvC", 3))
	return s
}

func TestNewGameResyncsToLive(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)

	v := s.View()
	assert.Equal(t, "game-1", v.GameID)
	assert.Equal(t, 0, v.TotalMoves)
	assert.Equal(t, 0, v.ViewedIndex)
	assert.True(t, v.AtLive())
	assert.False(t, v.Busy)
	assert.NotNil(t, v.Viewed)
	assert.Equal(t, []string{"new", "state", "seek 0"}, f.callLog())
}

func TestSubmitMoveChainsEngineReply(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)

	require.NoError(t, s.SubmitMove("33"))

	v := s.View()
	assert.Equal(t, 2, v.TotalMoves, "human move plus engine reply")
	assert.Equal(t, 2, v.ViewedIndex)
	assert.True(t, v.AtLive())
	assert.Equal(t, []string{
		"new", "state", "seek 0",
		"move 33", "state", "seek 1",
		"bot", "state", "seek 2",
	}, f.callLog())
}

func TestSubmitMoveSkipsEngineReplyWhenGameOver(t *testing.T) {
	f := newFakeRemote()
	f.gameOverOnMove = true
	f.winner = types.Goat
	s := startedSession(t, f)

	require.NoError(t, s.SubmitMove("33"))

	assert.NotContains(t, f.callLog(), "bot")
	v := s.View()
	assert.Equal(t, 1, v.TotalMoves)
	assert.True(t, v.AtLive())
	assert.True(t, v.Live.GameOver)
}

func TestSubmitMoveRejectedSurfacesReason(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	f.moveErr = &api.IllegalMoveError{Reason: "Invalid move: point occupied"}

	err := s.SubmitMove("11")
	var illegal *api.IllegalMoveError
	require.ErrorAs(t, err, &illegal)

	v := s.View()
	assert.Equal(t, "Invalid move: point occupied", v.Status)
	assert.Nil(t, v.Selection)
	assert.False(t, v.Busy)
	assert.Equal(t, 0, v.TotalMoves, "rejected move mutates nothing")
	assert.NotContains(t, f.callLog(), "bot")
}

func TestOverlappingSubmitMoveIsNoOp(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)

	f.mu.Lock()
	f.moveStarted = make(chan struct{})
	f.moveRelease = make(chan struct{})
	started := f.moveStarted
	release := f.moveRelease
	f.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.SubmitMove("33")
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first move never reached the server")
	}

	assert.True(t, s.View().Busy)
	err := s.SubmitMove("44")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	moveCalls := 0
	for _, c := range f.callLog() {
		if strings.HasPrefix(c, "move ") {
			moveCalls++
		}
	}
	assert.Equal(t, 1, moveCalls, "second submit must not issue a network call")
	assert.Equal(t, 2, s.View().TotalMoves)
}

func TestSeekClampsTarget(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	require.NoError(t, s.SubmitMove("33")) // two moves after engine reply

	require.NoError(t, s.Seek(99))
	v := s.View()
	assert.Equal(t, 2, v.ViewedIndex)
	assert.Contains(t, f.callLog(), "seek 2")

	require.NoError(t, s.Seek(-5))
	v = s.View()
	assert.Equal(t, 0, v.ViewedIndex)
	assert.GreaterOrEqual(t, v.ViewedIndex, 0)
	assert.LessOrEqual(t, v.ViewedIndex, v.TotalMoves)
}

func TestSeekNeverTouchesLive(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	require.NoError(t, s.SubmitMove("33"))

	before := s.View().Live
	require.NoError(t, s.Seek(1))

	v := s.View()
	assert.Equal(t, 1, v.ViewedIndex)
	assert.Equal(t, 2, v.TotalMoves)
	assert.Same(t, before, v.Live)
	assert.False(t, v.AtLive())
}

func TestHandleClickWhileViewingHistory(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	require.NoError(t, s.SubmitMove("33"))
	require.NoError(t, s.Seek(1))

	callsBefore := len(f.callLog())
	s.HandleClick(types.BoardPos{Row: 3, Col: 3})

	assert.Len(t, f.callLog(), callsBefore, "history view must not issue remote calls")
	assert.Contains(t, s.View().Status, "return to the live position")
}

func TestHandleClickPlacementSubmitsToken(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)

	s.HandleClick(types.BoardPos{Row: 3, Col: 3})

	assert.Contains(t, f.callLog(), "move 33")
	assert.Nil(t, s.View().Selection)
}

func TestHandleClickMovementSelectThenSubmit(t *testing.T) {
	f := newFakeRemote()
	f.goatsPlaced = types.GoatQuota
	f.board[1][1] = types.Goat // goat at (2,2)
	s := startedSession(t, f)

	s.HandleClick(types.BoardPos{Row: 2, Col: 2})
	v := s.View()
	require.NotNil(t, v.Selection)
	assert.Equal(t, types.BoardPos{Row: 2, Col: 2}, *v.Selection)
	assert.NotContains(t, f.callLog(), "move 22")

	s.HandleClick(types.BoardPos{Row: 3, Col: 2})
	assert.Contains(t, f.callLog(), "move 2232")
	assert.Nil(t, s.View().Selection)
}

func TestHandleClickIgnoredWithoutSession(t *testing.T) {
	f := newFakeRemote()
	s := NewSession(f)

	s.HandleClick(types.BoardPos{Row: 3, Col: 3})

	assert.Empty(t, f.callLog())
}

func TestUndoNothingToUndo(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	f.undoErr = &api.NothingToUndoError{Reason: "No moves to undo"}

	before := s.View()
	err := s.Undo()
	var undo *api.NothingToUndoError
	require.ErrorAs(t, err, &undo)

	v := s.View()
	assert.Equal(t, before.TotalMoves, v.TotalMoves)
	assert.Equal(t, before.ViewedIndex, v.ViewedIndex)
	assert.Equal(t, "No moves to undo", v.Status)
	assert.False(t, v.Busy)
}

func TestUndoResyncsToNewTail(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	require.NoError(t, s.SubmitMove("33")) // totalMoves now 2

	require.NoError(t, s.Undo())

	v := s.View()
	assert.Equal(t, 1, v.TotalMoves)
	assert.Equal(t, 1, v.ViewedIndex)
	assert.True(t, v.AtLive())
}

func TestLoadGameAdoptsRecord(t *testing.T) {
	f := newFakeRemote()
	s := NewSession(f)

	require.NoError(t, s.LoadGame("1. G11 B1523 2. G22", "PvC", 2))

	v := s.View()
	assert.Equal(t, "game-2", v.GameID)
	assert.Equal(t, 3, v.TotalMoves)
	assert.Equal(t, 3, v.ViewedIndex)
	assert.True(t, v.AtLive())
}

func TestLoadGameRejectedSurfacesReason(t *testing.T) {
	f := newFakeRemote()
	f.loadErr = &api.InvalidHistoryError{Reason: "Illegal move at position 2"}
	s := NewSession(f)

	err := s.LoadGame("garbage", "PvC", 2)
	var invalid *api.InvalidHistoryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Illegal move at position 2", s.View().Status)
	assert.Equal(t, "", s.View().GameID)
}

func TestTransportFailureGetsGenericStatus(t *testing.T) {
	f := newFakeRemote()
	s := startedSession(t, f)
	f.moveErr = fmt.Errorf("move: %w", errConnRefused)

	err := s.SubmitMove("33")
	require.Error(t, err)
	assert.Equal(t, "Cannot reach server", s.View().Status)
	assert.False(t, s.View().Busy)
}

var errConnRefused = fmt.Errorf("dial tcp 127.0.0.1:8000: connect: connection refused")
