// Package game owns the client-side session state machine for a Bagh-Chal
// game: the authoritative live snapshot, the possibly older viewed snapshot
// used for history replay, the piece selection, and the single-request-at-a-
// time guard around every state-changing server call.
package game

import (
	"errors"
	"fmt"
	"sync"

	"baghchal-tui/api"
	"baghchal-tui/pgn"
	"baghchal-tui/types"
)

// ErrBusy is returned when a state-changing operation is attempted while
// another one is still in flight. The caller should simply drop the input;
// there is no queue deeper than one.
var ErrBusy = errors.New("another request is in flight")

// ErrNoGame is returned for operations that need an active session.
var ErrNoGame = errors.New("no active game")

// Remote is the server surface the session consumes. *api.Client implements
// it; tests substitute a fake.
type Remote interface {
	NewGame(mode string, difficulty int) (string, error)
	LoadGame(pgnText string) (string, error)
	GameState(gameID string) (*types.GameSnapshot, error)
	Move(gameID, token string) (*types.GameSnapshot, error)
	BotMove(gameID string) (*types.GameSnapshot, error)
	Undo(gameID string) (*types.GameSnapshot, error)
	Seek(gameID string, index int) (*types.GameSnapshot, error)
}

// View is a consistent read of the session for rendering. Snapshots are
// immutable once received, so sharing the pointers is safe.
type View struct {
	GameID      string
	Live        *types.GameSnapshot
	Viewed      *types.GameSnapshot
	Selection   *types.BoardPos
	ViewedIndex int
	TotalMoves  int
	Busy        bool
	Status      string
	Mode        string
	Difficulty  int
}

// AtLive reports whether the viewed position is the live one.
func (v View) AtLive() bool {
	return v.ViewedIndex == v.TotalMoves
}

// Session is the state machine. All exported operations are safe for
// concurrent use; state-changing ones serialize through the busy flag and
// return ErrBusy instead of waiting.
type Session struct {
	remote Remote

	mu          sync.Mutex
	busy        bool
	gameID      string
	mode        string
	difficulty  int
	live        *types.GameSnapshot
	viewed      *types.GameSnapshot
	viewedIndex int
	totalMoves  int
	selection   *types.BoardPos
	status      string

	onChange func()
}

// NewSession creates a session bound to a remote server.
func NewSession(remote Remote) *Session {
	return &Session{remote: remote}
}

// OnChange registers a callback invoked after every state mutation, outside
// the session lock. Used by the UI to schedule a redraw.
func (s *Session) OnChange(cb func()) {
	s.mu.Lock()
	s.onChange = cb
	s.mu.Unlock()
}

// View returns the current state for rendering.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		GameID:      s.gameID,
		Live:        s.live,
		Viewed:      s.viewed,
		Selection:   s.selection,
		ViewedIndex: s.viewedIndex,
		TotalMoves:  s.totalMoves,
		Busy:        s.busy,
		Status:      s.status,
		Mode:        s.mode,
		Difficulty:  s.difficulty,
	}
}

// NewGame starts a fresh game, discarding any previous session state.
func (s *Session) NewGame(mode string, difficulty int) error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	id, err := s.remote.NewGame(mode, difficulty)
	if err != nil {
		return s.fail(err)
	}
	s.adopt(id, mode, difficulty)
	if err := s.refresh(); err != nil {
		return s.fail(err)
	}
	s.setStatus("New game started")
	return nil
}

// LoadGame starts a session from a textual move record. The record is handed
// to the server verbatim; a rejection surfaces the server's reason.
func (s *Session) LoadGame(pgnText, mode string, difficulty int) error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	id, err := s.remote.LoadGame(pgnText)
	if err != nil {
		return s.fail(err)
	}
	s.adopt(id, mode, difficulty)
	if err := s.refresh(); err != nil {
		return s.fail(err)
	}
	s.setStatus("Game loaded")
	return nil
}

// SubmitMove sends a move token for the human player. The selection is
// cleared before the request goes out and is not restored on rejection. On
// success the live state is refreshed and, unless the game ended, the
// engine's reply is requested within the same busy window so the pair appears
// as one turn.
func (s *Session) SubmitMove(token string) error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	s.mu.Lock()
	s.selection = nil
	id := s.gameID
	s.mu.Unlock()
	s.notify()
	if id == "" {
		return ErrNoGame
	}

	snap, err := s.remote.Move(id, token)
	if err != nil {
		return s.fail(err)
	}
	s.setStatusFrom(snap)
	if err := s.refresh(); err != nil {
		return s.fail(err)
	}
	return s.engineReply(id)
}

// EngineMove manually requests an engine move, for positions where the engine
// is to move without a preceding human move (e.g. a freshly loaded record).
func (s *Session) EngineMove() error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	s.mu.Lock()
	id := s.gameID
	s.mu.Unlock()
	if id == "" {
		return ErrNoGame
	}
	return s.engineReply(id)
}

// engineReply runs the engine-move half of a turn. Caller must hold the busy
// flag. Skipped when the live position is already game over.
func (s *Session) engineReply(id string) error {
	s.mu.Lock()
	over := s.live != nil && s.live.GameOver
	s.mu.Unlock()
	if over {
		return nil
	}

	snap, err := s.remote.BotMove(id)
	if err != nil {
		return s.fail(err)
	}
	s.setStatusFrom(snap)
	if err := s.refresh(); err != nil {
		return s.fail(err)
	}
	return nil
}

// Undo takes back the last move on the live position. The server's returned
// snapshot replaces the live state directly and the view resyncs to the new
// tail.
func (s *Session) Undo() error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	s.mu.Lock()
	id := s.gameID
	s.mu.Unlock()
	if id == "" {
		return ErrNoGame
	}

	snap, err := s.remote.Undo(id)
	if err != nil {
		return s.fail(err)
	}
	if err := s.applyLive(snap); err != nil {
		return s.fail(err)
	}
	s.setStatus("Move undone")
	return nil
}

// Seek navigates the viewed position to target, clamped to [0, totalMoves].
// It never touches the live snapshot.
func (s *Session) Seek(target int) error {
	if !s.begin() {
		return ErrBusy
	}
	defer s.finish()

	s.mu.Lock()
	id := s.gameID
	total := s.totalMoves
	s.mu.Unlock()
	if id == "" {
		return ErrNoGame
	}

	if target < 0 {
		target = 0
	}
	if target > total {
		target = total
	}

	if err := s.seekSilent(id, target); err != nil {
		return s.fail(err)
	}
	if target == total {
		s.setStatus("Live position")
	} else {
		s.setStatus(fmt.Sprintf("Viewing move %d of %d", target, total))
	}
	return nil
}

// SeekRelative steps the viewed position by delta moves.
func (s *Session) SeekRelative(delta int) error {
	s.mu.Lock()
	target := s.viewedIndex + delta
	s.mu.Unlock()
	return s.Seek(target)
}

// SeekLive returns the view to the live position.
func (s *Session) SeekLive() error {
	s.mu.Lock()
	target := s.totalMoves
	s.mu.Unlock()
	return s.Seek(target)
}

// HandleClick resolves a click on the board. Interaction requires an active
// session viewed at the live position; while replaying history the click only
// produces a reminder, never a move. Submissions run synchronously, so the UI
// calls this from a goroutine.
func (s *Session) HandleClick(pos types.BoardPos) {
	s.mu.Lock()
	if s.gameID == "" || s.viewed == nil || s.viewed.GameOver || !pos.InBounds() {
		s.mu.Unlock()
		return
	}
	if s.viewedIndex != s.totalMoves {
		s.status = fmt.Sprintf("Viewing move %d of %d — return to the live position to play",
			s.viewedIndex, s.totalMoves)
		s.mu.Unlock()
		s.notify()
		return
	}

	res := ResolveClick(s.viewed, s.selection, pos)
	var token string
	switch res.Action {
	case ClickSelect:
		p := res.Pos
		s.selection = &p
	case ClickDeselect:
		s.selection = nil
	case ClickReject:
		s.status = res.Status
	case ClickSubmit:
		s.selection = nil
		token = res.Token
	}
	s.mu.Unlock()
	s.notify()

	if token != "" {
		_ = s.SubmitMove(token)
	}
}

// ClearSelection drops the current selection, if any.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	s.selection = nil
	s.mu.Unlock()
	s.notify()
}

// SaveRecord writes the live game's move record to dir and returns the path.
func (s *Session) SaveRecord(dir string) (string, error) {
	s.mu.Lock()
	live := s.live
	mode := s.mode
	difficulty := s.difficulty
	s.mu.Unlock()
	if live == nil {
		return "", ErrNoGame
	}
	path, err := pgn.SaveRecord(dir, live.PGN, mode, difficulty, live.Winner)
	if err != nil {
		return "", err
	}
	s.setStatus("Game saved")
	return path, nil
}

// refresh implements the resync protocol: fetch the live position, recount
// moves from its record, then silently seek the view to the tail. This is the
// only path that advances viewedIndex to follow new moves.
func (s *Session) refresh() error {
	s.mu.Lock()
	id := s.gameID
	s.mu.Unlock()

	snap, err := s.remote.GameState(id)
	if err != nil {
		return err
	}
	return s.applyLive(snap)
}

// applyLive installs snap as the live position and resyncs the view.
func (s *Session) applyLive(snap *types.GameSnapshot) error {
	s.mu.Lock()
	s.live = snap
	s.totalMoves = len(pgn.ParseMoveList(snap.PGN))
	if s.viewedIndex > s.totalMoves {
		s.viewedIndex = s.totalMoves
	}
	id := s.gameID
	target := s.totalMoves
	s.mu.Unlock()
	s.notify()
	return s.seekSilent(id, target)
}

// seekSilent fetches a history position without the busy toggle or a status
// message; it runs only inside an already-busy operation.
func (s *Session) seekSilent(id string, target int) error {
	snap, err := s.remote.Seek(id, target)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.viewed = snap
	s.viewedIndex = target
	s.mu.Unlock()
	s.notify()
	return nil
}

// adopt resets session state around a newly created or loaded game id.
func (s *Session) adopt(id, mode string, difficulty int) {
	s.mu.Lock()
	s.gameID = id
	s.mode = mode
	s.difficulty = difficulty
	s.live = nil
	s.viewed = nil
	s.viewedIndex = 0
	s.totalMoves = 0
	s.selection = nil
	s.status = ""
	s.mu.Unlock()
	s.notify()
}

// begin claims the busy flag. Returns false if another operation holds it.
func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

// finish releases the busy flag. Runs deferred so the flag clears on every
// outcome, including transport failures.
func (s *Session) finish() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	s.notify()
}

// fail records a user-facing reason for err and passes it through.
func (s *Session) fail(err error) error {
	s.setStatus(userReason(err))
	return err
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	s.status = msg
	s.mu.Unlock()
	s.notify()
}

// setStatusFrom surfaces the server's advisory message, when it sent one.
func (s *Session) setStatusFrom(snap *types.GameSnapshot) {
	if snap != nil && snap.Message != "" {
		s.setStatus(snap.Message)
	}
}

// notify invokes the change callback outside the lock.
func (s *Session) notify() {
	s.mu.Lock()
	cb := s.onChange
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// userReason maps an operation error to the status line. Server rejections
// carry their reason verbatim; transport failures get a generic message and
// stay in the debug log only.
func userReason(err error) string {
	var illegal *api.IllegalMoveError
	var history *api.InvalidHistoryError
	var undo *api.NothingToUndoError
	var seek *api.SeekOutOfRangeError
	var remote *api.RemoteError
	switch {
	case errors.As(err, &illegal),
		errors.As(err, &history),
		errors.As(err, &undo),
		errors.As(err, &seek),
		errors.As(err, &remote):
		return err.Error()
	default:
		return "Cannot reach server"
	}
}
