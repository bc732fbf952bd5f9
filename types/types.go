// Package types contains shared data structures for baghchal-tui.
package types

// Cell markers as sent by the server inside the board grid.
const (
	Empty = ""
	Goat  = "G"
	Bagh  = "B"
)

// GoatQuota is the number of goats placed before the movement phase begins.
const GoatQuota = 20

// BoardSize is the side length of the Bagh-Chal board.
const BoardSize = 5

// GameSnapshot is a point-in-time view of a game as reported by the server.
// Board is indexed as Board[row][col] with values "", "G" or "B"; rows and
// columns are 0-indexed here but 1-indexed in move notation.
type GameSnapshot struct {
	Board         [][]string `json:"board"`
	Turn          string     `json:"turn"` // "G" or "B"
	GoatsPlaced   int        `json:"goats_placed"`
	GoatsCaptured int        `json:"goats_captured"`
	BaghsTrapped  int        `json:"baghs_trapped"`
	GameOver      bool       `json:"game_over"`
	Winner        string     `json:"winner,omitempty"`
	FEN           string     `json:"fen"`
	PGN           string     `json:"pgn"`
	PossibleMoves []string   `json:"possible_moves"`
	Message       string     `json:"message,omitempty"`
}

// At returns the cell marker at the given 1-indexed position.
// Out-of-range positions read as empty.
func (s *GameSnapshot) At(row, col int) string {
	if s == nil || row < 1 || col < 1 || row > len(s.Board) {
		return Empty
	}
	r := s.Board[row-1]
	if col > len(r) {
		return Empty
	}
	return r[col-1]
}

// PlacingPhase reports whether the side to move is still placing goats.
func (s *GameSnapshot) PlacingPhase() bool {
	return s != nil && s.Turn == Goat && s.GoatsPlaced < GoatQuota
}

// BoardPos is a 1-indexed position on the board.
type BoardPos struct {
	Row int
	Col int
}

// InBounds reports whether the position lies on the 5x5 board.
func (p BoardPos) InBounds() bool {
	return p.Row >= 1 && p.Row <= BoardSize && p.Col >= 1 && p.Col <= BoardSize
}

// Opponent returns the other side's marker.
func Opponent(side string) string {
	if side == Goat {
		return Bagh
	}
	return Goat
}
