// Package pgn handles the compact move notation used by the Bagh-Chal server
// and reads/writes saved game records.
//
// A token is either a placement ("23" = row 2, column 3) or a move
// ("2334" = from 2,3 to 3,4), optionally prefixed by the side letter in
// server-produced records ("G23", "B1122"). Rows and columns are 1-indexed.
package pgn

import (
	"strconv"
	"strings"
)

// ParseMoveList splits a textual move record into individual move tokens.
// Whitespace separates tokens; empty tokens and move-number labels such as
// "1." are dropped. An empty or all-whitespace record yields no tokens.
func ParseMoveList(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasSuffix(f, ".") {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// EncodePlacement returns the wire token for placing a piece at row, col.
func EncodePlacement(row, col int) string {
	return strconv.Itoa(row) + strconv.Itoa(col)
}

// EncodeMove returns the wire token for moving a piece between two positions.
func EncodeMove(fromRow, fromCol, toRow, toCol int) string {
	return EncodePlacement(fromRow, fromCol) + EncodePlacement(toRow, toCol)
}
