package pgn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoveList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t ", nil},
		{"plain tokens", "12 2334", []string{"12", "2334"}},
		{"numbered record", "1. G11 B1523 2. G22", []string{"G11", "B1523", "G22"}},
		{"mixed whitespace", "G11\nB1523\t G22", []string{"G11", "B1523", "G22"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoveList(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoveListIdempotent(t *testing.T) {
	tokens := ParseMoveList("1. G11 B1523 2. G22")
	again := ParseMoveList(strings.Join(tokens, " "))
	assert.Equal(t, tokens, again)
}

func TestEncodePlacement(t *testing.T) {
	assert.Equal(t, "23", EncodePlacement(2, 3))
	assert.Equal(t, "11", EncodePlacement(1, 1))
	assert.Equal(t, "55", EncodePlacement(5, 5))
}

func TestEncodeMove(t *testing.T) {
	assert.Equal(t, "2334", EncodeMove(2, 3, 3, 4))
	assert.Equal(t, "1122", EncodeMove(1, 1, 2, 2))
}
