package pgn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GameInfo holds a saved game: metadata plus the move record itself.
// The PGN text is what gets handed back to the server's load endpoint.
type GameInfo struct {
	FilePath   string `json:"-"`
	FileName   string `json:"-"`
	Date       string `json:"date"`
	Mode       string `json:"mode"`
	Difficulty int    `json:"difficulty"`
	Result     string `json:"result"` // "G", "B" or "" while unfinished
	MoveCount  int    `json:"move_count"`
	PGN        string `json:"pgn"`
}

// SaveRecord writes a game record to dir and returns the file path.
// The move count and date are derived, not taken from the caller.
func SaveRecord(dir, pgnText, mode string, difficulty int, result string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}

	now := time.Now()
	info := GameInfo{
		Date:       now.Format("2006-01-02"),
		Mode:       mode,
		Difficulty: difficulty,
		Result:     result,
		MoveCount:  len(ParseMoveList(pgnText)),
		PGN:        pgnText,
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, now.Format("2006-01-02_150405")+".pgn.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return path, nil
}

// ReadRecord loads a single saved game record.
func ReadRecord(path string) (*GameInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info GameInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", filepath.Base(path), err)
	}
	info.FilePath = path
	info.FileName = filepath.Base(path)
	return &info, nil
}

// ListGames scans dir for saved records, newest first.
// A missing directory is treated as an empty history, not an error.
func ListGames(dir string) ([]GameInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var games []GameInfo
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".pgn.json") {
			continue
		}
		info, err := ReadRecord(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		games = append(games, *info)
	}

	return games, nil
}
