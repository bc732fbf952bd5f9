// Package api implements the HTTP client for the Bagh-Chal game server.
//
// Every method is a single request/response round trip against the server's
// /api surface; nothing retries. Rejections decode the server's
// {"detail": ...} body into a typed error carrying the reason verbatim.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"baghchal-tui/types"
)

var debugLog *log.Logger

func init() {
	f, _ := os.Create(filepath.Join(os.TempDir(), "baghchal-tui-debug.log"))
	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)
}

// Client talks to one Bagh-Chal server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

type gameCreated struct {
	GameID string `json:"game_id"`
}

type newGameRequest struct {
	Mode       string `json:"mode"`
	Difficulty int    `json:"difficulty"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type loadGameRequest struct {
	PGN string `json:"pgn"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// NewGame creates a new game session and returns its id.
func (c *Client) NewGame(mode string, difficulty int) (string, error) {
	var created gameCreated
	err := c.do("new game", http.MethodPost, "/api/games",
		newGameRequest{Mode: mode, Difficulty: difficulty}, &created, nil)
	if err != nil {
		return "", err
	}
	return created.GameID, nil
}

// LoadGame creates a session from a textual move record.
func (c *Client) LoadGame(pgnText string) (string, error) {
	var created gameCreated
	err := c.do("load game", http.MethodPost, "/api/games/load",
		loadGameRequest{PGN: pgnText}, &created,
		func(detail string, status int) error {
			return &InvalidHistoryError{Reason: detail}
		})
	if err != nil {
		return "", err
	}
	return created.GameID, nil
}

// GameState fetches the live position of a game.
func (c *Client) GameState(gameID string) (*types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.do("fetch game", http.MethodGet, "/api/games/"+gameID, nil, &snap, nil)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Move submits a move token. A server rejection is returned as
// *IllegalMoveError with the server's reason.
func (c *Client) Move(gameID, token string) (*types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.do("move", http.MethodPost, "/api/games/"+gameID+"/move",
		moveRequest{Move: token}, &snap,
		func(detail string, status int) error {
			return &IllegalMoveError{Reason: detail}
		})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// BotMove asks the engine to pick and play its own move.
func (c *Client) BotMove(gameID string) (*types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.do("engine move", http.MethodPost, "/api/games/"+gameID+"/bot-move", nil, &snap, nil)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Undo takes back the last move and returns the new live position.
func (c *Client) Undo(gameID string) (*types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.do("undo", http.MethodPost, "/api/games/"+gameID+"/undo", nil, &snap,
		func(detail string, status int) error {
			return &NothingToUndoError{Reason: detail}
		})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// Seek fetches the position after the first index moves of the record.
// Index 0 is the initial position.
func (c *Client) Seek(gameID string, index int) (*types.GameSnapshot, error) {
	var snap types.GameSnapshot
	err := c.do("seek", http.MethodGet, fmt.Sprintf("/api/games/%s/seek/%d", gameID, index), nil, &snap,
		func(detail string, status int) error {
			return &SeekOutOfRangeError{Index: index, Reason: detail}
		})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// do performs one round trip. reqBody and respBody may be nil; reject maps a
// decoded detail string from a non-2xx response to a typed error, falling back
// to *RemoteError when nil or when no detail could be decoded.
func (c *Client) do(op, method, path string, reqBody, respBody interface{}, reject func(detail string, status int) error) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	debugLog.Printf("%s %s %s", op, method, path)

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		debugLog.Printf("%s: transport error: %v", op, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		debugLog.Printf("%s: status %d detail %q", op, resp.StatusCode, eb.Detail)
		if reject != nil && eb.Detail != "" {
			return reject(eb.Detail, resp.StatusCode)
		}
		return &RemoteError{Op: op, Status: resp.StatusCode, Detail: eb.Detail}
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
