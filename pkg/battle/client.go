package battle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// Client talks to the battle service, the external engine that
// simulates a battle between two players. Matchmaking only needs one
// call: start a battle, get its id back.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type startBattleRequest struct {
	Player1ID string `json:"player1Id"`
	Player2ID string `json:"player2Id"`
}

type startBattleResponse struct {
	BattleID string `json:"battleId"`
	Error    string `json:"error,omitempty"`
}

// StartBattle asks the battle service to run a battle between the two
// players and returns the created battle id. A non-2xx response or a
// transport failure surfaces as an error; the caller leaves both queue
// entries untouched in that case.
func (c *Client) StartBattle(ctx context.Context, player1ID, player2ID string) (string, error) {
	body, err := json.Marshal(startBattleRequest{
		Player1ID: player1ID,
		Player2ID: player2ID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode battle request: %w", err)
	}

	url := c.baseURL + "/internal/battles"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build battle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("Requesting battle start",
		"player1", player1ID,
		"player2", player2ID,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("battle service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read battle response: %w", err)
	}

	var parsed startBattleResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode battle response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if parsed.Error != "" {
			return "", fmt.Errorf("battle service rejected request (status %d): %s", resp.StatusCode, parsed.Error)
		}
		return "", fmt.Errorf("battle service returned status %d", resp.StatusCode)
	}

	if parsed.BattleID == "" {
		return "", fmt.Errorf("battle service returned no battle id")
	}

	logger.Info("Battle started",
		"battleId", parsed.BattleID,
		"player1", player1ID,
		"player2", player2ID,
	)

	return parsed.BattleID, nil
}

// HealthCheck pings the battle service.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("battle service health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("battle service is not healthy (status %d)", resp.StatusCode)
	}

	return nil
}
