package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/housekeeping-board/backend/internal/storage/models"
)

// SheetsConfig holds connection settings for the spreadsheet web API.
type SheetsConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// SheetsClient is a client for the spreadsheet-backed housekeeping API.
// Every operation is a POST of {fn, args} to the deployment URL; the
// response is an {ok, data|error} envelope.
type SheetsClient struct {
	config     SheetsConfig
	httpClient *http.Client
}

// NewSheetsClient creates a new spreadsheet API client.
func NewSheetsClient(config SheetsConfig) *SheetsClient {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &SheetsClient{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Authoritative is true: the sheet is the source of truth for
// cross-board assignment conflicts.
func (c *SheetsClient) Authoritative() bool {
	return true
}

// FetchAllRooms retrieves the full room list from the sheet.
func (c *SheetsClient) FetchAllRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.call(ctx, "getAllRooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// UpdateRoom records the notes and completion flag for a room. The
// sheet's updateRoom RPC only accepts (board, room, notes, done); the
// sheet derives everything else itself.
func (c *SheetsClient) UpdateRoom(ctx context.Context, boardID string, room models.Room) error {
	return c.call(ctx, "updateRoom", []any{boardID, room.Room, room.Notes, room.Done}, nil)
}

// AssignRoomsBulk assigns every listed room to the given board.
func (c *SheetsClient) AssignRoomsBulk(ctx context.Context, roomNos []string, boardID string) error {
	return c.call(ctx, "assignRoomsBulk", []any{roomNos, boardID}, nil)
}

// RegisterStaffByName resolves a staff name against the setup sheet.
func (c *SheetsClient) RegisterStaffByName(ctx context.Context, name string) (models.HKStaff, error) {
	var staff models.HKStaff
	if err := c.call(ctx, "hkRegisterName", []any{name}, &staff); err != nil {
		return models.HKStaff{}, err
	}
	return staff, nil
}

// StartRoom records that cleaning started for a room.
func (c *SheetsClient) StartRoom(ctx context.Context, roomNo, staffName string) error {
	return c.call(ctx, "startRoom", []any{roomNo, staffName}, nil)
}

// LogBreak records a break transition for a staff member.
func (c *SheetsClient) LogBreak(ctx context.Context, staffName string, action models.BreakAction) error {
	return c.call(ctx, "logBreak", []any{staffName, string(action)}, nil)
}

type rpcRequest struct {
	Fn   string `json:"fn"`
	Args []any  `json:"args"`
}

type rpcResponse struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// call posts an RPC request and decodes the data payload into out when
// out is non-nil.
func (c *SheetsClient) call(ctx context.Context, fn string, args []any, out any) error {
	if args == nil {
		args = []any{}
	}

	body, err := json.Marshal(rpcRequest{Fn: fn, Args: args})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := c.newRequest(ctx, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, raw)
	}

	var envelope rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s failed: %s", fn, envelope.Error)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding %s data: %w", fn, err)
		}
	}
	return nil
}

// newRequest creates an authenticated POST request to the deployment URL.
func (c *SheetsClient) newRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	return req, nil
}
