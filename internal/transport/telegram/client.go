package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	"github.com/samber/oops"
)

// AllowedUpdates are the update kinds the bot asks Telegram for.
var AllowedUpdates = []string{"message", "callback_query"}

type getUpdatesRequest struct {
	Offset         int64    `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// APIClient performs the long-poll getUpdates call. Outgoing replies go
// through go-telegram/bot; polling stays here so the cursor is ours.
type APIClient struct {
	token          string
	baseURL        string
	requestTimeout time.Duration
	client         *http.Client
}

// NewAPIClient creates a getUpdates client
func NewAPIClient(token, baseURL string, requestTimeout time.Duration) *APIClient {
	return &APIClient{
		token:          token,
		baseURL:        baseURL,
		requestTimeout: requestTimeout,
		client:         &http.Client{},
	}
}

// GetUpdates blocks for up to timeout waiting for updates with id >= offset.
func (c *APIClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]*models.Update, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout+c.requestTimeout)
	defer cancel()

	body, err := json.Marshal(getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout / time.Second),
		AllowedUpdates: AllowedUpdates,
	})
	if err != nil {
		return nil, oops.In("telegram").Wrapf(err, "encode getUpdates request")
	}

	url := fmt.Sprintf("%s/bot%s/getUpdates", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, oops.In("telegram").Wrapf(err, "create getUpdates request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// the URL carries the token; keep it out of logs
		return nil, oops.In("telegram").With("offset", offset).Errorf("getUpdates transport error: %s", redact(err.Error(), c.token))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil, oops.In("telegram").With("status", resp.StatusCode).Wrap(errors.ErrUnauthorized)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, oops.In("telegram").With("status", resp.StatusCode).Wrapf(err, "decode getUpdates response")
	}

	if !apiResp.OK {
		return nil, oops.In("telegram").
			With("status", resp.StatusCode, "error_code", apiResp.ErrorCode, "description", apiResp.Description).
			Wrap(errors.ErrAPIResponse)
	}

	var updates []*models.Update
	if err := json.Unmarshal(apiResp.Result, &updates); err != nil {
		return nil, oops.In("telegram").Wrapf(err, "decode updates")
	}

	return updates, nil
}

func redact(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "<token>")
}
