package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const boardQuery = `query ($board_id: [ID!], $limit: Int!, $cursor: String) {
  boards(ids: $board_id) {
    id
    name
    columns {
      id
      title
      type
    }
    items_page(limit: $limit, cursor: $cursor) {
      cursor
      items {
        id
        name
        column_values {
          id
          text
        }
      }
    }
  }
}`

// Client implements Fetcher against the monday.com GraphQL endpoint.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a Client. A nil logger discards debug output.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		logger: logger,
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type boardsResponse struct {
	Data struct {
		Boards []struct {
			ID        string   `json:"id"`
			Name      string   `json:"name"`
			Columns   []Column `json:"columns"`
			ItemsPage struct {
				Cursor *string `json:"cursor"`
				Items  []Item  `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors       []graphQLError `json:"errors"`
	ErrorMessage string         `json:"error_message"`
}

// FetchBoard pages through every item of the board. Any failing page fails
// the whole fetch, as does a cursor the server has already handed out.
func (c *Client) FetchBoard(ctx context.Context, boardID string) (*Board, error) {
	if boardID == "" {
		return nil, fmt.Errorf("%w: board id is not configured", ErrIngestion)
	}

	out := &Board{ID: boardID}
	var cursor *string
	seen := map[string]bool{}
	for page := 1; ; page++ {
		vars := map[string]any{
			"board_id": []string{boardID},
			"limit":    c.cfg.PageLimit,
		}
		if cursor != nil {
			vars["cursor"] = *cursor
		}

		resp, err := c.do(ctx, graphQLRequest{Query: boardQuery, Variables: vars})
		if err != nil {
			return nil, err
		}
		if len(resp.Data.Boards) == 0 {
			return nil, fmt.Errorf("%w: board %s not found", ErrIngestion, boardID)
		}

		b := resp.Data.Boards[0]
		out.Name = b.Name
		out.Columns = b.Columns
		out.Items = append(out.Items, b.ItemsPage.Items...)

		c.logger.DebugContext(ctx, "board_page",
			"board_id", boardID, "page", page, "items", len(b.ItemsPage.Items), "total", len(out.Items))

		cursor = b.ItemsPage.Cursor
		if cursor == nil || *cursor == "" {
			break
		}
		if seen[*cursor] {
			return nil, fmt.Errorf("%w: board %s returned cursor %q twice", ErrIngestion, boardID, *cursor)
		}
		seen[*cursor] = true
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, body graphQLRequest) (*boardsResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.cfg.Token)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngestion, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrIngestion, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: monday.com returned status %d: %s",
			ErrIngestion, httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var resp boardsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrIngestion, err)
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%w: monday.com API error: %s", ErrIngestion, strings.Join(msgs, "; "))
	}
	if resp.ErrorMessage != "" {
		return nil, fmt.Errorf("%w: monday.com API error: %s", ErrIngestion, resp.ErrorMessage)
	}
	return &resp, nil
}
