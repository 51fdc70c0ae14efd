package board

import (
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/domain"
)

// Config holds connection settings for the monday.com API.
type Config struct {
	Endpoint  string
	Token     string
	TimeoutMs int
	PageLimit int
	BoardIDs  map[domain.Source]string
}

// DefaultConfig returns the public API endpoint with the page size and
// timeout the boards were tuned for. Board IDs and the token stay empty.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://api.monday.com/v2",
		TimeoutMs: 60000,
		PageLimit: 500,
		BoardIDs:  map[domain.Source]string{},
	}
}

// LoadConfig reads board settings from the environment, falling back to
// defaults for unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	cfg.Token = strings.TrimSpace(os.Getenv("MONDAY_API_TOKEN"))
	if v := os.Getenv("BIZPULSE_MONDAY_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("BIZPULSE_MONDAY_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BIZPULSE_MONDAY_PAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			cfg.PageLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BIZPULSE_WORK_ORDERS_BOARD_ID")); v != "" {
		cfg.BoardIDs[domain.SourceWorkOrders] = v
	}
	if v := strings.TrimSpace(os.Getenv("BIZPULSE_DEALS_BOARD_ID")); v != "" {
		cfg.BoardIDs[domain.SourceDeals] = v
	}

	return cfg
}

// Missing lists the settings a live fetch cannot do without.
func (c Config) Missing() []string {
	var out []string
	if c.Token == "" {
		out = append(out, "MONDAY_API_TOKEN")
	}
	if c.BoardIDs[domain.SourceWorkOrders] == "" {
		out = append(out, "BIZPULSE_WORK_ORDERS_BOARD_ID")
	}
	if c.BoardIDs[domain.SourceDeals] == "" {
		out = append(out, "BIZPULSE_DEALS_BOARD_ID")
	}
	return out
}
