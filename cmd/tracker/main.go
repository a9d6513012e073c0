// Command tracker is a headless consumer of the order event stream. It keeps
// a reconciled in-memory view of every active order by combining pushed state
// changes with periodic polls of the fulfillment API, the same way the
// storefront and rider clients are expected to.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/internal/adapters/in/events"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/nats-io/nats.go"
)

const defaultPollInterval = 30 * time.Second

// activeStatuses are the order statuses worth tracking; terminal orders drop
// out of the view on the next resync.
var activeStatuses = []string{
	"pending_payment", "pending", "confirmed", "preparing", "out_for_delivery",
}

func main() {
	natsURL := goDotEnvVariable("NATS_URL")
	apiBaseURL := goDotEnvVariable("API_BASE_URL")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	client := &apiClient{baseURL: apiBaseURL, http: &http.Client{Timeout: 10 * time.Second}}

	cache := events.NewOrderStateCache(client.fetchOrder, logger)

	natsConn, err := nats.Connect(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", natsURL, err)
	}
	defer natsConn.Close()

	subscriber := events.NewOrderEventSubscriber(
		natsConn, cache, client.resync, defaultPollInterval, logger)
	natsConn.SetReconnectHandler(subscriber.HandleReconnect)

	if err = subscriber.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start order event subscriber: %v", err)
	}
	defer subscriber.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down", "tracked_orders", cache.Len())
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// apiClient reads the authoritative order state over the fulfillment HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

type orderDetailResponse struct {
	Status  string `json:"status"`
	Version int    `json:"version"`
}

type adminOrderRowResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Version int    `json:"version"`
}

// fetchOrder resolves a single order to its current snapshot. Used by the
// cache to close version gaps.
func (c *apiClient) fetchOrder(ctx context.Context, orderID string) (events.OrderSnapshot, error) {
	var detail orderDetailResponse
	url := fmt.Sprintf("%s/api/v1/orders/%s", c.baseURL, orderID)
	if err := c.getJSON(ctx, url, &detail); err != nil {
		return events.OrderSnapshot{}, err
	}
	return events.OrderSnapshot{State: detail.Status, Version: detail.Version}, nil
}

// resync loads snapshots of every active order.
func (c *apiClient) resync(ctx context.Context) (map[string]events.OrderSnapshot, error) {
	snapshots := make(map[string]events.OrderSnapshot)
	for _, status := range activeStatuses {
		var rows []adminOrderRowResponse
		url := fmt.Sprintf("%s/api/v1/orders?status=%s", c.baseURL, status)
		if err := c.getJSON(ctx, url, &rows); err != nil {
			return nil, err
		}
		for _, row := range rows {
			snapshots[row.ID] = events.OrderSnapshot{State: row.Status, Version: row.Version}
		}
	}
	return snapshots, nil
}

func (c *apiClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
