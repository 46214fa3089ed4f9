//nolint:mnd
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpt "itemsvc/internal/transport/http"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Item service base URL")
	numItems := flag.Int("count", 10, "Number of items to create")
	interval := flag.Duration("interval", 200*time.Millisecond, "Interval between requests")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	endpoint := strings.TrimRight(*baseURL, "/") + "/items"

	log.Printf("Seeding %d items into %s every %v\n", *numItems, endpoint, *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	created := 0
	for sent := 0; sent < *numItems; sent++ {
		if sent > 0 {
			select {
			case <-ctx.Done():
				log.Println("Shutting down seeder...")
				return
			case <-ticker.C:
			}
		}

		if err := createItem(ctx, client, endpoint); err != nil {
			log.Printf("Failed to create item: %v", err)
			continue
		}
		created++
	}

	log.Printf("Created %d of %d items. Exiting.\n", created, *numItems)
}

func createItem(ctx context.Context, client *http.Client, endpoint string) error {
	body, err := json.Marshal(generateFakeItem())
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var envelope httpt.Response
	if err = json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, envelope.Message)
	}

	log.Printf("Created item (request %s)", requestID)
	return nil
}

func generateFakeItem() httpt.CreateItemRequest {
	price := gofakeit.Price(1, 1000)
	status := gofakeit.Bool()

	return httpt.CreateItemRequest{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       &price,
		Status:      &status,
	}
}
