// Package main provides the user CLI entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apiconnect "github.com/osa030/ytplaylen/internal/api/connect"
)

var (
	app     = kingpin.New("ytplaylen-usercli", "ytplaylen client")
	server  = app.Flag("server", "Server address").Default("http://localhost:8080").Envar("YTPLAYLEN_SERVER").String()
	timeout = app.Flag("timeout", "Request timeout").Default("2m").Duration()

	// fetch command
	fetchCmd   = app.Command("fetch", "Fetch the length of a playlist").Default()
	fetchURL   = fetchCmd.Arg("url", "Playlist URL").Required().String()
	fetchStart = fetchCmd.Flag("start", "First position of the range (1-based)").Int()
	fetchEnd   = fetchCmd.Flag("end", "Last position of the range (inclusive)").Int()
	fetchUnit  = fetchCmd.Flag("unit", "Display unit: hrs, min or sec").String()
	fetchSpeed = fetchCmd.Flag("speed", "Playback speed, e.g. 1.5x").String()
	fetchItems = fetchCmd.Flag("items", "Print every video").Bool()
	fetchYAML  = fetchCmd.Flag("yaml", "Print the raw response as YAML").Bool()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Create client
	client := apiconnect.NewPlaylistServiceClient(http.DefaultClient, *server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	// Execute command
	switch command {
	case fetchCmd.FullCommand():
		fetch(ctx, client)
	}
}

func fetch(ctx context.Context, client *apiconnect.PlaylistServiceClient) {
	resp, err := client.FetchPlaylist(ctx, connect.NewRequest(&apiconnect.FetchPlaylistRequest{
		URL:   *fetchURL,
		Start: *fetchStart,
		End:   *fetchEnd,
		Unit:  *fetchUnit,
		Speed: *fetchSpeed,
	}))
	if err != nil {
		fmt.Printf("Error [%s]: %v\n", connect.CodeOf(err), err)
		var ce *connect.Error
		if errors.As(err, &ce) {
			if hint := ce.Meta().Get(apiconnect.HintHeader); hint != "" {
				fmt.Printf("Hint: %s\n", hint)
			}
			if id := ce.Meta().Get(apiconnect.RequestIDHeader); id != "" {
				fmt.Printf("Request ID: %s\n", id)
			}
		}
		os.Exit(1)
	}

	if *fetchYAML {
		if err := yaml.NewEncoder(os.Stdout).Encode(resp.Msg); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	r := resp.Msg.Report
	fmt.Printf("📃 %s by %s\n", resp.Msg.PlaylistID, r.PublishedBy)
	fmt.Printf("   Videos:   %d (of %d), %d available\n", r.TotalVideos, resp.Msg.TotalResults, r.AvailableVideos)
	fmt.Printf("   Total:    %s\n", r.TotalDuration)
	fmt.Printf("   At %-5s  %s\n", r.Speed+":", r.PlaybackDuration)
	fmt.Printf("   Average:  %s\n", r.AverageDuration)
	if n := len(resp.Msg.Unavailable); n > 0 {
		fmt.Printf("⚠️  %d unavailable videos counted as 0:00\n", n)
	}
	if resp.Msg.FailedBatches > 0 {
		fmt.Printf("⚠️  %d detail batches failed; their videos are counted as 0:00\n", resp.Msg.FailedBatches)
	}

	if *fetchItems {
		fmt.Println()
		for _, item := range r.Items {
			fmt.Printf("%4d  %9s  %-13s %s\n", item.Index, item.Duration, formatStatus(item.Status), item.Title)
		}
	}
	fmt.Printf("\nRequest ID: %s\n", resp.Header().Get(apiconnect.RequestIDHeader))
}

func formatStatus(status string) string {
	switch status {
	case "ok":
		return "✅"
	case "unavailable":
		return "🚫 unavailable"
	case "detail_failed":
		return "❓ unknown"
	default:
		return status
	}
}
