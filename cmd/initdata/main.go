// Command initdata seeds a running virtboard server with fake guests
// through the public API. Handy for demos and manual poking.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	baseURL = flag.String("url", env("API_BASE_URL", "http://localhost:8010"), "Server base URL")
	user    = flag.String("user", env("VIRTBOARD_USER", "admin"), "Username")
	pass    = flag.String("pass", env("VIRTBOARD_PASSWORD", ""), "Password")
	nGuests = flag.Int("n", envInt("COUNT", 20), "How many guests to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func postJSON(path string, body any) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(*user, *pass)
	return http.DefaultClient.Do(req)
}

func guestName() string {
	// hostname-safe: lowercase word plus a short number
	return fmt.Sprintf("%s-%d", strings.ToLower(gofakeit.Adjective()), gofakeit.Number(1, 999))
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Seeding %d guests on %s as %s\n", *nGuests, *baseURL, *user)

	created := 0
	for i := 0; i < *nGuests; i++ {
		payload := map[string]any{
			"name":        guestName(),
			"vcpus":       gofakeit.Number(1, 8),
			"memory_mb":   256 * gofakeit.Number(1, 32),
			"description": gofakeit.Sentence(6),
		}

		resp, err := postJSON("/api/v1/guests/", payload)
		if err != nil {
			fmt.Fprintln(os.Stderr, "FATAL:", err)
			os.Exit(1)
		}
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			// name collision, try again with a fresh one
			i--
		default:
			fmt.Fprintf(os.Stderr, "FATAL: unexpected status %d\n", resp.StatusCode)
			os.Exit(1)
		}
	}

	fmt.Printf("Created %d guests\n", created)
}
