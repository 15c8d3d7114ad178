package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"yarnly/internal/config"
)

func setupCLI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg = config.DefaultConfig()
	cfg.APIURL = srv.URL
	cfg.StateDir = t.TempDir()
}

func TestProductsCommandFiltersAndCounts(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"Wool Scarf","category":"Clothing","description":"","price":500,"stock":3},
			{"id":2,"name":"Market Bag","category":"Bags","description":"","price":800,"stock":0}
		]`))
	})
	flagSearch = "bag"
	flagCategory = "All"
	t.Cleanup(func() { flagSearch, flagCategory = "", "All" })

	output := captureOutput(t, func() {
		cmd := &cobra.Command{}
		cmd.SetContext(context.Background())
		if err := productsCmd.RunE(cmd, nil); err != nil {
			t.Fatalf("products returned error: %v", err)
		}
	})

	if !strings.Contains(output, "Market Bag") || strings.Contains(output, "Wool Scarf") {
		t.Fatalf("expected only the bag, got: %s", output)
	}
	if !strings.Contains(output, "out of stock") {
		t.Fatalf("expected stock state, got: %s", output)
	}
	if !strings.Contains(output, "1 handcrafted piece") {
		t.Fatalf("expected count line, got: %s", output)
	}
}

func TestProductsCommandRejectsUnknownCategory(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	flagSearch = ""
	flagCategory = "Pottery"
	t.Cleanup(func() { flagCategory = "All" })

	if err := productsCmd.RunE(&cobra.Command{}, nil); err == nil {
		t.Fatal("expected an error for an unknown category")
	}
}

func TestWhoamiReportsGuestAndSignedIn(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {})

	output := captureOutput(t, func() {
		whoamiCmd.Run(&cobra.Command{}, nil)
	})
	if !strings.Contains(output, "guest") {
		t.Fatalf("expected guest state, got: %s", output)
	}

	_, sessions, _, _ := buildServices()
	if err := sessions.SetToken("tok"); err != nil {
		t.Fatal(err)
	}

	output = captureOutput(t, func() {
		whoamiCmd.Run(&cobra.Command{}, nil)
	})
	if !strings.Contains(output, "Signed in") {
		t.Fatalf("expected signed-in state, got: %s", output)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	rOut, wOut, _ := os.Pipe()
	os.Stdout = wOut

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	os.Stdout = origOut
	return <-done
}
