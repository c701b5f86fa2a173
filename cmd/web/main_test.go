package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLandingPageShowsHost(t *testing.T) {
	srv := httptest.NewServer(newHandler("pong.example.com"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "ssh -t play@pong.example.com") {
		t.Error("page does not show the SSH command")
	}
	if strings.Contains(string(body), "{{.SSHHost}}") {
		t.Error("placeholder left in page")
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	srv := httptest.NewServer(newHandler("h"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
