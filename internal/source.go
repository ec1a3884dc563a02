package internal

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SourceClient retrieves encoded input images from remote storage.
type SourceClient interface {
	Fetch(url string) (io.ReadCloser, error)
}

type HTTPSource struct {
	apiKey string
	client HTTPClient
}

func NewSourceClient(apiKey string) SourceClient {
	return &HTTPSource{
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func (src *HTTPSource) Fetch(url string) (io.ReadCloser, error) {
	log.Printf("Retrieving: %s", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if src.apiKey != "" {
		req.Header.Set("apikey", src.apiKey)
	}
	req.Header.Set("Accept", "image/*")

	res, err := src.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}
