package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// MaxDownloadSize caps the size of downloaded documents.
const MaxDownloadSize = 8 << 20

// DownloadSVG fetches an SVG document from uri.
func DownloadSVG(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request for %s: %w", uri, err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download SVG file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download SVG file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	if len(data) > MaxDownloadSize {
		return nil, fmt.Errorf("the downloaded file exceeds %d bytes", MaxDownloadSize)
	}
	if !IsSVG(res.Header.Get("Content-Type"), data) {
		return nil, fmt.Errorf("the downloaded file is not a valid SVG document")
	}
	return data, nil
}

// IsSVG reports whether a document looks like SVG, judging by its declared content type and
// by sniffing its first bytes.
func IsSVG(ctype string, data []byte) bool {
	if strings.HasPrefix(ctype, "image/svg+xml") {
		return true
	}
	// Only the first 512 bytes are used to sniff the content type.
	head := data[:min(len(data), 512)]
	sniffed := http.DetectContentType(head)
	if !strings.HasPrefix(sniffed, "text/xml") && !strings.HasPrefix(sniffed, "text/plain") {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
