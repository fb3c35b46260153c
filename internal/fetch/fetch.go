// Package fetch retrieves image bytes referenced by schema elements,
// accepting both data URIs and regular HTTP(S) URLs.
package fetch

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxImageBytes = 20 << 20 // refuse anything above 20 MiB

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Image resolves ref into raw bytes plus a MIME type. A ref starting with
// "data:" is decoded in place; anything else is fetched over HTTP.
func Image(ref string) ([]byte, string, error) {
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURI(ref)
	}
	return fetchHTTP(ref)
}

// IsEmbedded reports whether ref already carries its payload inline.
func IsEmbedded(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

func decodeDataURI(uri string) ([]byte, string, error) {
	rest := strings.TrimPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}

	mime := "application/octet-stream"
	base64Encoded := false
	for i, part := range strings.Split(meta, ";") {
		if i == 0 && part != "" {
			mime = part
			continue
		}
		if part == "base64" {
			base64Encoded = true
		}
	}

	if !base64Encoded {
		return nil, "", fmt.Errorf("unsupported data URI encoding (expected base64)")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return data, mime, nil
}

func fetchHTTP(url string) ([]byte, string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, "", fmt.Errorf("unsupported image reference: %s", url)
	}

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

// Format maps a MIME type onto the image type names the builders expect
// ("png", "jpg"). Unknown types return "" and should be skipped.
func Format(mime string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mime, ";")[0])) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}
