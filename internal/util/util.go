package util

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var nonAlphaNum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeHashtag converts a string into a valid hashtag name.
// Hashtag names must be alphanumeric with hyphens/underscores, so
// everything else becomes an underscore.
func SanitizeHashtag(s string) string {
	return nonAlphaNum.ReplaceAllString(s, "_")
}

// WithHTTPS prefixes the URL with https:// if no scheme is present.
func WithHTTPS(rawURL string) string {
	if strings.HasPrefix(rawURL, "https://") || strings.HasPrefix(rawURL, "http://") {
		return rawURL
	}
	return "https://" + rawURL
}

// WithoutScheme strips a leading https:// or http:// from the URL.
func WithoutScheme(rawURL string) string {
	rawURL = strings.TrimPrefix(rawURL, "https://")
	rawURL = strings.TrimPrefix(rawURL, "http://")
	return rawURL
}

// TestConnection checks that a URL answers at all before a session is
// opened against it.
func TestConnection(rawURL string) error {
	client := &http.Client{Timeout: 15 * time.Second}

	resp, err := client.Get(WithHTTPS(rawURL))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("failed to connect to %s: status %d", rawURL, resp.StatusCode)
	}
	return nil
}

// InstanceFromURL derives an instance identifier from a URL: its host
// component, e.g. "dev85142.service-now.com" from
// "https://dev85142.service-now.com/api". An already-bare hostname is
// returned unchanged.
func InstanceFromURL(rawURL string) string {
	u, err := url.Parse(WithHTTPS(rawURL))
	if err != nil || u.Host == "" {
		return WithoutScheme(rawURL)
	}
	return u.Host
}
