package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHashtag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dev85142.service-now.com", "dev85142_service_now_com"},
		{"already_clean-1", "already_clean_1"},
		{"foo bar", "foo_bar"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeHashtag(tt.input))
		})
	}
}

func TestWithHTTPS(t *testing.T) {
	assert.Equal(t, "https://ov.example.com", WithHTTPS("ov.example.com"))
	assert.Equal(t, "https://ov.example.com", WithHTTPS("https://ov.example.com"))
	assert.Equal(t, "http://ov.example.com", WithHTTPS("http://ov.example.com"))
}

func TestWithoutScheme(t *testing.T) {
	assert.Equal(t, "ov.example.com", WithoutScheme("https://ov.example.com"))
	assert.Equal(t, "ov.example.com", WithoutScheme("http://ov.example.com"))
	assert.Equal(t, "ov.example.com", WithoutScheme("ov.example.com"))
}

func TestInstanceFromURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://dev85142.service-now.com", "dev85142.service-now.com"},
		{"https://dev85142.service-now.com/api/now/table/x", "dev85142.service-now.com"},
		{"dev85142.service-now.com", "dev85142.service-now.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, InstanceFromURL(tt.input))
		})
	}
}
