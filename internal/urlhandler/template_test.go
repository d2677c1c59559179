package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		target   string
		expected string
		wantErr  bool
	}{
		{
			name:     "query escaped",
			template: "https://api.allorigins.win/raw?url={url}",
			target:   "https://example.com",
			expected: "https://api.allorigins.win/raw?url=https%3A%2F%2Fexample.com",
		},
		{
			name:     "host path",
			template: "https://r.jina.ai/http://{host_path}",
			target:   "https://example.com/page?a=1",
			expected: "https://r.jina.ai/http://example.com/page?a=1",
		},
		{
			name:     "raw url",
			template: "https://relay.example/{raw_url}",
			target:   "https://example.com",
			expected: "https://relay.example/https://example.com",
		},
		{
			name:     "no placeholder",
			template: "https://relay.example/fixed",
			target:   "https://example.com",
			wantErr:  true,
		},
		{
			name:     "relative target",
			template: "https://relay.example/?u={url}",
			target:   "/about",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTemplate(tt.template, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	assert.NoError(t, ValidateTemplate("https://r.screenshotapi.net/api/v1/screenshot?url={url}&token=demo"))
	assert.Error(t, ValidateTemplate("https://relay.example/fixed"))
	assert.Error(t, ValidateTemplate("{host_path}"))
}
