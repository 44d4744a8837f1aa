package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/ytplaylen/internal/domain/failure"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "playlist URL",
			input:    "https://www.youtube.com/playlist?list=PLCB9F975ECF01953C",
			expected: "PLCB9F975ECF01953C",
		},
		{
			name:     "watch URL with list",
			input:    "https://www.youtube.com/watch?v=rbCbho7aLYw&list=PLMpEfaKcGjpWEgNtdnsvLX6LzQL0UC0EM",
			expected: "PLMpEfaKcGjpWEgNtdnsvLX6LzQL0UC0EM",
		},
		{
			name:     "short link",
			input:    "https://youtu.be/rbCbho7aLYw?list=PL123",
			expected: "PL123",
		},
		{
			name:     "music host",
			input:    "https://music.youtube.com/playlist?list=OLAK5uy_abc",
			expected: "OLAK5uy_abc",
		},
		{
			name:     "mobile host over http",
			input:    "http://m.youtube.com/playlist?list=PL456",
			expected: "PL456",
		},
		{
			name:     "uppercase host",
			input:    "https://WWW.YOUTUBE.COM/playlist?list=PL789",
			expected: "PL789",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing list parameter",
			input:   "https://www.youtube.com/watch?v=rbCbho7aLYw",
			wantErr: true,
		},
		{
			name:    "empty list parameter",
			input:   "https://www.youtube.com/playlist?list=",
			wantErr: true,
		},
		{
			name:    "foreign host",
			input:   "https://open.spotify.com/playlist?list=PL123",
			wantErr: true,
		},
		{
			name:    "lookalike host",
			input:   "https://youtube.com.evil.example/playlist?list=PL123",
			wantErr: true,
		},
		{
			name:    "no scheme",
			input:   "www.youtube.com/playlist?list=PL123",
			wantErr: true,
		},
		{
			name:    "malformed URL",
			input:   "https://www.youtube.com/%zz?list=PL123",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, failure.Is(err, failure.KindInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestWatchURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123&index=7", WatchURL("abc123", 7))
}
