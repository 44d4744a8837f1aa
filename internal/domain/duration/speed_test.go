package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		input    string
		expected Speed
		wantErr  bool
	}{
		{input: "1", expected: 1},
		{input: "normal", expected: 1},
		{input: "", expected: 1},
		{input: "0.25", expected: 0.25},
		{input: "1.5x", expected: 1.5},
		{input: "2", expected: 2},
		{input: "3", wantErr: true},
		{input: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseSpeed(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestSpeed_Apply(t *testing.T) {
	assert.Equal(t, 1965.0, Speed(2).Apply(3930))
	assert.Equal(t, 3930.0, Normal.Apply(3930))
	assert.Equal(t, 400.0, Speed(0.75).Apply(300))
	assert.Equal(t, "1:05:30", Format(Normal.Apply(3930), Hours))
	assert.Equal(t, "0:32:45", Format(Speed(2).Apply(3930), Hours))
}

func TestSpeed_String(t *testing.T) {
	assert.Equal(t, "1.25x", Speed(1.25).String())
	assert.Equal(t, "2x", Speed(2).String())
}
