package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	t.Run("Empty input stays empty", func(t *testing.T) {
		assert.Equal(t, "", SanitizeInput(""))
	})

	t.Run("Strips markup characters", func(t *testing.T) {
		assert.Equal(t, "scriptalert(xss)/script", SanitizeInput(`<script>alert("xss")</script>`))
	})

	t.Run("Trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "feeling great", SanitizeInput("  feeling great  "))
	})

	t.Run("Truncates to the input limit", func(t *testing.T) {
		long := strings.Repeat("a", MaxInputLength+500)
		assert.Len(t, SanitizeInput(long), MaxInputLength)
	})

	t.Run("Truncation counts runes not bytes", func(t *testing.T) {
		long := strings.Repeat("é", MaxInputLength+10)
		sanitized := SanitizeInput(long)
		assert.Equal(t, MaxInputLength, len([]rune(sanitized)))
	})
}

func TestValidateAudioUpload(t *testing.T) {
	t.Run("Accepts supported types within the limit", func(t *testing.T) {
		for _, contentType := range []string{
			"audio/wav", "audio/wave", "audio/flac", "audio/mp3",
			"audio/mpeg", "audio/m4a", "audio/ogg", "audio/webm",
		} {
			assert.NoError(t, ValidateAudioUpload(1024, contentType), contentType)
		}
	})

	t.Run("Content type check is case insensitive", func(t *testing.T) {
		assert.NoError(t, ValidateAudioUpload(1024, "Audio/WAV"))
	})

	t.Run("Rejects empty files", func(t *testing.T) {
		err := ValidateAudioUpload(0, "audio/wav")
		assert.ErrorContains(t, err, "no file provided")
	})

	t.Run("Rejects oversized files", func(t *testing.T) {
		err := ValidateAudioUpload(MaxAudioUploadBytes+1, "audio/wav")
		assert.ErrorContains(t, err, "file too large")
	})

	t.Run("Rejects unsupported types", func(t *testing.T) {
		err := ValidateAudioUpload(1024, "video/mp4")
		assert.ErrorContains(t, err, "unsupported file type")
	})
}
