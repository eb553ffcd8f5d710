package utils

import (
	"fmt"
	"strings"
)

const MaxInputLength = 1000

// SanitizeInput truncates text to the input limit and strips characters that
// could carry markup into rendered pages.
func SanitizeInput(text string) string {
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) > MaxInputLength {
		text = string(runes[:MaxInputLength])
	}

	replacer := strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")
	return strings.TrimSpace(replacer.Replace(text))
}

const MaxAudioUploadBytes = 10 * 1024 * 1024

var supportedAudioTypes = map[string]bool{
	"audio/wav":  true,
	"audio/wave": true,
	"audio/flac": true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/m4a":  true,
	"audio/ogg":  true,
	"audio/webm": true,
}

// ValidateAudioUpload checks size and content type of an uploaded recording.
func ValidateAudioUpload(size int64, contentType string) error {
	if size == 0 {
		return fmt.Errorf("no file provided")
	}
	if size > MaxAudioUploadBytes {
		return fmt.Errorf(
			"file too large (%.1fMB), maximum size is %dMB",
			float64(size)/(1024*1024),
			MaxAudioUploadBytes/(1024*1024),
		)
	}
	if !supportedAudioTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("unsupported file type: %s", contentType)
	}
	return nil
}
