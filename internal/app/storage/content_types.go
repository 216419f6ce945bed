package storage

import (
	"mime"
	"strings"
)

// AcceptedContentTypes are the audio types clients are expected to send.
// Anything else is accepted but reported as unexpected.
var AcceptedContentTypes = []string{
	"audio/wav",
	"audio/x-wav",
	"audio/wave",
	"audio/mpeg",
	"audio/mp3",
	"audio/ogg",
	"audio/webm",
	"audio/flac",
	"audio/x-flac",
	"audio/mp4",
	"audio/x-m4a",
	"audio/m4a",
	"audio/aac",
	"video/mp4",
	"application/octet-stream",
}

// IsExpectedContentType reports whether a declared type is on the accepted list.
// Parameters such as codecs are ignored.
func IsExpectedContentType(declared string) bool {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(declared))
	}
	for _, accepted := range AcceptedContentTypes {
		if mediaType == accepted {
			return true
		}
	}
	return false
}
