package storage

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const (
	keyPrefix          = "recordings"
	defaultExtension   = ".m4a"
	defaultContentType = "application/octet-stream"
	m4aContentType     = "audio/mp4"
)

var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".flac": true,
	".m4a":  true,
}

// NormalizeExtension maps an uploaded filename to the stored extension.
// .mp4 and anything unrecognised are stored as .m4a.
func NormalizeExtension(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == ".mp4" || !allowedExtensions[ext] {
		return defaultExtension
	}
	return ext
}

// ObjectKey builds recordings/<code>/<prompt>_<uuid><ext>
func ObjectKey(participantCode, promptID, originalFilename string) string {
	return fmt.Sprintf("%s/%s/%s_%s%s",
		keyPrefix, participantCode, promptID, uuid.NewString(), NormalizeExtension(originalFilename))
}

// ResolveContentType picks the content type stored with the object
func ResolveContentType(key, declared string) string {
	contentType := strings.TrimSpace(declared)
	if contentType == "" {
		contentType = defaultContentType
	}
	if strings.HasSuffix(key, defaultExtension) && !isConcrete(contentType) {
		return m4aContentType
	}
	return contentType
}

func isConcrete(contentType string) bool {
	return contentType != defaultContentType && !strings.HasSuffix(contentType, "/*")
}
