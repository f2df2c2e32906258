package utils

import (
	"strings"

	"github.com/google/uuid"
)

const imageMediaTypePrefix = "image/"

// IsImageContentType reports whether a declared part content type names an
// image media type. The check is a plain prefix match on the raw header value.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, imageMediaTypePrefix)
}

// GenerateID returns a random identifier for requests and crop events.
func GenerateID() string {
	return uuid.New().String()
}
