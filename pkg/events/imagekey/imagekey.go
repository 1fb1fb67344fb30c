// Package imagekey maps declared image content types to storage keys and
// validates image filenames on the read path.
//
// The two allow-lists are intentionally distinct: uploads accept
// jpeg/png/webp, while the filename pattern used when serving stored images
// additionally accepts gif. Do not unify them.
package imagekey

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// KeyPrefix is the namespace segment all generated storage keys live under.
const KeyPrefix = "uploads/"

// extByMIME is the upload allow-list.
var extByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// mimeByExt is the read-path extension map. It covers gif because stored
// legacy objects may carry it even though uploads reject it.
var mimeByExt = map[string]string{
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

// filenameRE matches "<36-char hex-and-hyphen uuid>.<allowed extension>".
var filenameRE = regexp.MustCompile(`^[0-9a-fA-F-]{36}\.(jpg|png|webp|gif)$`)

// ExtensionForMIME returns the canonical extension for an allow-listed
// content type. ok is false for anything outside the allow-list.
func ExtensionForMIME(contentType string) (ext string, ok bool) {
	ext, ok = extByMIME[contentType]
	return ext, ok
}

// NewKey generates a collision-resistant storage key under KeyPrefix. Key
// uniqueness across concurrent uploads rests on the 128 bits of uuid entropy;
// no collision check against storage is made.
func NewKey(ext string) string {
	return KeyPrefix + uuid.New().String() + "." + ext
}

// KeyForFilename derives the storage key for an already-validated filename.
func KeyForFilename(filename string) string {
	return KeyPrefix + filename
}

// ValidFilename reports whether name matches the read-path filename pattern.
func ValidFilename(name string) bool {
	return filenameRE.MatchString(name)
}

// MIMEForFilename maps a filename's extension to its content type, falling
// back to application/octet-stream for anything unrecognized.
func MIMEForFilename(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return "application/octet-stream"
	}
	if mime, ok := mimeByExt[strings.ToLower(name[idx+1:])]; ok {
		return mime
	}
	return "application/octet-stream"
}
