package imagekey

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		contentType string
		wantExt     string
		wantOK      bool
	}{
		{"image/jpeg", "jpg", true},
		{"image/png", "png", true},
		{"image/webp", "webp", true},
		{"image/gif", "", false},
		{"image/svg+xml", "", false},
		{"application/pdf", "", false},
		{"IMAGE/PNG", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			ext, ok := ExtensionForMIME(tt.contentType)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestNewKey(t *testing.T) {
	key := NewKey("png")

	require.True(t, strings.HasPrefix(key, KeyPrefix))
	require.True(t, strings.HasSuffix(key, ".png"))

	base := strings.TrimSuffix(strings.TrimPrefix(key, KeyPrefix), ".png")
	_, err := uuid.Parse(base)
	assert.NoError(t, err, "key base %q should be a uuid", base)
}

func TestNewKeyUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		key := NewKey("jpg")
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %q", key)
		seen[key] = struct{}{}
	}
}

func TestValidFilename(t *testing.T) {
	id := uuid.New().String()

	valid := []string{
		id + ".jpg",
		id + ".png",
		id + ".webp",
		id + ".gif",
		strings.ToUpper(id) + ".png",
	}
	for _, name := range valid {
		assert.True(t, ValidFilename(name), name)
	}

	invalid := []string{
		"",
		id,                 // no extension
		id + ".jpeg",       // jpeg is not a served extension
		id + ".JPG",        // extension is case sensitive
		id + ".png.exe",
		"short.png",
		"../" + id + ".png",
		id + "/.png",
	}
	for _, name := range invalid {
		assert.False(t, ValidFilename(name), name)
	}
}

func TestKeyForFilename(t *testing.T) {
	name := uuid.New().String() + ".webp"
	assert.Equal(t, "uploads/"+name, KeyForFilename(name))
}

func TestMIMEForFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.webp", "image/webp"},
		{"a.gif", "image/gif"},
		{"a.PNG", "image/png"},
		{"a.bmp", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMEForFilename(tt.name))
		})
	}
}
