package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeFor(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":   "image/jpeg",
		"photo.JPEG":  "image/jpeg",
		"photo.png":   "image/png",
		"photo.gif":   "image/gif",
		"photo.webp":  "image/webp",
		"archive.zip": "application/octet-stream",
		"noext":       "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, ContentTypeFor(name), name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "milo.jpg", SanitizeFilename("milo.jpg"))
	assert.Equal(t, "milo.jpg", SanitizeFilename("  milo.jpg  "))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "evil_name_.png", SanitizeFilename("evil name!.png"))
	assert.Equal(t, "c.txt", SanitizeFilename(`a\b\c.txt`))
	assert.Equal(t, "photo", SanitizeFilename(""))
	assert.Equal(t, "photo", SanitizeFilename("..."))
}

type createDTO struct {
	Name        string
	Description string
}

func TestNormalizeDTO(t *testing.T) {
	dto := createDTO{Name: "  Milo ", Description: " lost near park "}
	NormalizeDTO(&dto)
	assert.Equal(t, "Milo", dto.Name)
	assert.Equal(t, "lost near park", dto.Description)
}
