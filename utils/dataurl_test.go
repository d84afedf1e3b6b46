package utils

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestBase64ByteLength(t *testing.T) {
	assert.Equal(t, 1, Base64ByteLength("QQ=="))
	assert.Equal(t, 2, Base64ByteLength("QQA="))
	assert.Equal(t, 3, Base64ByteLength("QUJD"))
	assert.Equal(t, 3, Base64ByteLength("QU\nJD "))
	assert.Equal(t, 0, Base64ByteLength(""))
}

func TestGuessImageMimeType(t *testing.T) {
	cases := map[string]string{
		"iVBORw0KGgoAAAANSUhEUg": "image/png",
		"/9j/4AAQSkZJRg":         "image/jpeg",
		"R0lGODlhAQABAIAAAP":     "image/gif",
		"UklGRiQAAABXRUJQ":       "image/webp",
		"AAABAAEAEBA":            "image/x-icon",
		"Zm9vYmFy":               "",
	}
	for input, want := range cases {
		assert.Equal(t, want, GuessImageMimeType(input), input)
	}
}

func TestBuildDataURL(t *testing.T) {
	assert.Equal(t, "", BuildDataURL("", "image/png"))
	assert.Equal(t, "data:image/png;base64,abc", BuildDataURL("data:image/png;base64,abc", "image/jpeg"))
	assert.Equal(t, "data:image/webp;base64,QUJD", BuildDataURL("QU JD", "image/webp"))
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo", BuildDataURL("iVBORw0KGgo", ""))
	// unrecognised payloads fall back to JPEG
	assert.Equal(t, "data:image/jpeg;base64,Zm9v", BuildDataURL("Zm9v", ""))
}

func TestStripDataURLPrefix_RoundTrip(t *testing.T) {
	for _, b := range []string{"QUJD", "QQ==", "iVBORw0KGgo\nAAAA"} {
		for _, mime := range []string{"", "image/png", "image/webp"} {
			got := StripDataURLPrefix(BuildDataURL(b, mime))
			assert.Equal(t, normalizeBase64(b), got)
		}
	}
	assert.Equal(t, "QUJD", StripDataURLPrefix("QUJD"))
}

func TestExtractMimeType(t *testing.T) {
	assert.Equal(t, "image/webp", ExtractMimeType("data:image/webp;base64,UklGR"))
	assert.Equal(t, "", ExtractMimeType("UklGR"))
	assert.Equal(t, "", ExtractMimeType("data:image/webp,UklGR"))
}

func TestCheckEncodedSize(t *testing.T) {
	assert.NoError(t, CheckEncodedSize("QUJD", 3))
	assert.ErrorIs(t, CheckEncodedSize("QUJD", 2), ErrDocumentTooLarge)
}

func TestNormalizeImage(t *testing.T) {
	b64, mime, err := NormalizeImage("data:image/png;base64,QU JD", "")
	require.NoError(t, err)
	assert.Equal(t, "QUJD", b64)
	assert.Equal(t, "image/png", mime)

	b64, mime, err = NormalizeImage("data:image/png;base64,QUJD", "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "QUJD", b64)
	assert.Equal(t, "image/webp", mime)

	_, _, err = NormalizeImage("not base64!", "")
	assert.ErrorIs(t, err, ErrInvalidBase64)

	b64, mime, err = NormalizeImage("data:text/html;base64,PHNjcmlwdD4=", "")
	require.NoError(t, err)
	assert.Equal(t, "PHNjcmlwdD4=", b64)
	assert.Empty(t, mime)

	_, mime, err = NormalizeImage("iVBORw0KGgo=", "text/html")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, mime, err = NormalizeImage("QUJD", " IMAGE/WEBP ")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", mime)
}

func TestKnownImageMimeType(t *testing.T) {
	assert.True(t, KnownImageMimeType("image/jpeg"))
	assert.True(t, KnownImageMimeType("image/x-icon"))
	assert.False(t, KnownImageMimeType("text/html"))
	assert.False(t, KnownImageMimeType("image/svg+xml"))
}

func TestEncodeImage(t *testing.T) {
	t.Run("png accepted", func(t *testing.T) {
		b64, mime, err := EncodeImage(bytes.NewReader(pngHeader), MaxImageBytes)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
		assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), b64)
		assert.Equal(t, len(pngHeader), Base64ByteLength(b64))
	})

	t.Run("jpeg accepted", func(t *testing.T) {
		_, mime, err := EncodeImage(bytes.NewReader([]byte("\xFF\xD8\xFF\xE0\x00\x10JFIF")), MaxImageBytes)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
	})

	t.Run("gif rejected", func(t *testing.T) {
		_, _, err := EncodeImage(strings.NewReader("GIF89a\x01\x00\x01\x00"), MaxImageBytes)
		assert.ErrorIs(t, err, ErrUnsupportedImageType)
	})

	t.Run("oversized rejected", func(t *testing.T) {
		data := append(append([]byte{}, pngHeader...), make([]byte, 32)...)
		_, _, err := EncodeImage(bytes.NewReader(data), 16)
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, _, err := EncodeImage(bytes.NewReader(nil), MaxImageBytes)
		assert.ErrorIs(t, err, ErrEmptyImage)
	})
}

func TestDecodeImage(t *testing.T) {
	b64 := base64.StdEncoding.EncodeToString(pngHeader)

	data, mime, err := DecodeImage(b64, "")
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, "image/png", mime)

	_, mime, err = DecodeImage("data:image/webp;base64,"+b64, "")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", mime)

	_, _, err = DecodeImage("%%%", "")
	assert.ErrorIs(t, err, ErrInvalidBase64)

	_, mime, err = DecodeImage("data:text/html;base64,PHNjcmlwdD4=", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultImageMimeType, mime)

	_, mime, err = DecodeImage(b64, "image/svg+xml")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}
