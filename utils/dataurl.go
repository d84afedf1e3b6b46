package utils

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode"
)

// Image size policy. Files are checked before encoding; the encoded payload is
// checked against the document ceiling minus room for the other fields.
const (
	MaxImageBytes        = 1 << 20
	DocumentLimitBytes   = 1 << 20
	DocumentBufferBytes  = 100 << 10
	MaxEncodedImageBytes = DocumentLimitBytes - DocumentBufferBytes
	DefaultImageMimeType = "image/jpeg"
)

var (
	ErrImageTooLarge        = errors.New("image exceeds the 1MB file limit")
	ErrEmptyImage           = errors.New("image file is empty")
	ErrUnsupportedImageType = errors.New("only JPEG, PNG and WEBP images are accepted")
	ErrDocumentTooLarge     = errors.New("encoded image exceeds the document size limit")
	ErrInvalidBase64        = errors.New("image is not valid base64")
)

type mimeRule struct {
	prefix string
	mime   string
}

// Evaluated in order, first match wins. Anything unmatched is labelled JPEG,
// which can mislabel unrecognised payloads.
var imageMimeRules = []mimeRule{
	{prefix: "iVBORw0KGgo", mime: "image/png"},
	{prefix: "/9j/", mime: "image/jpeg"},
	{prefix: "R0lGOD", mime: "image/gif"},
	{prefix: "UklGR", mime: "image/webp"},
	{prefix: "AAAB", mime: "image/x-icon"},
}

var acceptedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// KnownImageMimeType reports whether mimeType is one the site will store and serve.
func KnownImageMimeType(mimeType string) bool {
	for _, rule := range imageMimeRules {
		if rule.mime == mimeType {
			return true
		}
	}
	return false
}

// imageMimeFor keeps mimeType only when it names a known image type; otherwise
// the type is sniffed from b64 and may come back empty.
func imageMimeFor(b64, mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if KnownImageMimeType(mimeType) {
		return mimeType
	}
	return GuessImageMimeType(b64)
}

var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,`)

func normalizeBase64(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

// ExtractMimeType returns the mime type of a base64 data URL, or "".
func ExtractMimeType(value string) string {
	match := dataURLPattern.FindStringSubmatch(value)
	if match == nil {
		return ""
	}
	return match[1]
}

// StripDataURLPrefix returns the bare, whitespace-free base64 part of value.
func StripDataURLPrefix(value string) string {
	if idx := strings.IndexByte(value, ','); idx != -1 {
		return normalizeBase64(value[idx+1:])
	}
	return normalizeBase64(value)
}

// GuessImageMimeType matches known magic-byte prefixes of base64 image data.
func GuessImageMimeType(b64 string) string {
	sanitized := normalizeBase64(b64)
	for _, rule := range imageMimeRules {
		if strings.HasPrefix(sanitized, rule.prefix) {
			return rule.mime
		}
	}
	return ""
}

// BuildDataURL turns bare base64 and an optional mime type into a data URL.
// Values that already are data URLs are returned unchanged.
func BuildDataURL(b64, mimeType string) string {
	if b64 == "" {
		return ""
	}
	if strings.HasPrefix(b64, "data:") {
		return b64
	}
	sanitized := normalizeBase64(b64)
	mime := mimeType
	if mime == "" {
		mime = GuessImageMimeType(sanitized)
	}
	if mime == "" {
		mime = DefaultImageMimeType
	}
	return "data:" + mime + ";base64," + sanitized
}

// Base64ByteLength is the decoded size of b64: floor(len*3/4) minus padding.
func Base64ByteLength(b64 string) int {
	sanitized := normalizeBase64(b64)
	padding := 0
	switch {
	case strings.HasSuffix(sanitized, "=="):
		padding = 2
	case strings.HasSuffix(sanitized, "="):
		padding = 1
	}
	return len(sanitized)*3/4 - padding
}

// CheckEncodedSize rejects base64 payloads whose decoded size exceeds max.
func CheckEncodedSize(b64 string, max int) error {
	if Base64ByteLength(b64) > max {
		return ErrDocumentTooLarge
	}
	return nil
}

// NormalizeImage prepares an incoming image field for storage: data URL
// prefixes are stripped (their mime kept when none was given) and the base64
// is validated. Mime types outside the known image set are replaced by the
// sniffed type, or "" when the bytes are not recognised.
func NormalizeImage(value, mimeType string) (string, string, error) {
	if value == "" {
		return "", "", nil
	}
	if mimeType == "" {
		mimeType = ExtractMimeType(value)
	}
	b64 := StripDataURLPrefix(value)
	if _, err := base64.StdEncoding.DecodeString(b64); err != nil {
		return "", "", ErrInvalidBase64
	}
	return b64, imageMimeFor(b64, mimeType), nil
}

// EncodeImage reads an uploaded file and returns bare base64 plus the sniffed
// mime type. Oversized files are rejected before encoding.
func EncodeImage(r io.Reader, maxBytes int64) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", "", err
	}
	if int64(len(data)) > maxBytes {
		return "", "", ErrImageTooLarge
	}
	if len(data) == 0 {
		return "", "", ErrEmptyImage
	}

	mimeType := http.DetectContentType(data)
	if _, ok := acceptedUploadTypes[mimeType]; !ok {
		return "", "", ErrUnsupportedImageType
	}
	return base64.StdEncoding.EncodeToString(data), mimeType, nil
}

// DecodeImage returns the raw bytes and the effective mime type of a stored
// image. The result is always an image/* type.
func DecodeImage(value, mimeType string) ([]byte, string, error) {
	if mimeType == "" {
		mimeType = ExtractMimeType(value)
	}
	b64 := StripDataURLPrefix(value)
	mimeType = imageMimeFor(b64, mimeType)
	if mimeType == "" {
		mimeType = DefaultImageMimeType
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", ErrInvalidBase64
	}
	return data, mimeType, nil
}
