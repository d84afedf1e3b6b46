package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiratravel/models"
	"samiratravel/utils"
)

func uploadRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "photo.bin")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadImage_EncodesPNG(t *testing.T) {
	rec := httptest.NewRecorder()
	UploadImage(rec, uploadRequest(t, "file", pngBytes))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var encoded models.EncodedImage
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &encoded))
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngBytes), encoded.Image)
	assert.Equal(t, "image/png", encoded.ImageMimeType)
	assert.Equal(t, "data:image/png;base64,"+encoded.Image, encoded.DataURL)
	assert.Equal(t, len(pngBytes), encoded.Bytes)
}

func TestUploadImage_Rejections(t *testing.T) {
	oversized := append(append([]byte{}, pngBytes...), make([]byte, utils.MaxImageBytes)...)

	cases := []struct {
		name   string
		field  string
		data   []byte
		status int
	}{
		{"gif is unsupported", "file", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), http.StatusUnsupportedMediaType},
		{"over 1MB", "file", oversized, http.StatusRequestEntityTooLarge},
		{"empty file", "file", nil, http.StatusBadRequest},
		{"missing field", "image", pngBytes, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			UploadImage(rec, uploadRequest(t, tc.field, tc.data))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}
}
