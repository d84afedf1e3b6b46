package handlers

import (
	"errors"
	"net/http"

	"samiratravel/logger"
	"samiratravel/middleware"
	"samiratravel/models"
	"samiratravel/utils"
)

// multipart envelope allowance on top of the file ceiling
const uploadOverhead = 64 << 10

// UploadImage 이미지 인코딩
// @Summary Encode an image
// @Description Reads a JPEG, PNG or WEBP file of at most 1MB and returns it as base64 ready to store in a document.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} models.APIResponse{data=models.EncodedImage}
// @Failure 400 {object} models.APIResponse
// @Failure 413 {object} models.APIResponse
// @Failure 415 {object} models.APIResponse
// @Router /api/admin/images [post]
func UploadImage(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.RequestIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxImageBytes+uploadOverhead)
	if err := r.ParseMultipartForm(utils.MaxImageBytes + uploadOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse(utils.ErrImageTooLarge.Error(), nil))
			return
		}
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("Failed to parse upload request", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse("File field is required", err))
		return
	}
	defer file.Close()

	if header.Size > utils.MaxImageBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse(utils.ErrImageTooLarge.Error(), nil))
		return
	}

	b64, mimeType, err := utils.EncodeImage(file, utils.MaxImageBytes)
	if err == nil {
		err = utils.CheckEncodedSize(b64, utils.MaxEncodedImageBytes)
	}
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"request_id": requestID,
			"filename":   header.Filename,
			"size":       header.Size,
			"error":      err.Error(),
		}).Warn("Image rejected")
		writeServiceError(w, r, err, "Failed to encode image")
		return
	}

	writeJSON(w, http.StatusOK, models.SuccessResponse("Image encoded", models.EncodedImage{
		Image:         b64,
		ImageMimeType: mimeType,
		DataURL:       utils.BuildDataURL(b64, mimeType),
		Bytes:         utils.Base64ByteLength(b64),
	}))
}
