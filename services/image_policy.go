package services

import "samiratravel/utils"

// normalizeImageField strips data URL prefixes and enforces the encoded size ceiling.
func normalizeImageField(image, mimeType string) (string, string, error) {
	b64, mime, err := utils.NormalizeImage(image, mimeType)
	if err != nil {
		return "", "", err
	}
	if err := utils.CheckEncodedSize(b64, utils.MaxEncodedImageBytes); err != nil {
		return "", "", err
	}
	return b64, mime, nil
}
