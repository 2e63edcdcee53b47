package controllers

import (
	"net/http"

	"flare_server/models"
	"flare_server/services"
)

// S3Controller hands out presigned URLs so photo bytes never pass through
// this service.
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleGenerateUploadURL - caller requests a presigned upload URL for a photo
func (c *S3Controller) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	callerID, ok := requireActor(w, r, "")
	if !ok {
		return
	}
	if request.FileName == "" || request.FileType == "" {
		respondError(w, models.ErrInvalidArgument("fileName and fileType are required"))
		return
	}

	uploadURL, key, err := c.S3Service.GenerateUploadURL(r.Context(), callerID, request.FileName, request.FileType)
	if err != nil {
		respondError(w, models.ErrInternal("failed to generate upload URL", err, true))
		return
	}
	respondSuccess(w, map[string]interface{}{
		"uploadUrl": uploadURL,
		"key":       key,
	})
}

// HandleGenerateReadURL - caller requests a presigned read URL for a photo key
func (c *S3Controller) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Key string `json:"key"`
	}
	if !decodeBody(w, r, &request) {
		return
	}
	if _, ok := requireActor(w, r, ""); !ok {
		return
	}
	if request.Key == "" {
		respondError(w, models.ErrInvalidArgument("key is required"))
		return
	}

	readURL, err := c.S3Service.GenerateReadURL(r.Context(), request.Key)
	if err != nil {
		respondError(w, models.ErrInternal("failed to generate read URL", err, true))
		return
	}
	respondSuccess(w, map[string]interface{}{"readUrl": readURL})
}
