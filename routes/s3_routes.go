package routes

import (
	"flare_server/controllers"
	"flare_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up the presigned photo URL routes
func RegisterS3Routes(r *mux.Router, service *services.S3Service) {
	controller := controllers.NewS3Controller(service)

	r.HandleFunc("/photos/upload-url", controller.HandleGenerateUploadURL).Methods("POST")
	r.HandleFunc("/photos/read-url", controller.HandleGenerateReadURL).Methods("POST")
}
