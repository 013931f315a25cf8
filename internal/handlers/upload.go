package handlers

import (
	"net/http"

	"github.com/virtual-defence/vds-backend/internal/config"
	"github.com/virtual-defence/vds-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// UploadFile handles profile-picture uploads to Cloudinary. Failure surfaces
// as a single user-visible error; nothing is retried.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if requireUser(w, r) == nil {
		return
	}

	if cloudinaryService == nil {
		writeMessage(w, http.StatusServiceUnavailable, false, "file uploads are not available")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "no file provided")
		return
	}
	defer file.Close()

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "vds"
	}

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
