package api

import (
	"os"            // Directory creation
	"path/filepath" // Extension handling
	"strings"       // Case folding

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Collision-free file names
	"github.com/sirupsen/logrus" // Logging library
)

// allowedImageExt lists the extensions accepted by the upload endpoint
var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// UploadImageHandler stores a multipart "image" file under dir and returns
// its public URL below /images
func UploadImageHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			respondMessage(c, "No file uploaded")
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExt[ext] {
			respondMessage(c, "Unsupported file type")
			return
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.WithField("dir", dir).Errorf("cannot create images dir: %v", err)
			respondMessage(c, "Upload failed")
			return
		}
		name := uuid.NewString() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			logrus.WithField("file", name).Errorf("cannot save upload: %v", err)
			respondMessage(c, "Upload failed")
			return
		}
		logrus.WithFields(logrus.Fields{"file": name, "size": file.Size}).Info("Image uploaded")
		respondOK(c, "", gin.H{"filename": name, "url": "/images/" + name})
	}
}
