package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"wedding-hall-server/config"
	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
)

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

// RegisterMediaRoutes registers Cloudinary-backed image uploads
func RegisterMediaRoutes(router *gin.RouterGroup) {
	media := router.Group("/media")
	media.Use(middleware.AuthMiddleware())
	{
		media.POST("/hall-images", middleware.RequireRole(models.RoleHallManager), uploadHallImages)
		media.POST("/provider-photo", middleware.RequireRole(models.RoleServiceProvider), uploadProviderPhoto)
	}
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}
	return cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName))
}

func uploadImage(ctx context.Context, cld *cloudinary.Cloudinary, header *multipart.FileHeader, folder string) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	overwrite := true
	unique := true
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// uploadHallImages uploads listing photos and appends them to the manager's
// hall profile
func uploadHallImages(c *gin.Context) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid form data",
			"message": "Expected multipart form upload",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid form data",
			"message": "Expected multipart form upload",
		})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No files provided",
			"message": "Attach at least one image under the images field",
		})
		return
	}
	if len(headers) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Too many files",
			"message": "At most 10 images per upload",
		})
		return
	}

	for _, h := range headers {
		if !validateImageFile(h) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid image",
				"message": fmt.Sprintf("%s is not a valid image (jpg/png/webp, max 5MB)", h.Filename),
			})
			return
		}
	}

	cld, err := newCloudinary()
	if err != nil {
		log.Printf("❌ Cloudinary init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload unavailable",
			"message": "Image uploads are not configured",
		})
		return
	}

	ctx := context.Background()
	var urls []string
	for _, h := range headers {
		url, err := uploadImage(ctx, cld, h, "halls")
		if err != nil {
			log.Printf("❌ Upload failed for %s: %v", h.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Upload failed",
				"message": fmt.Sprintf("Failed to upload %s", h.Filename),
			})
			return
		}
		urls = append(urls, url)
	}

	profile.Images = append(profile.Images, urls...)
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Images uploaded but the profile update failed",
		})
		return
	}

	log.Printf("📸 %d hall image(s) uploaded for manager %d", len(urls), profile.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Images uploaded successfully",
		"images":  profile.Images,
	})
}

// uploadProviderPhoto uploads the provider's profile photo
func uploadProviderPhoto(c *gin.Context) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No file provided",
			"message": "Attach an image under the photo field",
		})
		return
	}
	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid image",
			"message": "Photo must be jpg/png/webp and at most 5MB",
		})
		return
	}

	cld, err := newCloudinary()
	if err != nil {
		log.Printf("❌ Cloudinary init failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload unavailable",
			"message": "Image uploads are not configured",
		})
		return
	}

	url, err := uploadImage(context.Background(), cld, header, "providers")
	if err != nil {
		log.Printf("❌ Upload failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload failed",
			"message": "Failed to upload photo",
		})
		return
	}

	profile.ProfilePhoto = &url
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Photo uploaded but the profile update failed",
		})
		return
	}

	log.Printf("📸 Profile photo updated for provider %d", profile.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Photo uploaded successfully",
		"photo":   url,
	})
}
