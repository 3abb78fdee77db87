package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"campuscare-be/config"
	"campuscare-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

// UploadImage stores an issue photo in GridFS and returns the URL to
// reference from the issue's imageUrl field. Only image/* content up to
// 5MB is accepted, checked before anything touches the store.
func UploadImage(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an image file"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image size must be less than 5MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	bucket, err := gridfs.NewBucket(config.ConnectDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open storage bucket"})
		return
	}

	objectName := fmt.Sprintf("issues/%s/%d_%s", user.ID.Hex(), time.Now().UnixMilli(), fileHeader.Filename)

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"contentType": contentType,
		"uploadedBy":  user.ID,
	})

	fileID, err := bucket.UploadFromStream(objectName, file, uploadOpts)
	if err != nil {
		config.Logger.Error().Err(err).Msg("Error uploading image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   fileID,
		"name": objectName,
		"url":  "/api/files/" + fileID.Hex(),
	})
}

// DownloadImage streams a stored issue photo back to the client
func DownloadImage(c *gin.Context) {
	fileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	bucket, err := gridfs.NewBucket(config.ConnectDB())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open storage bucket"})
		return
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer stream.Close()

	meta := stream.GetFile()
	contentType := "application/octet-stream"
	if meta.Metadata != nil {
		var md struct {
			ContentType string `bson:"contentType"`
		}
		if err := bson.Unmarshal(meta.Metadata, &md); err == nil && md.ContentType != "" {
			contentType = md.ContentType
		}
	}

	c.DataFromReader(http.StatusOK, meta.Length, contentType, stream, nil)
}
