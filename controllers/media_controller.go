package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

var mediaService MediaServiceInterface

func SetMediaService(service MediaServiceInterface) {
	mediaService = service
}

// UploadMedia accepts a multipart upload into the caller's media
// bucket. The optional "kinds" form field narrows the accepted media
// kinds for the call.
func UploadMedia(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	if header.Size > services.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrFileTooLarge.Error()})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	uid := senderFrom(c).UID
	kinds := c.PostFormArray("kinds")
	file, err := mediaService.Upload(c.Request.Context(), uid, header.Filename,
		header.Header.Get("Content-Type"), header.Size, f, kinds...)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": file})
}

func DeleteMedia(c *gin.Context) {
	uid := senderFrom(c).UID
	if err := mediaService.Delete(c.Request.Context(), uid, c.Param("file_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": "deleted"})
}
