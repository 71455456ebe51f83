package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/middlewares"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, ownerID, name, mimeType string, size int64, r io.Reader, kinds ...string) (*models.MediaFile, error) {
	args := m.Called(ctx, ownerID, name, mimeType, size, r, kinds)
	var file *models.MediaFile
	if args.Get(0) != nil {
		file = args.Get(0).(*models.MediaFile)
	}
	return file, args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, uid, fileID string) error {
	return m.Called(ctx, uid, fileID).Error(0)
}

func mediaTestRouter(uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middlewares.CtxUID, uid)
		c.Next()
	})
	r.POST("/media", UploadMedia)
	r.DELETE("/media/:file_id", DeleteMedia)
	return r
}

func multipartUpload(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(payload)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func TestUploadMediaHandler(t *testing.T) {
	mockSvc := new(MockMediaService)
	SetMediaService(mockSvc)
	r := mediaTestRouter("u1")

	mockSvc.On("Upload", mock.Anything, "u1", "cat.png", "image/png", int64(8), mock.Anything, []string(nil)).
		Return(&models.MediaFile{ID: "f1", Name: "cat.png", OwnerID: "u1"}, nil)

	body, contentType := multipartUpload(t, "cat.png", "image/png", []byte("pngbytes"))
	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUploadMediaHandlerMissingFile(t *testing.T) {
	mockSvc := new(MockMediaService)
	SetMediaService(mockSvc)
	r := mediaTestRouter("u1")

	req := httptest.NewRequest(http.MethodPost, "/media", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadMediaHandlerRejectsDisallowedType(t *testing.T) {
	mockSvc := new(MockMediaService)
	SetMediaService(mockSvc)
	r := mediaTestRouter("u1")

	mockSvc.On("Upload", mock.Anything, "u1", "tool.exe", "application/x-msdownload", int64(4), mock.Anything, []string(nil)).
		Return(nil, services.ErrDisallowedType)

	body, contentType := multipartUpload(t, "tool.exe", "application/x-msdownload", []byte("MZxx"))
	req := httptest.NewRequest(http.MethodPost, "/media", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMediaHandler(t *testing.T) {
	mockSvc := new(MockMediaService)
	SetMediaService(mockSvc)
	r := mediaTestRouter("u1")

	mockSvc.On("Delete", mock.Anything, "u1", "f1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/media/f1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
