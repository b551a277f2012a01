package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/go-barber/internal/application"
	"github.com/oksasatya/go-barber/internal/interface/middleware"
	"github.com/oksasatya/go-barber/pkg/response"
)

// maxAvatarSize bounds the multipart upload.
const maxAvatarSize = 5 << 20

type FileHandler struct {
	Svc    *app.FileService
	Logger *logrus.Logger
	view   presenter
}

func NewFileHandler(svc *app.FileService, logger *logrus.Logger, filesURL string) *FileHandler {
	return &FileHandler{Svc: svc, Logger: logger, view: newPresenter(filesURL)}
}

// Upload POST /api/files (multipart field "file")
func (h *FileHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "validation fails", map[string]string{"file": "is required"})
		return
	}
	src, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer src.Close()

	f, err := h.Svc.Upload(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), src, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, h.view.file(f), "file uploaded", nil)
}
