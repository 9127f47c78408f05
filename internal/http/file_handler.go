package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mbella/transvoyages/internal/storage"
)

// maxUploadBytes caps attachment size at 20 MiB, enough for voice notes and
// phone photos.
const maxUploadBytes = 20 << 20

func (h *Handler) uploadFile(c *gin.Context) {
	if _, ok := h.principal(c); !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	defer file.Close()

	name, err := h.files.Save(header.Filename, file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"name": name,
		"url":  h.files.SignedURL(name),
	})
}

// downloadFile serves a stored attachment. Access control is the signature
// itself, so media URLs work in image views without an Authorization header.
func (h *Handler) downloadFile(c *gin.Context) {
	name := c.Param("name")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expires"})
		return
	}

	if err := h.files.Verify(name, expires, c.Query("sig")); err != nil {
		switch {
		case errors.Is(err, storage.ErrExpiredLink):
			c.JSON(http.StatusForbidden, gin.H{"error": "link expired"})
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
		}
		return
	}

	f, err := h.files.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		h.handleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, f)
}
