package handlers

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "tradenook/internal/log"
	"tradenook/internal/validate"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadHandler stores listing photos under MediaDir.
type UploadHandler struct {
	MediaDir string
	MaxBytes int64
}

// POST /api/v1/uploads (multipart field "file")
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file")
	}
	if !validate.ImageName(fh.Filename) {
		applog.Security(c, "upload.reject", map[string]any{"name": fh.Filename, "reason": "extension"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only png, jpg, jpeg and gif images are accepted"})
	}
	if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
		applog.Security(c, "upload.reject", map[string]any{"name": fh.Filename, "size": fh.Size})
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "file too large"})
	}

	base := unsafeName.ReplaceAllString(filepath.Base(fh.Filename), "_")
	name := uuid.NewString() + "_" + strings.TrimLeft(base, ".")
	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		return err
	}
	if err := c.SaveFile(fh, filepath.Join(h.MediaDir, name)); err != nil {
		return err
	}
	applog.Audit(c, "upload.save", map[string]any{"name": name, "size": fh.Size})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": "/media/" + name})
}

// Media serves uploaded files from dir and refuses anything that could
// step outside it.
func Media(dir string) fiber.Handler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		full := filepath.Join(dir, clean)
		if fi, err := os.Stat(full); err != nil || fi.IsDir() {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(full, true)
	}
}
