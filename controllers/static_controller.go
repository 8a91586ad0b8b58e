package controllers

import (
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"rental-admin/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// StaticController serves the page bundle from Root. Unknown paths fall
// back to index.html, except under /api.
type StaticController struct {
	Root string
}

func NewStaticController(root string) *StaticController {
	return &StaticController{Root: root}
}

func (sc *StaticController) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		utils.JSONError(c, http.StatusMethodNotAllowed, "método no permitido")
		return
	}
	urlPath := path.Clean("/" + c.Request.URL.Path)
	if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
		utils.JSONError(c, http.StatusNotFound, "recurso no encontrado")
		return
	}

	file := filepath.Join(sc.Root, filepath.FromSlash(urlPath))
	if info, err := os.Stat(file); err != nil || info.IsDir() {
		file = filepath.Join(sc.Root, "index.html")
		if _, err := os.Stat(file); err != nil {
			utils.JSONError(c, http.StatusNotFound, "recurso no encontrado")
			return
		}
	}

	c.Header("Content-Type", ContentType(file))
	c.File(file)
}

// ContentType resolves a file's type from its extension, sniffing the
// content when the extension is unknown.
func ContentType(file string) string {
	if ct := mime.TypeByExtension(filepath.Ext(file)); ct != "" {
		return ct
	}
	mt, err := mimetype.DetectFile(file)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}
