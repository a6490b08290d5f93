package handlers

import (
	"net/http"

	"github.com/commtrans/ct-backend-go/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ImportPackageTranslatables registers the source strings of a package
// version from an uploaded POT template.
func (h *Handlers) ImportPackageTranslatables(c *gin.Context) {
	handle := c.Param("handle")
	version := c.Param("version")
	if handle == "" || version == "" {
		h.respondError(c, errors.BadRequest("bad_package", "Package handle and version are required"))
		return
	}

	set, ok := h.readCatalog(c)
	if !ok {
		return
	}

	added, err := h.translatables.ImportSourceStrings(c.Request.Context(), set, handle, version)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"package": handle,
		"version": version,
		"strings": len(set.Units),
		"added":   added,
	})
}
