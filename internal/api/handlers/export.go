package handlers

import (
	"github.com/commtrans/ct-backend-go/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ExportPo streams the locale's active translations as a PO catalog.
func (h *Handlers) ExportPo(c *gin.Context) {
	h.export(c, false)
}

// ExportPoGz streams the locale's active translations as a gzipped PO
// catalog.
func (h *Handlers) ExportPoGz(c *gin.Context) {
	h.export(c, true)
}

func (h *Handlers) export(c *gin.Context, compressed bool) {
	locale, err := h.catalog.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if locale == nil {
		h.respondError(c, errors.NotFound("unknown_locale", "Unknown locale"))
		return
	}

	file, err := h.exporter.ForLocale(c.Request.Context(), locale)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if compressed {
		c.Header("Content-Type", "application/gzip")
		c.Header("Content-Disposition", `attachment; filename="`+locale.ID+`.po.gz"`)
		if err := h.exporter.WritePoGz(file, c.Writer); err != nil {
			h.logger.WithError(err).WithField("locale", locale.ID).Error("Failed to stream export")
		}
		return
	}

	c.Header("Content-Type", "text/x-gettext-translation; charset=UTF-8")
	c.Header("Content-Disposition", `attachment; filename="`+locale.ID+`.po"`)
	if err := h.exporter.WritePo(file, c.Writer); err != nil {
		h.logger.WithError(err).WithField("locale", locale.ID).Error("Failed to stream export")
	}
}
