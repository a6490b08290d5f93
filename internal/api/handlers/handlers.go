// Package handlers contains the HTTP handlers of the translation backend.
package handlers

import (
	stderrors "errors"

	"github.com/commtrans/ct-backend-go/internal/config"
	"github.com/commtrans/ct-backend-go/internal/core/catalog"
	"github.com/commtrans/ct-backend-go/internal/core/exporter"
	"github.com/commtrans/ct-backend-go/internal/core/importer"
	"github.com/commtrans/ct-backend-go/internal/core/stats"
	"github.com/commtrans/ct-backend-go/internal/core/translatable"
	"github.com/commtrans/ct-backend-go/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handlers aggregates the services the HTTP layer dispatches into.
type Handlers struct {
	config        *config.Config
	catalog       *catalog.Service
	importer      *importer.Importer
	exporter      *exporter.Service
	translatables *translatable.Service
	stats         *stats.Service
	logger        *logrus.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(
	cfg *config.Config,
	cat *catalog.Service,
	imp *importer.Importer,
	exp *exporter.Service,
	trans *translatable.Service,
	st *stats.Service,
	logger *logrus.Logger,
) *Handlers {
	return &Handlers{
		config:        cfg,
		catalog:       cat,
		importer:      imp,
		exporter:      exp,
		translatables: trans,
		stats:         st,
		logger:        logger,
	}
}

// respondError writes an error as JSON. Errors that are not AppErrors are
// logged and reported as an opaque 500.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Internal(err, "Internal server error")
	}
	if appErr.Status >= 500 {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).Error("Request failed")
	}
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
