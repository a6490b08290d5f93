package handlers

import (
	"bytes"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/commtrans/ct-backend-go/internal/api/middleware"
	"github.com/commtrans/ct-backend-go/internal/core/importer"
	"github.com/commtrans/ct-backend-go/internal/gettext"
	apperrors "github.com/commtrans/ct-backend-go/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/klauspost/compress/gzip"
)

// maxUploadSize bounds catalog uploads to 32 MiB.
const maxUploadSize = 32 << 20

// ImportTranslations merges an uploaded PO catalog into the locale's
// translations. The upload may be a multipart "file" field or the raw
// request body, optionally gzip compressed.
func (h *Handlers) ImportTranslations(c *gin.Context) {
	set, ok := h.readCatalog(c)
	if !ok {
		return
	}

	opts := importer.Options{
		UserID:      middleware.UserID(c),
		CheckLocale: h.config.Import.CheckLocale,
		CheckPlural: h.config.Import.CheckPlural,
	}
	if v, has := c.GetQuery("check_locale"); has {
		opts.CheckLocale = v == "1" || v == "true"
	}
	if v, has := c.GetQuery("check_plural"); has {
		opts.CheckPlural = v == "1" || v == "true"
	}

	result, err := h.importer.Import(c.Request.Context(), set, c.Param("id"), opts)
	if err != nil {
		var verr *importer.ValidationError
		if stderrors.As(err, &verr) {
			h.respondError(c, apperrors.New(validationStatus(verr.Kind), verr.Kind.String(), verr.Message))
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// validationStatus maps a precondition failure to an HTTP status.
func validationStatus(kind importer.ErrorKind) int {
	switch kind {
	case importer.UnknownLocale:
		return http.StatusNotFound
	case importer.AccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusUnprocessableEntity
	}
}

// readCatalog extracts and parses the uploaded PO catalog. On failure it
// writes the error response and returns ok=false.
func (h *Handlers) readCatalog(c *gin.Context) (*gettext.File, bool) {
	var reader io.Reader

	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		reader = file
	} else {
		reader = c.Request.Body
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxUploadSize+1))
	if err != nil {
		h.respondError(c, apperrors.BadRequest("bad_upload", "Failed to read upload"))
		return nil, false
	}
	if len(data) == 0 {
		h.respondError(c, apperrors.BadRequest("empty_upload", "Empty upload"))
		return nil, false
	}
	if len(data) > maxUploadSize {
		h.respondError(c, apperrors.New(http.StatusRequestEntityTooLarge, "upload_too_large", "Upload too large"))
		return nil, false
	}

	if kind, _ := filetype.Match(data); kind == matchers.TypeGz {
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			h.respondError(c, apperrors.BadRequest("bad_gzip", "Invalid gzip stream"))
			return nil, false
		}
		defer gz.Close()
		data, err = io.ReadAll(io.LimitReader(gz, maxUploadSize+1))
		if err != nil || len(data) > maxUploadSize {
			h.respondError(c, apperrors.BadRequest("bad_gzip", "Failed to decompress upload"))
			return nil, false
		}
	}

	set, err := gettext.Parse(bytes.NewReader(data))
	if err != nil {
		h.respondError(c, apperrors.BadRequest("bad_catalog", "Invalid PO catalog: "+err.Error()))
		return nil, false
	}
	return set, true
}
