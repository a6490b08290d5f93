package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// localeResponse is one approved locale plus its translation progress.
type localeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PluralCount int    `json:"plural_count"`
	PluralForms string `json:"plural_forms"`
	Total       int64  `json:"total"`
	Translated  int64  `json:"translated"`
	Percentage  int    `json:"percentage"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// ListLocales returns every approved target locale with its stats.
func (h *Handlers) ListLocales(c *gin.Context) {
	locales, err := h.catalog.Approved(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	aggregates, err := h.stats.GetForLocales(c.Request.Context(), locales)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]localeResponse, 0, len(locales))
	for i, locale := range locales {
		entry := localeResponse{
			ID:          locale.ID,
			Name:        locale.Name,
			PluralCount: locale.PluralCount,
			PluralForms: locale.PluralForms,
		}
		if stat := aggregates[i]; stat != nil {
			entry.Total = stat.Total
			entry.Translated = stat.Translated
			entry.Percentage = stat.Percentage()
			if stat.LastUpdated.Valid {
				entry.LastUpdated = stat.LastUpdated.Time.UTC().Format(time.RFC3339)
			}
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, gin.H{"locales": response})
}
