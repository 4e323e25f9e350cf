package controllers

import (
	"errors"
	"net/http"

	"github.com/croissanceConsulting/coaching-sportif-tracker/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type EbookController struct {
	Ebooks *services.EbookService
	Log    zerolog.Logger
}

func NewEbookController(ebooks *services.EbookService, log zerolog.Logger) *EbookController {
	return &EbookController{Ebooks: ebooks, Log: log}
}

// GET /ebooks
func (ec *EbookController) List(c *gin.Context) {
	books := ec.Ebooks.GetPublishedEbooks(c.Request.Context())
	if c.Request.Context().Err() != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ebooks": books})
}

// GET /ebooks/:id/download
func (ec *EbookController) Download(c *gin.Context) {
	_, link, err := ec.Ebooks.DownloadURL(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrEbookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "eBook introuvable"})
		return
	case errors.Is(err, services.ErrNoDownloadLink):
		c.JSON(http.StatusNotFound, gin.H{"error": "Le lien de téléchargement n'est pas disponible."})
		return
	case err != nil:
		ec.Log.Error().Err(err).Str("ebook_id", c.Param("id")).Msg("failed to build download link")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Le lien de téléchargement n'est pas disponible."})
		return
	}
	c.Redirect(http.StatusFound, link)
}
