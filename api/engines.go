package api

import (
	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/server"
	"github.com/traduckxion/transcribe/transcription"
)

type selectRequest struct {
	Language string               `json:"language" validate:"required,langcode"`
	Sector   transcription.Sector `json:"sector" validate:"omitempty,oneof=general medical legal education business media"`
}

type sectorsResponse struct {
	Sectors      []transcription.Sector         `json:"sectors"`
	Languages    []string                       `json:"languages"`
	Dictionaries transcription.SectorDictionary `json:"dictionaries"`
}

func (h *Handler) listEngines(c *gin.Context) {
	server.RespondList(c, h.svc.Engines())
}

func (h *Handler) getEngine(c *gin.Context) {
	id := c.Param("id")
	e, ok := h.svc.Catalog().Engine(id)
	if !ok {
		server.RespondWithError(c, errors.NotFound("engine", id))
		return
	}
	server.RespondOK(c, e)
}

func (h *Handler) selectEngine(c *gin.Context) {
	var req selectRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	e, err := h.svc.SelectBestEngine(req.Language, req.Sector.OrGeneral())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, e)
}

func (h *Handler) listSectors(c *gin.Context) {
	cat := h.svc.Catalog()
	server.RespondOK(c, sectorsResponse{
		Sectors:      cat.Sectors(),
		Languages:    cat.Languages(),
		Dictionaries: cat.SectorDictionaries(),
	})
}
