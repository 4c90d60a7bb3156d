package api

import (
	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/server"
	"github.com/traduckxion/transcribe/transcription"
)

type correctionRequest struct {
	Text     string               `json:"text" validate:"required"`
	Sector   transcription.Sector `json:"sector" validate:"required,oneof=general medical legal education business media"`
	Language string               `json:"language" validate:"required,langcode"`
}

type correctionResponse struct {
	Text        string                     `json:"text"`
	Corrections []transcription.Correction `json:"corrections"`
}

type qualityRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *Handler) correct(c *gin.Context) {
	var req correctionRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	text, applied := h.svc.Corrector().Apply(req.Text, req.Sector, req.Language)
	if applied == nil {
		applied = []transcription.Correction{}
	}
	server.RespondOK(c, correctionResponse{Text: text, Corrections: applied})
}

func (h *Handler) quality(c *gin.Context) {
	var req qualityRequest
	if err := bindJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, transcription.QualityCheck(req.Text))
}
