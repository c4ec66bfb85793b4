package handler

import (
	"relatosapi/internal/codec"
	"relatosapi/internal/model"
)

// AttachmentResponse is an attachment with its payload in transport form.
type AttachmentResponse struct {
	ID          int64  `json:"id"`
	RelatoID    int64  `json:"relato_id"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mimetype"`
	DadosBase64 string `json:"dados_base64"`
}

// ReportSummary is report metadata as returned by the listing endpoint.
type ReportSummary struct {
	ID           int64      `json:"id"`
	Nome         string     `json:"nome"`
	Contato      *string    `json:"contato"`
	Instituicao  string     `json:"instituicao"`
	DataOcorrido model.Date `json:"data_ocorrido" swaggertype:"string" example:"2024-03-01"`
	RelatoTexto  string     `json:"relato_texto"`
}

// ReportResponse is a report with every attachment. Anexos is always present, possibly empty.
type ReportResponse struct {
	ReportSummary
	Anexos []AttachmentResponse `json:"anexos"`
}

// MessageResponse is the liveness payload.
type MessageResponse struct {
	Message string `json:"message"`
}

func toSummary(r model.Report) ReportSummary {
	return ReportSummary{
		ID:           r.ID,
		Nome:         r.Nome,
		Contato:      r.Contato,
		Instituicao:  r.Instituicao,
		DataOcorrido: r.DataOcorrido,
		RelatoTexto:  r.RelatoTexto,
	}
}

func toResponse(r model.Report) ReportResponse {
	out := ReportResponse{
		ReportSummary: toSummary(r),
		Anexos:        make([]AttachmentResponse, 0, len(r.Anexos)),
	}
	for _, a := range r.Anexos {
		out.Anexos = append(out.Anexos, AttachmentResponse{
			ID:          a.ID,
			RelatoID:    a.ReportID,
			Filename:    a.Filename,
			MimeType:    a.MimeType,
			DadosBase64: codec.Encode(a.Data),
		})
	}
	return out
}

func toSummaries(items []model.Report) []ReportSummary {
	out := make([]ReportSummary, 0, len(items))
	for _, r := range items {
		out = append(out, toSummary(r))
	}
	return out
}

func toResponses(items []model.Report) []ReportResponse {
	out := make([]ReportResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toResponse(r))
	}
	return out
}
