package model

// Report is a citizen report about public transit service.
// Anexos is only populated by queries that load attachments eagerly.
type Report struct {
	ID           int64        `json:"id"`
	Nome         string       `json:"nome"`
	Contato      *string      `json:"contato"`
	Instituicao  string       `json:"instituicao"`
	DataOcorrido Date         `json:"data_ocorrido"`
	RelatoTexto  string       `json:"relato_texto"`
	Anexos       []Attachment `json:"anexos,omitempty"`
}

// Attachment is a file submitted together with a Report.
// Data holds the raw payload; StorageKey is set instead when the payload lives in object storage.
type Attachment struct {
	ID         int64  `json:"id"`
	ReportID   int64  `json:"relato_id"`
	Filename   string `json:"filename"`
	MimeType   string `json:"mimetype"`
	Data       []byte `json:"-"`
	StorageKey string `json:"-"`
}

// NewReport is the input of the create use case, as received from clients.
type NewReport struct {
	Nome         string          `json:"nome" form:"nome" validate:"required"`
	Contato      *string         `json:"contato" form:"contato"`
	Instituicao  string          `json:"instituicao" form:"instituicao" validate:"required"`
	DataOcorrido string          `json:"data_ocorrido" form:"data_ocorrido" validate:"required,datetime=2006-01-02"`
	RelatoTexto  string          `json:"relato_texto" form:"relato_texto" validate:"required"`
	Anexos       []NewAttachment `json:"anexos" form:"-" validate:"dive"`
}

// NewAttachment carries one attachment payload in its base64 transport form.
type NewAttachment struct {
	Filename    string `json:"filename" validate:"required"`
	MimeType    string `json:"mimetype" validate:"required"`
	DadosBase64 string `json:"dados_base64"`
}
