package handler

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"relatosapi/internal/auth"
	"relatosapi/internal/codec"
	"relatosapi/internal/http/middleware"
	"relatosapi/internal/model"
	"relatosapi/internal/service"
	"relatosapi/internal/storage"
)

const livenessMessage = "API de Relatos do Transporte Público está no ar!"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything under /relatos requires the shared secret in the token header.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ReportService, gate *auth.Gate) {
	app.Get("/", Root())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	relatos := app.Group("/relatos", middleware.APIKey(gate))
	relatos.Post("/", CreateReport(svc))
	relatos.Get("/all", ListAllReports(svc))
	relatos.Get("/newest", ListNewestReports(svc))
	relatos.Get("/:id", GetReport(svc))
	relatos.Get("/:id/anexos/:anexoId", GetAttachment(svc))
}

// Root godoc
// @Summary Liveness message
// @Tags health
// @Produce json
// @Success 200 {object} MessageResponse
// @Router / [get]
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(MessageResponse{Message: livenessMessage})
	}
}

// HealthCheck godoc
// @Summary Database connectivity check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness probe for orchestrators.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateReport godoc
// @Summary Create a report
// @Description Accepts JSON with base64 attachments, or multipart/form-data with files under "anexos".
// @Tags relatos
// @Accept json,mpfd
// @Produce json
// @Param token header string true "Shared secret"
// @Param body body model.NewReport true "Report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /relatos/ [post]
func CreateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			in  model.NewReport
			err error
		)
		if strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEMultipartForm) {
			in, err = readMultipartReport(c)
		} else {
			err = c.App().Config().JSONDecoder(c.Body(), &in)
		}
		if err != nil {
			if ve, ok := typeMismatch(err); ok {
				return writeServiceError(c, ve)
			}
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "malformed request body")
		}

		rep, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*rep))
	}
}

// readMultipartReport maps form fields onto NewReport. Files under "anexos", or the single
// legacy "anexo" part, become attachments in submission order.
func readMultipartReport(c *fiber.Ctx) (model.NewReport, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return model.NewReport{}, err
	}
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	in := model.NewReport{
		Nome:         value("nome"),
		Instituicao:  value("instituicao"),
		DataOcorrido: value("data_ocorrido"),
		RelatoTexto:  value("relato_texto"),
	}
	if v, ok := form.Value["contato"]; ok && len(v) > 0 {
		in.Contato = &v[0]
	}

	files := make([]*multipart.FileHeader, 0, len(form.File["anexos"])+len(form.File["anexo"]))
	files = append(files, form.File["anexos"]...)
	files = append(files, form.File["anexo"]...)
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return model.NewReport{}, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return model.NewReport{}, err
		}

		ct := fh.Header.Get(fiber.HeaderContentType)
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		in.Anexos = append(in.Anexos, model.NewAttachment{
			Filename:    fh.Filename,
			MimeType:    ct,
			DadosBase64: codec.Encode(data),
		})
	}
	return in, nil
}

// ListAllReports godoc
// @Summary List every report
// @Description Metadata only, without attachments.
// @Tags relatos
// @Produce json
// @Param token header string true "Shared secret"
// @Success 200 {array} ReportSummary
// @Failure 403 {object} errorPayload
// @Router /relatos/all [get]
func ListAllReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListAll(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(toSummaries(items))
	}
}

// ListNewestReports godoc
// @Summary Newest reports
// @Description The most recent reports, newest first, with attachments.
// @Tags relatos
// @Produce json
// @Param token header string true "Shared secret"
// @Success 200 {array} ReportResponse
// @Failure 403 {object} errorPayload
// @Router /relatos/newest [get]
func ListNewestReports(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.ListNewest(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(toResponses(items))
	}
}

// GetReport godoc
// @Summary Get a report
// @Tags relatos
// @Produce json
// @Param token header string true "Shared secret"
// @Param id path int true "Report ID"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /relatos/{id} [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rep, err := svc.Get(c.UserContext(), int64(id))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(toResponse(*rep))
	}
}

// GetAttachment godoc
// @Summary Download an attachment
// @Description Raw bytes with the stored content type, or a redirect to object storage.
// @Tags relatos
// @Produce octet-stream
// @Param token header string true "Shared secret"
// @Param id path int true "Report ID"
// @Param anexoId path int true "Attachment ID"
// @Success 200 {file} file
// @Success 307
// @Failure 404 {object} errorPayload
// @Router /relatos/{id}/anexos/{anexoId} [get]
func GetAttachment(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		anexoID, err := c.ParamsInt("anexoId")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		out, err := svc.GetAttachment(c.UserContext(), int64(id), int64(anexoID))
		if err != nil {
			return writeServiceError(c, err)
		}
		if out.RedirectURL != "" {
			return c.Redirect(out.RedirectURL, fiber.StatusTemporaryRedirect)
		}

		c.Set(fiber.HeaderContentDisposition, storage.ContentDisposition(out.Filename))
		c.Set(fiber.HeaderContentType, out.MimeType)
		return c.Send(out.Data)
	}
}
