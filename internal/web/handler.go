// Package web serves the server-rendered administration dashboard: a
// stats row, one tab per resource kind, the schema-driven entity form and
// a delete confirmation step. Every page is rebuilt from the remote
// record store on each request; after a mutation the browser is
// redirected back to the tab, which refetches full lists.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mnogodumalon/kurs40/internal/app/form"
	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/app/services"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// Handler serves the browser dashboard.
type Handler struct {
	resources services.ResourceService
	dashboard services.DashboardService
	catalog   *schema.Catalog
	logger    zerolog.Logger
}

// NewHandler creates a new dashboard Handler
func NewHandler(resources services.ResourceService, dashboard services.DashboardService, catalog *schema.Catalog, logger zerolog.Logger) *Handler {
	return &Handler{
		resources: resources,
		dashboard: dashboard,
		catalog:   catalog,
		logger:    logger,
	}
}

// Register mounts templates, static assets and the dashboard routes.
func (h *Handler) Register(router *gin.Engine) {
	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/assets", http.FS(assets))

	router.GET("/", h.index)
	tabs := router.Group("/tabs")
	{
		tabs.GET("/:kind", h.showTab)
		tabs.GET("/:kind/new", h.newForm)
		tabs.POST("/:kind", h.create)
		tabs.GET("/:kind/:id/edit", h.editForm)
		tabs.POST("/:kind/:id", h.update)
		tabs.GET("/:kind/:id/delete", h.confirmDelete)
		tabs.POST("/:kind/:id/delete", h.doDelete)
	}
}

func (h *Handler) index(c *gin.Context) {
	first := h.catalog.Kinds()[0]
	c.Redirect(http.StatusFound, "/tabs/"+first.Key)
}

// basePage assembles the shared page chrome. A failed stats fetch leaves
// the row empty instead of failing the page; the tab body has its own
// error handling.
func (h *Handler) basePage(c *gin.Context, kind schema.Kind) page {
	p := page{
		Title:  "Kursverwaltung",
		Active: kind.Key,
		Kinds:  h.catalog.Kinds(),
	}
	stats, err := h.dashboard.Counts(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load dashboard stats")
		return p
	}
	p.Stats = stats.Counts
	return p
}

func (h *Handler) kindOr404(c *gin.Context) (schema.Kind, bool) {
	kind, ok := h.catalog.Get(c.Param("kind"))
	if !ok {
		c.String(http.StatusNotFound, "Unbekannter Bereich: %s", c.Param("kind"))
		return schema.Kind{}, false
	}
	return kind, true
}

func (h *Handler) showTab(c *gin.Context) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}

	view, err := h.resources.List(c.Request.Context(), kind.Key)
	if err != nil {
		h.logger.Error().Err(err).Str("kind", kind.Key).Msg("Failed to load tab")
		c.String(http.StatusBadGateway, "Die Daten konnten nicht geladen werden. Bitte erneut versuchen.")
		return
	}

	columns := make([]string, 0, len(kind.Fields))
	for _, f := range kind.Fields {
		columns = append(columns, f.Label)
	}

	c.HTML(http.StatusOK, "tab.html", tabPage{
		page:    h.basePage(c, kind),
		Kind:    kind,
		Columns: columns,
		Rows:    tableRows(kind, view),
	})
}

func (h *Handler) newForm(c *gin.Context) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}
	h.renderForm(c, kind, "", nil, "")
}

func (h *Handler) editForm(c *gin.Context) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}

	view, err := h.resources.GetForEdit(c.Request.Context(), kind.Key, c.Param("id"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.String(http.StatusNotFound, "Datensatz nicht gefunden")
			return
		}
		c.String(http.StatusBadGateway, "Die Daten konnten nicht geladen werden. Bitte erneut versuchen.")
		return
	}

	h.renderForm(c, kind, view.RecordID, view.Fields, "")
}

func (h *Handler) create(c *gin.Context) {
	h.save(c, "")
}

func (h *Handler) update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

// save handles both create and update submissions. On any failure the
// form re-renders open and populated with the submitted values; only a
// successful save closes it by redirecting back to the tab.
func (h *Handler) save(c *gin.Context, recordID string) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}

	raw := h.postedValues(c, kind)
	values, err := form.Decode(kind, raw)
	if err != nil {
		h.renderForm(c, kind, recordID, rawAsFields(raw), userMessage(err))
		return
	}

	if recordID == "" {
		_, err = h.resources.Create(c.Request.Context(), kind.Key, values)
	} else {
		_, err = h.resources.Update(c.Request.Context(), kind.Key, recordID, values)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("kind", kind.Key).Msg("Save failed")
		h.renderForm(c, kind, recordID, rawAsFields(raw), userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/tabs/"+kind.Key)
}

func (h *Handler) confirmDelete(c *gin.Context) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}
	h.renderConfirm(c, kind, c.Param("id"), "")
}

// doDelete performs the destructive call. It only runs from the
// confirmation form; dismissing that form never reaches this handler. A
// failed delete re-renders the confirmation instead of pretending
// success.
func (h *Handler) doDelete(c *gin.Context) {
	kind, ok := h.kindOr404(c)
	if !ok {
		return
	}

	recordID := c.Param("id")
	if err := h.resources.Delete(c.Request.Context(), kind.Key, recordID); err != nil {
		h.logger.Error().Err(err).Str("kind", kind.Key).Str("recordId", recordID).Msg("Delete failed")
		h.renderConfirm(c, kind, recordID, userMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/tabs/"+kind.Key)
}

// renderForm renders the entity form seeded from the given field values.
// Option lists for reference fields come from a fresh list fetch, so the
// choices always reflect the last known server state.
func (h *Handler) renderForm(c *gin.Context, kind schema.Kind, recordID string, values map[string]interface{}, errMsg string) {
	var options map[string][]dto.Option
	if len(kind.ReferenceFields()) > 0 {
		view, err := h.resources.List(c.Request.Context(), kind.Key)
		if err != nil {
			c.String(http.StatusBadGateway, "Die Daten konnten nicht geladen werden. Bitte erneut versuchen.")
			return
		}
		options = view.Options
	}

	fp := formPage{
		page:    h.basePage(c, kind),
		Kind:    kind,
		Heading: "Neuer " + kind.Singular,
		Action:  "/tabs/" + kind.Key,
		Fields:  formFields(kind, values, options),
		Error:   errMsg,
	}
	if recordID != "" {
		fp.Heading = kind.Singular + " bearbeiten"
		fp.Action = "/tabs/" + kind.Key + "/" + recordID
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "form.html", fp)
}

func (h *Handler) renderConfirm(c *gin.Context, kind schema.Kind, recordID, errMsg string) {
	display := recordID
	if view, err := h.resources.GetForEdit(c.Request.Context(), kind.Key, recordID); err == nil {
		if name, ok := view.Fields[kind.DisplayField].(string); ok && name != "" {
			display = name
		}
	}

	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusBadGateway
	}
	c.HTML(status, "confirm.html", confirmPage{
		page:     h.basePage(c, kind),
		Kind:     kind,
		RecordID: recordID,
		Display:  display,
		Error:    errMsg,
	})
}

// postedValues collects the submitted value of every schema field.
func (h *Handler) postedValues(c *gin.Context, kind schema.Kind) map[string]string {
	raw := make(map[string]string, len(kind.Fields))
	for _, field := range kind.Fields {
		raw[field.Key] = c.PostForm(field.Key)
	}
	return raw
}

// rawAsFields reshapes a rejected submission so the form re-renders with
// the user's input intact.
func rawAsFields(raw map[string]string) map[string]interface{} {
	fields := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if v == "on" {
			fields[k] = true
			continue
		}
		fields[k] = v
	}
	return fields
}

// userMessage maps the error taxonomy to the message shown in the form
// banner.
func userMessage(err error) string {
	var apiErr *apperrors.APIError
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return "Bitte Eingaben prüfen: " + err.Error()
	case errors.Is(err, apperrors.ErrTransport):
		return "Der Datendienst ist nicht erreichbar. Bitte erneut versuchen."
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusNotFound {
			return "Der Datensatz existiert nicht mehr."
		}
		return "Der Datendienst hat die Anfrage abgelehnt. Bitte erneut versuchen."
	default:
		return "Unerwarteter Fehler. Bitte erneut versuchen."
	}
}
