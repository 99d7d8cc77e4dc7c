package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"leavepanel/internal/docs"
	"leavepanel/internal/domain"
	"leavepanel/internal/http/middleware"
	"leavepanel/internal/listview"
	"leavepanel/internal/notice"
	"leavepanel/internal/transfer"
	"leavepanel/internal/upstream"
	"leavepanel/internal/utils"

	"github.com/gin-gonic/gin"
)

// resource describes one paginated screen. Every screen runs through the same
// generic handlers below, so search/filter/sort/delete behavior cannot drift
// between pages the way per-page copies tend to.
type resource[T any] struct {
	name       string   // upstream collection segment, e.g. "leave-requests"
	slug       string   // panel path segment, e.g. "leave-request"
	title      string   // human name used in notices
	filterKeys []string // server-defined filter vocabulary for this screen
	readOnly   bool     // list only, no mutations
	multipart  bool     // create/update may carry a file upload

	// bulk transfer; empty table means no import/export endpoints
	table      string
	uniqueBy   []string
	exportName string
	project    transfer.Projection[T]

	// local pdf download
	pdf    docs.ListPDF
	pdfRow func(T) []string

	// file/attachment fields on the detail payload, resolved against the
	// API origin so the browser can open them directly
	resolveFiles func(item T, fileURL func(string) string) T
}

func fetchFor[T any](api *upstream.Client, name string) listview.FetchFunc[T] {
	return func(ctx context.Context, q listview.Query) (listview.Result[T], error) {
		page, err := upstream.List[T](ctx, api, name, q.Values())
		if err != nil {
			return listview.Result[T]{}, err
		}
		return listview.Result[T]{Items: page.Data, Meta: page.Meta}, nil
	}
}

func removeFor(api *upstream.Client, name string) listview.RemoveFunc {
	return func(ctx context.Context, id string) error {
		return api.Delete(ctx, name, id)
	}
}

// parseListQuery reads the list state out of the URL. A request without a
// page parameter lands on page 1, which is exactly what search/filter/sort
// form submissions send.
func parseListQuery(c *gin.Context, filterKeys []string) listview.Query {
	q := listview.NewQuery()

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Page = n
		}
	}
	q.Search = strings.TrimSpace(c.Query("search"))

	switch strings.ToUpper(strings.TrimSpace(c.Query("sort"))) {
	case "ASC":
		q.Sort = listview.SortAsc
	case "DESC":
		q.Sort = listview.SortDesc
	default:
		q.Sort = listview.SortNone
	}

	for _, key := range filterKeys {
		q.Filters[key] = strings.TrimSpace(c.Query(key))
	}
	return q
}

func mountResource[T any](g *gin.RouterGroup, d *Deps, r resource[T]) {
	g.GET("", listHandler(d, r))
	if r.pdfRow != nil {
		g.GET("/pdf", pdfHandler(d, r))
	}

	if !r.readOnly {
		g.GET("/:id", showHandler(d, r))
		g.POST("", createHandler(d, r))
		g.PUT("/:id", updateHandler(d, r))
		g.POST("/:id", updateHandler(d, r)) // multipart method-override path
		g.DELETE("/:id", removeHandler(d, r))
	}
}

// mountTransfer registers the spreadsheet endpoints. Kept separate from
// mountResource so the router can put them behind the admin gate uniformly.
func mountTransfer[T any](g *gin.RouterGroup, d *Deps, r resource[T]) {
	if r.project != nil {
		g.POST("/export", exportHandler(d, r))
	}
	if r.table != "" {
		g.POST("/import", importHandler(d, r))
	}
}

func controllerFor[T any](c *gin.Context, d *Deps, r resource[T]) *listview.Controller[T] {
	api := d.apiFor(c)
	ctrl := listview.NewController[T](fetchFor[T](api, r.name), removeFor(api, r.name))
	ctrl.Restore(parseListQuery(c, r.filterKeys))
	return ctrl
}

// listPayload is the common page body: items, pagination, echoed query state
// and the pending notice, if any.
func listPayload[T any](c *gin.Context, r resource[T], ctrl *listview.Controller[T]) gin.H {
	res := ctrl.Result()
	q := ctrl.Query()
	payload := gin.H{
		"title":   r.title,
		"data":    res.Items,
		"meta":    res.Meta,
		"pages":   listview.PageButtons(res.Meta),
		"search":  q.Search,
		"filters": q.Filters,
		"sort":    string(q.Sort),
	}
	if n := notice.ViewOf(notice.Pop(c), time.Now()); n != nil {
		payload["notice"] = n
	}
	return payload
}

func listHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, d, r)
		if err := ctrl.Refresh(c.Request.Context()); err != nil {
			if domain.IsUnauthorized(err) {
				RespondUpstreamError(c, err, "")
				return
			}
			// Read path: keep whatever the controller already holds and
			// surface the error next to it instead of clearing the table.
			utils.LogEvent(middleware.GetRequestID(c), r.slug, "list", err.Error())
			payload := listPayload(c, r, ctrl)
			payload["fetch_error"] = fmt.Sprintf("failed to load %s", r.title)
			c.JSON(http.StatusOK, payload)
			return
		}
		c.JSON(http.StatusOK, listPayload(c, r, ctrl))
	}
}

// showHandler serves the single record an edit or detail page prefills from.
func showHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := d.apiFor(c)
		item, err := upstream.Get[T](c.Request.Context(), api, r.name, c.Param("id"))
		if err != nil {
			RespondUpstreamError(c, err, fmt.Sprintf("failed to load %s", r.title))
			return
		}
		if r.resolveFiles != nil {
			item = r.resolveFiles(item, api.FileURL)
		}
		c.JSON(http.StatusOK, gin.H{"title": r.title, "data": item})
	}
}

// mutationBody collects the create/update payload, either JSON or multipart
// fields plus an optional file, depending on the screen.
func mutationBody[T any](c *gin.Context, r resource[T]) (map[string]any, map[string]string, *upstream.FilePart, bool) {
	if r.multipart && strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid multipart payload", err)
			return nil, nil, nil, false
		}
		fields := map[string]string{}
		for key, vals := range c.Request.MultipartForm.Value {
			if len(vals) > 0 && key != "_method" {
				fields[key] = vals[0]
			}
		}
		var part *upstream.FilePart
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, err := fh.Open()
			if err != nil {
				RespondError(c, http.StatusBadRequest, "unreadable upload", err)
				return nil, nil, nil, false
			}
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "unreadable upload", err)
				return nil, nil, nil, false
			}
			part = &upstream.FilePart{Field: "file", Filename: fh.Filename, Reader: bytes.NewReader(data)}
		}
		return nil, fields, part, true
	}

	var payload map[string]any
	if !BindJSONOrError(c, &payload) {
		return nil, nil, nil, false
	}
	return payload, nil, nil, true
}

func createHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := d.apiFor(c)
		jsonBody, fields, file, ok := mutationBody(c, r)
		if !ok {
			return
		}

		var err error
		if jsonBody != nil {
			err = api.Create(c.Request.Context(), r.name, jsonBody)
		} else {
			err = api.CreateMultipart(c.Request.Context(), r.name, fields, file)
		}
		if err != nil {
			d.logAction(c, "create", r.slug, "failure", err.Error())
			RespondUpstreamError(c, err, fmt.Sprintf("failed to create %s", r.title))
			return
		}

		d.logAction(c, "create", r.slug, "success", "")
		notice.Set(c, fmt.Sprintf("%s successfully created.", r.title), notice.KindSuccess)
		c.JSON(http.StatusCreated, gin.H{"redirect": "/panel/" + r.slug})
	}
}

func updateHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		api := d.apiFor(c)
		jsonBody, fields, file, ok := mutationBody(c, r)
		if !ok {
			return
		}

		var err error
		if jsonBody != nil {
			err = api.Update(c.Request.Context(), r.name, id, jsonBody)
		} else {
			err = api.UpdateMultipart(c.Request.Context(), r.name, id, fields, file)
		}
		if err != nil {
			d.logAction(c, "update", r.slug+"/"+id, "failure", err.Error())
			RespondUpstreamError(c, err, fmt.Sprintf("failed to update %s", r.title))
			return
		}

		d.logAction(c, "update", r.slug+"/"+id, "success", "")
		notice.Set(c, fmt.Sprintf("%s successfully updated.", r.title), notice.KindSuccess)
		c.JSON(http.StatusOK, gin.H{"redirect": "/panel/" + r.slug})
	}
}

func removeHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		ctrl := controllerFor(c, d, r)

		// The blocking yes/no step: the client answers the confirmation
		// dialog and repeats the request with confirm=1.
		confirmed := func() bool { return c.Query("confirm") == "1" }

		err := ctrl.Remove(c.Request.Context(), id, confirmed)
		switch {
		case err == listview.ErrRemoveCancelled:
			c.JSON(http.StatusOK, gin.H{
				"message":          fmt.Sprintf("Are you sure you want to delete this %s?", strings.ToLower(r.title)),
				"confirm_required": true,
			})
			return
		case err != nil:
			d.logAction(c, "delete", r.slug+"/"+id, "failure", err.Error())
			if domain.IsUnauthorized(err) {
				RespondUpstreamError(c, err, "")
				return
			}
			// Failure leaves server data untouched; re-read it so the page
			// keeps its rows next to the error notice.
			if rerr := ctrl.Refresh(c.Request.Context()); rerr != nil {
				utils.LogEvent(middleware.GetRequestID(c), r.slug, "delete_refresh", rerr.Error())
			}
			payload := listPayload(c, r, ctrl)
			payload["notice"] = &notice.View{
				Message: fmt.Sprintf("Failed to delete %s.", strings.ToLower(r.title)),
				Status:  notice.KindError,
			}
			c.JSON(http.StatusOK, payload)
			return
		}

		d.logAction(c, "delete", r.slug+"/"+id, "success", "")
		payload := listPayload(c, r, ctrl)
		payload["notice"] = &notice.View{
			Message:   fmt.Sprintf("%s deleted successfully.", r.title),
			Status:    notice.KindSuccess,
			ExpiresIn: notice.DisplayWindow.Milliseconds(),
		}
		c.JSON(http.StatusOK, payload)
	}
}

func exportHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := d.apiFor(c)
		ctrl := controllerFor(c, d, r)
		if err := ctrl.Refresh(c.Request.Context()); err != nil {
			RespondUpstreamError(c, err, fmt.Sprintf("failed to load %s for export", r.title))
			return
		}

		res, err := transfer.Export(c.Request.Context(), api, ctrl.Result().Items, r.project, r.exportName)
		if err != nil {
			d.logAction(c, "export", r.slug, "failure", err.Error())
			RespondUpstreamError(c, err, "Export failed")
			return
		}

		d.logAction(c, "export", r.slug, "success", res.FileURL)
		c.JSON(http.StatusOK, res)
	}
}

func importHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := d.apiFor(c)
		ctrl := controllerFor(c, d, r)

		fh, err := c.FormFile("file")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "import file is required", err)
			return
		}
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable upload", err)
			return
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unreadable upload", err)
			return
		}

		part := upstream.FilePart{Field: "file", Filename: fh.Filename}
		err = transfer.Import(c.Request.Context(), api, part, raw, r.table, r.uniqueBy, ctrl.Refresh)
		if err != nil {
			d.logAction(c, "import", r.slug, "failure", err.Error())
			if domain.IsUnauthorized(err) {
				RespondUpstreamError(c, err, "")
				return
			}
			// The file input resets after every attempt so the same file
			// can be picked again.
			payload := listPayload(c, r, ctrl)
			payload["notice"] = &notice.View{Message: "Import failed", Status: notice.KindError}
			payload["reset_input"] = true
			c.JSON(http.StatusOK, payload)
			return
		}

		d.logAction(c, "import", r.slug, "success", fh.Filename)
		payload := listPayload(c, r, ctrl)
		payload["notice"] = &notice.View{
			Message:   "Import success",
			Status:    notice.KindSuccess,
			ExpiresIn: notice.DisplayWindow.Milliseconds(),
		}
		payload["reset_input"] = true
		c.JSON(http.StatusOK, payload)
	}
}

func pdfHandler[T any](d *Deps, r resource[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl := controllerFor(c, d, r)
		if err := ctrl.Refresh(c.Request.Context()); err != nil {
			RespondUpstreamError(c, err, fmt.Sprintf("failed to load %s", r.title))
			return
		}

		items := ctrl.Result().Items
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, r.pdfRow(item))
		}

		data, filename, err := r.pdf.Render(rows)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to render pdf", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
