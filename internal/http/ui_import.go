package httpx

import (
	"fmt"
	"io"
	"net/http"

	"github.com/limnolab/limno-ui-api/internal/service"
)

const maxImportBytes = 50 << 20

// AdminImport renders the Excel upload screen with the lake selector.
func (h *UIHandlers) AdminImport(w http.ResponseWriter, r *http.Request) {
	lakes, err := h.Lakes.List(r.Context(), h.session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, PageData{Page: "page-admin-import", Title: "Upload data", Data: lakes})
}

// AdminImportUpload forwards the workbook to the backend importer.
func (h *UIHandlers) AdminImportUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("excelFile")
	if err != nil {
		http.Error(w, "workbook file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	msg, err := h.Imports.Upload(r.Context(), h.session(r), service.UploadInput{
		LakeID:   r.PostFormValue("lake_id"),
		FileName: header.Filename,
		File:     file,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if msg == "" {
		msg = "import complete"
	}
	if IsHTMX(r) {
		SetHXTrigger(w, "import-finished", msg)
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// AdminExport streams the backend's Excel export to the browser.
func (h *UIHandlers) AdminExport(w http.ResponseWriter, r *http.Request) {
	dl, err := h.Imports.Export(r.Context(), h.session(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer dl.Body.Close()

	filename := dl.Filename
	if filename == "" {
		filename = "measurements.xlsx"
	}
	contentType := dl.ContentType
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if dl.Length > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", dl.Length))
	}
	if _, err := io.Copy(w, dl.Body); err != nil && h.Logger != nil {
		h.Logger.Warn("export stream interrupted", "error", err)
	}
}
