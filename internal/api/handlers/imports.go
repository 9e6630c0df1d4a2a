package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/api/response"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/importer"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/service"
)

// maxUploadBytes bounds uploaded import files.
const maxUploadBytes = 10 << 20

// ImportHandler loads CSV and XLSX uploads into the store's tables.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// ImportResponse summarises an import.
type ImportResponse struct {
	Kind     importer.Kind `json:"kind"`
	Filename string        `json:"filename"`
	Rows     int           `json:"rows"`
	Data     any           `json:"data"`
}

// Import handles multipart uploads replacing the table named by kind.
//
// Endpoint: POST /api/import/{kind}
// Request Body: multipart/form-data with the file in the "file" field
// Response: 200 OK with ImportResponse
// Error: 400 Bad Request for an unknown kind, an unsupported file type or a
// missing mandatory column
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionOf(w, r)
	if !ok {
		return
	}

	kind, err := importer.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondServiceError(w, err, "invalid import kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid upload", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "file is required", err.Error())
		return
	}
	defer file.Close()

	canonical, err := h.importService.Import(r.Context(), session.StoreID, kind, header.Filename, file)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToImport.Error())
		return
	}

	resp := ImportResponse{Kind: kind, Filename: header.Filename, Rows: canonical.Len()}
	switch kind {
	case importer.KindFixedAsset:
		resp.Data = canonical.FixedAssets
	case importer.KindLiability:
		resp.Data = canonical.Liabilities
	default:
		resp.Data = canonical.Holdings
	}
	response.RespondJSON(w, http.StatusOK, resp)
}
