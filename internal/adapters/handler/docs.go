package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	_ "github.com/dkm94/invoice-dashboard/internal/docs"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/swaggo/swag"
)

// HandleSwaggerDoc serves the registered Swagger 2.0 document.
func (h *DashboardHandler) HandleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.logger.Error("failed to read swagger doc", "error", err)
		respondWithError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, []byte(doc))
}

// HandleOpenAPI serves the same document converted to OpenAPI 3.
func (h *DashboardHandler) HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	body, err := OpenAPIDocument()
	if err != nil {
		h.logger.Error("failed to build openapi doc", "error", err)
		respondWithError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, body)
}

// OpenAPIDocument converts the registered Swagger document to OpenAPI 3 JSON.
func OpenAPIDocument() ([]byte, error) {
	raw, err := swag.ReadDoc()
	if err != nil {
		return nil, fmt.Errorf("read swagger doc: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal([]byte(raw), &v2); err != nil {
		return nil, fmt.Errorf("parse swagger doc: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert swagger doc: %w", err)
	}

	return json.Marshal(v3)
}
