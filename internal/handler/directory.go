package handler

import (
	"net/http"

	"github.com/nhatro-labs/booking-engine/internal/repository"
	"github.com/nhatro-labs/booking-engine/internal/service"
	customError "github.com/nhatro-labs/booking-engine/pkg/errors"
	"github.com/nhatro-labs/booking-engine/pkg/response"
)

// DirectoryHandler serves the read-only snapshots the conversion pipeline
// consumes: rooms, tenants and the service catalog.
type DirectoryHandler struct {
	roomRepo   repository.RoomRepository
	tenantRepo repository.TenantRepository
	catalog    *service.CatalogService
}

func NewDirectoryHandler(roomRepo repository.RoomRepository, tenantRepo repository.TenantRepository, catalog *service.CatalogService) *DirectoryHandler {
	return &DirectoryHandler{
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
		catalog:    catalog,
	}
}

// Rooms handles GET /rooms
func (h *DirectoryHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepo.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "listing rooms", customError.WrapDatabaseError(err))
		return
	}
	response.Success(w, rooms)
}

// Tenants handles GET /tenants; ?unassigned=true restricts to tenants
// eligible for matching.
func (h *DirectoryHandler) Tenants(w http.ResponseWriter, r *http.Request) {
	unassignedOnly := r.URL.Query().Get("unassigned") == "true"

	tenants, err := h.tenantRepo.List(r.Context(), unassignedOnly)
	if err != nil {
		response.InternalServerError(w, "listing tenants", customError.WrapDatabaseError(err))
		return
	}
	response.Success(w, tenants)
}

// Services handles GET /services
func (h *DirectoryHandler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	response.Success(w, services)
}

// DefaultPlan handles GET /services/default-plan
func (h *DirectoryHandler) DefaultPlan(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	plan := service.DefaultPlan(catalog)
	response.Success(w, map[string]interface{}{
		"service_ids": plan.IDs(),
	})
}
