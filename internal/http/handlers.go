package http

import (
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/mfreund/ipam-console/internal/domain"
	"github.com/mfreund/ipam-console/internal/transfer"
)

const maxImportSize = 16 << 20 // 16 MiB upload cap

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "db ping failed", "err", err.Error())
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List subnets
// @Tags subnets
// @Produce json
// @Success 200 {array} SubnetResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets [get]
func (a *API) handleListSubnets(w http.ResponseWriter, r *http.Request) {
	subnets, err := a.Service.ListSubnets(r.Context())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetsToResponse(subnets))
}

// @Summary Create subnet
// @Tags subnets
// @Accept json
// @Produce json
// @Param subnet body CreateSubnetRequest true "Subnet payload"
// @Success 201 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets [post]
func (a *API) handleCreateSubnet(w http.ResponseWriter, r *http.Request) {
	req, err := decode[CreateSubnetRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	subnet, err := a.Service.CreateSubnet(r.Context(), req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, subnetToResponse(subnet))
}

// @Summary Get subnet by ID
// @Tags subnets
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id} [get]
func (a *API) handleGetSubnet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	subnet, err := a.Service.GetSubnet(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetToResponse(subnet))
}

// @Summary Update subnet
// @Tags subnets
// @Accept json
// @Produce json
// @Param id path int true "Subnet ID"
// @Param subnet body UpdateSubnetRequest true "Partial subnet payload; the cidr is immutable"
// @Success 200 {object} SubnetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id} [patch]
func (a *API) handleUpdateSubnet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	req, err := decode[UpdateSubnetRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	subnet, err := a.Service.UpdateSubnet(r.Context(), id, req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, subnetToResponse(subnet))
}

// @Summary Delete subnet
// @Tags subnets
// @Param id path int true "Subnet ID. Child subnets and their IP records are deleted as well."
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id} [delete]
func (a *API) handleDeleteSubnet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	if err := a.Service.DeleteSubnet(r.Context(), id); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List ips of a subnet and its descendants
// @Tags ips
// @Produce json
// @Param id path int true "Subnet ID"
// @Success 200 {array} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/subnets/{id}/ips [get]
func (a *API) handleListIPs(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	ips, err := a.Service.ListIPs(r.Context(), id)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, ipsToResponse(ips))
}

// @Summary Create ip record
// @Tags ips
// @Accept json
// @Produce json
// @Param payload body CreateIPRequest true "IP record; it is attached to the narrowest matching subnet at or below subnet_id"
// @Success 201 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ips [post]
func (a *API) handleCreateIP(w http.ResponseWriter, r *http.Request) {
	req, err := decode[CreateIPRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	ip, err := a.Service.CreateIP(r.Context(), req.SubnetID, req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusCreated, ipToResponse(ip))
}

// @Summary Update ip record
// @Tags ips
// @Accept json
// @Produce json
// @Param id path string true "IP record UUID"
// @Param payload body UpdateIPRequest true "Partial payload; the address is immutable"
// @Success 200 {object} IPResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ips/{id} [patch]
func (a *API) handleUpdateIP(w http.ResponseWriter, r *http.Request) {
	req, err := decode[UpdateIPRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.badRequest(w, r, "bad request")
		return
	}

	ip, err := a.Service.UpdateIP(r.Context(), domain.IPRecordID(r.PathValue("id")), req.toInput())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, ipToResponse(ip))
}

// @Summary Delete ip record
// @Tags ips
// @Param id path string true "IP record UUID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/ips/{id} [delete]
func (a *API) handleDeleteIP(w http.ResponseWriter, r *http.Request) {
	if err := a.Service.DeleteIP(r.Context(), domain.IPRecordID(r.PathValue("id"))); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Export all ip records as CSV
// @Tags transfer
// @Produce text/csv
// @Success 200 {string} string "csv file"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/export/ips [get]
func (a *API) handleExportIPs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := a.Service.ExportIPs(ctx)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	data, err := transfer.Marshal(records)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", transfer.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		a.Logger.ErrorContext(ctx, "cant stream export", "err", err.Error())
	}
}

// @Summary Import ip records from CSV
// @Tags transfer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with an ip_address column"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/import/ips [post]
func (a *API) handleImportIPs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		a.badRequest(w, r, "missing file upload")
		return
	}
	defer file.Close()

	rows, rowErrs, err := transfer.Parse(io.LimitReader(file, maxImportSize))
	if err != nil {
		a.badRequest(w, r, err.Error())
		return
	}

	report, err := a.Service.ImportIPs(ctx, rows)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	// Parse-level and domain-level rejections land in one list, in
	// file order.
	report.Errors = append(rowErrs, report.Errors...)
	slices.SortStableFunc(report.Errors, func(a, b domain.ImportError) int {
		return a.Row - b.Row
	})
	a.respond(w, r, http.StatusOK, importToResponse(report))
}
