package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/yanisbelkaid/intervia-backend/api/middleware"
	"github.com/yanisbelkaid/intervia-backend/api/responses"
	"github.com/yanisbelkaid/intervia-backend/api/validators"
	"github.com/yanisbelkaid/intervia-backend/internal/profiles"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
	"github.com/yanisbelkaid/intervia-backend/pkg/logger"
)

type profileCreateBody struct {
	Name         string `json:"name,omitempty"`
	Manager      string `json:"manager,omitempty"`
	Address      string `json:"address,omitempty"`
	OpeningHours string `json:"opening_hours,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
}

// ProfileMe returns the caller's profile, or NOT_FOUND before setup.
func ProfileMe(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Me(r.Context(), actorID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProfileCreate completes the one-time profile setup for the caller.
func ProfileCreate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profileCreateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), actorID, role, profiles.CreateInput{
			Name:         body.Name,
			Manager:      body.Manager,
			Address:      body.Address,
			OpeningHours: body.OpeningHours,
			Phone:        body.Phone,
			CompanyName:  body.CompanyName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ContractorList lets agencies browse contractors when assigning work.
func ContractorList(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListContractors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"contractors": result})
	}
}

func actorFromRequest(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	raw := middleware.UserIDFromContext(r.Context())
	actorID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "unsupported role")
	}
	return actorID, role, nil
}
