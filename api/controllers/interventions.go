package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/yanisbelkaid/intervia-backend/api/responses"
	"github.com/yanisbelkaid/intervia-backend/api/validators"
	"github.com/yanisbelkaid/intervia-backend/internal/interventions"
	"github.com/yanisbelkaid/intervia-backend/pkg/enums"
	pkgerrors "github.com/yanisbelkaid/intervia-backend/pkg/errors"
	"github.com/yanisbelkaid/intervia-backend/pkg/logger"
	"github.com/yanisbelkaid/intervia-backend/pkg/pagination"
)

type interventionCreateBody struct {
	ContractorID  string   `json:"contractor_id" validate:"required,uuid"`
	Description   string   `json:"description" validate:"required"`
	RequestedDate string   `json:"requested_date" validate:"required"`
	Location      string   `json:"location" validate:"required"`
	Documents     []string `json:"documents,omitempty"`
}

type scheduleBody struct {
	ScheduledDate string  `json:"scheduled_date" validate:"required"`
	ScheduledTime string  `json:"scheduled_time" validate:"required"`
	Team          string  `json:"team" validate:"required"`
	Comments      *string `json:"comments,omitempty"`
}

type signOffBody struct {
	Content     string   `json:"content,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Signature   string   `json:"signature,omitempty"`
}

type invoiceBody struct {
	FileURL string `json:"file_url" validate:"required"`
}

// InterventionCreate handles the agency's request for new work.
func InterventionCreate(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "interventions service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := interventionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body interventionCreateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		contractorID, err := uuid.Parse(body.ContractorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "contractor_id must be a uuid"))
			return
		}

		result, err := svc.Create(r.Context(), actor, interventions.CreateInput{
			ContractorID:  contractorID,
			Description:   body.Description,
			RequestedDate: body.RequestedDate,
			Location:      body.Location,
			Documents:     body.Documents,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// InterventionList pages through the caller's interventions, newest first.
func InterventionList(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "interventions service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := interventionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListForActor(r.Context(), actor, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// InterventionDetail returns one intervention plus the caller's allowed moves.
func InterventionDetail(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "interventions service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := interventionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := interventionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// InterventionSchedule moves pending work onto the contractor's calendar.
func InterventionSchedule(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, enums.InterventionStatusScheduled, func(r *http.Request) (interventions.TransitionPayload, error) {
		var body scheduleBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return interventions.TransitionPayload{}, err
		}
		return interventions.TransitionPayload{
			ScheduledDate: body.ScheduledDate,
			ScheduledTime: body.ScheduledTime,
			Team:          body.Team,
			Comments:      body.Comments,
		}, nil
	})
}

// InterventionComplete marks scheduled work as done on site.
func InterventionComplete(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, enums.InterventionStatusCompleted, func(r *http.Request) (interventions.TransitionPayload, error) {
		return interventions.TransitionPayload{}, nil
	})
}

// InterventionSignOff closes out completed work. Contractors submit their
// completion report; agencies countersign. Either payload lands the same
// status.
func InterventionSignOff(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, enums.InterventionStatusSignedOff, func(r *http.Request) (interventions.TransitionPayload, error) {
		var body signOffBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return interventions.TransitionPayload{}, err
		}
		return interventions.TransitionPayload{
			PVContent:     body.Content,
			PVAttachments: body.Attachments,
			Signature:     body.Signature,
		}, nil
	})
}

// InterventionInvoice records the contractor's invoice against signed-off work.
func InterventionInvoice(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, enums.InterventionStatusInvoiced, func(r *http.Request) (interventions.TransitionPayload, error) {
		var body invoiceBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return interventions.TransitionPayload{}, err
		}
		return interventions.TransitionPayload{InvoiceFileURL: body.FileURL}, nil
	})
}

// InterventionConfirmPayment is the agency's final settlement stamp.
func InterventionConfirmPayment(svc interventions.Service, logg *logger.Logger) http.HandlerFunc {
	return transitionHandler(svc, logg, enums.InterventionStatusPaid, func(r *http.Request) (interventions.TransitionPayload, error) {
		return interventions.TransitionPayload{}, nil
	})
}

func transitionHandler(
	svc interventions.Service,
	logg *logger.Logger,
	target enums.InterventionStatus,
	decode func(*http.Request) (interventions.TransitionPayload, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "interventions service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := interventionActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := interventionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := decode(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyTransition(r.Context(), actor, id, target, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func interventionActor(r *http.Request) (interventions.Actor, error) {
	actorID, role, err := actorFromRequest(r)
	if err != nil {
		return interventions.Actor{}, err
	}
	return interventions.Actor{UserID: actorID, Role: role}, nil
}

func interventionID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "interventionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "intervention id must be a uuid")
	}
	return id, nil
}
