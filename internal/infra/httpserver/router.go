package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appapplicants "github.com/leaselightning/lease-lightning/internal/application/applicants"
	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
	"github.com/leaselightning/lease-lightning/internal/middleware"
)

const maxBodyBytes = 1 << 20

type Router struct {
	svc *appapplicants.Service
	log *zap.Logger
}

func NewRouter(svc *appapplicants.Service, log *zap.Logger) http.Handler {
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/applicants", r.wrap(r.handleList))
		rt.Post("/applicants", r.wrap(r.handleCreate))
		rt.Get("/applicants/{id}", r.wrap(r.handleGet))
		rt.Patch("/applicants/{id}", r.wrap(r.handleUpdate))
		rt.Delete("/applicants/{id}", r.wrap(r.handleDelete))
		rt.Post("/applicants/{id}/run-decision", r.wrap(r.handleRunDecision))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks malformed input (non-numeric id, broken JSON).
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var badReq *badRequestError
		var invalid *middleware.ValidationError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "applicant not found", http.StatusNotFound)
		case errors.As(err, &invalid):
			http.Error(w, invalid.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &badReq):
			http.Error(w, badReq.Error(), http.StatusBadRequest)
		default:
			r.log.Error("request failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Error(err),
			)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func applicantID(req *http.Request) (int, error) {
	raw := chi.URLParam(req, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badRequestError{msg: fmt.Sprintf("invalid applicant id: %q", raw)}
	}
	return id, nil
}

func readBody(req *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
	if err != nil {
		return nil, &badRequestError{msg: "reading request body"}
	}
	return body, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// GET /api/applicants
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.List(req.Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Applicant{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /api/applicants/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id, err := applicantID(req)
	if err != nil {
		return err
	}
	a, err := r.svc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, a)
}

// POST /api/applicants
func (r *Router) handleCreate(w http.ResponseWriter, req *http.Request) error {
	body, err := readBody(req)
	if err != nil {
		return err
	}
	if err := middleware.ValidateCreateApplicant(body); err != nil {
		return err
	}

	var payload struct {
		Name string `json:"name"`
		Unit string `json:"unit"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &badRequestError{msg: "decoding request body"}
	}

	created, err := r.svc.Create(req.Context(), appapplicants.CreateApplicantCommand{
		Name: payload.Name,
		Unit: payload.Unit,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, created)
}

// PATCH /api/applicants/{id}
func (r *Router) handleUpdate(w http.ResponseWriter, req *http.Request) error {
	id, err := applicantID(req)
	if err != nil {
		return err
	}
	body, err := readBody(req)
	if err != nil {
		return err
	}
	if err := middleware.ValidateUpdateApplicant(body); err != nil {
		return err
	}

	var payload struct {
		Name        *string `json:"name"`
		Unit        *string `json:"unit"`
		Status      *string `json:"status"`
		Risk        *string `json:"risk"`
		IncomeMatch *string `json:"income_match"`
		ErrorRate   *string `json:"error_rate"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &badRequestError{msg: "decoding request body"}
	}

	updated, err := r.svc.Update(req.Context(), id, appapplicants.UpdateApplicantCommand{
		Name:        payload.Name,
		Unit:        payload.Unit,
		Status:      payload.Status,
		Risk:        payload.Risk,
		IncomeMatch: payload.IncomeMatch,
		ErrorRate:   payload.ErrorRate,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, updated)
}

// DELETE /api/applicants/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	id, err := applicantID(req)
	if err != nil {
		return err
	}
	if err := r.svc.Delete(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /api/applicants/{id}/run-decision
// Validates the applicant exists, schedules the decision agent in the
// background and acknowledges immediately. The run outlives the request.
func (r *Router) handleRunDecision(w http.ResponseWriter, req *http.Request) error {
	id, err := applicantID(req)
	if err != nil {
		return err
	}
	if _, err := r.svc.Get(req.Context(), id); err != nil {
		return err
	}

	jobID := uuid.New().String()
	middleware.DecisionRunsTotal.Inc()

	go func() {
		middleware.DecisionRunsActive.Inc()
		defer middleware.DecisionRunsActive.Dec()

		if err := r.svc.RunDecisionUntilDone(id); err != nil {
			middleware.DecisionRunsFailed.Inc()
			r.log.Error("decision run failed",
				zap.Int("applicant_id", id),
				zap.String("job_id", jobID),
				zap.Error(err),
			)
			return
		}
		r.log.Info("decision run finished",
			zap.Int("applicant_id", id),
			zap.String("job_id", jobID),
		)
	}()

	return writeJSON(w, http.StatusAccepted, map[string]any{
		"status":       "queued",
		"applicant_id": id,
		"job_id":       jobID,
		"queued_at":    time.Now().UTC(),
	})
}
