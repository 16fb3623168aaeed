package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	analyticsdomain "smartsave-go/internal/domain/analytics"
	goalsdomain "smartsave-go/internal/domain/goals"
)

type createGoalRequest struct {
	Name     string `json:"name"`
	Target   int64  `json:"target"`
	Deadline string `json:"deadline"`
	Icon     string `json:"icon"`
}

type depositRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type goalListResponse struct {
	Items []analyticsdomain.GoalView `json:"items"`
}

type depositResponse struct {
	Goal        analyticsdomain.GoalView       `json:"goal"`
	Transaction goalsdomain.Transaction        `json:"transaction"`
	Summary     analyticsdomain.DepositSummary `json:"summary"`
}

type addMoneyResponse struct {
	Success bool `json:"success"`
	analyticsdomain.DepositSummary
	HistoryItem goalsdomain.Transaction `json:"history_item"`
}

type upiLinkResponse struct {
	Success bool   `json:"success"`
	UPIURI  string `json:"upi_uri"`
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Analytics.Dashboard(r.Context()))
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.Goals.ListGoals(r.Context())
	if err != nil {
		h.log.InternalError("goals.list: list goals failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]analyticsdomain.GoalView, 0, len(list))
	for _, goal := range list {
		items = append(items, h.Analytics.View(goal))
	}
	writeJSON(w, http.StatusOK, goalListResponse{Items: items})
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	goal, err := h.Goals.CreateGoal(r.Context(), goalsdomain.CreateGoalInput{
		Name:     req.Name,
		Target:   req.Target,
		Deadline: req.Deadline,
		Icon:     req.Icon,
	})
	if err != nil {
		if errors.Is(err, goalsdomain.ErrNameRequired) || errors.Is(err, goalsdomain.ErrInvalidTarget) {
			h.log.BusinessError("goals.create: invalid request", err)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("goals.create: create goal failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, h.Analytics.View(*goal))
}

func (h *Handlers) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must be a whole number")
		return
	}

	goal, txn, err := h.Goals.AddDeposit(r.Context(), goalID, amount)
	if err != nil {
		switch {
		case errors.Is(err, goalsdomain.ErrInvalidAmount):
			h.log.BusinessError("goals.deposit: invalid amount", err, "goal_id", goalID, "amount", amount)
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, goalsdomain.ErrGoalNotFound):
			h.log.BusinessError("goals.deposit: goal not found", err, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
		default:
			h.log.InternalError("goals.deposit: add deposit failed", err, "goal_id", goalID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, depositResponse{
		Goal:        h.Analytics.View(*goal),
		Transaction: txn,
		Summary:     h.Analytics.DepositSummary(r.Context(), *goal),
	})
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	if err := h.Goals.DeleteGoal(r.Context(), goalID); err != nil {
		if errors.Is(err, goalsdomain.ErrGoalNotFound) {
			h.log.BusinessError("goals.delete: goal not found", err, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
			return
		}
		h.log.InternalError("goals.delete: delete goal failed", err, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddGoalForm handles the dashboard's add-goal form. Incomplete input is
// ignored and the user lands back on the dashboard either way.
func (h *Handlers) AddGoalForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/goal", http.StatusSeeOther)
		return
	}

	target, err := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get("target")), 10, 64)
	if err != nil {
		h.log.BusinessError("goals.add_form: invalid target", err)
		http.Redirect(w, r, "/goal", http.StatusSeeOther)
		return
	}

	_, err = h.Goals.CreateGoal(r.Context(), goalsdomain.CreateGoalInput{
		Name:     r.PostForm.Get("name"),
		Target:   target,
		Deadline: r.PostForm.Get("deadline"),
		Icon:     r.PostForm.Get("icon"),
	})
	switch {
	case err == nil:
	case errors.Is(err, goalsdomain.ErrNameRequired), errors.Is(err, goalsdomain.ErrInvalidTarget):
		h.log.BusinessError("goals.add_form: invalid goal", err)
	default:
		h.log.InternalError("goals.add_form: create goal failed", err)
		http.Error(w, "could not save goal", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/goal", http.StatusSeeOther)
}

func (h *Handlers) AddMoney(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLegacyError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeLegacyError(w, http.StatusBadRequest, "Amount must be a whole number")
		return
	}

	goal, txn, err := h.Goals.AddDeposit(r.Context(), goalID, amount)
	if err != nil {
		switch {
		case errors.Is(err, goalsdomain.ErrInvalidAmount):
			writeLegacyError(w, http.StatusBadRequest, "Amount must be positive")
		case errors.Is(err, goalsdomain.ErrGoalNotFound):
			h.log.BusinessError("goals.add_money: goal not found", err, "goal_id", goalID)
			writeLegacyError(w, http.StatusNotFound, "Goal not found")
		default:
			h.log.InternalError("goals.add_money: add deposit failed", err, "goal_id", goalID)
			writeLegacyError(w, http.StatusInternalServerError, "Could not save deposit")
		}
		return
	}

	writeJSON(w, http.StatusOK, addMoneyResponse{
		Success:        true,
		DepositSummary: h.Analytics.DepositSummary(r.Context(), *goal),
		HistoryItem:    txn,
	})
}

func (h *Handlers) DeleteGoalLegacy(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	if err := h.Goals.DeleteGoal(r.Context(), goalID); err != nil {
		if errors.Is(err, goalsdomain.ErrGoalNotFound) {
			writeLegacyError(w, http.StatusNotFound, "Goal not found")
			return
		}
		h.log.InternalError("goals.delete_legacy: delete goal failed", err, "goal_id", goalID)
		writeLegacyError(w, http.StatusInternalServerError, "Could not delete goal")
		return
	}

	writeJSON(w, http.StatusOK, legacyResponse{Success: true})
}

func (h *Handlers) UPILink(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "id")

	amount, err := parseAmountText(chi.URLParam(r, "amount"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, legacyResponse{Success: false})
		return
	}

	link, err := h.Goals.PaymentLink(r.Context(), goalID, amount)
	if err != nil {
		switch {
		case errors.Is(err, goalsdomain.ErrInvalidAmount):
			writeJSON(w, http.StatusBadRequest, legacyResponse{Success: false})
		case errors.Is(err, goalsdomain.ErrGoalNotFound):
			writeJSON(w, http.StatusNotFound, legacyResponse{Success: false})
		default:
			h.log.InternalError("goals.upi_link: build link failed", err, "goal_id", goalID)
			writeJSON(w, http.StatusInternalServerError, legacyResponse{Success: false})
		}
		return
	}

	writeJSON(w, http.StatusOK, upiLinkResponse{Success: true, UPIURI: link})
}
