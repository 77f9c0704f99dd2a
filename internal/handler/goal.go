package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/routinely/routinely/internal/model"
	"github.com/routinely/routinely/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// goalRequest carries a goal creation payload. Exactly the fields of one
// variant shape must be set, selected by type. Day targets arrive as a
// pair list so a duplicate weekday is visible and rejected instead of
// silently collapsed.
type goalRequest struct {
	Type      string `json:"type"`
	WeekStart string `json:"week_start,omitempty"`
	Date      string `json:"date,omitempty"`

	// days_of_week
	WeeksInterval int               `json:"weeks_interval,omitempty"`
	DayTargets    []model.DayTarget `json:"day_targets,omitempty"`

	// every_x_days
	DaysInterval int `json:"days_interval,omitempty"`

	// every_x_days, weeks_period
	TargetID string `json:"target_id,omitempty"`
}

func (req *goalRequest) variant() (model.GoalVariant, error) {
	goalType, err := model.ParseGoalType(req.Type)
	if err != nil {
		return nil, err
	}

	switch goalType {
	case model.GoalTypeDaysOfWeek:
		v, err := model.NewDaysOfWeekVariant(req.WeeksInterval, req.DayTargets)
		if err != nil {
			return nil, err
		}
		return v, nil
	case model.GoalTypeEveryXDays:
		return model.EveryXDaysVariant{DaysInterval: req.DaysInterval, TargetID: req.TargetID}, nil
	case model.GoalTypeWeeksPeriod:
		return model.WeeksPeriodVariant{TargetID: req.TargetID}, nil
	}

	panic(fmt.Sprintf("unhandled goal type %q", goalType))
}

// scheduleInputs parses the optional current-date and week-start
// overrides; zero values let the service fall back to today and the
// configured week start.
func (req *goalRequest) scheduleInputs() (model.CalendarDate, model.DayOfWeek, error) {
	var today model.CalendarDate
	var weekStart model.DayOfWeek

	if req.Date != "" {
		parsed, err := model.ParseCalendarDate(req.Date)
		if err != nil {
			return today, weekStart, err
		}
		today = parsed
	}

	if req.WeekStart != "" {
		parsed, err := model.ParseDayOfWeek(req.WeekStart)
		if err != nil {
			return today, weekStart, err
		}
		weekStart = parsed
	}

	return today, weekStart, nil
}

// goalResponse flattens the tagged union for the wire: the shared fields
// plus only the variant fields matching the type tag.
type goalResponse struct {
	ID            string             `json:"id"`
	ActivityID    string             `json:"activity_id"`
	Type          model.GoalType     `json:"type"`
	EffectiveDate model.CalendarDate `json:"effective_date"`
	CreatedAt     time.Time          `json:"created_at"`

	WeeksInterval int               `json:"weeks_interval,omitempty"`
	DayTargets    []model.DayTarget `json:"day_targets,omitempty"`
	DaysInterval  int               `json:"days_interval,omitempty"`
	TargetID      string            `json:"target_id,omitempty"`
}

func newGoalResponse(goal *model.Goal) goalResponse {
	resp := goalResponse{
		ID:            goal.ID,
		ActivityID:    goal.ActivityID,
		Type:          goal.Type,
		EffectiveDate: goal.EffectiveDate,
		CreatedAt:     goal.CreatedAt,
	}

	switch v := goal.Variant.(type) {
	case model.DaysOfWeekVariant:
		resp.WeeksInterval = v.WeeksInterval
		resp.DayTargets = v.SortedDayTargets()
	case model.EveryXDaysVariant:
		resp.DaysInterval = v.DaysInterval
		resp.TargetID = v.TargetID
	case model.WeeksPeriodVariant:
		resp.TargetID = v.TargetID
	default:
		panic(fmt.Sprintf("unhandled goal variant %T", goal.Variant))
	}

	return resp
}

// Create configures a goal for an activity. The effective date is
// resolved from the goal type, the current date and the week-start day
// before anything is written.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// Replace swaps an activity's goal for a new one (delete + create, since
// goals are immutable).
func (h *GoalHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h *GoalHandler) create(w http.ResponseWriter, r *http.Request, replace bool) {
	activityID := r.PathValue("id")

	var req goalRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	variant, err := req.variant()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	today, weekStart, err := req.scheduleInputs()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	effectiveDate := h.goalService.EffectiveDate(variant.Type(), today, weekStart)

	var goal *model.Goal
	if replace {
		goal, err = h.goalService.Replace(activityID, variant, effectiveDate)
	} else {
		goal, err = h.goalService.Create(activityID, variant, effectiveDate)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newGoalResponse(goal))
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.ByActivity(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newGoalResponse(goal))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.goalService.Delete(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type effectiveDateRequest struct {
	Type      string `json:"type"`
	Date      string `json:"date,omitempty"`
	WeekStart string `json:"week_start,omitempty"`
}

type effectiveDateResponse struct {
	EffectiveDate model.CalendarDate `json:"effective_date"`
}

// EffectiveDate previews the anchor date for a goal type without creating
// anything.
func (h *GoalHandler) EffectiveDate(w http.ResponseWriter, r *http.Request) {
	var req effectiveDateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goalType, err := model.ParseGoalType(req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	inputs := goalRequest{Date: req.Date, WeekStart: req.WeekStart}
	today, weekStart, err := inputs.scheduleInputs()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	effectiveDate := h.goalService.EffectiveDate(goalType, today, weekStart)

	respondJSON(w, http.StatusOK, effectiveDateResponse{EffectiveDate: effectiveDate})
}
