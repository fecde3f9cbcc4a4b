package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mbyo2/healthconnect/services/provider-service/internal/schedule"
	"github.com/mbyo2/healthconnect/services/provider-service/internal/storage"
)

type Handler struct {
	repo     *storage.Repository
	resolver *schedule.Resolver
}

func New(repo *storage.Repository, resolver *schedule.Resolver) *Handler {
	return &Handler{repo: repo, resolver: resolver}
}

// parseClock converts "HH:MM" to minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return hh*60 + mm, nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

func (h *Handler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Name      string `json:"name"`
		Specialty string `json:"specialty"`
		Timezone  string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Timezone) == "" {
		req.Timezone = "UTC"
	}

	id, err := h.repo.CreateProvider(r.Context(), req.Name, strings.TrimSpace(req.Specialty), req.Timezone)
	if err != nil {
		http.Error(w, "failed to create provider", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
}

func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	providers, err := h.repo.ListProviders(r.Context(), limit)
	if err != nil {
		http.Error(w, "failed to list providers", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(providers))
	for _, p := range providers {
		items = append(items, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"specialty": p.Specialty,
			"timezone":  p.Timezone,
			"is_active": p.IsActive,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (h *Handler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	var req struct {
		Name      string `json:"name"`
		Specialty string `json:"specialty"`
		Timezone  string `json:"timezone"`
		IsActive  *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Timezone) == "" {
		req.Timezone = "UTC"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	if err := h.repo.UpdateProvider(r.Context(), providerID, req.Name, strings.TrimSpace(req.Specialty), req.Timezone, active); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update provider", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	windows, err := h.repo.ListWeeklyWindows(r.Context(), providerID)
	if err != nil {
		http.Error(w, "failed to list availability", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(windows))
	for _, win := range windows {
		item := map[string]any{
			"weekday":    win.Weekday,
			"is_working": win.IsWorking,
		}
		if win.IsWorking {
			item["start_time"] = formatClock(win.StartMinute)
			item["end_time"] = formatClock(win.EndMinute)
			if win.BreakEndMinute > win.BreakStartMinute {
				item["break_start"] = formatClock(win.BreakStartMinute)
				item["break_end"] = formatClock(win.BreakEndMinute)
			}
		}
		items = append(items, item)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (h *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	var req struct {
		Weekday    *int   `json:"weekday"`
		IsWorking  bool   `json:"is_working"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		BreakStart string `json:"break_start"`
		BreakEnd   string `json:"break_end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if req.Weekday == nil || *req.Weekday < 0 || *req.Weekday > 6 {
		http.Error(w, "weekday must be 0..6", http.StatusBadRequest)
		return
	}

	win := storage.WeeklyWindow{
		ProviderID: providerID,
		Weekday:    *req.Weekday,
		IsWorking:  req.IsWorking,
	}
	if req.IsWorking {
		var err error
		if win.StartMinute, err = parseClock(req.StartTime); err != nil {
			http.Error(w, "invalid start_time", http.StatusBadRequest)
			return
		}
		if win.EndMinute, err = parseClock(req.EndTime); err != nil {
			http.Error(w, "invalid end_time", http.StatusBadRequest)
			return
		}
		if win.EndMinute <= win.StartMinute {
			http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
			return
		}
		if req.BreakStart != "" || req.BreakEnd != "" {
			if win.BreakStartMinute, err = parseClock(req.BreakStart); err != nil {
				http.Error(w, "invalid break_start", http.StatusBadRequest)
				return
			}
			if win.BreakEndMinute, err = parseClock(req.BreakEnd); err != nil {
				http.Error(w, "invalid break_end", http.StatusBadRequest)
				return
			}
			if win.BreakEndMinute <= win.BreakStartMinute ||
				win.BreakStartMinute < win.StartMinute ||
				win.BreakEndMinute > win.EndMinute {
				http.Error(w, "break must fall inside working hours", http.StatusBadRequest)
				return
			}
		}
	}

	if err := h.repo.UpsertWeeklyWindow(r.Context(), win); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update availability", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	var req struct {
		Date       string `json:"date"`
		IsWorking  bool   `json:"is_working"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		BreakStart string `json:"break_start"`
		BreakEnd   string `json:"break_end"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	o := storage.Override{
		ProviderID: providerID,
		Date:       date,
		IsWorking:  req.IsWorking,
		Reason:     strings.TrimSpace(req.Reason),
	}
	if req.IsWorking {
		if o.StartMinute, err = parseClock(req.StartTime); err != nil {
			http.Error(w, "invalid start_time", http.StatusBadRequest)
			return
		}
		if o.EndMinute, err = parseClock(req.EndTime); err != nil {
			http.Error(w, "invalid end_time", http.StatusBadRequest)
			return
		}
		if o.EndMinute <= o.StartMinute {
			http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
			return
		}
		if req.BreakStart != "" || req.BreakEnd != "" {
			if o.BreakStartMinute, err = parseClock(req.BreakStart); err != nil {
				http.Error(w, "invalid break_start", http.StatusBadRequest)
				return
			}
			if o.BreakEndMinute, err = parseClock(req.BreakEnd); err != nil {
				http.Error(w, "invalid break_end", http.StatusBadRequest)
				return
			}
			if o.BreakEndMinute <= o.BreakStartMinute ||
				o.BreakStartMinute < o.StartMinute ||
				o.BreakEndMinute > o.EndMinute {
				http.Error(w, "break must fall inside working hours", http.StatusBadRequest)
				return
			}
		}
	}

	id, err := h.repo.UpsertOverride(r.Context(), o)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to save override", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"id": id})
}

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 6, 0)
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			http.Error(w, "invalid from", http.StatusBadRequest)
			return
		}
		from = t
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			http.Error(w, "invalid to", http.StatusBadRequest)
			return
		}
		to = t
	}

	overrides, err := h.repo.ListOverrides(r.Context(), providerID, from, to, 100)
	if err != nil {
		http.Error(w, "failed to list overrides", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(overrides))
	for _, o := range overrides {
		item := map[string]any{
			"id":         o.ID,
			"date":       o.Date.UTC().Format("2006-01-02"),
			"is_working": o.IsWorking,
			"reason":     o.Reason,
		}
		if o.IsWorking {
			item["start_time"] = formatClock(o.StartMinute)
			item["end_time"] = formatClock(o.EndMinute)
			if o.BreakEndMinute > o.BreakStartMinute {
				item["break_start"] = formatClock(o.BreakStartMinute)
				item["break_end"] = formatClock(o.BreakEndMinute)
			}
		}
		items = append(items, item)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(items)
}

func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	overrideID := strings.TrimSpace(r.URL.Query().Get("id"))
	if providerID == "" || overrideID == "" {
		http.Error(w, "provider_id and id required", http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteOverride(r.Context(), providerID, overrideID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "override not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete override", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DaySchedule resolves the effective schedule for one provider and date,
// applying override precedence. The booking service reads the same answer
// over gRPC.
func (h *Handler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if providerID == "" || dateStr == "" {
		http.Error(w, "provider_id and date are required", http.StatusBadRequest)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	day, err := h.resolver.Day(r.Context(), providerID, date)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "provider not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve schedule", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"provider_id":  providerID,
		"date":         dateStr,
		"is_working":   day.Working,
		"slot_minutes": day.SlotMinutes,
		"source":       day.Source,
	}
	if day.Working {
		resp["start_time"] = formatClock(day.StartMinute)
		resp["end_time"] = formatClock(day.EndMinute)
		if day.BreakEnd > day.BreakStart {
			resp["break_start"] = formatClock(day.BreakStart)
			resp["break_end"] = formatClock(day.BreakEnd)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
