package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/availability"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/cache"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/model"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/outbox"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/schedule"
	"github.com/mbyo2/healthconnect/services/booking-service/internal/storage"
)

type BookingHandler struct {
	repo            *storage.AppointmentRepository
	outboxRepo      *outbox.Repository
	logger          *slog.Logger
	schedule        schedule.Client
	cache           *cache.SlotCache
	reminderOffsets []time.Duration
}

func NewBookingHandler(repo *storage.AppointmentRepository, outboxRepo *outbox.Repository, logger *slog.Logger, scheduleClient schedule.Client, slotCache *cache.SlotCache, reminderOffsets []time.Duration) *BookingHandler {
	return &BookingHandler{
		repo:            repo,
		outboxRepo:      outboxRepo,
		logger:          logger,
		schedule:        scheduleClient,
		cache:           slotCache,
		reminderOffsets: reminderOffsets,
	}
}

type createBookingRequest struct {
	ProviderID      string `json:"provider_id"`
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	PatientPhone    string `json:"patient_phone"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type createBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type cancelBookingRequest struct {
	ProviderID    string `json:"provider_id"`
	AppointmentID string `json:"appointment_id"`
	Reason        string `json:"reason"`
}

type cancelBookingResponse struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at"`
}

type listAppointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type slotsResponse struct {
	ProviderID      string   `json:"provider_id"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Slots           []string `json:"slots"`
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
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

	duration := 0
	if v := strings.TrimSpace(r.URL.Query().Get("duration_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8*60 {
			http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
			return
		}
		duration = n
	}

	win, resolvedDuration, working := h.resolveDaySchedule(r.Context(), providerID, dateStr, date, r)
	if duration == 0 {
		duration = resolvedDuration
	}

	if cached, ok := h.cache.Get(r.Context(), providerID, dateStr, duration); ok {
		h.writeSlots(w, providerID, dateStr, duration, cached)
		return
	}

	if !working {
		h.writeSlots(w, providerID, dateStr, duration, []string{})
		return
	}

	// Cancelled appointments never block a slot; the repository only returns
	// active bookings.
	bookedRows, err := h.repo.ListBookedByProviderDate(r.Context(), providerID, date)
	if err != nil {
		http.Error(w, "failed to load booked slots", http.StatusInternalServerError)
		return
	}
	booked := make([]availability.Appointment, 0, len(bookedRows))
	for _, a := range bookedRows {
		booked = append(booked, availability.Appointment{
			Start:           availability.Clock(a.StartMinute),
			DurationMinutes: a.DurationMinutes,
		})
	}

	slots := availability.Strings(availability.Resolve(win, duration, booked))
	if slots == nil {
		slots = []string{}
	}
	if err := h.cache.Set(r.Context(), providerID, dateStr, duration, slots); err != nil {
		h.logger.Warn("slot cache write failed", "err", err)
	}
	h.writeSlots(w, providerID, dateStr, duration, slots)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.ProviderID = strings.TrimSpace(req.ProviderID)
	req.PatientName = strings.TrimSpace(req.PatientName)
	if req.ProviderID == "" || req.PatientName == "" {
		http.Error(w, "provider_id and patient_name required", http.StatusBadRequest)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.Date), time.UTC)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	start, err := availability.ParseClock(strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}

	win, resolvedDuration, working := h.resolveDaySchedule(r.Context(), req.ProviderID, req.Date, date, r)
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = resolvedDuration
	}
	if duration <= 0 || duration > 8*60 {
		http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
		return
	}

	appt := &model.Appointment{
		ProviderID:      req.ProviderID,
		PatientName:     req.PatientName,
		PatientEmail:    strings.TrimSpace(req.PatientEmail),
		PatientPhone:    strings.TrimSpace(req.PatientPhone),
		Date:            date,
		StartMinute:     int(start),
		DurationMinutes: duration,
		Status:          model.StatusBooked,
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, appt.ProviderID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			if len(rec.ResponsePayload) > 0 {
				_, _ = w.Write(rec.ResponsePayload)
				return
			}
			_ = json.NewEncoder(w).Encode(createBookingResponse{AppointmentID: rec.AppointmentID})
			return
		}
	}

	if !working {
		h.rejectBooking(ctx, w, tx, appt.ProviderID, idempotencyKey, http.StatusUnprocessableEntity, "provider is not available on the requested date")
		return
	}

	booked, err := h.loadBooked(ctx, appt.ProviderID, date)
	if err != nil {
		http.Error(w, "failed to load booked slots", http.StatusInternalServerError)
		return
	}

	// The requested start must be one of the offered grid slots; taken slots
	// answer 409 so clients can retry with a different time, everything else
	// is a validation failure.
	if !containsClock(availability.Resolve(win, duration, nil), start) {
		h.rejectBooking(ctx, w, tx, appt.ProviderID, idempotencyKey, http.StatusUnprocessableEntity, "requested time is outside provider availability")
		return
	}
	if availability.Conflicts(start, duration, booked) {
		http.Error(w, "time slot already booked", http.StatusConflict)
		return
	}

	id, err := h.repo.Create(ctx, tx, appt)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already booked", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	startUTC := appointmentStartUTC(date, int(start))
	evtPayload, err := json.Marshal(map[string]any{
		"appointment_id":   id,
		"provider_id":      appt.ProviderID,
		"patient_name":     appt.PatientName,
		"patient_email":    appt.PatientEmail,
		"patient_phone":    appt.PatientPhone,
		"date":             req.Date,
		"start_time":       start.String(),
		"duration_minutes": duration,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   id,
		EventType:     outbox.TopicAppointmentBooked,
		Payload:       evtPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	for _, offset := range h.reminderOffsets {
		remindAt := startUTC.Add(-offset)
		if remindAt.Before(now) {
			continue
		}
		h.enqueueReminder(ctx, tx, id, appt, req.Date, remindAt, "email", appt.PatientEmail)
		h.enqueueReminder(ctx, tx, id, appt, req.Date, remindAt, "sms", appt.PatientPhone)
	}

	respBody, err := json.Marshal(createBookingResponse{
		AppointmentID: id,
		StartTime:     start.String(),
		EndTime:       start.Add(duration).String(),
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, appt.ProviderID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Invalidate(ctx, appt.ProviderID, req.Date); err != nil {
		h.logger.Warn("slot cache invalidation failed", "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ProviderID = strings.TrimSpace(req.ProviderID)
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.ProviderID == "" || req.AppointmentID == "" {
		http.Error(w, "provider_id and appointment_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := h.repo.GetAppointmentForUpdate(ctx, tx, req.ProviderID, req.AppointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	// Cancelling twice is a no-op that repeats the original answer.
	if appt.Status == model.StatusCancelled && appt.CancelledAt != nil {
		h.writeCancelResponse(w, appt.ID, appt.CancelledAt.UTC())
		return
	}
	if appt.Status != model.StatusBooked {
		http.Error(w, "appointment cannot be cancelled", http.StatusConflict)
		return
	}

	cancelledAt, err := h.repo.CancelAppointment(ctx, tx, req.ProviderID, appt.ID, req.Reason)
	if err != nil {
		http.Error(w, "failed to cancel appointment", http.StatusInternalServerError)
		return
	}

	dateStr := appt.Date.UTC().Format("2006-01-02")
	cancelPayload, err := json.Marshal(map[string]any{
		"appointment_id":   appt.ID,
		"provider_id":      appt.ProviderID,
		"patient_name":     appt.PatientName,
		"patient_email":    appt.PatientEmail,
		"patient_phone":    appt.PatientPhone,
		"date":             dateStr,
		"start_time":       availability.Clock(appt.StartMinute).String(),
		"duration_minutes": appt.DurationMinutes,
		"cancelled_at":     cancelledAt.UTC().Format(time.RFC3339),
		"reason":           req.Reason,
	})
	if err != nil {
		http.Error(w, "failed to build cancellation event", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     outbox.TopicAppointmentCancelled,
		Payload:       cancelPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Invalidate(ctx, appt.ProviderID, dateStr); err != nil {
		h.logger.Warn("slot cache invalidation failed", "err", err)
	}
	h.writeCancelResponse(w, appt.ID, cancelledAt.UTC())
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	if providerID == "" {
		http.Error(w, "provider_id required", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	appts, err := h.repo.ListByProvider(r.Context(), providerID, limit)
	if err != nil {
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	items := make([]listAppointmentItem, 0, len(appts))
	for _, appt := range appts {
		item := listAppointmentItem{
			AppointmentID: appt.ID,
			Date:          appt.Date.UTC().Format("2006-01-02"),
			StartTime:     availability.Clock(appt.StartMinute).String(),
			EndTime:       availability.Clock(appt.StartMinute).Add(appt.DurationMinutes).String(),
			Status:        appt.Status,
			CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
		}
		if appt.CancelledAt != nil {
			item.CancelledAt = appt.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}

	body, err := json.Marshal(items)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// resolveDaySchedule asks the provider service for the day's working window.
// Without a provider client (or when the call fails) it falls back to query
// parameters so the service stays usable in dev setups.
func (h *BookingHandler) resolveDaySchedule(ctx context.Context, providerID, dateStr string, date time.Time, r *http.Request) (availability.Window, int, bool) {
	if h.schedule != nil {
		reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		day, err := h.schedule.GetDaySchedule(reqCtx, providerID, dateStr)
		if err == nil {
			if !day.Working || day.EndMinute <= day.StartMinute {
				return availability.Window{}, day.SlotMinutes, false
			}
			win := availability.Window{
				Weekday: date.Weekday(),
				Start:   availability.Clock(day.StartMinute),
				End:     availability.Clock(day.EndMinute),
			}
			if day.BreakEnd > day.BreakStart {
				win.Break = &availability.Break{
					Start: availability.Clock(day.BreakStart),
					End:   availability.Clock(day.BreakEnd),
				}
			}
			duration := day.SlotMinutes
			if duration <= 0 {
				duration = availability.DefaultSlotMinutes
			}
			return win, duration, true
		}
		h.logger.Warn("day schedule fetch failed; falling back to query params", "err", err)
	}

	win := availability.Window{Weekday: date.Weekday()}
	win.Start = clockParam(r, "work_start", 9*60)
	win.End = clockParam(r, "work_end", 17*60)
	brkStart := clockParam(r, "break_start", -1)
	brkEnd := clockParam(r, "break_end", -1)
	if brkStart >= 0 && brkEnd > brkStart {
		win.Break = &availability.Break{Start: brkStart, End: brkEnd}
	}
	if win.End <= win.Start {
		return availability.Window{}, availability.DefaultSlotMinutes, false
	}
	return win, availability.DefaultSlotMinutes, true
}

func clockParam(r *http.Request, name string, fallback int) availability.Clock {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return availability.Clock(fallback)
	}
	c, err := availability.ParseClock(raw)
	if err != nil {
		return availability.Clock(fallback)
	}
	return c
}

func (h *BookingHandler) loadBooked(ctx context.Context, providerID string, date time.Time) ([]availability.Appointment, error) {
	rows, err := h.repo.ListBookedByProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	booked := make([]availability.Appointment, 0, len(rows))
	for _, a := range rows {
		booked = append(booked, availability.Appointment{
			Start:           availability.Clock(a.StartMinute),
			DurationMinutes: a.DurationMinutes,
		})
	}
	return booked, nil
}

func (h *BookingHandler) enqueueReminder(ctx context.Context, tx pgx.Tx, appointmentID string, appt *model.Appointment, dateStr string, remindAt time.Time, channel, recipient string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appointmentID,
		"provider_id":    appt.ProviderID,
		"channel":        channel,
		"recipient":      recipient,
		"remind_at":      remindAt.UTC().Format(time.RFC3339),
		"template_data": map[string]any{
			"patient_name": appt.PatientName,
			"date":         dateStr,
			"start_time":   availability.Clock(appt.StartMinute).String(),
		},
	})
	if err != nil {
		h.logger.Error("failed to build reminder payload", "err", err)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appointmentID,
		EventType:     outbox.TopicReminderRequested,
		Payload:       payload,
	}); err != nil {
		h.logger.Error("failed to enqueue reminder", "err", err)
	}
}

// rejectBooking finalizes the idempotency key with the error answer so a
// retried request repeats the rejection instead of re-validating.
func (h *BookingHandler) rejectBooking(ctx context.Context, w http.ResponseWriter, tx pgx.Tx, providerID, idempotencyKey string, statusCode int, msg string) {
	if idempotencyKey != "" {
		body, err := json.Marshal(map[string]string{"error": msg})
		if err == nil {
			if err := h.repo.FinalizeIdempotency(ctx, tx, providerID, idempotencyKey, "", statusCode, body); err == nil {
				if err := tx.Commit(ctx); err == nil {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(statusCode)
					_, _ = w.Write(body)
					return
				}
			}
		}
	}
	http.Error(w, msg, statusCode)
}

func (h *BookingHandler) writeCancelResponse(w http.ResponseWriter, appointmentID string, cancelledAt time.Time) {
	resp := cancelBookingResponse{
		AppointmentID: appointmentID,
		Status:        model.StatusCancelled,
		CancelledAt:   cancelledAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *BookingHandler) writeSlots(w http.ResponseWriter, providerID, date string, durationMinutes int, slots []string) {
	body, err := json.Marshal(slotsResponse{
		ProviderID:      providerID,
		Date:            date,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func containsClock(slots []availability.Clock, want availability.Clock) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}

func appointmentStartUTC(date time.Time, startMinute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, startMinute, 0, 0, time.UTC)
}
