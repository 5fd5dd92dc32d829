/*
handlers.go - HTTP API handlers for the tuition calculation engine

PURPOSE:
  Exposes the calculators via REST. Handles HTTP request/response, JSON
  serialization, and delegates all business logic to the tuition package.

ENDPOINTS:
  Calculations:
    POST /api/calculations/fees           Calculate student fees
    POST /api/calculations/late-fees      Accrue a late fee
    POST /api/calculations/payment-plans  Generate an installment plan
    POST /api/calculations/refunds        Compute a withdrawal refund

  Reference tables:
    GET  /api/schedule                    Grade fee schedule
    GET  /api/discounts                   Discount policies
    GET  /api/refund-bands                Refund proration bands

  History:
    GET  /api/history?limit=n             Recent calculations, newest first

REQUEST FLOW:
  1. Decode request DTO
  2. Convert to domain request (ISO dates -> finance.Date, floats -> Money)
  3. Call the calculator
  4. Serialize result DTO; archive a history record
  5. Map errors to status codes

ERROR HANDLING:
  - 400: validation errors (finance.IsValidation)
  - 500: anything else
  A failed history append never fails the calculation; it is logged and
  the result is still returned.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/factory"
	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tables  factory.Tables
	History tuition.HistoryStore

	fees    *tuition.FeeCalculator
	refunds *tuition.RefundCalculator
}

// NewHandler creates a handler over the given reference tables and
// history store.
func NewHandler(tables factory.Tables, history tuition.HistoryStore) *Handler {
	return &Handler{
		Tables:  tables,
		History: history,
		fees:    tuition.NewFeeCalculator(tables.Schedule, tables.Discounts),
		refunds: tuition.NewRefundCalculator(tables.RefundBands),
	}
}

// =============================================================================
// CALCULATION HANDLERS
// =============================================================================

// CalculateFees handles POST /api/calculations/fees.
func (h *Handler) CalculateFees(w http.ResponseWriter, r *http.Request) {
	var req FeeCalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	discountKey := req.DiscountPolicy
	if discountKey == "" {
		discountKey = tuition.DiscountNone
	}

	lines := make([]tuition.AdditionalFeeLine, len(req.AdditionalFees))
	for i, line := range req.AdditionalFees {
		lines[i] = tuition.AdditionalFeeLine{
			Name:  line.Name,
			Price: finance.NewMoney(line.Price),
		}
	}

	result, err := h.fees.Calculate(tuition.GradeLevel(req.GradeLevel), discountKey, lines)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	dto := toFeeCalculationDTO(result)
	h.archive(r, tuition.KindFee,
		fmt.Sprintf("%s / %s", result.GradeLevel, result.DiscountLabel),
		result.FinalTotal, dto)
	writeJSON(w, http.StatusOK, dto)
}

// CalculateLateFee handles POST /api/calculations/late-fees.
func (h *Handler) CalculateLateFee(w http.ResponseWriter, r *http.Request) {
	var req LateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := tuition.CalculateLateFee(tuition.LateFeeRequest{
		OriginalAmount: finance.NewMoney(req.OriginalAmount),
		OverdueDays:    req.OverdueDays,
		RateType:       tuition.RateType(req.RateType),
		Rate:           decimal.NewFromFloat(req.Rate),
	})
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	dto := toLateFeeDTO(result)
	h.archive(r, tuition.KindLateFee,
		fmt.Sprintf("%d days overdue / %s", result.OverdueDays, result.RateType),
		result.TotalAmount, dto)
	writeJSON(w, http.StatusOK, dto)
}

// GeneratePaymentPlan handles POST /api/calculations/payment-plans.
func (h *Handler) GeneratePaymentPlan(w http.ResponseWriter, r *http.Request) {
	var req PaymentPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startDate, err := finance.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}

	result, err := tuition.GeneratePlan(tuition.PaymentPlanRequest{
		TotalAmount:      finance.NewMoney(req.TotalAmount),
		InstallmentCount: req.InstallmentCount,
		StartDate:        startDate,
	})
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	dto := toPaymentPlanDTO(result)
	h.archive(r, tuition.KindPaymentPlan,
		fmt.Sprintf("%d installments from %s", result.InstallmentCount, startDate),
		result.TotalAmount, dto)
	writeJSON(w, http.StatusOK, dto)
}

// CalculateRefund handles POST /api/calculations/refunds.
func (h *Handler) CalculateRefund(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	enrollment, err := finance.ParseDate(req.EnrollmentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid enrollment_date format (use YYYY-MM-DD)", err)
		return
	}
	withdrawal, err := finance.ParseDate(req.WithdrawalDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid withdrawal_date format (use YYYY-MM-DD)", err)
		return
	}

	result, err := h.refunds.Calculate(tuition.RefundRequest{
		OriginalAmount: finance.NewMoney(req.OriginalAmount),
		EnrollmentDate: enrollment,
		WithdrawalDate: withdrawal,
		Policy:         tuition.RefundPolicy(req.Policy),
	})
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	dto := toRefundDTO(result)
	h.archive(r, tuition.KindRefund,
		fmt.Sprintf("%s / %d days", result.Policy, result.DaysSinceEnrollment),
		result.RefundAmount, dto)
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// REFERENCE TABLE HANDLERS
// =============================================================================

// ListSchedule handles GET /api/schedule.
func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	grades := h.Tables.Schedule.Grades()
	rows := make([]ScheduleRowDTO, 0, len(grades))
	for _, grade := range grades {
		base, _ := h.Tables.Schedule.Lookup(grade)
		rows = append(rows, ScheduleRowDTO{
			GradeLevel: string(grade),
			Tuition:    amountOut(base.Tuition),
			Books:      amountOut(base.Books),
			Lab:        amountOut(base.Lab),
			Activity:   amountOut(base.Activity),
			Subtotal:   amountOut(base.Subtotal()),
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

// ListDiscounts handles GET /api/discounts.
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	policies := h.Tables.Discounts.Policies()
	dtos := make([]DiscountDTO, len(policies))
	for i, p := range policies {
		dtos[i] = DiscountDTO{Key: p.Key, Label: p.Label, Rate: rateOut(p)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListRefundBands handles GET /api/refund-bands.
func (h *Handler) ListRefundBands(w http.ResponseWriter, r *http.Request) {
	bands := h.Tables.RefundBands.Bands()
	dtos := make([]RefundBandDTO, len(bands))
	for i, b := range bands {
		percent, _ := b.RefundPercent.Float64()
		dtos[i] = RefundBandDTO{MaxDaysInclusive: b.MaxDaysInclusive, RefundPercent: percent}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListHistory handles GET /api/history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	records, err := h.History.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}

	dtos := make([]HistoryRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toHistoryRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

var recordSeq atomic.Uint64

func newRecordID() string {
	return fmt.Sprintf("calc-%d-%d", time.Now().UnixNano(), recordSeq.Add(1))
}

// archive appends a history record for a successful calculation. Failures
// are logged, never surfaced: the calculation already succeeded.
func (h *Handler) archive(r *http.Request, kind tuition.CalculationKind, label string, total finance.Money, payload any) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("history: failed to marshal %s payload: %v", kind, err)
		return
	}
	rec := tuition.CalculationRecord{
		ID:          newRecordID(),
		Kind:        kind,
		Label:       label,
		TotalAmount: total.Round(),
		PayloadJSON: string(payloadJSON),
		CreatedAt:   time.Now().UTC(),
	}
	// The request context dies with the client connection; the record
	// outlives it.
	if err := h.History.Append(context.WithoutCancel(r.Context()), rec); err != nil {
		log.Printf("history: failed to append %s record: %v", kind, err)
	}
}

// writeCalculationError maps calculator errors to HTTP statuses.
func writeCalculationError(w http.ResponseWriter, err error) {
	if !finance.IsValidation(err) {
		writeError(w, http.StatusInternalServerError, "Calculation failed", err)
		return
	}

	resp := ErrorResponse{Error: err.Error()}
	var vErr *finance.ValidationError
	var gradeErr *finance.UnknownGradeError
	var discountErr *finance.UnknownDiscountError
	switch {
	case errors.As(err, &vErr):
		resp.Field = vErr.Field
	case errors.As(err, &gradeErr):
		resp.Field = "grade_level"
	case errors.As(err, &discountErr):
		resp.Field = "discount_policy"
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
