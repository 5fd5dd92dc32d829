/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract. Monetary
  amounts cross the boundary as float64 rounded to the minor unit - the
  presentation-time rounding point; all internal arithmetic stays exact.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO:     Response types returned to clients

VALIDATION:
  Handlers convert DTOs to domain requests; the calculators own all
  business validation. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - tuition/types.go: The domain records these mirror
*/
package api

import (
	"time"

	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// FeeCalculationRequest is the request to calculate a student's fees.
type FeeCalculationRequest struct {
	GradeLevel     string             `json:"grade_level"`
	DiscountPolicy string             `json:"discount_policy,omitempty"` // defaults to "none"
	AdditionalFees []AdditionalFeeDTO `json:"additional_fees,omitempty"`
}

// AdditionalFeeDTO is one caller-supplied fee line.
type AdditionalFeeDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LateFeeRequest is the request to accrue a late fee.
type LateFeeRequest struct {
	OriginalAmount float64 `json:"original_amount"`
	OverdueDays    int     `json:"overdue_days"`
	RateType       string  `json:"rate_type"` // "percentage" or "flat"
	Rate           float64 `json:"rate"`
}

// PaymentPlanRequest is the request to generate an installment plan.
type PaymentPlanRequest struct {
	TotalAmount      float64 `json:"total_amount"`
	InstallmentCount int     `json:"installment_count"`
	StartDate        string  `json:"start_date"` // ISO date
}

// RefundRequest is the request to compute a withdrawal refund.
type RefundRequest struct {
	OriginalAmount float64 `json:"original_amount"`
	EnrollmentDate string  `json:"enrollment_date"` // ISO date
	WithdrawalDate string  `json:"withdrawal_date"` // ISO date
	Policy         string  `json:"policy"`          // "full", "none", "prorated"
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// BaseFeesDTO is the base fee snapshot inside a fee calculation.
type BaseFeesDTO struct {
	Tuition  float64 `json:"tuition"`
	Books    float64 `json:"books"`
	Lab      float64 `json:"lab"`
	Activity float64 `json:"activity"`
}

// FeeCalculationDTO mirrors tuition.FeeCalculationResult.
type FeeCalculationDTO struct {
	GradeLevel          string             `json:"grade_level"`
	BaseFees            BaseFeesDTO        `json:"base_fees"`
	AdditionalFees      []AdditionalFeeDTO `json:"additional_fees"`
	Subtotal            float64            `json:"subtotal"`
	AdditionalTotal     float64            `json:"additional_total"`
	TotalBeforeDiscount float64            `json:"total_before_discount"`
	DiscountKey         string             `json:"discount_key"`
	DiscountLabel       string             `json:"discount_label"`
	DiscountRate        float64            `json:"discount_rate"`
	DiscountAmount      float64            `json:"discount_amount"`
	FinalTotal          float64            `json:"final_total"`
	ComputedAt          string             `json:"computed_at"`
}

// LateFeeDTO mirrors tuition.LateFeeResult.
type LateFeeDTO struct {
	OriginalAmount float64 `json:"original_amount"`
	OverdueDays    int     `json:"overdue_days"`
	RateType       string  `json:"rate_type"`
	Rate           float64 `json:"rate"`
	LateFeeAmount  float64 `json:"late_fee_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// InstallmentDTO is one scheduled payment.
type InstallmentDTO struct {
	Index   int     `json:"index"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
	Status  string  `json:"status"`
}

// PaymentPlanDTO mirrors tuition.PaymentPlanResult.
type PaymentPlanDTO struct {
	TotalAmount      float64          `json:"total_amount"`
	InstallmentCount int              `json:"installment_count"`
	Installments     []InstallmentDTO `json:"installments"`
}

// RefundDTO mirrors tuition.RefundResult.
type RefundDTO struct {
	OriginalAmount      float64 `json:"original_amount"`
	DaysSinceEnrollment int     `json:"days_since_enrollment"`
	Policy              string  `json:"policy"`
	RefundPercent       float64 `json:"refund_percent"`
	RefundAmount        float64 `json:"refund_amount"`
	NonRefundableAmount float64 `json:"non_refundable_amount"`
}

// ScheduleRowDTO is one grade's base fees in schedule listings.
type ScheduleRowDTO struct {
	GradeLevel string  `json:"grade_level"`
	Tuition    float64 `json:"tuition"`
	Books      float64 `json:"books"`
	Lab        float64 `json:"lab"`
	Activity   float64 `json:"activity"`
	Subtotal   float64 `json:"subtotal"`
}

// DiscountDTO is one discount policy in listings.
type DiscountDTO struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// RefundBandDTO is one refund band in listings.
type RefundBandDTO struct {
	MaxDaysInclusive int     `json:"max_days_inclusive"`
	RefundPercent    float64 `json:"refund_percent"`
}

// HistoryRecordDTO is one archived calculation.
type HistoryRecordDTO struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	TotalAmount string `json:"total_amount"`
	CreatedAt   string `json:"created_at"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// amountOut rounds to the minor unit and converts for JSON output.
func amountOut(m finance.Money) float64 {
	return m.Round().Float64()
}

func rateOut(m tuition.DiscountPolicy) float64 {
	f, _ := m.Rate.Float64()
	return f
}

func toFeeCalculationDTO(res *tuition.FeeCalculationResult) FeeCalculationDTO {
	lines := make([]AdditionalFeeDTO, len(res.AdditionalFees))
	for i, line := range res.AdditionalFees {
		lines[i] = AdditionalFeeDTO{Name: line.Name, Price: amountOut(line.Price)}
	}
	rate, _ := res.DiscountRate.Float64()
	return FeeCalculationDTO{
		GradeLevel: string(res.GradeLevel),
		BaseFees: BaseFeesDTO{
			Tuition:  amountOut(res.BaseFees.Tuition),
			Books:    amountOut(res.BaseFees.Books),
			Lab:      amountOut(res.BaseFees.Lab),
			Activity: amountOut(res.BaseFees.Activity),
		},
		AdditionalFees:      lines,
		Subtotal:            amountOut(res.Subtotal),
		AdditionalTotal:     amountOut(res.AdditionalTotal),
		TotalBeforeDiscount: amountOut(res.TotalBeforeDiscount),
		DiscountKey:         res.DiscountKey,
		DiscountLabel:       res.DiscountLabel,
		DiscountRate:        rate,
		DiscountAmount:      amountOut(res.DiscountAmount),
		FinalTotal:          amountOut(res.FinalTotal),
		ComputedAt:          res.ComputedAt.Format(time.RFC3339),
	}
}

func toLateFeeDTO(res *tuition.LateFeeResult) LateFeeDTO {
	rate, _ := res.Rate.Float64()
	return LateFeeDTO{
		OriginalAmount: amountOut(res.OriginalAmount),
		OverdueDays:    res.OverdueDays,
		RateType:       string(res.RateType),
		Rate:           rate,
		LateFeeAmount:  amountOut(res.LateFeeAmount),
		TotalAmount:    amountOut(res.TotalAmount),
	}
}

func toPaymentPlanDTO(res *tuition.PaymentPlanResult) PaymentPlanDTO {
	installments := make([]InstallmentDTO, len(res.Installments))
	for i, inst := range res.Installments {
		installments[i] = InstallmentDTO{
			Index:   inst.Index,
			Amount:  amountOut(inst.Amount),
			DueDate: inst.DueDate.String(),
			Status:  string(inst.Status),
		}
	}
	return PaymentPlanDTO{
		TotalAmount:      amountOut(res.TotalAmount),
		InstallmentCount: res.InstallmentCount,
		Installments:     installments,
	}
}

func toRefundDTO(res *tuition.RefundResult) RefundDTO {
	percent, _ := res.RefundPercent.Float64()
	return RefundDTO{
		OriginalAmount:      amountOut(res.OriginalAmount),
		DaysSinceEnrollment: res.DaysSinceEnrollment,
		Policy:              string(res.Policy),
		RefundPercent:       percent,
		RefundAmount:        amountOut(res.RefundAmount),
		NonRefundableAmount: amountOut(res.NonRefundableAmount),
	}
}

func toHistoryRecordDTO(rec tuition.CalculationRecord) HistoryRecordDTO {
	return HistoryRecordDTO{
		ID:          rec.ID,
		Kind:        string(rec.Kind),
		Label:       rec.Label,
		TotalAmount: rec.TotalAmount.String(),
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}
