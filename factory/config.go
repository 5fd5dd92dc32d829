/*
Package factory provides JSON to Go reference-table conversion.

PURPOSE:
  Converts JSON table definitions into the engine's immutable reference
  tables (grade fee schedule, discount policies, refund bands). This
  enables table configuration without code changes - the accounting
  office can adjust fees in JSON, and the factory builds the proper Go
  structures.

WHY JSON?
  - Non-developers can adjust fee schedules and rates
  - Easy integration with an admin UI
  - Version control for policy definitions

JSON SCHEMA:
  {
    "grade_fee_schedule": {
      "Grade 10": {"tuition": 15000, "books": 2000, "lab": 500, "activity": 1000}
    },
    "discount_policies": [
      {"key": "sibling", "label": "Sibling Discount", "rate": 0.10}
    ],
    "refund_bands": [
      {"max_days": 30, "refund_percent": 90},
      {"max_days": 60, "refund_percent": 75}
    ]
  }

KEY FEATURES:
  - Any omitted section falls back to the tuition package presets
  - Validates amounts (non-negative), rates ([0,1]), bands (ascending,
    percents in [0,100])
  - Produces immutable snapshots; later config edits never reach
    in-flight calculations

USAGE:
  tables := factory.DefaultTables()

  // Or from a config document
  tables, err := factory.ParseConfig(jsonBytes)

SEE ALSO:
  - tuition/tables.go: The preset tables
  - cmd/server: Loads a config file behind the -config flag
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of the engine's reference tables.
// Every section is optional.
type ConfigJSON struct {
	Schedule    map[string]BaseFeesJSON `json:"grade_fee_schedule,omitempty"`
	Discounts   []DiscountJSON          `json:"discount_policies,omitempty"`
	RefundBands []RefundBandJSON        `json:"refund_bands,omitempty"`
}

// BaseFeesJSON represents one grade's base fees.
type BaseFeesJSON struct {
	Tuition  float64 `json:"tuition"`
	Books    float64 `json:"books"`
	Lab      float64 `json:"lab"`
	Activity float64 `json:"activity"`
}

// DiscountJSON represents one named discount policy.
type DiscountJSON struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// RefundBandJSON represents one refund proration band.
type RefundBandJSON struct {
	MaxDays       int     `json:"max_days"`
	RefundPercent float64 `json:"refund_percent"`
}

// =============================================================================
// TABLES - Bundled immutable reference data
// =============================================================================

// Tables bundles the three reference tables a configured engine runs on.
type Tables struct {
	Schedule    tuition.GradeFeeSchedule
	Discounts   tuition.DiscountPolicySet
	RefundBands tuition.RefundBandTable
}

// DefaultTables returns the preset tables from the tuition package.
func DefaultTables() Tables {
	return Tables{
		Schedule:    tuition.DefaultGradeFeeSchedule(),
		Discounts:   tuition.DefaultDiscountPolicies(),
		RefundBands: tuition.DefaultRefundBands(),
	}
}

// =============================================================================
// PARSING
// =============================================================================

// ParseConfig builds Tables from a JSON config document. Omitted sections
// fall back to the presets.
func ParseConfig(data []byte) (Tables, error) {
	var cfg ConfigJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Tables{}, fmt.Errorf("invalid config JSON: %w", err)
	}

	tables := DefaultTables()

	if cfg.Schedule != nil {
		schedule, err := parseSchedule(cfg.Schedule)
		if err != nil {
			return Tables{}, err
		}
		tables.Schedule = schedule
	}

	if cfg.Discounts != nil {
		discounts, err := parseDiscounts(cfg.Discounts)
		if err != nil {
			return Tables{}, err
		}
		tables.Discounts = discounts
	}

	if cfg.RefundBands != nil {
		bands, err := parseRefundBands(cfg.RefundBands)
		if err != nil {
			return Tables{}, err
		}
		tables.RefundBands = bands
	}

	return tables, nil
}

func parseSchedule(raw map[string]BaseFeesJSON) (tuition.GradeFeeSchedule, error) {
	if len(raw) == 0 {
		return tuition.GradeFeeSchedule{}, fmt.Errorf("grade_fee_schedule must not be empty")
	}

	fees := make(map[tuition.GradeLevel]tuition.BaseFees, len(raw))
	for grade, b := range raw {
		if grade == "" {
			return tuition.GradeFeeSchedule{}, fmt.Errorf("grade_fee_schedule contains an empty grade level")
		}
		for name, v := range map[string]float64{"tuition": b.Tuition, "books": b.Books, "lab": b.Lab, "activity": b.Activity} {
			if v < 0 {
				return tuition.GradeFeeSchedule{}, fmt.Errorf("grade %q: %s must not be negative, got %v", grade, name, v)
			}
		}
		fees[tuition.GradeLevel(grade)] = tuition.BaseFees{
			Tuition:  finance.NewMoney(b.Tuition),
			Books:    finance.NewMoney(b.Books),
			Lab:      finance.NewMoney(b.Lab),
			Activity: finance.NewMoney(b.Activity),
		}
	}
	return tuition.NewGradeFeeSchedule(fees), nil
}

func parseDiscounts(raw []DiscountJSON) (tuition.DiscountPolicySet, error) {
	if len(raw) == 0 {
		return tuition.DiscountPolicySet{}, fmt.Errorf("discount_policies must not be empty")
	}

	policies := make([]tuition.DiscountPolicy, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, d := range raw {
		if d.Key == "" {
			return tuition.DiscountPolicySet{}, fmt.Errorf("discount_policies[%d]: key is required", i)
		}
		if seen[d.Key] {
			return tuition.DiscountPolicySet{}, fmt.Errorf("discount_policies: duplicate key %q", d.Key)
		}
		seen[d.Key] = true
		if d.Rate < 0 || d.Rate > 1 {
			return tuition.DiscountPolicySet{}, fmt.Errorf("discount_policies[%d] %q: rate %v outside [0, 1]", i, d.Key, d.Rate)
		}
		label := d.Label
		if label == "" {
			label = d.Key
		}
		policies = append(policies, tuition.DiscountPolicy{
			Key:   d.Key,
			Label: label,
			Rate:  decimal.NewFromFloat(d.Rate),
		})
	}
	return tuition.NewDiscountPolicySet(policies), nil
}

func parseRefundBands(raw []RefundBandJSON) (tuition.RefundBandTable, error) {
	bands := make([]tuition.RefundBand, len(raw))
	for i, b := range raw {
		bands[i] = tuition.RefundBand{
			MaxDaysInclusive: b.MaxDays,
			RefundPercent:    decimal.NewFromFloat(b.RefundPercent),
		}
	}
	table, err := tuition.NewRefundBandTable(bands)
	if err != nil {
		return tuition.RefundBandTable{}, fmt.Errorf("refund_bands: %w", err)
	}
	return table, nil
}
