package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/tuition-engine/factory"
	"github.com/warp/tuition-engine/finance"
	"github.com/warp/tuition-engine/tuition"
)

func TestDefaultTables(t *testing.T) {
	// GIVEN: No configuration
	// WHEN: Building default tables
	// THEN: The presets are wired through

	tables := factory.DefaultTables()

	base, ok := tables.Schedule.Lookup("Grade 10")
	if !ok {
		t.Fatal("expected Grade 10 in default schedule")
	}
	if !base.Tuition.Equal(finance.NewMoney(15000)) {
		t.Errorf("expected Grade 10 tuition 15000, got %s", base.Tuition)
	}

	if _, ok := tables.Discounts.Lookup(tuition.DiscountNone); !ok {
		t.Error(`expected "none" discount in defaults`)
	}

	if got := tables.RefundBands.Resolve(30); !got.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected 90%% at day 30, got %s", got)
	}
}

func TestParseConfig_FullOverride(t *testing.T) {
	// GIVEN: A config document overriding all three tables
	// WHEN: Parsing
	// THEN: The engine tables reflect the document, not the presets

	data := []byte(`{
		"grade_fee_schedule": {
			"Form 1": {"tuition": 12000, "books": 900, "lab": 300, "activity": 450}
		},
		"discount_policies": [
			{"key": "none", "label": "No Discount", "rate": 0},
			{"key": "early_bird", "label": "Early Enrollment", "rate": 0.05}
		],
		"refund_bands": [
			{"max_days": 14, "refund_percent": 100},
			{"max_days": 45, "refund_percent": 60}
		]
	}`)

	tables, err := factory.ParseConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base, ok := tables.Schedule.Lookup("Form 1")
	if !ok {
		t.Fatal("expected Form 1 in configured schedule")
	}
	if !base.Subtotal().Equal(finance.NewMoney(13650)) {
		t.Errorf("expected Form 1 subtotal 13650, got %s", base.Subtotal())
	}
	if _, ok := tables.Schedule.Lookup("Grade 10"); ok {
		t.Error("preset grades should not leak into a configured schedule")
	}

	policy, ok := tables.Discounts.Lookup("early_bird")
	if !ok {
		t.Fatal("expected early_bird discount")
	}
	if !policy.Rate.Equal(decimal.NewFromFloat(0.05)) {
		t.Errorf("expected rate 0.05, got %s", policy.Rate)
	}

	if got := tables.RefundBands.Resolve(14); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100%% at day 14, got %s", got)
	}
	if got := tables.RefundBands.Resolve(46); !got.IsZero() {
		t.Errorf("expected terminal 0%% beyond last band, got %s", got)
	}
}

func TestParseConfig_PartialOverrideKeepsDefaults(t *testing.T) {
	// GIVEN: A config overriding only the refund bands
	// WHEN: Parsing
	// THEN: Schedule and discounts fall back to the presets

	data := []byte(`{"refund_bands": [{"max_days": 10, "refund_percent": 50}]}`)

	tables, err := factory.ParseConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tables.Schedule.Lookup("Grade 10"); !ok {
		t.Error("expected preset schedule to survive a partial override")
	}
	if got := tables.RefundBands.Resolve(11); !got.IsZero() {
		t.Errorf("expected 0%% beyond configured band, got %s", got)
	}
}

func TestParseConfig_Rejections(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"malformed json", `{"grade_fee_schedule":`},
		{"empty schedule", `{"grade_fee_schedule": {}}`},
		{"negative amount", `{"grade_fee_schedule": {"Grade 1": {"tuition": -1}}}`},
		{"empty grade key", `{"grade_fee_schedule": {"": {"tuition": 100}}}`},
		{"empty discounts", `{"discount_policies": []}`},
		{"discount missing key", `{"discount_policies": [{"label": "X", "rate": 0.1}]}`},
		{"duplicate discount key", `{"discount_policies": [{"key": "a", "rate": 0.1}, {"key": "a", "rate": 0.2}]}`},
		{"rate above one", `{"discount_policies": [{"key": "a", "rate": 1.5}]}`},
		{"descending bands", `{"refund_bands": [{"max_days": 60, "refund_percent": 75}, {"max_days": 30, "refund_percent": 90}]}`},
		{"percent above hundred", `{"refund_bands": [{"max_days": 30, "refund_percent": 120}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := factory.ParseConfig([]byte(tc.data)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestParseConfig_DiscountLabelDefaultsToKey(t *testing.T) {
	data := []byte(`{"discount_policies": [{"key": "staff", "rate": 0.3}]}`)

	tables, err := factory.ParseConfig(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	policy, _ := tables.Discounts.Lookup("staff")
	if policy.Label != "staff" {
		t.Errorf("expected label to default to key, got %q", policy.Label)
	}
}
