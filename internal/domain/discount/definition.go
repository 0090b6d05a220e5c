package discount

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/money"
)

// CodeLength is the length of generated discount codes.
const CodeLength = 8

var codePattern = regexp.MustCompile(`^[A-Z0-9]{3,32}$`)

// NormalizeCode trims and upper-cases a discount code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateCode returns a random 8 character uppercase alphanumeric code.
func GenerateCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:CodeLength])
}

// field order used to pick which error to surface first
var definitionFields = []string{
	"code",
	"name",
	"discount_type",
	"discount_value",
	"max_discount_amount",
	"min_order_amount",
	"end_date",
	"usage_limit",
	"customer_usage_limit",
	"applies_to",
	"applicabilities",
}

// ValidateDefinition checks the invariants of a discount before it is stored.
func ValidateDefinition(d *models.Discount) error {
	err := validation.ValidateStruct(d,
		validation.Field(&d.Code,
			validation.Required,
			validation.Match(codePattern).Error("must be 3-32 uppercase letters or digits"),
		),
		validation.Field(&d.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.DiscountType,
			validation.Required,
			validation.In(string(TypePercentage), string(TypeFixedAmount)).
				Error("must be percentage or fixed_amount"),
		),
		validation.Field(&d.DiscountValue, validation.By(discountValueRule(Type(d.DiscountType)))),
		validation.Field(&d.MaxDiscountAmount, validation.By(maxDiscountRule(Type(d.DiscountType)))),
		validation.Field(&d.MinOrderAmount, validation.By(nonNegative)),
		validation.Field(&d.EndDate, validation.By(after(d.StartDate))),
		validation.Field(&d.UsageLimit, validation.By(positiveLimit)),
		validation.Field(&d.CustomerUsageLimit, validation.By(positiveLimit)),
		validation.Field(&d.AppliesTo,
			validation.Required,
			validation.In(string(ScopeAll), string(ScopeSpecific)).Error("must be all or specific"),
		),
		validation.Field(&d.Applicabilities,
			validation.When(
				Scope(d.AppliesTo) == ScopeSpecific,
				validation.Required.Error("a specific discount needs at least one applicability"),
			),
			validation.Each(validation.By(applicabilityRule)),
		),
	)
	return firstFieldError(err)
}

func discountValueRule(t Type) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(decimal.Decimal)
		if !v.IsPositive() {
			return errors.New("must be greater than zero")
		}
		if t == TypePercentage && !money.IsValidRate(v) {
			return errors.New("a percentage must be at most 100")
		}
		return nil
	}
}

func maxDiscountRule(t Type) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(decimal.NullDecimal)
		if !v.Valid {
			return nil
		}
		if t != TypePercentage {
			return errors.New("only percentage discounts can be capped")
		}
		if !v.Decimal.IsPositive() {
			return errors.New("must be greater than zero")
		}
		return nil
	}
}

func nonNegative(value interface{}) error {
	v, _ := value.(decimal.NullDecimal)
	if v.Valid && v.Decimal.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}

// zero is rejected explicitly: ozzo's Min treats it as empty
func positiveLimit(value interface{}) error {
	v, _ := value.(*int)
	if v != nil && *v < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func after(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		end, _ := value.(time.Time)
		if !end.After(start) {
			return errors.New("must be after start_date")
		}
		return nil
	}
}

func applicabilityRule(value interface{}) error {
	a, _ := value.(models.DiscountApplicability)
	if !TargetKind(a.ApplicableType).IsValid() {
		return errors.New("applicable_type must be service, category or barber")
	}
	if a.ApplicableID == 0 {
		return errors.New("applicable_id is required")
	}
	return nil
}

func firstFieldError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	for _, f := range definitionFields {
		if fe, ok := errs[f]; ok && fe != nil {
			return httperr.ErrValidation(f, fe.Error())
		}
	}

	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return httperr.ErrValidation(keys[0], errs[keys[0]].Error())
}
