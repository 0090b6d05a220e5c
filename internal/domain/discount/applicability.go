package discount

import "github.com/BruksfildServices01/barber-booking/internal/models"

type TargetKind string

const (
	KindService  TargetKind = "service"
	KindCategory TargetKind = "category"
	KindBarber   TargetKind = "barber"
)

// Applicability is one scoping rule of a specific discount.
type Applicability struct {
	Kind TargetKind
	ID   uint
}

// resolvers pick, per kind, the id of the target the rule is compared with.
var resolvers = map[TargetKind]func(Target) uint{
	KindService:  func(t Target) uint { return t.ServiceID },
	KindCategory: func(t Target) uint { return t.CategoryID },
	KindBarber:   func(t Target) uint { return t.BarberID },
}

func (k TargetKind) IsValid() bool {
	_, ok := resolvers[k]
	return ok
}

func (a Applicability) Matches(t Target) bool {
	resolve, ok := resolvers[a.Kind]
	if !ok {
		return false
	}
	id := resolve(t)
	return id != 0 && id == a.ID
}

func FromModel(m models.DiscountApplicability) Applicability {
	return Applicability{Kind: TargetKind(m.ApplicableType), ID: m.ApplicableID}
}

// InScope reports whether the discount covers the target. "all" always does;
// "specific" needs at least one matching rule.
func InScope(d *models.Discount, t Target) bool {
	if Scope(d.AppliesTo) != ScopeSpecific {
		return true
	}
	for _, m := range d.Applicabilities {
		if FromModel(m).Matches(t) {
			return true
		}
	}
	return false
}
