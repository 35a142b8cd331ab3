package domain

import "strings"

// AlertKind identifies one of the fixed alert conditions.
type AlertKind string

const (
	AlertStockoutRisk AlertKind = "stockout_risk"
	AlertOverstock    AlertKind = "overstock"
	AlertStale        AlertKind = "stale_product"
	AlertExpired      AlertKind = "expired_product"
)

var alertKindLabels = map[AlertKind]string{
	AlertStockoutRisk: "Immediate stockout risk",
	AlertOverstock:    "Overstock",
	AlertStale:        "Stale product",
	AlertExpired:      "Expired product",
}

// AlertKinds lists every kind in evaluation order.
func AlertKinds() []AlertKind {
	return []AlertKind{AlertStockoutRisk, AlertOverstock, AlertStale, AlertExpired}
}

// Label returns a human-readable label for the alert kind.
func (k AlertKind) Label() string {
	if label, ok := alertKindLabels[k]; ok {
		return label
	}

	return string(k)
}

// ParseAlertKind returns the kind for a given value (case-insensitive).
func ParseAlertKind(value string) (AlertKind, bool) {
	kind := AlertKind(strings.ToLower(strings.TrimSpace(value)))
	_, ok := alertKindLabels[kind]

	return kind, ok
}
