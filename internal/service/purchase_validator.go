package service

import (
	"fmt"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// PurchaseRuleResult is the outcome of the stateless purchase rule check.
type PurchaseRuleResult struct {
	Valid   bool
	Message string
}

var allowedSessionCounts = map[int]bool{10: true, 20: true, 30: true}

// ValidatePurchaseRules checks a contract's shape before any trainer work
// happens. Rules are evaluated in order and the first failure wins; a
// failure routes the purchase to INVALID_PURCHASE without further
// processing.
func ValidatePurchaseRules(classType models.ClassType, totalSessions int, mode models.DeliveryMode, studentCount int) PurchaseRuleResult {
	if classType == models.ClassHybrid && totalSessions != 30 {
		return PurchaseRuleResult{Message: "HYBRID classes require exactly 30 sessions"}
	}
	if mode == models.DeliverySundayOnly && totalSessions%2 != 0 {
		return PurchaseRuleResult{Message: "SUNDAY_ONLY delivery requires an even session count"}
	}
	if expected := classType.StudentCount(); expected > 0 && studentCount != expected {
		return PurchaseRuleResult{Message: fmt.Sprintf("%s requires exactly %d student(s), got %d", classType, expected, studentCount)}
	}
	if !allowedSessionCounts[totalSessions] {
		return PurchaseRuleResult{Message: fmt.Sprintf("totalSessions must be 10, 20 or 30, got %d", totalSessions)}
	}
	return PurchaseRuleResult{Valid: true}
}
