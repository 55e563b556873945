package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rosterly/shiftroster/pkg/core/store"
)

// ApproveLeave approves a leave request. Only approved leaves affect
// assignment eligibility.
func ApproveLeave(ctx context.Context, reg *store.Registry, logger *zap.Logger, leaveID string) error {
	leave, ok := reg.Leaves.Get(leaveID)
	if !ok {
		return fmt.Errorf("leave %s not found", leaveID)
	}

	logger.Info("Approving leave",
		zap.String("person_id", leave.PersonID),
		zap.Time("start", leave.StartDate),
		zap.Time("end", leave.EndDate))

	return reg.Leaves.Approve(ctx, leaveID)
}

// RejectLeave rejects a leave request
func RejectLeave(ctx context.Context, reg *store.Registry, logger *zap.Logger, leaveID string) error {
	leave, ok := reg.Leaves.Get(leaveID)
	if !ok {
		return fmt.Errorf("leave %s not found", leaveID)
	}

	logger.Info("Rejecting leave",
		zap.String("person_id", leave.PersonID),
		zap.Time("start", leave.StartDate),
		zap.Time("end", leave.EndDate))

	return reg.Leaves.Reject(ctx, leaveID)
}
