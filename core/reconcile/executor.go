package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a marketplace call when ExecuteOptions.CallTimeout is zero.
const DefaultCallTimeout = 30 * time.Second

// ExecuteOptions controls plan execution.
type ExecuteOptions struct {
	// CallTimeout bounds every marketplace call.
	CallTimeout time.Duration

	// Logger receives one debug line per executed action. Optional.
	Logger *zap.Logger
}

// Execute applies the plan through client in plan order and returns one outcome per action.
//
// A failed action never aborts the run. No-ops succeed without a call. Once ctx is done no
// further calls are issued and the remaining actions are recorded as cancelled failures.
func Execute(ctx context.Context, plan []Action, client Marketplace, opts ExecuteOptions) []Outcome {
	timeout := opts.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	outcomes := make([]Outcome, 0, len(plan))

	for _, action := range plan {
		if action.Type == ActionNoOp {
			outcomes = append(outcomes, Outcome{Action: action, Status: StatusSuccess})
			continue
		}

		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, Outcome{
				Action: action,
				Status: StatusFailure,
				Kind:   KindCancelled,
				Reason: fmt.Sprintf("not attempted: %v", err),
			})
			continue
		}

		outcome := executeOne(ctx, action, client, timeout)
		if outcome.Succeeded() {
			log.Debug("Action applied",
				zap.String("type", string(action.Type)),
				zap.String("key", string(action.Key)),
				zap.Duration("duration", outcome.Duration),
			)
		} else {
			log.Warn("Action failed",
				zap.String("type", string(action.Type)),
				zap.String("key", string(action.Key)),
				zap.String("kind", string(outcome.Kind)),
				zap.String("reason", outcome.Reason),
			)
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// executeOne performs the single marketplace call for action under its own timeout.
func executeOne(ctx context.Context, action Action, client Marketplace, timeout time.Duration) Outcome {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var (
		id  string
		err error
	)

	switch action.Type {
	case ActionCreate:
		if action.Record == nil {
			err = fmt.Errorf("create action for %s has no record", action.Key)
			break
		}
		id, err = client.CreateListing(callCtx, *action.Record)
	case ActionUpdatePrice:
		err = client.UpdatePrice(callCtx, action.MarketplaceID, action.Price)
	case ActionUpdateStock:
		err = client.UpdateStock(callCtx, action.MarketplaceID, action.Stock)
	case ActionUpdateBoth:
		err = client.UpdateBoth(callCtx, action.MarketplaceID, action.Price, action.Stock)
	default:
		err = fmt.Errorf("unknown action type %q", action.Type)
	}

	// A create may fail after the listing exists; keep its id either way.
	outcome := Outcome{Action: action, MarketplaceID: id, Duration: time.Since(start)}
	if err != nil {
		outcome.Status = StatusFailure
		outcome.Kind = classify(err)
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Status = StatusSuccess
	return outcome
}

// SummarizeOutcomes counts successes and failures.
func SummarizeOutcomes(outcomes []Outcome) ExecutionSummary {
	var s ExecutionSummary
	for _, o := range outcomes {
		if o.Succeeded() {
			s.Succeeded++
			continue
		}
		s.Failed++
		switch o.Kind {
		case KindCreateConflict:
			s.Conflicts++
		case KindCancelled:
			s.Cancelled++
		}
	}
	return s
}
