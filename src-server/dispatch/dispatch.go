package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/metric"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one dispatch.
type Outcome int

const (
	// the handler ran and returned nil
	OutcomeDone Outcome = iota
	// the handler failed or panicked, the user was told when possible
	OutcomeRecovered
	// nothing matched, or an autocomplete request had no autocomplete handler
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeRecovered:
		return "recovered"
	case OutcomeDropped:
		return "dropped"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

const MenuUnavailableMessage = "This selection menu is not currently available. Please try again later."

var errorMessages = map[interaction.Kind]string{
	interaction.KindCommand:    "There was an error while executing this command!",
	interaction.KindButton:     "There was an error while executing this button!",
	interaction.KindModal:      "There was an error while processing this modal!",
	interaction.KindSelectMenu: "There was an error while processing this selection! Please try again.",
}

// ErrorMessage is the ephemeral text sent when a handler of kind fails.
func ErrorMessage(kind interaction.Kind) string {
	if msg, ok := errorMessages[kind]; ok {
		return msg
	}
	return "There was an error while handling this interaction!"
}

// Dispatcher routes events of one kind to the records of one registry.
type Dispatcher struct {
	kind    interaction.Kind
	reg     *unit.Registry
	timeout time.Duration
}

// New binds kind to reg. A positive timeout puts a deadline on the context
// every handler receives.
func New(kind interaction.Kind, reg *unit.Registry, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		kind:    kind,
		reg:     reg,
		timeout: timeout,
	}
}

func (d *Dispatcher) Kind() interaction.Kind {
	return d.kind
}

// Dispatch resolves e and runs its handler. It never panics and never
// returns an error; failures end in the log and, for everything but
// autocomplete, in an ephemeral message to the user.
func (d *Dispatcher) Dispatch(ctx context.Context, e interaction.Event) Outcome {
	logger := slog.With(
		"dispatch_id", uuid.NewString(),
		"kind", d.kind.String(),
		"id", e.CustomID(),
		"user", e.User(),
	)

	rec, ok := d.reg.Lookup(e.CustomID())
	if !ok {
		d.unresolved(logger, e)
		metric.RecordDispatch(d.kind.String(), OutcomeDropped.String(), 0)
		return OutcomeDropped
	}

	invoke := rec.Invoke
	if d.kind == interaction.KindAutocomplete {
		if rec.Autocomplete == nil {
			logger.Debug("command has no autocomplete handler")
			metric.RecordDispatch(d.kind.String(), OutcomeDropped.String(), 0)
			return OutcomeDropped
		}
		invoke = rec.Autocomplete
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := safeInvoke(ctx, invoke, e)
	took := time.Since(start)

	if err == nil {
		logger.Log(ctx, utils.LevelSuccess, "handled interaction", "took", took)
		metric.RecordDispatch(d.kind.String(), OutcomeDone.String(), took)
		return OutcomeDone
	}

	logger.Error("handler failed", "handler", handlerName(rec), "took", took, "error", err)
	if d.kind != interaction.KindAutocomplete {
		if err := interaction.Notify(e, ErrorMessage(d.kind)); err != nil {
			logger.Error("can't send error message", "replied", e.Replied(), "error", err)
		}
	}
	metric.RecordDispatch(d.kind.String(), OutcomeRecovered.String(), took)
	return OutcomeRecovered
}

func (d *Dispatcher) unresolved(logger *slog.Logger, e interaction.Event) {
	logger.Warn("no handler matches interaction")
	if d.kind != interaction.KindSelectMenu || e.Replied() {
		return
	}
	if err := interaction.Reply(e, MenuUnavailableMessage, true); err != nil {
		logger.Error("can't send unavailable menu message", "error", err)
	}
}

// safeInvoke turns a handler panic into an error.
func safeInvoke(ctx context.Context, invoke interaction.InvokeFunc, e interaction.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("handler panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return invoke(ctx, e)
}

func handlerName(rec *unit.Record) string {
	if rec.Unit == nil {
		return ""
	}
	return rec.Unit.Handler
}
