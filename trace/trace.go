// Package trace implements knockback.Tracer for logging and error reporting.
package trace

import (
	"bytes"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/knockback/game"
	"github.com/oomph-ac/knockback/internal"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/sirupsen/logrus"
)

// Data returns the values of a strike worth inspecting, in a fixed order.
func Data(req knockback.Request, res knockback.Result) *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("strike", req.Strike)
	data.Set("state", res.State)
	data.Set("mode", res.Direction.Mode)
	if res.Direction.HasOrigin {
		data.Set("dist", game.Round64(res.Direction.Distance, 3))
	}
	data.Set("dir", game.RoundVec64(res.Direction.Vec, 3))
	if res.Direction.Degenerate {
		data.Set("fallback", res.Profile.Fallback())
	}
	data.Set("sprint", res.SprintHit)
	data.Set("h", game.Round64(res.Strength.Horizontal, 4))
	data.Set("v", game.Round64(res.Strength.Vertical, 4))
	data.Set("apply", res.Profile.ApplyMode())
	data.Set("prev", game.RoundVec64(res.Previous, 3))
	data.Set("vel", game.RoundVec64(res.Velocity, 3))
	return data
}

// Format converts the data of a strike to a string.
func Format(data *orderedmap.OrderedMap[string, any]) string {
	b := internal.BufferPool.Get().(*bytes.Buffer)
	b.Reset()
	defer internal.BufferPool.Put(b)

	b.WriteByte('[')
	for i, key := range data.Keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		v, _ := data.Get(key)
		fmt.Fprintf(b, "%s=%v", key, v)
	}
	b.WriteByte(']')
	return b.String()
}

// Logger logs every strike to a logrus logger.
type Logger struct {
	Log *logrus.Logger
	// Level is the level strikes are logged at.
	Level logrus.Level
}

// TraceKnockback ...
func (l Logger) TraceKnockback(req knockback.Request, res knockback.Result) {
	if !l.Log.IsLevelEnabled(l.Level) {
		return
	}
	l.Log.Logf(l.Level, "knockback %s", Format(Data(req, res)))
}

// Sentry records every strike as a breadcrumb on a sentry hub, so that reported errors carry the strikes
// that preceded them. Strikes with degenerate geometry are recorded as warnings.
type Sentry struct {
	// Hub is the hub breadcrumbs are added to. If nil, the current hub is used.
	Hub *sentry.Hub
}

// TraceKnockback ...
func (s Sentry) TraceKnockback(req knockback.Request, res knockback.Result) {
	hub := s.Hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	data := Data(req, res)
	crumb := &sentry.Breadcrumb{
		Category: "knockback",
		Message:  Format(data),
		Level:    sentry.LevelDebug,
		Data:     make(map[string]interface{}, data.Len()),
	}
	for _, key := range data.Keys() {
		v, _ := data.Get(key)
		crumb.Data[key] = fmt.Sprint(v)
	}
	if res.Direction.Degenerate {
		crumb.Level = sentry.LevelWarning
	}
	hub.AddBreadcrumb(crumb, nil)
}

// Multi passes every strike to all of its tracers in order.
type Multi []knockback.Tracer

// TraceKnockback ...
func (m Multi) TraceKnockback(req knockback.Request, res knockback.Result) {
	for _, t := range m {
		t.TraceKnockback(req, res)
	}
}
