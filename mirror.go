package minitap

import (
	"context"

	"github.com/aretw0/minitap/pkg/hub"
	"github.com/aretw0/minitap/pkg/record"
)

// Mirror subscribes rec to each event in scope. Every delivery becomes a
// record.Record. The returned cancel removes exactly these subscriptions.
func Mirror(t *Tapper, rec record.Recorder, scope string, events ...string) (cancel func()) {
	ids := make([]hub.ID, len(events))
	for i, event := range events {
		channel := Channel(scope, event)
		ids[i] = t.Tap(scope, event, func(args ...any) error {
			return rec.Record(context.Background(), record.New(channel, scope, event, args))
		})
	}
	return func() {
		for i, event := range events {
			t.Off(scope, event, ids[i])
		}
	}
}
