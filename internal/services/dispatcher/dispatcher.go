package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/services/donor"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

var ErrNoDonors = errors.New("dispatcher: at least one donor is required")

// Dispatcher spreads requests over a fixed, ordered donor set in round
// robin order. It is safe for concurrent use.
type Dispatcher struct {
	donors  []donor.Donor
	counter atomic.Uint64
}

func New(donors ...donor.Donor) (*Dispatcher, error) {
	if len(donors) == 0 {
		return nil, ErrNoDonors
	}
	return &Dispatcher{
		donors: append([]donor.Donor(nil), donors...),
	}, nil
}

// Select returns the donor at counter mod len(donors) and advances the
// counter. It never looks at the request.
func (d *Dispatcher) Select() donor.Donor {
	n := d.counter.Add(1) - 1
	return d.donors[n%uint64(len(d.donors))]
}

// Route hands req to the next donor. The result is always well formed; a
// non-nil *utils.AppError means the donor panicked and the result is the
// generic agent failure that replaced its answer.
func (d *Dispatcher) Route(ctx context.Context, req models.Request) (models.Result, error) {
	selected := d.Select()

	utils.LogDebug(ctx, "Donor selected", utils.Fields{
		"donor":    selected.Name(),
		"video_id": req.VideoID,
		"format":   req.Format,
	})

	return invoke(ctx, selected, req)
}

func invoke(ctx context.Context, selected donor.Donor, req models.Request) (result models.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			appErr := utils.NewAgentError(selected.Name(), r)
			utils.LogError(ctx, "Critical agent error", appErr, utils.Fields{
				"donor":    selected.Name(),
				"video_id": req.VideoID,
			})
			result = models.Failure(appErr.Message, nil)
			err = appErr
		}
	}()

	return selected.Invoke(ctx, req), nil
}

// Donors lists donor names in dispatch order.
func (d *Dispatcher) Donors() []string {
	names := make([]string, len(d.donors))
	for i, dn := range d.donors {
		names[i] = dn.Name()
	}
	return names
}

// Dispatched reports how many requests have been routed so far.
func (d *Dispatcher) Dispatched() uint64 {
	return d.counter.Load()
}
