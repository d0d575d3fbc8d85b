package dispatcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/services/donor"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

func TestMain(m *testing.M) {
	utils.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeDonor struct {
	name   string
	calls  atomic.Int32
	result models.Result
	panics interface{}
}

func (f *fakeDonor) Name() string { return f.name }

func (f *fakeDonor) Invoke(ctx context.Context, req models.Request) models.Result {
	f.calls.Add(1)
	if f.panics != nil {
		panic(f.panics)
	}
	return f.result
}

func newFakes(names ...string) []donor.Donor {
	donors := make([]donor.Donor, len(names))
	for i, n := range names {
		donors[i] = &fakeDonor{name: n, result: models.Success("https://dl/" + n)}
	}
	return donors
}

func TestNewRequiresDonors(t *testing.T) {
	if _, err := New(); !errors.Is(err, ErrNoDonors) {
		t.Errorf("New() error = %v, want ErrNoDonors", err)
	}
}

func TestRoundRobinOrder(t *testing.T) {
	d, err := New(newFakes("genyoutube", "y2meta", "savenow")...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []string{"genyoutube", "y2meta", "savenow", "genyoutube", "y2meta", "savenow", "genyoutube"}
	for i, name := range want {
		result, err := d.Route(testContext(t), models.NewRequest("abc", "mp3"))
		if err != nil {
			t.Fatalf("Route() error = %v", err)
		}
		if result.DownloadURL != "https://dl/"+name {
			t.Errorf("request %d routed to %q, want %q", i, result.DownloadURL, name)
		}
	}
	if d.Dispatched() != uint64(len(want)) {
		t.Errorf("Dispatched() = %d, want %d", d.Dispatched(), len(want))
	}
}

func TestSelectIgnoresRequestAndOutcome(t *testing.T) {
	donors := []donor.Donor{
		&fakeDonor{name: "a", result: models.Failure("Donor Error (a): nope", nil)},
		&fakeDonor{name: "b", result: models.Success("https://dl/b")},
	}
	d, _ := New(donors...)

	formats := []string{"mp3", "720", "1080", "mp3"}
	want := []string{"a", "b", "a", "b"}
	for i, f := range formats {
		before := d.Dispatched()
		result, _ := d.Route(testContext(t), models.NewRequest("vid", f))
		if d.Dispatched() != before+1 {
			t.Errorf("counter advanced by %d, want 1", d.Dispatched()-before)
		}
		gotA := !result.OK
		if (want[i] == "a") != gotA {
			t.Errorf("request %d: result %v, want donor %s", i, result, want[i])
		}
	}
}

func TestRoutePanicBoundary(t *testing.T) {
	broken := &fakeDonor{name: "savenow", panics: "nil map write"}
	d, _ := New(broken)

	result, err := d.Route(testContext(t), models.NewRequest("abc", "mp3"))
	if err == nil {
		t.Fatal("Route() expected agent error")
	}
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Route() error type = %T", err)
	}
	if appErr.Code != utils.ErrorCodeAgentError || appErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("AppError = %+v", appErr)
	}
	if result.OK {
		t.Error("expected failure result")
	}
	if result.Message != "Agent Error (savenow): nil map write" {
		t.Errorf("Message = %q", result.Message)
	}

	// The counter still advances after a contract violation.
	if d.Dispatched() != 1 {
		t.Errorf("Dispatched() = %d, want 1", d.Dispatched())
	}
}

func TestConcurrentRoutingIsEven(t *testing.T) {
	fakes := []*fakeDonor{{name: "a"}, {name: "b"}, {name: "c"}}
	donors := make([]donor.Donor, len(fakes))
	for i, f := range fakes {
		donors[i] = f
	}
	d, _ := New(donors...)

	const perDonor = 200
	var wg sync.WaitGroup
	for i := 0; i < perDonor*len(fakes); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Route(context.Background(), models.NewRequest("abc", "mp3"))
		}()
	}
	wg.Wait()

	for _, f := range fakes {
		if n := f.calls.Load(); n != perDonor {
			t.Errorf("donor %s called %d times, want %d", f.name, n, perDonor)
		}
	}
}

func TestDonors(t *testing.T) {
	d, _ := New(newFakes("genyoutube", "y2meta", "savenow")...)
	names := d.Donors()
	if len(names) != 3 || names[0] != "genyoutube" || names[2] != "savenow" {
		t.Errorf("Donors() = %v", names)
	}
}
