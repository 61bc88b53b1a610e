package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesUntilReset(t *testing.T) {
	ResetFrame()
	Track("a")()
	Track("a")()
	Track("b")()

	if got := Calls("a"); got != 2 {
		t.Fatalf("Calls(a) = %d, want 2", got)
	}
	if _, ok := Snapshot()["b"]; !ok {
		t.Fatalf("snapshot missing b")
	}

	ResetFrame()
	if len(Snapshot()) != 0 || Calls("a") != 0 {
		t.Fatalf("reset did not clear totals")
	}
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["slow"] = 4200 * time.Microsecond
	frameTotals["fast"] = 2 * time.Millisecond
	frameTotals["tiny"] = time.Microsecond
	mu.Unlock()
	defer ResetFrame()

	got := TopN(2)
	if got != "slow:4.2ms, fast:2ms" {
		t.Fatalf("TopN(2) = %q", got)
	}
	if !strings.Contains(TopN(10), "tiny:0ms") {
		t.Fatalf("TopN(10) = %q, want tiny entry", TopN(10))
	}
}
