package sink

import (
	"testing"

	"github.com/arnegard/fq/internal/state"
)

func TestSubmitAppendsInOrder(t *testing.T) {
	st := state.New()
	sk := New(st, 0, nil)

	sk.Submit(Result{Path: "a"})
	sk.Submit(Result{Path: "b"})
	sk.Submit(Result{Path: "c"})

	results := sk.Results()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Path != want {
			t.Errorf("result[%d] = %q, want %q", i, results[i].Path, want)
		}
	}
}

func TestSubmitStopsAtMaxResults(t *testing.T) {
	st := state.New()
	sk := New(st, 2, nil)

	if sk.Submit(Result{Path: "a"}) != Continue {
		t.Fatal("expected first submit to continue")
	}
	if sk.Submit(Result{Path: "b"}) != Stop {
		t.Fatal("expected second submit to hit the cap and stop")
	}
	if !st.ShouldStop() {
		t.Fatal("expected shared state to be marked stopped")
	}
	if sk.Submit(Result{Path: "c"}) != Stop {
		t.Fatal("expected submits after should_stop to be refused")
	}
	if sk.Count() != 2 {
		t.Fatalf("expected exactly 2 accumulated results, got %d", sk.Count())
	}
}

func TestSubmitKeepsResultEvenWhenCallbackCancels(t *testing.T) {
	st := state.New()
	var seen []Result
	sk := New(st, 0, func(r Result) bool {
		seen = append(seen, r)
		return false
	})

	outcome := sk.Submit(Result{Path: "a"})
	if outcome != Stop {
		t.Fatal("expected callback returning false to stop")
	}
	if sk.Count() != 1 {
		t.Fatal("the triggering result must still be appended")
	}
	if len(seen) != 1 || seen[0].Path != "a" {
		t.Fatal("callback should have observed the result")
	}
}

func TestSubmitShortCircuitsOnceStopped(t *testing.T) {
	st := state.New()
	sk := New(st, 0, nil)
	st.Stop()

	if sk.Submit(Result{Path: "a"}) != Stop {
		t.Fatal("expected submit to refuse once should_stop is set")
	}
	if sk.Count() != 0 {
		t.Fatal("no result should be appended once stopped")
	}
}
