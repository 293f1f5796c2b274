package idempotency_test

import (
	"sync"
	"testing"
	"time"

	"github.com/xraph/certpay/idempotency"
)

func TestClaimFirstWriterWins(t *testing.T) {
	l := idempotency.New()

	if !l.Claim("evt_1") {
		t.Fatal("first claim should win")
	}
	if l.Claim("evt_1") {
		t.Fatal("second claim should lose")
	}
	if !l.Claim("evt_2") {
		t.Fatal("distinct key should win")
	}
}

func TestClaimExpiry(t *testing.T) {
	l := idempotency.New(idempotency.WithTTL(5 * time.Millisecond))

	if !l.Claim("evt_1") {
		t.Fatal("first claim should win")
	}
	time.Sleep(10 * time.Millisecond)
	if !l.Claim("evt_1") {
		t.Fatal("expired key should be reclaimable")
	}
}

func TestSweep(t *testing.T) {
	l := idempotency.New()

	l.ClaimFor("expired_a", -time.Second)
	l.ClaimFor("expired_b", -time.Second)
	l.Claim("live")

	if got := l.Len(); got != 3 {
		t.Fatalf("Len before sweep: got %d, want 3", got)
	}
	if removed := l.Sweep(); removed != 2 {
		t.Errorf("Sweep removed %d, want 2", removed)
	}
	if got := l.Len(); got != 1 {
		t.Errorf("Len after sweep: got %d, want 1", got)
	}
}

func TestClaimConcurrent(t *testing.T) {
	l := idempotency.New()

	const goroutines = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, goroutines)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Claim("evt_contested") {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	if got := len(wins); got != 1 {
		t.Errorf("expected exactly one winner, got %d", got)
	}
}
