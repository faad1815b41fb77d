package group_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/archnae/ambient"
	"github.com/archnae/ambient/group"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGo_InheritsAmbientState(t *testing.T) {
	tenant := ambient.NewKind[string]("tenant")
	ctx, sc := tenant.Enter(context.Background(), "acme")
	defer sc.Close()

	g := group.New(ctx)
	for range 4 {
		g.Go(func(ctx context.Context) error {
			v, err := tenant.Current(ctx)
			if err != nil {
				return err
			}
			if v != "acme" {
				t.Errorf("child Current = %q, want acme", v)
			}

			// Child pushes stay private to the child.
			ctx, csc := tenant.Enter(ctx, "child")
			defer csc.Close()
			if got, _ := tenant.Current(ctx); got != "child" {
				t.Errorf("child nested Current = %q, want child", got)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait = %v", err)
	}

	if got := tenant.Depth(ctx); got != 1 {
		t.Fatalf("parent Depth = %d after children ran, want 1", got)
	}
	if got, _ := tenant.Current(ctx); got != "acme" {
		t.Fatalf("parent Current = %q after children ran, want acme", got)
	}
}

func TestGo_SnapshotAtSpawnTime(t *testing.T) {
	kind := ambient.NewKind[string]("phase")
	ctx, a := kind.Enter(context.Background(), "one")
	defer a.Close()

	g := group.New(ctx)
	release := make(chan struct{})
	got := make(chan string, 2)

	spawn := func() {
		g.Go(func(ctx context.Context) error {
			<-release
			v, _ := kind.Current(ctx)
			got <- v
			return nil
		})
	}

	spawn()
	ctx, b := kind.Enter(ctx, "two")
	spawn()
	close(release)
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	seen := map[string]bool{<-got: true, <-got: true}
	if !seen["one"] || !seen["two"] {
		t.Fatalf("snapshots = %v, want one task seeing %q and one seeing %q", seen, "one", "two")
	}
}

func TestWithLimit_BoundsConcurrency(t *testing.T) {
	g := group.New(context.Background(), group.WithLimit(2))

	var active, peak atomic.Int32
	for range 16 {
		g.Go(func(_ context.Context) error {
			n := active.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait = %v", err)
	}
	if p := peak.Load(); p > 2 {
		t.Fatalf("peak concurrency = %d, want <= 2", p)
	}
}

func TestWithRate_SpacesTaskStarts(t *testing.T) {
	g := group.New(context.Background(), group.WithRate(100, 1))

	start := time.Now()
	for range 4 {
		g.Go(func(_ context.Context) error { return nil })
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Wait = %v", err)
	}

	// Burst 1 at 100/s: three of the four starts wait ~10ms each.
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("elapsed = %v, want rate limiting to spread starts over >= 25ms", elapsed)
	}
}

func TestFirstError_CancelsGroup(t *testing.T) {
	boom := errors.New("boom")
	g := group.New(context.Background())

	failed := make(chan struct{})
	g.Go(func(_ context.Context) error {
		close(failed)
		return boom
	})
	g.Go(func(ctx context.Context) error {
		<-failed
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(5 * time.Second):
			return errors.New("sibling was not cancelled")
		}
	})

	if err := g.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait = %v, want boom", err)
	}
}
