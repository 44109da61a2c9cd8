// Browser tests against a running tracker page, e.g.
//
//	hydration web --ephemeral &
//	E2E_BASE_URL=http://localhost:8080 go test ./...
package e2e

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

// browser wraps a chromedp context with test helpers.
type browser struct {
	ctx     context.Context
	cancel  context.CancelFunc
	t       *testing.T
	baseURL string
}

func newBrowser(t *testing.T, timeout time.Duration) *browser {
	t.Helper()
	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	ctx, timeCancel := context.WithTimeout(ctx, timeout)

	b := &browser{ctx: ctx, t: t, baseURL: strings.TrimRight(baseURL, "/")}
	b.cancel = func() { timeCancel(); ctxCancel(); allocCancel() }
	return b
}

func (b *browser) close() { b.cancel() }

func (b *browser) run(actions ...chromedp.Action) {
	b.t.Helper()
	if err := chromedp.Run(b.ctx, actions...); err != nil {
		b.t.Fatalf("chromedp: %v", err)
	}
}

func (b *browser) eval(js string) string {
	b.t.Helper()
	var r interface{}
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(js, &r)); err != nil {
		b.t.Fatalf("eval: %v", err)
	}
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%v", r)
}

func (b *browser) open() {
	b.t.Helper()
	b.run(chromedp.Navigate(b.baseURL), chromedp.WaitVisible(`#progress-text`, chromedp.ByQuery))
}

// fresh opens the page and resets the day so tests don't see each other's drinks.
func (b *browser) fresh() {
	b.t.Helper()
	b.open()
	b.click(`#reset`)
}

func (b *browser) click(sel string) {
	b.t.Helper()
	b.run(chromedp.Click(sel, chromedp.ByQuery), chromedp.Sleep(800*time.Millisecond))
}

func (b *browser) text(sel string) string {
	b.t.Helper()
	var s string
	b.run(chromedp.Text(sel, &s, chromedp.ByQuery))
	return strings.TrimSpace(s)
}

func (b *browser) bodyText() string {
	return b.eval(`document.body.innerText`)
}

// --- Tests ---

func TestPageLoads(t *testing.T) {
	b := newBrowser(t, 30*time.Second)
	defer b.close()
	b.fresh()

	if got := b.text(`#progress-text`); !strings.HasPrefix(got, "0ml / ") {
		t.Fatalf("progress after reset = %q", got)
	}
	if !strings.Contains(b.bodyText(), "No water recorded yet today.") {
		t.Fatal("empty history message not shown")
	}
}

func TestQuickAdd(t *testing.T) {
	b := newBrowser(t, 30*time.Second)
	defer b.close()
	b.fresh()

	b.click(`button[data-preset="glass"]`)
	b.click(`button[data-preset="bottle"]`)

	if got := b.text(`#progress-text`); !strings.HasPrefix(got, "750ml / ") {
		t.Fatalf("progress after glass+bottle = %q", got)
	}
	if n := b.eval(`document.querySelectorAll('#history li.entry').length`); n != "2" {
		t.Fatalf("history rows = %s, want 2", n)
	}
	first := b.eval(`document.querySelector('#history li.entry').innerText`)
	if !strings.Contains(first, "+500ml") {
		t.Fatalf("newest entry = %q, want the bottle first", first)
	}
}

func TestCustomAmountRejected(t *testing.T) {
	b := newBrowser(t, 30*time.Second)
	defer b.close()
	b.fresh()

	b.run(chromedp.SetValue(`#custom-amount`, "2500", chromedp.ByQuery))
	b.click(`#custom-form button[type="submit"]`)

	if got := b.text(`#toast`); !strings.Contains(got, "Invalid Amount") {
		t.Fatalf("toast = %q, want Invalid Amount", got)
	}
	if got := b.text(`#progress-text`); !strings.HasPrefix(got, "0ml / ") {
		t.Fatalf("rejected amount changed progress: %q", got)
	}
}

func TestGoalAndAchieved(t *testing.T) {
	b := newBrowser(t, 30*time.Second)
	defer b.close()
	b.fresh()

	b.run(chromedp.SetValue(`#daily-goal`, "1000", chromedp.ByQuery))
	b.eval(`document.getElementById('daily-goal').dispatchEvent(new Event('change'))`)
	b.run(chromedp.Sleep(800 * time.Millisecond))
	b.click(`button[data-preset="liter"]`)

	if got := b.text(`#progress-text`); got != "1000ml / 1000ml" {
		t.Fatalf("progress = %q", got)
	}
	if got := b.text(`#goal-achieved`); got != "Goal Achieved!" {
		t.Fatalf("achieved banner = %q", got)
	}

	// Restore the default goal for other runs.
	b.run(chromedp.SetValue(`#daily-goal`, "2000", chromedp.ByQuery))
	b.eval(`document.getElementById('daily-goal').dispatchEvent(new Event('change'))`)
	b.run(chromedp.Sleep(800 * time.Millisecond))
}
