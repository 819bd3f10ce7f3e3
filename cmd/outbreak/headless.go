package main

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"

	"github.com/mrchimp/zombies-vs-medics/component"
	"github.com/mrchimp/zombies-vs-medics/engine"
)

// tally accumulates transitions across ticks, observed from the clock goroutine
type tally struct {
	mu          sync.Mutex
	transitions map[component.Change]int
}

func newTally() *tally {
	return &tally{transitions: make(map[component.Change]int)}
}

func (t *tally) Observe(r engine.TickReport) {
	t.mu.Lock()
	for ch, n := range r.Transitions {
		t.transitions[ch] += n
	}
	t.mu.Unlock()
}

func (t *tally) Reset() {
	t.mu.Lock()
	clear(t.transitions)
	t.mu.Unlock()
}

func (t *tally) Snapshot() map[component.Change]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[component.Change]int, len(t.transitions))
	for ch, n := range t.transitions {
		out[ch] = n
	}
	return out
}

type runSummary struct {
	RunID       string
	Ticks       uint64
	Initial     component.Counts
	Final       component.Counts
	Transitions map[component.Change]int
	Wall        time.Duration
}

// runBatch steps sim directly, without a clock, as fast as it will go
func runBatch(sim *engine.Simulation, ticks int) runSummary {
	t := newTally()
	initial := sim.Counts()
	start := time.Now()

	for i := 0; i < ticks; i++ {
		t.Observe(sim.Tick())
	}

	return runSummary{
		RunID:       sim.RunID().String(),
		Ticks:       sim.CurrentTick(),
		Initial:     initial,
		Final:       sim.Counts(),
		Transitions: t.Snapshot(),
		Wall:        time.Since(start),
	}
}

func kindColor(au aurora.Aurora, k component.Kind, arg any) aurora.Value {
	switch k {
	case component.KindZombie:
		return au.Red(arg)
	case component.KindMedic:
		return au.Green(arg)
	case component.KindCorpse:
		return au.Brown(arg)
	}
	return au.White(arg)
}

// report prints the summary table of a finished run
func report(w io.Writer, au aurora.Aurora, s runSummary) {
	fmt.Fprintf(w, "%s  run %s  %s ticks  %s wall\n\n",
		au.Bold("Done."),
		au.Cyan(shortRunID(s.RunID)),
		au.Bold(humanize.Comma(int64(s.Ticks))),
		s.Wall.Round(time.Millisecond),
	)

	fmt.Fprintln(w, au.Bold(fmt.Sprintf("%-10s %10s %10s %7s", "Kind", "Start", "End", "Share")))
	for _, k := range component.Kinds {
		fmt.Fprintf(w, "%s %10s %10s %6.1f%%\n",
			kindColor(au, k, fmt.Sprintf("%-10s", k)),
			humanize.Comma(int64(s.Initial[k])),
			humanize.Comma(int64(s.Final[k])),
			s.Final.Share(k)*100,
		)
	}
	fmt.Fprintf(w, "%-10s %10s %10s\n\n", "total",
		humanize.Comma(int64(s.Initial.Total())),
		humanize.Comma(int64(s.Final.Total())),
	)

	if len(s.Transitions) == 0 {
		fmt.Fprintln(w, "No transitions.")
		return
	}

	changes := make([]component.Change, 0, len(s.Transitions))
	for ch := range s.Transitions {
		changes = append(changes, ch)
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].From != changes[j].From {
			return changes[i].From < changes[j].From
		}
		return changes[i].To < changes[j].To
	})

	fmt.Fprintln(w, au.Bold(fmt.Sprintf("%-24s %10s", "Transition", "Count")))
	for _, ch := range changes {
		label := fmt.Sprintf("%s ⟶ %s", ch.From, ch.To)
		fmt.Fprintf(w, "%s%s %10s\n",
			kindColor(au, ch.To, label),
			pad(label, 24),
			humanize.Comma(int64(s.Transitions[ch])),
		)
	}
}

// pad returns the spaces needed to fill label to width runes
func pad(label string, width int) string {
	n := width - len([]rune(label))
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
