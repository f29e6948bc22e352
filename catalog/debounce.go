package catalog

import "time"

// Ticket identifies one scheduled run of a Debouncer.
type Ticket uint64

// Debouncer is a cancellable scheduled task with at most one pending run.
// It does not own a timer: the host fires the ticket after Delay (the TUI
// uses tea.Tick) and asks Due whether it is still the latest.
type Debouncer struct {
	delay   time.Duration
	seq     Ticket
	pending bool
}

func NewDebouncer(delay time.Duration) Debouncer {
	return Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }

// Schedule supersedes any pending run and returns the new ticket.
func (d *Debouncer) Schedule() Ticket {
	d.seq++
	d.pending = true
	return d.seq
}

// Due reports whether t is the pending ticket, consuming it if so.
func (d *Debouncer) Due(t Ticket) bool {
	if !d.pending || t != d.seq {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops the pending run, if any.
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

func (d *Debouncer) Pending() bool { return d.pending }
