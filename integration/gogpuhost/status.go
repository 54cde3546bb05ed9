// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gogpuhost

import (
	"fmt"

	"github.com/gogpu/enginehost/capability"
	"github.com/gogpu/enginehost/ingest"
	"github.com/gogpu/enginehost/lifecycle"
)

// Status is the one-line message shown at the right of the menu bar.
type Status struct {
	Text string

	// Alert marks failures the user should notice.
	Alert bool
}

// Status returns the current status line.
func (a *Adapter) Status() Status {
	if st := a.status.Load(); st != nil {
		return *st
	}
	return Status{}
}

func (a *Adapter) setStatus(st Status) {
	a.status.Store(&st)
	a.redraw()
}

// engineStatus turns lifecycle transitions into the status line. A failed
// load stays visible for the rest of the session.
func (a *Adapter) engineStatus(s lifecycle.State, err error) {
	switch s {
	case lifecycle.Loading:
		a.setStatus(Status{Text: "loading engine"})
	case lifecycle.Ready:
		a.setStatus(Status{})
	case lifecycle.Failed:
		a.setStatus(Status{Text: fmt.Sprintf("engine unavailable: %v", err), Alert: true})
	}
}

func (a *Adapter) fileStatus(st ingest.Status) {
	if a.host.Lifecycle().State() == lifecycle.Failed {
		return
	}
	switch st.State {
	case ingest.Reading:
		a.setStatus(Status{Text: "reading " + st.Name})
	case ingest.Delivered:
		if st.Outcome != capability.OK {
			a.setStatus(Status{Text: fmt.Sprintf("%s not loaded: engine %s", st.Name, st.Outcome), Alert: true})
			return
		}
		a.setStatus(Status{Text: fmt.Sprintf("loaded %s (%d bytes)", st.Name, st.Bytes)})
	case ingest.Cancelled:
		if st.Name == "" {
			a.setStatus(Status{Text: "no file selected"})
			return
		}
		a.setStatus(Status{Text: "open cancelled: " + st.Name})
	case ingest.Failed:
		a.setStatus(Status{Text: fmt.Sprintf("open failed: %s: %v", st.Name, st.Err), Alert: true})
	}
}
