package tui

import "github.com/runoshun/gantt/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgRecordsLoaded is sent when a fetch completes.
// Mode is the mode the fetch was started for.
type MsgRecordsLoaded struct {
	Mode    domain.Mode
	Records []*domain.Record
}

func (MsgRecordsLoaded) sealed() {}

// MsgFetchFailed is sent when a fetch fails.
type MsgFetchFailed struct {
	Err  error
	Mode domain.Mode
}

func (MsgFetchFailed) sealed() {}

// MsgDatesUpdated is sent when an edit was accepted by the data source.
type MsgDatesUpdated struct {
	ID        string
	StartDate string
	EndDate   string
}

func (MsgDatesUpdated) sealed() {}

// MsgUpdateFailed is sent when an edit was rejected.
// The form stays open so the user can retry.
type MsgUpdateFailed struct {
	Err error
}

func (MsgUpdateFailed) sealed() {}

// MsgRefreshTick drives the periodic refetch.
type MsgRefreshTick struct{}

func (MsgRefreshTick) sealed() {}

// MsgRefetch asks for a refetch of the current mode, e.g. after an edit.
type MsgRefetch struct{}

func (MsgRefetch) sealed() {}

// MsgClearStatus clears the status line.
type MsgClearStatus struct{}

func (MsgClearStatus) sealed() {}

// msgCooldown carries an expired scroll cooldown into the event loop.
type msgCooldown struct {
	release func()
}

func (msgCooldown) sealed() {}
