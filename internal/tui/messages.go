package tui

import "github.com/MKhiriev/go-mutual-friends/internal/service"

// NavigateTo switches the active page of [RootModel]. A non-nil Payload is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload any
}

// modeChosenMsg finishes the mode menu.
type modeChosenMsg struct {
	mode string
}

type credentialsResultMsg struct {
	state service.LoginState
	err   error
}

type secondFactorResultMsg struct {
	state service.LoginState
	err   error
}

// friendsLoadedMsg finishes the login pages.
type friendsLoadedMsg struct {
	friends []string
	err     error
}

type progressMsg struct {
	stage string
	done  int64
	total int64
}

type phaseDoneMsg struct {
	err error
}

type copiedMsg struct {
	count int
	err   error
}

type clearStatusMsg struct{}
