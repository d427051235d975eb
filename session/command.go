package session

import (
	"context"

	"github.com/iw2rmb/codearea/textarea"
)

// Command is a session-level action. Area commands are reached through
// Action.
type Command uint8

const (
	CmdNone Command = iota
	ExpandSelection
	ContractSelection
	ShowHelp
	Complete
	Reparse

	commandCount
)

var commandNames = [commandCount]string{
	CmdNone:           "none",
	ExpandSelection:   "expand-selection",
	ContractSelection: "contract-selection",
	ShowHelp:          "show-help",
	Complete:          "complete",
	Reparse:           "reparse",
}

func (c Command) String() string {
	if c >= commandCount {
		return "unknown"
	}
	return commandNames[c]
}

var handlers = [commandCount]func(s *Session) bool{
	ExpandSelection:   func(s *Session) bool { return s.selectionStep("expand", s.selector.Expand()) },
	ContractSelection: func(s *Session) bool { return s.selectionStep("contract", s.selector.Contract()) },
	ShowHelp:          (*Session).ShowHelp,
	Complete:          (*Session).Complete,
	Reparse:           func(s *Session) bool { return s.Reparse(context.Background()) == nil },
}

func (s *Session) selectionStep(op string, err error) bool {
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Msg("selection step failed")
		return false
	}
	return true
}

// Action is a session command or an area command. The session command
// wins when both are set.
type Action struct {
	Session Command
	Area    textarea.Command
}

func (a Action) String() string {
	if a.Session != CmdNone {
		return a.Session.String()
	}
	return a.Area.String()
}

// ParseAction resolves a command name, trying session commands first.
func ParseAction(name string) (Action, bool) {
	for c := CmdNone + 1; c < commandCount; c++ {
		if commandNames[c] == name {
			return Action{Session: c}, true
		}
	}
	if c, ok := textarea.ParseCommand(name); ok {
		return Action{Area: c}, true
	}
	return Action{}, false
}

// ActionNames lists every resolvable command name.
func ActionNames() []string {
	var names []string
	for c := CmdNone + 1; c < commandCount; c++ {
		names = append(names, commandNames[c])
	}
	for _, c := range textarea.Commands() {
		names = append(names, c.String())
	}
	return names
}

// Do runs act and reports whether it had an effect. Pending completions
// are dropped by any action other than Complete.
func (s *Session) Do(act Action) bool {
	if act.Session != Complete {
		s.candidates = nil
	}
	if act.Session != CmdNone {
		if act.Session >= commandCount {
			return false
		}
		return handlers[act.Session](s)
	}
	return s.area.Execute(act.Area)
}
