package dialogue

import (
	"errors"
	"strings"

	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

// Action is a side effect that needs more than a reply: the network or
// the vacancy store.
type Action int

const (
	ActionNone Action = iota
	ActionRunSearch
	ActionSave
	ActionExportMenu
	ActionExportCSV
	ActionExportChat
	ActionClear
)

// Outcome is the result of one turn.
type Outcome struct {
	State   State
	Replies []Reply
	Action  Action
	// Reset asks the caller to forget the stored session.
	Reset bool
}

// RunSearch reports whether the turn ends the dialogue with a search.
func (o Outcome) RunSearch() bool { return o.Action == ActionRunSearch }

// Transition applies ev to sess and returns what the caller must do. It
// performs no I/O; only sess is mutated.
func Transition(sess *Session, ev Event) Outcome {
	switch ev.Kind {
	case EventCommand:
		return onCommand(sess, ev.Value)
	case EventChoice:
		if out, ok := onGlobalChoice(sess, ev.Value); ok {
			return out
		}
	}

	switch sess.State {
	case StateSearch:
		return onQuery(sess, ev)
	case StateRegion:
		return onRegion(sess, ev)
	case StateCount:
		return onCount(sess, ev)
	case StateFilters:
		return onFilters(sess, ev)
	case StateSalary:
		return onSalary(sess, ev)
	case StateExperience:
		return onOption(sess, ev, prefixExperience, msgAskExperience, search.ExperienceOptions, &sess.Filters.Experience)
	case StateEmployment:
		return onOption(sess, ev, prefixEmployment, msgAskEmployment, search.EmploymentOptions, &sess.Filters.Employment)
	case StateSchedule:
		return onOption(sess, ev, prefixSchedule, msgAskSchedule, search.ScheduleOptions, &sess.Filters.Schedule)
	}
	return onIdle(sess, ev)
}

func stay(sess *Session, replies ...Reply) Outcome {
	return Outcome{State: sess.State, Replies: replies}
}

func move(sess *Session, to State, replies ...Reply) Outcome {
	sess.State = to
	return Outcome{State: to, Replies: replies}
}

func onCommand(sess *Session, name string) Outcome {
	switch name {
	case CmdSearch:
		sess.beginSearch()
		return move(sess, StateSearch, text(msgAskQuery))
	case CmdSave:
		return Outcome{State: sess.State, Action: ActionSave}
	case CmdExport:
		return Outcome{State: sess.State, Action: ActionExportMenu}
	case CmdClear:
		return Outcome{State: sess.State, Action: ActionClear}
	case CmdStart:
		sess.beginSearch()
		out := move(sess, StateIdle, greeting())
		out.Reset = true
		return out
	}
	// unknown commands leave the dialogue and its results untouched
	return stay(sess, text(msgIdleHint))
}

// onGlobalChoice handles buttons that work regardless of the dialogue
// position.
func onGlobalChoice(sess *Session, data string) (Outcome, bool) {
	switch data {
	case ChoiceExportCSV:
		return Outcome{State: sess.State, Action: ActionExportCSV}, true
	case ChoiceExportChat:
		return Outcome{State: sess.State, Action: ActionExportChat}, true
	}
	return Outcome{}, false
}

func onIdle(sess *Session, ev Event) Outcome {
	if ev.Kind == EventChoice {
		// button from a finished dialogue
		return stay(sess, Reply{Text: msgStaleButton, Alert: true})
	}
	return stay(sess, text(msgIdleHint))
}

func onQuery(sess *Session, ev Event) Outcome {
	if ev.Kind != EventText || strings.TrimSpace(ev.Value) == "" {
		return stay(sess, text(msgAskQuery))
	}
	sess.Query = strings.TrimSpace(ev.Value)
	return move(sess, StateRegion, text(msgAskRegion))
}

func onRegion(sess *Session, ev Event) Outcome {
	if ev.Kind != EventText || strings.TrimSpace(ev.Value) == "" {
		return stay(sess, text(msgAskRegion))
	}
	sess.Region = strings.TrimSpace(ev.Value)
	return move(sess, StateCount, text(msgAskCount))
}

func onCount(sess *Session, ev Event) Outcome {
	if ev.Kind != EventText {
		return stay(sess, text(msgAskCount))
	}
	n, err := ParseCount(ev.Value)
	if err != nil {
		return stay(sess, inputReply(err))
	}
	sess.Count = n
	return move(sess, StateFilters, filterMenu())
}

func onFilters(sess *Session, ev Event) Outcome {
	if ev.Kind != EventChoice {
		return stay(sess, filterMenu())
	}
	switch ev.Value {
	case ChoiceSalary:
		return move(sess, StateSalary, Reply{Text: msgAskSalary, Edit: true})
	case ChoiceExperience:
		return move(sess, StateExperience, optionMenu(msgAskExperience, prefixExperience, search.ExperienceOptions))
	case ChoiceEmployment:
		return move(sess, StateEmployment, optionMenu(msgAskEmployment, prefixEmployment, search.EmploymentOptions))
	case ChoiceSchedule:
		return move(sess, StateSchedule, optionMenu(msgAskSchedule, prefixSchedule, search.ScheduleOptions))
	case ChoiceReset:
		sess.Filters.Reset()
		return move(sess, StateFilters, text(msgFiltersReset), filterMenu())
	case ChoiceRunSearch:
		out := move(sess, StateIdle)
		out.Action = ActionRunSearch
		return out
	}
	return stay(sess, filterMenu())
}

func onSalary(sess *Session, ev Event) Outcome {
	if ev.Kind != EventText {
		return stay(sess, text(msgAskSalary))
	}
	r, err := ParseSalary(ev.Value)
	if err != nil {
		return stay(sess, inputReply(err))
	}
	sess.Filters.Salary = search.Some(r)
	return move(sess, StateFilters, filterMenu())
}

func onOption(sess *Session, ev Event, prefix, prompt string, options []search.Option, dst *search.Optional[string]) Outcome {
	menu := optionMenu(prompt, prefix, options)
	if ev.Kind != EventChoice || !strings.HasPrefix(ev.Value, prefix) {
		menu.Edit = false
		return stay(sess, menu)
	}
	o, ok := search.OptionByKey(options, strings.TrimPrefix(ev.Value, prefix))
	if !ok {
		return stay(sess, menu)
	}
	*dst = search.Some(o.Label)
	back := filterMenu()
	back.Edit = true
	return move(sess, StateFilters, back)
}

func inputReply(err error) Reply {
	var ie *InputError
	if errors.As(err, &ie) {
		return text(ie.Msg)
	}
	return text(msgInternalError)
}
