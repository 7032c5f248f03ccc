package domain

import "fmt"

type ModeID string

const (
	ModePomodoro   ModeID = "pomodoro"
	ModeShortBreak ModeID = "short-break"
	ModeLongBreak  ModeID = "long-break"
	ModeDeepWork   ModeID = "deep-work"
)

// ModeDescriptor is the static configuration for one timer mode.
type ModeDescriptor struct {
	ID              ModeID
	DurationSeconds int
	Label           string
	CountMode       CountMode
}

// modeOrder is the display order of the built-in modes.
var modeOrder = []ModeID{ModePomodoro, ModeShortBreak, ModeLongBreak, ModeDeepWork}

var modes = map[ModeID]ModeDescriptor{
	ModePomodoro:   {ID: ModePomodoro, DurationSeconds: 25 * 60, Label: "Focus", CountMode: CountDown},
	ModeShortBreak: {ID: ModeShortBreak, DurationSeconds: 5 * 60, Label: "Short Break", CountMode: CountDown},
	ModeLongBreak:  {ID: ModeLongBreak, DurationSeconds: 15 * 60, Label: "Long Break", CountMode: CountDown},
	ModeDeepWork:   {ID: ModeDeepWork, DurationSeconds: 60 * 60, Label: "Deep Work", CountMode: CountDown},
}

// LookupMode returns the descriptor for id.
func LookupMode(id ModeID) (ModeDescriptor, error) {
	d, ok := modes[id]
	if !ok {
		return ModeDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}
	return d, nil
}

// MustMode is LookupMode for ids known at compile time.
func MustMode(id ModeID) ModeDescriptor {
	d, err := LookupMode(id)
	if err != nil {
		panic(err)
	}
	return d
}

// AllModes returns every built-in mode in display order.
func AllModes() []ModeDescriptor {
	out := make([]ModeDescriptor, 0, len(modeOrder))
	for _, id := range modeOrder {
		out = append(out, modes[id])
	}
	return out
}

// ParseModeID accepts both the canonical id and its underscore spelling
// ("short_break"), which is what the REST backend emits.
func ParseModeID(s string) (ModeID, error) {
	switch s {
	case "pomodoro", "focus":
		return ModePomodoro, nil
	case "short-break", "short_break":
		return ModeShortBreak, nil
	case "long-break", "long_break":
		return ModeLongBreak, nil
	case "deep-work", "deep_work":
		return ModeDeepWork, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
