// Package strategy implements basic-strategy decision tables for blackjack,
// parameterized by dealer soft-17 and double-after-split rules, plus the
// Hi-Lo deviation (index play) overrides keyed by true count.
package strategy

import (
	"fmt"
	"strings"
)

// Action is a canonical player action. It is a closed enum everywhere
// inside the engine; string parsing happens only at ParseAction.
type Action int

const (
	ActionHit Action = iota
	ActionStand
	ActionDouble
	ActionSplit
	ActionSurrender
)

var actionNames = map[Action]string{
	ActionHit:       "HIT",
	ActionStand:     "STAND",
	ActionDouble:    "DOUBLE",
	ActionSplit:     "SPLIT",
	ActionSurrender: "SURRENDER",
}

// String returns the canonical name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACTION(%d)", int(a))
}

// ParseAction converts external input to an Action. This is the single
// boundary where case-insensitive matching is allowed.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIT", "H":
		return ActionHit, nil
	case "STAND", "S":
		return ActionStand, nil
	case "DOUBLE", "D":
		return ActionDouble, nil
	case "SPLIT", "P":
		return ActionSplit, nil
	case "SURRENDER", "R":
		return ActionSurrender, nil
	}
	return ActionHit, fmt.Errorf("unknown action %q", s)
}
