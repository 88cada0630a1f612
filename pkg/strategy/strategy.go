package strategy

// Variant selects which rule-variant tables a lookup uses. It is fixed
// once per round configuration.
type Variant struct {
	DealerHitsSoft17 bool
	DoubleAfterSplit bool
}

// Situation captures everything a lookup needs about the active hand.
// Eligibility flags describe what the game state currently allows, so the
// table answer can degrade (DOUBLE to HIT, SPLIT to the non-split total
// lookup) when an action is unavailable.
type Situation struct {
	PlayerTotal   int
	IsSoft        bool
	IsPair        bool
	PairCardValue int // value of each paired card, ace=11; zero when not a pair
	DealerUpcard  int // 2..11, ace=11
	CanDouble     bool
	CanSplit      bool
	CanSurrender  bool
	TrueCount     float64
}

// Recommendation is the strategy answer for a situation: the action to
// take, whether it departs from plain basic strategy, and why.
type Recommendation struct {
	Action      Action
	IsDeviation bool
	Reason      string
}

// Recommend returns the strategy-table action for a situation. Basic
// strategy is resolved first in precedence order (surrender, pair, soft,
// hard), then the deviation table may override it when the true count
// crosses an index threshold.
func Recommend(sit Situation, v Variant) Recommendation {
	basic := basicAction(sit, v)

	if d, ok := findDeviation(sit.PlayerTotal, sit.IsSoft, sit.IsPair, sit.DealerUpcard, sit.TrueCount); ok {
		action := degrade(d.Action, sit, v)
		if action != basic.Action {
			return Recommendation{Action: action, IsDeviation: true, Reason: d.Reason}
		}
	}

	return basic
}

// basicAction resolves the plain basic-strategy action, eligibility
// degradation included.
func basicAction(sit Situation, v Variant) Recommendation {
	if sit.CanSurrender && shouldSurrender(sit, v) {
		return Recommendation{Action: ActionSurrender, Reason: "basic strategy: surrender"}
	}

	if sit.IsPair && sit.CanSplit {
		pairs := pairsNoDAS
		if v.DoubleAfterSplit {
			pairs = pairsDAS
		}
		if action, ok := pairs.cell(sit.PairCardValue, sit.DealerUpcard); ok && action == ActionSplit {
			return Recommendation{Action: ActionSplit, Reason: "basic strategy: split the pair"}
		}
		// Not a split cell: fall through to the total lookup below.
	}

	var action Action
	if sit.IsSoft {
		soft := softTotalsS17
		if v.DealerHitsSoft17 {
			soft = softTotalsH17
		}
		action, _ = soft.cell(sit.PlayerTotal, sit.DealerUpcard)
	} else {
		hard := hardTotalsS17
		if v.DealerHitsSoft17 {
			hard = hardTotalsH17
		}
		action, _ = hard.cell(sit.PlayerTotal, sit.DealerUpcard)
	}

	action = degrade(action, sit, v)
	return Recommendation{Action: action, Reason: "basic strategy"}
}

// shouldSurrender checks the surrender table for an initial, non-soft
// two-card hand. Callers gate eligibility through Situation.CanSurrender.
func shouldSurrender(sit Situation, v Variant) bool {
	if sit.IsSoft {
		return false
	}
	tbl := surrenderS17
	if v.DealerHitsSoft17 {
		tbl = surrenderH17
	}
	for _, up := range tbl[sit.PlayerTotal] {
		if up == sit.DealerUpcard {
			return true
		}
	}
	return false
}

// degrade downgrades actions the current game state disallows: DOUBLE
// becomes HIT, SPLIT becomes the hand's non-split recommendation.
func degrade(action Action, sit Situation, v Variant) Action {
	switch action {
	case ActionDouble:
		if !sit.CanDouble {
			return ActionHit
		}
	case ActionSplit:
		if !sit.CanSplit {
			degraded := sit
			degraded.IsPair = false
			degraded.CanSurrender = false
			return basicAction(degraded, v).Action
		}
	case ActionSurrender:
		if !sit.CanSurrender {
			return ActionHit
		}
	}
	return action
}
