package strategy

// InsuranceIndex is the true count at or above which taking insurance is
// profitable under Hi-Lo. Insurance is special-cased: it is independent of
// the action tables and only offered against a dealer ace.
const InsuranceIndex = 3.0

// Deviation is a single index play: when the hand attributes and dealer
// upcard match exactly and the true count crosses the threshold, the
// deviation action replaces the basic-strategy action.
type Deviation struct {
	PlayerTotal  int
	IsSoft       bool
	IsPair       bool
	DealerUpcard int
	// Threshold triggers at trueCount >= Threshold when non-negative and
	// at trueCount <= Threshold when negative.
	Threshold float64
	Action    Action
	Reason    string
}

// Applies reports whether the true count satisfies the threshold.
func (d Deviation) Applies(trueCount float64) bool {
	if d.Threshold < 0 {
		return trueCount <= d.Threshold
	}
	return trueCount >= d.Threshold
}

// deviations is the canonical Hi-Lo index set, in match order. The first
// structurally matching entry wins; the set is built so at most one entry
// matches any situation.
var deviations = []Deviation{
	{PlayerTotal: 16, DealerUpcard: 10, Threshold: 0, Action: ActionStand, Reason: "stand 16 vs 10 at true count 0 or higher"},
	{PlayerTotal: 16, DealerUpcard: 9, Threshold: 4, Action: ActionStand, Reason: "stand 16 vs 9 at true count +4 or higher"},
	{PlayerTotal: 15, DealerUpcard: 10, Threshold: 4, Action: ActionStand, Reason: "stand 15 vs 10 at true count +4 or higher"},
	{PlayerTotal: 13, DealerUpcard: 2, Threshold: -1, Action: ActionHit, Reason: "hit 13 vs 2 at true count -1 or lower"},
	{PlayerTotal: 13, DealerUpcard: 3, Threshold: -2, Action: ActionHit, Reason: "hit 13 vs 3 at true count -2 or lower"},
	{PlayerTotal: 12, DealerUpcard: 2, Threshold: 3, Action: ActionStand, Reason: "stand 12 vs 2 at true count +3 or higher"},
	{PlayerTotal: 12, DealerUpcard: 3, Threshold: 2, Action: ActionStand, Reason: "stand 12 vs 3 at true count +2 or higher"},
	{PlayerTotal: 12, DealerUpcard: 4, Threshold: -1, Action: ActionHit, Reason: "hit 12 vs 4 at true count -1 or lower"},
	{PlayerTotal: 11, DealerUpcard: 11, Threshold: 1, Action: ActionDouble, Reason: "double 11 vs ace at true count +1 or higher"},
	{PlayerTotal: 10, DealerUpcard: 10, Threshold: 4, Action: ActionDouble, Reason: "double 10 vs 10 at true count +4 or higher"},
	{PlayerTotal: 10, DealerUpcard: 11, Threshold: 3, Action: ActionDouble, Reason: "double 10 vs ace at true count +3 or higher"},
	{PlayerTotal: 9, DealerUpcard: 2, Threshold: 1, Action: ActionDouble, Reason: "double 9 vs 2 at true count +1 or higher"},
	{PlayerTotal: 9, DealerUpcard: 7, Threshold: 3, Action: ActionDouble, Reason: "double 9 vs 7 at true count +3 or higher"},
	{PlayerTotal: 20, IsPair: true, DealerUpcard: 5, Threshold: 5, Action: ActionSplit, Reason: "split 10s vs 5 at true count +5 or higher"},
	{PlayerTotal: 20, IsPair: true, DealerUpcard: 6, Threshold: 4, Action: ActionSplit, Reason: "split 10s vs 6 at true count +4 or higher"},
}

// TakeInsurance recommends insurance when the true count reaches the
// insurance index.
func TakeInsurance(trueCount float64) bool {
	return trueCount >= InsuranceIndex
}

// findDeviation returns the first deviation entry matching the situation
// whose threshold the true count satisfies.
func findDeviation(total int, isSoft, isPair bool, upcard int, trueCount float64) (Deviation, bool) {
	for _, d := range deviations {
		if d.PlayerTotal != total || d.IsSoft != isSoft || d.IsPair != isPair || d.DealerUpcard != upcard {
			continue
		}
		if d.Applies(trueCount) {
			return d, true
		}
	}
	return Deviation{}, false
}
