package strategy

// Dealer upcard columns run 2 through 11 (ace counts as 11).
const (
	minUpcard = 2
	maxUpcard = 11
)

// row holds one table line indexed by dealer upcard 2..11.
type row [10]Action

// table maps a player total (or pair card value) to its row.
type table map[int]row

// shorthand for table literals only
const (
	hh = ActionHit
	ss = ActionStand
	dd = ActionDouble
	pp = ActionSplit
)

// cell returns the action for a dealer upcard, degrading nothing; the
// caller applies double/split degradation.
func (t table) cell(total, upcard int) (Action, bool) {
	r, ok := t[total]
	if !ok {
		return ActionHit, false
	}
	return r[upcard-minUpcard], true
}

// The four rule-variant table sets are distinct named constants built once
// at load, never patched conditionally at runtime.

// hardTotalsS17 covers player hard totals 4-21, dealer stands on soft 17.
var hardTotalsS17 = table{
	//    2   3   4   5   6   7   8   9  10   A
	4:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	5:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	6:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	7:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	8:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	9:  {hh, dd, dd, dd, dd, hh, hh, hh, hh, hh},
	10: {dd, dd, dd, dd, dd, dd, dd, dd, hh, hh},
	11: {dd, dd, dd, dd, dd, dd, dd, dd, dd, hh},
	12: {hh, hh, ss, ss, ss, hh, hh, hh, hh, hh},
	13: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	14: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	15: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	16: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	17: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	18: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	19: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	20: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	21: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
}

// hardTotalsH17 differs from S17 in one cell: hard 11 doubles against an
// ace when the dealer hits soft 17.
var hardTotalsH17 = table{
	//    2   3   4   5   6   7   8   9  10   A
	4:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	5:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	6:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	7:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	8:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	9:  {hh, dd, dd, dd, dd, hh, hh, hh, hh, hh},
	10: {dd, dd, dd, dd, dd, dd, dd, dd, hh, hh},
	11: {dd, dd, dd, dd, dd, dd, dd, dd, dd, dd},
	12: {hh, hh, ss, ss, ss, hh, hh, hh, hh, hh},
	13: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	14: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	15: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	16: {ss, ss, ss, ss, ss, hh, hh, hh, hh, hh},
	17: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	18: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	19: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	20: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	21: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
}

// softTotalsS17 covers soft 13 (A,2) through soft 21, dealer stands on
// soft 17.
var softTotalsS17 = table{
	//    2   3   4   5   6   7   8   9  10   A
	13: {hh, hh, hh, dd, dd, hh, hh, hh, hh, hh},
	14: {hh, hh, hh, dd, dd, hh, hh, hh, hh, hh},
	15: {hh, hh, dd, dd, dd, hh, hh, hh, hh, hh},
	16: {hh, hh, dd, dd, dd, hh, hh, hh, hh, hh},
	17: {hh, dd, dd, dd, dd, hh, hh, hh, hh, hh},
	18: {ss, dd, dd, dd, dd, ss, ss, hh, hh, hh},
	19: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	20: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	21: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
}

// softTotalsH17 differs in soft 18 against a 2 (double) and soft 19
// against a 6 (double).
var softTotalsH17 = table{
	//    2   3   4   5   6   7   8   9  10   A
	13: {hh, hh, hh, dd, dd, hh, hh, hh, hh, hh},
	14: {hh, hh, hh, dd, dd, hh, hh, hh, hh, hh},
	15: {hh, hh, dd, dd, dd, hh, hh, hh, hh, hh},
	16: {hh, hh, dd, dd, dd, hh, hh, hh, hh, hh},
	17: {hh, dd, dd, dd, dd, hh, hh, hh, hh, hh},
	18: {dd, dd, dd, dd, dd, ss, ss, hh, hh, hh},
	19: {ss, ss, ss, ss, dd, ss, ss, ss, ss, ss},
	20: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	21: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
}

// pairsDAS is keyed by pair card value (2-10, ace=11), double after split
// allowed. Cells that are not SPLIT fall through to the hard/soft total
// lookup for the hand.
var pairsDAS = table{
	//    2   3   4   5   6   7   8   9  10   A
	2:  {pp, pp, pp, pp, pp, pp, hh, hh, hh, hh},
	3:  {pp, pp, pp, pp, pp, pp, hh, hh, hh, hh},
	4:  {hh, hh, hh, pp, pp, hh, hh, hh, hh, hh},
	5:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	6:  {pp, pp, pp, pp, pp, hh, hh, hh, hh, hh},
	7:  {pp, pp, pp, pp, pp, pp, hh, hh, hh, hh},
	8:  {pp, pp, pp, pp, pp, pp, pp, pp, pp, pp},
	9:  {pp, pp, pp, pp, pp, ss, pp, pp, ss, ss},
	10: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	11: {pp, pp, pp, pp, pp, pp, pp, pp, pp, pp},
}

// pairsNoDAS tightens the low pairs when doubling after a split is not
// allowed: 2s and 3s only against 4-7, 4s never, 6s against 3-6.
var pairsNoDAS = table{
	//    2   3   4   5   6   7   8   9  10   A
	2:  {hh, hh, pp, pp, pp, pp, hh, hh, hh, hh},
	3:  {hh, hh, pp, pp, pp, pp, hh, hh, hh, hh},
	4:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	5:  {hh, hh, hh, hh, hh, hh, hh, hh, hh, hh},
	6:  {hh, pp, pp, pp, pp, hh, hh, hh, hh, hh},
	7:  {pp, pp, pp, pp, pp, pp, hh, hh, hh, hh},
	8:  {pp, pp, pp, pp, pp, pp, pp, pp, pp, pp},
	9:  {pp, pp, pp, pp, pp, ss, pp, pp, ss, ss},
	10: {ss, ss, ss, ss, ss, ss, ss, ss, ss, ss},
	11: {pp, pp, pp, pp, pp, pp, pp, pp, pp, pp},
}

// surrenderS17 maps hard player totals to the dealer upcards against which
// late surrender beats every other action, dealer standing on soft 17.
var surrenderS17 = map[int][]int{
	15: {10},
	16: {9, 10, 11},
}

// surrenderH17 adds the extra ace surrenders the H17 rule creates.
var surrenderH17 = map[int][]int{
	15: {10, 11},
	16: {9, 10, 11},
	17: {11},
}
