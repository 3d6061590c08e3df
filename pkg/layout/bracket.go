package layout

// Slot names of the double-elimination top-8 bracket.
const (
	WinnersSemi1 = "Winners Semi 1"
	WinnersSemi2 = "Winners Semi 2"
	WinnersFinal = "Winners Final"
	LosersTop8_1 = "Losers Top 8 Match 1"
	LosersTop8_2 = "Losers Top 8 Match 2"
	LosersQtr1   = "Losers Quarter 1"
	LosersQtr2   = "Losers Quarter 2"
	LosersSemi   = "Losers Semi"
	LosersFinal  = "Losers Final"
	GrandFinal   = "Grand Final"
	TrueFinal    = "True Final"
)

// Placeholder is the entry name shown for matches without results.
const Placeholder = "TBD"

// BracketGrid is the column and row grid of the stream bracket.
var BracketGrid = Grid{
	Columns: []float64{1, 5.5, 10, 14.5},
	Rows:    []float64{8, 6.5, 5, 3.5, 2},
	Shift:   -2,
}

type bracketSlot struct {
	name   string
	label  string
	side   Side
	scale  float64
	col    int
	r1, r2 int
}

var bracketSlots = []bracketSlot{
	{WinnersSemi1, "Winners Semi", Winners, 0.9, 0, 0, 0},
	{WinnersSemi2, "Winners Semi", Winners, 0.9, 0, 1, 1},
	{WinnersFinal, "Winners Final", Winners, 1.2, 1, 0, 1},
	{LosersTop8_1, "Losers Top 8", Losers, 0.9, 0, 2, 2},
	{LosersTop8_2, "Losers Top 8", Losers, 0.9, 0, 3, 3},
	{LosersQtr1, "Losers Quarter", Losers, 1.0, 1, 2, 2},
	{LosersQtr2, "Losers Quarter", Losers, 1.0, 1, 3, 3},
	{LosersSemi, "Losers Semi", Losers, 1.1, 2, 2, 3},
	{LosersFinal, "Losers Final", Losers, 1.3, 3, 2, 3},
	{GrandFinal, "Grand Final", Winners, 1.5, 2, 0, 1},
	{TrueFinal, "True Final", Winners, 1.5, 3, 0, 1},
}

var bracketLinks = [][2]string{
	{WinnersSemi1, WinnersFinal},
	{WinnersSemi2, WinnersFinal},
	{LosersTop8_1, LosersQtr1},
	{LosersTop8_2, LosersQtr2},
	{LosersQtr1, LosersSemi},
	{LosersQtr2, LosersSemi},
	{GrandFinal, TrueFinal},
	{LosersSemi, LosersFinal},
	{WinnersFinal, GrandFinal},
}

// BracketSlotNames returns the bracket slot names in drawing order.
func BracketSlotNames() []string {
	names := make([]string, len(bracketSlots))
	for i, s := range bracketSlots {
		names[i] = s.name
	}
	return names
}

// Bracket builds the double-elimination top-8 plan on g. Slots missing from
// results show [Placeholder] with empty values. Labels may override the
// default slot titles; an empty override hides the label.
func Bracket(g Grid, results map[string][2]Entry, labels map[string]string) Plan {
	p := Plan{
		Metrics: DefaultMetrics,
		Insets:  DefaultInsets,
		Slots:   make([]Slot, 0, len(bracketSlots)),
		Links:   make([]Link, 0, len(bracketLinks)),
	}
	for _, bs := range bracketSlots {
		entries, ok := results[bs.name]
		if !ok {
			entries = [2]Entry{{Name: Placeholder}, {Name: Placeholder}}
		}
		label := bs.label
		if v, ok := labels[bs.name]; ok {
			label = v
		}
		p.Slots = append(p.Slots, Slot{
			Name:    bs.name,
			Anchor:  g.Between(bs.col, bs.r1, bs.r2),
			Scale:   bs.scale,
			Entries: entries,
			Label:   label,
			Side:    bs.side,
		})
	}
	for _, l := range bracketLinks {
		p.Links = append(p.Links, Link{From: l[0], To: l[1], Elbow: true})
	}
	return p
}
