package core

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoValidPairing       = errors.New("no valid pairing combination found")
	ErrUnknownPairingMethod = errors.New("unknown pairing method")
)

// Rosters up to this size are paired by enumerating all
// possible pairings.
const DefaultBruteForceLimit = 12

type PairingMethod int

const (
	// Orders the competitors by their standing before pairing
	Swiss PairingMethod = iota
	// Orders the competitors randomly before pairing
	Random
)

func (m PairingMethod) String() string {
	switch m {
	case Swiss:
		return "Swiss"
	case Random:
		return "Random"
	}
	return fmt.Sprintf("PairingMethod(%d)", int(m))
}

func ParsePairingMethod(s string) (PairingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swiss", "":
		return Swiss, nil
	case "random":
		return Random, nil
	}
	return Swiss, fmt.Errorf("%w: %q", ErrUnknownPairingMethod, s)
}

func (m PairingMethod) MarshalText() ([]byte, error) {
	if m != Swiss && m != Random {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPairingMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *PairingMethod) UnmarshalText(text []byte) error {
	method, err := ParsePairingMethod(string(text))
	if err != nil {
		return err
	}
	*m = method
	return nil
}

// Two competitors that are paired against each other
type Pair struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

func (p Pair) Contains(name string) bool {
	return p.Player1 == name || p.Player2 == name
}

func (p Pair) String() string {
	return p.Player1 + " vs. " + p.Player2
}

// The pairing of one round.
//
// Every competitor is either in exactly one of the pairs
// or is the Bye. There is a bye only when the number of
// competitors is odd.
type Pairing struct {
	Round int    `json:"round"`
	Pairs []Pair `json:"pairs"`
	// Empty when nobody sits out
	Bye string `json:"bye,omitempty"`
	// True when at least one of the pairs already met before
	HasRepeat bool `json:"has_repeat"`
	Repeats   int  `json:"repeats"`
}

// Returns the bye as a slice with zero or one names
func (p *Pairing) Byes() []string {
	if p.Bye == "" {
		return []string{}
	}
	return []string{p.Bye}
}

// Returns all names that appear in the pairing
// including the bye
func (p *Pairing) Names() []string {
	names := make([]string, 0, 2*len(p.Pairs)+1)
	for _, pair := range p.Pairs {
		names = append(names, pair.Player1, pair.Player2)
	}
	if p.Bye != "" {
		names = append(names, p.Bye)
	}
	return names
}

func (p *Pairing) clone() *Pairing {
	clone := *p
	clone.Pairs = slices.Clone(p.Pairs)
	return &clone
}

// A candidate pairing as indices into the ordered competitors.
// The bye is -1 when there is none.
type candidate struct {
	pairs [][2]int
	bye   int
}

// The PairingGenerator searches the pairing with the least
// repeated encounters.
type PairingGenerator struct {
	Method PairingMethod

	// Rosters with more competitors than this are paired
	// with the maximum matching search instead of the
	// enumeration. Zero or less always enumerates.
	BruteForceLimit int

	// Source of randomness for the Random method.
	// The process-wide source is used when this is nil.
	Rng *rand.Rand

	Logger logrus.FieldLogger
}

func NewPairingGenerator(method PairingMethod, rng *rand.Rand, logger logrus.FieldLogger) *PairingGenerator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PairingGenerator{
		Method:          method,
		BruteForceLimit: DefaultBruteForceLimit,
		Rng:             rng,
		Logger:          logger,
	}
}

// Generates the pairing for the next round.
//
// When mutate is true all pairs of the chosen pairing are
// recorded in the opponent graph. This has to happen exactly
// once per round.
//
// Errors with ErrEmptyRoster, ErrInsufficientPlayers or
// ErrNoValidPairing. The opponent graph is unchanged
// on error.
func (g *PairingGenerator) Generate(
	competitors []*Competitor,
	opponents *OpponentGraph,
	mutate bool,
) (*Pairing, error) {
	if err := checkPairable(len(competitors)); err != nil {
		return nil, err
	}

	ordered := g.order(competitors)
	logger := g.logger().WithFields(logrus.Fields{
		"method":  g.Method.String(),
		"players": competitorNames(ordered),
	})
	logger.Debug("generating pairings")

	var (
		best    candidate
		repeats int
		err     error
	)
	if g.BruteForceLimit > 0 && len(ordered) > g.BruteForceLimit {
		best, repeats = g.searchMaximumMatching(ordered, opponents)
	} else {
		best, repeats, err = g.searchAll(ordered, opponents)
	}
	if err != nil {
		logger.WithError(err).Error("pairing search failed")
		return nil, err
	}

	pairing := &Pairing{
		Pairs:     make([]Pair, 0, len(best.pairs)),
		HasRepeat: repeats > 0,
		Repeats:   repeats,
	}
	for _, p := range best.pairs {
		pairing.Pairs = append(pairing.Pairs, Pair{
			Player1: ordered[p[0]].Name,
			Player2: ordered[p[1]].Name,
		})
	}
	if best.bye >= 0 {
		pairing.Bye = ordered[best.bye].Name
	}

	if mutate {
		for _, p := range pairing.Pairs {
			opponents.Record(p.Player1, p.Player2)
		}
	}

	logger.WithFields(logrus.Fields{
		"pairs":   pairing.Pairs,
		"bye":     pairing.Bye,
		"repeats": repeats,
	}).Debug("generated pairings")

	return pairing, nil
}

func (g *PairingGenerator) logger() logrus.FieldLogger {
	if g.Logger == nil {
		return logrus.StandardLogger()
	}
	return g.Logger
}

// Orders the competitors according to the pairing method
func (g *PairingGenerator) order(competitors []*Competitor) []*Competitor {
	if g.Method == Random {
		ordered := slices.Clone(competitors)
		shuffle(ordered, g.Rng)
		return ordered
	}
	return SortCompetitors(competitors)
}

// Scans the candidate pairings and returns the first one
// with the least repeats. The scan stops at the first
// candidate without repeats.
func (g *PairingGenerator) searchAll(ordered []*Competitor, opponents *OpponentGraph) (candidate, int, error) {
	seq := candidates(len(ordered))
	if g.Method == Random {
		all := slices.Collect(seq)
		shuffle(all, g.Rng)
		seq = slices.Values(all)
	}

	var best candidate
	minRepeats := -1
	for c := range seq {
		repeats := countRepeats(c, ordered, opponents)
		if minRepeats < 0 || repeats < minRepeats {
			best = c
			minRepeats = repeats
		}
		if repeats == 0 {
			break
		}
	}

	if minRepeats < 0 {
		return candidate{}, 0, ErrNoValidPairing
	}
	return best, minRepeats, nil
}

// Finds a pairing with the least repeats by computing a maximum
// matching on the pairs that did not meet yet. The competitors
// left unmatched can only be paired with repeats. They are
// paired in their order and the first of them gets the bye
// if the number of competitors is odd.
func (g *PairingGenerator) searchMaximumMatching(ordered []*Competitor, opponents *OpponentGraph) (candidate, int) {
	n := len(ordered)
	fresh := func(i, j int) bool {
		return !opponents.HaveMet(ordered[i].Name, ordered[j].Name)
	}
	match := maximumMatching(n, fresh)

	c := candidate{pairs: make([][2]int, 0, n/2), bye: -1}
	unmatched := make([]int, 0, n)
	for i, j := range match {
		if j < 0 {
			unmatched = append(unmatched, i)
		} else if i < j {
			c.pairs = append(c.pairs, [2]int{i, j})
		}
	}

	if n%2 != 0 {
		c.bye = unmatched[0]
		unmatched = unmatched[1:]
	}
	for i := 0; i+1 < len(unmatched); i += 2 {
		c.pairs = append(c.pairs, [2]int{unmatched[i], unmatched[i+1]})
	}

	return c, countRepeats(c, ordered, opponents)
}

// Counts the pairs of the candidate that already met
func countRepeats(c candidate, ordered []*Competitor, opponents *OpponentGraph) int {
	repeats := 0
	for _, p := range c.pairs {
		if opponents.HaveMet(ordered[p[0]].Name, ordered[p[1]].Name) {
			repeats += 1
		}
	}
	return repeats
}

// Yields all candidate pairings of n competitors.
//
// For an even n these are all perfect matchings. For an odd n
// every competitor is tried as the bye (in order) combined with
// every perfect matching of the others.
func candidates(n int) iter.Seq[candidate] {
	return func(yield func(candidate) bool) {
		if n%2 == 0 {
			for pairs := range perfectMatchings(indexRange(n, -1)) {
				if !yield(candidate{pairs: pairs, bye: -1}) {
					return
				}
			}
			return
		}

		for bye := range n {
			for pairs := range perfectMatchings(indexRange(n, bye)) {
				if !yield(candidate{pairs: pairs, bye: bye}) {
					return
				}
			}
		}
	}
}

// Yields every partition of the indices into pairs.
//
// The first free index is paired with each later free index
// in turn so the matchings come in lexicographic order.
func perfectMatchings(indices []int) iter.Seq[[][2]int] {
	return func(yield func([][2]int) bool) {
		pairs := make([][2]int, 0, len(indices)/2)
		used := make([]bool, len(indices))

		var next func() bool
		next = func() bool {
			first := slices.Index(used, false)
			if first < 0 {
				return yield(slices.Clone(pairs))
			}

			used[first] = true
			defer func() { used[first] = false }()

			for second := first + 1; second < len(indices); second++ {
				if used[second] {
					continue
				}
				used[second] = true
				pairs = append(pairs, [2]int{indices[first], indices[second]})

				ok := next()

				pairs = pairs[:len(pairs)-1]
				used[second] = false
				if !ok {
					return false
				}
			}
			return true
		}

		next()
	}
}

// Returns 0..n-1 without the skipped index
func indexRange(n, skip int) []int {
	indices := make([]int, 0, n)
	for i := range n {
		if i != skip {
			indices = append(indices, i)
		}
	}
	return indices
}

func competitorNames(competitors []*Competitor) []string {
	names := make([]string, len(competitors))
	for i, c := range competitors {
		names[i] = c.Name
	}
	return names
}
