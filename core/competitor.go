package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyRoster             = errors.New("the roster has no competitors")
	ErrInsufficientPlayers     = errors.New("at least two competitors are needed")
	ErrDuplicateCompetitorName = errors.New("duplicate competitor name")
	ErrBlankCompetitorName     = errors.New("blank competitor name")
	ErrUnknownCompetitor       = errors.New("competitor is not on the roster")
)

// A Competitor is a player or team taking part in a tournament.
// The name is the key of the competitor within its roster.
//
// The statistics are cumulative over all completed matches.
type Competitor struct {
	Name string `json:"name"`

	// 1.0 per win
	Score float64 `json:"score"`

	GamesPlayed int `json:"games_played"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`

	HoopsScored   int `json:"hoops_scored"`
	HoopsConceded int `json:"hoops_conceded"`
	NetHoops      int `json:"net_hoops"`
}

// Records the outcome of one match for this competitor.
//
// HoopsConceded is replaced with the conceded hoops of this match
// instead of being added up. NetHoops is derived from the cumulative
// HoopsScored and that last HoopsConceded value.
func (c *Competitor) record(scored, conceded int, won bool) {
	c.GamesPlayed += 1
	if won {
		c.Wins += 1
		c.Score += 1.0
	} else {
		c.Losses += 1
	}

	c.HoopsScored += scored
	c.HoopsConceded = conceded
	c.updateNetHoops()
}

func (c *Competitor) updateNetHoops() {
	c.NetHoops = c.HoopsScored - c.HoopsConceded
}

func (c *Competitor) reset() {
	*c = Competitor{Name: c.Name}
}

func (c *Competitor) String() string {
	return fmt.Sprintf(
		"%s (%.1f pts, %d-%d, %+d)",
		c.Name, c.Score, c.Wins, c.Losses, c.NetHoops,
	)
}

// A Roster is the ordered list of competitors of a tournament.
// The order is the entry order and stays stable for the whole
// tournament. Names are unique within a roster.
type Roster struct {
	competitors []*Competitor
	index       map[string]*Competitor
}

// Creates a roster with zeroed statistics for the given names.
// Errors with ErrBlankCompetitorName or ErrDuplicateCompetitorName.
func NewRoster(names ...string) (*Roster, error) {
	roster := &Roster{
		competitors: make([]*Competitor, 0, len(names)),
		index:       make(map[string]*Competitor, len(names)),
	}
	for _, name := range names {
		err := roster.add(&Competitor{Name: name})
		if err != nil {
			return nil, err
		}
	}
	return roster, nil
}

func (r *Roster) add(c *Competitor) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrBlankCompetitorName
	}
	if _, exists := r.index[c.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCompetitorName, c.Name)
	}
	r.competitors = append(r.competitors, c)
	r.index[c.Name] = c
	return nil
}

// Returns the competitors in roster order.
// The returned slice is a copy but the competitors are shared.
func (r *Roster) Competitors() []*Competitor {
	competitors := make([]*Competitor, len(r.competitors))
	copy(competitors, r.competitors)
	return competitors
}

// Returns the competitor with the given name
func (r *Roster) Get(name string) (*Competitor, bool) {
	c, ok := r.index[name]
	return c, ok
}

func (r *Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.competitors))
	for _, c := range r.competitors {
		names = append(names, c.Name)
	}
	return names
}

func (r *Roster) Len() int {
	return len(r.competitors)
}

func (r *Roster) resetStats() {
	for _, c := range r.competitors {
		c.reset()
	}
}

// Checks the size requirements for generating a pairing
func checkPairable(numCompetitors int) error {
	switch numCompetitors {
	case 0:
		return ErrEmptyRoster
	case 1:
		return ErrInsufficientPlayers
	}
	return nil
}
