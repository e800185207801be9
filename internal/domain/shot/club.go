package shot

import (
	"errors"
	"strings"
	"unicode"
)

// Club identifies the club a shot was hit with.
type Club string

// Club constants
const (
	ClubDriver  Club = "DRIVER"
	ClubWood3   Club = "WOOD_3"
	ClubWood5   Club = "WOOD_5"
	ClubHybrid  Club = "HYBRID"
	ClubIron5   Club = "IRON_5"
	ClubIron6   Club = "IRON_6"
	ClubIron7   Club = "IRON_7"
	ClubIron8   Club = "IRON_8"
	ClubIron9   Club = "IRON_9"
	ClubWedgePW Club = "WEDGE_PW"
	ClubWedgeGW Club = "WEDGE_GW"
	ClubWedgeSW Club = "WEDGE_SW"
	ClubWedgeLW Club = "WEDGE_LW"
	ClubPutter  Club = "PUTTER"
)

// Category partitions clubs into the four practice areas.
type Category string

// Category constants
const (
	CategoryDriver Category = "driver"
	CategoryIrons  Category = "irons"
	CategoryWedge  Category = "wedge"
	CategoryPutter Category = "putter"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryDriver, CategoryIrons, CategoryWedge, CategoryPutter}

var categoryClubs = map[Category][]Club{
	CategoryDriver: {ClubDriver, ClubWood3, ClubWood5, ClubHybrid},
	CategoryIrons:  {ClubIron9, ClubIron8, ClubIron7, ClubIron6, ClubIron5},
	CategoryWedge:  {ClubWedgePW, ClubWedgeGW, ClubWedgeSW, ClubWedgeLW},
	CategoryPutter: {ClubPutter},
}

// Domain errors
var (
	ErrUnknownClub     = errors.New("unknown club")
	ErrUnknownCategory = errors.New("category must be one of: driver, irons, wedge, putter")
	ErrClubNotInCat    = errors.New("club does not belong to this category")
)

// Clubs returns the clubs belonging to the category.
// POST: returns a copy; nil for an unknown category
func (c Category) Clubs() []Club {
	clubs := categoryClubs[c]
	if clubs == nil {
		return nil
	}
	out := make([]Club, len(clubs))
	copy(out, clubs)
	return out
}

// Contains reports whether club belongs to the category.
func (c Category) Contains(club Club) bool {
	for _, cl := range categoryClubs[c] {
		if cl == club {
			return true
		}
	}
	return false
}

// Valid reports whether the category is known.
func (c Category) Valid() bool {
	_, ok := categoryClubs[c]
	return ok
}

// ParseCategory resolves a route segment to a category.
// PRE: none
// POST: returns ErrUnknownCategory for anything unrecognised
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driver", "woods":
		return CategoryDriver, nil
	case "irons", "iron":
		return CategoryIrons, nil
	case "wedge", "wedges":
		return CategoryWedge, nil
	case "putter", "putt", "putting":
		return CategoryPutter, nil
	}
	return "", ErrUnknownCategory
}

// Valid reports whether the club is one of the known clubs.
func (c Club) Valid() bool {
	_, ok := clubCategory[c]
	return ok
}

// Category returns the category the club belongs to.
func (c Club) Category() Category {
	return clubCategory[c]
}

// IsPutter reports whether the club is the putter.
func (c Club) IsPutter() bool {
	return c == ClubPutter
}

var clubCategory = func() map[Club]Category {
	m := make(map[Club]Category)
	for cat, clubs := range categoryClubs {
		for _, cl := range clubs {
			m[cl] = cat
		}
	}
	return m
}()

var clubAliases = map[string]Club{
	"D":      ClubDriver,
	"DR":     ClubDriver,
	"1W":     ClubDriver,
	"3W":     ClubWood3,
	"W3":     ClubWood3,
	"5W":     ClubWood5,
	"W5":     ClubWood5,
	"H":      ClubHybrid,
	"HY":     ClubHybrid,
	"HYB":    ClubHybrid,
	"RESCUE": ClubHybrid,
	"PW":     ClubWedgePW,
	"GW":     ClubWedgeGW,
	"AW":     ClubWedgeGW,
	"SW":     ClubWedgeSW,
	"LW":     ClubWedgeLW,
	"P":      ClubPutter,
	"PT":     ClubPutter,
}

// NormalizeClub maps free-form club input ("7i", "3 wood", "Sand wedge") to a Club.
// PRE: none
// POST: returns ErrUnknownClub if no club matches
func NormalizeClub(raw string) (Club, error) {
	s := canonicalClubString(raw)
	if s == "" {
		return "", ErrUnknownClub
	}
	if c := Club(s); c.Valid() {
		return c, nil
	}

	compact := strings.ReplaceAll(s, "_", "")
	if c, ok := clubAliases[compact]; ok {
		return c, nil
	}
	if c, ok := ironAlias(compact); ok {
		return c, nil
	}

	digit := firstDigit(s)
	switch {
	case strings.Contains(s, "DRIVER"):
		return ClubDriver, nil
	case strings.Contains(s, "PUTT"):
		return ClubPutter, nil
	case strings.Contains(s, "HYBRID"), strings.Contains(s, "RESCUE"):
		return ClubHybrid, nil
	case strings.Contains(s, "WOOD"):
		switch digit {
		case '3':
			return ClubWood3, nil
		case '5':
			return ClubWood5, nil
		}
	case strings.Contains(s, "IRON"):
		if c, ok := ironFromDigit(digit); ok {
			return c, nil
		}
	case strings.Contains(s, "PITCH"):
		return ClubWedgePW, nil
	case strings.Contains(s, "GAP"), strings.Contains(s, "APPROACH"):
		return ClubWedgeGW, nil
	case strings.Contains(s, "SAND"):
		return ClubWedgeSW, nil
	case strings.Contains(s, "LOB"):
		return ClubWedgeLW, nil
	}
	return "", ErrUnknownClub
}

// canonicalClubString trims, upper-cases and collapses whitespace and hyphens to "_".
func canonicalClubString(raw string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// ironAlias handles "7I" and "I7".
func ironAlias(compact string) (Club, bool) {
	if len(compact) != 2 {
		return "", false
	}
	switch {
	case compact[1] == 'I':
		return ironFromDigit(rune(compact[0]))
	case compact[0] == 'I':
		return ironFromDigit(rune(compact[1]))
	}
	return "", false
}

func ironFromDigit(d rune) (Club, bool) {
	switch d {
	case '5':
		return ClubIron5, true
	case '6':
		return ClubIron6, true
	case '7':
		return ClubIron7, true
	case '8':
		return ClubIron8, true
	case '9':
		return ClubIron9, true
	}
	return "", false
}

func firstDigit(s string) rune {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return r
		}
	}
	return 0
}
