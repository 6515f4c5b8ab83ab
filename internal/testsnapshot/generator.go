package testsnapshot

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Generator shape constants.
const (
	DefaultPlayers = 600
	DefaultTeams   = 20
	DefaultSeed    = 42

	minCost          = 39
	costRange        = 110
	maxTransfers     = 900_000
	unknownTypeEvery = 50 // roughly one in fifty elements uses element type 5
)

var clubs = []struct{ name, short string }{
	{"Arsenal", "ARS"}, {"Aston Villa", "AVL"}, {"Bournemouth", "BOU"}, {"Brentford", "BRE"},
	{"Brighton", "BHA"}, {"Chelsea", "CHE"}, {"Crystal Palace", "CRY"}, {"Everton", "EVE"},
	{"Fulham", "FUL"}, {"Ipswich", "IPS"}, {"Leicester", "LEI"}, {"Liverpool", "LIV"},
	{"Man City", "MCI"}, {"Man Utd", "MUN"}, {"Newcastle", "NEW"}, {"Nott'm Forest", "NFO"},
	{"Southampton", "SOU"}, {"Spurs", "TOT"}, {"West Ham", "WHU"}, {"Wolves", "WOL"},
}

var (
	firstNames = []string{"Bukayo", "Cole", "Erling", "Mohamed", "Bruno", "Son", "Ollie", "Jarrod", "Kai", "Alexander", "Dominic", "Jordan"}
	lastNames  = []string{"Saka", "Palmer", "Haaland", "Salah", "Fernandes", "Heung-min", "Watkins", "Bowen", "Havertz", "Isak", "Solanke", "Pickford"}
)

// Generate builds a payload from cfg. Values are drawn from a source seeded
// with cfg.Seed, so equal configs produce equal payloads.
func Generate(cfg Config) Payload {
	players, teams := cfg.Players, cfg.Teams
	if players <= 0 {
		players = DefaultPlayers
	}
	if teams <= 0 {
		teams = DefaultTeams
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic fixture data

	p := Payload{
		Events: []Event{{ID: 1, Name: "Gameweek 1", IsCurrent: true, DeadlineTS: "2024-08-16T17:30:00Z"}},
		Teams:  make([]Team, 0, teams),
	}
	for i := 0; i < teams; i++ {
		t := Team{ID: i + 1, Code: 100 + i, Strength: 2 + rng.Intn(4)}
		if i < len(clubs) {
			t.Name, t.ShortName = clubs[i].name, clubs[i].short
		} else {
			t.Name, t.ShortName = fmt.Sprintf("Club %d", i+1), fmt.Sprintf("C%02d", i+1)
		}
		p.Teams = append(p.Teams, t)
	}

	p.Elements = make([]Element, 0, players)
	for i := 0; i < players; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		elementType := 1 + rng.Intn(4)
		if rng.Intn(unknownTypeEvery) == 0 {
			elementType = 5
		}
		p.Elements = append(p.Elements, Element{
			ID:                i + 1,
			FirstName:         first,
			SecondName:        last,
			WebName:           last,
			Team:              1 + rng.Intn(teams),
			ElementType:       elementType,
			NowCost:           minCost + rng.Intn(costRange),
			TransfersInEvent:  skewed(rng),
			TransfersOutEvent: skewed(rng),
			SelectedByPercent: strconv.FormatFloat(ownership(rng), 'f', 1, 64),
			CostChangeEvent:   priceChange(rng),
			Form:              strconv.FormatFloat(rng.Float64()*10, 'f', 1, 64),
		})
	}
	return p
}

// skewed favours small transfer counts with an occasional large one.
func skewed(rng *rand.Rand) int {
	f := rng.Float64()
	return int(f * f * f * maxTransfers)
}

// ownership is mostly under five percent, with a tail up to sixty.
func ownership(rng *rand.Rand) float64 {
	if rng.Intn(5) == 0 {
		return 5 + rng.Float64()*55
	}
	return rng.Float64() * 5
}

// priceChange is usually zero and otherwise one or two tenths either way.
func priceChange(rng *rand.Rand) int {
	switch rng.Intn(20) {
	case 0:
		return 1
	case 1:
		return -1
	case 2:
		return 2
	case 3:
		return -2
	default:
		return 0
	}
}
