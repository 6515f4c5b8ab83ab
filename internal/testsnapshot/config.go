// Package testsnapshot generates deterministic bootstrap-static documents
// and serves them over HTTP, for local runs and integration tests.
package testsnapshot

// Config holds configuration for the snapshot server.
type Config struct {
	Addr       string // listen address
	Players    int    // number of generated players
	Teams      int    // number of generated teams
	Seed       int64  // generator seed; the same seed gives the same document
	OutputFile string // optional path for a pretty printed copy of the document
	Verbose    bool   // log every request
}

// Payload is the subset of the bootstrap-static document the pipeline reads,
// plus a few neighbouring keys so consumers see a realistic shape.
type Payload struct {
	Events   []Event   `json:"events"`
	Teams    []Team    `json:"teams"`
	Elements []Element `json:"elements"`
}

// Event is a gameweek summary.
type Event struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IsCurrent  bool   `json:"is_current"`
	Finished   bool   `json:"finished"`
	DeadlineTS string `json:"deadline_time"`
}

// Team is one club.
type Team struct {
	ID        int    `json:"id"`
	Code      int    `json:"code"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Strength  int    `json:"strength"`
}

// Element is one player.
type Element struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	WebName           string `json:"web_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int    `json:"now_cost"`
	TransfersInEvent  int    `json:"transfers_in_event"`
	TransfersOutEvent int    `json:"transfers_out_event"`
	SelectedByPercent string `json:"selected_by_percent"`
	CostChangeEvent   int    `json:"cost_change_event"`
	Form              string `json:"form"`
}
