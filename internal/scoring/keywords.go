package scoring

// Keywords holds the term tables driving the relevance, competition,
// and potential components. They are plain data so deployments can
// tune, test, and swap them without touching scoring logic.
//
// Priority tiers map term -> point value; each matched term contributes
// its point value x10 to the relevance score (capped at 100).
type Keywords struct {
	HighPriority   map[string]float64
	MediumPriority map[string]float64
	LowPriority    map[string]float64

	// PublicTender terms indicate open competitive processes (crowded
	// field, procurement overhead); Private terms indicate direct or
	// exclusive engagements.
	PublicTender []string
	Private      []string

	// Recurring, MajorClient, and Growth feed the potential component.
	Recurring   []string
	MajorClient []string
	Growth      []string
}

// DefaultKeywords returns the stock bilingual (French/English) tables
// tuned for live-music lead sources.
func DefaultKeywords() Keywords {
	return Keywords{
		HighPriority: map[string]float64{
			"festival":      3,
			"booking":       3,
			"concert":       3,
			"corporate":     3,
			"tournée":       3,
			"tour dates":    3,
			"programmation": 3,
			"line-up":       3,
		},
		MediumPriority: map[string]float64{
			"événement": 2,
			"event":     2,
			"soirée":    2,
			"club":      2,
			"showcase":  2,
			"résidence": 2,
			"dj set":    2,
			"live":      2,
			"privé":     2,
			"private":   2,
		},
		LowPriority: map[string]float64{
			"musique": 1,
			"music":   1,
			"artiste": 1,
			"artist":  1,
			"scène":   1,
			"stage":   1,
			"sono":    1,
		},
		PublicTender: []string{
			"appel d'offres", "appel d'offre", "marché public",
			"open call", "public tender", "rfp", "request for proposal",
		},
		Private: []string{
			"privé", "private", "exclusif", "exclusive",
			"gré à gré", "direct booking", "sur invitation",
		},
		Recurring: []string{
			"annuel", "annual", "récurrent", "recurring",
			"chaque année", "every year", "saison", "season",
			"mensuel", "monthly",
		},
		MajorClient: []string{
			"ministère", "government", "mairie", "métropole",
			"grand groupe", "multinational", "fortune 500",
			"international",
		},
		Growth: []string{
			"expansion", "croissance", "growth",
			"première édition", "first edition", "nouvelle édition",
			"nouveau format",
		},
	}
}
