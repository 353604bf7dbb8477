// Package config defines rota configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional .env file, an optional YAML file and
//   ROTA_ environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

// Ledger drivers.
const (
	LedgerCSV    = "csv"
	LedgerSQLite = "sqlite"
)

// Prompt modes.
const (
	PromptAuto = "auto"
	PromptForm = "form"
	PromptLine = "line"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RosterPath is the CSV file with one row per person.
	RosterPath string `koanf:"roster_path"`
	// LedgerPath is the CSV assignment history (csv driver).
	LedgerPath string `koanf:"ledger_path"`
	// LedgerDriver selects the ledger store: csv or sqlite.
	LedgerDriver string `koanf:"ledger_driver"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `koanf:"sqlite_path"`
	// ProgramPath is the extracted weekly program table.
	ProgramPath string `koanf:"program_path"`
	// OutputPath receives the final slot x date table.
	OutputPath string `koanf:"output_path"`
	// MetricsPath, when set, receives a Prometheus textfile at the end of a run.
	MetricsPath string `koanf:"metrics_path"`
	// Prompt selects the interactive surface: auto, form or line.
	Prompt string `koanf:"prompt"`

	Roster  RosterColumns `koanf:"roster"`
	Roles   RoleGroups    `koanf:"roles"`
	Meeting Meeting       `koanf:"meeting"`
	Metrics Metrics       `koanf:"metrics"`
}

// Metrics names the series written to the textfile.
type Metrics struct {
	Namespace string `koanf:"namespace"`
	// Labels are attached to every series, e.g. congregation: north.
	Labels map[string]string `koanf:"labels"`
}

// RosterColumns names the roster table columns read at load time.
type RosterColumns struct {
	Name           string `koanf:"name"`
	Active         string `koanf:"active"`
	Gender         string `koanf:"gender"`
	ModifierSuffix string `koanf:"modifier_suffix"`
}

// RoleGroups is the static role grouping handed to the normalizer.
type RoleGroups struct {
	// Fairness maps a fairness-group key to its member raw roles.
	Fairness map[string][]string `koanf:"fairness"`
	// Eligibility maps a roster column to the raw roles it qualifies.
	Eligibility map[string][]string `koanf:"eligibility"`
	// GroupedDisplay lists fairness groups whose recent records are shown.
	GroupedDisplay []string `koanf:"grouped_display"`
	// VariantToken marks the auxiliary room variant of a role.
	VariantToken string `koanf:"variant_token"`
	// SeparateVariantFairness gives variants their own fairness clock.
	SeparateVariantFairness bool `koanf:"separate_variant_fairness"`
	// RecentLimit bounds the grouped records shown per candidate.
	RecentLimit int `koanf:"recent_limit"`
}

// Meeting describes the weekly program layout and slot sizes.
type Meeting struct {
	// Row offsets (0-based data rows) in the program table.
	TreasuresRows []int `koanf:"treasures_rows"`
	ReadingRow    int   `koanf:"reading_row"`
	MinistryRows  []int `koanf:"ministry_rows"`
	LivingRows    []int `koanf:"living_rows"`

	// TopN is the number of ranked candidates shown per slot kind.
	TopN TopN `koanf:"top_n"`

	// Overflow enables the auxiliary room question.
	Overflow bool `koanf:"overflow"`
	// EmptySkips lets a bare Enter at the candidate list skip the slot.
	EmptySkips bool `koanf:"empty_skips"`
}

// TopN sizes the ranked lists.
type TopN struct {
	Chairman  int `koanf:"chairman"`
	Treasures int `koanf:"treasures"`
	Reading   int `koanf:"reading"`
	Ministry  int `koanf:"ministry"`
	Living    int `koanf:"living"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		RosterPath:   "people.csv",
		LedgerPath:   "assignment_history.csv",
		LedgerDriver: LedgerCSV,
		SQLitePath:   "rota.db",
		ProgramPath:  "weekly_programs.csv",
		OutputPath:   "final_assignments.csv",
		Prompt:       PromptAuto,
		Roster: RosterColumns{
			Name:           "Hermano",
			Active:         "Activo?",
			Gender:         "Género",
			ModifierSuffix: " Mod",
		},
		Roles: RoleGroups{
			Fairness: map[string][]string{
				"SMM": {
					"Discurso",
					"Haga Revisitas",
					"Empiece conversaciones",
					"Haga discípulos",
					"Explique sus creencias",
				},
			},
			Eligibility: map[string][]string{
				"Estudiante": {
					"Lectura",
					"Discurso",
					"Haga Revisitas",
					"Empiece conversaciones",
					"Haga discípulos",
					"Explique sus creencias",
				},
			},
			GroupedDisplay: []string{"SMM"},
			VariantToken:   "(Sala B)",
			RecentLimit:    3,
		},
		Meeting: Meeting{
			TreasuresRows: []int{3, 4},
			ReadingRow:    5,
			MinistryRows:  []int{7, 8, 9},
			LivingRows:    []int{13, 14, 15},
			TopN: TopN{
				Chairman:  3,
				Treasures: 3,
				Reading:   4,
				Ministry:  4,
				Living:    3,
			},
		},
		Metrics: Metrics{
			Namespace: "rota",
		},
	}
}
