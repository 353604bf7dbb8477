// Package meeting turns one week of the extracted program into the ordered
// slots the orchestrator resolves.
//
// A slot whose program cell is empty (or does not carry its leading marker)
// is absent that week, not merely unfillable.
package meeting

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/okian/rota/internal/domain/model"
)

// Output row labels.
const (
	LabelChairman  = "PRESIDENCIA"
	LabelTreasures = "TESOROS"
	LabelGems      = "PERLAS"
	LabelReading   = "LECTURA"
	LabelBible     = "EBC"

	ministryPrefix = "SMM"
	livingPrefix   = "NVC"
	mirrorSuffix   = " B"

	maxMinistrySlots = 4
	maxLivingSlots   = 2
)

// Raw role keys written to the ledger.
const (
	RoleChairman  = "Presidencia"
	RoleTreasures = "Tesoros"
	RoleGems      = "Perlas"
	RoleReading   = "Lectura"
	RoleStudent   = "Estudiante"
	RoleLiving    = "NVC"
	RoleNeeds     = "Necesidades"
	RoleBible     = "EBC"
)

// Week is one date column of the program table. Cells are indexed by
// 0-based data row.
type Week struct {
	Date   time.Time
	Header string
	Cells  []string
}

// Cell returns the trimmed text at row, or "" when the row is missing.
func (w Week) Cell(row int) string {
	if row < 0 || row >= len(w.Cells) {
		return ""
	}
	return strings.TrimSpace(w.Cells[row])
}

// Slot is one role to resolve on a date.
type Slot struct {
	// Label is the output row.
	Label string
	// Role is the raw role key.
	Role string
	Text string
	// Gender is the static gender requirement.
	Gender model.Gender
	// AskGender requests an interactive gender choice before ranking.
	AskGender bool
	TopN      int
	// Mirrorable slots get an auxiliary room copy when overflow is on.
	Mirrorable bool
}

// Mirror returns the auxiliary room copy of s tracked under variantRole.
func (s Slot) Mirror(variantRole string) Slot {
	m := s
	m.Label = s.Label + mirrorSuffix
	m.Role = variantRole
	m.Mirrorable = false
	return m
}

// TopN sizes the candidate lists per slot kind.
type TopN struct {
	Chairman  int
	Treasures int
	Reading   int
	Ministry  int
	Living    int
}

// Layout locates slot text in the program table.
type Layout struct {
	TreasuresRows []int
	ReadingRow    int
	MinistryRows  []int
	LivingRows    []int
	TopN          TopN
}

type subRole struct {
	keyword string
	role    string
	gender  model.Gender
}

// Keyword order matters: the first match wins.
var ministryRoles = []subRole{
	{keyword: "discurso", role: "Discurso", gender: model.GenderMale},
	{keyword: "revisitas", role: "Haga Revisitas"},
	{keyword: "empiece conversaciones", role: "Empiece conversaciones"},
	{keyword: "haga discípulos", role: "Haga discípulos"},
	{keyword: "explique sus creencias", role: "Explique sus creencias"},
}

const (
	readingMarker = "3. lectura de la biblia"
	bibleMarker   = "estudio bíblico de la congregación"
	needsMarker   = "necesidades de la congregación"
)

// Structure plans midweek meetings.
type Structure struct {
	layout Layout
}

// New creates a Structure over layout.
func New(layout Layout) *Structure {
	return &Structure{layout: layout}
}

// Labels returns every output row label in meeting order. With overflow
// the auxiliary room rows follow their primary.
func (s *Structure) Labels(overflow bool) []string {
	labels := []string{LabelChairman, LabelTreasures, LabelGems, LabelReading}
	if overflow {
		labels = append(labels, LabelReading+mirrorSuffix)
	}
	for i := 1; i <= s.ministrySlots(); i++ {
		l := ministryPrefix + strconv.Itoa(i)
		labels = append(labels, l)
		if overflow {
			labels = append(labels, l+mirrorSuffix)
		}
	}
	for i := 1; i <= maxLivingSlots; i++ {
		labels = append(labels, livingPrefix+strconv.Itoa(i))
	}
	return append(labels, LabelBible)
}

func (s *Structure) ministrySlots() int {
	return min(len(s.layout.MinistryRows), maxMinistrySlots)
}

// Plan returns the active slots of w in resolution order.
func (s *Structure) Plan(w Week) []Slot {
	top := s.layout.TopN
	slots := []Slot{{Label: LabelChairman, Role: RoleChairman, TopN: top.Chairman}}

	var treasures, gems bool
	for _, row := range s.layout.TreasuresRows {
		text := w.Cell(row)
		lead := fold(text)
		switch {
		case strings.HasPrefix(lead, "1.") && !treasures:
			treasures = true
			slots = append(slots, Slot{Label: LabelTreasures, Role: RoleTreasures, Text: text, TopN: top.Treasures})
		case strings.HasPrefix(lead, "2.") && !gems:
			gems = true
			slots = append(slots, Slot{Label: LabelGems, Role: RoleGems, Text: text, TopN: top.Treasures})
		}
	}

	if text := w.Cell(s.layout.ReadingRow); strings.HasPrefix(fold(text), fold(readingMarker)) {
		slots = append(slots, Slot{
			Label: LabelReading, Role: RoleReading, Text: text,
			Gender: model.GenderMale, TopN: top.Reading, Mirrorable: true,
		})
	}

	// Every non-empty row consumes an index, even when its slot is later skipped.
	index := 0
	for _, row := range s.layout.MinistryRows {
		if index >= maxMinistrySlots {
			break
		}
		text := w.Cell(row)
		if text == "" {
			continue
		}
		index++
		slot := ministrySlot(text)
		slot.Label = ministryPrefix + strconv.Itoa(index)
		slot.TopN = top.Ministry
		slots = append(slots, slot)
	}

	var living []Slot
	var bible *Slot
	for _, row := range s.layout.LivingRows {
		text := w.Cell(row)
		if text == "" {
			continue
		}
		lower := fold(text)
		switch {
		case strings.Contains(lower, fold(bibleMarker)):
			if bible == nil {
				bible = &Slot{Label: LabelBible, Role: RoleBible, Text: text, TopN: top.Living}
			}
		case strings.Contains(lower, fold(needsMarker)):
			living = append(living, Slot{Role: RoleNeeds, Text: text, TopN: top.Living})
		default:
			living = append(living, Slot{Role: RoleLiving, Text: text, TopN: top.Living})
		}
	}
	for i, slot := range living {
		if i >= maxLivingSlots {
			break
		}
		slot.Label = livingPrefix + strconv.Itoa(i+1)
		slots = append(slots, slot)
	}
	if bible != nil {
		slots = append(slots, *bible)
	}
	return slots
}

// ministrySlot infers the sub-role from keywords in text. Unmatched text
// falls back to the generic student role.
func ministrySlot(text string) Slot {
	lower := fold(text)
	for _, sr := range ministryRoles {
		if strings.Contains(lower, fold(sr.keyword)) {
			return Slot{
				Role: sr.role, Text: text, Gender: sr.gender,
				AskGender: sr.gender == model.GenderUnspecified, Mirrorable: true,
			}
		}
	}
	return Slot{Role: RoleStudent, Text: text, AskGender: true, Mirrorable: true}
}

// fold normalizes text for keyword matching: NFC composition, then case folding.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
