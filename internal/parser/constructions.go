package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Construction is one building listed on the parcel.
type Construction struct {
	ID               string // "C1", "C2", ...
	Destination      string
	BuiltSurface     string
	DevelopedSurface string
	Year             string
	Material         string
	FloorNotes       string // "P+1+M" style encoding
	FloorCount       string
}

var (
	rePartAStart = regexp.MustCompile(`(?i)A\.\s*Partea\s+I`)
	rePartBStart = regexp.MustCompile(`(?i)B\.\s*Partea\s+II`)

	// Inline layout: "A1.1 31573-C1" rows embedded in the identification
	// section, with attributes spread over the following lines.
	reA1xStart = regexp.MustCompile(`\*?A1\.(\d+)\s+(?:CAD:\s*)?(\d+-C\d+)`)

	// Standalone layout: a "Date referitoare la constructii" section keyed
	// by "<number>-C<index>" identifiers.
	reConsSection = regexp.MustCompile(`(?is)Date\s+referitoare\s+la\s+constructii`)
	reConsSectEnd = regexp.MustCompile(`(?i)Lungime\s+Segmente|Extrase\s+pentru|Document\s+care`)
	reConsID      = regexp.MustCompile(`\d+-C\d+`)

	reSurfSol    = regexp.MustCompile(`(?i)S\.\s*construita\s+la\s+sol:\s*(\d+(?:[.,]\d+)?)\s*mp`)
	reSurfInline = regexp.MustCompile(`(?i)suprafata\s+(?:construita\s+)?de\s+(\d+(?:[.,]\d+)?)\s*m\.?p`)
	reSurfSC     = regexp.MustCompile(`(?i)s\.c\.?\s+de\s+(\d+(?:[.,]\d+)?)\s*m\.?p`)
	reSurfLoose  = regexp.MustCompile(`(?i)S\.\s*construita[^:]*:?\s*(\d+)`)
	reSurfOwnCol = regexp.MustCompile(`\n(\d{2,5})\n`)
	reSurfByType = regexp.MustCompile(`(?i)(?:constructii|anexa|locuinta|garaj)\s*\n?\s*(\d{2,5})`)
	reSurfAnyNum = regexp.MustCompile(`(\d{2,5})`)

	reDesf    = regexp.MustCompile(`(?i)desfasurata:?\s*(\d+(?:\.\d+)?)\s*mp`)
	reDesfEq  = regexp.MustCompile(`(?i)Sup\.?\s*desfasurata\s*=\s*(\d+)`)
	reLevels  = regexp.MustCompile(`(?i)Nr\.\s*niveluri:?\s*(\d+)`)
	reYearAn  = regexp.MustCompile(`(?i),?\s*an\s+(19\d{2}|20\d{2})`)
	reYearLbl = regexp.MustCompile(`(?i)Anul\s+construirii\s+(19\d{2}|20\d{2})`)
	reYearAny = regexp.MustCompile(`\b(19[5-9]\d|20[0-2]\d)\b`)
	reFloors  = regexp.MustCompile(`(?i)\b((?:S\+)?P(?:\+\d+)?(?:\+M)?)\b`)
)

// roundNum parses a decimal with either separator and rounds to an integer.
func roundNum(s string) string {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return ""
	}
	return strconv.Itoa(int(math.Round(f)))
}

var inlineSurfaceChain = []strategy{
	{"sol-label", func(block string) string {
		if m := reSurfSol.FindStringSubmatch(block); m != nil {
			return roundNum(m[1])
		}
		return ""
	}},
	{"prose", func(block string) string {
		if m := reSurfInline.FindStringSubmatch(block); m != nil {
			return roundNum(m[1])
		}
		return ""
	}},
	{"sc-abbrev", func(block string) string {
		if m := reSurfSC.FindStringSubmatch(block); m != nil {
			return roundNum(m[1])
		}
		return ""
	}},
}

var developedSurfaceChain = []strategy{
	{"label", func(block string) string {
		if m := reDesf.FindStringSubmatch(block); m != nil {
			return roundNum(m[1])
		}
		return ""
	}},
	{"equals", func(block string) string {
		if m := reDesfEq.FindStringSubmatch(block); m != nil {
			return m[1]
		}
		return ""
	}},
}

var yearChain = []strategy{
	{"an-suffix", func(block string) string {
		if m := reYearAn.FindStringSubmatch(block); m != nil {
			return m[1]
		}
		return ""
	}},
	{"anul-construirii", func(block string) string {
		if m := reYearLbl.FindStringSubmatch(block); m != nil {
			return m[1]
		}
		return ""
	}},
	{"standalone-year", func(block string) string {
		if m := reYearAny.FindStringSubmatch(block); m != nil {
			return m[1]
		}
		return ""
	}},
}

// destEntry maps block keywords onto a destination category. Order is
// priority: most specific first, regardless of where the keyword occurs.
type destEntry struct {
	keywords []string
	dest     string
}

var inlineDestTable = []destEntry{
	{[]string{"spatii comerciale", "spatiu comercial"}, "Spatii Comerciale"},
	{[]string{"pensiune"}, "Pensiune"},
	{[]string{"cheu", "bazin"}, "Cheu"},
	{[]string{"vestiar"}, "Vestiar"},
	{[]string{"sediu"}, "Sediu"},
	{[]string{"casa de locuit", "casa"}, "Locuinta"},
	{[]string{"locuinta", "locuinte"}, "Locuinta"},
	{[]string{"constructii de locuinte"}, "Locuinta"},
	// Garaj outranks anexa: garage blocks routinely mention "anexa" too.
	{[]string{"garaj"}, "Garaj"},
	{[]string{"constructii anexa"}, "Anexa"},
	{[]string{"anexa", "anexe"}, "Anexa"},
	{[]string{"grajd"}, "Grajd"},
	{[]string{"magazie"}, "Magazie"},
	{[]string{"remiza"}, "Remiza"},
	{[]string{"post trafo"}, "Post Trafo"},
	{[]string{"birou", "birouri"}, "Birouri"},
	{[]string{"cabina"}, "Cabina"},
	{[]string{"punct termic"}, "Punct Termic"},
	{[]string{"constructii industriale", "industrial"}, "Industrial"},
	{[]string{"laborator", "cofetarie"}, "Industrial"},
	{[]string{"atelier"}, "Atelier"},
	{[]string{"depozit"}, "Depozit"},
	{[]string{"hala"}, "Hala"},
	{[]string{"imprejmuire", "gard"}, "Imprejmuire"},
	{[]string{"sopron"}, "Sopron"},
	{[]string{"beci", "pivnita"}, "Beci"},
	{[]string{"wc", "toaleta"}, "WC"},
	{[]string{"terasa"}, "Terasa"},
	{[]string{"centrala"}, "Centrala"},
	{[]string{"statie"}, "Statie"},
	{[]string{"piscina"}, "Piscina"},
}

var sectionDestTable = []destEntry{
	{[]string{"spatii comerciale", "spatiu comercial"}, "Spatii Comerciale"},
	{[]string{"pensiune"}, "Pensiune"},
	{[]string{"cheu", "bazin"}, "Cheu"},
	{[]string{"vestiar"}, "Vestiar"},
	{[]string{"sediu"}, "Sediu"},
	{[]string{"locuinta", "locuinte"}, "Locuinta"},
	{[]string{"garaj"}, "Garaj"},
	{[]string{"anexa"}, "Anexa"},
	{[]string{"magazie"}, "Magazie"},
	{[]string{"remiza"}, "Remiza"},
	{[]string{"post trafo"}, "Post Trafo"},
	{[]string{"birou"}, "Birouri"},
	{[]string{"cabina"}, "Cabina"},
	{[]string{"punct termic"}, "Punct Termic"},
	{[]string{"industrial"}, "Industrial"},
	{[]string{"atelier"}, "Atelier"},
	{[]string{"depozit"}, "Depozit"},
	{[]string{"hala"}, "Hala"},
	{[]string{"imprejmuire", "gard"}, "Imprejmuire"},
	{[]string{"sopron"}, "Sopron"},
	{[]string{"beci", "pivnita"}, "Beci"},
	{[]string{"wc", "toaleta"}, "WC"},
	{[]string{"terasa"}, "Terasa"},
	{[]string{"centrala"}, "Centrala"},
	{[]string{"statie"}, "Statie"},
	{[]string{"piscina"}, "Piscina"},
	{[]string{"piata"}, "Piata"},
}

func classifyDestination(block string, table []destEntry) string {
	lower := strings.ToLower(block)
	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.dest
			}
		}
	}
	return "Cladire"
}

var materialTable = []destEntry{
	{[]string{"beton"}, "Beton"},
	{[]string{"caramida"}, "Caramida"},
	{[]string{"lemn"}, "Lemn"},
	{[]string{"paianta"}, "Paianta"},
	{[]string{"metal"}, "Metal"},
}

func classifyMaterial(block string) string {
	lower := strings.ToLower(block)
	for _, e := range materialTable {
		if strings.Contains(lower, e.keywords[0]) {
			return e.dest
		}
	}
	return ""
}

func floorNotes(block string) string {
	if m := reFloors.FindStringSubmatch(block); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func floorCount(block string) string {
	if m := reLevels.FindStringSubmatch(block); m != nil {
		return m[1]
	}
	return ""
}

// extractConstructions tries the inline A1.x layout first; only when it
// yields nothing does the standalone construction section run. Documents that
// carry both list more buildings in the inline table.
func extractConstructions(text string) []Construction {
	if buildings := inlineConstructions(text); len(buildings) > 0 {
		backfillSurfaces(text, buildings)
		return buildings
	}
	return sectionConstructions(text)
}

func inlineConstructions(text string) []Construction {
	partA, ok := sliceBetween(text, rePartAStart, rePartBStart)
	if !ok {
		return nil
	}

	starts := reA1xStart.FindAllStringSubmatchIndex(partA, -1)
	if len(starts) == 0 {
		return nil
	}

	buildings := make([]Construction, 0, len(starts))
	for i, loc := range starts {
		idx := partA[loc[2]:loc[3]]    // A1.<idx>
		fullID := partA[loc[4]:loc[5]] // <cad>-C<n>
		cid := "C" + idx
		if dash := strings.Index(fullID, "-"); dash >= 0 {
			cid = fullID[dash+1:]
		}

		end := len(partA)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		block := partA[loc[0]:end]

		surface, _ := runChain(inlineSurfaceChain, block)
		developed, _ := runChain(developedSurfaceChain, block)
		year, _ := runChain(yearChain, block)

		buildings = append(buildings, Construction{
			ID:               cid,
			Destination:      classifyDestination(block, inlineDestTable),
			BuiltSurface:     surface,
			DevelopedSurface: developed,
			Year:             year,
			Material:         classifyMaterial(block),
			FloorNotes:       floorNotes(block),
			FloorCount:       floorCount(block),
		})
	}
	return buildings
}

// backfillSurfaces fills missing built surfaces from Part II prose such as
// "constructia C1 in suprafata construita de 15 m.p.".
func backfillSurfaces(text string, buildings []Construction) {
	partB, ok := sliceBetween(text, rePartBStart, rePartIIEnd)
	if !ok {
		return
	}
	for i := range buildings {
		if buildings[i].BuiltSurface != "" {
			continue
		}
		num := strings.TrimPrefix(buildings[i].ID, "C")
		re := regexp.MustCompile(`(?i)constructi[ai]\s+C` + regexp.QuoteMeta(num) +
			`\s+(?:in\s+)?(?:suprafata\s+(?:construita\s+)?de|s\.c\.?\s+de)\s+(\d+(?:[.,]\d+)?)\s*m\.?p`)
		if m := re.FindStringSubmatch(partB); m != nil {
			buildings[i].BuiltSurface = roundNum(m[1])
		}
	}
}

func sectionConstructions(text string) []Construction {
	section, ok := sliceBetween(text, reConsSection, reConsSectEnd)
	if !ok {
		return nil
	}

	ids := reConsID.FindAllStringIndex(section, -1)
	if len(ids) == 0 {
		return nil
	}

	buildings := make([]Construction, 0, len(ids))
	for i, loc := range ids {
		fullID := section[loc[0]:loc[1]]
		end := len(section)
		if i+1 < len(ids) {
			end = ids[i+1][0]
		}
		chunk := section[loc[1]:end]

		// The surface column sometimes precedes the ID on the same line.
		preText := ""
		if nl := strings.LastIndex(section[:loc[0]], "\n"); nl >= 0 {
			preText = section[nl:loc[0]]
		}

		cid := fullID
		if dash := strings.Index(fullID, "-"); dash >= 0 {
			cid = fullID[dash+1:]
		}

		buildings = append(buildings, Construction{
			ID:               cid,
			Destination:      classifyDestination(chunk, sectionDestTable),
			BuiltSurface:     sectionSurface(chunk, preText),
			DevelopedSurface: first(developedSurfaceChain, chunk),
			Year:             first(yearChain, chunk),
			Material:         classifyMaterial(chunk),
			FloorNotes:       floorNotes(chunk),
			FloorCount:       floorCount(chunk),
		})
	}
	return buildings
}

func first(chain []strategy, text string) string {
	v, _ := runChain(chain, text)
	return v
}

// sectionSurface resolves the built surface in the standalone layout, where
// the value may sit in a labeled field, its own table column, inline after
// the destination text, or on the line before the construction ID.
func sectionSurface(chunk, preText string) string {
	if m := reSurfLoose.FindStringSubmatch(chunk); m != nil {
		return m[1]
	}
	for _, m := range reSurfOwnCol.FindAllStringSubmatch(chunk, -1) {
		if n := surfaceInRange(m[1]); n != "" {
			return n
		}
	}
	if m := reSurfByType.FindStringSubmatch(chunk); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && !(n > 1900 && n < 2030) {
			return m[1]
		}
	}
	if preText != "" {
		for _, m := range reSurfAnyNum.FindAllStringSubmatch(preText, -1) {
			if n := surfaceInRange(m[1]); n != "" {
				return n
			}
		}
	}
	return ""
}

// surfaceInRange accepts values plausible as square meters and rejects years.
func surfaceInRange(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return ""
	}
	if n >= 10 && n <= 50000 && !(n > 1900 && n < 2030) {
		return s
	}
	return ""
}
