package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/andrei-lupu/cf-extract/constants"
)

// OwnerDetails carries everything extracted from Part II of the document:
// the current owners plus the registration history behind them.
type OwnerDetails struct {
	Owners          string
	Share           string
	AcquisitionMode string
	ActReference    string
	History         string
}

var (
	rePartIIStart  = regexp.MustCompile(`(?i)B\.\s*Partea\s+II`)
	rePartIIEnd    = regexp.MustCompile(`(?i)C\.\s*Partea\s+III`)
	reIntabulare   = regexp.MustCompile(`B(\d+)\s+[Ii]ntabulare`)
	reNextBBlock   = regexp.MustCompile(`\nB\d+\s`)
	reNoteBlock    = regexp.MustCompile(`(?i)B\d+\s+se\s+noteaza`)
	reRadiata      = regexp.MustCompile(`(?i)Radiata?\s+prin`)
	reCotaActuala  = regexp.MustCompile(`(?i)cota\s+actuala\s+(\d+/\d+)`)
	reCotaAny      = regexp.MustCompile(`(?i)cota\s+(?:actuala\s+)?(\d+/\d+)`)
	reActReference = regexp.MustCompile(`(?i)(Act\s+(?:Notarial|Administrativ|Judecatoresc)[^\n]+)`)

	// Numbered-owner scanning. Owner names follow "1)", "2)", ... and run
	// until the next list item, a registration-entry number/date, or a
	// section keyword at line start.
	reOwnerMarker     = regexp.MustCompile(`\d+\)\s*`)
	reOwnerTerminator = regexp.MustCompile(`\n\d+\)|\n\d{4,6}\s*/|\n(?:Act|OBSERV|B\d|A\d|Radiat|Document|se\s+notea)`)
	reOwnerName       = regexp.MustCompile(`^[A-Za-z][A-Za-z\s.,\-"'()]*$`)

	// Trailing marital/ownership-regime qualifiers stripped from names.
	reOwnerQualifier = regexp.MustCompile(`(?is),\s*(?:casatorit|necasatorit|ca\s+bun|bun\s+comun|bun\s+propriu|domeniu\s+privat).*`)
	reTrailingComma  = regexp.MustCompile(`,\s*$`)

	// History entries keep a slightly different qualifier set.
	historyQualifiers = []*regexp.Regexp{
		regexp.MustCompile(`(?is),\s*domeniu\s+privat.*`),
		regexp.MustCompile(`(?is),\s*in\s+indiviziune.*`),
		regexp.MustCompile(`(?is),\s*casatorit.*`),
	}

	// Registration-entry marker: "<request number> / DD/MM/YYYY".
	reEntryDate = regexp.MustCompile(`\d{4,6}\s*/\s*\d{2}/\d{2}/\d{4}`)
	reDMY       = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
)

// extractOwnerDetails isolates Part II and finds the authoritative ownership
// entry: the last intabulare block that is not a note, not a servitude, not
// cancelled, and whose current share is not the transferred-out sentinel 0/1.
func extractOwnerDetails(text string) OwnerDetails {
	partII, ok := sliceBetweenStrict(text, rePartIIStart, rePartIIEnd)
	if !ok {
		return OwnerDetails{Owners: constants.NoOwnerSection}
	}

	if strings.Contains(strings.ToLower(partII), "proprietar neidentificat") {
		return OwnerDetails{Owners: "Proprietar neidentificat", Share: "1/1", AcquisitionMode: "Lege"}
	}

	var owners []string
	var bestCota string

	for _, block := range intabulareBlocks(partII) {
		if reNoteBlock.MatchString(block) {
			continue
		}
		if strings.Contains(strings.ToUpper(block), "SERVITUTE") {
			continue
		}
		if reRadiata.MatchString(block) {
			continue
		}
		cotaMatch := reCotaActuala.FindStringSubmatch(block)
		if cotaMatch != nil && cotaMatch[1] == "0/1" {
			continue
		}

		blockOwners := scanNumberedOwners(block, cleanOwnerName, 0)
		if len(blockOwners) == 0 {
			continue
		}
		// Last valid block with owners wins: most recent entry is authoritative.
		owners = blockOwners
		if cotaMatch != nil {
			bestCota = cotaMatch[1]
		} else if any := reCotaAny.FindStringSubmatch(block); any != nil {
			bestCota = any[1]
		}
	}

	if len(owners) == 0 {
		owners = ownerFallbacks(partII, text)
	}

	ownerStr := constants.NotDetected
	if len(owners) > 0 {
		if len(owners) > 3 {
			owners = owners[:3]
		}
		ownerStr = strings.Join(owners, " & ")
	}

	cota := bestCota
	if cota == "" {
		if m := reCotaAny.FindStringSubmatch(partII); m != nil {
			cota = m[1]
		}
	}

	act := ""
	if m := reActReference.FindStringSubmatch(partII); m != nil {
		act = strings.TrimSpace(m[1])
		if len(act) > 50 {
			act = act[:50]
		}
	}

	return OwnerDetails{
		Owners:          ownerStr,
		Share:           cota,
		AcquisitionMode: acquisitionMode(partII),
		ActReference:    act,
		History:         extractOwnerHistory(partII),
	}
}

// intabulareBlocks splits Part II into registration blocks, each starting at
// a "B<n> Intabulare" marker and running to the next marker (or the next
// B-row, or the end of the section).
func intabulareBlocks(partII string) []string {
	starts := reIntabulare.FindAllStringIndex(partII, -1)
	blocks := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(partII)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		} else if next := reNextBBlock.FindStringIndex(partII[loc[1]:]); next != nil {
			end = loc[1] + next[0]
		}
		blocks = append(blocks, partII[loc[0]:end])
	}
	return blocks
}

// nameCleaner strips trailing qualifiers from a raw owner name.
type nameCleaner func(string) string

func cleanOwnerName(raw string) string {
	name := reOwnerQualifier.ReplaceAllString(strings.TrimSpace(raw), "")
	name = reTrailingComma.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

func cleanHistoryName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, re := range historyQualifiers {
		name = re.ReplaceAllString(name, "")
	}
	name = reTrailingComma.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// scanNumberedOwners walks "1) NAME" list items inside block. max caps the
// result (0 = unlimited). Items whose candidate text falls outside the name
// character set, or that are registration boilerplate, are dropped.
func scanNumberedOwners(block string, clean nameCleaner, max int) []string {
	var owners []string
	for _, loc := range reOwnerMarker.FindAllStringIndex(block, -1) {
		region := block[loc[1]:]
		if term := reOwnerTerminator.FindStringIndex(region); term != nil {
			region = region[:term[0]]
		}
		if !reOwnerName.MatchString(region) {
			continue
		}

		name := clean(region)
		if len(name) <= 2 {
			continue
		}
		upper := strings.ToUpper(name)
		if strings.Contains(upper, "INTABULARE") || strings.Contains(upper, "DREPT DE") {
			continue
		}
		if !contains(owners, name) {
			owners = append(owners, name)
			if max > 0 && len(owners) >= max {
				break
			}
		}
	}
	return owners
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var stateEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(STATUL\s+ROMAN)`),
	regexp.MustCompile(`(?i)(AGENTIA\s+DOMENIILOR\s+STATULUI)`),
	regexp.MustCompile(`(?i)(ADMINISTRATIA\s+NATIONALA[^,\n]*)`),
	regexp.MustCompile(`(?i)(REGIA\s+NATIONALA[^,\n]*)`),
	regexp.MustCompile(`(?i)(SOCIETATEA\s+NATIONALA[^,\n]*)`),
	regexp.MustCompile(`(?i)(CONSILIUL\s+LOCAL[^,\n]*)`),
	regexp.MustCompile(`(?i)(PRIMARIA[^,\n]*)`),
}

var (
	reCompany      = regexp.MustCompile(`(?:S\.C\.\s*)?([A-Za-z\s.\-]+(?:S\.A\.|S\.R\.L\.|\bSA\b|\bSRL\b))`)
	reMuniSection  = regexp.MustCompile(`((?:MUNICIPIUL|JUDETUL|COMUNA|ORASUL|Municipiul|Judetul|Comuna|Orasul)\s+[A-Za-z]+)`)
	reMuniFullText = regexp.MustCompile(`((?:MUNICIPIUL|JUDETUL|COMUNA|ORASUL)\s+[A-Z]+)`)
	reUpperPerson  = regexp.MustCompile(`1\)\s*([A-Z][A-Z\-]+\s+[A-Z][A-Za-z\-]+)`)
)

// ownerFallback is one last-resort owner heuristic over (Part II, full text).
type ownerFallback struct {
	name string
	fn   func(partII, fullText string) []string
}

// ownerFallbacks runs when no intabulare block yielded a name. First
// non-empty strategy wins.
var fallbackChain = []ownerFallback{
	{"numbered-anywhere", func(partII, _ string) []string {
		return scanNumberedOwners(partII, cleanOwnerName, 0)
	}},
	{"state-entity", func(partII, _ string) []string {
		for _, re := range stateEntityPatterns {
			if m := re.FindStringSubmatch(partII); m != nil {
				return []string{strings.TrimSpace(m[1])}
			}
		}
		return nil
	}},
	{"company-suffix", func(partII, _ string) []string {
		if m := reCompany.FindStringSubmatch(partII); m != nil {
			// More than just the bare "SA"/"SRL" suffix.
			if name := strings.TrimSpace(m[1]); len(name) > 3 {
				return []string{name}
			}
		}
		return nil
	}},
	{"municipality-section", func(partII, _ string) []string {
		if m := reMuniSection.FindStringSubmatch(partII); m != nil {
			return []string{strings.TrimSpace(m[1])}
		}
		return nil
	}},
	{"municipality-document", func(_, fullText string) []string {
		if m := reMuniFullText.FindStringSubmatch(fullText); m != nil {
			return []string{strings.TrimSpace(m[1])}
		}
		return nil
	}},
	{"uppercase-person", func(partII, _ string) []string {
		if m := reUpperPerson.FindStringSubmatch(partII); m != nil {
			return []string{strings.TrimSpace(m[1])}
		}
		return nil
	}},
}

func ownerFallbacks(partII, fullText string) []string {
	for _, fb := range fallbackChain {
		if owners := fb.fn(partII, fullText); len(owners) > 0 {
			return owners
		}
	}
	return nil
}

// acquisitionMode maps Part II wording onto the closed acquisition-mode set.
// Priority order decides when several terms appear; first match wins.
func acquisitionMode(partII string) string {
	lower := strings.ToLower(partII)
	switch {
	case strings.Contains(lower, "vanzare"), strings.Contains(lower, "cumparare"):
		return "Cumparare"
	case strings.Contains(lower, "donatie"):
		return "Donatie"
	case strings.Contains(lower, "mostenire"), strings.Contains(lower, "succesiune"):
		return "Mostenire"
	case strings.Contains(lower, "reconstituire"):
		return "Reconstituire"
	case strings.Contains(lower, "lege"):
		return "Lege"
	case strings.Contains(lower, "intretinere"):
		return "Intretinere"
	}
	return ""
}

// extractOwnerHistory renders every valid dated intabulare entry in Part II
// as "YYYY-MM-DD: N1, N2" items, oldest first, joined with " | ". Cancelled
// registrations, notes and servitudes drop out; what remains is the chain of
// title still standing. A transferred-out share (cota 0/1) does not
// invalidate an entry here: past owners are exactly what the history is for.
func extractOwnerHistory(partII string) string {
	markers := reEntryDate.FindAllStringIndex(partII, -1)
	var entries []string

	for i, loc := range markers {
		dateStr := partII[loc[0]:loc[1]]
		end := len(partII)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		content := partII[loc[1]:end]

		dm := reDMY.FindStringSubmatch(dateStr)
		if dm == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(content), "intabulare") {
			continue
		}
		if reNoteBlock.MatchString(content) || reRadiata.MatchString(content) {
			continue
		}
		if strings.Contains(strings.ToUpper(content), "SERVITUTE") {
			continue
		}

		owners := scanNumberedOwners(content, cleanHistoryName, 5)
		if len(owners) == 0 {
			continue
		}
		entries = append(entries, fmt.Sprintf("%s-%s-%s: %s", dm[3], dm[2], dm[1], strings.Join(owners, ", ")))
	}

	if len(entries) == 0 {
		return ""
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i][:10] < entries[j][:10]
	})
	return strings.Join(entries, " | ")
}
