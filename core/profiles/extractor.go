// ABOUTME: Heuristic profile extraction finds people, roles, companies and quotes in article text
// ABOUTME: Scores each person by the evidence found and merges surname-only mentions

package profiles

import (
	"regexp"
	"strings"
	"unicode"

	"newsnex-api/core/domain"
)

// Confidence weights
const (
	baseConfidence     = 50
	roleBonus          = 20
	companyBonus       = 20
	quoteBonus         = 5
	mentionBonus       = 2
	maxMentionBonus    = 5
	maxRoleDistance    = 60
	maxCompanyDistance = 100
	maxNameTokens      = 4
)

var (
	wordRe         = regexp.MustCompile(`\p{L}[\p{L}\p{M}'’\-]*`)
	nameTokenRe    = regexp.MustCompile(`^(?:Mc|Mac|O['’]|D['’])?\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)?$`)
	quoteRe        = regexp.MustCompile(`"([^"]{2,})"|“([^”]{2,})”`)
	roleRe         = regexp.MustCompile(rolePattern)
	companyAfterRe = regexp.MustCompile(`^\s*,?\s*(?:at|of|for|from|with)\s+(?:the\s+)?(` + companyPattern + `)`)
	companyNearRe  = regexp.MustCompile(`\b(?:at|from)\s+(?:the\s+)?(` + companyPattern + `)`)
	companyOfRe    = regexp.MustCompile(`^\s*,?\s*of\s+(?:the\s+)?(` + companyPattern + `)`)
	companyPreRe   = regexp.MustCompile(`(` + companyPattern + `)\s+$`)
	suffixRe       = regexp.MustCompile(`\p{Lu}[\p{L}\p{N}&\-]*(?:\s+\p{Lu}[\p{L}\p{N}&\-]*){0,2}\s+(?:` + corporateSuffixes + `)`)
	speechRe       = regexp.MustCompile(`(?i)\b(?:` + speechVerbs + `)\b`)
	pronounSpeech  = regexp.MustCompile(`(?i)\b(?:(?:he|she|they)\s+(?:` + speechVerbs + `)|(?:said|says|added)\s+(?:he|she))\b`)
)

// Extractor finds people in article text
type Extractor struct{}

// NewExtractor creates a profile extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// person accumulates evidence for one individual across sentences
type person struct {
	name     string
	key      string
	surname  string
	role     string
	company  string
	quote    string
	mentions int
	lastSeen int
}

type mention struct {
	person     int
	start, end int
}

type span struct {
	start, end int
}

// run holds extraction state for a single text
type run struct {
	people     []*person
	byKey      map[string]int
	lastPerson int
}

// Extract returns profiles in order of first appearance, filtered by the
// minimum confidence and truncated to the maximum count
func (e *Extractor) Extract(text string, opts domain.ExtractionOptions) []domain.Profile {
	r := &run{byKey: make(map[string]int), lastPerson: -1}
	for i, sentence := range SplitSentences(text) {
		r.sentence(i, sentence)
	}
	return r.profiles(opts)
}

func (r *run) sentence(index int, sentence string) {
	masked, quotes := maskQuotes(sentence)
	mentions := r.mentions(index, masked)

	seen := make(map[int]bool)
	for _, m := range mentions {
		if !seen[m.person] {
			seen[m.person] = true
			r.people[m.person].mentions++
		}
	}

	r.attributeRoles(masked, mentions)
	r.attributeCompanies(masked, mentions)
	r.attributeQuote(masked, quotes, mentions)

	for _, m := range mentions {
		r.people[m.person].lastSeen = index
	}
	if len(mentions) > 0 {
		r.lastPerson = mentions[len(mentions)-1].person
	}
}

// maskQuotes blanks quoted passages so names and roles inside them are
// ignored, and returns the quoted texts
func maskQuotes(sentence string) (string, []string) {
	var quotes []string
	masked := []byte(sentence)
	for _, m := range quoteRe.FindAllStringSubmatchIndex(sentence, -1) {
		for i := m[0]; i < m[1]; i++ {
			masked[i] = ' '
		}
		text := ""
		if m[2] >= 0 {
			text = sentence[m[2]:m[3]]
		} else if m[4] >= 0 {
			text = sentence[m[4]:m[5]]
		}
		if q := cleanQuote(text); q != "" {
			quotes = append(quotes, q)
		}
	}
	return string(masked), quotes
}

func cleanQuote(q string) string {
	q = strings.TrimSpace(q)
	q = strings.TrimRight(q, ",;:")
	q = strings.TrimSpace(q)
	if !strings.Contains(q, " ") {
		return ""
	}
	return q
}

// token is a word in a sentence, classified for name detection
type token struct {
	text       string
	start, end int
	initial    bool
	possessive bool
}

// mentions finds full names and surname references in the masked sentence
func (r *run) mentions(index int, masked string) []mention {
	var (
		out     []mention
		segment []token
	)

	flush := func() {
		if m, ok := r.resolve(index, segment); ok {
			out = append(out, m)
		}
		segment = segment[:0]
	}

	for _, loc := range wordRe.FindAllStringIndex(masked, -1) {
		tok := token{text: masked[loc[0]:loc[1]], start: loc[0], end: loc[1]}
		tok.text = strings.TrimRight(tok.text, "-'’")
		if strings.HasSuffix(tok.text, "'s") || strings.HasSuffix(tok.text, "’s") {
			tok.text = strings.TrimSuffix(strings.TrimSuffix(tok.text, "'s"), "’s")
			tok.possessive = true
		}

		runes := []rune(tok.text)
		if len(runes) == 1 && unicode.IsUpper(runes[0]) && loc[1] < len(masked) && masked[loc[1]] == '.' {
			tok.initial = true
			tok.end = loc[1] + 1
		}

		isName := !tok.initial && nameTokenRe.MatchString(tok.text) && !stopWords[strings.ToLower(tok.text)]
		if !isName && !tok.initial {
			flush()
			continue
		}

		if len(segment) > 0 {
			prev := segment[len(segment)-1]
			if prev.possessive || masked[prev.end:tok.start] != " " {
				flush()
			}
		}
		if len(segment) == 0 && tok.initial {
			continue
		}
		segment = append(segment, tok)
	}
	flush()
	return out
}

// resolve turns a run of capitalized words into a mention of a new or known person
func (r *run) resolve(index int, segment []token) (mention, bool) {
	for len(segment) > 0 && segment[len(segment)-1].initial {
		segment = segment[:len(segment)-1]
	}
	if len(segment) == 0 {
		return mention{}, false
	}

	var names []string
	for _, t := range segment {
		if !t.initial {
			names = append(names, t.text)
		}
	}
	start, end := segment[0].start, segment[len(segment)-1].end

	if len(names) == 1 {
		idx := r.bySurname(strings.ToLower(names[0]))
		if idx < 0 {
			return mention{}, false
		}
		return mention{person: idx, start: start, end: end}, true
	}

	if len(names) > maxNameTokens || placePrefixes[strings.ToLower(names[0])] {
		return mention{}, false
	}
	for _, n := range names {
		if orgMarkers[strings.ToLower(n)] {
			return mention{}, false
		}
	}

	key := strings.ToLower(strings.Join(names, " "))
	idx, ok := r.byKey[key]
	if !ok {
		parts := make([]string, len(segment))
		for i, t := range segment {
			parts[i] = t.text
			if t.initial {
				parts[i] += "."
			}
		}
		idx = len(r.people)
		r.people = append(r.people, &person{
			name:     strings.Join(parts, " "),
			key:      key,
			surname:  strings.ToLower(names[len(names)-1]),
			lastSeen: index,
		})
		r.byKey[key] = idx
	}
	return mention{person: idx, start: start, end: end}, true
}

// bySurname returns the most recently seen person with the given surname
func (r *run) bySurname(surname string) int {
	best := -1
	for i, p := range r.people {
		if p.surname == surname && (best < 0 || p.lastSeen >= r.people[best].lastSeen) {
			best = i
		}
	}
	return best
}

// attributeRoles gives each mentioned person without a role the nearest
// unclaimed title in the sentence. A title directly before a name belongs to
// that name ("Morgan Stanley economist Ellen Zentner").
func (r *run) attributeRoles(masked string, mentions []mention) {
	locs := roleRe.FindAllStringIndex(masked, -1)
	if len(locs) == 0 {
		return
	}
	claimed := make([]bool, len(locs))

	for _, m := range mentions {
		p := r.people[m.person]
		if p.role != "" {
			continue
		}
		for i, loc := range locs {
			if claimed[i] || loc[1] > m.start || strings.Trim(masked[loc[1]:m.start], " ,") != "" {
				continue
			}
			claimed[i] = true
			r.assignRole(masked, p, span{loc[0], loc[1]}, m)
			break
		}
	}

	for _, m := range mentions {
		p := r.people[m.person]
		if p.role != "" {
			continue
		}

		best, bestGap := -1, maxRoleDistance+1
		for i, loc := range locs {
			if claimed[i] || overlaps(span{loc[0], loc[1]}, span{m.start, m.end}) {
				continue
			}
			gap := distance(span{loc[0], loc[1]}, span{m.start, m.end})
			if gap < bestGap && !otherBetween(mentions, m, span{loc[0], loc[1]}) {
				best, bestGap = i, gap
			}
		}
		if best < 0 {
			continue
		}

		claimed[best] = true
		r.assignRole(masked, p, span{locs[best][0], locs[best][1]}, m)
	}
}

func (r *run) assignRole(masked string, p *person, role span, m mention) {
	p.role = normalizeRole(masked[role.start:role.end])
	if p.company == "" {
		p.company = r.roleCompany(masked, role, m)
	}
}

// roleCompany finds the organisation attached to a title, either after it
// ("CEO of Acme") or before it when the title directly precedes the name
// ("Acme CEO Jane Doe")
func (r *run) roleCompany(masked string, role span, m mention) string {
	if sub := companyAfterRe.FindStringSubmatch(masked[role.end:]); sub != nil {
		if c := r.cleanCompany(sub[1]); c != "" {
			return c
		}
	}

	// The run before a pre-name title may already be taken for a person; it
	// is dropped from the results once it is known to be a company.
	if role.end <= m.start && strings.Trim(masked[role.end:m.start], " ,") == "" {
		if sub := companyPreRe.FindStringSubmatch(masked[:role.start]); sub != nil {
			return trimCompany(sub[1])
		}
	}
	return ""
}

// attributeCompanies looks for "of Company" directly after each name or "at
// Company" nearby, then falls back to a corporate-suffixed name when only one
// person is mentioned
func (r *run) attributeCompanies(masked string, mentions []mention) {
	for i, m := range mentions {
		p := r.people[m.person]
		if p.company != "" {
			continue
		}

		end := m.end + maxCompanyDistance
		if i+1 < len(mentions) && mentions[i+1].start < end {
			end = mentions[i+1].start
		}
		if end > len(masked) {
			end = len(masked)
		}
		if end <= m.end {
			continue
		}

		if sub := companyOfRe.FindStringSubmatch(masked[m.end:end]); sub != nil {
			p.company = r.cleanCompany(sub[1])
		}
		if p.company == "" {
			if sub := companyNearRe.FindStringSubmatch(masked[m.end:end]); sub != nil {
				p.company = r.cleanCompany(sub[1])
			}
		}
	}

	if len(distinct(mentions)) == 1 {
		p := r.people[mentions[0].person]
		if p.company == "" {
			if c := suffixRe.FindString(masked); c != "" {
				p.company = r.cleanCompany(c)
			}
		}
	}
}

// attributeQuote assigns the first quote in the sentence to its speaker: the
// only person mentioned, the person nearest a speech verb, or the previous
// sentence's person for pronoun attributions
func (r *run) attributeQuote(masked string, quotes []string, mentions []mention) {
	if len(quotes) == 0 {
		return
	}

	speaker := -1
	switch people := distinct(mentions); {
	case len(people) == 1:
		speaker = people[0]
	case len(people) > 1:
		verbs := speechRe.FindAllStringIndex(masked, -1)
		bestGap := len(masked) + 1
		for _, m := range mentions {
			for _, v := range verbs {
				if gap := distance(span{v[0], v[1]}, span{m.start, m.end}); gap < bestGap {
					speaker, bestGap = m.person, gap
				}
			}
		}
	default:
		if pronounSpeech.MatchString(masked) {
			speaker = r.lastPerson
		}
	}

	if speaker >= 0 && r.people[speaker].quote == "" {
		r.people[speaker].quote = quotes[0]
	}
}

// cleanCompany trims the company and rejects names of people
func (r *run) cleanCompany(raw string) string {
	s := trimCompany(raw)
	if s == "" {
		return ""
	}

	key := strings.ToLower(s)
	if _, ok := r.byKey[key]; ok {
		return ""
	}
	for _, p := range r.people {
		if p.surname == key {
			return ""
		}
	}
	return s
}

// trimCompany strips punctuation, possessives and surrounding stop words
func trimCompany(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, ",;:")
	s = strings.TrimSuffix(strings.TrimSuffix(s, "'s"), "’s")

	words := strings.Fields(s)
	for len(words) > 0 && stopWords[strings.ToLower(strings.Trim(words[0], ".,"))] {
		words = words[1:]
	}
	for len(words) > 0 && stopWords[strings.ToLower(strings.Trim(words[len(words)-1], ".,"))] {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return ""
	}

	last := words[len(words)-1]
	if strings.HasSuffix(last, ".") && !companyAbbreviations[strings.ToLower(strings.TrimSuffix(last, "."))] {
		words[len(words)-1] = strings.TrimSuffix(last, ".")
	}
	return strings.Join(words, " ")
}

func (r *run) profiles(opts domain.ExtractionOptions) []domain.Profile {
	companies := make(map[string]bool)
	for _, p := range r.people {
		if p.company != "" {
			companies[strings.ToLower(p.company)] = true
		}
	}

	out := make([]domain.Profile, 0, len(r.people))
	for _, p := range r.people {
		if companies[p.key] {
			continue
		}
		profile := domain.Profile{
			Name:       p.name,
			Role:       p.role,
			Company:    p.company,
			Quote:      p.quote,
			Mentions:   p.mentions,
			Confidence: score(p),
		}
		if profile.Confidence < opts.MinConfidence {
			continue
		}
		out = append(out, profile)
		if opts.MaxProfiles > 0 && len(out) == opts.MaxProfiles {
			break
		}
	}

	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// score computes confidence from the evidence found for a person
func score(p *person) int {
	c := baseConfidence
	if p.role != "" {
		c += roleBonus
	}
	if p.company != "" {
		c += companyBonus
	}
	if p.quote != "" {
		c += quoteBonus
	}
	if p.mentions > 1 {
		bonus := (p.mentions - 1) * mentionBonus
		if bonus > maxMentionBonus {
			bonus = maxMentionBonus
		}
		c += bonus
	}
	return domain.ClampConfidence(c)
}

func normalizeRole(raw string) string {
	words := strings.Fields(raw)
	for i, w := range words {
		lw := strings.ToLower(w)
		switch {
		case roleAcronyms[lw]:
			words[i] = strings.ToUpper(lw)
		case roleLowerWords[lw]:
			words[i] = lw
		default:
			runes := []rune(lw)
			runes[0] = unicode.ToUpper(runes[0])
			words[i] = string(runes)
		}
	}
	return strings.Join(words, " ")
}

func distinct(mentions []mention) []int {
	var out []int
	seen := make(map[int]bool)
	for _, m := range mentions {
		if !seen[m.person] {
			seen[m.person] = true
			out = append(out, m.person)
		}
	}
	return out
}

func overlaps(a, b span) bool {
	return a.start < b.end && b.start < a.end
}

func distance(a, b span) int {
	if a.end <= b.start {
		return b.start - a.end
	}
	if b.end <= a.start {
		return a.start - b.end
	}
	return 0
}

// otherBetween reports whether a different person is mentioned between m and s
func otherBetween(mentions []mention, m mention, s span) bool {
	lo, hi := m.end, s.start
	if s.end <= m.start {
		lo, hi = s.end, m.start
	}
	for _, o := range mentions {
		if o.person != m.person && o.start >= lo && o.end <= hi {
			return true
		}
	}
	return false
}
