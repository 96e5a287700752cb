// ABOUTME: Word lists that drive name, title and company recognition
// ABOUTME: Stop words, organization markers and abbreviations are kept as lowercase sets

package profiles

import "strings"

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// stopWords break a run of capitalized words and are never part of a name
var stopWords = wordSet(`
a an the this that these those some many most both each every other another
and or but nor so yet for of in on at to by from with without into onto over under
about after before during while when where why how if as than then though although
however meanwhile moreover furthermore also still now later earlier instead
according despite since until unless because whether
i we you he she it they me us him her them my our your his its their
mr mrs ms miss dr prof sir dame lord lady madam rev
president chairman chairwoman chair chief executive officer director manager founder
cofounder co-founder head vice senior junior analyst economist professor minister
senator governor mayor secretary spokesperson spokesman spokeswoman ceo
monday tuesday wednesday thursday friday saturday sunday
january february march april may june july august september october november december
today yesterday tomorrow tonight last next first second third new old
breaking update updated exclusive opinion analysis photo video read share
is are was were be been has have had will would can could should may might must
not no yes all any none several few
`)

// orgMarkers make a capitalized run an organisation or place rather than a person
var orgMarkers = wordSet(`
inc corp corporation co company companies llc ltd limited plc gmbh ag sa group groups
capital labs lab technologies technology tech systems partners ventures holdings
bank banks fund funds trust securities insurance investments financial finance
management research consulting analytics robotics dynamics digital health healthcare
media news network networks software solutions services industries motors energy
airways airlines pharmaceuticals pharma entertainment studios games foods brands retail
markets market exchange reserve commission authority agency bureau ministry department
office administration board committee association society federation union league
club team council foundation institute university college school academy hospital
museum center centre hall church court senate congress parliament government
street avenue road boulevard valley city county state states island islands river
square park bay coast beach kingdom republic times post journal herald tribune
review magazine press house airport station
`)

// placePrefixes start multi-word place names
var placePrefixes = wordSet(`
new san santa los las saint st fort port mount lake north south east west upper lower
silicon wall white united european hong tel buenos rio sri abu cape kuala costa puerto
`)

// abbreviations end with a period that does not end the sentence
var abbreviations = wordSet(`
mr mrs ms dr prof sr jr st mt inc corp ltd co gen sen rep gov lt col capt sgt vs
e.g i.e no jan feb aug sept oct nov dec approx est dept
`)

// roleAcronyms stay upper case when a role is normalized
var roleAcronyms = wordSet(`ceo cto cfo coo cmo cio ciso cpo cro vp evp svp`)

var roleLowerWords = wordSet(`of and`)

// companyAbbreviations keep their trailing period
var companyAbbreviations = wordSet(`inc corp ltd co`)

const departments = `engineering|marketing|sales|product|products|operations|finance|research|design|` +
	`communications|policy|technology|strategy|people|growth|investments|security|data|` +
	`content|partnerships|development|innovation|compliance|legal|talent|sustainability`

const rolePrefix = `(?:(?:senior|junior|deputy|assistant|associate|managing|executive|general|` +
	`global|regional|lead|principal|interim|acting|chief)\s+)?`

const roleTitles = `director|manager|analyst|economist|researcher|scientist|engineer|editor|` +
	`strategist|consultant|counsel|advisor|adviser|partner|spokesperson|spokesman|spokeswoman|` +
	`professor|lecturer|journalist|reporter|investor|designer|developer|architect|officer`

// rolePattern matches job titles in prose, longest forms first
const rolePattern = `(?i)\b(?:` +
	`chief\s+[a-z]+(?:\s+[a-z]+)?\s+officer` +
	`|chief\s+executive` +
	`|(?:co-?)?founder(?:\s+and\s+(?:ceo|chief\s+executive))?` +
	`|(?:senior\s+|executive\s+)?vice\s+president(?:\s+of\s+(?:` + departments + `))?` +
	`|ceo|cto|cfo|coo|cmo|cio|ciso|cpo|cro|evp|svp` +
	`|vp(?:\s+of\s+(?:` + departments + `))?` +
	`|president` +
	`|chair(?:man|woman|person)` +
	`|head\s+of\s+(?:` + departments + `)` +
	`|` + rolePrefix + `(?:` + roleTitles + `)(?:\s+of\s+(?:` + departments + `))?` +
	`|minister|senator|governor|mayor|secretary|treasurer` +
	`)\b`

// companyPattern matches one to four capitalized words, allowing "&"
const companyPattern = `\p{Lu}[\p{L}\p{N}&'’.\-]*(?:\s+(?:&\s+)?\p{Lu}[\p{L}\p{N}&'’.\-]*){0,3}`

const corporateSuffixes = `Inc\.?|Corp\.?|Corporation|LLC|Ltd\.?|Limited|PLC|Group|Capital|Labs|` +
	`Technologies|Holdings|Partners|Ventures|Bank|Systems`

const speechVerbs = `said|says|added|adds|told|noted|explained|stated|wrote|argued|warned|insisted|` +
	`continued|recalled|admitted|acknowledged|emphasized|emphasised|according\s+to`

func init() {
	// Titles and departments written in title case ("Head of Marketing Jane
	// Doe") must not be absorbed into names
	for _, w := range strings.Split(departments+"|"+roleTitles, "|") {
		stopWords[w] = true
	}
	for _, w := range strings.Fields("senior junior deputy assistant associate managing general global regional lead principal interim acting former") {
		stopWords[w] = true
	}
}
