package enrichment

// Fixed lookup tables used by the four enrichment engines. Ordering is part
// of the contract wherever a slice is used: pattern scans and template
// dispatch stop at the first match, so more specific entries must stay ahead
// of broader ones. Keep these as data, not conditionals.

// uppercaseTokens are clinical abbreviations that title casing mangles and
// must be restored to full uppercase. Applied in listed order so later
// entries can override earlier partial overlaps.
var uppercaseTokens = []string{
	"mg", "ml", "mcg", "iu", "hr", "er", "xr", "sr", "la", "xl",
	"hcl", "hbr", "na", "k", "ca", "fe", "zn", "cr", "se",
	"usp", "fda", "otc", "rx", "iv", "im", "po", "pr", "sl",
	"bid", "tid", "qid", "qd", "prn", "ac", "pc", "hs",
	"dha", "epa", "atp", "dna", "rna", "hiv", "aids", "copd",
	"adhd", "ptsd", "ocd", "gerd", "ibs", "uti", "std",
}

// romanNumerals found in drug names (e.g. coagulation factors).
var romanNumerals = []string{"ii", "iii", "iv", "vi", "vii", "viii", "ix"}

// brandCapitalization restores known brand spellings inside bracketed
// substrings. Keys are lower case; unknown brands fall back to title case.
var brandCapitalization = map[string]string{
	"tylenol":    "Tylenol",
	"advil":      "Advil",
	"motrin":     "Motrin",
	"aspirin":    "Aspirin",
	"bayer":      "Bayer",
	"excedrin":   "Excedrin",
	"aleve":      "Aleve",
	"sudafed":    "Sudafed",
	"robitussin": "Robitussin",
	"mucinex":    "Mucinex",
	"claritin":   "Claritin",
	"zyrtec":     "Zyrtec",
	"allegra":    "Allegra",
	"benadryl":   "Benadryl",
}

// doseFormSynonyms maps raw dose form spellings to their canonical form.
// Lookup is exact and case-insensitive; misses fall back to title casing.
var doseFormSynonyms = map[string]string{
	"tab":        "Tablet",
	"tabs":       "Tablet",
	"tablet":     "Tablet",
	"tablets":    "Tablet",
	"cap":        "Capsule",
	"caps":       "Capsule",
	"capsule":    "Capsule",
	"capsules":   "Capsule",
	"sol":        "Solution",
	"soln":       "Solution",
	"solution":   "Solution",
	"susp":       "Suspension",
	"suspension": "Suspension",
	"syr":        "Syrup",
	"syrup":      "Syrup",
	"inj":        "Injection",
	"injection":  "Injection",
	"cr":         "Cream",
	"cream":      "Cream",
	"oint":       "Ointment",
	"ointment":   "Ointment",
	"gel":        "Gel",
	"lot":        "Lotion",
	"lotion":     "Lotion",
	"spr":        "Spray",
	"spray":      "Spray",
	"drop":       "Drops",
	"drops":      "Drops",
	"patch":      "Patch",
	"film":       "Film",
	"powder":     "Powder",
	"granules":   "Granules",
}

// strengthUnit is one unit abbreviation rewrite, word-boundary anchored.
type strengthUnit struct {
	Token     string
	Canonical string
}

var strengthUnits = []strengthUnit{
	{"mg", "MG"},
	{"mcg", "MCG"},
	{"ml", "ML"},
	{"iu", "IU"},
	{"units", "Units"},
	{"unit", "Unit"},
}

// doseFormAbbrevs feed the search keyword set so users can search with the
// short forms pharmacists actually type.
var doseFormAbbrevs = map[string][]string{
	"tablet":     {"tab", "tabs"},
	"capsule":    {"cap", "caps"},
	"solution":   {"sol", "soln"},
	"suspension": {"susp"},
	"injection":  {"inj"},
	"cream":      {"cr"},
	"ointment":   {"oint"},
	"spray":      {"spr"},
	"lotion":     {"lot"},
}

// companyPattern maps a lower-case substring to the canonical manufacturer
// name. The scan returns the first matching entry, so subsidiary and
// spelling variants sit next to their parent and specific patterns precede
// broader ones sharing a root.
type companyPattern struct {
	Pattern   string
	Canonical string
}

var companyPatterns = []companyPattern{
	{"lilly", "Eli Lilly"},
	{"eli lilly", "Eli Lilly"},
	{"lilly, eli", "Eli Lilly"},
	{"eli & company", "Eli Lilly"},
	{"pfizer", "Pfizer"},
	{"pfizer labs", "Pfizer"},
	{"pfizer u.s.", "Pfizer"},
	{"pfizer laboratories", "Pfizer"},
	{"pfizer inc", "Pfizer"},
	{"pfizer consumer", "Pfizer"},
	{"parke-davis", "Pfizer"},
	{"parke davis", "Pfizer"},
	{"johnson", "Johnson & Johnson"},
	{"johnson & johnson", "Johnson & Johnson"},
	{"j & j", "Johnson & Johnson"},
	{"janssen", "Johnson & Johnson"},
	{"mcneil", "Johnson & Johnson"},
	{"merck", "Merck"},
	{"merck & co", "Merck"},
	{"merck sharp", "Merck"},
	{"merck sharp & dohme", "Merck"},
	{"msd", "Merck"},
	{"novartis", "Novartis"},
	{"novartis pharmaceuticals", "Novartis"},
	{"novartis consumer", "Novartis"},
	{"sandoz", "Novartis"},
	{"ciba", "Novartis"},
	{"roche", "Roche"},
	{"roche laboratories", "Roche"},
	{"hoffmann-la roche", "Roche"},
	{"genentech", "Roche"},
	{"bristol", "Bristol-Myers Squibb"},
	{"bristol-myers", "Bristol-Myers Squibb"},
	{"bristol myers squibb", "Bristol-Myers Squibb"},
	{"bms", "Bristol-Myers Squibb"},
	{"sanofi", "Sanofi"},
	{"sanofi-aventis", "Sanofi"},
	{"sanofi-synthelabo", "Sanofi"},
	{"aventis", "Sanofi"},
	{"chattem", "Sanofi"},
	{"abbvie", "AbbVie"},
	{"abbott", "AbbVie"},
	{"bayer", "Bayer"},
	{"bayer healthcare", "Bayer"},
	{"bayer corp", "Bayer"},
	{"bayer pharmaceutical", "Bayer"},
	{"glaxosmithkline", "GlaxoSmithKline"},
	{"gsk", "GlaxoSmithKline"},
	{"glaxo", "GlaxoSmithKline"},
	{"smithkline", "GlaxoSmithKline"},
	{"boehringer", "Boehringer Ingelheim"},
	{"boehringer ingelheim", "Boehringer Ingelheim"},
	{"amgen", "Amgen"},
	{"gilead", "Gilead Sciences"},
	{"gilead sciences", "Gilead Sciences"},
	{"takeda", "Takeda"},
	{"takeda pharmaceutical", "Takeda"},
	{"biogen", "Biogen"},
	{"biogen idec", "Biogen"},
	{"regeneron", "Regeneron"},
	{"moderna", "Moderna"},
	{"biontech", "BioNTech"},
	{"allergan", "Allergan"},
	{"teva", "Teva"},
	{"teva pharmaceutical", "Teva"},
	{"mylan", "Mylan"},
	{"actavis", "Actavis"},
	{"sun pharma", "Sun Pharma"},
	{"sun pharmaceutical", "Sun Pharma"},
}

// companySuffixWords are corporate suffixes stripped whole-word when no
// pattern matched, leaving a best-effort canonical name.
var companySuffixWords = map[string]bool{
	"inc": true, "llc": true, "corp": true, "ltd": true,
	"company": true, "co": true,
	"pharmaceutical": true, "pharmaceuticals": true, "pharma": true,
	"laboratories": true, "lab": true, "labs": true,
	"division": true, "div": true, "group": true,
	"healthcare": true, "consumer": true, "care": true,
	"biotechnology": true, "bio": true,
}

// routeKeyword associates a route of administration with the free-text cues
// that imply it. First matching route wins.
type routeKeyword struct {
	Route    string
	Keywords []string
}

var routeKeywords = []routeKeyword{
	{"oral", []string{"oral", "mouth", "po"}},
	{"topical", []string{"topical", "skin"}},
	{"ophthalmic", []string{"ophthalmic", "eye", "ocular"}},
	{"otic", []string{"otic", "ear", "aural"}},
	{"nasal", []string{"nasal", "nose", "intranasal"}},
	{"rectal", []string{"rectal", "rectally", "pr"}},
	{"vaginal", []string{"vaginal", "intravaginal"}},
	{"injection", []string{"injection", "injectable", "iv", "im", "subcutaneous"}},
	{"inhalation", []string{"inhalation", "inhaled", "respiratory"}},
}

// Instruction template sets per form category.

var tabletTemplates = []string{
	"Take 1 tablet by mouth once daily",
	"Take 1 tablet by mouth twice daily with meals",
	"Take 2 tablets by mouth once daily",
	"Take 1 tablet by mouth at bedtime",
	"Take 1 tablet by mouth every 12 hours",
	"Take 1 tablet by mouth three times daily with meals",
}

// Extended-release forms get a reduced once-daily set.
var tabletERTemplates = []string{
	"Take 1 tablet by mouth once daily",
	"Take 1 tablet by mouth once daily with food",
	"Take 1 tablet by mouth at bedtime",
}

var topicalTemplates = []string{
	"Apply a thin layer to affected area twice daily",
	"Apply to affected area once daily at bedtime",
	"Apply as needed for itching or rash",
	"Apply a small amount to affected area and rub in gently",
	"Apply twice daily and rub in until absorbed",
	"Apply to clean, dry skin as directed",
}

const (
	ointmentExtraTemplate = "Apply ointment sparingly to avoid occlusion"
	gelExtraTemplate      = "Apply gel and allow to dry before covering"
)

var solutionTopicalTemplates = []string{
	"Apply solution to affected area twice daily",
	"Apply with cotton swab once daily",
	"Dab solution on affected area as needed",
	"Apply solution and allow to air dry",
}

var solutionOralTemplates = []string{
	"Take 5 mL by mouth once daily",
	"Take 10 mL by mouth twice daily with meals",
	"Take 15 mL by mouth at bedtime",
	"Take as directed by physician",
	"Shake well before use, take with food",
}

var solutionGeneralTemplates = []string{
	"Use as directed by physician",
	"Apply to affected area as needed",
	"Take 5-10 mL as directed",
}

var sprayTemplates = []string{
	"Use 2 sprays in each nostril once daily",
	"Use 1 spray in each nostril twice daily",
	"Prime pump before first use, spray once in each nostril",
	"Use 2 sprays in each nostril every 12 hours",
	"Spray once in each nostril as needed for congestion",
}

var inhalerTemplates = []string{
	"Inhale 2 puffs by mouth every 4 hours as needed",
	"Inhale 1 puff by mouth twice daily",
	"Inhale 2 puffs by mouth every 6 hours",
	"Use as rescue inhaler for shortness of breath",
	"Prime inhaler before first use, inhale deeply and hold",
}

var suppositoryTemplates = []string{
	"Insert 1 suppository rectally at bedtime",
	"Insert rectally once daily as needed",
	"Insert 1 suppository rectally every 8 hours as needed",
	"Moisten with water before insertion",
}

var eyeDropTemplates = []string{
	"Instill 1 drop in affected eye(s) twice daily",
	"Instill 2 drops in affected eye(s) every 4 hours",
	"Place 1 drop in each eye once daily",
	"Instill 1 drop in affected eye(s) at bedtime",
	"Wash hands before use, do not touch tip to eye",
}

var earDropTemplates = []string{
	"Instill 2 drops in affected ear three times daily",
	"Place 3-4 drops in affected ear twice daily",
	"Warm to room temperature before use, instill as directed",
	"Instill drops and keep head tilted for 2 minutes",
}

var patchTemplates = []string{
	"Apply 1 patch to clean, dry skin once daily",
	"Apply patch to hairless area, rotate sites",
	"Replace patch every 24 hours",
	"Apply patch and wear for 12 hours, then remove",
}

var injectionTemplates = []string{
	"Inject as directed by healthcare provider",
	"Administer by healthcare professional only",
	"Use under medical supervision",
	"Single use vial - discard after use",
}

// categoryOverlay appends category-specific compliance phrases when the drug
// name matches one of the listed names. Overlays are independent of the form
// dispatch and several may apply to one record.
type categoryOverlay struct {
	Category string
	Names    []string
	Phrases  []string
}

var categoryOverlays = []categoryOverlay{
	{
		Category: "antibiotic",
		Names:    []string{"amoxicillin", "penicillin", "azithromycin", "ciprofloxacin", "doxycycline"},
		Phrases: []string{
			"Take until completely finished even if feeling better",
			"Take with plenty of water",
			"Take at evenly spaced intervals",
		},
	},
	{
		Category: "analgesic",
		Names:    []string{"ibuprofen", "acetaminophen", "aspirin", "naproxen"},
		Phrases: []string{
			"Take with food to prevent stomach upset",
			"Do not exceed maximum daily dose",
			"Take as needed for pain",
		},
	},
	{
		Category: "cardiovascular",
		Names:    []string{"metoprolol", "lisinopril", "amlodipine", "atorvastatin"},
		Phrases: []string{
			"Take at the same time each day",
			"Do not stop suddenly without consulting physician",
			"Monitor blood pressure regularly",
		},
	},
	{
		Category: "antidiabetic",
		Names:    []string{"metformin", "insulin", "glyburide", "glipizide"},
		Phrases: []string{
			"Take with meals to reduce stomach upset",
			"Monitor blood sugar as directed",
			"Take at the same time each day",
		},
	},
	{
		Category: "hormonal",
		Names:    []string{"estradiol", "levonorgestrel", "ethinyl"},
		Phrases: []string{
			"Take at the same time every day",
			"Take continuously as directed",
			"Do not skip doses",
		},
	},
}

const brandCautionPhrase = "Brand name medication - do not substitute without consulting physician"

var controlledSubstanceNames = []string{"oxycodone", "morphine", "fentanyl", "adderall", "xanax"}

var controlledSubstancePhrases = []string{
	"Controlled substance - take exactly as prescribed",
	"Do not share with others",
	"Store securely away from children",
}

// ndcPackageEndings are package-size codes commonly seen in the last two
// digits of an NDC; used by the first 10-digit disambiguation heuristic.
var ndcPackageEndings = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "05": true,
	"10": true, "30": true, "50": true, "90": true,
}
