package taxonomy

// KernNamespace is the base IRI for TOOI thesaurus entries. Entry URIs are
// derived as KernNamespace + code.
const KernNamespace = "https://identifier.overheid.nl/tooi/def/thes/kern/"

// OrganisationPlaceholderURI identifies an organisation that could not be
// resolved against the TOOI organisatielijst.
const OrganisationPlaceholderURI = "https://identifier.overheid.nl/tooi/id/organisatie/placeholder"

// Category is one of the 17 Woo information categories from Artikel 3.3.
// The value is the stable TOOI code.
type Category string

// Artikel 3.3 lid 1 - mandatory active disclosure, no exceptions.
const (
	// CategoryWettenAVV is 3.3.1a: wetten en algemeen verbindende voorschriften.
	CategoryWettenAVV Category = "c_4191a648"

	// CategoryOverigeBesluitenAS is 3.3.1b: overige besluiten van algemene strekking.
	CategoryOverigeBesluitenAS Category = "c_237d1cf1"

	// CategoryOntwerpenRegelgeving is 3.3.1c: ontwerpen van regelgeving met adviesaanvraag.
	CategoryOntwerpenRegelgeving Category = "c_fdee54ae"

	// CategoryOrganisatieWerkwijze is 3.3.1d: organisatie en werkwijze.
	CategoryOrganisatieWerkwijze Category = "c_9f5cc14e"

	// CategoryBereikbaarheid is 3.3.1e: bereikbaarheidsgegevens.
	CategoryBereikbaarheid Category = "c_e8bf4b9e"
)

// Artikel 3.3 lid 2 - mandatory active disclosure, with exceptions.
const (
	// CategoryIngekomenStukken is 3.3.2a: bij vertegenwoordigende organen ingekomen stukken.
	CategoryIngekomenStukken Category = "c_a3a6e5cf"

	// CategoryVergaderstukkenSG is 3.3.2b: vergaderstukken Staten-Generaal.
	CategoryVergaderstukkenSG Category = "c_7ebb6ba0"

	// CategoryVergaderstukkenDecentraal is 3.3.2c: vergaderstukken decentrale overheden.
	CategoryVergaderstukkenDecentraal Category = "c_92a74153"

	// CategoryAgendasBesluitenlijsten is 3.3.2d: agenda's en besluitenlijsten bestuurscolleges.
	CategoryAgendasBesluitenlijsten Category = "c_5540d806"

	// CategoryAdviezen is 3.3.2e: adviezen.
	CategoryAdviezen Category = "c_5ba23c01"

	// CategoryConvenanten is 3.3.2f: convenanten.
	CategoryConvenanten Category = "c_9fe65c9f"

	// CategoryJaarplannenJaarverslagen is 3.3.2g: jaarplannen en jaarverslagen.
	CategoryJaarplannenJaarverslagen Category = "c_9b4ab167"

	// CategorySubsidiesAnders is 3.3.2h: subsidieverplichtingen anders dan met beschikking.
	CategorySubsidiesAnders Category = "c_8ac47458"

	// CategoryWooVerzoeken is 3.3.2i: Woo-verzoeken en -besluiten.
	CategoryWooVerzoeken Category = "c_4edc7ff0"

	// CategoryOnderzoeksrapporten is 3.3.2j: onderzoeksrapporten.
	CategoryOnderzoeksrapporten Category = "c_28fb3d66"

	// CategoryBeschikkingen is 3.3.2k: beschikkingen.
	CategoryBeschikkingen Category = "c_0b6bd881"

	// CategoryKlachtoordelen is 3.3.2l: klachtoordelen.
	CategoryKlachtoordelen Category = "c_b2f30ab9"
)

// DefaultCategory is the fallback when the LLM proposes no resolvable
// category. A record must always carry at least one category.
const DefaultCategory = CategoryOverigeBesluitenAS

// categoryOrder lists all categories in Woo article order (3.3.1a..3.3.2l),
// not alphabetically. Prompt rendering and All() preserve this order.
var categoryOrder = []Category{
	CategoryWettenAVV,
	CategoryOverigeBesluitenAS,
	CategoryOntwerpenRegelgeving,
	CategoryOrganisatieWerkwijze,
	CategoryBereikbaarheid,
	CategoryIngekomenStukken,
	CategoryVergaderstukkenSG,
	CategoryVergaderstukkenDecentraal,
	CategoryAgendasBesluitenlijsten,
	CategoryAdviezen,
	CategoryConvenanten,
	CategoryJaarplannenJaarverslagen,
	CategorySubsidiesAnders,
	CategoryWooVerzoeken,
	CategoryOnderzoeksrapporten,
	CategoryBeschikkingen,
	CategoryKlachtoordelen,
}

var categoryNames = map[Category]string{
	CategoryWettenAVV:                 "WETTEN_AVV",
	CategoryOverigeBesluitenAS:        "OVERIGE_BESLUITEN_AS",
	CategoryOntwerpenRegelgeving:      "ONTWERPEN_REGELGEVING",
	CategoryOrganisatieWerkwijze:      "ORGANISATIE_WERKWIJZE",
	CategoryBereikbaarheid:            "BEREIKBAARHEID",
	CategoryIngekomenStukken:          "INGEKOMEN_STUKKEN",
	CategoryVergaderstukkenSG:         "VERGADERSTUKKEN_SG",
	CategoryVergaderstukkenDecentraal: "VERGADERSTUKKEN_DECENTRAAL",
	CategoryAgendasBesluitenlijsten:   "AGENDAS_BESLUITENLIJSTEN",
	CategoryAdviezen:                  "ADVIEZEN",
	CategoryConvenanten:               "CONVENANTEN",
	CategoryJaarplannenJaarverslagen:  "JAARPLANNEN_JAARVERSLAGEN",
	CategorySubsidiesAnders:           "SUBSIDIES_ANDERS",
	CategoryWooVerzoeken:              "WOO_VERZOEKEN",
	CategoryOnderzoeksrapporten:       "ONDERZOEKSRAPPORTEN",
	CategoryBeschikkingen:             "BESCHIKKINGEN",
	CategoryKlachtoordelen:            "KLACHTOORDELEN",
}

var categoryLabels = map[Category]string{
	CategoryWettenAVV:                 "Wetten en algemeen verbindende voorschriften",
	CategoryOverigeBesluitenAS:        "Overige besluiten van algemene strekking",
	CategoryOntwerpenRegelgeving:      "Ontwerpen van regelgeving met adviesaanvraag",
	CategoryOrganisatieWerkwijze:      "Organisatie en werkwijze",
	CategoryBereikbaarheid:            "Bereikbaarheidsgegevens",
	CategoryIngekomenStukken:          "Bij vertegenwoordigende organen ingekomen stukken",
	CategoryVergaderstukkenSG:         "Vergaderstukken Staten-Generaal",
	CategoryVergaderstukkenDecentraal: "Vergaderstukken decentrale overheden",
	CategoryAgendasBesluitenlijsten:   "Agenda's en besluitenlijsten bestuurscolleges",
	CategoryAdviezen:                  "Adviezen",
	CategoryConvenanten:               "Convenanten",
	CategoryJaarplannenJaarverslagen:  "Jaarplannen en jaarverslagen",
	CategorySubsidiesAnders:           "Subsidieverplichtingen anders dan met beschikking",
	CategoryWooVerzoeken:              "Woo-verzoeken en -besluiten",
	CategoryOnderzoeksrapporten:       "Onderzoeksrapporten",
	CategoryBeschikkingen:             "Beschikkingen",
	CategoryKlachtoordelen:            "Klachtoordelen",
}

var categoryArticles = map[Category]string{
	CategoryWettenAVV:                 "3.3.1a",
	CategoryOverigeBesluitenAS:        "3.3.1b",
	CategoryOntwerpenRegelgeving:      "3.3.1c",
	CategoryOrganisatieWerkwijze:      "3.3.1d",
	CategoryBereikbaarheid:            "3.3.1e",
	CategoryIngekomenStukken:          "3.3.2a",
	CategoryVergaderstukkenSG:         "3.3.2b",
	CategoryVergaderstukkenDecentraal: "3.3.2c",
	CategoryAgendasBesluitenlijsten:   "3.3.2d",
	CategoryAdviezen:                  "3.3.2e",
	CategoryConvenanten:               "3.3.2f",
	CategoryJaarplannenJaarverslagen:  "3.3.2g",
	CategorySubsidiesAnders:           "3.3.2h",
	CategoryWooVerzoeken:              "3.3.2i",
	CategoryOnderzoeksrapporten:       "3.3.2j",
	CategoryBeschikkingen:             "3.3.2k",
	CategoryKlachtoordelen:            "3.3.2l",
}

var categoriesByName = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for cat, name := range categoryNames {
		m[name] = cat
	}
	return m
}()

// Code returns the stable TOOI code.
func (c Category) Code() string { return string(c) }

// Name returns the symbolic enum name used in prompts and JSON-mode LLM
// output (e.g. "ADVIEZEN").
func (c Category) Name() string { return categoryNames[c] }

// Label returns the human-readable Dutch label.
func (c Category) Label() string { return categoryLabels[c] }

// Article returns the Woo article reference (e.g. "3.3.2e").
func (c Category) Article() string { return categoryArticles[c] }

// URI returns the full TOOI URI for this category.
func (c Category) URI() string { return KernNamespace + string(c) }

// Categories returns all 17 information categories in Woo article order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryByCode resolves a TOOI code to a category.
func CategoryByCode(code string) (Category, bool) {
	c := Category(code)
	_, ok := categoryLabels[c]
	return c, ok
}

// CategoryByName resolves a symbolic name as produced by the LLM in JSON
// mode. The input is normalized with NormalizeName before lookup.
func CategoryByName(name string) (Category, bool) {
	c, ok := categoriesByName[NormalizeName(name)]
	return c, ok
}
