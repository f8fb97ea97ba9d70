// Package prompts renders the Dutch extraction prompts for DIWOO metadata
// generation. The prompts embed the full Woo category taxonomy so the model
// answers with stable enum names rather than invented labels.
package prompts

import (
	"fmt"
	"strings"

	"github.com/opengov-nl/woometa/taxonomy"
)

// Mode selects the wire format the model is instructed to answer in. The
// taxonomy content of the prompts is identical in both modes.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeXML  Mode = "xml"
)

// TruncationMarker is appended when document text is cut at the length
// limit, so the model knows the fragment is incomplete.
const TruncationMarker = "[... TEKST AFGEKAPT WEGENS LENGTE ...]"

// DefaultMaxTextLength bounds the document text included in a prompt.
const DefaultMaxTextLength = 15000

// SystemPrompt returns the system message for metadata extraction.
func SystemPrompt(mode Mode) string {
	var b strings.Builder
	b.WriteString(`Je bent een expert in Nederlandse overheidsmetadata en de Wet open overheid (Woo).
Je taak is het analyseren van documentinhoud en het genereren van DIWOO-conforme metadata.

Je hebt kennis van:
- De 17 Woo-informatiecategorieën uit artikel 3.3
- TOOI-waardelijsten voor documentsoorten, thema's en organisaties
- DIWOO XSD-schemastructuur en -vereisten

De 17 Woo-informatiecategorieën zijn:
`)
	for _, cat := range taxonomy.Categories() {
		fmt.Fprintf(&b, "- %s: %s (artikel %s)\n", cat.Name(), cat.Label(), cat.Article())
	}

	b.WriteString(`
Belangrijke regels:
1. Selecteer ALTIJD minimaal één informatiecategorie uit de 17 Woo-categorieën
2. Genereer een officiële titel die het document accuraat beschrijft
3. Wees conservatief met confidentiescores - alleen hoog (>0.8) bij duidelijk bewijs
4. Alle tekst moet in het Nederlands zijn tenzij het document in een andere taal is
5. Gebruik alleen categorieën die echt van toepassing zijn

`)

	if mode == ModeXML {
		b.WriteString("Antwoord ALLEEN met valide XML volgens het gegeven DIWOO-schema. Geen markdown, geen uitleg.")
	} else {
		b.WriteString("Antwoord ALLEEN met valid JSON volgens het gegeven schema. Geen markdown, geen uitleg.")
	}
	return b.String()
}

// ExtractionPrompt builds the user message for a document fragment. Text
// longer than maxTextLength characters is hard-cut and marked as truncated.
// publisherHint, when non-empty, tells the model which organisation the
// document came from. maxTextLength <= 0 uses DefaultMaxTextLength.
func ExtractionPrompt(documentText, publisherHint string, maxTextLength int, mode Mode) string {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}
	text := Truncate(documentText, maxTextLength)

	var hint string
	if publisherHint != "" {
		hint = fmt.Sprintf("\nPUBLISHER: Dit document is afkomstig van: %s\n", publisherHint)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Analyseer het volgende documentfragment en genereer DIWOO-conforme metadata.

DOCUMENTINHOUD:
---
%s
---
%s
`, text, hint)

	if mode == ModeXML {
		b.WriteString(xmlFormatInstruction)
	} else {
		b.WriteString(jsonFormatInstruction)
	}

	b.WriteString("\nMogelijke informatiecategorieën (kies de juiste naam):\n")
	for _, cat := range taxonomy.Categories() {
		fmt.Fprintf(&b, "%s = %s\n", cat.Name(), cat.Label())
	}

	b.WriteString("\nMogelijke documentsoorten:\n")
	names := make([]string, 0, len(taxonomy.DocumentTypes()))
	for _, dt := range taxonomy.DocumentTypes() {
		names = append(names, dt.Name())
	}
	b.WriteString(strings.Join(names, ", "))

	b.WriteString(`

Tips voor analyse:
- Kijk naar briefhoofden, ondertekeningen en referentienummers
- Let op datumnotaties en tijdsaanduidingen
- Identificeer juridische termen die wijzen op specifieke documentsoorten
- Bij twijfel: lagere confidence score en meerdere mogelijke categorieën`)

	return b.String()
}

// Truncate hard-cuts text at limit characters and appends the truncation
// marker when anything was dropped.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "\n\n" + TruncationMarker
}

const jsonFormatInstruction = `Genereer metadata in exact het volgende JSON-formaat:
{
    "officiele_titel": "De officiële titel van het document (verplicht, max 200 tekens)",
    "verkorte_titels": ["Optionele korte titel"] of null,
    "omschrijvingen": ["Korte beschrijving van de inhoud (max 500 tekens)"] of null,
    "informatiecategorieen": [
        {
            "categorie": "NAAM_VAN_CATEGORIE (kies uit de 17 categorieën)",
            "confidence": 0.0 tot 1.0,
            "reasoning": "Korte uitleg waarom deze categorie"
        }
    ],
    "documentsoorten": ["BRIEF", "NOTA", "RAPPORT", "BESLUIT", "ADVIES", "NOTULEN", "AGENDA", "VERSLAG", etc.] of null,
    "trefwoorden": ["Relevante zoektermen in Nederlands"],
    "taal": "NL",
    "creatiedatum": "YYYY-MM-DD indien te bepalen uit document, anders null",
    "confidence_scores": {
        "titel": 0.0 tot 1.0,
        "informatiecategorie": 0.0 tot 1.0,
        "overall": 0.0 tot 1.0
    }
}
`

const xmlFormatInstruction = `Genereer metadata in exact het volgende XML-formaat:
<diwoo:Document xmlns:diwoo="https://standaarden.overheid.nl/diwoo/metadata/">
  <diwoo:DiWoo>
    <diwoo:publisher resource="TOOI-URI van de organisatie">Naam organisatie</diwoo:publisher>
    <diwoo:titelcollectie>
      <diwoo:officieleTitel>De officiële titel van het document</diwoo:officieleTitel>
      <diwoo:verkorteTitel>Optionele korte titel</diwoo:verkorteTitel>
    </diwoo:titelcollectie>
    <diwoo:omschrijvingen>
      <diwoo:omschrijving>Korte beschrijving van de inhoud</diwoo:omschrijving>
    </diwoo:omschrijvingen>
    <diwoo:classificatiecollectie>
      <diwoo:informatiecategorieen>
        <diwoo:informatiecategorie resource="TOOI-URI van de categorie">Label van de categorie</diwoo:informatiecategorie>
      </diwoo:informatiecategorieen>
      <diwoo:trefwoorden>
        <diwoo:trefwoord>Relevante zoekterm</diwoo:trefwoord>
      </diwoo:trefwoorden>
    </diwoo:classificatiecollectie>
    <diwoo:documenthandelingen>
      <diwoo:documenthandeling>
        <diwoo:soortHandeling resource="https://identifier.overheid.nl/tooi/def/thes/kern/c_registratie">Registratie</diwoo:soortHandeling>
        <diwoo:atTime>YYYY-MM-DDThh:mm:ss</diwoo:atTime>
      </diwoo:documenthandeling>
    </diwoo:documenthandelingen>
    <diwoo:creatiedatum>YYYY-MM-DD indien te bepalen</diwoo:creatiedatum>
    <diwoo:language resource="https://identifier.overheid.nl/tooi/def/thes/kern/c_nl">Nederlands</diwoo:language>
  </diwoo:DiWoo>
</diwoo:Document>
`
