package taxonomy

// DocumentType is a document type from the TOOI documentsoortlijst.
type DocumentType string

// Document types recognized during extraction.
const (
	DocTypeBrief                 DocumentType = "c_brief"
	DocTypeNota                  DocumentType = "c_nota"
	DocTypeRapport               DocumentType = "c_rapport"
	DocTypeBesluit               DocumentType = "c_besluit"
	DocTypeAdvies                DocumentType = "c_advies"
	DocTypeNotulen               DocumentType = "c_notulen"
	DocTypeAgenda                DocumentType = "c_agenda"
	DocTypeVerslag               DocumentType = "c_verslag"
	DocTypeConvenant             DocumentType = "c_convenant"
	DocTypeOvereenkomst          DocumentType = "c_overeenkomst"
	DocTypeBeleidsregel          DocumentType = "c_beleidsregel"
	DocTypeCirculaire            DocumentType = "c_circulaire"
	DocTypeBeschikking           DocumentType = "c_beschikking"
	DocTypeWooBesluit            DocumentType = "c_woo_besluit"
	DocTypeOnderzoeksrapport     DocumentType = "c_onderzoeksrapport"
	DocTypeJaarverslag           DocumentType = "c_jaarverslag"
	DocTypeJaarplan              DocumentType = "c_jaarplan"
	DocTypeKlachtoordeel         DocumentType = "c_klachtoordeel"
	DocTypeMemorieVanToelichting DocumentType = "c_memorie_van_toelichting"
	DocTypeAmendement            DocumentType = "c_amendement"
	DocTypeMotie                 DocumentType = "c_motie"
)

var docTypeOrder = []DocumentType{
	DocTypeBrief, DocTypeNota, DocTypeRapport, DocTypeBesluit, DocTypeAdvies,
	DocTypeNotulen, DocTypeAgenda, DocTypeVerslag, DocTypeConvenant,
	DocTypeOvereenkomst, DocTypeBeleidsregel, DocTypeCirculaire,
	DocTypeBeschikking, DocTypeWooBesluit, DocTypeOnderzoeksrapport,
	DocTypeJaarverslag, DocTypeJaarplan, DocTypeKlachtoordeel,
	DocTypeMemorieVanToelichting, DocTypeAmendement, DocTypeMotie,
}

var docTypeNames = map[DocumentType]string{
	DocTypeBrief:                 "BRIEF",
	DocTypeNota:                  "NOTA",
	DocTypeRapport:               "RAPPORT",
	DocTypeBesluit:               "BESLUIT",
	DocTypeAdvies:                "ADVIES",
	DocTypeNotulen:               "NOTULEN",
	DocTypeAgenda:                "AGENDA",
	DocTypeVerslag:               "VERSLAG",
	DocTypeConvenant:             "CONVENANT",
	DocTypeOvereenkomst:          "OVEREENKOMST",
	DocTypeBeleidsregel:          "BELEIDSREGEL",
	DocTypeCirculaire:            "CIRCULAIRE",
	DocTypeBeschikking:           "BESCHIKKING",
	DocTypeWooBesluit:            "WOO_BESLUIT",
	DocTypeOnderzoeksrapport:     "ONDERZOEKSRAPPORT",
	DocTypeJaarverslag:           "JAARVERSLAG",
	DocTypeJaarplan:              "JAARPLAN",
	DocTypeKlachtoordeel:         "KLACHTOORDEEL",
	DocTypeMemorieVanToelichting: "MEMORIE_VAN_TOELICHTING",
	DocTypeAmendement:            "AMENDEMENT",
	DocTypeMotie:                 "MOTIE",
}

var docTypeLabels = map[DocumentType]string{
	DocTypeBrief:                 "Brief",
	DocTypeNota:                  "Nota",
	DocTypeRapport:               "Rapport",
	DocTypeBesluit:               "Besluit",
	DocTypeAdvies:                "Advies",
	DocTypeNotulen:               "Notulen",
	DocTypeAgenda:                "Agenda",
	DocTypeVerslag:               "Verslag",
	DocTypeConvenant:             "Convenant",
	DocTypeOvereenkomst:          "Overeenkomst",
	DocTypeBeleidsregel:          "Beleidsregel",
	DocTypeCirculaire:            "Circulaire",
	DocTypeBeschikking:           "Beschikking",
	DocTypeWooBesluit:            "Woo-besluit",
	DocTypeOnderzoeksrapport:     "Onderzoeksrapport",
	DocTypeJaarverslag:           "Jaarverslag",
	DocTypeJaarplan:              "Jaarplan",
	DocTypeKlachtoordeel:         "Klachtoordeel",
	DocTypeMemorieVanToelichting: "Memorie van toelichting",
	DocTypeAmendement:            "Amendement",
	DocTypeMotie:                 "Motie",
}

var docTypesByName = func() map[string]DocumentType {
	m := make(map[string]DocumentType, len(docTypeNames))
	for dt, name := range docTypeNames {
		m[name] = dt
	}
	return m
}()

// Code returns the stable TOOI code.
func (d DocumentType) Code() string { return string(d) }

// Name returns the symbolic enum name (e.g. "WOO_BESLUIT").
func (d DocumentType) Name() string { return docTypeNames[d] }

// Label returns the human-readable Dutch label.
func (d DocumentType) Label() string { return docTypeLabels[d] }

// URI returns the full TOOI URI.
func (d DocumentType) URI() string { return KernNamespace + string(d) }

// DocumentTypes returns all document types in list order.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(docTypeOrder))
	copy(out, docTypeOrder)
	return out
}

// DocumentTypeByCode resolves a TOOI code to a document type.
func DocumentTypeByCode(code string) (DocumentType, bool) {
	d := DocumentType(code)
	_, ok := docTypeLabels[d]
	return d, ok
}

// DocumentTypeByName resolves a normalized symbolic name.
func DocumentTypeByName(name string) (DocumentType, bool) {
	d, ok := docTypesByName[NormalizeName(name)]
	return d, ok
}

// HandlingType is a document handling type from the TOOI soorthandelinglijst.
type HandlingType string

// Handling types for document lifecycle events.
const (
	HandlingOntvangst        HandlingType = "c_ontvangst"
	HandlingVaststelling     HandlingType = "c_vaststelling"
	HandlingOndertekening    HandlingType = "c_ondertekening"
	HandlingPublicatie       HandlingType = "c_publicatie"
	HandlingInwerkingtreding HandlingType = "c_inwerkingtreding"
	HandlingWijziging        HandlingType = "c_wijziging"
	HandlingIntrekking       HandlingType = "c_intrekking"
	HandlingRegistratie      HandlingType = "c_registratie"
)

// DefaultHandling is the handling type synthesized when the LLM output
// carries no handling events. Every record needs at least one.
const DefaultHandling = HandlingRegistratie

var handlingOrder = []HandlingType{
	HandlingOntvangst, HandlingVaststelling, HandlingOndertekening,
	HandlingPublicatie, HandlingInwerkingtreding, HandlingWijziging,
	HandlingIntrekking, HandlingRegistratie,
}

var handlingLabels = map[HandlingType]string{
	HandlingOntvangst:        "Ontvangst",
	HandlingVaststelling:     "Vaststelling",
	HandlingOndertekening:    "Ondertekening",
	HandlingPublicatie:       "Publicatie",
	HandlingInwerkingtreding: "Inwerkingtreding",
	HandlingWijziging:        "Wijziging",
	HandlingIntrekking:       "Intrekking",
	HandlingRegistratie:      "Registratie",
}

// Code returns the stable TOOI code.
func (h HandlingType) Code() string { return string(h) }

// Label returns the human-readable Dutch label.
func (h HandlingType) Label() string { return handlingLabels[h] }

// URI returns the full TOOI URI.
func (h HandlingType) URI() string { return KernNamespace + string(h) }

// HandlingTypes returns all handling types in list order.
func HandlingTypes() []HandlingType {
	out := make([]HandlingType, len(handlingOrder))
	copy(out, handlingOrder)
	return out
}

// HandlingTypeByCode resolves a TOOI code to a handling type.
func HandlingTypeByCode(code string) (HandlingType, bool) {
	h := HandlingType(code)
	_, ok := handlingLabels[h]
	return h, ok
}

// Language is a language from the TOOI taallijst.
type Language string

// Languages recognized by the taallijst.
const (
	LanguageNL  Language = "c_nl"
	LanguageEN  Language = "c_en"
	LanguageDE  Language = "c_de"
	LanguageFR  Language = "c_fr"
	LanguageFY  Language = "c_fy"
	LanguagePAP Language = "c_pap"
)

// DefaultLanguage is Dutch, assumed when the document language is missing
// or unrecognized.
const DefaultLanguage = LanguageNL

var languageOrder = []Language{
	LanguageNL, LanguageEN, LanguageDE, LanguageFR, LanguageFY, LanguagePAP,
}

var languageLabels = map[Language]string{
	LanguageNL:  "Nederlands",
	LanguageEN:  "Engels",
	LanguageDE:  "Duits",
	LanguageFR:  "Frans",
	LanguageFY:  "Fries",
	LanguagePAP: "Papiaments",
}

// Code returns the stable TOOI code.
func (l Language) Code() string { return string(l) }

// Label returns the Dutch name of the language.
func (l Language) Label() string { return languageLabels[l] }

// URI returns the full TOOI URI.
func (l Language) URI() string { return KernNamespace + string(l) }

// Languages returns all languages in list order.
func Languages() []Language {
	out := make([]Language, len(languageOrder))
	copy(out, languageOrder)
	return out
}

// LanguageByCode resolves a TOOI code to a language.
func LanguageByCode(code string) (Language, bool) {
	l := Language(code)
	_, ok := languageLabels[l]
	return l, ok
}

// LanguageByName resolves an ISO-style short name ("NL", "EN", ...).
func LanguageByName(name string) (Language, bool) {
	switch NormalizeName(name) {
	case "NL":
		return LanguageNL, true
	case "EN":
		return LanguageEN, true
	case "DE":
		return LanguageDE, true
	case "FR":
		return LanguageFR, true
	case "FY":
		return LanguageFY, true
	case "PAP":
		return LanguagePAP, true
	}
	return "", false
}

// RelationType is a document relationship from the TOOI documentrelatielijst.
type RelationType string

// Relation types between documents.
const (
	RelationVervangt            RelationType = "c_vervangt"
	RelationWordtVervangenDoor  RelationType = "c_wordt_vervangen_door"
	RelationWijzigt             RelationType = "c_wijzigt"
	RelationWordtGewijzigdDoor  RelationType = "c_wordt_gewijzigd_door"
	RelationIntrekt             RelationType = "c_intrekt"
	RelationWordtIngetrokkenDoor RelationType = "c_wordt_ingetrokken_door"
	RelationHeeftBijlage        RelationType = "c_heeft_bijlage"
	RelationIsBijlageVan        RelationType = "c_is_bijlage_van"
)

// DefaultRelation is the fallback when the LLM proposes a relation type
// that cannot be mapped onto the documentrelatielijst.
const DefaultRelation = RelationHeeftBijlage

var relationOrder = []RelationType{
	RelationVervangt, RelationWordtVervangenDoor, RelationWijzigt,
	RelationWordtGewijzigdDoor, RelationIntrekt, RelationWordtIngetrokkenDoor,
	RelationHeeftBijlage, RelationIsBijlageVan,
}

var relationLabels = map[RelationType]string{
	RelationVervangt:             "vervangt",
	RelationWordtVervangenDoor:   "wordt vervangen door",
	RelationWijzigt:              "wijzigt",
	RelationWordtGewijzigdDoor:   "wordt gewijzigd door",
	RelationIntrekt:              "intrekt",
	RelationWordtIngetrokkenDoor: "wordt ingetrokken door",
	RelationHeeftBijlage:         "heeft bijlage",
	RelationIsBijlageVan:         "is bijlage van",
}

// Code returns the stable TOOI code.
func (r RelationType) Code() string { return string(r) }

// Label returns the human-readable Dutch label.
func (r RelationType) Label() string { return relationLabels[r] }

// URI returns the full TOOI URI.
func (r RelationType) URI() string { return KernNamespace + string(r) }

// RelationTypes returns all relation types in list order.
func RelationTypes() []RelationType {
	out := make([]RelationType, len(relationOrder))
	copy(out, relationOrder)
	return out
}

// RelationTypeByCode resolves a TOOI code to a relation type.
func RelationTypeByCode(code string) (RelationType, bool) {
	r := RelationType(code)
	_, ok := relationLabels[r]
	return r, ok
}

// RemovalReason explains why a published document was removed or replaced.
type RemovalReason string

// Removal/replacement reasons.
const (
	RemovalOnjuisteInformatie       RemovalReason = "c_onjuiste_informatie"
	RemovalPrivacygevoelig          RemovalReason = "c_privacygevoelige_informatie"
	RemovalTechnischeFout           RemovalReason = "c_technische_fout"
	RemovalVervangingNieuweVersie   RemovalReason = "c_vervanging_door_nieuwe_versie"
)

var removalOrder = []RemovalReason{
	RemovalOnjuisteInformatie, RemovalPrivacygevoelig,
	RemovalTechnischeFout, RemovalVervangingNieuweVersie,
}

var removalLabels = map[RemovalReason]string{
	RemovalOnjuisteInformatie:     "onjuiste informatie",
	RemovalPrivacygevoelig:        "privacygevoelige informatie",
	RemovalTechnischeFout:         "technische fout",
	RemovalVervangingNieuweVersie: "vervanging door nieuwe versie",
}

// Code returns the stable TOOI code.
func (r RemovalReason) Code() string { return string(r) }

// Label returns the human-readable Dutch label.
func (r RemovalReason) Label() string { return removalLabels[r] }

// URI returns the full TOOI URI.
func (r RemovalReason) URI() string { return KernNamespace + string(r) }

// RemovalReasons returns all removal reasons in list order.
func RemovalReasons() []RemovalReason {
	out := make([]RemovalReason, len(removalOrder))
	copy(out, removalOrder)
	return out
}

// RemovalReasonByCode resolves a TOOI code to a removal reason.
func RemovalReasonByCode(code string) (RemovalReason, bool) {
	r := RemovalReason(code)
	_, ok := removalLabels[r]
	return r, ok
}
