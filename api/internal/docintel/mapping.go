package docintel

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// minConfidence drops custom-model values Azure is unsure about rather
// than put a misread into the report.
const minConfidence = 0.8

// fieldTable maps canonical report slots to the field names a trained
// custom model emits. Party-scoped names carry a "{party}" placeholder
// expanded with the table's party tokens.
type fieldTable struct {
	names  map[string]string
	partyA string
	partyB string
}

var tables = map[Language]fieldTable{
	LangEN: {partyA: "PartyA", partyB: "PartyB", names: map[string]string{
		"sheet":             "General_SheetIdentifier",
		"date":              "AccidentDetails_Date",
		"time":              "AccidentDetails_Time",
		"locality":          "AccidentDetails_Locality",
		"place":             "AccidentDetails_Place",
		"country":           "AccidentDetails_Country",
		"injuries_occurred": "Injuries_Occurred",
		"injuries_desc":     "Injuries_Description",
		"md_other_vehicles": "MaterialDamage_OtherThanVehiclesAB",
		"md_other_object":   "MaterialDamage_OtherObjects",
		"md_desc":           "MaterialDamage_Description",

		"witness1_name":        "Witness1_Name",
		"witness1_first_name":  "Witness1_FirstName",
		"witness1_address":     "Witness1_Address",
		"witness1_postal_code": "Witness1_PostalCode",
		"witness1_country":     "Witness1_Country",
		"witness1_telephone":   "Witness1_Telephone",
		"witness1_email":       "Witness1_Email",

		"ph_name":        "{party}_Policyholder_Name",
		"ph_first_name":  "{party}_Policyholder_FirstName",
		"ph_address":     "{party}_Policyholder_Address",
		"ph_postal_code": "{party}_Policyholder_PostalCode",
		"ph_country":     "{party}_Policyholder_Country",
		"ph_tel_email":   "{party}_Policyholder_TelephoneEmail",

		"veh_make_type":       "{party}_Vehicle_Motor_MakeType",
		"veh_reg_no":          "{party}_Vehicle_Motor_RegistrationNumber",
		"veh_country_reg":     "{party}_Vehicle_Motor_CountryOfRegistration",
		"trailer_reg_no":      "{party}_Vehicle_Trailer_RegistrationNumber",
		"trailer_country_reg": "{party}_Vehicle_Trailer_CountryOfRegistration",

		"ins_company":        "{party}_Insurance_CompanyName",
		"ins_policy_no":      "{party}_Insurance_PolicyNumber",
		"ins_green_card":     "{party}_Insurance_GreenCardNumber",
		"ins_valid_from":     "{party}_Insurance_ValidFrom",
		"ins_valid_to":       "{party}_Insurance_ValidTo",
		"ins_agency_name":    "{party}_Insurance_Agency_Name",
		"ins_agency_address": "{party}_Insurance_Agency_Address",
		"ins_agency_country": "{party}_Insurance_Agency_Country",
		"ins_agency_tel":     "{party}_Insurance_Agency_TelephoneEmail",
		"ins_md_covered":     "{party}_Insurance_MaterialDamageCovered",

		"drv_name":        "{party}_Driver_Name",
		"drv_first_name":  "{party}_Driver_FirstName",
		"drv_dob":         "{party}_Driver_DateOfBirth",
		"drv_address":     "{party}_Driver_Address",
		"drv_postal_code": "{party}_Driver_PostalCode",
		"drv_country":     "{party}_Driver_Country",
		"drv_tel_email":   "{party}_Driver_TelephoneEmail",
		"drv_licence_no":  "{party}_Driver_DrivingLicenceNumber",
		"drv_licence_cat": "{party}_Driver_DrivingLicenceCategory",
		"drv_licence_ok":  "{party}_Driver_DrivingLicenceValidUntil",

		"impact_point":   "{party}_InitialImpactPoint",
		"visible_damage": "{party}_VisibleDamage",
		"remarks":        "{party}_Remarks",
		"signed_by":      "{party}_SignedBy",

		"circ_1":     "{party}_Circumstance_ParkedStopped",
		"circ_2":     "{party}_Circumstance_LeavingParking",
		"circ_3":     "{party}_Circumstance_EnteringParking",
		"circ_4":     "{party}_Circumstance_EmergingCarParkPrivateDriveway",
		"circ_5":     "{party}_Circumstance_EnteringCarParkPrivateDriveway",
		"circ_6":     "{party}_Circumstance_EnteringRoundabout",
		"circ_7":     "{party}_Circumstance_CirculatingRoundabout",
		"circ_8":     "{party}_Circumstance_StrikingRearSameDirectionLane",
		"circ_9":     "{party}_Circumstance_GoingSameDirectionDifferentLane",
		"circ_10":    "{party}_Circumstance_ChangingLanes",
		"circ_11":    "{party}_Circumstance_Overtaking",
		"circ_12":    "{party}_Circumstance_TurningRight",
		"circ_13":    "{party}_Circumstance_TurningLeft",
		"circ_14":    "{party}_Circumstance_Reversing",
		"circ_15":    "{party}_Circumstance_EncroachingOppositeLane",
		"circ_16":    "{party}_Circumstance_ComingFromRightJunction",
		"circ_17":    "{party}_Circumstance_HadNotObservedPriorityRedLight",
		"circ_total": "{party}_Circumstance_BoxesMarkedTotal",

		"sketch_desc":       "Sketch_Description",
		"sketch_layout":     "Sketch_Layout",
		"sketch_arrows":     "Sketch_Arrows",
		"sketch_positions":  "Sketch_Positions",
		"sketch_road_lines": "Sketch_RoadLines",

		"final_liability": "Final_LiabilityAdmission",
		"final_note":      "Final_Note",
	}},

	LangDE: {partyA: "ParteiA", partyB: "ParteiB", names: map[string]string{
		"sheet":             "Allgemein_Blattnummer",
		"date":              "Unfalldetails_Datum",
		"time":              "Unfalldetails_Uhrzeit",
		"locality":          "Unfalldetails_OertlichkeitStrasseNr",
		"place":             "Unfalldetails_OrtPLZ",
		"country":           "Unfalldetails_Land",
		"injuries_occurred": "Verletzungen_JaNein",
		"injuries_desc":     "Verletzungen_NamenAnschriften",
		"md_other_vehicles": "Sachschaeden_AndereKfzAlsAB_JaNein",
		"md_other_object":   "Sachschaeden_AndereGegenstaende_JaNein",
		"md_desc":           "Sachschaeden_Beschreibung",

		"witness1_name":        "Zeuge1_Name",
		"witness1_first_name":  "Zeuge1_Vorname",
		"witness1_address":     "Zeuge1_Anschrift",
		"witness1_postal_code": "Zeuge1_PLZ",
		"witness1_country":     "Zeuge1_Land",
		"witness1_telephone":   "Zeuge1_Telefon",
		"witness1_email":       "Zeuge1_Email",

		"ph_name":        "{party}_Versicherungsnehmer_Name",
		"ph_first_name":  "{party}_Versicherungsnehmer_Vorname",
		"ph_address":     "{party}_Versicherungsnehmer_Anschrift",
		"ph_postal_code": "{party}_Versicherungsnehmer_PLZ",
		"ph_country":     "{party}_Versicherungsnehmer_Land",
		"ph_tel_email":   "{party}_Versicherungsnehmer_TelefonEmail",

		"veh_make_type":       "{party}_Fahrzeug_MarkeTyp",
		"veh_reg_no":          "{party}_Fahrzeug_AmtlKennzeichen",
		"veh_country_reg":     "{party}_Fahrzeug_Zulassungsland",
		"trailer_reg_no":      "{party}_Anhaenger_AmtlKennzeichen",
		"trailer_country_reg": "{party}_Anhaenger_Zulassungsland",

		"ins_company":        "{party}_Versicherung_Gesellschaft",
		"ins_policy_no":      "{party}_Versicherung_ScheinNr",
		"ins_green_card":     "{party}_Versicherung_GrueneKarteNr",
		"ins_valid_from":     "{party}_Versicherung_GueltigAb",
		"ins_valid_to":       "{party}_Versicherung_GueltigBis",
		"ins_agency_name":    "{party}_Versicherung_AgenturName",
		"ins_agency_address": "{party}_Versicherung_AgenturAnschrift",
		"ins_agency_country": "{party}_Versicherung_AgenturLand",
		"ins_agency_tel":     "{party}_Versicherung_AgenturTelefonEmail",
		"ins_md_covered":     "{party}_Versicherung_SachschaedenGedeckt_JaNein",

		"drv_name":        "{party}_Fahrer_Name",
		"drv_first_name":  "{party}_Fahrer_Vorname",
		"drv_dob":         "{party}_Fahrer_Geburtsdatum",
		"drv_address":     "{party}_Fahrer_Anschrift",
		"drv_postal_code": "{party}_Fahrer_PLZ",
		"drv_country":     "{party}_Fahrer_Land",
		"drv_tel_email":   "{party}_Fahrer_TelefonEmail",
		"drv_licence_no":  "{party}_Fahrer_FuehrerscheinNr",
		"drv_licence_cat": "{party}_Fahrer_FuehrerscheinKategorie",
		"drv_licence_ok":  "{party}_Fahrer_FuehrerscheinGueltigBis",

		"impact_point":   "{party}_Aufprallpunkt",
		"visible_damage": "{party}_SichtbareSchaeden",
		"remarks":        "{party}_Bemerkungen",
		"signed_by":      "{party}_UnterschriftName",

		"circ_1":     "{party}_Umstand_1_GeparktHieltAn",
		"circ_2":     "{party}_Umstand_2_VerliessParkplatz",
		"circ_3":     "{party}_Umstand_3_BogInParkplatzEin",
		"circ_4":     "{party}_Umstand_4_KamAusParkplatz",
		"circ_5":     "{party}_Umstand_5_BogAufParkplatzEin",
		"circ_6":     "{party}_Umstand_6_BogInKreisverkehrEin",
		"circ_7":     "{party}_Umstand_7_FuhrInKreisverkehr",
		"circ_8":     "{party}_Umstand_8_Auffahrunfall",
		"circ_9":     "{party}_Umstand_9_GleicheRichtungAndereSpur",
		"circ_10":    "{party}_Umstand_10_Spurwechsel",
		"circ_11":    "{party}_Umstand_11_Ueberholte",
		"circ_12":    "{party}_Umstand_12_BogRechtsAb",
		"circ_13":    "{party}_Umstand_13_BogLinksAb",
		"circ_14":    "{party}_Umstand_14_FuhrRueckwaerts",
		"circ_15":    "{party}_Umstand_15_GegenverkehrFahrspur",
		"circ_16":    "{party}_Umstand_16_KamVonRechts",
		"circ_17":    "{party}_Umstand_17_VorfahrtMissachtet",
		"circ_total": "{party}_Umstaende_AnzahlAngekreuzt",

		"sketch_desc": "Skizze_Beschreibung",

		"final_liability": "Abschluss_Haftungsanerkennung_JaNein",
		"final_note":      "Abschluss_Bemerkung",
	}},

	LangNL: {partyA: "PartijA", partyB: "PartijB", names: map[string]string{
		"sheet":             "Algemeen_Bladnummer",
		"date":              "Ongeval_Datum",
		"time":              "Ongeval_Tijd",
		"locality":          "Ongeval_PlaatsStraatNr",
		"place":             "Ongeval_Gemeente",
		"country":           "Ongeval_Land",
		"injuries_occurred": "Gewonden_JaNee",
		"injuries_desc":     "Gewonden_NamenAdressen",
		"md_other_vehicles": "Schade_AndereVoertuigenDanAB_JaNee",
		"md_other_object":   "Schade_AndereVoorwerpen_JaNee",
		"md_desc":           "Schade_Beschrijving",

		"witness1_name":        "Getuige1_Naam",
		"witness1_first_name":  "Getuige1_Voornaam",
		"witness1_address":     "Getuige1_Adres",
		"witness1_postal_code": "Getuige1_Postcode",
		"witness1_country":     "Getuige1_Land",
		"witness1_telephone":   "Getuige1_Telefoon",
		"witness1_email":       "Getuige1_Email",

		"ph_name":        "{party}_Verzekeringnemer_Naam",
		"ph_first_name":  "{party}_Verzekeringnemer_Voornaam",
		"ph_address":     "{party}_Verzekeringnemer_Adres",
		"ph_postal_code": "{party}_Verzekeringnemer_Postcode",
		"ph_country":     "{party}_Verzekeringnemer_Land",
		"ph_tel_email":   "{party}_Verzekeringnemer_TelefoonEmail",

		"veh_make_type":       "{party}_Voertuig_MerkType",
		"veh_reg_no":          "{party}_Voertuig_Kenteken",
		"veh_country_reg":     "{party}_Voertuig_LandVanRegistratie",
		"trailer_reg_no":      "{party}_Aanhanger_Kenteken",
		"trailer_country_reg": "{party}_Aanhanger_LandVanRegistratie",

		"ins_company":        "{party}_Verzekering_Maatschappij",
		"ins_policy_no":      "{party}_Verzekering_Polisnummer",
		"ins_green_card":     "{party}_Verzekering_GroeneKaartNummer",
		"ins_valid_from":     "{party}_Verzekering_GeldigVan",
		"ins_valid_to":       "{party}_Verzekering_GeldigTot",
		"ins_agency_name":    "{party}_Verzekering_AgentschapNaam",
		"ins_agency_address": "{party}_Verzekering_AgentschapAdres",
		"ins_agency_country": "{party}_Verzekering_AgentschapLand",
		"ins_agency_tel":     "{party}_Verzekering_AgentschapTelefoonEmail",
		"ins_md_covered":     "{party}_Verzekering_MaterieleSchadeGedekt_JaNee",

		"drv_name":        "{party}_Bestuurder_Naam",
		"drv_first_name":  "{party}_Bestuurder_Voornaam",
		"drv_dob":         "{party}_Bestuurder_Geboortedatum",
		"drv_address":     "{party}_Bestuurder_Adres",
		"drv_postal_code": "{party}_Bestuurder_Postcode",
		"drv_country":     "{party}_Bestuurder_Land",
		"drv_tel_email":   "{party}_Bestuurder_TelefoonEmail",
		"drv_licence_no":  "{party}_Bestuurder_RijbewijsNummer",
		"drv_licence_cat": "{party}_Bestuurder_RijbewijsCategorie",
		"drv_licence_ok":  "{party}_Bestuurder_RijbewijsGeldigTot",

		"impact_point":   "{party}_EersteAanrijdingspunt",
		"visible_damage": "{party}_ZichtbareSchade",
		"remarks":        "{party}_Opmerkingen",
		"signed_by":      "{party}_OndertekendDoor",

		"circ_1":     "{party}_Omstandigheid_1_GeparkeerdStilstand",
		"circ_2":     "{party}_Omstandigheid_2_VerlietParkeerplaats",
		"circ_3":     "{party}_Omstandigheid_3_RegedParkeerplaatsIn",
		"circ_4":     "{party}_Omstandigheid_4_KwamUitParkeerterrein",
		"circ_5":     "{party}_Omstandigheid_5_RegedParkeerterreinIn",
		"circ_6":     "{party}_Omstandigheid_6_RegedRotondeIn",
		"circ_7":     "{party}_Omstandigheid_7_ReedOpRotonde",
		"circ_8":     "{party}_Omstandigheid_8_KopStaartBotsing",
		"circ_9":     "{party}_Omstandigheid_9_ZelfdeRichtingAndereRijstrook",
		"circ_10":    "{party}_Omstandigheid_10_VeranderdeVanRijstrook",
		"circ_11":    "{party}_Omstandigheid_11_HaaldeIn",
		"circ_12":    "{party}_Omstandigheid_12_SloegRechtsAf",
		"circ_13":    "{party}_Omstandigheid_13_SloegLinksAf",
		"circ_14":    "{party}_Omstandigheid_14_ReedAchteruit",
		"circ_15":    "{party}_Omstandigheid_15_KwamOpAndereWeghelft",
		"circ_16":    "{party}_Omstandigheid_16_KwamVanRechts",
		"circ_17":    "{party}_Omstandigheid_17_NegeerdeVoorrang",
		"circ_total": "{party}_Omstandigheid_TotaalAangekruisteVakjes",

		"sketch_desc": "Schets_Beschrijving",

		"final_liability": "Slot_AansprakelijkheidErkend_JaNee",
		"final_note":      "Slot_Opmerking",
	}},
}

// mapAccidentReport turns the custom model's flat field map into the
// canonical report. Fields below the confidence threshold or absent
// from the table are left zero-valued.
func mapAccidentReport(fields map[string]field, lang Language) *AccidentReport {
	t := tables[lang]
	g := extractor{fields: fields, t: t}

	st := AccidentStatement{
		Sheet: g.str("sheet"),
		AccidentDetails: AccidentDetails{
			Date:     parseDate(g.str("date")),
			Time:     parseTime(g.str("time")),
			Locality: g.str("locality"),
			Place:    g.str("place"),
			Country:  g.str("country"),
			Injuries: Injuries{
				Occurred:    g.mark("injuries_occurred"),
				Description: g.str("injuries_desc"),
			},
			MaterialDamage: MaterialDamage{
				OtherThanVehicles: g.mark("md_other_vehicles"),
				OtherObject:       g.mark("md_other_object"),
				Description:       g.str("md_desc"),
			},
			Witnesses: g.witnesses(),
		},
		Vehicles: Vehicles{
			A: g.party(t.partyA),
			B: g.party(t.partyB),
		},
		ImpactSketch: ImpactSketch{
			Description: g.str("sketch_desc"),
			Layout:      g.str("sketch_layout"),
			Arrows:      g.str("sketch_arrows"),
			Positions:   g.str("sketch_positions"),
			RoadLines:   g.str("sketch_road_lines"),
		},
		Final: Final{
			LiabilityAdmission: g.mark("final_liability"),
			Note:               g.str("final_note"),
		},
	}

	return &AccidentReport{Language: lang, AccidentStatement: st}
}

// extractor reads canonical keys out of one analyzed document. party
// methods bind the "{party}" placeholder first.
type extractor struct {
	fields map[string]field
	t      fieldTable
	token  string
}

func (g extractor) resolve(key string) (field, bool) {
	name, ok := g.t.names[key]
	if !ok {
		return field{}, false
	}
	if g.token != "" {
		name = strings.ReplaceAll(name, "{party}", g.token)
	}
	f, ok := g.fields[name]
	if !ok {
		return field{}, false
	}
	if f.Confidence != nil && *f.Confidence < minConfidence {
		log.Printf("docintel: dropping low-confidence field %s (%.2f)", name, *f.Confidence)
		return field{}, false
	}
	return f, true
}

func (g extractor) str(key string) string {
	f, ok := g.resolve(key)
	if !ok {
		return ""
	}
	if f.ValueString != "" {
		return strings.TrimSpace(f.ValueString)
	}
	return strings.TrimSpace(f.Content)
}

func (g extractor) mark(key string) bool {
	f, ok := g.resolve(key)
	return ok && f.Value == "selected"
}

func (g extractor) num(key string) int {
	n, err := strconv.Atoi(g.str(key))
	if err != nil {
		return 0
	}
	return n
}

func (g extractor) witnesses() []Witness {
	name := g.str("witness1_name")
	if name == "" {
		return nil
	}
	country := g.str("witness1_country")
	return []Witness{{
		Name:       name,
		FirstName:  g.str("witness1_first_name"),
		Address:    g.str("witness1_address"),
		PostalCode: parsePostalCode(g.str("witness1_postal_code"), country),
		Country:    country,
		Telephone:  g.str("witness1_telephone"),
		Email:      g.str("witness1_email"),
	}}
}

func (g extractor) party(token string) PartyDetails {
	g.token = token

	phCountry := g.str("ph_country")
	drvCountry := g.str("drv_country")
	return PartyDetails{
		InsuredPolicyholder: Policyholder{
			Name:             g.str("ph_name"),
			FirstName:        g.str("ph_first_name"),
			Address:          g.str("ph_address"),
			PostalCode:       parsePostalCode(g.str("ph_postal_code"), phCountry),
			Country:          phCountry,
			TelephoneOrEmail: g.str("ph_tel_email"),
		},
		Vehicle: VehicleDetail{
			Motor: VehicleMotor{
				MakeType:              g.str("veh_make_type"),
				RegistrationNumber:    g.str("veh_reg_no"),
				CountryOfRegistration: g.str("veh_country_reg"),
			},
			Trailer: VehicleTrailer{
				RegistrationNumber:    g.str("trailer_reg_no"),
				CountryOfRegistration: g.str("trailer_country_reg"),
			},
		},
		Insurance: InsuranceDetails{
			CompanyName:     g.str("ins_company"),
			PolicyNumber:    g.str("ins_policy_no"),
			GreenCardNumber: g.str("ins_green_card"),
			ValidFrom:       parseDate(g.str("ins_valid_from")),
			ValidTo:         parseDate(g.str("ins_valid_to")),
			Agency: InsuranceAgency{
				Name:             g.str("ins_agency_name"),
				Address:          g.str("ins_agency_address"),
				Country:          g.str("ins_agency_country"),
				TelephoneOrEmail: g.str("ins_agency_tel"),
			},
			MaterialDamageCovered: g.mark("ins_md_covered"),
		},
		Driver: Driver{
			Name:                 g.str("drv_name"),
			FirstName:            g.str("drv_first_name"),
			Address:              g.str("drv_address"),
			PostalCode:           parsePostalCode(g.str("drv_postal_code"), drvCountry),
			Country:              drvCountry,
			TelephoneOrEmail:     g.str("drv_tel_email"),
			DateOfBirth:          parseDate(g.str("drv_dob")),
			DrivingLicenceNumber: g.str("drv_licence_no"),
			Category:             g.str("drv_licence_cat"),
			ValidUntil:           parseDate(g.str("drv_licence_ok")),
		},
		InitialImpactPoint: g.str("impact_point"),
		VisibleDamage:      g.str("visible_damage"),
		Circumstances: Circumstances{
			ParkedStopped:         g.mark("circ_1"),
			LeavingParking:        g.mark("circ_2"),
			EnteringParking:       g.mark("circ_3"),
			EmergingCar:           g.mark("circ_4"),
			EnteringCar:           g.mark("circ_5"),
			EnteringRoundabout:    g.mark("circ_6"),
			CirculatingRoundabout: g.mark("circ_7"),
			StrikingRear:          g.mark("circ_8"),
			GoingSameDirection:    g.mark("circ_9"),
			ChangingLanes:         g.mark("circ_10"),
			Overtaking:            g.mark("circ_11"),
			TurningRight:          g.mark("circ_12"),
			TurningLeft:           g.mark("circ_13"),
			Reversing:             g.mark("circ_14"),
			EncroachingLane:       g.mark("circ_15"),
			ComingRight:           g.mark("circ_16"),
			HadNotObserved:        g.mark("circ_17"),
			BoxesMarkedTotal:      g.num("circ_total"),
		},
		Remarks:  g.str("remarks"),
		SignedBy: g.str("signed_by"),
	}
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006", "2006/01/02", "2 January 2006"}

// parseDate normalizes common European date spellings to YYYY-MM-DD.
// Unparseable input is returned untouched so nothing read off the form
// is silently lost.
func parseDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	log.Printf("docintel: unparseable date %q", s)
	return s
}

// parseTime normalizes to HH:MM, accepting HH:MM:SS and H:MM.
func parseTime(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		log.Printf("docintel: unparseable time %q", s)
		return s
	}
	h, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		log.Printf("docintel: unparseable time %q", s)
		return s
	}
	return fmtTwo(h) + ":" + fmtTwo(m)
}

func fmtTwo(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// parsePostalCode keeps a code only when it looks plausible. German
// codes must be exactly five digits; elsewhere any 3-10 alphanumeric
// characters pass.
func parsePostalCode(s, country string) string {
	if s == "" {
		return ""
	}
	var cleaned strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			cleaned.WriteRune(r)
		}
	}
	c := cleaned.String()

	if country == "Deutschland" || country == "Germany" {
		if len(c) == 5 && isDigits(c) {
			return c
		}
		log.Printf("docintel: invalid German postal code %q", s)
		return ""
	}
	if len(c) >= 3 && len(c) <= 10 {
		return s
	}
	log.Printf("docintel: implausible postal code %q", s)
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
