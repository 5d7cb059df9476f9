// Package docintel extracts structured European Accident Statement data
// from form photos via Azure AI Document Intelligence. One canonical
// report schema is shared across languages; per-language custom models
// differ only in their trained field names, captured by mapping tables.
package docintel

import "fmt"

type Language string

const (
	LangDE Language = "de"
	LangEN Language = "en"
	LangNL Language = "nl"
)

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangDE, LangEN, LangNL:
		return Language(s), nil
	}
	return "", fmt.Errorf("unsupported language %q (want de, en or nl)", s)
}

type Injuries struct {
	Occurred    bool   `json:"occurred"`
	Description string `json:"description"`
}

type MaterialDamage struct {
	OtherThanVehicles bool   `json:"other_than_vehicles"`
	OtherObject       bool   `json:"other_object"`
	Description       string `json:"description"`
}

type Witness struct {
	Name       string `json:"name"`
	FirstName  string `json:"first_name"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Telephone  string `json:"telephone"`
	Email      string `json:"email"`
}

type AccidentDetails struct {
	Date           string         `json:"date"` // YYYY-MM-DD
	Time           string         `json:"time"` // HH:MM
	Locality       string         `json:"locality"`
	Place          string         `json:"place"`
	Country        string         `json:"country"`
	Injuries       Injuries       `json:"injuries"`
	MaterialDamage MaterialDamage `json:"material_damage"`
	Witnesses      []Witness      `json:"witnesses"`
}

type Policyholder struct {
	Name             string `json:"name"`
	FirstName        string `json:"first_name"`
	Address          string `json:"address"`
	PostalCode       string `json:"postal_code"`
	Country          string `json:"country"`
	TelephoneOrEmail string `json:"telephone_or_email"`
}

type VehicleMotor struct {
	MakeType              string `json:"make_type"`
	RegistrationNumber    string `json:"registration_number"`
	CountryOfRegistration string `json:"country_of_registration"`
}

type VehicleTrailer struct {
	RegistrationNumber    string `json:"registration_number"`
	CountryOfRegistration string `json:"country_of_registration"`
}

type VehicleDetail struct {
	Motor   VehicleMotor   `json:"motor"`
	Trailer VehicleTrailer `json:"trailer"`
}

type InsuranceAgency struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Country          string `json:"country"`
	TelephoneOrEmail string `json:"telephone_or_email"`
}

type InsuranceDetails struct {
	CompanyName           string          `json:"company_name"`
	PolicyNumber          string          `json:"policy_number"`
	GreenCardNumber       string          `json:"green_card_number"`
	ValidFrom             string          `json:"valid_from"`
	ValidTo               string          `json:"valid_to"`
	Agency                InsuranceAgency `json:"agency"`
	MaterialDamageCovered bool            `json:"material_damage_covered"`
}

type Driver struct {
	Name                 string `json:"name"`
	FirstName            string `json:"first_name"`
	Address              string `json:"address"`
	PostalCode           string `json:"postal_code"`
	Country              string `json:"country"`
	TelephoneOrEmail     string `json:"telephone_or_email"`
	DateOfBirth          string `json:"date_of_birth"`
	DrivingLicenceNumber string `json:"driving_licence_number"`
	Category             string `json:"category"`
	ValidUntil           string `json:"valid_until"`
}

// Circumstances mirrors the 17 tick boxes of the statement's section 12.
type Circumstances struct {
	ParkedStopped         bool `json:"parked_stopped"`
	LeavingParking        bool `json:"leaving_parking"`
	EnteringParking       bool `json:"entering_parking"`
	EmergingCar           bool `json:"emerging_car"`
	EnteringCar           bool `json:"entering_car"`
	EnteringRoundabout    bool `json:"entering_roundabout"`
	CirculatingRoundabout bool `json:"circulating_roundabout"`
	StrikingRear          bool `json:"striking_rear"`
	GoingSameDirection    bool `json:"going_same_direction"`
	ChangingLanes         bool `json:"changing_lanes"`
	Overtaking            bool `json:"overtaking"`
	TurningRight          bool `json:"turning_right"`
	TurningLeft           bool `json:"turning_left"`
	Reversing             bool `json:"reversing"`
	EncroachingLane       bool `json:"encroaching_lane"`
	ComingRight           bool `json:"coming_right"`
	HadNotObserved        bool `json:"had_not_observed"`
	BoxesMarkedTotal      int  `json:"boxes_marked_total"`
}

type PartyDetails struct {
	InsuredPolicyholder Policyholder     `json:"insured_policyholder"`
	Vehicle             VehicleDetail    `json:"vehicle"`
	Insurance           InsuranceDetails `json:"insurance"`
	Driver              Driver           `json:"driver"`
	InitialImpactPoint  string           `json:"initial_impact_point"`
	VisibleDamage       string           `json:"visible_damage"`
	Circumstances       Circumstances    `json:"circumstances"`
	Remarks             string           `json:"remarks"`
	SignedBy            string           `json:"signed_by"`
}

type Vehicles struct {
	A PartyDetails `json:"A"`
	B PartyDetails `json:"B"`
}

type ImpactSketch struct {
	Description string `json:"description"`
	Layout      string `json:"layout"`
	Arrows      string `json:"arrows"`
	Positions   string `json:"positions"`
	RoadLines   string `json:"road_lines"`
}

type Final struct {
	LiabilityAdmission bool   `json:"liability_admission"`
	Note               string `json:"note"`
}

type AccidentStatement struct {
	Sheet           string          `json:"sheet"`
	AccidentDetails AccidentDetails `json:"accident_details"`
	Vehicles        Vehicles        `json:"vehicles"`
	ImpactSketch    ImpactSketch    `json:"impact_sketch"`
	Final           Final           `json:"final"`
}

// AccidentReport is the root document returned to callers.
type AccidentReport struct {
	Language          Language          `json:"language"`
	AccidentStatement AccidentStatement `json:"accident_statement"`
}
