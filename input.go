// Package tcpexport merges MetaLyzer TCP spreadsheet exports with
// operator-entered athlete profiles into the normalized VO2max test
// document consumed by the downstream reporting stack.
package tcpexport

// ManualInput is the operator-entered athlete/session profile, stored as a
// JSON file next to the export. Everything beyond the email is optional;
// the transform tolerates any zero value.
type ManualInput struct {
	Email         string        `json:"email"`
	Consentements Consentements `json:"consentements"`

	Identity         Identity          `json:"identity"`
	BodyComposition  BodyComposition   `json:"body_composition"`
	ProfessionalLife ProfessionalLife  `json:"professional_life"`
	Equipment        EquipmentTracking `json:"equipment_and_tracking"`
	History          HistoryGoals      `json:"history_and_goals"`

	SeanceVeille        string `json:"seance_veille"`
	Observations        string `json:"observations"`
	ProtocolDescription string `json:"protocol_description"`

	StressTest StressTestResults `json:"stress_test_results"`

	ObservationsLactate   string `json:"observations_lactate"`
	ConseilsEntrainements string `json:"conseils_entrainements"`

	RSI             PrePost  `json:"rsi"`
	CMJ             CMJPair  `json:"cmj"`
	SpO2            PrePost  `json:"spo2"`
	LactatemieRepos *float64 `json:"lactatemie_repos"`
	AltitudeVieM    *int     `json:"altitude_vie_m"`
	NotesPrivees    string   `json:"notes_privees"`
}

type Identity struct {
	LastName       string `json:"last_name"`
	FirstName      string `json:"first_name"`
	DateOfBirth    string `json:"date_of_birth"`
	Age            *int   `json:"age"`
	SportPracticed string `json:"sport_practiced"`
	Specialty      string `json:"specialty"`
	HasCoach       bool   `json:"has_coach"`
}

type BodyComposition struct {
	HeightCM         *float64 `json:"height_cm"`
	CurrentWeight    *float64 `json:"current_weight"`
	WeightBeforeTest *float64 `json:"weight_before_test"`
	WeightAfterTest  *float64 `json:"weight_after_test"`
}

type ProfessionalLife struct {
	JobTitle            string `json:"job_title"`
	WorkingHoursPerWeek *int   `json:"working_hours_per_week"`
}

// RacePredictions holds free-text race times, "hh:mm:ss" by convention.
type RacePredictions struct {
	FiveK        string `json:"5k"`
	TenK         string `json:"10k"`
	HalfMarathon string `json:"half_marathon"`
	Marathon     string `json:"marathon"`
}

type EquipmentTracking struct {
	WatchBrand           string          `json:"watch_brand"`
	WatchEstimatedVO2    *float64        `json:"watch_estimated_vo2"`
	MinHRBefore          *int            `json:"min_hr_before"`
	MaxHREver            *int            `json:"max_hr_ever"`
	AverageWeeklyVolume  string          `json:"average_weekly_volume"`
	WatchRacePredictions RacePredictions `json:"watch_race_predictions"`
}

type HistoryGoals struct {
	PersonalRecords RacePredictions `json:"personal_records"`
	OfficialRecords string          `json:"official_records"`
	TrailRunner     bool            `json:"trail_runner"`
	UTMBIndex       *float64        `json:"utmb_index"`
	UpcomingGoals   string          `json:"upcoming_goals"`
}

// Threshold is one ventilatory threshold as read off the test by the
// operator.
type Threshold struct {
	HRBPM      *int     `json:"hr_bpm"`
	PaceKMH    *float64 `json:"pace_km_h"`
	VO2MlKgMin *float64 `json:"vo2_ml_kg_min"`
}

type Thresholds struct {
	SV1 Threshold `json:"sv1"`
	SV2 Threshold `json:"sv2"`
}

// LactateEntry is one blood sample taken during the stage protocol. Both
// fields must be present for the entry to count.
type LactateEntry struct {
	Speed        *float64 `json:"speed"`
	LactateMmolL *float64 `json:"lactate_mmol_l"`
}

type StressTestResults struct {
	Thresholds      Thresholds     `json:"thresholds"`
	MeasuredVO2Max  *float64       `json:"measured_vo2max"`
	MaxHR           *int           `json:"max_hr"`
	FirstStageSpeed *float64       `json:"first_stage_speed"`
	LastStageSpeed  *float64       `json:"last_stage_speed"`
	LactateProfile  []LactateEntry `json:"lactate_profile"`
}

// PrePost pairs a before/after measurement (RSI, SpO2).
type PrePost struct {
	Avant *float64 `json:"avant"`
	Apres *float64 `json:"apres"`
}

// CMJMeasure is one counter-movement jump result.
type CMJMeasure struct {
	HauteurCM       *float64 `json:"hauteur_cm"`
	ForceMaxKgfKg   *float64 `json:"force_max_kfg_kg"`
	PuissanceMaxWKg *float64 `json:"puissance_max_w_kg"`
}

type CMJPair struct {
	Avant CMJMeasure `json:"avant"`
	Apres CMJMeasure `json:"apres"`
}
