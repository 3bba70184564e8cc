package tcpexport

import "encoding/json"

// Seuil is one ventilatory threshold in the export document.
type Seuil struct {
	VO2            *float64 `json:"vo2"`
	Allure         *float64 `json:"allure"`
	FC             *int     `json:"fc"`
	PourcentageVMA *int     `json:"pourcentage_vma"`
}

type VO2Max struct {
	Valeur *float64 `json:"valeur"`
	FCMax  *int     `json:"fc_max"`
}

type VMA struct {
	Valeur *float64 `json:"valeur"`
}

type Seuils struct {
	SV1    Seuil  `json:"SV1"`
	SV2    Seuil  `json:"SV2"`
	VO2Max VO2Max `json:"VO2_max"`
	VMA    VMA    `json:"VMA"`
}

// Consentements records the signed consent checkboxes. The image right is
// only kept in the profile, not required by the document.
type Consentements struct {
	Risques bool `json:"risques"`
	Donnees bool `json:"donnees"`
	Anonyme bool `json:"anonyme"`
	Image   bool `json:"image,omitempty"`
}

type Protocole struct {
	VitesseDepartTest *float64 `json:"vitesse_depart_test"`
	Description       string   `json:"description"`
}

// LactateMeasure is one complete speed/lactate pair kept in the document.
type LactateMeasure struct {
	Vitesse float64 `json:"vitesse"`
	Lactate float64 `json:"lactate"`
}

type TestLactate struct {
	Actif   bool             `json:"actif"`
	Mesures []LactateMeasure `json:"mesures"`
}

// PatientInfo is the flattened athlete block of the document. Field names
// follow the downstream loader, which is French.
type PatientInfo struct {
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	DateNaissance string `json:"date_naissance"`
	Age           *int   `json:"age"`
	SportBase     string `json:"sport_base"`
	Specialty     string `json:"specialty"`
	HasCoach      bool   `json:"has_coach"`

	TailleCM    *float64 `json:"taille_cm"`
	PoidsActuel *float64 `json:"poids_actuel"`
	PoidsDebut  *float64 `json:"poids_debut"`
	PoidsFinal  *float64 `json:"poids_final"`

	Metier        string `json:"metier"`
	HeuresTravail *int   `json:"heures_travail"`

	MarqueMontre string   `json:"marque_montre"`
	VO2Montre    *float64 `json:"vo2_montre"`
	FCRepos      *int     `json:"fc_repos"`
	FCMaxEver    *int     `json:"fcmax_ever"`
	VolumeCAP    *float64 `json:"volume_cap"`

	Prediction5K       string `json:"prediction_5k"`
	Prediction10K      string `json:"prediction_10k"`
	PredictionSemi     string `json:"prediction_semi"`
	PredictionMarathon string `json:"prediction_marathon"`

	RecordsOfficiels string   `json:"records_officiels"`
	TrailRunner      bool     `json:"trail_runner"`
	UTMBIndex        *float64 `json:"utmb_index"`
	Objectifs        string   `json:"objectifs"`

	SeanceVeille string `json:"seance_veille"`
	Observations string `json:"observations"`

	LastStageSpeed *float64 `json:"last_stage_speed"`
	AnneeDebut     *int     `json:"annee_debut"`

	RSIAvant *float64   `json:"rsi_avant"`
	RSIApres *float64   `json:"rsi_apres"`
	CMJAvant CMJMeasure `json:"cmj_avant"`
	CMJApres CMJMeasure `json:"cmj_apres"`

	NotesPrivees string `json:"notes_privees"`

	AltitudeVieM    *int     `json:"altitude_vie_m"`
	SpO2Avant       *float64 `json:"spo2_avant"`
	SpO2Apres       *float64 `json:"spo2_apres"`
	LactatemieRepos *float64 `json:"lactatemie_repos"`
}

// GraphCurve is one plotted series. Series in the same graph share the
// bucket timeline.
type GraphCurve struct {
	Nom           string    `json:"nom"`
	Couleur       string    `json:"couleur"`
	Type          string    `json:"type"`
	TempsSecondes []float64 `json:"temps_secondes"`
	Valeurs       []float64 `json:"valeurs"`
	Dash          string    `json:"dash,omitempty"`
}

type Graph struct {
	Titre   string       `json:"titre"`
	Courbes []GraphCurve `json:"courbes"`
}

// ZoneSeuil is an annotation band on the graphs: an SV1/SV2 span or the
// single VO2max point.
type ZoneSeuil struct {
	Nom           string   `json:"nom"`
	Couleur       string   `json:"couleur"`
	Label         string   `json:"label"`
	FCMin         *int     `json:"fc_min,omitempty"`
	FCMax         *int     `json:"fc_max,omitempty"`
	FC            *int     `json:"fc,omitempty"`
	TempsDebutSec *float64 `json:"temps_debut_sec,omitempty"`
	TempsFinSec   *float64 `json:"temps_fin_sec,omitempty"`
	TempsSec      *float64 `json:"temps_sec,omitempty"`
}

type Graphiques struct {
	Graphique1  *Graph      `json:"graphique_1"`
	Graphique2  *Graph      `json:"graphique_2"`
	ZonesSeuils []ZoneSeuil `json:"zones_seuils"`
}

// MarshalJSON collapses the whole object to {} when no measurement stream
// was available; the downstream loader checks for the empty object.
func (g Graphiques) MarshalJSON() ([]byte, error) {
	if g.Graphique1 == nil && g.Graphique2 == nil && g.ZonesSeuils == nil {
		return []byte("{}"), nil
	}
	type alias Graphiques
	return json.Marshal(alias(g))
}

type Logos struct {
	LogoGauche string `json:"logo_gauche"`
	LogoDroit  string `json:"logo_droit"`
}

type Partenaires struct {
	Titre string   `json:"titre"`
	Logos []string `json:"logos"`
}

// TestResult is the canonical export document, one per athlete and
// session.
type TestResult struct {
	UserID                string        `json:"user_id"`
	AthleteName           string        `json:"athlete_name"`
	TestDate              string        `json:"test_date"`
	TestType              string        `json:"test_type"`
	Consentements         Consentements `json:"consentements"`
	Seuils                Seuils        `json:"seuils"`
	Protocole             Protocole     `json:"protocole"`
	TestLactate           TestLactate   `json:"test_lactate"`
	ObservationsLactate   string        `json:"observations_lactate"`
	PatientInfo           PatientInfo   `json:"patient_info"`
	ConseilsEntrainements string        `json:"conseils_entrainements"`
	Graphiques            Graphiques    `json:"graphiques"`
	Logos                 Logos         `json:"logos"`
	Partenaires           Partenaires   `json:"partenaires"`
}
