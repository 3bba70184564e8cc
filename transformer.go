package tcpexport

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tcp-export/metalyzer"
)

const (
	// TestType labels every document; the tool only handles VO2max
	// sessions.
	TestType = "VO2max"

	// GraphIntervalSeconds is the bucket width used to downsample the
	// measurement stream for plotting.
	GraphIntervalSeconds = 15

	summarySpeedVariable = "v"
	summaryMaxColumn     = "Valeurs Maximales Absolues"

	bioWeightKey        = "Poids"
	patientLastNameKey  = "Nom"
	patientFirstNameKey = "Prénom"

	defaultLogoPath = "assets/logos/logo1.png"
)

// graphColors matches the downstream chart renderer palette.
var graphColors = map[string]string{
	"FC":    "rgb(255, 0, 0)",
	"V'O2":  "rgb(0, 0, 255)",
	"V'CO2": "rgb(0, 200, 0)",
	"V'E":   "rgb(255, 140, 0)",
	"BF":    "rgb(30, 144, 255)",
	"RER":   "rgb(220, 20, 60)",
}

var curveSpecs = map[string]struct{ nom, dash string }{
	"FC":    {nom: "FC (bpm)"},
	"V'O2":  {nom: "V'O2 (L/min)"},
	"V'CO2": {nom: "V'CO2 (L/min)"},
	"V'E":   {nom: "V'E (L/min)"},
	"BF":    {nom: "BF (/min)"},
	"RER":   {nom: "RER", dash: "dot"},
}

// Transform merges one parsed export with the operator profile into the
// final document. It is pure: no I/O, and missing optional input never
// fails, it just leaves nulls.
func Transform(doc *metalyzer.ParsedDocument, input ManualInput) *TestResult {
	seuils := buildSeuils(doc, input)

	return &TestResult{
		UserID:        input.Email,
		AthleteName:   athleteName(doc),
		TestDate:      doc.FilenameMetadata.Date,
		TestType:      TestType,
		Consentements: input.Consentements,
		Seuils:        seuils,
		Protocole: Protocole{
			VitesseDepartTest: input.StressTest.FirstStageSpeed,
			Description:       input.ProtocolDescription,
		},
		TestLactate:           buildTestLactate(input),
		ObservationsLactate:   input.ObservationsLactate,
		PatientInfo:           buildPatientInfo(doc, input),
		ConseilsEntrainements: input.ConseilsEntrainements,
		Graphiques:            buildGraphiques(doc.Measurements, seuils),
		Logos:                 Logos{LogoGauche: defaultLogoPath, LogoDroit: defaultLogoPath},
		Partenaires:           Partenaires{Titre: "Nos Partenaires", Logos: []string{}},
	}
}

// athleteName prefers the patient block; exports from shared machines only
// carry the identity in the file name.
func athleteName(doc *metalyzer.ParsedDocument) string {
	last := doc.PatientMetadata[patientLastNameKey]
	if last == "" {
		last = doc.FilenameMetadata.LastName
	}
	first := doc.PatientMetadata[patientFirstNameKey]
	if first == "" {
		first = doc.FilenameMetadata.FirstName
	}
	return strings.TrimSpace(last + " " + first)
}

func buildSeuils(doc *metalyzer.ParsedDocument, input ManualInput) Seuils {
	vma := summaryMaxSpeed(doc.SummaryTable)
	return Seuils{
		SV1:    buildSeuil(input.StressTest.Thresholds.SV1, vma),
		SV2:    buildSeuil(input.StressTest.Thresholds.SV2, vma),
		VO2Max: VO2Max{Valeur: input.StressTest.MeasuredVO2Max, FCMax: input.StressTest.MaxHR},
		VMA:    VMA{Valeur: vma},
	}
}

func buildSeuil(t Threshold, vma *float64) Seuil {
	s := Seuil{VO2: t.VO2MlKgMin, Allure: t.PaceKMH, FC: t.HRBPM}
	if s.Allure != nil && *s.Allure != 0 && vma != nil && *vma != 0 {
		pct := int(math.Round(*s.Allure / *vma * 100))
		s.PourcentageVMA = &pct
	}
	return s
}

// summaryMaxSpeed reads the maximum recorded speed, the VMA, from the "v"
// row of the summary table.
func summaryMaxSpeed(summary map[string]map[string]metalyzer.Value) *float64 {
	row, ok := summary[summarySpeedVariable]
	if !ok {
		return nil
	}
	v, ok := row[summaryMaxColumn]
	if !ok {
		return nil
	}
	f, ok := v.Float64()
	if !ok {
		return nil
	}
	return &f
}

// buildTestLactate keeps only complete speed/lactate pairs; the block is
// active when at least one survives.
func buildTestLactate(input ManualInput) TestLactate {
	mesures := make([]LactateMeasure, 0, len(input.StressTest.LactateProfile))
	for _, e := range input.StressTest.LactateProfile {
		if e.Speed == nil || e.LactateMmolL == nil {
			continue
		}
		mesures = append(mesures, LactateMeasure{Vitesse: *e.Speed, Lactate: *e.LactateMmolL})
	}
	return TestLactate{Actif: len(mesures) > 0, Mesures: mesures}
}

func buildPatientInfo(doc *metalyzer.ParsedDocument, input ManualInput) PatientInfo {
	poidsDebut := input.BodyComposition.WeightBeforeTest
	if poidsDebut == nil {
		poidsDebut = parseWeight(doc.BioMetadata[bioWeightKey])
	}

	return PatientInfo{
		Nom:           input.Identity.LastName,
		Prenom:        input.Identity.FirstName,
		DateNaissance: input.Identity.DateOfBirth,
		Age:           input.Identity.Age,
		SportBase:     input.Identity.SportPracticed,
		Specialty:     input.Identity.Specialty,
		HasCoach:      input.Identity.HasCoach,

		TailleCM:    input.BodyComposition.HeightCM,
		PoidsActuel: input.BodyComposition.CurrentWeight,
		PoidsDebut:  poidsDebut,
		PoidsFinal:  input.BodyComposition.WeightAfterTest,

		Metier:        input.ProfessionalLife.JobTitle,
		HeuresTravail: input.ProfessionalLife.WorkingHoursPerWeek,

		MarqueMontre: input.Equipment.WatchBrand,
		VO2Montre:    input.Equipment.WatchEstimatedVO2,
		FCRepos:      input.Equipment.MinHRBefore,
		FCMaxEver:    input.Equipment.MaxHREver,
		VolumeCAP:    parseVolume(input.Equipment.AverageWeeklyVolume),

		Prediction5K:       input.Equipment.WatchRacePredictions.FiveK,
		Prediction10K:      input.Equipment.WatchRacePredictions.TenK,
		PredictionSemi:     input.Equipment.WatchRacePredictions.HalfMarathon,
		PredictionMarathon: input.Equipment.WatchRacePredictions.Marathon,

		RecordsOfficiels: input.History.OfficialRecords,
		TrailRunner:      input.History.TrailRunner,
		UTMBIndex:        input.History.UTMBIndex,
		Objectifs:        input.History.UpcomingGoals,

		SeanceVeille: input.SeanceVeille,
		Observations: input.Observations,

		LastStageSpeed: input.StressTest.LastStageSpeed,

		RSIAvant: input.RSI.Avant,
		RSIApres: input.RSI.Apres,
		CMJAvant: input.CMJ.Avant,
		CMJApres: input.CMJ.Apres,

		NotesPrivees: input.NotesPrivees,

		AltitudeVieM:    input.AltitudeVieM,
		SpO2Avant:       input.SpO2.Avant,
		SpO2Apres:       input.SpO2.Apres,
		LactatemieRepos: input.LactatemieRepos,
	}
}

// parseWeight reads the vendor biometric weight string, e.g. "68,2 kg".
func parseWeight(raw string) *float64 {
	if raw == "" {
		return nil
	}
	clean := strings.TrimSpace(strings.ReplaceAll(raw, "kg", ""))
	f, err := strconv.ParseFloat(strings.ReplaceAll(clean, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseVolume strips the unit suffix from the weekly training volume text;
// operators enter "55 km" or "6 h".
func parseVolume(raw string) *float64 {
	if raw == "" {
		return nil
	}
	clean := strings.ReplaceAll(strings.ReplaceAll(raw, "km", ""), "h", "")
	clean = strings.TrimSpace(strings.ReplaceAll(clean, ",", "."))
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &f
}

func buildGraphiques(measurements []metalyzer.Sample, seuils Seuils) Graphiques {
	if len(measurements) == 0 {
		return Graphiques{}
	}
	aggregated := AggregateMeasurements(measurements, GraphIntervalSeconds)

	times := make([]float64, len(aggregated))
	for i, s := range aggregated {
		times[i] = s.TSeconds
	}

	graph1 := &Graph{Titre: "Heart Rate, V'O2 and V'CO2 Evolution", Courbes: []GraphCurve{}}
	for _, field := range []string{"FC", "V'O2", "V'CO2"} {
		if c := buildCurve(aggregated, times, field); c != nil {
			graph1.Courbes = append(graph1.Courbes, *c)
		}
	}

	graph2 := &Graph{Titre: "V'E, RER and Breathing Frequency Evolution", Courbes: []GraphCurve{}}
	for _, field := range []string{"V'E", "BF", "RER"} {
		if c := buildCurve(aggregated, times, field); c != nil {
			graph2.Courbes = append(graph2.Courbes, *c)
		}
	}

	return Graphiques{
		Graphique1:  graph1,
		Graphique2:  graph2,
		ZonesSeuils: buildZones(aggregated, seuils),
	}
}

// buildCurve assembles one plotted series. A field absent from every
// bucket produces no curve at all; buckets without a value plot as 0 so
// every series stays aligned with the shared timeline.
func buildCurve(aggregated []AggregatedSample, times []float64, field string) *GraphCurve {
	values := make([]float64, len(aggregated))
	found := false
	for i, s := range aggregated {
		if v, ok := s.Values[field]; ok {
			values[i] = v
			found = true
		}
	}
	if !found {
		return nil
	}
	spec := curveSpecs[field]
	return &GraphCurve{
		Nom:           spec.nom,
		Couleur:       graphColors[field],
		Type:          "lines",
		TempsSecondes: times,
		Valeurs:       values,
		Dash:          spec.dash,
	}
}

func buildZones(aggregated []AggregatedSample, seuils Seuils) []ZoneSeuil {
	zones := make([]ZoneSeuil, 0, 3)
	if seuils.SV1.FC != nil && *seuils.SV1.FC != 0 {
		if z := findZoneByFC(aggregated, *seuils.SV1.FC, "SV1", "orange"); z != nil {
			zones = append(zones, *z)
		}
	}
	if seuils.SV2.FC != nil && *seuils.SV2.FC != 0 {
		if z := findZoneByFC(aggregated, *seuils.SV2.FC, "SV2", "purple"); z != nil {
			zones = append(zones, *z)
		}
	}
	if seuils.VO2Max.FCMax != nil && *seuils.VO2Max.FCMax != 0 {
		if z := findVO2MaxZone(aggregated, *seuils.VO2Max.FCMax); z != nil {
			zones = append(zones, *z)
		}
	}
	return zones
}

// findZoneByFC locates the time span where the averaged heart rate sits
// within 2% of the threshold target. Bounds are truncated, not rounded;
// the downstream consumer expects these exact integers.
func findZoneByFC(aggregated []AggregatedSample, target int, name, color string) *ZoneSeuil {
	fcMin := int(float64(target) * 0.98)
	fcMax := int(float64(target) * 1.02)

	var times []float64
	for _, s := range aggregated {
		fc, ok := s.Values["FC"]
		if !ok || fc == 0 {
			continue
		}
		if fc >= float64(fcMin) && fc <= float64(fcMax) {
			times = append(times, s.TSeconds)
		}
	}
	if len(times) == 0 {
		return nil
	}
	start, end := times[0], times[0]
	for _, t := range times[1:] {
		if t < start {
			start = t
		}
		if t > end {
			end = t
		}
	}
	return &ZoneSeuil{
		Nom:           name,
		Couleur:       color,
		Label:         fmt.Sprintf("%s\n[%d-%d] bpm", name, fcMin, fcMax),
		FCMin:         &fcMin,
		FCMax:         &fcMax,
		TempsDebutSec: &start,
		TempsFinSec:   &end,
	}
}

// findVO2MaxZone marks the first bucket where the heart rate reaches 98%
// of the manually recorded maximum.
func findVO2MaxZone(aggregated []AggregatedSample, maxHR int) *ZoneSeuil {
	for _, s := range aggregated {
		fc, ok := s.Values["FC"]
		if !ok || fc == 0 {
			continue
		}
		if fc >= float64(maxHR)*0.98 {
			t := s.TSeconds
			hr := maxHR
			return &ZoneSeuil{
				Nom:      "VO2_max",
				Couleur:  "red",
				Label:    fmt.Sprintf("VO2Max\nFC=%d", maxHR),
				FC:       &hr,
				TempsSec: &t,
			}
		}
	}
	return nil
}
