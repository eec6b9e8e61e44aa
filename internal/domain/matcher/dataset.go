package matcher

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	defaultDescription = "No description available"
	defaultTreatment   = "Consult healthcare professional"
)

// LoadDataset reads the disease-symptom table from a CSV file with a
// Disease,Symptom_1..Symptom_N,Description,Treatment header. The number of
// symptom slots comes from the header, not a fixed count. Any read or parse
// failure falls back to the embedded seed table, so the returned table is
// never empty.
func LoadDataset(path string, logger zerolog.Logger) []DiseaseRecord {
	records, err := readDatasetCSV(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("disease dataset unavailable, using embedded seed table")
		return seedDiseases()
	}
	logger.Info().Str("path", path).Int("diseases", len(records)).Msg("loaded disease dataset")
	return records
}

func readDatasetCSV(path string) ([]DiseaseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	nameCol, descCol, treatCol := -1, -1, -1
	var symptomCols []int
	for i, col := range rows[0] {
		switch {
		case col == "Disease":
			nameCol = i
		case col == "Description":
			descCol = i
		case col == "Treatment":
			treatCol = i
		case strings.HasPrefix(col, "Symptom_"):
			symptomCols = append(symptomCols, i)
		}
	}
	if nameCol < 0 || len(symptomCols) == 0 {
		return nil, fmt.Errorf("dataset header missing Disease or Symptom_ columns")
	}

	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]DiseaseRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := DiseaseRecord{
			Name:        field(row, nameCol),
			Description: field(row, descCol),
			Treatment:   field(row, treatCol),
		}
		if rec.Name == "" {
			continue
		}
		if rec.Description == "" {
			rec.Description = defaultDescription
		}
		if rec.Treatment == "" {
			rec.Treatment = defaultTreatment
		}
		for _, ci := range symptomCols {
			if s := field(row, ci); s != "" {
				rec.Symptoms = append(rec.Symptoms, s)
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset has no usable rows")
	}
	return records, nil
}

// seedDiseases returns the embedded table used when no dataset file is
// available. The values are fixed; the frontend and the test-suite both
// assume them.
func seedDiseases() []DiseaseRecord {
	return []DiseaseRecord{
		{
			Name:        "Common Cold",
			Symptoms:    []string{"runny nose", "cough", "sore throat"},
			Description: "Viral infection affecting nose and throat",
			Treatment:   "Rest, fluids, over-the-counter medications",
		},
		{
			Name:        "Influenza",
			Symptoms:    []string{"fever", "body aches", "fatigue"},
			Description: "Respiratory illness caused by influenza viruses",
			Treatment:   "Rest, fluids, antiviral medications if prescribed",
		},
		{
			Name:        "Migraine",
			Symptoms:    []string{"headache", "sensitivity to light", "nausea"},
			Description: "Severe headache often with nausea and light sensitivity",
			Treatment:   "Pain relievers, rest in dark room, avoid triggers",
		},
		{
			Name:        "Food Poisoning",
			Symptoms:    []string{"nausea", "vomiting", "diarrhea"},
			Description: "Illness caused by consuming contaminated food",
			Treatment:   "Hydration, bland diet, medical attention if severe",
		},
		{
			Name:        "Allergic Reaction",
			Symptoms:    []string{"rash", "itching", "swelling"},
			Description: "Immune system reaction to allergens",
			Treatment:   "Avoid allergens, antihistamines, medical evaluation",
		},
		{
			Name:        "Anxiety",
			Symptoms:    []string{"worry", "restlessness", "rapid heartbeat"},
			Description: "Mental health condition characterized by excessive worry",
			Treatment:   "Therapy, relaxation techniques, medical consultation",
		},
		{
			Name:        "Hypertension",
			Symptoms:    []string{"high blood pressure", "headache", "dizziness"},
			Description: "Condition where blood pressure is consistently high",
			Treatment:   "Lifestyle changes, medication as prescribed",
		},
		{
			Name:        "Diabetes",
			Symptoms:    []string{"frequent urination", "excessive thirst", "blurred vision"},
			Description: "Metabolic disorder affecting blood sugar levels",
			Treatment:   "Diet management, exercise, medication as prescribed",
		},
		{
			Name:        "Asthma",
			Symptoms:    []string{"shortness of breath", "wheezing", "cough"},
			Description: "Respiratory condition causing breathing difficulties",
			Treatment:   "Inhalers, avoid triggers, medical management",
		},
		{
			Name:        "Gastritis",
			Symptoms:    []string{"stomach pain", "bloating", "acid reflux"},
			Description: "Inflammation of stomach lining",
			Treatment:   "Dietary changes, medications, avoid irritants",
		},
		{
			Name:        "Insomnia",
			Symptoms:    []string{"difficulty sleeping", "fatigue", "irritability"},
			Description: "Sleep disorder preventing adequate rest",
			Treatment:   "Sleep hygiene, stress management, medical evaluation",
		},
		{
			Name:        "Depression",
			Symptoms:    []string{"sadness", "loss of interest", "fatigue"},
			Description: "Mental health condition affecting mood and behavior",
			Treatment:   "Therapy, lifestyle changes, medical consultation",
		},
	}
}
