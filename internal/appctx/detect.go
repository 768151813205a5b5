package appctx

import (
	"encoding/json"
	"sort"
)

// Format tags which export shape a raw document carried.
type Format string

const (
	// FormatAssessment is the structured technical-assessment export
	// (app_overview + detected_technology_running / server_details).
	FormatAssessment Format = "assessment"
	// FormatNarrative is the narrative export
	// (application_overview + server_overviews / key_software).
	FormatNarrative Format = "narrative"
)

// unwrap parses the raw document into a top-level object, unwrapping the
// single-element array most exports arrive in.
func unwrap(raw []byte) (map[string]json.RawMessage, error) {
	var arr []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return nil, &IncompleteDataError{
				MissingFields: []string{"document"},
				Suggestions:   []string{"the export array is empty; include one application record"},
			}
		}
		return arr[0], nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &UnrecognizedFormatError{
			Suggestions: []string{"the input is not a JSON object or a single-element JSON array"},
		}
	}
	return obj, nil
}

// detectFormat classifies the document by its marker fields. The check is
// centralized here so no other code sniffs fields ad hoc.
func detectFormat(doc map[string]json.RawMessage) (Format, error) {
	_, hasAppOverview := doc["app_overview"]
	_, hasDetectedTech := doc["detected_technology_running"]
	_, hasServerDetails := doc["server_details"]
	if hasAppOverview && (hasDetectedTech || hasServerDetails) {
		return FormatAssessment, nil
	}

	_, hasApplicationOverview := doc["application_overview"]
	_, hasServerOverviews := doc["server_overviews"]
	_, hasKeySoftware := doc["key_software"]
	if hasApplicationOverview && (hasServerOverviews || hasKeySoftware) {
		return FormatNarrative, nil
	}

	present := make([]string, 0, len(doc))
	for k := range doc {
		present = append(present, k)
	}
	sort.Strings(present)

	return "", &UnrecognizedFormatError{
		PresentFields: present,
		Suggestions: []string{
			`for the assessment export, provide "app_overview" plus "detected_technology_running" or "server_details"`,
			`for the narrative export, provide "application_overview" plus "server_overviews" or "key_software"`,
		},
	}
}
