package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// MitigationSummary is the per-mitigation shape embedded in an expanded
// condition group.
type MitigationSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ConditionDetail is one expanded condition: the matched condition row plus
// every mitigation linked to it. Conditions without links carry an empty
// (never nil) mitigations slice.
type ConditionDetail struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Mitigations []MitigationSummary `json:"mitigations"`
}

// ConditionMitigationRow is one row of the condition_mitigations join
// scanned together with the linked mitigation's fields.
type ConditionMitigationRow struct {
	ConditionID  uint   `json:"condition_id"`
	MitigationID uint   `json:"mitigation_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

// EnrichedAssessment is the display-ready record served by the today view,
// the single-record fetch, and the PDF exporter. All three paths must
// produce this exact shape for the same stored row.
type EnrichedAssessment struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CreatedBy      uint   `json:"created_by"`
	CreatedByName  string `json:"created_by_name"`
	TeamLeader     uint   `json:"team_leader"`
	TeamLeaderName string `json:"team_leader_name"`

	JobSiteAddress string   `json:"job_site_address"`
	JobSiteLat     *float64 `json:"job_site_lat"`
	JobSiteLng     *float64 `json:"job_site_lng"`

	NearestHospitalName    *string `json:"nearest_hospital_name"`
	NearestHospitalAddress *string `json:"nearest_hospital_address"`
	NearestHospitalPhone   *string `json:"nearest_hospital_phone"`

	OnSiteArborists   []string `json:"on_site_arborists"`
	WeatherConditions []string `json:"weather_conditions"`
	MethodsOfWork     []string `json:"methods_of_work"`
	LocationRisks     []string `json:"location_risks"`
	TreeRisks         []string `json:"tree_risks"`

	CarKeyLocation     string `json:"car_key_location"`
	AdditionalRisks    string `json:"additional_risks"`
	SafetyConfirmation bool   `json:"safety_confirmation"`

	WeatherConditionDetails []ConditionDetail `json:"weather_conditions_details"`
	LocationConditions      []ConditionDetail `json:"location_conditions"`
	TreeConditions          []ConditionDetail `json:"tree_conditions"`
}

// GroupConditionMitigations regroups a flat join result by condition id.
// Every matched condition appears exactly once, in the order the conditions
// were queried; link rows pointing at unmatched conditions or missing
// mitigations are skipped.
func GroupConditionMitigations(conditions []Condition, links []ConditionMitigationRow) []ConditionDetail {
	details := make([]ConditionDetail, 0, len(conditions))
	index := make(map[uint]int, len(conditions))
	for _, c := range conditions {
		index[c.ID] = len(details)
		details = append(details, ConditionDetail{
			ID:          c.ID,
			Name:        c.Name,
			Type:        c.Type,
			Mitigations: []MitigationSummary{},
		})
	}
	for _, link := range links {
		i, ok := index[link.ConditionID]
		if !ok || link.MitigationID == 0 {
			continue
		}
		details[i].Mitigations = append(details[i].Mitigations, MitigationSummary{
			ID:   link.MitigationID,
			Name: link.Name,
			Type: link.Type,
		})
	}
	return details
}

// DecodeStringList decodes a stored jsonb list into its string entries.
// Anything that is not a JSON array of strings decodes to an empty list
// rather than an error; historical rows contain the occasional malformed
// value.
func DecodeStringList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DecodeIDList decodes a stored jsonb crew list into decimal-string ids.
// Entries arrive as JSON numbers or strings depending on the client that
// submitted them; both normalize to the same representation ("7") so that
// membership checks never miss on type.
func DecodeIDList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var items []interface{}
	if err := dec.Decode(&items); err != nil {
		return out
	}
	for _, item := range items {
		switch v := item.(type) {
		case json.Number:
			out = append(out, v.String())
		case string:
			if s := strings.TrimSpace(v); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// FormatID renders a numeric id in the canonical decimal-string form used
// for crew comparisons and name lookups.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// UserNameMap indexes users by their decimal-string id for crew resolution.
func UserNameMap(users []User) map[string]string {
	m := make(map[string]string, len(users))
	for _, u := range users {
		m[FormatID(u.ID)] = u.Name
	}
	return m
}

// ResolveCrewNames maps a stored crew list to display names. Dangling ids
// render as a placeholder instead of failing: crews outlive accounts.
func ResolveCrewNames(raw datatypes.JSON, names map[string]string) []string {
	ids := DecodeIDList(raw)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		} else {
			out = append(out, fmt.Sprintf("Unknown User (ID: %s)", id))
		}
	}
	return out
}
