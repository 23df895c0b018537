package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assessment is one submitted on-site risk assessment. The crew list and the
// four risk lists are stored as jsonb snapshots exactly as submitted: crew
// entries are user ids (historically mixed numeric/string), risk entries are
// condition names matched against the conditions table at read time.
// Assessments are immutable after creation and hard-deletable only by their
// creator on the local calendar day they were created.
type Assessment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobSiteAddress string   `gorm:"size:255;not null" json:"job_site_address"`
	JobSiteLat     *float64 `json:"job_site_lat"`
	JobSiteLng     *float64 `json:"job_site_lng"`

	NearestHospitalName    *string `gorm:"size:150" json:"nearest_hospital_name"`
	NearestHospitalAddress *string `gorm:"size:255" json:"nearest_hospital_address"`
	NearestHospitalPhone   *string `gorm:"size:30" json:"nearest_hospital_phone"`

	OnSiteArborists   datatypes.JSON `gorm:"type:jsonb;not null" json:"on_site_arborists"`
	WeatherConditions datatypes.JSON `gorm:"type:jsonb;not null" json:"weather_conditions"`
	MethodsOfWork     datatypes.JSON `gorm:"type:jsonb;not null" json:"methods_of_work"`
	LocationRisks     datatypes.JSON `gorm:"type:jsonb;not null" json:"location_risks"`
	TreeRisks         datatypes.JSON `gorm:"type:jsonb;not null" json:"tree_risks"`

	CarKeyLocation     string `gorm:"size:255" json:"car_key_location"`
	AdditionalRisks    string `gorm:"type:text" json:"additional_risks"`
	SafetyConfirmation bool   `json:"safety_confirmation"`
	TeamLeader         uint   `json:"team_leader"`
	CreatedBy          uint   `gorm:"not null;index" json:"created_by"`
}

// CanBeViewedBy decides whether a user may read (or export) this assessment:
// admins, the creator, and anyone on the crew list. Crew entries and the
// requester id are both normalized to decimal strings before comparison
// because stored crew lists mix numeric and string ids.
func (a *Assessment) CanBeViewedBy(u *User) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() || a.CreatedBy == u.ID {
		return true
	}
	uid := FormatID(u.ID)
	for _, id := range DecodeIDList(a.OnSiteArborists) {
		if id == uid {
			return true
		}
	}
	return false
}

// DeletableBy allows deletion only by the creator and only while "now" falls
// on the same calendar day as the creation timestamp in the given zone.
func (a *Assessment) DeletableBy(userID uint, now time.Time, loc *time.Location) bool {
	if a.CreatedBy != userID {
		return false
	}
	return SameLocalDay(a.CreatedAt, now, loc)
}

// SameLocalDay reports whether two instants share a calendar date in loc.
func SameLocalDay(a, b time.Time, loc *time.Location) bool {
	al, bl := a.In(loc), b.In(loc)
	return al.Year() == bl.Year() && al.Month() == bl.Month() && al.Day() == bl.Day()
}

// HistoryEntry is the light-weight per-assessment shape of the admin history
// view; the calendar groups by date and only needs address and timestamp.
type HistoryEntry struct {
	ID        uint      `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupAssessmentsByDate buckets assessments under their local calendar date
// (YYYY-MM-DD keys). Timestamps are stored in UTC; the bucket is derived
// from the date in loc, so a 23:50 UTC submission lands on the next day for
// a UTC+2 site.
func GroupAssessmentsByDate(assessments []Assessment, loc *time.Location) map[string][]HistoryEntry {
	grouped := make(map[string][]HistoryEntry)
	for _, a := range assessments {
		key := a.CreatedAt.In(loc).Format("2006-01-02")
		grouped[key] = append(grouped[key], HistoryEntry{
			ID:        a.ID,
			Address:   a.JobSiteAddress,
			CreatedAt: a.CreatedAt,
		})
	}
	return grouped
}
