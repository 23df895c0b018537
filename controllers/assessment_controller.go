package controller

import (
	"log"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
	"github.com/rudolfs-eglitis/wasa-risk-assessment/utils"
)

// AssessmentController owns the assessment lifecycle: create, the three
// read views, deletion, and PDF export. Geocoder and Renderer are the two
// external collaborators; either may be nil when unconfigured and the
// affected operations then fail cleanly.
type AssessmentController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Geocoder utils.Geocoder
	Renderer utils.PDFRenderer
}

func NewAssessmentController(db *gorm.DB, logger *log.Logger, geocoder utils.Geocoder, renderer utils.PDFRenderer) *AssessmentController {
	return &AssessmentController{DB: db, Logger: logger, Geocoder: geocoder, Renderer: renderer}
}

// expandConditions matches stored risk names against the conditions table
// and attaches every linked mitigation, grouped uniquely by condition id.
// Names with no curated condition (free-text sentinels like "No remarks")
// silently expand to nothing. An empty input never touches the database.
func (ac *AssessmentController) expandConditions(names []string, conditionType string) ([]models.ConditionDetail, error) {
	if len(names) == 0 {
		return []models.ConditionDetail{}, nil
	}

	var conditions []models.Condition
	if err := ac.DB.Where("name IN ? AND type = ?", names, conditionType).Find(&conditions).Error; err != nil {
		return nil, err
	}
	if len(conditions) == 0 {
		return []models.ConditionDetail{}, nil
	}

	ids := make([]uint, 0, len(conditions))
	for _, cond := range conditions {
		ids = append(ids, cond.ID)
	}

	var links []models.ConditionMitigationRow
	if err := ac.DB.
		Table("condition_mitigations cm").
		Select("cm.condition_id, m.id AS mitigation_id, m.name, m.type").
		Joins("JOIN mitigations m ON m.id = cm.mitigation_id").
		Where("cm.condition_id IN ?", ids).
		Scan(&links).Error; err != nil {
		return nil, err
	}

	return models.GroupConditionMitigations(conditions, links), nil
}

// enrich produces the display-ready record: crew ids resolved to names,
// list columns decoded, and each risk category expanded into condition and
// mitigation detail groups. The today view, the single fetch, and the PDF
// export all go through here so their shapes cannot drift apart.
func (ac *AssessmentController) enrich(a *models.Assessment, names map[string]string) (*models.EnrichedAssessment, error) {
	enriched := &models.EnrichedAssessment{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,

		CreatedBy:      a.CreatedBy,
		CreatedByName:  names[models.FormatID(a.CreatedBy)],
		TeamLeader:     a.TeamLeader,
		TeamLeaderName: names[models.FormatID(a.TeamLeader)],

		JobSiteAddress: a.JobSiteAddress,
		JobSiteLat:     a.JobSiteLat,
		JobSiteLng:     a.JobSiteLng,

		NearestHospitalName:    a.NearestHospitalName,
		NearestHospitalAddress: a.NearestHospitalAddress,
		NearestHospitalPhone:   a.NearestHospitalPhone,

		OnSiteArborists:   models.ResolveCrewNames(a.OnSiteArborists, names),
		WeatherConditions: models.DecodeStringList(a.WeatherConditions),
		MethodsOfWork:     models.DecodeStringList(a.MethodsOfWork),
		LocationRisks:     models.DecodeStringList(a.LocationRisks),
		TreeRisks:         models.DecodeStringList(a.TreeRisks),

		CarKeyLocation:     a.CarKeyLocation,
		AdditionalRisks:    a.AdditionalRisks,
		SafetyConfirmation: a.SafetyConfirmation,
	}

	// the three category expansions are independent lookups
	var g errgroup.Group
	g.Go(func() error {
		details, err := ac.expandConditions(enriched.WeatherConditions, models.ConditionTypeWeather)
		enriched.WeatherConditionDetails = details
		return err
	})
	g.Go(func() error {
		details, err := ac.expandConditions(enriched.LocationRisks, models.ConditionTypeLocation)
		enriched.LocationConditions = details
		return err
	})
	g.Go(func() error {
		details, err := ac.expandConditions(enriched.TreeRisks, models.ConditionTypeTree)
		enriched.TreeConditions = details
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

// userNames loads the id->name map the enrichment needs; one query per
// request regardless of how many records get enriched.
func (ac *AssessmentController) userNames() (map[string]string, error) {
	var users []models.User
	if err := ac.DB.Select("id, name").Find(&users).Error; err != nil {
		return nil, err
	}
	return models.UserNameMap(users), nil
}
