package utils

import (
	"bytes"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/sirupsen/logrus"

	"github.com/rudolfs-eglitis/wasa-risk-assessment/models"
)

// PDFRenderer turns a fully-enriched assessment into a printable document.
// The caller owns access control and enrichment; the renderer only shapes
// bytes.
type PDFRenderer interface {
	RenderAssessment(a *models.EnrichedAssessment) ([]byte, error)
}

// WkhtmltopdfRenderer renders the assessment as HTML and hands it to
// wkhtmltopdf for A4 output. Requires the wkhtmltopdf binary on PATH.
type WkhtmltopdfRenderer struct {
	log *logrus.Logger
}

func NewWkhtmltopdfRenderer(log *logrus.Logger) *WkhtmltopdfRenderer {
	return &WkhtmltopdfRenderer{log: log}
}

func (r *WkhtmltopdfRenderer) RenderAssessment(a *models.EnrichedAssessment) ([]byte, error) {
	var buf bytes.Buffer
	if err := assessmentTemplate.Execute(&buf, a); err != nil {
		r.log.WithError(err).Error("assessment template rendering failed")
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		r.log.WithError(err).Error("wkhtmltopdf unavailable")
		return nil, err
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes())))

	if err := pdfg.Create(); err != nil {
		r.log.WithError(err).WithField("assessment_id", a.ID).Error("pdf generation failed")
		return nil, err
	}
	return pdfg.Bytes(), nil
}

var assessmentTemplate = template.Must(template.New("assessment").Parse(`
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; padding: 40px; }
      h1 { font-size: 24px; margin-bottom: 10px; }
      h2 { font-size: 18px; margin-top: 30px; }
      ul { padding-left: 20px; }
      li { margin-bottom: 6px; }
      p { margin: 6px 0; }
    </style>
  </head>
  <body>
    <h1>Wasa Tr&auml;df&auml;llning Risk Assessment #{{.ID}}</h1>

    <p><strong>Date:</strong> {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
    <p><strong>Created by:</strong> {{.CreatedByName}}</p>
    <p><strong>Team leader:</strong> {{if .TeamLeaderName}}{{.TeamLeaderName}}{{else}}N/A{{end}}</p>
    <p><strong>Job site address:</strong> {{.JobSiteAddress}}</p>
    <p><strong>Coordinates:</strong> {{if .JobSiteLat}}{{.JobSiteLat}}, {{.JobSiteLng}}{{end}}</p>

    <p><strong>Nearest hospital:</strong> {{if .NearestHospitalName}}{{.NearestHospitalName}} ({{if .NearestHospitalAddress}}{{.NearestHospitalAddress}}{{else}}N/A{{end}}){{else}}N/A{{end}}</p>
    <p><strong>Hospital phone:</strong> {{if .NearestHospitalPhone}}{{.NearestHospitalPhone}}{{else}}N/A{{end}}</p>

    <p><strong>Car key &amp; First Aid location:</strong> {{if .CarKeyLocation}}{{.CarKeyLocation}}{{else}}Not specified{{end}}</p>

    <h2>Crew</h2>
    <ul>
      {{range .OnSiteArborists}}<li>{{.}}</li>{{else}}<li>No crew listed</li>{{end}}
    </ul>

    <h2>Methods of Work</h2>
    <ul>
      {{range .MethodsOfWork}}<li>{{.}}</li>{{else}}<li>No methods listed</li>{{end}}
    </ul>

    <h2>Tree Risks &amp; Mitigations</h2>
    <ul>
      {{range .TreeConditions}}<li><strong>{{.Name}}:</strong> {{range $i, $m := .Mitigations}}{{if $i}}, {{end}}{{$m.Name}}{{else}}No mitigations listed{{end}}</li>{{else}}<li>No tree risks specified</li>{{end}}
    </ul>

    <h2>Location Risks &amp; Mitigations</h2>
    <ul>
      {{range .LocationConditions}}<li><strong>{{.Name}}:</strong> {{range $i, $m := .Mitigations}}{{if $i}}, {{end}}{{$m.Name}}{{else}}No mitigations listed{{end}}</li>{{else}}<li>No location risks specified</li>{{end}}
    </ul>

    <h2>Weather Risks &amp; Mitigations</h2>
    <ul>
      {{range .WeatherConditionDetails}}<li><strong>{{.Name}}:</strong> {{range $i, $m := .Mitigations}}{{if $i}}, {{end}}{{$m.Name}}{{else}}No mitigations listed{{end}}</li>{{else}}<li>No weather risks specified</li>{{end}}
    </ul>

    <h2>Additional Risks</h2>
    <p>{{if .AdditionalRisks}}{{.AdditionalRisks}}{{else}}None listed{{end}}</p>

    <h2>Work Plan Confirmation</h2>
    <p><strong>All members of the crew are aware of the work plan, have appropriate PPE, and work can be carried out safely:</strong>
    {{if .SafetyConfirmation}}Yes{{else}}No{{end}}</p>
  </body>
</html>`))
