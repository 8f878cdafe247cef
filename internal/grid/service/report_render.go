package service

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/maham-nadeemm/APDS/internal/grid/entity"
)

const reportTimeLayout = "2006-01-02 15:04"

// renderReportText lays the report out as a plain text document.
func renderReportText(report *entity.ResolutionReport) string {
	var b strings.Builder

	b.WriteString("FAULT RESOLUTION REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Report ID:   %s\n", report.ID)
	fmt.Fprintf(&b, "Fault ID:    %s\n", report.FaultID)
	fmt.Fprintf(&b, "Status:      %s\n", report.Status)
	if report.Fault != nil && report.Fault.Equipment != nil {
		fmt.Fprintf(&b, "Equipment:   %s (%s)\n", report.Fault.Equipment.Name, report.Fault.Equipment.Code)
	}
	if report.Preparer != nil {
		fmt.Fprintf(&b, "Prepared by: %s\n", report.Preparer.FullName)
	}
	fmt.Fprintf(&b, "Created:     %s\n", report.CreatedAt.Format(reportTimeLayout))
	if report.ApprovedAt != nil {
		fmt.Fprintf(&b, "Approved:    %s\n", report.ApprovedAt.Format(reportTimeLayout))
	}

	b.WriteString("\nRESOLUTION\n" + strings.Repeat("-", 60) + "\n")
	b.WriteString(report.ResolutionDescription + "\n")

	b.WriteString("\nACTIONS TAKEN\n" + strings.Repeat("-", 60) + "\n")
	b.WriteString(report.ActionsTaken + "\n")

	if report.PreventiveMeasures != "" {
		b.WriteString("\nPREVENTIVE MEASURES\n" + strings.Repeat("-", 60) + "\n")
		b.WriteString(report.PreventiveMeasures + "\n")
	}

	if report.RCA != nil {
		b.WriteString("\nROOT CAUSE ANALYSIS\n" + strings.Repeat("-", 60) + "\n")
		b.WriteString(report.RCA.RootCause + "\n")
		if report.RCA.ContributingFactors != "" {
			b.WriteString("Contributing factors: " + report.RCA.ContributingFactors + "\n")
		}
	}

	return b.String()
}

var reportHTMLTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Fault Resolution Report {{.ID}}</title></head>
<body>
<h1>Fault Resolution Report</h1>
<table>
<tr><td>Report ID</td><td>{{.ID}}</td></tr>
<tr><td>Fault ID</td><td>{{.FaultID}}</td></tr>
<tr><td>Status</td><td>{{.Status}}</td></tr>
{{if .Equipment}}<tr><td>Equipment</td><td>{{.Equipment}}</td></tr>{{end}}
{{if .Preparer}}<tr><td>Prepared by</td><td>{{.Preparer}}</td></tr>{{end}}
<tr><td>Created</td><td>{{.Created}}</td></tr>
{{if .Approved}}<tr><td>Approved</td><td>{{.Approved}}</td></tr>{{end}}
</table>
<h2>Resolution</h2>
<p>{{.Resolution}}</p>
<h2>Actions Taken</h2>
<p>{{.Actions}}</p>
{{if .Preventive}}<h2>Preventive Measures</h2>
<p>{{.Preventive}}</p>{{end}}
{{if .RootCause}}<h2>Root Cause Analysis</h2>
<p>{{.RootCause}}</p>{{end}}
</body>
</html>
`))

type reportHTMLData struct {
	ID         string
	FaultID    string
	Status     string
	Equipment  string
	Preparer   string
	Created    string
	Approved   string
	Resolution string
	Actions    string
	Preventive string
	RootCause  string
}

// renderReportHTML lays the report out as a standalone HTML document. Field
// values are escaped by html/template.
func renderReportHTML(report *entity.ResolutionReport) (string, error) {
	data := reportHTMLData{
		ID:         report.ID,
		FaultID:    report.FaultID,
		Status:     report.Status,
		Created:    report.CreatedAt.Format(reportTimeLayout),
		Resolution: report.ResolutionDescription,
		Actions:    report.ActionsTaken,
		Preventive: report.PreventiveMeasures,
	}
	if report.Fault != nil && report.Fault.Equipment != nil {
		data.Equipment = fmt.Sprintf("%s (%s)", report.Fault.Equipment.Name, report.Fault.Equipment.Code)
	}
	if report.Preparer != nil {
		data.Preparer = report.Preparer.FullName
	}
	if report.ApprovedAt != nil {
		data.Approved = report.ApprovedAt.Format(reportTimeLayout)
	}
	if report.RCA != nil {
		data.RootCause = report.RCA.RootCause
	}

	var b strings.Builder
	if err := reportHTMLTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// periodLabel formats a reporting period for document headers.
func periodLabel(start, end time.Time) string {
	return start.Format("2006-01-02") + " to " + end.Format("2006-01-02")
}
