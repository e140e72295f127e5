package dashboard

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="5">
<title>Lease Lightning Dashboard</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
.metrics { display: flex; gap: 1rem; margin: 1rem 0; }
.metric { border: 1px solid #ccc; border-radius: 4px; padding: 0.8rem 1.2rem; }
.metric .value { font-size: 1.6rem; font-weight: bold; }
.flash { padding: 0.6rem 1rem; border-radius: 4px; margin: 0.5rem 0; }
.flash.ok { background: #e6f4e6; border: 1px solid #7bbf7b; }
.flash.err { background: #fbe8e8; border: 1px solid #d88; }
.gate { border: 2px solid #7bbf7b; border-radius: 4px; padding: 1rem; margin: 1rem 0; }
form.inline { display: inline; }
.unhealthy { color: #b00; }
.placeholder { color: #777; font-style: italic; }
</style>
</head>
<body>
<h1>&#9889; Lease Lightning</h1>
<p>Property manager dashboard: applicant pipeline.
{{if not .APIHealthy}}<span class="unhealthy">API unreachable or unhealthy.</span>{{end}}</p>

{{if .Message}}<div class="flash ok">{{.Message}}</div>{{end}}
{{if .Error}}<div class="flash err">{{.Error}}</div>{{end}}

<div class="metrics">
  <div class="metric"><div class="value">{{.Summary.Total}}</div>Total Applications</div>
  <div class="metric"><div class="value">{{.Summary.DecisionReady}}</div>Ready for Approval</div>
  <div class="metric"><div class="value">{{.Summary.InVerification}}</div>In Verification</div>
  <div class="metric"><div class="value">{{.Summary.LeaseGenerated}}</div>Lease Generated (E-Sign)</div>
  <div class="metric"><div class="value">{{.Summary.Denied}}</div>Denied</div>
</div>

<h2>Applicant Flow Table</h2>
<table>
<tr><th>ID</th><th>Name</th><th>Unit</th><th>Date</th><th>Status</th><th>Risk</th><th>Income Match</th><th>Error Rate</th><th></th></tr>
{{range .Applicants}}
<tr>
  <td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Unit}}</td><td>{{.Date}}</td>
  <td>{{.Status}}</td><td>{{.Risk}}</td><td>{{.IncomeMatch}}</td><td>{{.ErrorRate}}</td>
  <td>
    <form class="inline" method="post" action="/applicants/{{.ID}}/run-decision"><button>Run Decision</button></form>
    <form class="inline" method="post" action="/applicants/{{.ID}}/delete"><button>Delete</button></form>
  </td>
</tr>
{{end}}
</table>

<h2>Mandatory Human Approval Gate</h2>
{{if .Candidate}}
<div class="gate">
  <p><strong>{{.Candidate.Name}}</strong> (Unit {{.Candidate.Unit}}) &mdash;
  risk <strong>{{.Candidate.Risk}}</strong>,
  income match {{.Candidate.IncomeMatch}},
  lease error rate {{.Candidate.ErrorRate}}.</p>
  <form class="inline" method="post" action="/applicants/{{.Candidate.ID}}/approve">
    <button>&#9989; Final Approve &amp; Send Lease</button>
  </form>
  <form class="inline" method="post" action="/applicants/{{.Candidate.ID}}/deny">
    <button>&#128683; Override Deny</button>
  </form>
</div>
{{else}}
<p class="placeholder">No applications currently in the Decision Ready stage.</p>
{{end}}

<h2>Manage Applicants</h2>
<h3>Add New Applicant</h3>
<form method="post" action="/applicants">
  <input name="name" placeholder="Applicant Name" required>
  <input name="unit" placeholder="Unit Applied For">
  <button>Add Applicant</button>
</form>

<h3>Update Applicant Status</h3>
<table>
{{$statuses := .StatusOptions}}
{{$risks := .RiskOptions}}
{{range .Applicants}}
<tr>
  <td>{{.ID}} &mdash; {{.Name}}</td>
  <td>
    <form class="inline" method="post" action="/applicants/{{.ID}}/update">
      <select name="status">
        {{$current := .Status}}
        {{range $statuses}}<option {{if eq . $current}}selected{{end}}>{{.}}</option>{{end}}
      </select>
      <select name="risk">
        {{$risk := .Risk}}
        {{range $risks}}<option {{if eq . $risk}}selected{{end}}>{{.}}</option>{{end}}
      </select>
      <button>Update</button>
    </form>
  </td>
</tr>
{{end}}
</table>

<h2>Lease Renewal Tracker</h2>
<p class="placeholder">Future feature: track leases expiring in the next 90 days and initiate renewal outreach.</p>

<h2>Compliance Audit Log</h2>
<p class="placeholder">Future feature: immutable log of AI decisions and human overrides for fair housing compliance.</p>

</body>
</html>
`
