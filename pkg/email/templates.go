package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message is a rendered email ready for a Sender.
type Message struct {
	To      string
	Subject string
	HTML    string
}

type WelcomeData struct {
	Name string
	Role string
}

type ApplicationStatusData struct {
	Name             string
	OpportunityTitle string
	Status           string
	EmployerName     string
}

type OpportunityMatchData struct {
	Name             string
	OpportunityTitle string
	OpportunityLink  string
	MatchScore       int
}

type statusStyle struct {
	Emoji   string
	Title   string
	Message string
	Color   string
	Bg      string
}

var statusStyles = map[string]statusStyle{
	"accepted": {"🎉", "Congratulations!", "Your application has been accepted!", "#27ae60", "#e8f8f5"},
	"rejected": {"💪", "Application Update", "Not this time, but keep trying!", "#e74c3c", "#fadbd8"},
}

const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
    <div style="max-width:600px;margin:0 auto;background-color:#ffffff;">
        <div style="background:#27ae60;padding:30px 20px;text-align:center;">
            <h1 style="color:#ffffff;margin:0;">OpportunityHub Kenya</h1>
            <p style="color:#e8f8f5;margin:10px 0 0 0;font-size:14px;">Connecting Talent with Opportunities</p>
        </div>
        <div style="padding:40px 30px;">
            <h2 style="color:#2c3e50;margin:0 0 20px 0;">Hi {{.Name}}!</h2>
            {{template "body" .}}
        </div>
        <div style="background-color:#2c3e50;padding:25px 30px;text-align:center;">
            <p style="color:#bdc3c7;font-size:14px;margin:0;">
                Best regards,<br>
                <strong style="color:#ecf0f1;">The OpportunityHub Kenya Team</strong>
            </p>
        </div>
    </div>
</body>
</html>{{end}}`

const welcomeBody = `{{define "body"}}
<p style="color:#555;font-size:16px;line-height:1.6;">Thank you for joining OpportunityHub Kenya!</p>
{{if eq .Role "youth"}}
<p style="color:#555;font-size:16px;line-height:1.6;">Start discovering opportunities that match your skills!</p>
<ul style="color:#555;">
    <li>Complete your profile</li>
    <li>Browse opportunities</li>
    <li>Apply to positions</li>
</ul>
{{else}}
<p style="color:#555;font-size:16px;line-height:1.6;">Start posting opportunities and connect with talent!</p>
<ul style="color:#555;">
    <li>Complete company profile</li>
    <li>Post opportunities</li>
    <li>Review applications</li>
</ul>
{{end}}
{{end}}`

const statusBody = `{{define "body"}}
<div style="background-color:{{.Style.Bg}};border-left:4px solid {{.Style.Color}};padding:25px;border-radius:8px;">
    <div style="font-size:36px;margin-bottom:10px;">{{.Style.Emoji}}</div>
    <h3 style="color:{{.Style.Color}};margin:0 0 15px 0;">{{.Style.Title}}</h3>
    <h4 style="color:#2c3e50;margin:0 0 10px 0;">{{.OpportunityTitle}}</h4>
    {{if .EmployerName}}<p style="color:#777;margin:0;">{{.EmployerName}}</p>{{end}}
    <p style="color:#555;font-size:16px;margin:20px 0 0 0;">{{.Style.Message}}</p>
</div>
{{end}}`

const matchBody = `{{define "body"}}
<p style="color:#555;font-size:16px;line-height:1.6;">Great news! We found an opportunity that matches your skills and profile.</p>
<div style="background-color:#f8f9fa;border-left:4px solid #27ae60;padding:20px;border-radius:8px;">
    <h3 style="color:#27ae60;margin:0 0 15px 0;">{{.OpportunityTitle}}</h3>
    <span style="background-color:#27ae60;color:white;padding:6px 12px;border-radius:20px;font-weight:bold;">{{.MatchScore}}% Match</span>
</div>
<div style="text-align:center;margin:30px 0;">
    <a href="{{.OpportunityLink}}" style="background-color:#27ae60;color:white;padding:14px 40px;text-decoration:none;border-radius:6px;font-weight:bold;">View Opportunity</a>
</div>
<p style="color:#999;font-size:14px;"><strong>Pro Tip:</strong> Apply early to increase your chances!</p>
{{end}}`

var (
	welcomeTmpl = mustParse("welcome", welcomeBody)
	statusTmpl  = mustParse("application_status", statusBody)
	matchTmpl   = mustParse("opportunity_match", matchBody)
)

func mustParse(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(layoutTemplate))
	return template.Must(t.Parse(body))
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// RenderWelcome renders the greeting sent after registration.
func RenderWelcome(to string, data WelcomeData) (*Message, error) {
	html, err := execute(welcomeTmpl, data)
	if err != nil {
		return nil, err
	}
	return &Message{To: to, Subject: "🎉 Welcome to OpportunityHub Kenya!", HTML: html}, nil
}

// RenderApplicationStatus renders the decision email for an application.
// Statuses other than accepted and rejected get a neutral style.
func RenderApplicationStatus(to string, data ApplicationStatusData) (*Message, error) {
	style, ok := statusStyles[data.Status]
	if !ok {
		style = statusStyle{"📋", "Application Update", "Status updated to: " + data.Status, "#95a5a6", "#f8f9fa"}
	}

	html, err := execute(statusTmpl, struct {
		ApplicationStatusData
		Style statusStyle
	}{data, style})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      to,
		Subject: fmt.Sprintf("%s Application Update: %s", style.Emoji, data.OpportunityTitle),
		HTML:    html,
	}, nil
}

// RenderOpportunityMatch renders the alert for a newly posted matching opportunity.
func RenderOpportunityMatch(to string, data OpportunityMatchData) (*Message, error) {
	if data.MatchScore < 0 || data.MatchScore > 100 {
		return nil, fmt.Errorf("match score %d out of range", data.MatchScore)
	}
	html, err := execute(matchTmpl, data)
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      to,
		Subject: "🎯 New Opportunity Match: " + data.OpportunityTitle,
		HTML:    html,
	}, nil
}
