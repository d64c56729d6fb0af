// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assistant

import (
	"bytes"
	"text/template"
	"time"
)

// DateLayout is how the date is written into the prompt (e.g. "05 March 2025").
const DateLayout = "02 January 2006"

// DefaultInstructions is the system prompt used when none is configured.
const DefaultInstructions = `You are a financial adviser. Read the client data that follows and write a detailed financial advice report for the client.

Structure the report with short section titles on their own line, written in bold (for example **Summary of Your Situation**). Use "- " bullet points for lists and **bold** for key figures. Write in plain language and do not include tables.`

var promptTmpl = template.Must(template.New("report").Parse(`Today's date is {{.Date}}.

{{.ClientInput}}`))

// RenderPrompt returns the user message for req: the date line, a blank
// line, then the client input unchanged.
func RenderPrompt(req Request) (string, error) {
	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}
	var buf bytes.Buffer
	err := promptTmpl.Execute(&buf, struct {
		Date        string
		ClientInput string
	}{
		Date:        today.Format(DateLayout),
		ClientInput: req.ClientInput,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func instructionsOr(s string) string {
	if s == "" {
		return DefaultInstructions
	}
	return s
}
