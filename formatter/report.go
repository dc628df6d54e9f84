package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/gnolang/qeval/internal/quant"
)

var (
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	labelStyle   = color.New(color.FgHiBlue, color.Bold)
	trueStyle    = color.New(color.FgGreen, color.Bold)
	falseStyle   = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgWhite)
)

// Messages shown when the domain is empty because start > end.
const (
	InvertedRangeWarning = "start must be less than or equal to end"
	EmptyDomainWarning   = "define a valid domain first"
)

const reportTemplate = `{{if .Empty}}{{warning "` + InvertedRangeWarning + `"}}
{{end}}{{header "domain"}} {{.Domain}}

{{header "evaluation"}} P(x) = {{.Predicate}}(x)
{{range .Table}}{{entry .}}
{{end}}
{{header "quantifiers"}}
{{if .Empty}}{{warning "` + EmptyDomainWarning + `"}}
{{else}}{{range .Results}}{{quantified .}}
{{end}}{{end}}`

type reportData struct {
	quant.Report
	Results []quant.Result
}

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"header":     header,
	"warning":    warning,
	"entry":      entry,
	"quantified": FormatQuantified,
}).Parse(reportTemplate))

// FormatReport renders the domain, the truth table and the requested
// quantified statements. With no quantifiers given, both are shown.
func FormatReport(report quant.Report, quantifiers ...quant.Quantifier) string {
	if len(quantifiers) == 0 {
		quantifiers = []quant.Quantifier{quant.Universal, quant.Existential}
	}

	data := reportData{Report: report}
	for _, q := range quantifiers {
		switch q {
		case quant.Universal:
			data.Results = append(data.Results, report.Universal)
		case quant.Existential:
			data.Results = append(data.Results, report.Existential)
		}
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting report: %v", err)
	}
	return buf.String()
}

// FormatQuantified renders one quantified statement as a success or failure
// line, naming the element that decided it when there is one.
func FormatQuantified(r quant.Result) string {
	var b strings.Builder
	b.WriteString(labelStyle.Sprintf("%sx ∈ domain, P(x)", r.Quantifier.Symbol()))
	b.WriteString(": ")
	b.WriteString(truth(r.Value))

	if r.Decided {
		kind := "witness"
		if r.Quantifier == quant.Universal {
			kind = "counterexample"
		}
		b.WriteString(noteStyle.Sprintf(" (x=%d is a %s)", r.Decider, kind))
	}
	return b.String()
}

func header(title string) string {
	return headerStyle.Sprint(title + ":")
}

func warning(msg string) string {
	return warningStyle.Sprint("warning: ") + msg
}

func entry(e quant.Entry) string {
	return fmt.Sprintf("  P(%d) = %s", e.X, truth(e.Holds))
}

func truth(v bool) string {
	if v {
		return trueStyle.Sprint("true")
	}
	return falseStyle.Sprint("false")
}

// FormatSummary renders a one-line result for a labelled report.
func FormatSummary(label string, report quant.Report) string {
	if report.Empty() {
		return labelStyle.Sprint(label) + ": " + warning(InvertedRangeWarning)
	}
	return fmt.Sprintf("%s: %s over [%d, %d] ∀ %s ∃ %s",
		labelStyle.Sprint(label), report.Predicate, report.Start, report.End,
		truth(report.Universal.Value), truth(report.Existential.Value))
}

// FormatError renders a failed evaluation.
func FormatError(label string, err error) string {
	return labelStyle.Sprint(label) + ": " + falseStyle.Sprint("error: ") + err.Error()
}
