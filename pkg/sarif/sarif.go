// Package sarif renders password audit results as SARIF 2.1.0 so weak
// credentials in fixtures and seed files show up in code-scanning UIs.
package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/pwmeter/pkg/present"
	"github.com/praetorian-inc/pwmeter/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "pwmeter"
)

// Rule IDs emitted by AddResult.
const (
	RuleTooShort = "pwmeter.too-short"
	RuleWeak     = "pwmeter.weak"
	RuleFair     = "pwmeter.fair"
	RuleCommon   = "pwmeter.common"
)

// Rules describes every rule a report can reference.
var Rules = []Rule{
	{ID: RuleTooShort, Name: "TooShortPassword", ShortDescription: ShortDescription{Text: "Password is shorter than 8 characters"}},
	{ID: RuleWeak, Name: "WeakPassword", ShortDescription: ShortDescription{Text: "Password meets fewer than four strength requirements"}},
	{ID: RuleFair, Name: "FairPassword", ShortDescription: ShortDescription{Text: "Password meets only four strength requirements"}},
	{ID: RuleCommon, Name: "CommonPassword", ShortDescription: ShortDescription{Text: "Password appears in a common-password list"}},
}

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a detection rule
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region is the line holding the password. Snippet is always masked.
type Region struct {
	StartLine int      `json:"startLine"`
	Snippet   *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the masked password
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a report with every rule registered.
func NewReport(toolVersion string) *Report {
	rules := make([]Rule, len(Rules))
	copy(rules, Rules)

	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules:   rules,
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddResult records the findings for one audited password: a tier result
// for anything below Good and a separate result when it is a known common
// password. It returns the number of results added.
func (r *Report) AddResult(report types.Report, password, filePath string, line int) int {
	loc := Location{
		PhysicalLocation: PhysicalLocation{
			ArtifactLocation: ArtifactLocation{URI: formatFileURI(filePath)},
			Region: Region{
				StartLine: line,
				Snippet:   &Snippet{Text: present.Mask(password)},
			},
		},
	}

	added := 0
	add := func(ruleID, level, text string) {
		r.Runs[0].Results = append(r.Runs[0].Results, Result{
			RuleID:    ruleID,
			Level:     level,
			Message:   Message{Text: text},
			Locations: []Location{loc},
		})
		added++
	}

	switch report.Tier {
	case types.TierTooShort:
		add(RuleTooShort, "error", fmt.Sprintf("Password has %d characters; at least %d are required", report.Length, types.MinLength))
	case types.TierWeak:
		add(RuleWeak, "error", summary(report))
	case types.TierFair:
		add(RuleFair, "warning", summary(report))
	}

	if !report.Reset() && report.Tier != types.TierTooShort && !report.Requirements.Common {
		add(RuleCommon, "error", "Password is in a common-password list")
	}
	return added
}

func summary(report types.Report) string {
	return fmt.Sprintf("%s password: %d/%d requirements met, %s, %s",
		report.Label, report.RequirementsMet, report.Requirements.Total(),
		present.FormatEntropy(report), strings.ToLower(present.CrackTimeText(report)))
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
