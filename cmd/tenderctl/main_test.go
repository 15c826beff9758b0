package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outputFormat = "yaml"
	compareWeights = ""

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScoreWeighted(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"simple", []string{"8", "25"}, "2.00\n", false},
		{"rounds", []string{"7", "33.33"}, "2.33\n", false},
		{"raw below range", []string{"0", "25"}, "", true},
		{"raw not a number", []string{"eight", "25"}, "", true},
		{"weight too large", []string{"5", "120"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"score", "weighted"}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestScoreTotal(t *testing.T) {
	out, err := run(t, "score", "total", "2.5", "1.25", "0.1")
	require.NoError(t, err)
	assert.Equal(t, "3.85\n", out)

	out, err = run(t, "score", "total")
	require.NoError(t, err)
	assert.Equal(t, "0.00\n", out)

	_, err = run(t, "score", "total", "1", "x")
	assert.Error(t, err)
}

func TestTemplateValidate(t *testing.T) {
	valid := writeFile(t, "valid.yaml", `
name: Infrastructure RFP
criteria:
  - name: Technical Approach
    weight: 60
  - name: Cost
    weight: 40
`)
	out, err := run(t, "template", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "valid: true")

	invalid := writeFile(t, "invalid.json", `{"name":"RFP","criteria":[{"name":"A","weight":60},{"name":"B","weight":30}]}`)
	out, err = run(t, "template", "validate", "-o", "json", invalid)
	require.Error(t, err)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, false, res["valid"])
	assert.Equal(t, "sum_mismatch", res["code"])
}

func TestTemplateValidateMissingFile(t *testing.T) {
	_, err := run(t, "template", "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

const proposalA = `
id: A
title: Steel retrofit
budget_estimate: 1000
timeline_estimate: 30
members:
  - user_id: u1
checklist_total: 4
checklist_completed: 3
sections:
  - title: Intro
    order: 0
    content: steel
`

const proposalB = `{
  "id": "B",
  "title": "Concrete rebuild",
  "budget_estimate": 800,
  "timeline_estimate": 45,
  "checklist_total": 4,
  "checklist_completed": 4,
  "sections": [{"title": "Intro", "order": 0, "content": "concrete"}, {"title": "Risks", "order": 1, "content": "weather"}]
}`

func TestCompare(t *testing.T) {
	a := writeFile(t, "a.yaml", proposalA)
	b := writeFile(t, "b.json", proposalB)

	out, err := run(t, "compare", "-o", "json", a, b)
	require.NoError(t, err)

	var report struct {
		ProposalIDs []string `json:"proposal_ids"`
		Frontier    []string `json:"frontier"`
		Sections    []struct {
			Title string `json:"title"`
		} `json:"sections"`
		Metrics []struct {
			ProposalID string `json:"proposal_id"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, []string{"A", "B"}, report.ProposalIDs)
	assert.Equal(t, []string{"A", "B"}, report.Frontier)
	require.Len(t, report.Sections, 2)
	assert.Equal(t, "Intro", report.Sections[0].Title)
	assert.Equal(t, "Risks", report.Sections[1].Title)
	assert.Len(t, report.Metrics, 2)
}

func TestCompareYAMLKeepsJSONKeys(t *testing.T) {
	a := writeFile(t, "a.yaml", proposalA)
	b := writeFile(t, "b.json", proposalB)

	out, err := run(t, "compare", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "proposal_ids:")
	assert.Contains(t, out, "frontier:")
}

func TestCompareErrors(t *testing.T) {
	a := writeFile(t, "a.yaml", proposalA)

	_, err := run(t, "compare", a)
	assert.Error(t, err, "single proposal is not a comparison")

	_, err = run(t, "compare", a, a)
	assert.Error(t, err, "duplicate selection")

	b := writeFile(t, "b.json", proposalB)
	_, err = run(t, "compare", "--weights", "0.5,0.5,0.5,0.5", a, b)
	assert.Error(t, err)

	_, err = run(t, "compare", "-o", "xml", a, b)
	assert.Error(t, err)
}

func TestParseWeights(t *testing.T) {
	w, err := parseWeights("")
	require.NoError(t, err)
	assert.Nil(t, w)

	w, err = parseWeights("0.4, 0.2, 0.2, 0.2")
	require.NoError(t, err)
	assert.Equal(t, 0.4, w.Budget)
	assert.Equal(t, 0.2, w.Compliance)

	_, err = parseWeights("0.5,0.5")
	assert.Error(t, err)

	_, err = parseWeights("a,b,c,d")
	assert.Error(t, err)

	_, err = parseWeights("NaN,0,0,0")
	assert.Error(t, err)
}
