// seed_template.go parses a markdown rubric and creates it as a scoring
// template through the Tender API.
//
// Rubric format:
//
//	# Infrastructure RFP
//	Standard rubric for civil works bids.
//	- Technical Approach (40%): method statement and risk handling
//	- Cost (35%)
//	- Schedule (25%): realism of the programme
//
// Usage:
//
//	go run scripts/seed_template.go -rubric rubric.md -api http://localhost:8700 -user admin -token $ADMIN_TOKEN
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Tender/internal/validation"
)

var criterionLine = regexp.MustCompile(`^[-*]\s+(.+?)\s*\(\s*([0-9]+(?:\.[0-9]+)?)\s*%?\s*\)\s*(?::\s*(.*))?$`)

func main() {
	rubricPath := flag.String("rubric", "rubric.md", "path to markdown rubric")
	apiURL := flag.String("api", "http://localhost:8700", "Tender API base URL")
	userID := flag.String("user", "system", "X-User-ID header value")
	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
	dryRun := flag.Bool("dry-run", false, "print the template without posting")
	flag.Parse()

	f, err := os.Open(*rubricPath)
	if err != nil {
		log.Fatalf("open rubric: %v", err)
	}
	defer f.Close()

	tmpl, err := parseRubric(f)
	if err != nil {
		log.Fatalf("parse rubric: %v", err)
	}

	if res := validation.ValidateScoringTemplate(tmpl); !res.Valid {
		log.Fatalf("rubric is not a valid template (%s): %s", res.Code, res.Error)
	}
	log.Printf("parsed %q with %d criteria from %s", tmpl.Name, len(tmpl.Criteria), *rubricPath)

	if *dryRun {
		for i, c := range tmpl.Criteria {
			fmt.Printf("[%d] %s (weight=%.2f) %s\n", i+1, c.Name, *c.Weight, c.Description)
		}
		return
	}

	body, _ := json.Marshal(tmpl)
	req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/v1/templates", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", *userID)
	if *token != "" {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("post template: %v", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		log.Fatalf("post template: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	log.Printf("created template: %s", strings.TrimSpace(string(respBody)))
}

func parseRubric(r io.Reader) (validation.ScoringTemplate, error) {
	var tmpl validation.ScoringTemplate
	var desc []string
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if tmpl.Name == "" {
				tmpl.Name = strings.TrimSpace(strings.TrimLeft(line, "#"))
			}
			continue
		}

		m := criterionLine.FindStringSubmatch(line)
		if m == nil {
			if len(tmpl.Criteria) == 0 {
				desc = append(desc, line)
			}
			continue
		}

		weight, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return tmpl, fmt.Errorf("weight for %q: %w", m[1], err)
		}
		order := len(tmpl.Criteria)
		tmpl.Criteria = append(tmpl.Criteria, validation.ScoringCriterion{
			Name:        m[1],
			Description: m[3],
			Weight:      &weight,
			OrderIndex:  &order,
		})
	}
	if err := scanner.Err(); err != nil {
		return tmpl, err
	}

	tmpl.Description = strings.Join(desc, " ")
	return tmpl, nil
}
