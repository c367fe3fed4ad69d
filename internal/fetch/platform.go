package fetch

import (
	"net/url"
	"strings"
)

// Board describes how to read postings on one job board
type Board struct {
	Name    string
	Hosts   []string
	Content []string
	Noise   []string
}

// commonNoise is stripped from every posting: application forms, EEO notices, share widgets
var commonNoise = []string{
	"form",
	".application-form",
	"#application-form",
	"[data-testid='application-form']",
	".eeo-statement",
	".voluntary-disclosure",
	".self-identification",
	".social-share",
	".share-buttons",
	".cookie-consent",
}

// GenericBoard is used for hosts that match no known board.
var GenericBoard = Board{
	Name: "generic",
	Content: []string{
		".job-description",
		"#job-description",
		".job-details",
		".posting-content",
		"[data-testid='job-description']",
		"main",
		"article",
		"#content",
	},
	Noise: commonNoise,
}

// Boards lists the job boards with dedicated selectors.
var Boards = []Board{
	{
		Name:    "greenhouse",
		Hosts:   []string{"greenhouse.io"},
		Content: []string{".job__description", "#content", ".job-post-container"},
		Noise:   append([]string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"}, commonNoise...),
	},
	{
		Name:    "lever",
		Hosts:   []string{"lever.co"},
		Content: []string{".posting-page", ".posting-description", ".content"},
		Noise:   append([]string{".posting-apply", ".apply-section"}, commonNoise...),
	},
	{
		Name:    "workday",
		Hosts:   []string{"myworkdayjobs.com", "workday.com"},
		Content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		Noise:   append([]string{"[data-automation-id='applyButton']"}, commonNoise...),
	},
	{
		Name:    "ashby",
		Hosts:   []string{"ashbyhq.com"},
		Content: []string{"._descriptionText", "[class*='descriptionText']", "main"},
		Noise:   commonNoise,
	},
}

// DetectBoard returns the board whose host suffix matches rawURL, or GenericBoard.
func DetectBoard(rawURL string) Board {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return GenericBoard
	}
	host := strings.ToLower(parsed.Hostname())

	for _, board := range Boards {
		for _, suffix := range board.Hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return board
			}
		}
	}
	return GenericBoard
}
