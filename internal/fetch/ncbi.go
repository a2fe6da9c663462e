// Package fetch provides the NCBI E-utilities sequence fetch client.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the NCBI E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// GeneHit is one search result: an accession id plus its description.
type GeneHit struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Client fetches nucleotide sequences and gene summaries from NCBI.
// NCBI policy asks for a contact email and tool name on every request and
// at most 3 requests per second without an API key.
type Client struct {
	baseURL    string
	email      string
	tool       string
	httpClient *http.Client
	throttle   *time.Ticker
}

// NewClient creates a client identifying itself with the given email.
func NewClient(email string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		email:   email,
		tool:    "seqlens",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		throttle: time.NewTicker(334 * time.Millisecond),
	}
}

// SetBaseURL overrides the E-utilities endpoint (used in tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// SetTool overrides the tool name reported to NCBI.
func (c *Client) SetTool(tool string) {
	c.tool = tool
}

// Close releases the rate-limit ticker.
func (c *Client) Close() {
	c.throttle.Stop()
}

// wait blocks until the next request slot or until ctx is done.
func (c *Client) wait(ctx context.Context) error {
	select {
	case <-c.throttle.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FetchSequence retrieves the raw nucleotide sequence for an accession id
// via efetch in FASTA format. The returned string is the bare sequence with
// the header line and line breaks removed; validation is the sequence
// model's job, not the fetcher's.
func (c *Client) FetchSequence(ctx context.Context, accession string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("db", "nucleotide")
	q.Set("id", accession)
	q.Set("rettype", "fasta")
	q.Set("retmode", "text")
	c.identify(q)

	body, err := c.get(ctx, "/efetch.fcgi", q)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", accession, err)
	}

	sequence := parseFASTABody(string(body))
	if sequence == "" {
		return "", fmt.Errorf("fetch %s: empty sequence in response", accession)
	}
	return sequence, nil
}

// SearchGene finds accession ids for a gene name via esearch followed by
// esummary, mirroring the two-step E-utilities flow.
func (c *Client) SearchGene(ctx context.Context, gene, organism string, limit int) ([]GeneHit, error) {
	if limit <= 0 {
		limit = 10
	}
	if organism == "" {
		organism = "Homo sapiens"
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	term := fmt.Sprintf("(%s[Gene]) AND %s[Organism] AND mRNA[Filter] AND refseq[Filter]", gene, organism)
	q := url.Values{}
	q.Set("db", "nucleotide")
	q.Set("term", term)
	q.Set("retmax", fmt.Sprintf("%d", limit))
	q.Set("retmode", "json")
	c.identify(q)

	body, err := c.get(ctx, "/esearch.fcgi", q)
	if err != nil {
		return nil, fmt.Errorf("search gene %s: %w", gene, err)
	}

	var search struct {
		ESearchResult struct {
			IDList []string `json:"idlist"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("search gene %s: decode response: %w", gene, err)
	}
	ids := search.ESearchResult.IDList
	if len(ids) == 0 {
		return nil, nil
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	q = url.Values{}
	q.Set("db", "nucleotide")
	q.Set("id", strings.Join(ids, ","))
	q.Set("retmode", "json")
	c.identify(q)

	body, err = c.get(ctx, "/esummary.fcgi", q)
	if err != nil {
		return nil, fmt.Errorf("summarize gene %s: %w", gene, err)
	}

	var summary struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("summarize gene %s: decode response: %w", gene, err)
	}

	var hits []GeneHit
	for _, uid := range ids {
		raw, ok := summary.Result[uid]
		if !ok {
			continue
		}
		var doc struct {
			AccessionVersion string `json:"accessionversion"`
			Title            string `json:"title"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if doc.AccessionVersion == "" {
			continue
		}
		hits = append(hits, GeneHit{ID: doc.AccessionVersion, Description: doc.Title})
	}
	return hits, nil
}

// identify adds the tool and email parameters NCBI asks for.
func (c *Client) identify(q url.Values) {
	q.Set("tool", c.tool)
	if c.email != "" {
		q.Set("email", c.email)
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("NCBI API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return io.ReadAll(resp.Body)
}

// parseFASTABody strips FASTA headers and joins the sequence lines.
func parseFASTABody(body string) string {
	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
