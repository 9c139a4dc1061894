package cityrecord

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// listing form constants. SectionName carries the exact whitespace blob the
// origin form posts back; the server rejects a trimmed value.
const (
	sectionPath  = "/Section"
	sectionID    = "6"
	noticeTypeID = "0"
	sectionName  = "\r\n                                                \r\n                                                    \r\n                                                \r\n                                                Procurement\r\n                                            "
)

// Client fetches paginated procurement notice listings from the City Record.
type Client struct {
	baseURL   string
	cookie    string
	userAgent string
	client    *http.Client
}

func New(baseURL, cookie, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		cookie:    cookie,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// UseDefaultClient switches to http.DefaultClient so tests can intercept
// requests through a replaced default transport.
func (c *Client) UseDefaultClient() {
	c.client = http.DefaultClient
}

// FetchPage POSTs the listing form for one 1-indexed page and returns the
// raw HTML body.
func (c *Client) FetchPage(page int) ([]byte, error) {
	form := url.Values{}
	form.Set("SectionId", sectionID)
	form.Set("SectionName", sectionName)
	form.Set("NoticeTypeId", noticeTypeID)
	form.Set("PageNumber", strconv.Itoa(page))

	req, err := http.NewRequest(http.MethodPost, c.baseURL+sectionPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", c.baseURL+sectionPath)
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("city record http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// FetchAllPages fetches pages 1..pages strictly in order, one request at a
// time. A page that fails in transport becomes an empty document and the
// run continues; the failure count is returned so callers can tell "site
// had nothing" apart from "requests failed".
func (c *Client) FetchAllPages(pages int) (docs [][]byte, transportErrors int) {
	docs = make([][]byte, 0, pages)
	for page := 1; page <= pages; page++ {
		body, err := c.FetchPage(page)
		if err != nil {
			log.Printf("failed to fetch page %d: %v", page, err)
			transportErrors++
			docs = append(docs, nil)
			continue
		}
		docs = append(docs, body)
	}
	return docs, transportErrors
}
