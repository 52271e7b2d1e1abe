package school

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/tidwall/gjson"

	"hagwon_strategy/pkg/models"
)

const DefaultBaseURL = "https://open.neis.go.kr/hub"

// NEIS answers "no rows" with a RESULT envelope instead of an empty list.
const codeNoData = "INFO-200"

var ErrUpstream = errors.New("neis request failed")

// School is one row of the schoolInfo dataset.
type School struct {
	Name       string `json:"name"`
	OfficeCode string `json:"office_code"`
	Code       string `json:"code"`
	Kind       string `json:"kind"`
	Address    string `json:"address"`
}

// Event is one row of the SchoolSchedule dataset. Date is YYYYMMDD.
type Event struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Client talks to the NEIS open API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

var excludedKinds = map[string]bool{
	"고등학교":   true,
	"특수학교":   true,
	"고등기술학교": true,
}

// Search finds elementary and middle schools whose name contains name.
func (c *Client) Search(ctx context.Context, name string) ([]School, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError(nil, models.FieldError{Field: "q", Error: "required"})
	}

	q := c.query()
	q.Set("SCHUL_NM", name)
	rows, err := c.fetch(ctx, "schoolInfo", q)
	if err != nil {
		return nil, err
	}

	out := make([]School, 0, len(rows))
	for _, r := range rows {
		s := School{
			Name:       r.Get("SCHUL_NM").String(),
			OfficeCode: r.Get("ATPT_OFCDC_SC_CODE").String(),
			Code:       r.Get("SD_SCHUL_CODE").String(),
			Kind:       r.Get("SCHUL_KND_SC_NM").String(),
			Address:    r.Get("ORG_RDNMA").String(),
		}
		if excludedKinds[s.Kind] {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Schedule lists the academic calendar of one school for a YYYYMM month.
func (c *Client) Schedule(ctx context.Context, officeCode, schoolCode, yyyymm string) ([]Event, error) {
	var flds []models.FieldError
	if officeCode == "" {
		flds = append(flds, models.FieldError{Field: "office", Error: "required"})
	}
	if schoolCode == "" {
		flds = append(flds, models.FieldError{Field: "school", Error: "required"})
	}
	if _, err := time.Parse("200601", yyyymm); err != nil {
		flds = append(flds, models.FieldError{Field: "ym", Error: "must be YYYYMM"})
	}
	if len(flds) > 0 {
		return nil, models.NewValidationError(nil, flds...)
	}

	q := c.query()
	q.Set("ATPT_OFCDC_SC_CODE", officeCode)
	q.Set("SD_SCHUL_CODE", schoolCode)
	q.Set("AA_YMD", yyyymm)
	rows, err := c.fetch(ctx, "SchoolSchedule", q)
	if err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, Event{
			Date: r.Get("AA_YMD").String(),
			Name: strings.TrimSpace(r.Get("EVENT_NM").String()),
		})
	}
	return out, nil
}

func (c *Client) query() url.Values {
	q := url.Values{}
	if c.apiKey != "" {
		q.Set("KEY", c.apiKey)
	}
	q.Set("Type", "json")
	q.Set("pIndex", "1")
	q.Set("pSize", "100")
	return q
}

// fetch returns the row array of dataset, which NEIS nests as
// {"<dataset>": [{"head": ...}, {"row": [...]}]}.
func (c *Client) fetch(ctx context.Context, dataset string, q url.Values) ([]gjson.Result, error) {
	endpoint := c.baseURL + "/" + dataset + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", dataset, err)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		log.Warn().Str("dataset", dataset).Err(err).Msg("neis call failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstream, dataset, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUpstream, dataset, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUpstream, dataset, res.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s returned malformed json", ErrUpstream, dataset)
	}

	doc := gjson.ParseBytes(body)
	if result := doc.Get("RESULT"); result.Exists() {
		if result.Get("CODE").String() == codeNoData {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %s %s", ErrUpstream, dataset,
			result.Get("CODE").String(), result.Get("MESSAGE").String())
	}

	rows := doc.Get(dataset + ".1.row").Array()
	log.Debug().Str("dataset", dataset).Int("rows", len(rows)).Dur("duration", time.Since(start)).Msg("neis call")
	return rows, nil
}
