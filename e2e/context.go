package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

var scenarioSeq atomic.Int64

// TestContext holds the HTTP client and the last response of one scenario.
type TestContext struct {
	BaseURL    string
	AdminToken string

	client     *http.Client
	namespace  string
	lastStatus int
	lastBody   []byte
}

// NewTestContext creates a context for a fresh scenario. Facility ids are
// namespaced per scenario so scenarios sharing a server do not collide.
func NewTestContext(baseURL, adminToken string) *TestContext {
	return &TestContext{
		BaseURL:    baseURL,
		AdminToken: adminToken,
		client:     &http.Client{Timeout: 2 * time.Minute},
		namespace:  strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatInt(scenarioSeq.Add(1), 36),
	}
}

// FacilityID expands a short scenario name such as "A" into a full id.
func (tc *TestContext) FacilityID(prefix, name string) string {
	return prefix + "_e2e" + tc.namespace + name
}

func (tc *TestContext) POST(path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	return tc.do(http.MethodPost, path, reader)
}

func (tc *TestContext) POSTRaw(path, body string) error {
	return tc.do(http.MethodPost, path, bytes.NewBufferString(body))
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body io.Reader) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.AdminToken != "" {
		req.Header.Set("X-Admin-Token", tc.AdminToken)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

// DecodeResponse unmarshals the last response body into v.
func (tc *TestContext) DecodeResponse(v any) error {
	if err := json.Unmarshal(tc.lastBody, v); err != nil {
		return fmt.Errorf("decode response (status %d): %w: %s", tc.lastStatus, err, tc.lastBody)
	}
	return nil
}
