package cortex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/pkg/parsing"
)

// CortexProvider runs document extraction through the Snowflake SQL
// statements API: PARSE_DOCUMENT for pdf/docx and AI_TRANSCRIBE for audio,
// both against files staged on an internal stage.
type CortexProvider struct {
	AccountURL string
	Token      string
	Warehouse  string
	Database   string
	Schema     string
	Stage      string
	Client     *http.Client
}

var _ parsing.Provider = &CortexProvider{}

func NewCortexProvider(accountURL, token, warehouse, database, schema, stage string) *CortexProvider {
	return &CortexProvider{
		AccountURL: accountURL,
		Token:      token,
		Warehouse:  warehouse,
		Database:   database,
		Schema:     schema,
		Stage:      stage,
		Client: &http.Client{
			Timeout: 180 * time.Second,
		},
	}
}

type statementRequest struct {
	Statement string   `json:"statement"`
	Warehouse string   `json:"warehouse"`
	Database  string   `json:"database"`
	Schema    string   `json:"schema"`
	Bindings  bindings `json:"bindings,omitempty"`
}

type bindings map[string]binding

type binding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type statementResponse struct {
	Data    [][]*string `json:"data"`
	Message string      `json:"message"`
}

func (c *CortexProvider) stageRef() string {
	return fmt.Sprintf("@%s.%s.%s", c.Database, c.Schema, c.Stage)
}

func (c *CortexProvider) StageFile(ctx context.Context, relativePath string, content []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", relativePath)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close form writer: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/databases/%s/schemas/%s/stages/%s/files/%s",
		c.AccountURL, c.Database, c.Schema, c.Stage, relativePath)
	req, err := http.NewRequestWithContext(ctx, "PUT", url, &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return apperror.Wrap(apperror.KindServiceUnavailable, "stage upload failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return c.statusError(resp.StatusCode, "stage upload", bodyBytes)
	}
	return nil
}

func (c *CortexProvider) ParseDocument(ctx context.Context, relativePath string) (string, error) {
	stmt := fmt.Sprintf(
		"SELECT TO_VARCHAR(SNOWFLAKE.CORTEX.PARSE_DOCUMENT('%s', ?, OBJECT_CONSTRUCT('mode', 'LAYOUT')):content)",
		c.stageRef())
	text, err := c.executeScalar(ctx, stmt, relativePath)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *CortexProvider) TranscribeAudio(ctx context.Context, relativePath string) (string, error) {
	stmt := fmt.Sprintf(
		"SELECT TO_VARCHAR(AI_TRANSCRIBE(TO_FILE('%s', ?)):text)",
		c.stageRef())
	text, err := c.executeScalar(ctx, stmt, relativePath)
	if err != nil {
		return "", err
	}
	return text, nil
}

// executeScalar runs a single-row single-column statement and returns the
// cell value. Extraction failures surface as parse errors so the caller
// rejects the upload instead of retrying.
func (c *CortexProvider) executeScalar(ctx context.Context, statement, pathBinding string) (string, error) {
	reqPayload := statementRequest{
		Statement: statement,
		Warehouse: c.Warehouse,
		Database:  c.Database,
		Schema:    c.Schema,
		Bindings: bindings{
			"1": {Type: "TEXT", Value: pathBinding},
		},
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal statement: %w", err)
	}

	url := c.AccountURL + "/api/v2/statements"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", apperror.Wrap(apperror.KindServiceUnavailable, "statement request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperror.Wrap(apperror.KindServiceUnavailable, "read statement response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.statusError(resp.StatusCode, "statement", bodyBytes)
	}

	var stmtResp statementResponse
	if err := json.Unmarshal(bodyBytes, &stmtResp); err != nil {
		return "", apperror.Wrap(apperror.KindParseError, "unmarshal statement response", err)
	}
	if len(stmtResp.Data) == 0 || len(stmtResp.Data[0]) == 0 || stmtResp.Data[0][0] == nil {
		return "", apperror.New(apperror.KindParseError, "extraction returned no content")
	}
	return *stmtResp.Data[0][0], nil
}

func (c *CortexProvider) statusError(status int, op string, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return apperror.New(apperror.KindRateLimited, op+" throttled")
	case status >= 500:
		return apperror.New(apperror.KindServiceUnavailable,
			fmt.Sprintf("%s unavailable: status %d", op, status))
	default:
		return apperror.New(apperror.KindParseError,
			fmt.Sprintf("%s failed: status %d, body: %s", op, status, string(body)))
	}
}
